package httpbinding

import (
	"encoding/base64"
	"math/big"
	"net/http"
	"strconv"
)

// HeaderValue writes a single value into an HTTP header, either overwriting
// any prior value for the header name or appending to it, per how it was
// constructed (Encoder.SetHeader vs Encoder.AddHeader).
type HeaderValue struct {
	header http.Header
	key    string
	append bool
}

func newHeaderValue(header http.Header, key string, appendValue bool) HeaderValue {
	return HeaderValue{header: header, key: key, append: appendValue}
}

func (h HeaderValue) modifyHeader(value string) {
	if h.append {
		h.header.Add(h.key, value)
	} else {
		h.header.Set(h.key, value)
	}
}

// String writes v as the header value.
func (h HeaderValue) String(v string) { h.modifyHeader(v) }

// Boolean writes v as the header value.
func (h HeaderValue) Boolean(v bool) { h.modifyHeader(strconv.FormatBool(v)) }

// Byte writes v as the header value.
func (h HeaderValue) Byte(v int8) { h.Long(int64(v)) }

// Short writes v as the header value.
func (h HeaderValue) Short(v int16) { h.Long(int64(v)) }

// Integer writes v as the header value.
func (h HeaderValue) Integer(v int32) { h.Long(int64(v)) }

// Long writes v as the header value.
func (h HeaderValue) Long(v int64) { h.modifyHeader(strconv.FormatInt(v, 10)) }

// Float writes v as the header value.
func (h HeaderValue) Float(v float32) {
	h.modifyHeader(strconv.FormatFloat(float64(v), 'f', -1, 32))
}

// Double writes v as the header value.
func (h HeaderValue) Double(v float64) {
	h.modifyHeader(strconv.FormatFloat(v, 'f', -1, 64))
}

// BigInteger writes v as the header value.
func (h HeaderValue) BigInteger(v *big.Int) { h.modifyHeader(v.String()) }

// BigDecimal writes v as the header value.
func (h HeaderValue) BigDecimal(v *big.Float) { h.modifyHeader(v.Text('f', -1)) }

// Blob writes v, base64-encoded, as the header value.
func (h HeaderValue) Blob(v []byte) { h.modifyHeader(base64.StdEncoding.EncodeToString(v)) }

// Headers scopes header writes under a common name prefix, for
// smithy.api#httpPrefixHeaders map members.
type Headers struct {
	header http.Header
	prefix string
}

// AddHeader returns a HeaderValue for the header named prefix+suffix.
func (h Headers) AddHeader(suffix string) HeaderValue {
	return newHeaderValue(h.header, h.prefix+suffix, true)
}
