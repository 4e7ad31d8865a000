package httpbinding

import (
	"encoding/base64"
	"math/big"
	"net/url"
	"strconv"
)

// QueryValue writes a single value into a query string parameter, either
// overwriting any prior value or appending to it, per how it was constructed
// (Encoder.SetQuery vs Encoder.AddQuery).
type QueryValue struct {
	query  url.Values
	key    string
	append bool
}

func newQueryValue(query url.Values, key string, appendValue bool) QueryValue {
	return QueryValue{query: query, key: key, append: appendValue}
}

func (q QueryValue) modifyQuery(value string) {
	if q.append {
		q.query.Add(q.key, value)
	} else {
		q.query.Set(q.key, value)
	}
}

// String writes v as the query value.
func (q QueryValue) String(v string) { q.modifyQuery(v) }

// Boolean writes v as the query value.
func (q QueryValue) Boolean(v bool) { q.modifyQuery(strconv.FormatBool(v)) }

// Byte writes v as the query value.
func (q QueryValue) Byte(v int8) { q.Long(int64(v)) }

// Short writes v as the query value.
func (q QueryValue) Short(v int16) { q.Long(int64(v)) }

// Integer writes v as the query value.
func (q QueryValue) Integer(v int32) { q.Long(int64(v)) }

// Long writes v as the query value.
func (q QueryValue) Long(v int64) { q.modifyQuery(strconv.FormatInt(v, 10)) }

// Float writes v as the query value.
func (q QueryValue) Float(v float32) {
	q.modifyQuery(strconv.FormatFloat(float64(v), 'f', -1, 32))
}

// Double writes v as the query value.
func (q QueryValue) Double(v float64) {
	q.modifyQuery(strconv.FormatFloat(v, 'f', -1, 64))
}

// BigInteger writes v as the query value.
func (q QueryValue) BigInteger(v *big.Int) { q.modifyQuery(v.String()) }

// BigDecimal writes v as the query value.
func (q QueryValue) BigDecimal(v *big.Float) { q.modifyQuery(v.Text('f', -1)) }

// Blob writes v, base64-encoded, as the query value.
func (q QueryValue) Blob(v []byte) { q.modifyQuery(base64.StdEncoding.EncodeToString(v)) }
