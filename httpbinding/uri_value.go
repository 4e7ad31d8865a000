package httpbinding

import (
	"bytes"
	"math/big"
	"strconv"
)

// URIValue writes a single value into a REST URI path template, replacing
// the {key} (or greedy {key+}) placeholder with the formatted value.
type URIValue struct {
	path, rawPath, pathBuffer *[]byte
	key                       string
}

func newURIValue(path, rawPath, pathBuffer *[]byte, key string) URIValue {
	return URIValue{path: path, rawPath: rawPath, pathBuffer: pathBuffer, key: key}
}

func (u URIValue) modifyURI(value string) error {
	greedy := []byte("{" + u.key + "+}")
	plain := []byte("{" + u.key + "}")

	if bytes.Contains(*u.path, greedy) {
		*u.path = bytes.Replace(*u.path, greedy, []byte(value), 1)
		*u.rawPath = bytes.Replace(*u.rawPath, greedy, []byte(EscapePath(value, false)), 1)
		return nil
	}

	*u.path = bytes.Replace(*u.path, plain, []byte(value), 1)
	*u.rawPath = bytes.Replace(*u.rawPath, plain, []byte(EscapePath(value, true)), 1)
	return nil
}

// String writes v into the path template.
func (u URIValue) String(v string) error { return u.modifyURI(v) }

// Boolean writes v into the path template.
func (u URIValue) Boolean(v bool) error { return u.modifyURI(strconv.FormatBool(v)) }

// Byte writes v into the path template.
func (u URIValue) Byte(v int8) error { return u.Long(int64(v)) }

// Short writes v into the path template.
func (u URIValue) Short(v int16) error { return u.Long(int64(v)) }

// Integer writes v into the path template.
func (u URIValue) Integer(v int32) error { return u.Long(int64(v)) }

// Long writes v into the path template.
func (u URIValue) Long(v int64) error { return u.modifyURI(strconv.FormatInt(v, 10)) }

// Float writes v into the path template.
func (u URIValue) Float(v float32) error {
	return u.modifyURI(strconv.FormatFloat(float64(v), 'f', -1, 32))
}

// Double writes v into the path template.
func (u URIValue) Double(v float64) error {
	return u.modifyURI(strconv.FormatFloat(v, 'f', -1, 64))
}

// BigInteger writes v into the path template.
func (u URIValue) BigInteger(v *big.Int) error { return u.modifyURI(v.String()) }

// BigDecimal writes v into the path template.
func (u URIValue) BigDecimal(v *big.Float) error { return u.modifyURI(v.Text('f', -1)) }
