package json

import (
	"bytes"
	"math/big"
	"strconv"
)

// Value represents a single JSON value position: a scalar, an object, or an
// array. Exactly one write method should be called per Value.
type Value struct {
	w       *bytes.Buffer
	scratch *[]byte
}

func newValue(w *bytes.Buffer, scratch *[]byte) Value {
	return Value{w: w, scratch: scratch}
}

// String encodes v as a JSON string.
func (jv Value) String(v string) {
	escapeString(jv.w, v)
}

// Byte encodes v as a JSON number.
func (jv Value) Byte(v int8) { jv.Long(int64(v)) }

// Short encodes v as a JSON number.
func (jv Value) Short(v int16) { jv.Long(int64(v)) }

// Integer encodes v as a JSON number.
func (jv Value) Integer(v int32) { jv.Long(int64(v)) }

// Long encodes v as a JSON number.
func (jv Value) Long(v int64) {
	*jv.scratch = strconv.AppendInt((*jv.scratch)[:0], v, 10)
	jv.w.Write(*jv.scratch)
}

// Float encodes v as a JSON number.
func (jv Value) Float(v float32) { jv.float(float64(v), 32) }

// Double encodes v as a JSON number.
func (jv Value) Double(v float64) { jv.float(v, 64) }

func (jv Value) float(v float64, bits int) {
	*jv.scratch = strconv.AppendFloat((*jv.scratch)[:0], v, 'g', -1, bits)
	jv.w.Write(*jv.scratch)
}

// Boolean encodes v as a JSON boolean.
func (jv Value) Boolean(v bool) {
	*jv.scratch = strconv.AppendBool((*jv.scratch)[:0], v)
	jv.w.Write(*jv.scratch)
}

// Base64EncodeBytes writes v as a base64-encoded JSON string.
func (jv Value) Base64EncodeBytes(v []byte) {
	encodeByteSlice(jv.w, v)
}

// BigInteger encodes v as a bare JSON number (not a string), per the
// smithy.api#bigInteger wire contract.
func (jv Value) BigInteger(v *big.Int) {
	jv.w.WriteString(v.Text(10))
}

// BigDecimal encodes v as a bare JSON number.
func (jv Value) BigDecimal(v *big.Float) {
	if i, accuracy := v.Int64(); accuracy == big.Exact {
		jv.Long(i)
		return
	}
	jv.w.WriteString(v.Text('e', -1))
}

// Null encodes the JSON literal null.
func (jv Value) Null() {
	jv.w.WriteString("null")
}

// Write writes p directly, unescaped, as the value: used for pre-encoded
// JSON (e.g. a document's own encoding).
func (jv Value) Write(p []byte) {
	jv.w.Write(p)
}

// Object returns an object encoder for this value.
func (jv Value) Object() *Object {
	return newObject(jv.w, jv.scratch)
}

// Array returns an array encoder for this value.
func (jv Value) Array() *Array {
	return newArray(jv.w, jv.scratch)
}
