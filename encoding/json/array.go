package json

import "bytes"

// Array represents the encoding of a JSON array.
type Array struct {
	w       *bytes.Buffer
	scratch *[]byte

	wroteElement bool
}

func newArray(w *bytes.Buffer, scratch *[]byte) *Array {
	w.WriteByte('[')
	return &Array{w: w, scratch: scratch}
}

// Value returns a Value encoder for the next element.
func (a *Array) Value() Value {
	if a.wroteElement {
		a.w.WriteByte(',')
	}
	a.wroteElement = true

	return newValue(a.w, a.scratch)
}

// Close closes the array.
func (a *Array) Close() {
	a.w.WriteByte(']')
}
