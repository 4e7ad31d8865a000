package json

import "bytes"

// Encoder is a JSON encoder that supports building a JSON document
// incrementally through Value/Object/Array writers, mirroring the shape of
// the xml package's encoder.
type Encoder struct {
	w       *bytes.Buffer
	scratch *[]byte

	Value
}

// NewEncoder returns a JSON encoder writing to an internal buffer.
func NewEncoder() *Encoder {
	w := bytes.NewBuffer(nil)
	scratch := make([]byte, 64)
	return &Encoder{
		w:       w,
		scratch: &scratch,
		Value:   newValue(w, &scratch),
	}
}

// String returns the accumulated JSON document as a string.
func (e *Encoder) String() string { return e.w.String() }

// Bytes returns the accumulated JSON document.
func (e *Encoder) Bytes() []byte { return e.w.Bytes() }
