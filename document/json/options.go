package json

import (
	"bytes"
	"encoding/json"
)

// EncoderOptions configures Encoder.
type EncoderOptions struct {
	// Indent, if non-empty, causes Encode to pretty-print with this string
	// as the per-level indent (passed through to json.MarshalIndent).
	Indent string
}

// Encoder marshals a dynamic document value to JSON.
type Encoder struct {
	options EncoderOptions
}

// Encode marshals v to JSON.
func (e *Encoder) Encode(v interface{}) ([]byte, error) {
	if e.options.Indent != "" {
		return json.MarshalIndent(v, "", e.options.Indent)
	}
	return json.Marshal(v)
}

// DecoderOptions configures Decoder.
type DecoderOptions struct {
	// UseNumber causes Decode to unmarshal JSON numbers as json.Number
	// instead of float64, avoiding precision loss for large integers.
	UseNumber bool
}

// Decoder unmarshals JSON into a dynamic document value.
type Decoder struct {
	options DecoderOptions
}

// Decode unmarshals p into v.
func (d *Decoder) Decode(p []byte, v interface{}) error {
	if !d.options.UseNumber {
		return json.Unmarshal(p, v)
	}

	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()
	return dec.Decode(v)
}
