package cbor

import (
	smithy "github.com/smithy-lang/smithy-runtime-go"
)

// Codec is a CBOR codec, implementing the Smithy RPCv2-CBOR wire format.
type Codec struct{}

var _ smithy.Codec = (*Codec)(nil)

// Serializer returns a CBOR shape serializer.
func (c *Codec) Serializer() smithy.ShapeSerializer {
	return &ShapeSerializer{}
}

// Deserializer returns a CBOR shape deserializer over p.
func (c *Codec) Deserializer(p []byte) smithy.ShapeDeserializer {
	return NewShapeDeserializer(p)
}
