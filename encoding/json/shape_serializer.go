package json

import (
	"math"
	"math/big"
	"time"

	smithy "github.com/smithy-lang/smithy-runtime-go"
	smithytime "github.com/smithy-lang/smithy-runtime-go/time"
	"github.com/smithy-lang/smithy-runtime-go/traits"
)

// ShapeSerializer implements marshaling of Smithy shapes to JSON.
type ShapeSerializer struct {
	root *Encoder
	head stack
}

var _ smithy.ShapeSerializer = (*ShapeSerializer)(nil)

// Bytes returns the encoded JSON document.
func (ss *ShapeSerializer) Bytes() []byte {
	return ss.root.Bytes()
}

func (ss *ShapeSerializer) WriteInt8Ptr(s *smithy.Schema, v *int8) {
	if v != nil {
		ss.WriteInt8(s, *v)
	}
}

func (ss *ShapeSerializer) WriteInt16Ptr(s *smithy.Schema, v *int16) {
	if v != nil {
		ss.WriteInt16(s, *v)
	}
}

func (ss *ShapeSerializer) WriteInt32Ptr(s *smithy.Schema, v *int32) {
	if v != nil {
		ss.WriteInt32(s, *v)
	}
}

func (ss *ShapeSerializer) WriteInt64Ptr(s *smithy.Schema, v *int64) {
	if v != nil {
		ss.WriteInt64(s, *v)
	}
}

func (ss *ShapeSerializer) WriteFloat32Ptr(s *smithy.Schema, v *float32) {
	if v != nil {
		ss.WriteFloat32(s, *v)
	}
}

func (ss *ShapeSerializer) WriteFloat64Ptr(s *smithy.Schema, v *float64) {
	if v != nil {
		ss.WriteFloat64(s, *v)
	}
}

func (ss *ShapeSerializer) WriteBoolPtr(s *smithy.Schema, v *bool) {
	if v != nil {
		ss.WriteBool(s, *v)
	}
}

func (ss *ShapeSerializer) WriteStringPtr(s *smithy.Schema, v *string) {
	if v != nil {
		ss.WriteString(s, *v)
	}
}

func (ss *ShapeSerializer) WriteTimePtr(s *smithy.Schema, v *time.Time) {
	if v != nil {
		ss.WriteTime(s, *v)
	}
}

// value returns the Value encoder at the current write position: the
// current container's next slot (keyed for an Object, positional for an
// Array), or the root document value if nothing is open.
func (ss *ShapeSerializer) value(s *smithy.Schema) Value {
	switch enc := ss.head.Top().(type) {
	case *Object:
		return enc.Key(s.ID.Member)
	case *Array:
		return enc.Value()
	case Value:
		ss.head.Pop()
		return enc
	default:
		return ss.root.Value
	}
}

func (ss *ShapeSerializer) WriteBool(s *smithy.Schema, v bool) {
	ss.value(s).Boolean(v)
}

func (ss *ShapeSerializer) WriteInt8(s *smithy.Schema, v int8) {
	ss.value(s).Byte(v)
}

func (ss *ShapeSerializer) WriteInt16(s *smithy.Schema, v int16) {
	ss.value(s).Short(v)
}

func (ss *ShapeSerializer) WriteInt32(s *smithy.Schema, v int32) {
	ss.value(s).Integer(v)
}

func (ss *ShapeSerializer) WriteInt64(s *smithy.Schema, v int64) {
	ss.value(s).Long(v)
}

func (ss *ShapeSerializer) WriteString(s *smithy.Schema, v string) {
	ss.value(s).String(v)
}

func (ss *ShapeSerializer) WriteBlob(s *smithy.Schema, v []byte) {
	ss.value(s).Base64EncodeBytes(v)
}

func (ss *ShapeSerializer) WriteFloat32(s *smithy.Schema, v float32) {
	ss.writeFloat(s, float64(v), 32)
}

func (ss *ShapeSerializer) WriteFloat64(s *smithy.Schema, v float64) {
	ss.writeFloat(s, v, 64)
}

// writeFloat writes non-finite values as the modeled strings
// "NaN"/"Infinity"/"-Infinity", since those aren't valid JSON numbers.
func (ss *ShapeSerializer) writeFloat(s *smithy.Schema, v float64, bits int) {
	val := ss.value(s)
	switch {
	case math.IsNaN(v):
		val.String("NaN")
	case math.IsInf(v, 1):
		val.String("Infinity")
	case math.IsInf(v, -1):
		val.String("-Infinity")
	case bits == 32:
		val.Float(float32(v))
	default:
		val.Double(v)
	}
}

func (ss *ShapeSerializer) WriteBigInteger(s *smithy.Schema, v big.Int) {
	ss.value(s).BigInteger(&v)
}

func (ss *ShapeSerializer) WriteBigDecimal(s *smithy.Schema, v big.Float) {
	ss.value(s).BigDecimal(&v)
}

func (ss *ShapeSerializer) WriteTime(s *smithy.Schema, v time.Time) {
	format := "epoch-seconds"
	if t, ok := smithy.SchemaTrait[*traits.TimestampFormat](s); ok {
		format = t.Format
	}

	switch format {
	case "date-time":
		ss.WriteString(s, smithytime.FormatDateTime(v))
	case "http-date":
		ss.WriteString(s, smithytime.FormatHTTPDate(v))
	default:
		ss.WriteFloat64(s, smithytime.FormatEpochSeconds(v))
	}
}

func (ss *ShapeSerializer) WriteNil(s *smithy.Schema) {
	ss.value(s).Null()
}

func (ss *ShapeSerializer) WriteList(s *smithy.Schema) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		ss.head.Push(enc.Key(s.ID.Member).Array())
	case *Array:
		ss.head.Push(enc.Value().Array())
	case Value:
		ss.head.Pop()
		ss.head.Push(enc.Array())
	default:
		ss.head.Push(ss.root.Value.Array())
	}
}

func (ss *ShapeSerializer) CloseList() {
	if enc, ok := ss.head.Top().(*Array); ok {
		enc.Close()
		ss.head.Pop()
	}
}

func (ss *ShapeSerializer) WriteMap(s *smithy.Schema) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		ss.head.Push(enc.Key(s.ID.Member).Object())
	case *Array:
		ss.head.Push(enc.Value().Object())
	case Value:
		ss.head.Pop()
		ss.head.Push(enc.Object())
	default:
		ss.head.Push(ss.root.Value.Object())
	}
}

func (ss *ShapeSerializer) WriteKey(s *smithy.Schema, key string) {
	if enc, ok := ss.head.Top().(*Object); ok {
		ss.head.Push(enc.Key(key))
	}
}

func (ss *ShapeSerializer) CloseMap() {
	if enc, ok := ss.head.Top().(*Object); ok {
		enc.Close()
		ss.head.Pop()
	}
}

func (ss *ShapeSerializer) WriteStruct(s *smithy.Schema, v smithy.Serializable) {
	if v == nil {
		ss.WriteNil(s)
		return
	}

	switch enc := ss.head.Top().(type) {
	case *Object:
		ss.head.Push(enc.Key(s.ID.Member).Object())
	case *Array:
		ss.head.Push(enc.Value().Object())
	case Value:
		ss.head.Pop()
		ss.head.Push(enc.Object())
	default:
		ss.head.Push(ss.root.Value.Object())
	}

	v.Serialize(ss)

	if enc, ok := ss.head.Top().(*Object); ok {
		enc.Close()
		ss.head.Pop()
	}
}

func (ss *ShapeSerializer) WriteUnion(s, variant *smithy.Schema, v smithy.Serializable) {
	switch enc := ss.head.Top().(type) {
	case *Object:
		ss.head.Push(enc.Key(s.ID.Member).Object())
	case *Array:
		ss.head.Push(enc.Value().Object())
	case Value:
		ss.head.Pop()
		ss.head.Push(enc.Object())
	default:
		ss.head.Push(ss.root.Value.Object())
	}

	top := ss.head.Top().(*Object)
	ss.head.Push(top.Key(variant.ID.Member))

	v.Serialize(ss)

	if _, ok := ss.head.Top().(Value); ok {
		ss.head.Pop()
	}
	if enc, ok := ss.head.Top().(*Object); ok {
		enc.Close()
		ss.head.Pop()
	}
}

// WriteDocument writes an untyped document value by walking its accessors
// directly, since the document carries no schema of its own to dispatch
// through the usual Write* methods.
func (ss *ShapeSerializer) WriteDocument(s *smithy.Schema, v smithy.Document) {
	val := ss.value(s)
	writeDocumentValue(val, v)
}

func writeDocumentValue(val Value, v smithy.Document) {
	if v.IsSensitive() {
		val.String("*REDACTED*")
		return
	}

	switch v.Kind() {
	case smithy.DocumentKindNull:
		val.Null()
	case smithy.DocumentKindBoolean:
		b, _ := v.Boolean()
		val.Boolean(b)
	case smithy.DocumentKindNumber:
		switch v.NumberKind() {
		case smithy.NumberKindInt64:
			n, _ := v.Int64()
			val.Long(n)
		case smithy.NumberKindUint64:
			n, _ := v.Uint64()
			val.Long(int64(n))
		default:
			f, _ := v.Float64()
			val.Double(f)
		}
	case smithy.DocumentKindString:
		s, _ := v.StringValue()
		val.String(s)
	case smithy.DocumentKindBlob:
		b, _ := v.Blob()
		val.Base64EncodeBytes(b)
	case smithy.DocumentKindTimestamp:
		t, _ := v.Timestamp()
		val.String(smithytime.FormatDateTime(t))
	case smithy.DocumentKindList:
		list, _ := v.List()
		arr := val.Array()
		for _, e := range list {
			writeDocumentValue(arr.Value(), e)
		}
		arr.Close()
	case smithy.DocumentKindMap:
		m, _ := v.Map()
		obj := val.Object()
		for k, e := range m {
			writeDocumentValue(obj.Key(k), e)
		}
		obj.Close()
	case smithy.DocumentKindStruct:
		val.Null()
	}
}
