package cbor

import (
	"math/big"
	"time"

	smithy "github.com/smithy-lang/smithy-runtime-go"
)

// timestampTag is the RFC 8949 §3.4.2 tag for values encoded as epoch time.
const timestampTag = 1

type listFrame struct {
	schema *smithy.Schema
	items  []Value
}
type mapFrame struct {
	schema *smithy.Schema
	items  map[string]Value
}

// ShapeSerializer implements marshaling of Smithy shapes to CBOR, building a
// Value tree in memory and encoding it in one pass on Bytes().
type ShapeSerializer struct {
	root       Value
	stack      []any // *listFrame or *mapFrame
	pendingKey string
}

var _ smithy.ShapeSerializer = (*ShapeSerializer)(nil)

// Bytes encodes the built Value tree.
func (ss *ShapeSerializer) Bytes() []byte {
	return Encode(ss.root)
}

func (ss *ShapeSerializer) top() any {
	if len(ss.stack) == 0 {
		return nil
	}
	return ss.stack[len(ss.stack)-1]
}

func (ss *ShapeSerializer) push(f any) { ss.stack = append(ss.stack, f) }

func (ss *ShapeSerializer) pop() {
	ss.stack = ss.stack[:len(ss.stack)-1]
}

// set places v at the current write position: a member of the top map
// frame (keyed by the schema's member name, or an explicit WriteKey), the
// next element of the top list frame, or the document root.
func (ss *ShapeSerializer) set(s *smithy.Schema, v Value) {
	switch f := ss.top().(type) {
	case *mapFrame:
		key := ss.pendingKey
		if key == "" {
			key = s.ID.Member
		}
		ss.pendingKey = ""
		f.items[key] = v
	case *listFrame:
		f.items = append(f.items, v)
	default:
		ss.root = v
	}
}

func intValue(v int64) Value {
	if v >= 0 {
		return Uint(uint64(v))
	}
	return NegInt(uint64(-v))
}

func (ss *ShapeSerializer) WriteInt8(s *smithy.Schema, v int8)   { ss.set(s, intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt16(s *smithy.Schema, v int16) { ss.set(s, intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt32(s *smithy.Schema, v int32) { ss.set(s, intValue(int64(v))) }
func (ss *ShapeSerializer) WriteInt64(s *smithy.Schema, v int64) { ss.set(s, intValue(v)) }

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

func (ss *ShapeSerializer) WriteFloat32(s *smithy.Schema, v float32) { ss.set(s, Float32(v)) }
func (ss *ShapeSerializer) WriteFloat64(s *smithy.Schema, v float64) { ss.set(s, Float64(v)) }

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

func (ss *ShapeSerializer) WriteBool(s *smithy.Schema, v bool) { ss.set(s, Bool(v)) }

func (ss *ShapeSerializer) WriteBoolPtr(s *smithy.Schema, v *bool) {
	if v != nil {
		ss.WriteBool(s, *v)
	}
}

func (ss *ShapeSerializer) WriteString(s *smithy.Schema, v string) { ss.set(s, String(v)) }

func (ss *ShapeSerializer) WriteStringPtr(s *smithy.Schema, v *string) {
	if v != nil {
		ss.WriteString(s, *v)
	}
}

func (ss *ShapeSerializer) WriteBlob(s *smithy.Schema, v []byte) { ss.set(s, Slice(v)) }

func (ss *ShapeSerializer) WriteBigInteger(s *smithy.Schema, v big.Int) {
	ss.set(s, String(v.Text(10)))
}

func (ss *ShapeSerializer) WriteBigDecimal(s *smithy.Schema, v big.Float) {
	ss.set(s, String(v.Text('e', -1)))
}

func (ss *ShapeSerializer) WriteTime(s *smithy.Schema, v time.Time) {
	seconds := float64(v.UnixNano()) / 1e9
	ss.set(s, &Tag{ID: timestampTag, Value: Float64(seconds)})
}

func (ss *ShapeSerializer) WriteTimePtr(s *smithy.Schema, v *time.Time) {
	if v != nil {
		ss.WriteTime(s, *v)
	}
}

func (ss *ShapeSerializer) WriteNil(s *smithy.Schema) { ss.set(s, &Nil{}) }

func (ss *ShapeSerializer) WriteList(s *smithy.Schema) {
	ss.push(&listFrame{schema: s})
}

func (ss *ShapeSerializer) CloseList() {
	f := ss.top().(*listFrame)
	ss.pop()
	ss.set(f.schema, List(f.items))
}

func (ss *ShapeSerializer) WriteMap(s *smithy.Schema) {
	ss.push(&mapFrame{schema: s, items: map[string]Value{}})
}

func (ss *ShapeSerializer) WriteKey(s *smithy.Schema, key string) {
	ss.pendingKey = key
}

func (ss *ShapeSerializer) CloseMap() {
	f := ss.top().(*mapFrame)
	ss.pop()
	ss.set(f.schema, Map(f.items))
}

func (ss *ShapeSerializer) WriteStruct(s *smithy.Schema, v smithy.Serializable) {
	if v == nil {
		ss.WriteNil(s)
		return
	}

	ss.push(&mapFrame{items: map[string]Value{}})
	v.Serialize(ss)
	f := ss.top().(*mapFrame)
	ss.pop()
	ss.set(s, Map(f.items))
}

func (ss *ShapeSerializer) WriteUnion(s, variant *smithy.Schema, v smithy.Serializable) {
	ss.push(&mapFrame{items: map[string]Value{}})
	ss.pendingKey = variant.ID.Member
	v.Serialize(ss)
	f := ss.top().(*mapFrame)
	ss.pop()
	ss.set(s, Map(f.items))
}

// WriteDocument writes an untyped document value by walking its accessors
// directly into a Value tree, mirroring the JSON codec's equivalent.
func (ss *ShapeSerializer) WriteDocument(s *smithy.Schema, v smithy.Document) {
	ss.set(s, documentValue(v))
}

func documentValue(v smithy.Document) Value {
	if v.IsSensitive() {
		return String("*REDACTED*")
	}

	switch v.Kind() {
	case smithy.DocumentKindNull:
		return &Nil{}
	case smithy.DocumentKindBoolean:
		b, _ := v.Boolean()
		return Bool(b)
	case smithy.DocumentKindNumber:
		switch v.NumberKind() {
		case smithy.NumberKindInt64:
			n, _ := v.Int64()
			return intValue(n)
		case smithy.NumberKindUint64:
			n, _ := v.Uint64()
			return Uint(n)
		default:
			f, _ := v.Float64()
			return Float64(f)
		}
	case smithy.DocumentKindString:
		s, _ := v.StringValue()
		return String(s)
	case smithy.DocumentKindBlob:
		b, _ := v.Blob()
		return Slice(b)
	case smithy.DocumentKindTimestamp:
		t, _ := v.Timestamp()
		return &Tag{ID: timestampTag, Value: Float64(float64(t.UnixNano()) / 1e9)}
	case smithy.DocumentKindList:
		list, _ := v.List()
		items := make([]Value, len(list))
		for i, e := range list {
			items[i] = documentValue(e)
		}
		return List(items)
	case smithy.DocumentKindMap:
		m, _ := v.Map()
		items := make(map[string]Value, len(m))
		for k, e := range m {
			items[k] = documentValue(e)
		}
		return Map(items)
	default:
		return &Nil{}
	}
}
