package cbor

import (
	"fmt"
	"time"

	smithy "github.com/smithy-lang/smithy-runtime-go"
	smithytime "github.com/smithy-lang/smithy-runtime-go/time"
)

type mapCursor struct {
	schema *smithy.Schema // non-nil for ReadStruct, nil for a plain ReadMap
	m      Map
	keys   []string
	idx    int
	curKey string
}

type listCursor struct {
	l   List
	idx int
}

// pendingValue holds a single Value queued for the next read, used when a
// union variant's payload is decoded ahead of the caller asking for it.
type pendingValue struct{ v Value }

// ShapeDeserializer implements unmarshaling of CBOR into Smithy shapes. The
// input is decoded into a Value tree up front, then walked with a cursor
// stack as the caller drives ReadStruct/ReadList/ReadMap.
type ShapeDeserializer struct {
	err   error
	root  Value
	stack []any // *mapCursor, *listCursor, or pendingValue
}

// NewShapeDeserializer decodes p into a deserializer. A malformed document
// doesn't fail immediately; the error surfaces from the first Read call.
func NewShapeDeserializer(p []byte) *ShapeDeserializer {
	v, err := Decode(p)
	return &ShapeDeserializer{root: v, err: err}
}

var _ smithy.ShapeDeserializer = (*ShapeDeserializer)(nil)

func (d *ShapeDeserializer) top() any {
	if len(d.stack) == 0 {
		return nil
	}
	return d.stack[len(d.stack)-1]
}

func (d *ShapeDeserializer) push(f any) { d.stack = append(d.stack, f) }
func (d *ShapeDeserializer) pop()       { d.stack = d.stack[:len(d.stack)-1] }

// value returns the Value at the current read position: the member most
// recently selected by ReadStructMember/ReadMapKey, the next element of an
// open list, a queued union payload, or the document root.
func (d *ShapeDeserializer) value(s *smithy.Schema) (Value, error) {
	if d.err != nil {
		return nil, d.err
	}

	switch f := d.top().(type) {
	case *mapCursor:
		v, ok := f.m[f.curKey]
		if !ok {
			return &Nil{}, nil
		}
		return v, nil
	case *listCursor:
		v := f.l[f.idx]
		f.idx++
		return v, nil
	case pendingValue:
		d.pop()
		return f.v, nil
	default:
		return d.root, nil
	}
}

func (d *ShapeDeserializer) readInt(s *smithy.Schema) (int64, error) {
	val, err := d.value(s)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case Uint:
		return int64(v), nil
	case NegInt:
		return -int64(v), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", val)
	}
}

func (d *ShapeDeserializer) ReadInt8(s *smithy.Schema, v *int8) error {
	n, err := d.readInt(s)
	*v = int8(n)
	return err
}

func (d *ShapeDeserializer) ReadInt16(s *smithy.Schema, v *int16) error {
	n, err := d.readInt(s)
	*v = int16(n)
	return err
}

func (d *ShapeDeserializer) ReadInt32(s *smithy.Schema, v *int32) error {
	n, err := d.readInt(s)
	*v = int32(n)
	return err
}

func (d *ShapeDeserializer) ReadInt64(s *smithy.Schema, v *int64) error {
	n, err := d.readInt(s)
	*v = n
	return err
}

func (d *ShapeDeserializer) ReadInt8Ptr(s *smithy.Schema, v **int8) error {
	if *v == nil {
		*v = new(int8)
	}
	return d.ReadInt8(s, *v)
}

func (d *ShapeDeserializer) ReadInt16Ptr(s *smithy.Schema, v **int16) error {
	if *v == nil {
		*v = new(int16)
	}
	return d.ReadInt16(s, *v)
}

func (d *ShapeDeserializer) ReadInt32Ptr(s *smithy.Schema, v **int32) error {
	if *v == nil {
		*v = new(int32)
	}
	return d.ReadInt32(s, *v)
}

func (d *ShapeDeserializer) ReadInt64Ptr(s *smithy.Schema, v **int64) error {
	if *v == nil {
		*v = new(int64)
	}
	return d.ReadInt64(s, *v)
}

func (d *ShapeDeserializer) readFloat(s *smithy.Schema) (float64, error) {
	val, err := d.value(s)
	if err != nil {
		return 0, err
	}

	switch v := val.(type) {
	case Float32:
		return float64(v), nil
	case Float64:
		return float64(v), nil
	case Uint:
		return float64(v), nil
	case NegInt:
		return -float64(v), nil
	default:
		return 0, fmt.Errorf("expected float, got %T", val)
	}
}

func (d *ShapeDeserializer) ReadFloat32(s *smithy.Schema, v *float32) error {
	n, err := d.readFloat(s)
	*v = float32(n)
	return err
}

func (d *ShapeDeserializer) ReadFloat64(s *smithy.Schema, v *float64) error {
	n, err := d.readFloat(s)
	*v = n
	return err
}

func (d *ShapeDeserializer) ReadFloat32Ptr(s *smithy.Schema, v **float32) error {
	if *v == nil {
		*v = new(float32)
	}
	return d.ReadFloat32(s, *v)
}

func (d *ShapeDeserializer) ReadFloat64Ptr(s *smithy.Schema, v **float64) error {
	if *v == nil {
		*v = new(float64)
	}
	return d.ReadFloat64(s, *v)
}

func (d *ShapeDeserializer) ReadBool(s *smithy.Schema, v *bool) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	b, ok := val.(Bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", val)
	}
	*v = bool(b)
	return nil
}

func (d *ShapeDeserializer) ReadBoolPtr(s *smithy.Schema, v **bool) error {
	if *v == nil {
		*v = new(bool)
	}
	return d.ReadBool(s, *v)
}

func (d *ShapeDeserializer) ReadString(s *smithy.Schema, v *string) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	str, ok := val.(String)
	if !ok {
		return fmt.Errorf("expected string, got %T", val)
	}
	*v = string(str)
	return nil
}

func (d *ShapeDeserializer) ReadStringPtr(s *smithy.Schema, v **string) error {
	if *v == nil {
		*v = new(string)
	}
	return d.ReadString(s, *v)
}

func (d *ShapeDeserializer) ReadBlob(s *smithy.Schema, v *[]byte) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	sl, ok := val.(Slice)
	if !ok {
		return fmt.Errorf("expected byte string, got %T", val)
	}
	*v = []byte(sl)
	return nil
}

func tagNumber(v Value) (float64, error) {
	switch n := v.(type) {
	case Float64:
		return float64(n), nil
	case Float32:
		return float64(n), nil
	case Uint:
		return float64(n), nil
	case NegInt:
		return -float64(n), nil
	default:
		return 0, fmt.Errorf("unexpected tag payload type: %T", v)
	}
}

func (d *ShapeDeserializer) ReadTime(s *smithy.Schema, v *time.Time) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	tag, ok := val.(*Tag)
	if !ok || tag.ID != timestampTag {
		return fmt.Errorf("expected tag %d timestamp, got %T", timestampTag, val)
	}

	seconds, err := tagNumber(tag.Value)
	if err != nil {
		return err
	}

	*v = smithytime.ParseEpochSeconds(seconds)
	return nil
}

func (d *ShapeDeserializer) ReadTimePtr(s *smithy.Schema, v **time.Time) error {
	if *v == nil {
		*v = new(time.Time)
	}
	return d.ReadTime(s, *v)
}

func (d *ShapeDeserializer) ReadDocument(s *smithy.Schema, v *smithy.Document) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	doc, err := readDocumentValue(val)
	if err != nil {
		return err
	}
	*v = doc
	return nil
}

func readDocumentValue(v Value) (smithy.Document, error) {
	switch t := v.(type) {
	case *Nil:
		return smithy.NewDocumentNull(), nil
	case Bool:
		return smithy.NewDocumentBoolean(bool(t)), nil
	case Uint:
		return smithy.NewDocumentUint64(uint64(t)), nil
	case NegInt:
		return smithy.NewDocumentInt64(-int64(t)), nil
	case Float32:
		return smithy.NewDocumentFloat64(float64(t)), nil
	case Float64:
		return smithy.NewDocumentFloat64(float64(t)), nil
	case String:
		return smithy.NewDocumentString(string(t)), nil
	case Slice:
		return smithy.NewDocumentBlob([]byte(t)), nil
	case *Tag:
		if t.ID == timestampTag {
			seconds, err := tagNumber(t.Value)
			if err != nil {
				return smithy.Document{}, err
			}
			return smithy.NewDocumentTimestamp(smithytime.ParseEpochSeconds(seconds)), nil
		}
		return readDocumentValue(t.Value)
	case List:
		list := make([]smithy.Document, len(t))
		for i, e := range t {
			dv, err := readDocumentValue(e)
			if err != nil {
				return smithy.Document{}, err
			}
			list[i] = dv
		}
		return smithy.NewDocumentList(list), nil
	case Map:
		m := make(map[string]smithy.Document, len(t))
		for k, e := range t {
			dv, err := readDocumentValue(e)
			if err != nil {
				return smithy.Document{}, err
			}
			m[k] = dv
		}
		return smithy.NewDocumentMap(m), nil
	default:
		return smithy.Document{}, fmt.Errorf("unsupported cbor value for document: %T", v)
	}
}

func (d *ShapeDeserializer) ReadList(s *smithy.Schema) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	l, ok := val.(List)
	if !ok {
		if _, isNil := val.(*Nil); isNil {
			d.push(&listCursor{})
			return nil
		}
		return fmt.Errorf("expected list, got %T", val)
	}

	d.push(&listCursor{l: l})
	return nil
}

func (d *ShapeDeserializer) ReadListItem(s *smithy.Schema) (bool, error) {
	f, ok := d.top().(*listCursor)
	if !ok {
		return false, fmt.Errorf("ReadListItem called without ReadList?")
	}

	if f.idx >= len(f.l) {
		d.pop()
		return false, nil
	}
	return true, nil
}

func (d *ShapeDeserializer) ReadMap(s *smithy.Schema) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	m, ok := val.(Map)
	if !ok {
		if _, isNil := val.(*Nil); isNil {
			d.push(&mapCursor{m: Map{}})
			return nil
		}
		return fmt.Errorf("expected map, got %T", val)
	}

	d.push(&mapCursor{m: m, keys: mapKeys(m)})
	return nil
}

func (d *ShapeDeserializer) ReadMapKey(s *smithy.Schema) (string, bool, error) {
	f, ok := d.top().(*mapCursor)
	if !ok {
		return "", false, fmt.Errorf("ReadMapKey called without ReadMap?")
	}

	if f.idx >= len(f.keys) {
		d.pop()
		return "", false, nil
	}

	key := f.keys[f.idx]
	f.idx++
	f.curKey = key
	return key, true, nil
}

func (d *ShapeDeserializer) ReadStruct(s *smithy.Schema) error {
	val, err := d.value(s)
	if err != nil {
		return err
	}

	m, ok := val.(Map)
	if !ok {
		if _, isNil := val.(*Nil); isNil {
			d.push(&mapCursor{schema: s, m: Map{}})
			return nil
		}
		return fmt.Errorf("expected map, got %T", val)
	}

	d.push(&mapCursor{schema: s, m: m, keys: mapKeys(m)})
	return nil
}

func (d *ShapeDeserializer) ReadStructMember() (*smithy.Schema, error) {
	f, ok := d.top().(*mapCursor)
	if !ok {
		return nil, fmt.Errorf("ReadStructMember called without ReadStruct?")
	}

	for f.idx < len(f.keys) {
		key := f.keys[f.idx]
		f.idx++

		member := f.schema.Members[key]
		if member == nil {
			// TODO smithy.api#jsonName-equivalent renaming
			continue
		}

		f.curKey = key
		return member, nil
	}

	d.pop()
	return nil, nil
}

func (d *ShapeDeserializer) ReadUnion(s *smithy.Schema) (*smithy.Schema, error) {
	val, err := d.value(s)
	if err != nil {
		return nil, err
	}

	m, ok := val.(Map)
	if !ok {
		return nil, fmt.Errorf("expected map for union, got %T", val)
	}
	if len(m) != 1 {
		return nil, fmt.Errorf("union must have exactly one member")
	}

	for k, v := range m {
		member := s.Members[k]
		if member == nil {
			return nil, fmt.Errorf("unknown union variant: %s", k)
		}

		d.push(pendingValue{v: v})
		return member, nil
	}

	panic("unreachable")
}

func mapKeys(m Map) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
