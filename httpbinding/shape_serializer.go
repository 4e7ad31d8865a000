package httpbinding

import (
	"encoding/base64"
	"math/big"
	"strconv"
	"strings"
	"time"

	smithy "github.com/smithy-lang/smithy-runtime-go"
	smithytime "github.com/smithy-lang/smithy-runtime-go/time"
	"github.com/smithy-lang/smithy-runtime-go/traits"
)

// listFrame accumulates the values of a list bound by httpHeader (joined with
// ", " on CloseList, after quoting each string item that contains a comma or
// a double quote) or httpQuery (each value appended as its own query
// entry, written as it arrives rather than buffered).
type listFrame struct {
	mode   string // "header", "query", or "" for an unbound list
	name   string
	values []string
}

// mapFrame records which trait opened the currently-open map, and the
// header-name prefix when that trait is httpPrefixHeaders.
type mapFrame struct {
	mode   string // "prefixHeaders" or "queryParams"
	prefix string
}

// ShapeSerializer binds a modeled shape's httpLabel, httpHeader, httpQuery,
// httpPrefixHeaders, and httpQueryParams members onto a request's URI,
// headers, and query string. It never touches the request body: a member
// bound by httpPayload is left for the protocol's own body codec.
type ShapeSerializer struct {
	enc *Encoder

	list       *listFrame
	mapv       *mapFrame
	pendingKey string
}

var _ smithy.ShapeSerializer = (*ShapeSerializer)(nil)

// New returns a new HTTP binding shape serializer writing into enc.
func New(enc *Encoder) *ShapeSerializer {
	return &ShapeSerializer{enc: enc}
}

// Bytes returns nil: this serializer writes directly into enc rather than
// producing a byte buffer.
func (s *ShapeSerializer) Bytes() []byte { return nil }

// sink resolves where the next scalar write should land, honoring whichever
// container (list or prefix-headers map) is currently open, then falling
// back to the member's own binding trait.
func (s *ShapeSerializer) sink(schema *smithy.Schema) func(string) {
	if s.mapv != nil {
		key := s.pendingKey
		switch s.mapv.mode {
		case "prefixHeaders":
			prefix := s.mapv.prefix
			return func(v string) { s.enc.Headers(prefix).AddHeader(key).String(v) }
		case "queryParams":
			return func(v string) { s.enc.SetQuery(key).String(v) }
		}
	}

	if s.list != nil {
		switch s.list.mode {
		case "query":
			name := s.list.name
			return func(v string) { s.enc.AddQuery(name).String(v) }
		case "header":
			f := s.list
			return func(v string) { f.values = append(f.values, v) }
		default:
			return func(string) {}
		}
	}

	if h, ok := smithy.SchemaTrait[*traits.HTTPHeader](schema); ok {
		return func(v string) { s.enc.SetHeader(h.Name).String(v) }
	}
	if q, ok := smithy.SchemaTrait[*traits.HTTPQuery](schema); ok {
		return func(v string) { s.enc.SetQuery(q.Name).String(v) }
	}
	if _, ok := smithy.SchemaTrait[*traits.HTTPLabel](schema); ok {
		name := schema.ID.Member
		return func(v string) { _ = s.enc.SetURI(name).String(v) }
	}
	return func(string) {}
}

func (s *ShapeSerializer) WriteInt8(schema *smithy.Schema, v int8) { s.writeInt(schema, int64(v)) }

func (s *ShapeSerializer) WriteInt16(schema *smithy.Schema, v int16) { s.writeInt(schema, int64(v)) }

func (s *ShapeSerializer) WriteInt32(schema *smithy.Schema, v int32) { s.writeInt(schema, int64(v)) }

func (s *ShapeSerializer) WriteInt64(schema *smithy.Schema, v int64) { s.writeInt(schema, v) }

func (s *ShapeSerializer) writeInt(schema *smithy.Schema, v int64) {
	s.sink(schema)(strconv.FormatInt(v, 10))
}

func (s *ShapeSerializer) WriteInt8Ptr(schema *smithy.Schema, v *int8) {
	if v != nil {
		s.WriteInt8(schema, *v)
	}
}

func (s *ShapeSerializer) WriteInt16Ptr(schema *smithy.Schema, v *int16) {
	if v != nil {
		s.WriteInt16(schema, *v)
	}
}

func (s *ShapeSerializer) WriteInt32Ptr(schema *smithy.Schema, v *int32) {
	if v != nil {
		s.WriteInt32(schema, *v)
	}
}

func (s *ShapeSerializer) WriteInt64Ptr(schema *smithy.Schema, v *int64) {
	if v != nil {
		s.WriteInt64(schema, *v)
	}
}

func (s *ShapeSerializer) WriteFloat32(schema *smithy.Schema, v float32) {
	s.sink(schema)(strconv.FormatFloat(float64(v), 'f', -1, 32))
}

func (s *ShapeSerializer) WriteFloat64(schema *smithy.Schema, v float64) {
	s.sink(schema)(strconv.FormatFloat(v, 'f', -1, 64))
}

func (s *ShapeSerializer) WriteFloat32Ptr(schema *smithy.Schema, v *float32) {
	if v != nil {
		s.WriteFloat32(schema, *v)
	}
}

func (s *ShapeSerializer) WriteFloat64Ptr(schema *smithy.Schema, v *float64) {
	if v != nil {
		s.WriteFloat64(schema, *v)
	}
}

func (s *ShapeSerializer) WriteBool(schema *smithy.Schema, v bool) {
	s.sink(schema)(strconv.FormatBool(v))
}

func (s *ShapeSerializer) WriteBoolPtr(schema *smithy.Schema, v *bool) {
	if v != nil {
		s.WriteBool(schema, *v)
	}
}

func (s *ShapeSerializer) WriteString(schema *smithy.Schema, v string) {
	if s.mapv == nil && s.list != nil && s.list.mode == "header" && strings.ContainsAny(v, ",\"") {
		v = strconv.Quote(v)
	}
	s.sink(schema)(v)
}

func (s *ShapeSerializer) WriteStringPtr(schema *smithy.Schema, v *string) {
	if v != nil {
		s.WriteString(schema, *v)
	}
}

func (s *ShapeSerializer) WriteBigInteger(schema *smithy.Schema, v big.Int) {
	s.sink(schema)(v.String())
}

func (s *ShapeSerializer) WriteBigDecimal(schema *smithy.Schema, v big.Float) {
	s.sink(schema)(v.Text('f', -1))
}

func (s *ShapeSerializer) WriteBlob(schema *smithy.Schema, v []byte) {
	s.sink(schema)(base64.StdEncoding.EncodeToString(v))
}

// WriteTime serializes a timestamp per its timestampFormat trait, defaulting
// to http-date as smithy.api#httpHeader and smithy.api#httpQuery do.
func (s *ShapeSerializer) WriteTime(schema *smithy.Schema, v time.Time) {
	format := "http-date"
	if tf, ok := smithy.SchemaTrait[*traits.TimestampFormat](schema); ok {
		format = tf.Format
	}

	var str string
	switch format {
	case "date-time":
		str = smithytime.FormatDateTime(v)
	case "epoch-seconds":
		str = strconv.FormatFloat(smithytime.FormatEpochSeconds(v), 'f', -1, 64)
	default:
		str = smithytime.FormatHTTPDate(v)
	}
	s.sink(schema)(str)
}

func (s *ShapeSerializer) WriteTimePtr(schema *smithy.Schema, v *time.Time) {
	if v != nil {
		s.WriteTime(schema, *v)
	}
}

// WriteList opens a list bound by httpHeader (comma-joined on CloseList) or
// httpQuery (each element its own query entry). Any other binding is
// unreachable: Smithy restricts httpLabel and httpPrefixHeaders to scalars
// and maps respectively.
func (s *ShapeSerializer) WriteList(schema *smithy.Schema) {
	if q, ok := smithy.SchemaTrait[*traits.HTTPQuery](schema); ok {
		s.list = &listFrame{mode: "query", name: q.Name}
		return
	}
	if h, ok := smithy.SchemaTrait[*traits.HTTPHeader](schema); ok {
		s.list = &listFrame{mode: "header", name: h.Name}
		return
	}
	s.list = &listFrame{}
}

func (s *ShapeSerializer) CloseList() {
	f := s.list
	s.list = nil
	if f != nil && f.mode == "header" && len(f.values) > 0 {
		s.enc.SetHeader(f.name).String(strings.Join(f.values, ", "))
	}
}

// WriteMap opens a map bound by httpPrefixHeaders (each member lands on a
// header named prefix+key) or httpQueryParams (each member lands on a query
// parameter named by its key, unmodeled by any schema of its own).
func (s *ShapeSerializer) WriteMap(schema *smithy.Schema) {
	if p, ok := smithy.SchemaTrait[*traits.HTTPPrefixHeaders](schema); ok {
		s.mapv = &mapFrame{mode: "prefixHeaders", prefix: p.Prefix}
		return
	}
	if _, ok := smithy.SchemaTrait[*traits.HTTPQueryParams](schema); ok {
		s.mapv = &mapFrame{mode: "queryParams"}
	}
}

func (s *ShapeSerializer) WriteKey(schema *smithy.Schema, key string) {
	s.pendingKey = key
}

func (s *ShapeSerializer) CloseMap() {
	s.mapv = nil
}

// WriteStruct, WriteUnion, and WriteDocument are unreachable: HTTP binding
// traits only ever target scalar members or lists/maps of scalars. A nested
// structure reaches the wire only through httpPayload, which the protocol's
// body codec serializes, not this type.
func (s *ShapeSerializer) WriteStruct(schema *smithy.Schema, v smithy.Serializable) {}

func (s *ShapeSerializer) WriteUnion(schema, variant *smithy.Schema, v smithy.Serializable) {}

func (s *ShapeSerializer) WriteDocument(schema *smithy.Schema, v smithy.Document) {}

func (s *ShapeSerializer) WriteNil(schema *smithy.Schema) {}
