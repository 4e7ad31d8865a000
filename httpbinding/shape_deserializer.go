package httpbinding

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	smithy "github.com/smithy-lang/smithy-runtime-go"
	smithytime "github.com/smithy-lang/smithy-runtime-go/time"
	"github.com/smithy-lang/smithy-runtime-go/traits"
)

// structCursor walks a structure schema's members looking for ones this
// deserializer knows how to bind from a response: httpHeader,
// httpPrefixHeaders, and httpResponseCode. httpLabel, httpQuery, and
// httpQueryParams only ever bind request members and never appear here.
type structCursor struct {
	schema *smithy.Schema
	names  []string
	idx    int
}

// listCursor splits a comma-joined header value into its list elements.
type listCursor struct {
	values []string
	idx    int
}

// ShapeDeserializer reads a modeled shape's httpHeader, httpPrefixHeaders,
// and httpResponseCode members out of an HTTP response.
type ShapeDeserializer struct {
	header     http.Header
	statusCode int

	stack []any

	pendingPrefix string
	pendingKeys   []string
	pendingKeyIdx int
}

var _ smithy.ShapeDeserializer = (*ShapeDeserializer)(nil)

// NewShapeDeserializer returns a new HTTP binding shape deserializer reading
// from the given response headers and status code.
func NewShapeDeserializer(header http.Header, statusCode int) *ShapeDeserializer {
	return &ShapeDeserializer{header: header, statusCode: statusCode}
}

func (s *ShapeDeserializer) top() any {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

func (s *ShapeDeserializer) push(v any) { s.stack = append(s.stack, v) }

func (s *ShapeDeserializer) pop() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// headerValue resolves the single header string backing schema, whether
// bound directly or by a currently open httpPrefixHeaders/list cursor.
func (s *ShapeDeserializer) headerValue(schema *smithy.Schema) (string, bool) {
	if lc, ok := s.top().(*listCursor); ok {
		if lc.idx == 0 || lc.idx > len(lc.values) {
			return "", false
		}
		return lc.values[lc.idx-1], true
	}
	if s.pendingPrefix != "" {
		key := s.pendingKeys[s.pendingKeyIdx-1]
		v := s.header.Get(s.pendingPrefix + key)
		return v, v != ""
	}
	if h, ok := smithy.SchemaTrait[*traits.HTTPHeader](schema); ok {
		v := s.header.Get(h.Name)
		return v, v != ""
	}
	return "", false
}

func (s *ShapeDeserializer) ReadString(schema *smithy.Schema, out *string) error {
	if v, ok := s.headerValue(schema); ok {
		*out = v
	}
	return nil
}

func (s *ShapeDeserializer) ReadStringPtr(schema *smithy.Schema, out **string) error {
	if v, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

func (s *ShapeDeserializer) ReadBool(schema *smithy.Schema, out *bool) error {
	v, ok := s.headerValue(schema)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse bool header: %w", err)
	}
	*out = b
	return nil
}

func (s *ShapeDeserializer) ReadBoolPtr(schema *smithy.Schema, out **bool) error {
	var v bool
	if _, ok := s.headerValue(schema); !ok {
		return nil
	}
	if err := s.ReadBool(schema, &v); err != nil {
		return err
	}
	*out = &v
	return nil
}

func (s *ShapeDeserializer) readInt(schema *smithy.Schema, bits int) (int64, bool, error) {
	if _, ok := smithy.SchemaTrait[*traits.HTTPResponseCode](schema); ok {
		return int64(s.statusCode), true, nil
	}
	v, ok := s.headerValue(schema)
	if !ok {
		return 0, false, nil
	}
	i, err := strconv.ParseInt(v, 10, bits)
	if err != nil {
		return 0, false, fmt.Errorf("parse integer header: %w", err)
	}
	return i, true, nil
}

func (s *ShapeDeserializer) ReadInt8(schema *smithy.Schema, out *int8) error {
	v, ok, err := s.readInt(schema, 8)
	if err != nil || !ok {
		return err
	}
	*out = int8(v)
	return nil
}

func (s *ShapeDeserializer) ReadInt16(schema *smithy.Schema, out *int16) error {
	v, ok, err := s.readInt(schema, 16)
	if err != nil || !ok {
		return err
	}
	*out = int16(v)
	return nil
}

func (s *ShapeDeserializer) ReadInt32(schema *smithy.Schema, out *int32) error {
	v, ok, err := s.readInt(schema, 32)
	if err != nil || !ok {
		return err
	}
	*out = int32(v)
	return nil
}

func (s *ShapeDeserializer) ReadInt64(schema *smithy.Schema, out *int64) error {
	v, ok, err := s.readInt(schema, 64)
	if err != nil || !ok {
		return err
	}
	*out = v
	return nil
}

func (s *ShapeDeserializer) ReadInt8Ptr(schema *smithy.Schema, out **int8) error {
	var v int8
	if err := s.ReadInt8(schema, &v); err != nil {
		return err
	}
	if _, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

func (s *ShapeDeserializer) ReadInt16Ptr(schema *smithy.Schema, out **int16) error {
	var v int16
	if err := s.ReadInt16(schema, &v); err != nil {
		return err
	}
	if _, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

func (s *ShapeDeserializer) ReadInt32Ptr(schema *smithy.Schema, out **int32) error {
	var v int32
	if err := s.ReadInt32(schema, &v); err != nil {
		return err
	}
	if _, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

func (s *ShapeDeserializer) ReadInt64Ptr(schema *smithy.Schema, out **int64) error {
	var v int64
	if _, ok := smithy.SchemaTrait[*traits.HTTPResponseCode](schema); ok {
		v = int64(s.statusCode)
		*out = &v
		return nil
	}
	if err := s.ReadInt64(schema, &v); err != nil {
		return err
	}
	if _, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

func (s *ShapeDeserializer) readFloat(schema *smithy.Schema, bits int) (float64, bool, error) {
	v, ok := s.headerValue(schema)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, bits)
	if err != nil {
		return 0, false, fmt.Errorf("parse float header: %w", err)
	}
	return f, true, nil
}

func (s *ShapeDeserializer) ReadFloat32(schema *smithy.Schema, out *float32) error {
	v, ok, err := s.readFloat(schema, 32)
	if err != nil || !ok {
		return err
	}
	*out = float32(v)
	return nil
}

func (s *ShapeDeserializer) ReadFloat64(schema *smithy.Schema, out *float64) error {
	v, ok, err := s.readFloat(schema, 64)
	if err != nil || !ok {
		return err
	}
	*out = v
	return nil
}

func (s *ShapeDeserializer) ReadFloat32Ptr(schema *smithy.Schema, out **float32) error {
	var v float32
	if err := s.ReadFloat32(schema, &v); err != nil {
		return err
	}
	if _, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

func (s *ShapeDeserializer) ReadFloat64Ptr(schema *smithy.Schema, out **float64) error {
	var v float64
	if err := s.ReadFloat64(schema, &v); err != nil {
		return err
	}
	if _, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

func (s *ShapeDeserializer) ReadBlob(schema *smithy.Schema, out *[]byte) error {
	v, ok := s.headerValue(schema)
	if !ok {
		return nil
	}
	b, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return fmt.Errorf("decode blob header: %w", err)
	}
	*out = b
	return nil
}

// ReadBigInteger and ReadBigDecimal are absent from the ShapeDeserializer
// interface entirely (asymmetric with the serializer side), so there is
// nothing to implement for those kinds here.

func (s *ShapeDeserializer) ReadTime(schema *smithy.Schema, out *time.Time) error {
	if _, ok := smithy.SchemaTrait[*traits.HTTPResponseCode](schema); ok {
		return nil
	}
	v, ok := s.headerValue(schema)
	if !ok {
		return nil
	}

	format := "http-date"
	if tf, ok := smithy.SchemaTrait[*traits.TimestampFormat](schema); ok {
		format = tf.Format
	}

	var (
		t   time.Time
		err error
	)
	switch format {
	case "date-time":
		t, err = smithytime.ParseDateTimeFormat(v)
	case "epoch-seconds":
		var f float64
		f, err = strconv.ParseFloat(v, 64)
		if err == nil {
			t = smithytime.ParseEpochSeconds(f)
		}
	default:
		t, err = smithytime.ParseHTTPDate(v)
	}
	if err != nil {
		return fmt.Errorf("parse timestamp header: %w", err)
	}
	*out = t
	return nil
}

func (s *ShapeDeserializer) ReadTimePtr(schema *smithy.Schema, out **time.Time) error {
	var v time.Time
	if err := s.ReadTime(schema, &v); err != nil {
		return err
	}
	if _, ok := s.headerValue(schema); ok {
		*out = &v
	}
	return nil
}

// ReadList opens the comma-joined value of an httpHeader-bound list member
// for positional reads via ReadListItem.
func (s *ShapeDeserializer) ReadList(schema *smithy.Schema) error {
	v, _ := s.headerValue(schema)
	var values []string
	if v != "" {
		for _, p := range strings.Split(v, ",") {
			values = append(values, strings.TrimSpace(p))
		}
	}
	s.push(&listCursor{values: values})
	return nil
}

func (s *ShapeDeserializer) ReadListItem(schema *smithy.Schema) (bool, error) {
	lc, ok := s.top().(*listCursor)
	if !ok {
		s.pop()
		return false, nil
	}
	if lc.idx >= len(lc.values) {
		s.pop()
		return false, nil
	}
	lc.idx++
	return true, nil
}

// ReadMap opens an httpPrefixHeaders-bound map member, collecting the header
// names sharing the member's prefix.
func (s *ShapeDeserializer) ReadMap(schema *smithy.Schema) error {
	prefix := ""
	if p, ok := smithy.SchemaTrait[*traits.HTTPPrefixHeaders](schema); ok {
		prefix = p.Prefix
	}
	var keys []string
	for name := range s.header {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, strings.ToLower(prefix)) {
			keys = append(keys, lower[len(prefix):])
		}
	}
	s.pendingPrefix = prefix
	s.pendingKeys = keys
	s.pendingKeyIdx = 0
	return nil
}

func (s *ShapeDeserializer) ReadMapKey(schema *smithy.Schema) (string, bool, error) {
	if s.pendingKeyIdx >= len(s.pendingKeys) {
		s.pendingPrefix = ""
		s.pendingKeys = nil
		return "", false, nil
	}
	key := s.pendingKeys[s.pendingKeyIdx]
	s.pendingKeyIdx++
	return key, true, nil
}

// ReadStruct opens the schema's members for a ReadStructMember walk,
// considering only the members this deserializer knows how to bind:
// httpHeader, httpPrefixHeaders, and httpResponseCode.
func (s *ShapeDeserializer) ReadStruct(schema *smithy.Schema) error {
	var names []string
	for name, m := range schema.Members {
		if _, ok := smithy.SchemaTrait[*traits.HTTPHeader](m); ok {
			names = append(names, name)
			continue
		}
		if _, ok := smithy.SchemaTrait[*traits.HTTPPrefixHeaders](m); ok {
			names = append(names, name)
			continue
		}
		if _, ok := smithy.SchemaTrait[*traits.HTTPResponseCode](m); ok {
			names = append(names, name)
		}
	}
	s.push(&structCursor{schema: schema, names: names})
	return nil
}

func (s *ShapeDeserializer) ReadStructMember() (*smithy.Schema, error) {
	sc, ok := s.top().(*structCursor)
	if !ok || sc.idx >= len(sc.names) {
		if ok {
			s.pop()
		}
		return nil, nil
	}
	name := sc.names[sc.idx]
	sc.idx++
	return sc.schema.Members[name], nil
}

// ReadUnion is unreachable: HTTP binding traits never target a union
// member directly.
func (s *ShapeDeserializer) ReadUnion(schema *smithy.Schema) (*smithy.Schema, error) {
	return nil, nil
}

// ReadDocument is unreachable for the same reason as ReadUnion.
func (s *ShapeDeserializer) ReadDocument(schema *smithy.Schema, out *smithy.Document) error {
	return nil
}
