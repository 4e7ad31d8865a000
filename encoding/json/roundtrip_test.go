package json

import (
	"testing"
	"time"

	smithy "github.com/smithy-lang/smithy-runtime-go"
)

var (
	rtStringType    = &smithy.Schema{Type: smithy.ShapeTypeString}
	rtIntType       = &smithy.Schema{Type: smithy.ShapeTypeInteger}
	rtBoolType      = &smithy.Schema{Type: smithy.ShapeTypeBoolean}
	rtDoubleType    = &smithy.Schema{Type: smithy.ShapeTypeDouble}
	rtTimestampType = &smithy.Schema{Type: smithy.ShapeTypeTimestamp}

	rtTagsMember = smithy.NewMember("member", rtStringType)
	rtTagsType   = &smithy.Schema{Type: smithy.ShapeTypeList, Members: map[string]*smithy.Schema{"member": rtTagsMember}}

	rtAttrsValue = smithy.NewMember("value", rtStringType)
	rtAttrsType  = &smithy.Schema{Type: smithy.ShapeTypeMap, Members: map[string]*smithy.Schema{"value": rtAttrsValue}}

	rtShapeSchema = smithy.NewStructBuilder(smithy.ShapeID{Namespace: "example", Name: "TestShape"}, smithy.ShapeTypeStructure).
			AddMember(smithy.NewMember("name", rtStringType)).
			AddMember(smithy.NewMember("count", rtIntType)).
			AddMember(smithy.NewMember("active", rtBoolType)).
			AddMember(smithy.NewMember("score", rtDoubleType)).
			AddMember(smithy.NewMember("when", rtTimestampType)).
			AddMember(smithy.NewMember("tags", rtTagsType)).
			AddMember(smithy.NewMember("attrs", rtAttrsType)).
			Build()
)

type roundtripShape struct {
	Name   string
	Count  int32
	Active bool
	Score  float64
	When   time.Time
	Tags   []string
	Attrs  map[string]string
}

func (v *roundtripShape) Serialize(s smithy.ShapeSerializer) {
	s.WriteString(rtShapeSchema.Members["name"], v.Name)
	s.WriteInt32(rtShapeSchema.Members["count"], v.Count)
	s.WriteBool(rtShapeSchema.Members["active"], v.Active)
	s.WriteFloat64(rtShapeSchema.Members["score"], v.Score)
	s.WriteTime(rtShapeSchema.Members["when"], v.When)

	s.WriteList(rtShapeSchema.Members["tags"])
	for _, tag := range v.Tags {
		s.WriteString(rtTagsMember, tag)
	}
	s.CloseList()

	s.WriteMap(rtShapeSchema.Members["attrs"])
	for k, val := range v.Attrs {
		s.WriteKey(rtAttrsValue, k)
		s.WriteString(rtAttrsValue, val)
	}
	s.CloseMap()
}

func (v *roundtripShape) Deserialize(d smithy.ShapeDeserializer) error {
	return smithy.ReadStruct(d, rtShapeSchema, func(m *smithy.Schema) error {
		switch m.ID.Member {
		case "name":
			return d.ReadString(m, &v.Name)
		case "count":
			return d.ReadInt32(m, &v.Count)
		case "active":
			return d.ReadBool(m, &v.Active)
		case "score":
			return d.ReadFloat64(m, &v.Score)
		case "when":
			return d.ReadTime(m, &v.When)
		case "tags":
			return smithy.ReadList(d, m, func() error {
				var tag string
				if err := d.ReadString(rtTagsMember, &tag); err != nil {
					return err
				}
				v.Tags = append(v.Tags, tag)
				return nil
			})
		case "attrs":
			if v.Attrs == nil {
				v.Attrs = map[string]string{}
			}
			return smithy.ReadMap(d, m, func(key string) error {
				var val string
				if err := d.ReadString(rtAttrsValue, &val); err != nil {
					return err
				}
				v.Attrs[key] = val
				return nil
			})
		}
		return nil
	})
}

func TestShapeSerializerRoundTrip(t *testing.T) {
	in := &roundtripShape{
		Name:   "widget",
		Count:  42,
		Active: true,
		Score:  3.25,
		When:   time.Unix(1700000000, 0).UTC(),
		Tags:   []string{"a", "b", "c"},
		Attrs:  map[string]string{"k1": "v1", "k2": "v2"},
	}

	codec := &Codec{}
	ser := codec.Serializer()
	ser.WriteStruct(rtShapeSchema, in)
	encoded := ser.Bytes()

	var out roundtripShape
	if err := out.Deserialize(codec.Deserializer(encoded)); err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if out.Name != in.Name || out.Count != in.Count || out.Active != in.Active || out.Score != in.Score {
		t.Errorf("scalar mismatch: %+v != %+v", out, in)
	}
	if !out.When.Equal(in.When) {
		t.Errorf("when mismatch: %v != %v", out.When, in.When)
	}
	if len(out.Tags) != len(in.Tags) {
		t.Fatalf("tags length mismatch: %v != %v", out.Tags, in.Tags)
	}
	for i := range in.Tags {
		if out.Tags[i] != in.Tags[i] {
			t.Errorf("tags[%d] mismatch: %s != %s", i, out.Tags[i], in.Tags[i])
		}
	}
	if len(out.Attrs) != len(in.Attrs) {
		t.Fatalf("attrs length mismatch: %v != %v", out.Attrs, in.Attrs)
	}
	for k, want := range in.Attrs {
		if out.Attrs[k] != want {
			t.Errorf("attrs[%s] mismatch: %s != %s", k, out.Attrs[k], want)
		}
	}
}

func TestShapeSerializerDocumentRoundTrip(t *testing.T) {
	doc := smithy.NewDocumentMap(map[string]smithy.Document{
		"str":  smithy.NewDocumentString("hi"),
		"num":  smithy.NewDocumentInt64(7),
		"bool": smithy.NewDocumentBoolean(true),
		"list": smithy.NewDocumentList([]smithy.Document{
			smithy.NewDocumentString("x"),
			smithy.NewDocumentNull(),
		}),
	})

	codec := &Codec{}
	ser := codec.Serializer()
	ser.WriteDocument(&smithy.Schema{Type: smithy.ShapeTypeDocument}, doc)
	encoded := ser.Bytes()

	de := codec.Deserializer(encoded)
	var out smithy.Document
	if err := de.ReadDocument(&smithy.Schema{Type: smithy.ShapeTypeDocument}, &out); err != nil {
		t.Fatalf("read document: %v", err)
	}

	m, ok := out.Map()
	if !ok {
		t.Fatalf("expected map document, got kind %v", out.Kind())
	}
	if s, _ := m["str"].StringValue(); s != "hi" {
		t.Errorf("str mismatch: %s", s)
	}
	if n, _ := m["num"].Int64(); n != 7 {
		t.Errorf("num mismatch: %d", n)
	}
	if b, _ := m["bool"].Boolean(); !b {
		t.Errorf("bool mismatch: %v", b)
	}
}
