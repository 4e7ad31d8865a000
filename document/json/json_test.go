package json

import "testing"

func TestEncoderDecoderRoundTrip(t *testing.T) {
	type widget struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	enc := NewEncoder()
	p, err := enc.Encode(widget{Name: "foo", Count: 3})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	dec := NewDecoder()
	var out widget
	if err := dec.Decode(p, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if out.Name != "foo" || out.Count != 3 {
		t.Errorf("got %+v", out)
	}
}

func TestDecoderUseNumber(t *testing.T) {
	dec := NewDecoder(func(o *DecoderOptions) { o.UseNumber = true })

	var out map[string]interface{}
	if err := dec.Decode([]byte(`{"big":123456789012345}`), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if _, ok := out["big"].(string); ok {
		t.Fatalf("expected json.Number, got string")
	}
	if s := out["big"]; s == nil {
		t.Fatalf("missing value")
	}
}

func TestEncoderIndent(t *testing.T) {
	enc := NewEncoder(func(o *EncoderOptions) { o.Indent = "  " })

	p, err := enc.Encode(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	if string(p) != "{\n  \"a\": 1\n}" {
		t.Errorf("unexpected indented output: %q", p)
	}
}
