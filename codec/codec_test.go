package codec_test

import (
	"testing"

	datum "github.com/reoring/datum"
	"github.com/reoring/datum/codec"
	"github.com/reoring/datum/engine"
	"github.com/reoring/datum/schema"
)

func roundTrip(t *testing.T, s *schema.Schema, v datum.Value) datum.Value {
	t.Helper()
	data, err := codec.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.Decode(s, data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	c, err := v.Cmp(out)
	if err != nil {
		t.Fatalf("cmp: %v", err)
	}
	if c != 0 {
		t.Fatalf("round trip changed the value")
	}
	return out
}

func TestRoundTrip_Scalars(t *testing.T) {
	cases := []struct {
		s       *schema.Schema
		payload any
	}{
		{schema.Boolean(), true},
		{schema.Int(), 42},
		{schema.Long(), int64(1) << 40},
		{schema.Double(), 2.75},
		{schema.Float(), 1.5},
		{schema.String(), "hello"},
		{schema.Bytes(), []byte{0, 1, 2}},
		{schema.Enum("suit", "H", "S"), "S"},
		{schema.Fixed("f4", 4), []byte("abcd")},
	}
	for _, tc := range cases {
		v := engine.New(tc.s)
		if err := v.SetScalar(tc.payload); err != nil {
			t.Fatalf("%v: set: %v", tc.s.Kind(), err)
		}
		roundTrip(t, tc.s, v)
	}
}

func TestRoundTrip_Null(t *testing.T) {
	roundTrip(t, schema.Null(), engine.New(schema.Null()))
}

func TestRoundTrip_Containers(t *testing.T) {
	s := schema.Record("envelope",
		schema.NewField("tags", schema.Array(schema.String())),
		schema.NewField("counts", schema.Map(schema.Long())),
		schema.NewField("payload", schema.Union(schema.Null(), schema.Double())),
	)
	v := engine.New(s)
	if err := v.SetFromAST(map[string]any{
		"tags":    []any{"a", "b"},
		"counts":  map[string]any{"x": 1, "y": 2},
		"payload": map[string]any{"double": 0.5},
	}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	out := roundTrip(t, s, v)

	payload, err := out.Child(datum.ByName("payload"))
	if err != nil {
		t.Fatalf("child: %v", err)
	}
	disc, err := payload.Discriminant()
	if err != nil || disc != 1 {
		t.Fatalf("expected decoded discriminant 1, got %d err=%v", disc, err)
	}
}

func TestRoundTrip_RecursiveSchema(t *testing.T) {
	b := schema.NewRecord("node")
	b.Field("value", schema.Int())
	b.Field("next", schema.Union(schema.Null(), schema.Link(b.Schema())))
	node := b.Build()

	v := engine.New(node)
	if err := v.SetFromAST(map[string]any{
		"value": 1,
		"next": map[string]any{
			"node": map[string]any{"value": 2, "next": nil},
		},
	}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	roundTrip(t, node, v)
}

func TestDecode_TruncatedFrame(t *testing.T) {
	s := schema.Record("pair",
		schema.NewField("a", schema.Int()),
		schema.NewField("b", schema.Int()),
	)
	v := engine.New(s)
	data, err := codec.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(s, data[:1]); !datum.HasCode(err, datum.CodeEncodeError) {
		t.Fatalf("expected encode_error for truncated frame, got %v", err)
	}
}

func TestDecode_SchemaShapeMismatch(t *testing.T) {
	v := engine.New(schema.String())
	if err := v.SetScalar("x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	data, err := codec.Encode(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := codec.Decode(schema.Array(schema.Int()), data); err == nil {
		t.Fatalf("expected failure decoding a string frame as an array")
	}
}
