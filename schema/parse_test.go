package schema_test

import (
	"testing"

	"github.com/reoring/datum/schema"
)

func TestParse_Primitives(t *testing.T) {
	for _, name := range []string{"null", "boolean", "int", "long", "float", "double", "bytes", "string"} {
		s, err := schema.Parse([]byte(`"` + name + `"`))
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if s.Kind().String() != name {
			t.Fatalf("expected kind %s, got %v", name, s.Kind())
		}
	}
	// primitives are singletons so identity-keyed caches see one node
	a, _ := schema.Parse([]byte(`"int"`))
	b, _ := schema.Parse([]byte(`"int"`))
	if a.ID() != b.ID() {
		t.Fatalf("primitive schemas must share identity")
	}
}

func TestParse_Record(t *testing.T) {
	src := []byte(`{
		"type": "record",
		"name": "pair",
		"fields": [
			{"name": "a", "type": "int"},
			{"name": "b", "type": {"type": "string"}}
		]
	}`)
	s, err := schema.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Kind() != schema.KindRecord || s.Name() != "pair" {
		t.Fatalf("unexpected schema: %v %q", s.Kind(), s.Name())
	}
	fields := s.Fields()
	if len(fields) != 2 || fields[0].Name != "a" || fields[1].Name != "b" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if s.Position("b") != 1 || s.Position("zzz") != -1 {
		t.Fatalf("position lookup broken")
	}
}

func TestParse_UnionArrayMapEnumFixed(t *testing.T) {
	s, err := schema.Parse([]byte(`["null", "int"]`))
	if err != nil || s.Kind() != schema.KindUnion {
		t.Fatalf("union parse: %v %v", s, err)
	}
	if bs := s.Branches(); len(bs) != 2 || bs[0].Name != "null" || bs[1].Name != "int" {
		t.Fatalf("unexpected branches: %v", s.Branches())
	}

	s, err = schema.Parse([]byte(`{"type":"array","items":"long"}`))
	if err != nil || s.Kind() != schema.KindArray || s.Items().Kind() != schema.KindLong {
		t.Fatalf("array parse: %v %v", s, err)
	}

	s, err = schema.Parse([]byte(`{"type":"map","values":"double"}`))
	if err != nil || s.Kind() != schema.KindMap || s.Values().Kind() != schema.KindDouble {
		t.Fatalf("map parse: %v %v", s, err)
	}

	s, err = schema.Parse([]byte(`{"type":"enum","name":"suit","symbols":["H","S"]}`))
	if err != nil || s.Kind() != schema.KindEnum || len(s.Symbols()) != 2 {
		t.Fatalf("enum parse: %v %v", s, err)
	}

	s, err = schema.Parse([]byte(`{"type":"fixed","name":"md5","size":16}`))
	if err != nil || s.Kind() != schema.KindFixed || s.Size() != 16 {
		t.Fatalf("fixed parse: %v %v", s, err)
	}
}

func TestParse_RecursiveReferenceBecomesLink(t *testing.T) {
	src := []byte(`{
		"type": "record",
		"name": "node",
		"fields": [
			{"name": "value", "type": "int"},
			{"name": "next", "type": ["null", "node"]}
		]
	}`)
	s, err := schema.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	next := s.Fields()[1].Schema
	link := next.Branches()[1].Schema
	if link.Kind() != schema.KindLink {
		t.Fatalf("expected link branch, got %v", link.Kind())
	}
	if link.Target() != s {
		t.Fatalf("link must point back at the declaring record")
	}
	if next.Branches()[1].Name != "node" {
		t.Fatalf("link branch must carry the target's name, got %q", next.Branches()[1].Name)
	}
}

func TestParse_UnknownName(t *testing.T) {
	if _, err := schema.Parse([]byte(`"mystery"`)); err == nil {
		t.Fatalf("expected error for unknown type name")
	}
}

func TestParseYAML(t *testing.T) {
	src := []byte(`
type: record
name: pair
fields:
  - name: a
    type: int
  - name: b
    type: string
`)
	s, err := schema.ParseYAML(src)
	if err != nil {
		t.Fatalf("parse yaml: %v", err)
	}
	if s.Kind() != schema.KindRecord || len(s.Fields()) != 2 {
		t.Fatalf("unexpected yaml schema: %v", s)
	}
}

func TestMarshalJSON_RoundTrip(t *testing.T) {
	src := []byte(`{
		"type": "record",
		"name": "node",
		"fields": [
			{"name": "value", "type": "int"},
			{"name": "next", "type": ["null", "node"]}
		]
	}`)
	s, err := schema.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s2, err := schema.Parse(out)
	if err != nil {
		t.Fatalf("re-parse %s: %v", out, err)
	}
	if s2.Kind() != schema.KindRecord || len(s2.Fields()) != 2 {
		t.Fatalf("round-trip lost structure: %s", out)
	}
	if s2.Fields()[1].Schema.Branches()[1].Schema.Kind() != schema.KindLink {
		t.Fatalf("round-trip lost the recursive link")
	}
}
