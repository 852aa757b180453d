package schema

import (
	"fmt"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Parse reads a schema from its JSON description: a primitive name ("int"),
// an object ({"type":"record",...}), or a union array (["null","int"]). A
// string that names a previously declared record/enum/fixed becomes a Link
// to that declaration, which is how self-referential schemas are expressed.
func Parse(data []byte) (*Schema, error) {
	var tree any
	if err := j.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("schema: parse: %w", err)
	}
	p := &parser{named: map[string]*Schema{}}
	return p.build(tree)
}

// ParseYAML reads the same schema shape from YAML.
func ParseYAML(data []byte) (*Schema, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("schema: parse yaml: %w", err)
	}
	p := &parser{named: map[string]*Schema{}}
	return p.build(tree)
}

type parser struct {
	named map[string]*Schema
}

var primitives = map[string]func() *Schema{
	"null":    Null,
	"boolean": Boolean,
	"int":     Int,
	"long":    Long,
	"float":   Float,
	"double":  Double,
	"bytes":   Bytes,
	"string":  String,
}

func (p *parser) build(tree any) (*Schema, error) {
	switch t := tree.(type) {
	case string:
		if ctor, ok := primitives[t]; ok {
			return ctor(), nil
		}
		if target, ok := p.named[t]; ok {
			return Link(target), nil
		}
		return nil, fmt.Errorf("schema: unknown type name %q", t)
	case []any:
		branches := make([]*Schema, 0, len(t))
		for _, b := range t {
			bs, err := p.build(b)
			if err != nil {
				return nil, err
			}
			branches = append(branches, bs)
		}
		return Union(branches...), nil
	case map[string]any:
		return p.buildObject(t)
	default:
		return nil, fmt.Errorf("schema: unexpected node %T", tree)
	}
}

func (p *parser) buildObject(obj map[string]any) (*Schema, error) {
	typ, _ := obj["type"].(string)
	switch typ {
	case "array":
		items, err := p.build(obj["items"])
		if err != nil {
			return nil, err
		}
		return Array(items), nil
	case "map":
		values, err := p.build(obj["values"])
		if err != nil {
			return nil, err
		}
		return Map(values), nil
	case "enum":
		name, err := objName(obj, "enum")
		if err != nil {
			return nil, err
		}
		raw, _ := obj["symbols"].([]any)
		symbols := make([]string, 0, len(raw))
		for _, s := range raw {
			sym, ok := s.(string)
			if !ok {
				return nil, fmt.Errorf("schema: enum %s: non-string symbol %v", name, s)
			}
			symbols = append(symbols, sym)
		}
		s := Enum(name, symbols...)
		p.declare(name, s)
		return s, nil
	case "fixed":
		name, err := objName(obj, "fixed")
		if err != nil {
			return nil, err
		}
		size, ok := asInt(obj["size"])
		if !ok || size < 0 {
			return nil, fmt.Errorf("schema: fixed %s: bad size %v", name, obj["size"])
		}
		s := Fixed(name, size)
		p.declare(name, s)
		return s, nil
	case "record":
		return p.buildRecord(obj)
	default:
		if typ != "" {
			// {"type":"int"} and friends are legal spellings.
			return p.build(typ)
		}
		return nil, fmt.Errorf("schema: object without type: %v", obj)
	}
}

func (p *parser) buildRecord(obj map[string]any) (*Schema, error) {
	name, err := objName(obj, "record")
	if err != nil {
		return nil, err
	}
	b := NewRecord(name)
	// Declared before the fields are parsed so a field naming this record
	// resolves to a link back to it.
	p.declare(name, b.Schema())
	rawFields, ok := obj["fields"].([]any)
	if !ok {
		return nil, fmt.Errorf("schema: record %s: missing fields", name)
	}
	for _, rf := range rawFields {
		fobj, ok := rf.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schema: record %s: bad field %v", name, rf)
		}
		fname, _ := fobj["name"].(string)
		if fname == "" {
			return nil, fmt.Errorf("schema: record %s: field without name", name)
		}
		fs, err := p.build(fobj["type"])
		if err != nil {
			return nil, err
		}
		b.Field(fname, fs)
	}
	return b.Build(), nil
}

func (p *parser) declare(name string, s *Schema) {
	p.named[name] = s
}

func objName(obj map[string]any, what string) (string, error) {
	name, _ := obj["name"].(string)
	if name == "" {
		return "", fmt.Errorf("schema: %s without name", what)
	}
	return name, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}
