package schema

import (
	j "github.com/goccy/go-json"
)

// MarshalJSON renders the schema in the same JSON shape Parse accepts. A
// named schema is emitted in full at its first occurrence and as a bare name
// reference afterwards, so recursive schemas serialize without looping.
func (s *Schema) MarshalJSON() ([]byte, error) {
	seen := map[uint64]bool{}
	return j.Marshal(jsonTree(s, seen))
}

func jsonTree(s *Schema, seen map[uint64]bool) any {
	switch s.kind {
	case KindLink:
		return jsonTree(s.target, seen)
	case KindArray:
		return map[string]any{"type": "array", "items": jsonTree(s.items, seen)}
	case KindMap:
		return map[string]any{"type": "map", "values": jsonTree(s.values, seen)}
	case KindUnion:
		branches := make([]any, len(s.fields))
		for i, b := range s.fields {
			branches[i] = jsonTree(b.Schema, seen)
		}
		return branches
	case KindEnum:
		if seen[s.id] {
			return s.name
		}
		seen[s.id] = true
		return map[string]any{"type": "enum", "name": s.name, "symbols": s.symbols}
	case KindFixed:
		if seen[s.id] {
			return s.name
		}
		seen[s.id] = true
		return map[string]any{"type": "fixed", "name": s.name, "size": s.size}
	case KindRecord:
		if seen[s.id] {
			return s.name
		}
		seen[s.id] = true
		fields := make([]any, len(s.fields))
		for i, f := range s.fields {
			fields[i] = map[string]any{"name": f.Name, "type": jsonTree(f.Schema, seen)}
		}
		return map[string]any{"type": "record", "name": s.name, "fields": fields}
	default:
		return s.kind.String()
	}
}
