package engine

import (
	j "github.com/goccy/go-json"

	datum "github.com/reoring/datum"
	"github.com/reoring/datum/schema"
)

// SetFromAST fills the value from an abstract description: Go scalars,
// []any for arrays, map[string]any for maps and records, and nil or a
// single-entry {"branchName": v} object for unions.
func (v *value) SetFromAST(tree any) error {
	if err := v.guard(); err != nil {
		return err
	}
	switch v.schema.Kind() {
	case schema.KindArray:
		src, ok := tree.([]any)
		if !ok {
			return badScalar(v, tree)
		}
		v.init()
		for _, ev := range src {
			nv := newValue(v.schema.Items())
			if err := nv.SetFromAST(ev); err != nil {
				return err
			}
			v.items = append(v.items, nv)
		}
		return nil
	case schema.KindMap:
		src, ok := tree.(map[string]any)
		if !ok {
			return badScalar(v, tree)
		}
		v.init()
		for key, ev := range src {
			if err := v.addEntry(key).SetFromAST(ev); err != nil {
				return err
			}
		}
		return nil
	case schema.KindRecord:
		src, ok := tree.(map[string]any)
		if !ok {
			return badScalar(v, tree)
		}
		v.init()
		for name, fv := range src {
			pos := v.schema.Position(name)
			if pos < 0 {
				return datum.IssueAt(datum.ByName(name), datum.CodeNoSuchField, "record field doesn't exist")
			}
			if err := v.fields[pos].SetFromAST(fv); err != nil {
				return err
			}
		}
		return nil
	case schema.KindUnion:
		if tree == nil {
			pos := v.schema.Position("null")
			if pos < 0 {
				return datum.IssueAtPath("/", datum.CodeNoSuchBranch, "union has no null branch")
			}
			_, err := v.childSlot(datum.ByIndex(pos), false)
			return err
		}
		src, ok := tree.(map[string]any)
		if !ok || len(src) != 1 {
			return datum.IssueAtPath("/", datum.CodeInvalidValue, "union content must name exactly one branch")
		}
		for name, bv := range src {
			slot, err := v.childSlot(datum.ByName(name), false)
			if err != nil {
				return err
			}
			return slot.SetFromAST(bv)
		}
		return nil
	default:
		return v.SetScalar(tree)
	}
}

// ToJSON renders the value as JSON, with nil for an active null union
// branch and {"branchName": v} otherwise.
func (v *value) ToJSON() ([]byte, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	return j.Marshal(v.native())
}

func (v *value) native() any {
	switch v.schema.Kind() {
	case schema.KindNull:
		return nil
	case schema.KindEnum:
		sym, _ := v.Scalar()
		return sym
	case schema.KindBytes, schema.KindFixed:
		return string(v.scalar.([]byte))
	case schema.KindArray:
		out := make([]any, len(v.items))
		for i, e := range v.items {
			out[i] = e.native()
		}
		return out
	case schema.KindMap:
		out := make(map[string]any, len(v.entries))
		for k, e := range v.entries {
			out[k] = e.native()
		}
		return out
	case schema.KindRecord:
		out := make(map[string]any, len(v.fields))
		for i, f := range v.schema.Fields() {
			out[f.Name] = v.fields[i].native()
		}
		return out
	case schema.KindUnion:
		b := v.schema.Branches()[v.branch]
		if b.Schema.Kind() == schema.KindNull {
			return nil
		}
		return map[string]any{b.Name: v.child.native()}
	default:
		return v.scalar
	}
}
