package datum

import (
	"strings"

	"github.com/reoring/datum/schema"
)

// unionDef is the derived definition for one union schema: one child
// definition per branch, addressable by branch position or name, plus the
// ActiveBranch pseudo-key for discriminant-directed access.
type unionDef struct {
	schema   *schema.Schema
	branches []Definition
}

func (d *unionDef) Instantiate() *Instance {
	return &Instance{def: d, children: make(map[Key]*Instance)}
}

func (d *unionDef) Wrap(inst *Instance, raw Value) (any, error) {
	if inst == nil {
		inst = d.Instantiate()
	}
	inst.def = d
	inst.raw = raw
	return inst, nil
}

func (d *unionDef) FillFrom(raw Value, v any) error {
	switch src := v.(type) {
	case *Instance:
		return raw.CopyFrom(src.raw)
	case nil:
		pos := d.schema.Position("null")
		if pos < 0 {
			return IssueAtPath("/", CodeNoSuchBranch, "union has no null branch")
		}
		_, err := raw.Child(ByIndex(pos))
		return err
	case map[string]any:
		if len(src) != 1 {
			return IssueAtPath("/", CodeInvalidValue, "union content must name exactly one branch")
		}
		for name, bv := range src {
			pos := d.schema.Position(name)
			if pos < 0 {
				return IssueAt(ByName(name), CodeNoSuchBranch, "union has no such branch")
			}
			slot, err := raw.Child(ByIndex(pos))
			if err != nil {
				return err
			}
			return d.branches[pos].FillFrom(slot, bv)
		}
		return nil
	default:
		return raw.SetFromAST(v)
	}
}

// Render emits the bare branch name when the null branch is active and
// "<branch> value" otherwise.
func (d *unionDef) Render(v any) string {
	in := v.(*Instance)
	pos, err := in.raw.Discriminant()
	if err != nil || pos < 0 || pos >= len(d.branches) {
		return "<invalid union>"
	}
	branch := d.schema.Branches()[pos]
	if branch.Schema.Kind() == schema.KindNull {
		return branch.Name
	}
	raw, err := in.raw.Child(ActiveBranch)
	if err != nil {
		return "<" + branch.Name + ">"
	}
	w, err := in.bindChild(ByIndex(pos), d.branches[pos], raw)
	if err != nil {
		return "<" + branch.Name + ">"
	}
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(branch.Name)
	sb.WriteString("> ")
	sb.WriteString(d.branches[pos].Render(w))
	return sb.String()
}

// position resolves a branch key to its declaration position. ActiveBranch
// resolves to the current discriminant.
func (d *unionDef) position(in *Instance, k Key) (int, error) {
	if k == ActiveBranch {
		return in.raw.Discriminant()
	}
	if k.IsName() {
		pos := d.schema.Position(k.Name())
		if pos < 0 {
			return 0, IssueAt(k, CodeNoSuchBranch, "union has no such branch")
		}
		return pos, nil
	}
	if k.Index() < 0 || k.Index() >= len(d.branches) {
		return 0, IssueAt(k, CodeNoSuchBranch, "branch index out of range")
	}
	return k.Index(), nil
}

// get resolves and returns the branch at k, switching the raw union's
// active branch when k names a non-active branch. Requesting ActiveBranch
// follows the current discriminant without switching.
func (d *unionDef) get(in *Instance, k Key) (any, error) {
	pos, err := d.position(in, k)
	if err != nil {
		return nil, err
	}
	raw, err := in.raw.Child(ByIndex(pos))
	if err != nil {
		return nil, err
	}
	return in.bindChild(ByIndex(pos), d.branches[pos], raw)
}

func (d *unionDef) set(in *Instance, k Key, v any) error {
	pos, err := d.position(in, k)
	if err != nil {
		return err
	}
	raw, err := in.raw.Child(ByIndex(pos))
	if err != nil {
		return err
	}
	return d.branches[pos].FillFrom(raw, v)
}
