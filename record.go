package datum

import (
	"strings"

	"github.com/reoring/datum/schema"
)

// recordDef is the derived definition for one record schema: one child
// definition per declared field, addressable by field position or name. The
// name-to-position table lives on the schema node and is shared here.
type recordDef struct {
	schema *schema.Schema
	fields []Definition
}

func (d *recordDef) Instantiate() *Instance {
	return &Instance{def: d, children: make(map[Key]*Instance)}
}

func (d *recordDef) Wrap(inst *Instance, raw Value) (any, error) {
	if inst == nil {
		inst = d.Instantiate()
	}
	inst.def = d
	inst.raw = raw
	return inst, nil
}

func (d *recordDef) FillFrom(raw Value, v any) error {
	switch src := v.(type) {
	case *Instance:
		return raw.CopyFrom(src.raw)
	case map[string]any:
		for name, fv := range src {
			pos := d.schema.Position(name)
			if pos < 0 {
				return IssueAt(ByName(name), CodeNoSuchField, "record "+d.schema.Name()+" has no such field")
			}
			slot, err := raw.Child(ByIndex(pos))
			if err != nil {
				return err
			}
			if err := d.fields[pos].FillFrom(slot, fv); err != nil {
				return prefixPath(err, ByName(name))
			}
		}
		return nil
	default:
		return raw.SetFromAST(v)
	}
}

func (d *recordDef) Render(v any) string {
	in := v.(*Instance)
	var sb strings.Builder
	sb.WriteByte('{')
	for pos, f := range d.schema.Fields() {
		if pos > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		raw, err := in.raw.Child(ByIndex(pos))
		if err != nil {
			continue
		}
		w, err := in.bindChild(ByIndex(pos), d.fields[pos], raw)
		if err != nil {
			continue
		}
		sb.WriteString(d.fields[pos].Render(w))
	}
	sb.WriteByte('}')
	return sb.String()
}

// position resolves a field key (name or index) to its declaration
// position.
func (d *recordDef) position(k Key) (int, error) {
	if k.IsName() {
		pos := d.schema.Position(k.Name())
		if pos < 0 {
			return 0, IssueAt(k, CodeNoSuchField, "record "+d.schema.Name()+" has no such field")
		}
		return pos, nil
	}
	if k.Index() < 0 || k.Index() >= len(d.fields) {
		return 0, IssueAt(k, CodeNoSuchField, "field index out of range")
	}
	return k.Index(), nil
}

func (d *recordDef) get(in *Instance, k Key) (any, error) {
	pos, err := d.position(k)
	if err != nil {
		return nil, err
	}
	raw, err := in.raw.Child(ByIndex(pos))
	if err != nil {
		return nil, err
	}
	return in.bindChild(ByIndex(pos), d.fields[pos], raw)
}

func (d *recordDef) set(in *Instance, k Key, v any) error {
	pos, err := d.position(k)
	if err != nil {
		return err
	}
	raw, err := in.raw.Child(ByIndex(pos))
	if err != nil {
		return err
	}
	return d.fields[pos].FillFrom(raw, v)
}
