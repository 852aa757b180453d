package datum

import (
	"strings"

	"github.com/reoring/datum/schema"
)

// mapDef is the derived definition for one map schema identity.
type mapDef struct {
	schema *schema.Schema
	values Definition
}

func (d *mapDef) Instantiate() *Instance {
	return &Instance{def: d, children: make(map[Key]*Instance)}
}

func (d *mapDef) Wrap(inst *Instance, raw Value) (any, error) {
	if inst == nil {
		inst = d.Instantiate()
	}
	inst.def = d
	inst.raw = raw
	return inst, nil
}

func (d *mapDef) FillFrom(raw Value, v any) error {
	switch src := v.(type) {
	case *Instance:
		return raw.CopyFrom(src.raw)
	case map[string]any:
		raw.Reset()
		for key, ev := range src {
			slot, err := raw.Add(key)
			if err != nil {
				return err
			}
			if err := d.values.FillFrom(slot, ev); err != nil {
				return prefixPath(err, ByName(key))
			}
		}
		return nil
	default:
		return raw.SetFromAST(v)
	}
}

func (d *mapDef) Render(v any) string {
	in := v.(*Instance)
	var sb strings.Builder
	sb.WriteByte('{')
	it, err := in.raw.Iter()
	if err == nil {
		first := true
		for it.Next() {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteByte('"')
			sb.WriteString(it.Key().Name())
			sb.WriteString(`": `)
			w, err := in.bindChild(it.Key(), d.values, it.Value())
			if err != nil {
				continue
			}
			sb.WriteString(d.values.Render(w))
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

func (d *mapDef) get(in *Instance, k Key) (any, error) {
	raw, err := in.raw.Child(k)
	if err != nil {
		return nil, err
	}
	return in.bindChild(k, d.values, raw)
}

// set is an alias for add: maps create missing slots on write. It goes
// through PrepChild so the raw engine prepares the slot in one step.
func (d *mapDef) set(in *Instance, k Key, v any) error {
	if !k.IsName() {
		return IssueAt(k, CodeIndexOutOfRange, "maps are keyed by string")
	}
	raw, err := in.raw.PrepChild(k)
	if err != nil {
		return err
	}
	return d.values.FillFrom(raw, v)
}

// add creates or overwrites the slot for key. With v absent it returns the
// bound slot view; with a value it fills the slot and returns nothing.
func (d *mapDef) add(in *Instance, key string, v any) (any, error) {
	if IsReservedName(key) {
		return nil, IssueAt(ByName(key), CodeReservedName, "name collides with an operation")
	}
	raw, err := in.raw.Add(key)
	if err != nil {
		return nil, err
	}
	if v != nil {
		return nil, d.values.FillFrom(raw, v)
	}
	return in.bindChild(ByName(key), d.values, raw)
}
