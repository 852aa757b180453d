package datum

import (
	"strings"

	"github.com/reoring/datum/schema"
)

// arrayDef is the derived definition for one array schema identity. Its only
// state is the element definition, resolved once at derivation time.
type arrayDef struct {
	schema *schema.Schema
	items  Definition
}

func (d *arrayDef) Instantiate() *Instance {
	return &Instance{def: d, children: make(map[Key]*Instance)}
}

func (d *arrayDef) Wrap(inst *Instance, raw Value) (any, error) {
	if inst == nil {
		inst = d.Instantiate()
	}
	inst.def = d
	inst.raw = raw
	return inst, nil
}

func (d *arrayDef) FillFrom(raw Value, v any) error {
	switch src := v.(type) {
	case *Instance:
		return raw.CopyFrom(src.raw)
	case []any:
		raw.Reset()
		for i, ev := range src {
			slot, err := raw.Append()
			if err != nil {
				return err
			}
			if err := d.items.FillFrom(slot, ev); err != nil {
				return prefixPath(err, ByIndex(i))
			}
		}
		return nil
	default:
		return raw.SetFromAST(v)
	}
}

func (d *arrayDef) Render(v any) string {
	in := v.(*Instance)
	var sb strings.Builder
	sb.WriteByte('[')
	it, err := in.raw.Iter()
	if err == nil {
		first := true
		for it.Next() {
			if !first {
				sb.WriteString(", ")
			}
			first = false
			w, err := in.bindChild(it.Key(), d.items, it.Value())
			if err != nil {
				continue
			}
			sb.WriteString(d.items.Render(w))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (d *arrayDef) get(in *Instance, k Key) (any, error) {
	raw, err := in.raw.Child(k)
	if err != nil {
		return nil, err
	}
	return in.bindChild(ByIndex(k.Index()), d.items, raw)
}

func (d *arrayDef) set(in *Instance, k Key, v any) error {
	raw, err := in.raw.Child(k)
	if err != nil {
		return err
	}
	return d.items.FillFrom(raw, v)
}

// append grows the array by one slot. With v absent (nil) it returns the
// bound element view for the caller to populate; with a value it fills the
// slot and returns nothing.
func (d *arrayDef) append(in *Instance, v any) (any, error) {
	raw, err := in.raw.Append()
	if err != nil {
		return nil, err
	}
	idx := in.raw.Size() - 1
	if v != nil {
		return nil, d.items.FillFrom(raw, v)
	}
	return in.bindChild(ByIndex(idx), d.items, raw)
}

// prefixPath rewrites the paths of an Issues error to include the child key
// the failure was reached through.
func prefixPath(err error, k Key) error {
	iss, ok := AsIssues(err)
	if !ok {
		return err
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Path = "/" + k.String() + it.Path
		out[i] = it
	}
	return out
}
