package datum

import (
	"fmt"
	"strconv"
)

// Definition is the derived or registered behavior class for one schema:
// how to create an empty instance, bind it to a raw value, flush content
// into a raw value, and render content as text. One definition is shared by
// every value of its schema; per-value state lives in Instance.
//
// Embedders implement Definition to override the generated behavior for a
// named schema via Registry.RegisterOverride.
type Definition interface {
	// Instantiate returns a fresh unbound instance, or nil for scalar
	// definitions: the wrapped view of a pure scalar is the scalar payload
	// itself, with no cache object behind it.
	Instantiate() *Instance
	// Wrap binds raw into inst (allocating via Instantiate when inst is nil)
	// and returns the wrapped view: the scalar payload for scalar
	// definitions, the bound instance for compound ones. Rebinding an
	// already-bound instance onto a different raw value is legal; stale
	// child bindings are refreshed on their next access.
	Wrap(inst *Instance, raw Value) (any, error)
	// FillFrom writes v into raw. v may be a plain Go value, an AST-style
	// tree, or an *Instance bound to another raw value of the same schema.
	FillFrom(raw Value, v any) error
	// Render produces the textual form of a wrapped view produced by Wrap.
	Render(v any) string
}

// scalarDef handles boolean, int, float, double, null and enum payloads:
// generic textual rendering, no child cache.
type scalarDef struct{}

func (scalarDef) Instantiate() *Instance { return nil }

func (scalarDef) Wrap(_ *Instance, raw Value) (any, error) {
	return raw.Scalar()
}

func (scalarDef) FillFrom(raw Value, v any) error {
	if inst, ok := v.(*Instance); ok {
		return raw.CopyFrom(inst.raw)
	}
	return raw.SetScalar(v)
}

func (scalarDef) Render(v any) string {
	switch s := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(s)
	case string:
		// enum symbols render bare
		return s
	case float32:
		return strconv.FormatFloat(float64(s), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.FormatInt(int64(s), 10)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprint(v)
	}
}

// bytesDef handles string, bytes and fixed payloads: quoted rendering with
// embedded-quote escaping.
type bytesDef struct{}

func (bytesDef) Instantiate() *Instance { return nil }

func (bytesDef) Wrap(_ *Instance, raw Value) (any, error) {
	return raw.Scalar()
}

func (bytesDef) FillFrom(raw Value, v any) error {
	if inst, ok := v.(*Instance); ok {
		return raw.CopyFrom(inst.raw)
	}
	return raw.SetScalar(v)
}

func (bytesDef) Render(v any) string {
	switch s := v.(type) {
	case string:
		return strconv.Quote(s)
	case []byte:
		return strconv.Quote(string(s))
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}

// int64Def handles long payloads. Rendering is plain decimal digits with no
// host-integer-type decoration.
type int64Def struct{}

func (int64Def) Instantiate() *Instance { return nil }

func (int64Def) Wrap(_ *Instance, raw Value) (any, error) {
	return raw.Scalar()
}

func (int64Def) FillFrom(raw Value, v any) error {
	if inst, ok := v.(*Instance); ok {
		return raw.CopyFrom(inst.raw)
	}
	return raw.SetScalar(v)
}

func (int64Def) Render(v any) string {
	switch s := v.(type) {
	case int64:
		return strconv.FormatInt(s, 10)
	case int:
		return strconv.Itoa(s)
	case uint64:
		return strconv.FormatUint(s, 10)
	default:
		return fmt.Sprint(v)
	}
}

// container is the shared surface of the four compound definitions. Instance
// dispatches typed child access through it.
type container interface {
	Definition
	get(in *Instance, k Key) (any, error)
	set(in *Instance, k Key, v any) error
}

// reservedNames are operation names of the accessor surface; writing through
// a field, key or branch that shadows one is rejected so the write cannot be
// mistaken for an operation call by dot-style convenience layers.
var reservedNames = map[string]bool{
	"add":          true,
	"append":       true,
	"discriminant": true,
	"encode":       true,
	"get":          true,
	"hash":         true,
	"iterate":      true,
	"release":      true,
	"render":       true,
	"reset":        true,
	"scalar":       true,
	"set":          true,
	"size":         true,
	"type":         true,
}

// IsReservedName reports whether name collides with a defined operation
// name and is therefore rejected on write.
func IsReservedName(name string) bool { return reservedNames[name] }
