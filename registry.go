package datum

import (
	"github.com/reoring/datum/schema"
)

// Registry resolves schemas to accessor definitions. It owns the
// name-keyed override table populated by the embedder and the
// identity-keyed memoization cache of derived compound definitions.
//
// Resolution is read-mostly after warm-up but first-resolution mutates the
// cache, so concurrent use from multiple goroutines requires external
// synchronization (a single-writer discipline or an RWMutex around Resolve
// and RegisterOverride).
type Registry struct {
	overrides map[string]Definition
	derived   map[uint64]Definition
}

// NewRegistry returns an empty registry with only the built-in scalar
// definitions available.
func NewRegistry() *Registry {
	return &Registry{
		overrides: make(map[string]Definition),
		derived:   make(map[uint64]Definition),
	}
}

// RegisterOverride installs a custom definition for every schema carrying
// the given name, superseding built-in derivation for the registry's
// lifetime. Re-registering a name replaces the prior override; last write
// wins.
func (r *Registry) RegisterOverride(name string, def Definition) {
	r.overrides[name] = def
}

// Built-in scalar dispatch table. One definition per scalar kind; the
// structs are stateless, so kinds sharing a behavior class share an
// identical definition value.
var builtinScalars = map[schema.Kind]Definition{
	schema.KindNull:    scalarDef{},
	schema.KindBoolean: scalarDef{},
	schema.KindInt:     scalarDef{},
	schema.KindFloat:   scalarDef{},
	schema.KindDouble:  scalarDef{},
	schema.KindEnum:    scalarDef{},
	schema.KindBytes:   bytesDef{},
	schema.KindString:  bytesDef{},
	schema.KindFixed:   bytesDef{},
	schema.KindLong:    int64Def{},
}

// Resolve returns the accessor definition for s: the registered override
// for its name if any, the built-in definition for scalar kinds, or the
// memoized derived definition for compound kinds (derived on first
// resolution). Links are substituted by their target and never get a
// definition of their own.
func (r *Registry) Resolve(s *schema.Schema) (Definition, error) {
	for s.Kind() == schema.KindLink {
		s = s.Target()
	}
	if name := s.Name(); name != "" {
		if def, ok := r.overrides[name]; ok {
			return def, nil
		}
	}
	if def, ok := builtinScalars[s.Kind()]; ok {
		return def, nil
	}
	if def, ok := r.derived[s.ID()]; ok {
		return def, nil
	}
	switch s.Kind() {
	case schema.KindArray:
		d := &arrayDef{schema: s}
		// Inserted before resolving children so a link back to this schema
		// finds the definition under construction instead of recursing.
		r.derived[s.ID()] = d
		items, err := r.Resolve(s.Items())
		if err != nil {
			delete(r.derived, s.ID())
			return nil, err
		}
		d.items = items
		return d, nil
	case schema.KindMap:
		d := &mapDef{schema: s}
		r.derived[s.ID()] = d
		values, err := r.Resolve(s.Values())
		if err != nil {
			delete(r.derived, s.ID())
			return nil, err
		}
		d.values = values
		return d, nil
	case schema.KindRecord:
		d := &recordDef{schema: s}
		r.derived[s.ID()] = d
		for _, f := range s.Fields() {
			fd, err := r.Resolve(f.Schema)
			if err != nil {
				delete(r.derived, s.ID())
				return nil, err
			}
			d.fields = append(d.fields, fd)
		}
		return d, nil
	case schema.KindUnion:
		d := &unionDef{schema: s}
		r.derived[s.ID()] = d
		for _, b := range s.Branches() {
			bd, err := r.Resolve(b.Schema)
			if err != nil {
				delete(r.derived, s.ID())
				return nil, err
			}
			d.branches = append(d.branches, bd)
		}
		return d, nil
	default:
		return nil, IssueAtPath("/", CodeUnresolvableKind, "cannot derive a definition for kind "+s.Kind().String())
	}
}

// Wrap resolves v's schema and returns its typed view: the scalar payload
// for scalar values, a bound *Instance for compound ones.
func (r *Registry) Wrap(v Value) (any, error) {
	def, err := r.Resolve(v.Schema())
	if err != nil {
		return nil, err
	}
	return def.Wrap(nil, v)
}

// DefaultRegistry is the process-wide convenience registry used by the
// package-level Resolve and Wrap. Libraries embedding this package should
// prefer an explicitly owned Registry.
var DefaultRegistry = NewRegistry()

// Resolve resolves s against DefaultRegistry.
func Resolve(s *schema.Schema) (Definition, error) { return DefaultRegistry.Resolve(s) }

// Wrap wraps v against DefaultRegistry.
func Wrap(v Value) (any, error) { return DefaultRegistry.Wrap(v) }
