package datum

// Instance is a live, rebindable binding of a Definition to one raw value.
// Compound instances cache one child instance per logical child position;
// the cached child is re-bound to the current raw child slot on every
// access, so structural mutation of the raw value (array growth, union
// branch switches) can never leave a stale binding observable.
//
// Instances are not safe for concurrent use without external locking.
type Instance struct {
	def      Definition
	raw      Value
	children map[Key]*Instance
}

// Raw returns the bound raw value, or nil for an unbound instance.
func (in *Instance) Raw() Value { return in.raw }

// Definition returns the definition this instance was derived from.
func (in *Instance) Definition() Definition { return in.def }

// Get returns the typed view of the child at k: the scalar payload for
// scalar children, a bound child instance for compound ones. For unions,
// passing ActiveBranch reads the active branch and passing any other branch
// key switches the union to that branch.
func (in *Instance) Get(k Key) (any, error) {
	c, err := in.container()
	if err != nil {
		return nil, err
	}
	return c.get(in, k)
}

// Set writes v through the child slot at k. Writing through a name that
// collides with an operation name fails with reserved_name and leaves the
// raw value unmodified.
func (in *Instance) Set(k Key, v any) error {
	if k.IsName() && IsReservedName(k.Name()) {
		return IssueAt(k, CodeReservedName, "name collides with an operation")
	}
	c, err := in.container()
	if err != nil {
		return err
	}
	return c.set(in, k, v)
}

// Append grows the bound array by one element. With a nil v the new
// element's bound instance (or scalar zero view) is returned for the caller
// to populate; with a value the element is filled and nothing is returned.
func (in *Instance) Append(v any) (any, error) {
	d, ok := in.def.(*arrayDef)
	if !ok {
		return nil, IssueAtPath("/", CodeInvalidOperation, "can only append to an array")
	}
	return d.append(in, v)
}

// Add creates or overwrites the map slot for key, following the same
// value-or-absent contract as Append.
func (in *Instance) Add(key string, v any) (any, error) {
	d, ok := in.def.(*mapDef)
	if !ok {
		return nil, IssueAtPath("/", CodeInvalidOperation, "can only add to a map")
	}
	return d.add(in, key, v)
}

// Branch returns the active branch index of a bound union.
func (in *Instance) Branch() (int, error) {
	if _, ok := in.def.(*unionDef); !ok {
		return 0, IssueAtPath("/", CodeInvalidOperation, "not a union")
	}
	return in.raw.Discriminant()
}

// BranchName returns the active branch name of a bound union.
func (in *Instance) BranchName() (string, error) {
	if _, ok := in.def.(*unionDef); !ok {
		return "", IssueAtPath("/", CodeInvalidOperation, "not a union")
	}
	return in.raw.DiscriminantName()
}

// Fill flushes v into the bound raw value through this instance's
// definition.
func (in *Instance) Fill(v any) error {
	return in.def.FillFrom(in.raw, v)
}

// Render returns the textual form of the bound value.
func (in *Instance) Render() string {
	return in.def.Render(in)
}

// String implements fmt.Stringer as an alias for Render.
func (in *Instance) String() string { return in.Render() }

// Size returns the bound value's child count.
func (in *Instance) Size() int { return in.raw.Size() }

// Cmp totally orders the bound values of two instances.
func (in *Instance) Cmp(other *Instance) (int, error) {
	return in.raw.Cmp(other.raw)
}

// Hash returns the bound value's content hash.
func (in *Instance) Hash() uint64 { return in.raw.Hash() }

// CopyFrom deep-copies other's bound value into this instance's bound
// value.
func (in *Instance) CopyFrom(other *Instance) error {
	return in.raw.CopyFrom(other.raw)
}

// Reset reverts the bound value to its default shape.
func (in *Instance) Reset() { in.raw.Reset() }

// Release detaches the bound value's storage via the raw engine. The
// instance object itself stays reusable through a later Wrap.
func (in *Instance) Release() { in.raw.Release() }

// ToJSON renders the bound value as JSON via the raw engine.
func (in *Instance) ToJSON() ([]byte, error) { return in.raw.ToJSON() }

// Iterate returns a typed cursor over an array's or map's children, binding
// the per-position cached child instance to each raw child as it is
// produced. The cursor is lazy and not independently restartable.
func (in *Instance) Iterate() (*Iter, error) {
	var elem Definition
	switch d := in.def.(type) {
	case *arrayDef:
		elem = d.items
	case *mapDef:
		elem = d.values
	default:
		return nil, IssueAtPath("/", CodeInvalidOperation, "can only iterate through arrays and maps")
	}
	raw, err := in.raw.Iter()
	if err != nil {
		return nil, err
	}
	return &Iter{in: in, raw: raw, elem: elem}, nil
}

// RawIterate returns the raw engine's own cursor, bypassing wrapping.
func (in *Instance) RawIterate() (ValueIter, error) { return in.raw.Iter() }

// container returns the compound definition behind this instance, or an
// invalid_operation issue for scalar-definition instances.
func (in *Instance) container() (container, error) {
	c, ok := in.def.(container)
	if !ok {
		return nil, IssueAtPath("/", CodeInvalidOperation, "value has no children")
	}
	return c, nil
}

// bindChild wraps raw with def, reusing (or creating and caching) the child
// instance for position k when def is compound. Scalar children wrap to
// their payload and need no cache entry.
func (in *Instance) bindChild(k Key, def Definition, raw Value) (any, error) {
	child := in.children[k]
	wrapped, err := def.Wrap(child, raw)
	if err != nil {
		return nil, err
	}
	if ci, ok := wrapped.(*Instance); ok && ci != nil {
		if in.children == nil {
			in.children = make(map[Key]*Instance)
		}
		in.children[k] = ci
	}
	return wrapped, nil
}

// Iter is the typed iteration cursor produced by Instance.Iterate.
type Iter struct {
	in   *Instance
	raw  ValueIter
	elem Definition
	k    Key
	v    any
}

// Next advances the cursor, returning false when exhausted.
func (it *Iter) Next() bool {
	if !it.raw.Next() {
		return false
	}
	it.k = it.raw.Key()
	w, err := it.in.bindChild(it.k, it.elem, it.raw.Value())
	if err != nil {
		return false
	}
	it.v = w
	return true
}

// Key returns the current element's key.
func (it *Iter) Key() Key { return it.k }

// Entry returns the current element's typed view.
func (it *Iter) Entry() any { return it.v }
