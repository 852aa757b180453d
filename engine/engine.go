// Package engine is an in-memory raw-value engine: it owns the storage of
// concrete values conforming to a schema and implements the datum.Value
// contract the accessor layer navigates through. The engine documents
// insertion order as its map enumeration order.
package engine

import (
	datum "github.com/reoring/datum"
	"github.com/reoring/datum/schema"
)

// value is one stored datum. Exactly one of the payload groups is used,
// selected by the schema kind.
type value struct {
	schema   *schema.Schema
	released bool

	scalar any // scalar kinds; enum stores the symbol index as int

	items []*value // array

	keys    []string          // map, insertion order
	entries map[string]*value // map

	fields []*value // record, by declaration position

	branch int    // union discriminant
	child  *value // union active branch
}

// New allocates a default-shaped value for s: zero scalars, empty arrays
// and maps, records with default-shaped fields, unions with branch 0
// active.
func New(s *schema.Schema) datum.Value {
	return newValue(s)
}

func deref(s *schema.Schema) *schema.Schema {
	for s.Kind() == schema.KindLink {
		s = s.Target()
	}
	return s
}

func newValue(s *schema.Schema) *value {
	s = deref(s)
	v := &value{schema: s}
	v.init()
	return v
}

func (v *value) init() {
	switch v.schema.Kind() {
	case schema.KindBoolean:
		v.scalar = false
	case schema.KindInt, schema.KindLong, schema.KindEnum:
		v.scalar = int64(0)
	case schema.KindFloat, schema.KindDouble:
		v.scalar = float64(0)
	case schema.KindString:
		v.scalar = ""
	case schema.KindBytes:
		v.scalar = []byte{}
	case schema.KindFixed:
		v.scalar = make([]byte, v.schema.Size())
	case schema.KindArray:
		v.items = nil
	case schema.KindMap:
		v.keys = nil
		v.entries = make(map[string]*value)
	case schema.KindRecord:
		fields := v.schema.Fields()
		v.fields = make([]*value, len(fields))
		for i, f := range fields {
			v.fields[i] = newValue(f.Schema)
		}
	case schema.KindUnion:
		v.branch = 0
		v.child = newValue(v.schema.Branches()[0].Schema)
	}
}

func (v *value) Schema() *schema.Schema { return v.schema }

func (v *value) guard() error {
	if v.released {
		return datum.IssueAtPath("/", datum.CodeReleasedValue, "value has been released")
	}
	return nil
}

func (v *value) Child(k datum.Key) (datum.Value, error) {
	return v.childSlot(k, false)
}

func (v *value) PrepChild(k datum.Key) (datum.Value, error) {
	return v.childSlot(k, true)
}

func (v *value) childSlot(k datum.Key, canCreate bool) (datum.Value, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	switch v.schema.Kind() {
	case schema.KindArray:
		if k.IsName() {
			return nil, datum.IssueAt(k, datum.CodeIndexOutOfRange, "arrays are indexed by position")
		}
		i := k.Index()
		if i < 0 || i >= len(v.items) {
			return nil, datum.IssueAt(k, datum.CodeIndexOutOfRange, "index out of bounds")
		}
		return v.items[i], nil
	case schema.KindMap:
		if !k.IsName() {
			return nil, datum.IssueAt(k, datum.CodeIndexOutOfRange, "maps are keyed by string")
		}
		if e, ok := v.entries[k.Name()]; ok {
			return e, nil
		}
		if canCreate {
			return v.addEntry(k.Name()), nil
		}
		return nil, datum.IssueAt(k, datum.CodeIndexOutOfRange, "map element doesn't exist")
	case schema.KindRecord:
		pos := k.Index()
		if k.IsName() {
			pos = v.schema.Position(k.Name())
			if pos < 0 {
				return nil, datum.IssueAt(k, datum.CodeNoSuchField, "record field doesn't exist")
			}
		}
		if pos < 0 || pos >= len(v.fields) {
			return nil, datum.IssueAt(k, datum.CodeIndexOutOfRange, "field index out of bounds")
		}
		return v.fields[pos], nil
	case schema.KindUnion:
		if k == datum.ActiveBranch {
			return v.child, nil
		}
		pos := k.Index()
		if k.IsName() {
			pos = v.schema.Position(k.Name())
			if pos < 0 {
				return nil, datum.IssueAt(k, datum.CodeNoSuchBranch, "union branch doesn't exist")
			}
		}
		branches := v.schema.Branches()
		if pos < 0 || pos >= len(branches) {
			return nil, datum.IssueAt(k, datum.CodeNoSuchBranch, "branch index out of bounds")
		}
		// Addressing a non-active branch switches the discriminant; the old
		// branch value is discarded, matching set-discriminant semantics.
		if pos != v.branch {
			v.branch = pos
			v.child = newValue(branches[pos].Schema)
		}
		return v.child, nil
	default:
		return nil, datum.IssueAt(k, datum.CodeInvalidOperation, "scalar values have no children")
	}
}

func (v *value) Append() (datum.Value, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	if v.schema.Kind() != schema.KindArray {
		return nil, datum.IssueAtPath("/", datum.CodeInvalidOperation, "can only append to an array")
	}
	nv := newValue(v.schema.Items())
	v.items = append(v.items, nv)
	return nv, nil
}

func (v *value) Add(key string) (datum.Value, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	if v.schema.Kind() != schema.KindMap {
		return nil, datum.IssueAtPath("/", datum.CodeInvalidOperation, "can only add to a map")
	}
	if e, ok := v.entries[key]; ok {
		return e, nil
	}
	return v.addEntry(key), nil
}

func (v *value) addEntry(key string) *value {
	nv := newValue(v.schema.Values())
	v.entries[key] = nv
	v.keys = append(v.keys, key)
	return nv
}

func (v *value) Size() int {
	switch v.schema.Kind() {
	case schema.KindArray:
		return len(v.items)
	case schema.KindMap:
		return len(v.entries)
	case schema.KindRecord:
		return len(v.fields)
	case schema.KindUnion:
		return 1
	}
	return 0
}

func (v *value) Discriminant() (int, error) {
	if err := v.guard(); err != nil {
		return 0, err
	}
	if v.schema.Kind() != schema.KindUnion {
		return 0, datum.IssueAtPath("/", datum.CodeInvalidOperation, "can't get discriminant of a non-union value")
	}
	return v.branch, nil
}

func (v *value) DiscriminantName() (string, error) {
	if err := v.guard(); err != nil {
		return "", err
	}
	if v.schema.Kind() != schema.KindUnion {
		return "", datum.IssueAtPath("/", datum.CodeInvalidOperation, "can't get discriminant of a non-union value")
	}
	return v.schema.Branches()[v.branch].Name, nil
}

func (v *value) Reset() {
	if v.released {
		return
	}
	v.init()
}

func (v *value) Release() {
	v.released = true
	v.scalar = nil
	v.items = nil
	v.keys = nil
	v.entries = nil
	v.fields = nil
	v.child = nil
}

// Iter returns a cursor over an array's elements or a map's entries in
// insertion order.
func (v *value) Iter() (datum.ValueIter, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	switch v.schema.Kind() {
	case schema.KindArray, schema.KindMap:
		return &iter{v: v, next: 0}, nil
	default:
		return nil, datum.IssueAtPath("/", datum.CodeInvalidOperation, "can only iterate through arrays and maps")
	}
}

type iter struct {
	v    *value
	next int
	k    datum.Key
	cur  *value
}

func (it *iter) Next() bool {
	v := it.v
	switch v.schema.Kind() {
	case schema.KindArray:
		if it.next >= len(v.items) {
			return false
		}
		it.k = datum.ByIndex(it.next)
		it.cur = v.items[it.next]
	case schema.KindMap:
		if it.next >= len(v.keys) {
			return false
		}
		key := v.keys[it.next]
		it.k = datum.ByName(key)
		it.cur = v.entries[key]
	}
	it.next++
	return true
}

func (it *iter) Key() datum.Key     { return it.k }
func (it *iter) Value() datum.Value { return it.cur }
