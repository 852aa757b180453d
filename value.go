package datum

import (
	"strconv"

	"github.com/reoring/datum/schema"
)

// Key addresses one child slot of a compound value: an element index for
// arrays, a string key for maps, a field or branch name (or declaration
// position) for records and unions.
type Key struct {
	name  string
	index int
	named bool
}

// ByIndex addresses a child by position.
func ByIndex(i int) Key { return Key{index: i} }

// ByName addresses a child by name.
func ByName(s string) Key { return Key{name: s, named: true} }

// ActiveBranch is the pseudo-key that addresses a union's currently active
// branch without naming it.
var ActiveBranch = ByName("_")

// IsName reports whether the key carries a name rather than an index.
func (k Key) IsName() bool { return k.named }

// Name returns the name of a ByName key.
func (k Key) Name() string { return k.name }

// Index returns the position of a ByIndex key.
func (k Key) Index() int { return k.index }

func (k Key) String() string {
	if k.named {
		return k.name
	}
	return strconv.Itoa(k.index)
}

// Value is the contract a raw-value engine provides to this layer. A Value
// is an opaque handle to one stored datum conforming to a schema; the
// accessor layer borrows these handles and never owns them.
//
// Engines report access failures as Issues errors so callers see one error
// model regardless of which side of the boundary produced the failure.
type Value interface {
	// Schema returns the schema this value conforms to.
	Schema() *schema.Schema

	// Scalar reads the payload of a scalar value.
	Scalar() (any, error)
	// SetScalar writes the payload of a scalar value.
	SetScalar(v any) error

	// Child returns the child slot addressed by k. Arrays and maps fail on a
	// missing slot; unions switch their active branch when k names a
	// non-active branch.
	Child(k Key) (Value, error)
	// PrepChild is Child except that a missing map slot is created first,
	// ready to receive a write.
	PrepChild(k Key) (Value, error)
	// Append grows an array by one default-initialized element and returns
	// the new slot.
	Append() (Value, error)
	// Add creates or reuses the map slot for key and returns it. Adding an
	// existing key updates in place; it never duplicates.
	Add(key string) (Value, error)
	// Size returns the number of children.
	Size() int
	// Iter returns a cursor over an array's or map's children. The cursor is
	// lazy, finite and not independently restartable.
	Iter() (ValueIter, error)

	// Discriminant returns the active branch index of a union.
	Discriminant() (int, error)
	// DiscriminantName returns the active branch name of a union.
	DiscriminantName() (string, error)

	// CopyFrom deep-copies other's content into this value. The two values
	// must share a schema identity.
	CopyFrom(other Value) error
	// Cmp totally orders two values of the same schema.
	Cmp(other Value) (int, error)
	// Hash returns a content hash; equal values hash equal.
	Hash() uint64
	// Reset reverts the value to its schema's default shape.
	Reset()
	// Release detaches the value's storage. The handle stays valid as an
	// object but all further access fails.
	Release()

	// SetFromAST fills the value from an abstract description: Go scalars,
	// []any for arrays, map[string]any for maps/records, and the
	// {"branchName": v} convention (or nil) for unions.
	SetFromAST(v any) error
	// ToJSON renders the value as JSON using the same union convention.
	ToJSON() ([]byte, error)
}

// ValueIter is the raw engine's iteration cursor: element index keys for
// arrays, string keys for maps in whatever order the engine documents.
type ValueIter interface {
	Next() bool
	Key() Key
	Value() Value
}
