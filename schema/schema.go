package schema

import (
	"fmt"
	"sync/atomic"
)

// Kind identifies the structural category of a schema node. The category set
// is closed: registries and engines may treat an unlisted kind as a fatal
// configuration error.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBoolean
	KindInt
	KindLong
	KindFloat
	KindDouble
	KindBytes
	KindString
	KindEnum
	KindFixed
	KindArray
	KindMap
	KindRecord
	KindUnion
	KindLink
)

var kindNames = map[Kind]string{
	KindNull:    "null",
	KindBoolean: "boolean",
	KindInt:     "int",
	KindLong:    "long",
	KindFloat:   "float",
	KindDouble:  "double",
	KindBytes:   "bytes",
	KindString:  "string",
	KindEnum:    "enum",
	KindFixed:   "fixed",
	KindArray:   "array",
	KindMap:     "map",
	KindRecord:  "record",
	KindUnion:   "union",
	KindLink:    "link",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsScalar reports whether values of this kind carry a single scalar payload
// rather than children.
func (k Kind) IsScalar() bool {
	switch k {
	case KindNull, KindBoolean, KindInt, KindLong, KindFloat, KindDouble,
		KindBytes, KindString, KindEnum, KindFixed:
		return true
	}
	return false
}

// IsCompound reports whether values of this kind contain child values.
func (k Kind) IsCompound() bool {
	switch k {
	case KindArray, KindMap, KindRecord, KindUnion:
		return true
	}
	return false
}

// IsNamed reports whether schemas of this kind carry a name that can be
// targeted by a registry override or a link.
func (k Kind) IsNamed() bool {
	switch k {
	case KindEnum, KindFixed, KindRecord:
		return true
	}
	return false
}

// Field is one (name, schema) pair of a record's fields or a union's
// branches, in declaration order.
type Field struct {
	Name   string
	Schema *Schema
}

// Schema is an immutable structural description of a value's shape. Two
// schemas reached through different paths share an ID exactly when they are
// the same node, which is what registry memoization keys on.
//
// Accessors for inapplicable kinds return zero values; callers dispatch on
// Kind() first.
type Schema struct {
	kind     Kind
	id       uint64
	name     string
	items    *Schema // array
	values   *Schema // map
	fields   []Field // record fields or union branches
	target   *Schema // link
	symbols  []string
	size     int // fixed
	sealed   bool
	posNames map[string]int
}

var nextID atomic.Uint64

func newSchema(kind Kind) *Schema {
	return &Schema{kind: kind, id: nextID.Add(1)}
}

// Kind returns the structural category of this node.
func (s *Schema) Kind() Kind { return s.kind }

// ID returns the process-stable identity of this node.
func (s *Schema) ID() uint64 { return s.id }

// Name returns the declared name, or "" for anonymous schemas.
func (s *Schema) Name() string { return s.name }

// Items returns the element schema of an array.
func (s *Schema) Items() *Schema { return s.items }

// Values returns the value schema of a map.
func (s *Schema) Values() *Schema { return s.values }

// Fields returns a record's fields in declaration order.
func (s *Schema) Fields() []Field {
	if s.kind != KindRecord {
		return nil
	}
	return s.fields
}

// Branches returns a union's branches in declaration order.
func (s *Schema) Branches() []Field {
	if s.kind != KindUnion {
		return nil
	}
	return s.fields
}

// Target returns the schema a link points at.
func (s *Schema) Target() *Schema { return s.target }

// Symbols returns an enum's symbol list.
func (s *Schema) Symbols() []string { return s.symbols }

// Size returns a fixed schema's byte length.
func (s *Schema) Size() int { return s.size }

// Position resolves a field or branch name to its declaration position,
// returning -1 when the name is unknown.
func (s *Schema) Position(name string) int {
	if pos, ok := s.posNames[name]; ok {
		return pos
	}
	return -1
}

// TypeName returns the name used to refer to this schema in rendered output
// and in union JSON encoding: the declared name for named kinds, the kind
// name otherwise.
func (s *Schema) TypeName() string {
	if s.kind == KindLink {
		return s.target.TypeName()
	}
	if s.name != "" {
		return s.name
	}
	return s.kind.String()
}

func (s *Schema) indexFields() {
	s.posNames = make(map[string]int, len(s.fields))
	for i, f := range s.fields {
		s.posNames[f.Name] = i
	}
}

var (
	nullSchema    = newSchema(KindNull)
	booleanSchema = newSchema(KindBoolean)
	intSchema     = newSchema(KindInt)
	longSchema    = newSchema(KindLong)
	floatSchema   = newSchema(KindFloat)
	doubleSchema  = newSchema(KindDouble)
	bytesSchema   = newSchema(KindBytes)
	stringSchema  = newSchema(KindString)
)

// The scalar constructors return shared singleton nodes; every "int" in a
// schema graph is the same node and therefore memoizes to the same
// definition.

func Null() *Schema    { return nullSchema }
func Boolean() *Schema { return booleanSchema }
func Int() *Schema     { return intSchema }
func Long() *Schema    { return longSchema }
func Float() *Schema   { return floatSchema }
func Double() *Schema  { return doubleSchema }
func Bytes() *Schema   { return bytesSchema }
func String() *Schema  { return stringSchema }

// Enum constructs a named enum schema over the given symbols.
func Enum(name string, symbols ...string) *Schema {
	s := newSchema(KindEnum)
	s.name = name
	s.symbols = symbols
	return s
}

// Fixed constructs a named fixed-length bytes schema.
func Fixed(name string, size int) *Schema {
	s := newSchema(KindFixed)
	s.name = name
	s.size = size
	return s
}

// Array constructs an anonymous array schema over items.
func Array(items *Schema) *Schema {
	s := newSchema(KindArray)
	s.items = items
	return s
}

// Map constructs an anonymous string-keyed map schema over values.
func Map(values *Schema) *Schema {
	s := newSchema(KindMap)
	s.values = values
	return s
}

// NewField pairs a name with a schema for Record and Union construction.
func NewField(name string, s *Schema) Field { return Field{Name: name, Schema: s} }

// Record constructs a named record schema with the given fields, in order.
// For self-referential records use RecordBuilder so a Link can point back at
// the record before its field list is sealed.
func Record(name string, fields ...Field) *Schema {
	s := newSchema(KindRecord)
	s.name = name
	s.fields = fields
	s.sealed = true
	s.indexFields()
	return s
}

// Union constructs an anonymous union schema over the given branches. Branch
// names follow the type names of the branch schemas.
func Union(branches ...*Schema) *Schema {
	s := newSchema(KindUnion)
	s.fields = make([]Field, len(branches))
	for i, b := range branches {
		s.fields[i] = Field{Name: b.TypeName(), Schema: b}
	}
	s.sealed = true
	s.indexFields()
	return s
}

// Link constructs an indirection node pointing at target. Registries never
// derive behavior for a link; they substitute the target.
func Link(target *Schema) *Schema {
	s := newSchema(KindLink)
	s.target = target
	return s
}

// RecordBuilder assembles a record whose fields may reference the record
// itself through Link(b.Schema()).
type RecordBuilder struct {
	s *Schema
}

// NewRecord starts building a named record schema.
func NewRecord(name string) *RecordBuilder {
	s := newSchema(KindRecord)
	s.name = name
	return &RecordBuilder{s: s}
}

// Schema returns the record node under construction; it may be the target of
// a Link before Build is called.
func (b *RecordBuilder) Schema() *Schema { return b.s }

// Field appends one field.
func (b *RecordBuilder) Field(name string, fs *Schema) *RecordBuilder {
	if b.s.sealed {
		panic("schema: record already built")
	}
	b.s.fields = append(b.s.fields, Field{Name: name, Schema: fs})
	return b
}

// Build seals the field list and returns the record schema.
func (b *RecordBuilder) Build() *Schema {
	b.s.sealed = true
	b.s.indexFields()
	return b.s
}
