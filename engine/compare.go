package engine

import (
	"bytes"
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	datum "github.com/reoring/datum"
	"github.com/reoring/datum/schema"
)

// Cmp totally orders two values sharing a schema identity: scalars by
// payload, arrays and records element-wise, maps by sorted key then value,
// unions by discriminant then branch content.
func (v *value) Cmp(other datum.Value) (int, error) {
	if err := v.guard(); err != nil {
		return 0, err
	}
	o, ok := other.(*value)
	if !ok || o.schema.ID() != v.schema.ID() {
		return 0, datum.IssueAtPath("/", datum.CodeSchemaMismatch, "can only compare values of the same schema")
	}
	return v.cmp(o), nil
}

func (v *value) cmp(o *value) int {
	switch v.schema.Kind() {
	case schema.KindNull:
		return 0
	case schema.KindBoolean:
		a, b := v.scalar.(bool), o.scalar.(bool)
		switch {
		case a == b:
			return 0
		case !a:
			return -1
		default:
			return 1
		}
	case schema.KindInt, schema.KindLong, schema.KindEnum:
		return cmpOrdered(v.scalar.(int64), o.scalar.(int64))
	case schema.KindFloat, schema.KindDouble:
		return cmpOrdered(v.scalar.(float64), o.scalar.(float64))
	case schema.KindString:
		return cmpOrdered(v.scalar.(string), o.scalar.(string))
	case schema.KindBytes, schema.KindFixed:
		return bytes.Compare(v.scalar.([]byte), o.scalar.([]byte))
	case schema.KindArray:
		for i := 0; i < len(v.items) && i < len(o.items); i++ {
			if c := v.items[i].cmp(o.items[i]); c != 0 {
				return c
			}
		}
		return cmpOrdered(len(v.items), len(o.items))
	case schema.KindMap:
		ka, kb := sortedKeys(v), sortedKeys(o)
		for i := 0; i < len(ka) && i < len(kb); i++ {
			if c := cmpOrdered(ka[i], kb[i]); c != 0 {
				return c
			}
			if c := v.entries[ka[i]].cmp(o.entries[kb[i]]); c != 0 {
				return c
			}
		}
		return cmpOrdered(len(ka), len(kb))
	case schema.KindRecord:
		for i := range v.fields {
			if c := v.fields[i].cmp(o.fields[i]); c != 0 {
				return c
			}
		}
		return 0
	case schema.KindUnion:
		if c := cmpOrdered(v.branch, o.branch); c != 0 {
			return c
		}
		return v.child.cmp(o.child)
	}
	return 0
}

func cmpOrdered[T int | int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sortedKeys(v *value) []string {
	keys := append([]string(nil), v.keys...)
	sort.Strings(keys)
	return keys
}

// Hash returns a content hash over a canonical walk of the value; values
// that compare equal hash equal (maps are walked in sorted key order).
func (v *value) Hash() uint64 {
	d := xxhash.New()
	v.hashInto(d)
	return d.Sum64()
}

func (v *value) hashInto(d *xxhash.Digest) {
	var tag [1]byte
	tag[0] = byte(v.schema.Kind())
	_, _ = d.Write(tag[:])
	var buf [8]byte
	switch v.schema.Kind() {
	case schema.KindNull:
	case schema.KindBoolean:
		if v.scalar.(bool) {
			buf[0] = 1
		}
		_, _ = d.Write(buf[:1])
	case schema.KindInt, schema.KindLong, schema.KindEnum:
		binary.LittleEndian.PutUint64(buf[:], uint64(v.scalar.(int64)))
		_, _ = d.Write(buf[:])
	case schema.KindFloat, schema.KindDouble:
		f := v.scalar.(float64)
		if f == 0 {
			f = 0 // fold -0 into +0 so equal values hash equal
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	case schema.KindString:
		_, _ = d.WriteString(v.scalar.(string))
	case schema.KindBytes, schema.KindFixed:
		_, _ = d.Write(v.scalar.([]byte))
	case schema.KindArray:
		for _, e := range v.items {
			e.hashInto(d)
		}
	case schema.KindMap:
		for _, k := range sortedKeys(v) {
			_, _ = d.WriteString(k)
			v.entries[k].hashInto(d)
		}
	case schema.KindRecord:
		for _, f := range v.fields {
			f.hashInto(d)
		}
	case schema.KindUnion:
		binary.LittleEndian.PutUint64(buf[:], uint64(v.branch))
		_, _ = d.Write(buf[:])
		v.child.hashInto(d)
	}
}

// CopyFrom deep-copies other's content into v. Both values must share a
// schema identity.
func (v *value) CopyFrom(other datum.Value) error {
	if err := v.guard(); err != nil {
		return err
	}
	o, ok := other.(*value)
	if !ok || o.schema.ID() != v.schema.ID() {
		return datum.IssueAtPath("/", datum.CodeSchemaMismatch, "can only copy between values of the same schema")
	}
	v.copyFrom(o)
	return nil
}

func (v *value) copyFrom(o *value) {
	switch v.schema.Kind() {
	case schema.KindBytes, schema.KindFixed:
		v.scalar = append([]byte(nil), o.scalar.([]byte)...)
	case schema.KindArray:
		v.items = make([]*value, len(o.items))
		for i, e := range o.items {
			v.items[i] = newValue(e.schema)
			v.items[i].copyFrom(e)
		}
	case schema.KindMap:
		v.keys = append([]string(nil), o.keys...)
		v.entries = make(map[string]*value, len(o.entries))
		for k, e := range o.entries {
			nv := newValue(e.schema)
			nv.copyFrom(e)
			v.entries[k] = nv
		}
	case schema.KindRecord:
		for i, f := range o.fields {
			v.fields[i].copyFrom(f)
		}
	case schema.KindUnion:
		v.branch = o.branch
		v.child = newValue(o.child.schema)
		v.child.copyFrom(o.child)
	default:
		v.scalar = o.scalar
	}
}
