package engine

import (
	"fmt"

	datum "github.com/reoring/datum"
	"github.com/reoring/datum/schema"
)

// Scalar reads the payload of a scalar value. Integral kinds read as int64,
// floating kinds as float64, enums as their symbol string.
func (v *value) Scalar() (any, error) {
	if err := v.guard(); err != nil {
		return nil, err
	}
	switch v.schema.Kind() {
	case schema.KindNull:
		return nil, nil
	case schema.KindEnum:
		idx := v.scalar.(int64)
		symbols := v.schema.Symbols()
		if idx < 0 || int(idx) >= len(symbols) {
			return nil, datum.IssueAtPath("/", datum.CodeInvalidValue, "enum index out of range")
		}
		return symbols[idx], nil
	case schema.KindBoolean, schema.KindInt, schema.KindLong,
		schema.KindFloat, schema.KindDouble, schema.KindString,
		schema.KindBytes, schema.KindFixed:
		return v.scalar, nil
	default:
		return nil, datum.IssueAtPath("/", datum.CodeInvalidOperation, "value isn't a scalar")
	}
}

// SetScalar writes the payload of a scalar value, coercing compatible Go
// types (any integer kind into int/long, numerics into float/double, string
// or []byte into the byte-string kinds, symbol or index into enums).
func (v *value) SetScalar(val any) error {
	if err := v.guard(); err != nil {
		return err
	}
	switch v.schema.Kind() {
	case schema.KindNull:
		if val != nil {
			return badScalar(v, val)
		}
		return nil
	case schema.KindBoolean:
		b, ok := val.(bool)
		if !ok {
			return badScalar(v, val)
		}
		v.scalar = b
		return nil
	case schema.KindInt, schema.KindLong:
		n, ok := asInt64(val)
		if !ok {
			return badScalar(v, val)
		}
		v.scalar = n
		return nil
	case schema.KindFloat, schema.KindDouble:
		f, ok := asFloat64(val)
		if !ok {
			return badScalar(v, val)
		}
		v.scalar = f
		return nil
	case schema.KindString:
		switch s := val.(type) {
		case string:
			v.scalar = s
		case []byte:
			v.scalar = string(s)
		default:
			return badScalar(v, val)
		}
		return nil
	case schema.KindBytes:
		switch s := val.(type) {
		case []byte:
			v.scalar = append([]byte(nil), s...)
		case string:
			v.scalar = []byte(s)
		default:
			return badScalar(v, val)
		}
		return nil
	case schema.KindFixed:
		var b []byte
		switch s := val.(type) {
		case []byte:
			b = s
		case string:
			b = []byte(s)
		default:
			return badScalar(v, val)
		}
		if len(b) != v.schema.Size() {
			return datum.IssueAtPath("/", datum.CodeInvalidValue,
				fmt.Sprintf("fixed %s requires %d bytes, got %d", v.schema.Name(), v.schema.Size(), len(b)))
		}
		v.scalar = append([]byte(nil), b...)
		return nil
	case schema.KindEnum:
		switch s := val.(type) {
		case string:
			for i, sym := range v.schema.Symbols() {
				if sym == s {
					v.scalar = int64(i)
					return nil
				}
			}
			return datum.IssueAtPath("/", datum.CodeInvalidValue, "unknown enum symbol "+s)
		default:
			if n, ok := asInt64(val); ok {
				if n < 0 || int(n) >= len(v.schema.Symbols()) {
					return datum.IssueAtPath("/", datum.CodeInvalidValue, "enum index out of range")
				}
				v.scalar = n
				return nil
			}
			return badScalar(v, val)
		}
	default:
		return datum.IssueAtPath("/", datum.CodeInvalidOperation, "value isn't a scalar")
	}
}

func badScalar(v *value, val any) error {
	return datum.IssueAtPath("/", datum.CodeInvalidValue,
		fmt.Sprintf("cannot store %T into %s", val, v.schema.Kind()))
}

func asInt64(val any) (int64, bool) {
	switch n := val.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func asFloat64(val any) (float64, bool) {
	switch n := val.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		if i, ok := asInt64(val); ok {
			return float64(i), true
		}
	}
	return 0, false
}
