// Package codec encodes and decodes raw values in a compact schema-driven
// binary form framed with msgpack. The schema is not part of the payload;
// Decode requires the same schema the value was encoded with.
package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	datum "github.com/reoring/datum"
	"github.com/reoring/datum/engine"
	"github.com/reoring/datum/schema"
)

// Encode serializes v. Records encode as field tuples in declaration order,
// unions as a (discriminant, content) pair, everything else as the natural
// msgpack shape.
func Encode(v datum.Value) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	err := encodeValue(enc, v)
	msgpack.PutEncoder(enc)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reconstructs a value of schema s from data produced by Encode.
func Decode(s *schema.Schema, data []byte) (datum.Value, error) {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.Reset(&r)
	v := engine.New(s)
	err := decodeValue(dec, v)
	msgpack.PutDecoder(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func encodeValue(enc *msgpack.Encoder, v datum.Value) error {
	s := v.Schema()
	switch s.Kind() {
	case schema.KindNull:
		return enc.EncodeNil()
	case schema.KindBoolean:
		p, err := v.Scalar()
		if err != nil {
			return err
		}
		return enc.EncodeBool(p.(bool))
	case schema.KindInt, schema.KindLong:
		p, err := v.Scalar()
		if err != nil {
			return err
		}
		return enc.EncodeInt(p.(int64))
	case schema.KindFloat:
		p, err := v.Scalar()
		if err != nil {
			return err
		}
		return enc.EncodeFloat32(float32(p.(float64)))
	case schema.KindDouble:
		p, err := v.Scalar()
		if err != nil {
			return err
		}
		return enc.EncodeFloat64(p.(float64))
	case schema.KindString, schema.KindEnum:
		p, err := v.Scalar()
		if err != nil {
			return err
		}
		return enc.EncodeString(p.(string))
	case schema.KindBytes, schema.KindFixed:
		p, err := v.Scalar()
		if err != nil {
			return err
		}
		return enc.EncodeBytes(p.([]byte))
	case schema.KindArray:
		if err := enc.EncodeArrayLen(v.Size()); err != nil {
			return err
		}
		it, err := v.Iter()
		if err != nil {
			return err
		}
		for it.Next() {
			if err := encodeValue(enc, it.Value()); err != nil {
				return err
			}
		}
		return nil
	case schema.KindMap:
		if err := enc.EncodeMapLen(v.Size()); err != nil {
			return err
		}
		it, err := v.Iter()
		if err != nil {
			return err
		}
		for it.Next() {
			if err := enc.EncodeString(it.Key().Name()); err != nil {
				return err
			}
			if err := encodeValue(enc, it.Value()); err != nil {
				return err
			}
		}
		return nil
	case schema.KindRecord:
		fields := s.Fields()
		if err := enc.EncodeArrayLen(len(fields)); err != nil {
			return err
		}
		for i := range fields {
			fv, err := v.Child(datum.ByIndex(i))
			if err != nil {
				return err
			}
			if err := encodeValue(enc, fv); err != nil {
				return err
			}
		}
		return nil
	case schema.KindUnion:
		disc, err := v.Discriminant()
		if err != nil {
			return err
		}
		if err := enc.EncodeArrayLen(2); err != nil {
			return err
		}
		if err := enc.EncodeInt(int64(disc)); err != nil {
			return err
		}
		bv, err := v.Child(datum.ActiveBranch)
		if err != nil {
			return err
		}
		return encodeValue(enc, bv)
	default:
		return datum.IssueAtPath("/", datum.CodeEncodeError, "cannot encode kind "+s.Kind().String())
	}
}

func decodeValue(dec *msgpack.Decoder, v datum.Value) error {
	s := v.Schema()
	switch s.Kind() {
	case schema.KindNull:
		return dec.DecodeNil()
	case schema.KindBoolean:
		b, err := dec.DecodeBool()
		if err != nil {
			return wireErr(err)
		}
		return v.SetScalar(b)
	case schema.KindInt, schema.KindLong:
		n, err := dec.DecodeInt64()
		if err != nil {
			return wireErr(err)
		}
		return v.SetScalar(n)
	case schema.KindFloat:
		f, err := dec.DecodeFloat32()
		if err != nil {
			return wireErr(err)
		}
		return v.SetScalar(float64(f))
	case schema.KindDouble:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return wireErr(err)
		}
		return v.SetScalar(f)
	case schema.KindString, schema.KindEnum:
		str, err := dec.DecodeString()
		if err != nil {
			return wireErr(err)
		}
		return v.SetScalar(str)
	case schema.KindBytes, schema.KindFixed:
		b, err := dec.DecodeBytes()
		if err != nil {
			return wireErr(err)
		}
		return v.SetScalar(b)
	case schema.KindArray:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return wireErr(err)
		}
		for i := 0; i < n; i++ {
			slot, err := v.Append()
			if err != nil {
				return err
			}
			if err := decodeValue(dec, slot); err != nil {
				return err
			}
		}
		return nil
	case schema.KindMap:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return wireErr(err)
		}
		for i := 0; i < n; i++ {
			key, err := dec.DecodeString()
			if err != nil {
				return wireErr(err)
			}
			slot, err := v.Add(key)
			if err != nil {
				return err
			}
			if err := decodeValue(dec, slot); err != nil {
				return err
			}
		}
		return nil
	case schema.KindRecord:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return wireErr(err)
		}
		if n != len(s.Fields()) {
			return datum.IssueAtPath("/", datum.CodeEncodeError, "record arity mismatch")
		}
		for i := 0; i < n; i++ {
			fv, err := v.Child(datum.ByIndex(i))
			if err != nil {
				return err
			}
			if err := decodeValue(dec, fv); err != nil {
				return err
			}
		}
		return nil
	case schema.KindUnion:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return wireErr(err)
		}
		if n != 2 {
			return datum.IssueAtPath("/", datum.CodeEncodeError, "union frame must be a pair")
		}
		disc, err := dec.DecodeInt64()
		if err != nil {
			return wireErr(err)
		}
		bv, err := v.Child(datum.ByIndex(int(disc)))
		if err != nil {
			return err
		}
		return decodeValue(dec, bv)
	default:
		return datum.IssueAtPath("/", datum.CodeEncodeError, "cannot decode kind "+s.Kind().String())
	}
}

// wireErr surfaces a msgpack failure verbatim inside the Issues model.
func wireErr(err error) error {
	return datum.Issues{{Path: "/", Code: datum.CodeEncodeError, Message: "malformed frame", Cause: err}}
}
