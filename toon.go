// Package toon implements TOON (Token-Oriented Object Notation), a
// compact, indentation-sensitive text encoding for the same data model
// JSON covers: null, bool, number, string, array and object.
package toon

import (
	"bytes"

	"github.com/tooncodec/toon-go/value"
)

// Value is the decoded TOON value tree: Null, Bool, Number, String,
// Array or Object. Encode and Decode work through it directly; Marshal
// and Unmarshal build one from, or populate one into, a Go value via
// reflection.
type Value = value.Value

// Marshaler is implemented by types that encode themselves directly to
// a Value rather than through reflection.
type Marshaler interface {
	MarshalTOON() (Value, error)
}

// Unmarshaler is implemented by types that populate themselves from a
// decoded Value rather than through reflection.
type Unmarshaler interface {
	UnmarshalTOON(Value) error
}

// Marshal returns the TOON encoding of v.
func Marshal(v any, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the TOON-encoded data and stores the result in the
// value pointed to by v.
func Unmarshal(data []byte, v any, opts ...DecodeOption) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}

// EncodeValue renders a Value tree directly, without going through
// reflection. Useful for hosts that already hold a Value (e.g. from a
// prior Decode) and want to re-render it, possibly with different
// options.
func EncodeValue(v Value, opts ...EncodeOption) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf, opts...)
	if err := e.EncodeValue(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeValue parses TOON-encoded data into a Value tree without
// populating a Go value.
func DecodeValue(data []byte, opts ...DecodeOption) (Value, error) {
	d := NewDecoder(bytes.NewReader(data), opts...)
	return d.DecodeValue()
}
