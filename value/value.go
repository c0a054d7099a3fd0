// Package value defines the JSON-equivalent value tree that sits at the
// TOON codec boundary: the encoder walks one to produce text, the decoder
// builds one from text. It is ordered, acyclic and immutable once built.
package value

import "math/big"

// Kind identifies which variant of the tagged union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the TOON data model: Null, Bool, Number,
// String, Array or Object. The zero Value is Null.
type Value struct {
	kind   Kind
	b      bool
	num    float64
	bigint *big.Int // set only for integers outside the IEEE-754 safe range
	str    string
	arr    []Value
	obj    []Member
}

// Member is a single ordered (key, value) pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the Null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a Number value backed by a float64.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// BigInt returns a Number value backed by an arbitrary-precision integer,
// for integers outside the IEEE-754 safe-integer range (±(2^53-1)).
// Encoders must render such values as quoted decimal strings.
func BigInt(i *big.Int) Value {
	return Value{kind: KindNumber, num: bigIntToFloatApprox(i), bigint: new(big.Int).Set(i)}
}

func bigIntToFloatApprox(i *big.Int) float64 {
	f, _ := new(big.Float).SetInt(i).Float64()
	return f
}

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an Array value containing items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: append([]Value(nil), items...)}
}

// Object returns an Object value containing members in order. Duplicate
// keys are not rejected here, and the decoder does not reject them
// either: a repeated key yields two members, and Get returns the first.
func Object(members ...Member) Value {
	return Value{kind: KindObject, obj: append([]Member(nil), members...)}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsPrimitive reports whether v is Null, Bool, Number or String.
func (v Value) IsPrimitive() bool {
	switch v.kind {
	case KindNull, KindBool, KindNumber, KindString:
		return true
	default:
		return false
	}
}

// Bool returns the bool payload; valid only when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Number returns the float64 payload; valid only when Kind() == KindNumber.
func (v Value) Number() float64 { return v.num }

// BigInt returns the arbitrary-precision integer payload and whether one
// is present; only Number values built via BigInt carry it.
func (v Value) BigInt() (*big.Int, bool) {
	if v.bigint == nil {
		return nil, false
	}
	return v.bigint, true
}

// Str returns the string payload; valid only when Kind() == KindString.
func (v Value) Str() string { return v.str }

// ArrayItems returns the element slice; valid only when Kind() == KindArray.
// The returned slice must not be mutated by callers.
func (v Value) ArrayItems() []Value { return v.arr }

// Len returns the number of elements (Array) or members (Object); zero
// for any other kind.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return len(v.obj)
	default:
		return 0
	}
}

// Members returns the ordered member slice; valid only when
// Kind() == KindObject. The returned slice must not be mutated by callers.
func (v Value) Members() []Member { return v.obj }

// Get looks up key among an Object's members in order, returning the
// first match. ok is false if v is not an Object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns an Object's keys in member order; nil for any other kind.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.obj))
	for i, m := range v.obj {
		keys[i] = m.Key
	}
	return keys
}
