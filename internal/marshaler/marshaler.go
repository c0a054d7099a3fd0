// Package marshaler converts Go values into value.Value trees for
// encoding, walking struct/map/slice values by reflection and
// preferring a type's own MarshalTOON method when it implements one.
package marshaler

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"

	"github.com/tooncodec/toon-go/internal/mapper"
	"github.com/tooncodec/toon-go/value"
)

// Marshaler is implemented by types that encode themselves directly to a
// value.Value rather than through reflection.
type Marshaler interface {
	MarshalTOON() (value.Value, error)
}

// MarshalerError wraps an error returned by a type's MarshalTOON method.
type MarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *MarshalerError) Error() string {
	return "toon: error calling MarshalTOON for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// Marshal converts a Go value into a value.Value tree.
func Marshal(v any) (value.Value, error) {
	m := &marshaler{}
	return m.marshal(reflect.ValueOf(v))
}

type marshaler struct{}

func (m *marshaler) marshal(v reflect.Value) (value.Value, error) {
	if !v.IsValid() || (v.Kind() == reflect.Interface && v.IsNil()) {
		return value.Null(), nil
	}

	if u, ok := asMarshaler(v); ok {
		out, err := u.MarshalTOON()
		if err != nil {
			return value.Value{}, &MarshalerError{Type: v.Type(), Err: err}
		}
		return out, nil
	}

	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return value.Null(), nil
		}
		v = v.Elem()
	}

	if v.Type() == bigIntType {
		bi := v.Interface().(big.Int)
		return value.BigInt(&bi), nil
	}

	switch v.Kind() {
	case reflect.String:
		return value.String(v.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < -maxSafeInt || n > maxSafeInt {
			return value.BigInt(big.NewInt(n)), nil
		}
		return value.Number(float64(n)), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := v.Uint()
		if n > maxSafeInt {
			return value.BigInt(new(big.Int).SetUint64(n)), nil
		}
		return value.Number(float64(n)), nil

	case reflect.Float32, reflect.Float64:
		return value.Number(v.Float()), nil

	case reflect.Bool:
		return value.Bool(v.Bool()), nil

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return value.Null(), nil
		}
		items := make([]value.Value, v.Len())
		for i := range items {
			item, err := m.marshal(v.Index(i))
			if err != nil {
				return value.Value{}, err
			}
			items[i] = item
		}
		return value.Array(items...), nil

	case reflect.Map:
		if v.IsNil() {
			return value.Null(), nil
		}
		if v.Type().Key().Kind() != reflect.String {
			return value.Value{}, fmt.Errorf("toon: map key type must be a string, got %s", v.Type().Key())
		}
		keys := v.MapKeys()
		names := make([]string, len(keys))
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			name := k.String()
			names[i] = name
			byName[name] = v.MapIndex(k)
		}
		sort.Strings(names)
		members := make([]value.Member, len(names))
		for i, name := range names {
			mv, err := m.marshal(byName[name])
			if err != nil {
				return value.Value{}, err
			}
			members[i] = value.Member{Key: name, Value: mv}
		}
		return value.Object(members...), nil

	case reflect.Struct:
		t := v.Type()
		fields := mapper.CachedFields(t)
		members := make([]value.Member, 0, len(fields.Ordered))
		for _, f := range fields.Ordered {
			fv := v.FieldByIndex(f.Index)
			if f.OmitEmpty && isEmptyValue(fv) {
				continue
			}
			mv, err := m.marshal(fv)
			if err != nil {
				return value.Value{}, err
			}
			members = append(members, value.Member{Key: f.Name, Value: mv})
		}
		return value.Object(members...), nil

	default:
		if !v.IsValid() || v.IsZero() {
			return value.Null(), nil
		}
		return value.Value{}, fmt.Errorf("toon: unsupported type for marshaling: %s", v.Type())
	}
}

const maxSafeInt = 1<<53 - 1

var bigIntType = reflect.TypeOf(big.Int{})

// asMarshaler checks both v and, where possible, a pointer to v for a
// Marshaler implementation, so both value and pointer receivers work.
func asMarshaler(v reflect.Value) (Marshaler, bool) {
	if v.IsValid() && v.Type().NumMethod() > 0 && v.CanInterface() {
		if u, ok := v.Interface().(Marshaler); ok {
			return u, true
		}
	}
	if v.Kind() == reflect.Pointer {
		return nil, false
	}
	var pv reflect.Value
	if v.CanAddr() {
		pv = v.Addr()
	} else {
		pv = reflect.New(v.Type())
		pv.Elem().Set(v)
	}
	if pv.Type().NumMethod() > 0 && pv.CanInterface() {
		if u, ok := pv.Interface().(Marshaler); ok {
			return u, true
		}
	}
	return nil, false
}

// isEmptyValue reports whether v is the encoding/json definition of
// empty: false, 0, a nil pointer, a nil interface, or an empty array,
// slice, map or string.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
