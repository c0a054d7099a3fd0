package mapper

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"

	"github.com/tooncodec/toon-go/value"
)

// Unmarshaler is implemented by types that populate themselves from a
// value.Value rather than through reflection.
type Unmarshaler interface {
	UnmarshalTOON(value.Value) error
}

// UnmarshalerError wraps an error returned by a type's UnmarshalTOON method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error
}

func (e *UnmarshalerError) Error() string {
	return "toon: error calling UnmarshalTOON for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }

// Apply populates rv from v, following pointers and interfaces and
// preferring a custom Unmarshaler or encoding.TextUnmarshaler over
// reflection-driven assignment.
func Apply(v value.Value, rv reflect.Value) error {
	if !rv.IsValid() {
		return fmt.Errorf("toon: cannot unmarshal into invalid value")
	}
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("toon: Unmarshal target must be a non-nil pointer, got %s", rv.Type())
	}
	return mapValue(v, rv)
}

func mapValue(v value.Value, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if v.IsNull() && rv.CanSet() {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		if rv.IsNil() {
			if v.IsNull() {
				return nil
			}
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		if u, ok := rv.Interface().(Unmarshaler); ok {
			if err := u.UnmarshalTOON(v); err != nil {
				return &UnmarshalerError{Type: rv.Type(), Err: err}
			}
			return nil
		}
		if tu, ok := rv.Interface().(encoding.TextUnmarshaler); ok && v.Kind() == value.KindString {
			return tu.UnmarshalText([]byte(v.Str()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		native, err := toNative(v)
		if err != nil {
			return err
		}
		if native == nil {
			rv.Set(reflect.Zero(rv.Type()))
			return nil
		}
		rv.Set(reflect.ValueOf(native))
		return nil
	}

	if v.IsNull() {
		rv.Set(reflect.Zero(rv.Type()))
		return nil
	}

	if rv.Type() == bigIntType {
		return mapBigInt(v, rv)
	}

	switch v.Kind() {
	case value.KindBool:
		return mapBool(v, rv)
	case value.KindNumber:
		return mapNumber(v, rv)
	case value.KindString:
		return mapString(v, rv)
	case value.KindArray:
		return mapArray(v, rv)
	case value.KindObject:
		return mapObject(v, rv)
	default:
		return fmt.Errorf("toon: unhandled value kind %s", v.Kind())
	}
}

var bigIntType = reflect.TypeOf(big.Int{})

// mapBigInt handles a math/big.Int target field, which can arrive either
// as a Number carrying a BigInt payload (an in-process Value tree) or as
// a quoted String (the wire form an out-of-safe-range integer takes
// once round-tripped through text).
func mapBigInt(v value.Value, rv reflect.Value) error {
	switch v.Kind() {
	case value.KindNumber:
		if bi, ok := v.BigInt(); ok {
			rv.Set(reflect.ValueOf(*bi))
			return nil
		}
		rv.Set(reflect.ValueOf(*big.NewInt(int64(v.Number()))))
		return nil
	case value.KindString:
		bi, ok := new(big.Int).SetString(v.Str(), 10)
		if !ok {
			return fmt.Errorf("toon: %q is not a valid integer literal", v.Str())
		}
		rv.Set(reflect.ValueOf(*bi))
		return nil
	default:
		return fmt.Errorf("toon: cannot unmarshal %s into big.Int", v.Kind())
	}
}

func mapBool(v value.Value, rv reflect.Value) error {
	if rv.Kind() != reflect.Bool {
		return fmt.Errorf("toon: cannot unmarshal bool into %s", rv.Type())
	}
	rv.SetBool(v.Bool())
	return nil
}

func mapString(v value.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(v.Str())
		return nil
	default:
		return fmt.Errorf("toon: cannot unmarshal string into %s", rv.Type())
	}
}

func mapNumber(v value.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		rv.SetFloat(v.Number())
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if bi, ok := v.BigInt(); ok {
			if !bi.IsInt64() {
				return fmt.Errorf("toon: integer %s overflows %s", bi.String(), rv.Type())
			}
			rv.SetInt(bi.Int64())
			return nil
		}
		rv.SetInt(int64(v.Number()))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if bi, ok := v.BigInt(); ok {
			if bi.Sign() < 0 || !bi.IsUint64() {
				return fmt.Errorf("toon: integer %s overflows %s", bi.String(), rv.Type())
			}
			rv.SetUint(bi.Uint64())
			return nil
		}
		if v.Number() < 0 {
			return fmt.Errorf("toon: negative number cannot be unmarshaled into %s", rv.Type())
		}
		rv.SetUint(uint64(v.Number()))
		return nil
	default:
		return fmt.Errorf("toon: cannot unmarshal number into %s", rv.Type())
	}
}

func mapArray(v value.Value, rv reflect.Value) error {
	items := v.ArrayItems()
	switch rv.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), len(items), len(items))
		for i, item := range items {
			if err := mapValue(item, out.Index(i).Addr()); err != nil {
				return err
			}
		}
		rv.Set(out)
		return nil
	case reflect.Array:
		if len(items) != rv.Len() {
			return fmt.Errorf("toon: array length %d does not match %s", len(items), rv.Type())
		}
		for i, item := range items {
			if err := mapValue(item, rv.Index(i).Addr()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("toon: cannot unmarshal array into %s", rv.Type())
	}
}

func mapObject(v value.Value, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Struct:
		fields := CachedFields(rv.Type())
		for _, m := range v.Members() {
			f, ok := fields.ByName(m.Key)
			if !ok {
				continue
			}
			if err := mapValue(m.Value, rv.FieldByIndex(f.Index).Addr()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("toon: map key type must be a string, got %s", rv.Type().Key())
		}
		out := reflect.MakeMapWithSize(rv.Type(), v.Len())
		elemType := rv.Type().Elem()
		for _, m := range v.Members() {
			elem := reflect.New(elemType)
			if err := mapValue(m.Value, elem); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(m.Key).Convert(rv.Type().Key()), elem.Elem())
		}
		rv.Set(out)
		return nil
	default:
		return fmt.Errorf("toon: cannot unmarshal object into %s", rv.Type())
	}
}

// toNative converts v into a plain Go value (map[string]any, []any,
// string, float64, *big.Int, bool, nil) for assignment into an any field.
func toNative(v value.Value) (any, error) {
	switch v.Kind() {
	case value.KindNull:
		return nil, nil
	case value.KindBool:
		return v.Bool(), nil
	case value.KindString:
		return v.Str(), nil
	case value.KindNumber:
		if bi, ok := v.BigInt(); ok {
			return bi, nil
		}
		return v.Number(), nil
	case value.KindArray:
		items := v.ArrayItems()
		out := make([]any, len(items))
		for i, item := range items {
			nv, err := toNative(item)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case value.KindObject:
		out := make(map[string]any, v.Len())
		for _, m := range v.Members() {
			nv, err := toNative(m.Value)
			if err != nil {
				return nil, err
			}
			out[m.Key] = nv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("toon: unhandled value kind %s", v.Kind())
	}
}
