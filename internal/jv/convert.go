package jv

import (
	"encoding/json"
	"fmt"
	"math/big"
	"slices"
)

// FromAny converts plain Go data into a Value. It accepts what Interface
// returns plus the shapes produced by encoding/json, YAML and CBOR decoders:
// any signed or unsigned integer width, json.Number, *big.Int, []any and maps
// keyed by string. Other types return ErrType.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t.Clone(), nil
	case *Value:
		if t == nil {
			return Null(), nil
		}
		return t.Clone(), nil
	case bool:
		return Bool(t), nil
	case string:
		return Str(t), nil
	case []byte:
		return Str(string(t)), nil
	case int:
		return FromSigned(t), nil
	case int8:
		return FromSigned(t), nil
	case int16:
		return FromSigned(t), nil
	case int32:
		return FromSigned(t), nil
	case int64:
		return FromSigned(t), nil
	case uint:
		return FromUnsigned(t), nil
	case uint8:
		return FromUnsigned(t), nil
	case uint16:
		return FromUnsigned(t), nil
	case uint32:
		return FromUnsigned(t), nil
	case uint64:
		return FromUnsigned(t), nil
	case float32:
		return FromFloat(t), nil
	case float64:
		return FromFloat(t), nil
	case json.Number:
		return Parse(t.String())
	case *big.Int:
		switch {
		case t.IsUint64():
			return Uint(t.Uint64()), nil
		case t.IsInt64():
			return Int(t.Int64()), nil
		default:
			f, _ := new(big.Float).SetInt(t).Float64()
			return Float(f), nil
		}
	case []Value:
		return Array(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("[%d]: %w", i, err)
			}
			elems[i] = v
		}
		return Value{kind: KindArray, arr: &elems}, nil
	case map[string]any:
		obj := &object{}
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", k, err)
			}
			*obj.upsert(k) = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	case map[any]any:
		obj := &object{}
		for k, e := range t {
			key, ok := k.(string)
			if !ok {
				return Value{}, newError(ErrType, "from", "object key %v (%T) is not a string", k, k)
			}
			v, err := FromAny(e)
			if err != nil {
				return Value{}, fmt.Errorf("%s: %w", key, err)
			}
			*obj.upsert(key) = v
		}
		return Value{kind: KindObject, obj: obj}, nil
	default:
		return Value{}, newError(ErrType, "from", "unsupported Go type %T", x)
	}
}
