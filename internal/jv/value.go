package jv

import (
	"fmt"
	"math"
)

// Kind identifies the active alternative of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindUInteger
	KindFloating
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBoolean:  "boolean",
	KindInteger:  "integer",
	KindUInteger: "uinteger",
	KindFloating: "floating",
	KindString:   "string",
	KindArray:    "array",
	KindObject:   "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a JSON value. The zero Value is Null.
//
// Read-only methods use value receivers; methods that may change the kind or
// the payload use pointer receivers. A Value shares its String, Array and
// Object payloads with every plain Go copy of it, so use Clone for an
// independent copy and Take to move.
type Value struct {
	kind Kind
	bits uint64 // Boolean, Integer, UInteger and Floating payloads
	str  *string
	arr  *[]Value
	obj  *object
}

// Null returns the Null value.
func Null() Value { return Value{} }

// Bool returns a Boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.bits = 1
	}
	return v
}

// Int returns an Integer value.
func Int(n int64) Value { return Value{kind: KindInteger, bits: uint64(n)} }

// Uint returns a UInteger value.
func Uint(n uint64) Value { return Value{kind: KindUInteger, bits: n} }

// Float returns a Floating value.
func Float(f float64) Value { return Value{kind: KindFloating, bits: math.Float64bits(f)} }

// Str returns a String value owning a copy of s.
func Str(s string) Value { return Value{kind: KindString, str: &s} }

// Array returns an Array value holding deep copies of elems.
func Array(elems []Value) Value {
	return Value{kind: KindArray, arr: cloneElems(elems)}
}

// ArrayOf is the literal-list form of Array.
func ArrayOf(elems ...Value) Value { return Array(elems) }

// FromSigned returns an Integer value for any signed integer type.
func FromSigned[T ~int | ~int8 | ~int16 | ~int32 | ~int64](n T) Value { return Int(int64(n)) }

// FromUnsigned returns a UInteger value for any unsigned integer type.
func FromUnsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr](n T) Value {
	return Uint(uint64(n))
}

// FromFloat returns a Floating value for any floating point type.
func FromFloat[T ~float32 | ~float64](f T) Value { return Float(float64(f)) }

// Pair is a key/value pair used with ObjectOf.
type Pair struct {
	Key   string
	Value Value
}

// O is shorthand for Pair.
// Example: ObjectOf(O("name", Str("cart")), O("count", Int(5)))
func O(key string, v Value) Pair { return Pair{Key: key, Value: v} }

// ObjectOf builds an Object by inserting copies of pairs in order; a repeated
// key overwrites the earlier one.
func ObjectOf(pairs ...Pair) Value {
	v := Value{kind: KindObject, obj: &object{}}
	for _, p := range pairs {
		*v.obj.upsert(p.Key) = p.Value.Clone()
	}
	return v
}

func cloneElems(elems []Value) *[]Value {
	out := make([]Value, len(elems))
	for i := range elems {
		out[i] = elems[i].Clone()
	}
	return &out
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindString:
		return Str(*v.str)
	case KindArray:
		return Value{kind: KindArray, arr: cloneElems(*v.arr)}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.clone()}
	default:
		return Value{kind: v.kind, bits: v.bits}
	}
}

// Take moves the payload out of v and leaves v Null.
func (v *Value) Take() Value {
	out := *v
	*v = Value{}
	return out
}

// Assign replaces v with a deep copy of src. The copy is made before v is
// touched, so assigning a value from inside v itself is safe.
func (v *Value) Assign(src Value) {
	c := src.Clone()
	*v = c
}

// Swap exchanges the contents of v and other.
func (v *Value) Swap(other *Value) {
	*v, *other = *other, *v
}

// Kind returns the active alternative.
func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsBool() bool { return v.kind == KindBoolean }
func (v Value) IsInteger() bool { return v.kind == KindInteger }
func (v Value) IsUInteger() bool { return v.kind == KindUInteger }
func (v Value) IsFloating() bool { return v.kind == KindFloating }
func (v Value) IsString() bool { return v.kind == KindString }
func (v Value) IsArray() bool { return v.kind == KindArray }
func (v Value) IsObject() bool { return v.kind == KindObject }
func (v Value) IsContainer() bool { return v.kind == KindArray || v.kind == KindObject }

// IsNumeric reports Integer, UInteger or Floating.
func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindUInteger || v.kind == KindFloating
}

func (v Value) integer() int64 { return int64(v.bits) }
func (v Value) floating() float64 { return math.Float64frombits(v.bits) }

// Bool extracts a Boolean payload.
func (v Value) Bool() (bool, error) {
	if v.kind != KindBoolean {
		return false, typeError("bool", v.kind, "boolean")
	}
	return v.bits != 0, nil
}

// Text extracts a String payload. Numbers are not rendered as text.
func (v Value) Text() (string, error) {
	if v.kind != KindString {
		return "", typeError("text", v.kind, "string")
	}
	return *v.str, nil
}

// Items returns the live element slice of an Array. Writing through the
// returned elements changes v; growing the slice does not.
func (v Value) Items() ([]Value, error) {
	if v.kind != KindArray {
		return nil, typeError("items", v.kind, "array")
	}
	return *v.arr, nil
}

// Int64 extracts any numeric payload as int64.
func (v Value) Int64() (int64, error) { return As[int64](v) }

// Uint64 extracts any numeric payload as uint64.
func (v Value) Uint64() (uint64, error) { return As[uint64](v) }

// Float64 extracts any numeric payload as float64.
func (v Value) Float64() (float64, error) { return As[float64](v) }

// Equal reports deep equality. Kinds must match, except that Integer and
// UInteger compare by numeric value. Object comparison is by key identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return integralEqual(v, other)
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBoolean, KindInteger, KindUInteger:
		return v.bits == other.bits
	case KindFloating:
		return v.floating() == other.floating()
	case KindString:
		return *v.str == *other.str
	case KindArray:
		a, b := *v.arr, *other.arr
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.equal(other.obj)
	default:
		return false
	}
}

func integralEqual(a, b Value) bool {
	if a.kind == KindUInteger {
		a, b = b, a
	}
	if a.kind != KindInteger || b.kind != KindUInteger {
		return false
	}
	n := a.integer()
	return n >= 0 && uint64(n) == b.bits
}

// Interface converts v into plain Go values: nil, bool, int64, uint64,
// float64, string, []any and map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBoolean:
		return v.bits != 0
	case KindInteger:
		return v.integer()
	case KindUInteger:
		return v.bits
	case KindFloating:
		return v.floating()
	case KindString:
		return *v.str
	case KindArray:
		out := make([]any, len(*v.arr))
		for i, e := range *v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj.members))
		for _, m := range v.obj.members {
			out[m.key] = m.value.Interface()
		}
		return out
	default:
		return nil
	}
}
