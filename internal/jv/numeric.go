package jv

import (
	"math"
	"reflect"
)

// Number is the set of Go numeric types a Value can be extracted into.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Source is the set of payload representations a numeric Value stores.
type Source interface {
	int64 | uint64 | float64
}

// Convert narrows src into T. Every range check happens before the cast, so
// a value that does not fit returns ErrOverflow instead of wrapping.
//
//   - floating targets reject values beyond the finite range of T, so
//     infinities always overflow
//   - signed targets reject values outside [min(T), max(T)]
//   - unsigned targets reject negative values and values above max(T)
//
// Floating sources are truncated toward zero once they are known to fit.
func Convert[T Number, S Source](src S) (T, error) {
	t := reflect.TypeFor[T]()
	switch t.Kind() {
	case reflect.Float32, reflect.Float64:
		limit := math.MaxFloat64
		if t.Bits() == 32 {
			limit = math.MaxFloat32
		}
		if f := float64(src); f > limit || f < -limit {
			return 0, overflow(src, t)
		}
		return T(src), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		bits := t.Bits()
		lo := int64(-1) << (bits - 1)
		hi := int64(1)<<(bits-1) - 1
		switch s := any(src).(type) {
		case int64:
			if s < lo || s > hi {
				return 0, overflow(src, t)
			}
		case uint64:
			if s > uint64(hi) {
				return 0, overflow(src, t)
			}
		case float64:
			// -lo is 2^(bits-1), exactly representable; NaN fails both tests.
			if !(s >= float64(lo) && s < -float64(lo)) {
				return 0, overflow(src, t)
			}
		}
		return T(src), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		bits := t.Bits()
		hi := uint64(math.MaxUint64) >> (64 - bits)
		switch s := any(src).(type) {
		case int64:
			if s < 0 || uint64(s) > hi {
				return 0, overflow(src, t)
			}
		case uint64:
			if s > hi {
				return 0, overflow(src, t)
			}
		case float64:
			if !(s >= 0 && s < math.Ldexp(1, bits)) {
				return 0, overflow(src, t)
			}
		}
		return T(src), nil
	}
	return 0, newError(ErrType, "convert", "unsupported target type %s", t)
}

func overflow[S Source](src S, t reflect.Type) *Error {
	return newError(ErrOverflow, "convert", "%v does not fit in %s", src, t)
}

// As extracts a numeric Value into T through Convert. Non-numeric values
// return ErrType.
func As[T Number](v Value) (T, error) {
	switch v.kind {
	case KindInteger:
		return Convert[T](v.integer())
	case KindUInteger:
		return Convert[T](v.bits)
	case KindFloating:
		return Convert[T](v.floating())
	default:
		return 0, typeError("number", v.kind, "number")
	}
}
