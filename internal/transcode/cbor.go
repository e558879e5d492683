package transcode

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/roach88/jsondoc/internal/jv"
)

var (
	cachedEncMode     cbor.EncMode
	cachedEncModeErr  error
	cachedEncModeOnce sync.Once

	cachedDecMode     cbor.DecMode
	cachedDecModeErr  error
	cachedDecModeOnce sync.Once
)

// getEncMode returns the cached core deterministic encoder (RFC 8949
// section 4.2.1: shortest integer heads, map keys sorted bytewise).
func getEncMode() (cbor.EncMode, error) {
	cachedEncModeOnce.Do(func() {
		opts := cbor.EncOptions{
			Sort: cbor.SortCoreDeterministic,
		}
		cachedEncMode, cachedEncModeErr = opts.EncMode()
	})
	return cachedEncMode, cachedEncModeErr
}

// getDecMode returns the cached decoder. Maps decode with string keys only,
// integers keep their sign class and integers beyond 64 bits arrive as
// *big.Int.
func getDecMode() (cbor.DecMode, error) {
	cachedDecModeOnce.Do(func() {
		opts := cbor.DecOptions{
			DefaultMapType:  reflect.TypeOf(map[string]any(nil)),
			IntDec:          cbor.IntDecConvertNone,
			BigIntDec:       cbor.BigIntDecodePointer,
			MaxNestedLevels: jv.MaxDepth,
			DupMapKey:       cbor.DupMapKeyEnforcedAPF,
		}
		cachedDecMode, cachedDecModeErr = opts.DecMode()
	})
	return cachedDecMode, cachedDecModeErr
}

// ToCBOR encodes v as a single deterministic CBOR data item. Integer values
// use the CBOR major type matching their sign, Floating values are encoded
// as float64 and Strings as UTF-8 text strings.
func ToCBOR(v jv.Value) ([]byte, error) {
	em, err := getEncMode()
	if err != nil {
		return nil, err
	}
	data, err := em.Marshal(v.Interface())
	if err != nil {
		return nil, fmt.Errorf("to_cbor: %w", err)
	}
	return data, nil
}

// FromCBOR decodes exactly one CBOR data item. Byte strings become Strings;
// tags other than bignums are rejected.
func FromCBOR(data []byte) (jv.Value, error) {
	dm, err := getDecMode()
	if err != nil {
		return jv.Value{}, err
	}
	var x any
	if err := dm.Unmarshal(data, &x); err != nil {
		var typeErr *cbor.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return jv.Value{}, &jv.Error{Kind: jv.ErrType, Op: "from_cbor", Message: "unsupported item", Err: err}
		}
		return jv.Value{}, fmt.Errorf("%w: cbor: %w", jv.ErrParse, err)
	}
	return jv.FromAny(x)
}
