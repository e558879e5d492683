package transcode

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/jsondoc/internal/jv"
)

// FromCUE evaluates CUE source and exports the result as a document. The
// value must be concrete: open constraints such as `int` or `string` that
// were never given a value are rejected. Only regular fields are exported;
// definitions and hidden fields are skipped.
//
// filename is used in error positions and may be empty.
func FromCUE(data []byte, filename string) (jv.Value, error) {
	ctx := cuecontext.New()
	var opts []cue.BuildOption
	if filename != "" {
		opts = append(opts, cue.Filename(filename))
	}
	v := ctx.CompileBytes(data, opts...)
	if err := v.Err(); err != nil {
		return jv.Value{}, fmt.Errorf("%w: cue: %w", jv.ErrParse, err)
	}
	// Conflicts are evaluation errors; missing values are reported below.
	if err := v.Validate(); err != nil {
		return jv.Value{}, fmt.Errorf("%w: cue: %w", jv.ErrParse, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return jv.Value{}, &jv.Error{Kind: jv.ErrType, Op: "from_cue", Message: "value is not concrete", Err: err}
	}
	return fromCUEValue(v)
}

func fromCUEValue(v cue.Value) (jv.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return jv.Null(), nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return jv.Value{}, err
		}
		return jv.Bool(b), nil
	case cue.IntKind:
		if n, err := v.Int64(); err == nil {
			return integral(n), nil
		}
		if n, err := v.Uint64(); err == nil {
			return jv.Uint(n), nil
		}
		big, err := v.Int(nil)
		if err != nil {
			return jv.Value{}, err
		}
		return jv.FromAny(big)
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return jv.Value{}, &jv.Error{Kind: jv.ErrOverflow, Op: "from_cue", Message: "number out of float64 range", Err: err}
		}
		return jv.Float(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return jv.Value{}, err
		}
		return jv.Str(s), nil
	case cue.BytesKind:
		b, err := v.Bytes()
		if err != nil {
			return jv.Value{}, err
		}
		return jv.Str(string(b)), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return jv.Value{}, err
		}
		out := jv.ArrayOf()
		for iter.Next() {
			elem, err := fromCUEValue(iter.Value())
			if err != nil {
				return jv.Value{}, err
			}
			if err := out.PushBack(elem); err != nil {
				return jv.Value{}, err
			}
		}
		return out, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return jv.Value{}, err
		}
		out := jv.ObjectOf()
		for iter.Next() {
			key := iter.Selector().Unquoted()
			elem, err := fromCUEValue(iter.Value())
			if err != nil {
				return jv.Value{}, fmt.Errorf("%s: %w", key, err)
			}
			if err := out.Insert(key, elem); err != nil {
				return jv.Value{}, err
			}
		}
		return out, nil
	default:
		return jv.Value{}, &jv.Error{Kind: jv.ErrType, Op: "from_cue", Message: fmt.Sprintf("unsupported kind %v", v.Kind())}
	}
}
