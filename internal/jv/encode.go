package jv

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"unicode/utf8"
)

// Serialize renders v in canonical form: object keys ascending, arrays in
// order, integers without a decimal point and floats in the shortest form
// that parses back to the same float64 (always with a fraction or exponent).
//
// When path is not empty the text is also written to that file, which is
// created or truncated. The text is returned even if that write fails.
func Serialize(v Value, path string) (string, error) {
	data, err := appendValue(nil, v)
	if err != nil {
		return "", err
	}
	text := string(data)
	if path != "" {
		if werr := os.WriteFile(path, data, 0o644); werr != nil {
			return text, &Error{Kind: ErrIO, Op: "serialize", Message: fmt.Sprintf("write %s", path), Err: werr}
		}
	}
	return text, nil
}

// String returns the canonical text of v. Values that cannot be rendered
// (NaN or infinite floats) produce a %!v(...) marker, as fmt does for
// formatting failures.
func (v Value) String() string {
	data, err := appendValue(nil, v)
	if err != nil {
		return "%!v(" + err.Error() + ")"
	}
	return string(data)
}

// WriteTo writes the canonical text of v to w.
func (v Value) WriteTo(w io.Writer) (int64, error) {
	data, err := appendValue(nil, v)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// MarshalJSON implements json.Marshaler with the canonical form.
func (v Value) MarshalJSON() ([]byte, error) {
	return appendValue(nil, v)
}

// Append appends the canonical text of v to b.
func (v Value) Append(b []byte) ([]byte, error) {
	return appendValue(b, v)
}

func appendValue(b []byte, v Value) ([]byte, error) {
	switch v.kind {
	case KindNull:
		return append(b, "null"...), nil
	case KindBoolean:
		if v.bits != 0 {
			return append(b, "true"...), nil
		}
		return append(b, "false"...), nil
	case KindInteger:
		return strconv.AppendInt(b, v.integer(), 10), nil
	case KindUInteger:
		return strconv.AppendUint(b, v.bits, 10), nil
	case KindFloating:
		return appendFloat(b, v.floating())
	case KindString:
		return appendString(b, *v.str), nil
	case KindArray:
		var err error
		b = append(b, '[')
		for i, e := range *v.arr {
			if i > 0 {
				b = append(b, ',')
			}
			if b, err = appendValue(b, e); err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	case KindObject:
		var err error
		b = append(b, '{')
		for i, m := range v.obj.members {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendString(b, m.key)
			b = append(b, ':')
			if b, err = appendValue(b, m.value); err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	default:
		return nil, newError(ErrType, "serialize", "unknown kind %s", v.kind)
	}
}

// appendFloat follows encoding/json's float formatting, then forces a
// fraction so the numeral classifies as Floating when parsed back.
func appendFloat(b []byte, f float64) ([]byte, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, newError(ErrType, "serialize", "floating value %v has no JSON form", f)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	start := len(b)
	b = strconv.AppendFloat(b, f, format, -1, 64)
	if format == 'e' {
		// 1e-07 -> 1e-7
		n := len(b)
		if n-start >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
		return b, nil
	}
	for _, c := range b[start:] {
		if c == '.' {
			return b, nil
		}
	}
	return append(b, '.', '0'), nil
}

const hexDigits = "0123456789abcdef"

// appendString quotes s. Only the quote, the backslash and control
// characters are escaped; invalid UTF-8 bytes become U+FFFD.
func appendString(b []byte, s string) []byte {
	b = append(b, '"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '"' && c != '\\' {
				i++
				continue
			}
			b = append(b, s[start:i]...)
			switch c {
			case '"', '\\':
				b = append(b, '\\', c)
			case '\b':
				b = append(b, '\\', 'b')
			case '\f':
				b = append(b, '\\', 'f')
			case '\n':
				b = append(b, '\\', 'n')
			case '\r':
				b = append(b, '\\', 'r')
			case '\t':
				b = append(b, '\\', 't')
			default:
				b = append(b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			b = append(b, s[start:i]...)
			b = append(b, `\ufffd`...)
			i += size
			start = i
			continue
		}
		i += size
	}
	b = append(b, s[start:]...)
	return append(b, '"')
}
