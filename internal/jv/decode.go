package jv

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// FileExtension marks a Deserialize source as a file path.
const FileExtension = ".json"

// MaxDepth bounds array/object nesting accepted by the parser.
const MaxDepth = 10000

// Deserialize parses source as JSON text, unless source names an existing
// regular file ending in FileExtension, in which case the file is read and
// parsed instead. Read failures return ErrIO.
func Deserialize(source string) (Value, error) {
	if strings.HasSuffix(source, FileExtension) {
		if info, err := os.Stat(source); err == nil && info.Mode().IsRegular() {
			return ReadFile(source)
		}
	}
	return Parse(source)
}

// ReadFile reads and parses the JSON file at path.
func ReadFile(path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, &Error{Kind: ErrIO, Op: "deserialize", Message: fmt.Sprintf("read %s", path), Err: err}
	}
	v, err := ParseBytes(data)
	if perr, ok := err.(*ParseError); ok {
		perr.File = path
	}
	return v, err
}

// Parse parses exactly one JSON value from text. Surrounding whitespace is
// allowed; anything else after the value is an error.
func Parse(text string) (Value, error) {
	return ParseBytes([]byte(text))
}

// ParseBytes is Parse over a byte slice.
//
// Numerals without fraction or exponent become UInteger when non-negative
// and Integer when negative, as long as they fit in 64 bits; everything else
// becomes Floating. Duplicate object keys are rejected.
func ParseBytes(data []byte) (Value, error) {
	d := &decoder{data: data}
	d.skipSpace()
	v, err := d.value()
	if err != nil {
		return Value{}, err
	}
	d.skipSpace()
	if d.pos < len(d.data) {
		return Value{}, d.errorf("unexpected trailing data %q", d.peekText())
	}
	return v, nil
}

// UnmarshalJSON implements json.Unmarshaler using ParseBytes.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type decoder struct {
	data  []byte
	pos   int
	depth int
}

func (d *decoder) errorf(format string, args ...any) *ParseError {
	return d.errorAt(d.pos, nil, format, args...)
}

func (d *decoder) errorAt(off int, cause error, format string, args ...any) *ParseError {
	line, col := 1, 1
	if off > len(d.data) {
		off = len(d.data)
	}
	prefix := d.data[:off]
	if n := bytes.Count(prefix, []byte{'\n'}); n > 0 {
		line += n
		prefix = prefix[bytes.LastIndexByte(prefix, '\n')+1:]
	}
	col += utf8.RuneCount(prefix)
	return &ParseError{Offset: off, Line: line, Column: col, Message: fmt.Sprintf(format, args...), Err: cause}
}

// peekText returns a short excerpt at the current position for messages.
func (d *decoder) peekText() string {
	end := min(d.pos+16, len(d.data))
	return string(d.data[d.pos:end])
}

func (d *decoder) skipSpace() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *decoder) value() (Value, error) {
	if d.pos >= len(d.data) {
		return Value{}, d.errorf("unexpected end of input")
	}
	switch c := d.data[d.pos]; {
	case c == '{':
		return d.object()
	case c == '[':
		return d.array()
	case c == '"':
		s, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		return Str(s), nil
	case c == 't':
		return d.literal("true", Bool(true))
	case c == 'f':
		return d.literal("false", Bool(false))
	case c == 'n':
		return d.literal("null", Null())
	case c == '-' || (c >= '0' && c <= '9'):
		return d.number()
	default:
		return Value{}, d.errorf("unexpected character %q", rune(c))
	}
}

func (d *decoder) literal(word string, v Value) (Value, error) {
	if !bytes.HasPrefix(d.data[d.pos:], []byte(word)) {
		return Value{}, d.errorf("invalid literal, expected %q", word)
	}
	d.pos += len(word)
	return v, nil
}

func (d *decoder) enter() error {
	d.depth++
	if d.depth > MaxDepth {
		return d.errorf("nesting deeper than %d levels", MaxDepth)
	}
	return nil
}

func (d *decoder) object() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	d.pos++ // '{'
	obj := &object{}
	d.skipSpace()
	if d.pos < len(d.data) && d.data[d.pos] == '}' {
		d.pos++
		return Value{kind: KindObject, obj: obj}, nil
	}
	for {
		if d.pos >= len(d.data) {
			return Value{}, d.errorf("unexpected end of input in object")
		}
		if d.data[d.pos] != '"' {
			return Value{}, d.errorf("expected string key, found %q", rune(d.data[d.pos]))
		}
		keyAt := d.pos
		key, err := d.readString()
		if err != nil {
			return Value{}, err
		}
		if _, dup := obj.search(key); dup {
			return Value{}, d.errorAt(keyAt, nil, "duplicate key %q", key)
		}
		d.skipSpace()
		if d.pos >= len(d.data) || d.data[d.pos] != ':' {
			return Value{}, d.errorf("expected ':' after object key")
		}
		d.pos++
		d.skipSpace()
		elem, err := d.value()
		if err != nil {
			return Value{}, err
		}
		*obj.upsert(key) = elem
		d.skipSpace()
		if d.pos >= len(d.data) {
			return Value{}, d.errorf("unexpected end of input in object")
		}
		switch d.data[d.pos] {
		case ',':
			d.pos++
			d.skipSpace()
		case '}':
			d.pos++
			return Value{kind: KindObject, obj: obj}, nil
		default:
			return Value{}, d.errorf("expected ',' or '}' in object")
		}
	}
}

func (d *decoder) array() (Value, error) {
	if err := d.enter(); err != nil {
		return Value{}, err
	}
	defer func() { d.depth-- }()

	d.pos++ // '['
	elems := []Value{}
	d.skipSpace()
	if d.pos < len(d.data) && d.data[d.pos] == ']' {
		d.pos++
		return Value{kind: KindArray, arr: &elems}, nil
	}
	for {
		elem, err := d.value()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)
		d.skipSpace()
		if d.pos >= len(d.data) {
			return Value{}, d.errorf("unexpected end of input in array")
		}
		switch d.data[d.pos] {
		case ',':
			d.pos++
			d.skipSpace()
		case ']':
			d.pos++
			return Value{kind: KindArray, arr: &elems}, nil
		default:
			return Value{}, d.errorf("expected ',' or ']' in array")
		}
	}
}

// readString decodes a string literal starting at the opening quote.
func (d *decoder) readString() (string, error) {
	start := d.pos
	d.pos++ // '"'

	// Fast path: no escapes.
	for i := d.pos; i < len(d.data); i++ {
		c := d.data[i]
		if c == '"' {
			raw := d.data[d.pos:i]
			if !utf8.Valid(raw) {
				return "", d.errorAt(d.pos, nil, "invalid UTF-8 in string")
			}
			d.pos = i + 1
			return string(raw), nil
		}
		if c == '\\' || c < 0x20 {
			break
		}
	}

	var out []byte
	for {
		if d.pos >= len(d.data) {
			return "", d.errorAt(start, nil, "unterminated string")
		}
		c := d.data[d.pos]
		switch {
		case c == '"':
			d.pos++
			if !utf8.Valid(out) {
				return "", d.errorAt(start, nil, "invalid UTF-8 in string")
			}
			return string(out), nil
		case c < 0x20:
			return "", d.errorf("invalid control character %q in string", rune(c))
		case c == '\\':
			var err error
			if out, err = d.escape(out); err != nil {
				return "", err
			}
		default:
			out = append(out, c)
			d.pos++
		}
	}
}

func (d *decoder) escape(out []byte) ([]byte, error) {
	if d.pos+1 >= len(d.data) {
		return nil, d.errorf("unterminated escape sequence")
	}
	c := d.data[d.pos+1]
	switch c {
	case '"', '\\', '/':
		out = append(out, c)
	case 'b':
		out = append(out, '\b')
	case 'f':
		out = append(out, '\f')
	case 'n':
		out = append(out, '\n')
	case 'r':
		out = append(out, '\r')
	case 't':
		out = append(out, '\t')
	case 'u':
		r, err := d.hex4(d.pos + 2)
		if err != nil {
			return nil, err
		}
		d.pos += 6
		if utf16.IsSurrogate(r) {
			// A high surrogate must be followed by an escaped low surrogate;
			// anything else decodes to U+FFFD.
			if r < 0xDC00 && d.pos+1 < len(d.data) && d.data[d.pos] == '\\' && d.data[d.pos+1] == 'u' {
				if r2, err := d.hex4(d.pos + 2); err == nil {
					if pair := utf16.DecodeRune(r, r2); pair != utf8.RuneError {
						d.pos += 6
						return utf8.AppendRune(out, pair), nil
					}
				}
			}
			r = utf8.RuneError
		}
		return utf8.AppendRune(out, r), nil
	default:
		return nil, d.errorf("invalid escape sequence \\%c", rune(c))
	}
	d.pos += 2
	return out, nil
}

func (d *decoder) hex4(at int) (rune, error) {
	if at+4 > len(d.data) {
		return 0, d.errorAt(at, nil, "truncated \\u escape")
	}
	n, err := strconv.ParseUint(string(d.data[at:at+4]), 16, 32)
	if err != nil {
		return 0, d.errorAt(at, nil, "invalid \\u escape %q", d.data[at:at+4])
	}
	return rune(n), nil
}

func (d *decoder) number() (Value, error) {
	start := d.pos
	neg := d.data[d.pos] == '-'
	if neg {
		d.pos++
	}

	switch {
	case d.pos < len(d.data) && d.data[d.pos] == '0':
		d.pos++
	case d.pos < len(d.data) && d.data[d.pos] >= '1' && d.data[d.pos] <= '9':
		d.digits()
	default:
		return Value{}, d.errorf("invalid number")
	}

	integral := true
	if d.pos < len(d.data) && d.data[d.pos] == '.' {
		integral = false
		d.pos++
		if d.digits() == 0 {
			return Value{}, d.errorf("expected digit after decimal point")
		}
	}
	if d.pos < len(d.data) && (d.data[d.pos] == 'e' || d.data[d.pos] == 'E') {
		integral = false
		d.pos++
		if d.pos < len(d.data) && (d.data[d.pos] == '+' || d.data[d.pos] == '-') {
			d.pos++
		}
		if d.digits() == 0 {
			return Value{}, d.errorf("expected digit in exponent")
		}
	}

	text := string(d.data[start:d.pos])
	if integral {
		if neg {
			if n, err := strconv.ParseInt(text, 10, 64); err == nil {
				return Int(n), nil
			}
		} else if n, err := strconv.ParseUint(text, 10, 64); err == nil {
			return Uint(n), nil
		}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Value{}, d.errorAt(start, ErrOverflow, "number %s out of range", text)
	}
	return Float(f), nil
}

func (d *decoder) digits() int {
	n := 0
	for d.pos < len(d.data) && d.data[d.pos] >= '0' && d.data[d.pos] <= '9' {
		d.pos++
		n++
	}
	return n
}
