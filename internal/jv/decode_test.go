package jv

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumbers(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
		kind     Kind
	}{
		{"0", Uint(0), KindUInteger},
		{"-0", Int(0), KindInteger},
		{"42", Uint(42), KindUInteger},
		{"-42", Int(-42), KindInteger},
		{"18446744073709551615", Uint(math.MaxUint64), KindUInteger},
		{"-9223372036854775808", Int(math.MinInt64), KindInteger},
		{"18446744073709551616", Float(18446744073709551616), KindFloating},
		{"-9223372036854775809", Float(-9223372036854775809), KindFloating},
		{"1.0", Float(1), KindFloating},
		{"1e2", Float(100), KindFloating},
		{"-2.5E-3", Float(-0.0025), KindFloating},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.True(t, tt.expected.Equal(v), "got %s", v)
		})
	}
}

func TestParseNumberOutOfRange(t *testing.T) {
	_, err := Parse("[1e400]")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.True(t, errors.Is(err, ErrOverflow))
}

func TestParseDocument(t *testing.T) {
	text := `
	{
		"name": "cart",
		"items": [ {"sku": "A-1", "qty": 2}, null, true, false ],
		"empty": {},
		"none": []
	}
	`
	v, err := Parse(text)
	require.NoError(t, err)

	expected := ObjectOf(
		O("name", Str("cart")),
		O("items", ArrayOf(ObjectOf(O("sku", Str("A-1")), O("qty", Uint(2))), Null(), Bool(true), Bool(false))),
		O("empty", ObjectOf()),
		O("none", ArrayOf()),
	)
	assert.True(t, expected.Equal(v), "got %s", v)
}

func TestParseStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", `"abc"`, "abc"},
		{"escapes", `"\"\\\/\b\f\n\r\t"`, "\"\\/\b\f\n\r\t"},
		{"unicode escape", `"\u00e9"`, "\u00e9"},
		{"surrogate pair", `"\ud83d\ude00"`, "\U0001F600"},
		{"lone high surrogate", `"\ud83dx"`, "\ufffdx"},
		{"lone low surrogate", `"\ude00"`, "\ufffd"},
		{"high then non-low", `"\ud83d\u0041"`, "\ufffdA"},
		{"escape inside text", `"h\u00e9llo"`, "h\u00e9llo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.input)
			require.NoError(t, err)
			s, err := v.Text()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "  \n"},
		{"trailing data", "1 2"},
		{"trailing comma in array", "[1,]"},
		{"trailing comma in object", `{"a":1,}`},
		{"unquoted key", "{a:1}"},
		{"missing colon", `{"a" 1}`},
		{"duplicate key", `{"a":1,"a":2}`},
		{"bad literal", "tru"},
		{"leading zero", "01"},
		{"leading plus", "+1"},
		{"bare minus", "-"},
		{"dangling decimal point", "1."},
		{"dangling exponent", "1e"},
		{"unterminated string", `"abc`},
		{"raw control character", "\"a\tb\""},
		{"bad escape", `"\x"`},
		{"short unicode escape", `"\u12"`},
		{"invalid utf-8", "\"\xff\""},
		{"unclosed array", "[1"},
		{"unclosed object", `{"a":1`},
		{"single quotes", "'a'"},
		{"nan literal", "NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, IsParseError(err), "got %v", err)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("{\n  \"a\": ?}")

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 9, perr.Offset)
	assert.Equal(t, 2, perr.Line)
	assert.Equal(t, 8, perr.Column)
	assert.Contains(t, perr.Error(), "line 2, column 8")
}

func TestParseDepthLimit(t *testing.T) {
	ok := strings.Repeat("[", MaxDepth) + strings.Repeat("]", MaxDepth)
	_, err := Parse(ok)
	require.NoError(t, err)

	deep := strings.Repeat("[", MaxDepth+1) + strings.Repeat("]", MaxDepth+1)
	_, err = Parse(deep)
	assert.True(t, IsParseError(err))
}

func TestDeserializeText(t *testing.T) {
	v, err := Deserialize(`{"a":[1]}`)
	require.NoError(t, err)
	assert.True(t, v.Equal(ObjectOf(O("a", ArrayOf(Int(1))))))
}

func TestDeserializeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ok": true}`), 0o644))

	v, err := Deserialize(path)
	require.NoError(t, err)
	assert.True(t, v.Equal(ObjectOf(O("ok", Bool(true)))))
}

func TestDeserializeMissingFileIsText(t *testing.T) {
	_, err := Deserialize(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, IsParseError(err), "a path that does not exist is parsed as text")
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.json"))
	assert.True(t, IsIOError(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1,"), 0o644))
	_, err = ReadFile(bad)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, bad, perr.File)
	assert.True(t, strings.HasPrefix(perr.Error(), bad+":1:"))
}

func TestUnmarshalJSON(t *testing.T) {
	var v Value
	require.NoError(t, v.UnmarshalJSON([]byte(`[1, "a"]`)))
	assert.True(t, v.Equal(ArrayOf(Int(1), Str("a"))))

	before := v.Clone()
	assert.Error(t, v.UnmarshalJSON([]byte(`[`)))
	assert.True(t, v.Equal(before), "a failed unmarshal leaves the value unchanged")
}
