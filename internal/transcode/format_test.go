package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondoc/internal/jv"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"YAML", FormatYAML},
		{"yml", FormatYAML},
		{"cbor", FormatCBOR},
		{"cue", FormatCUE},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}

	_, err := ParseFormat("toml")
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("a/b.yml"))
	assert.Equal(t, FormatYAML, FormatForPath("B.YAML"))
	assert.Equal(t, FormatCBOR, FormatForPath("x.cbor"))
	assert.Equal(t, FormatCUE, FormatForPath("x.cue"))
	assert.Equal(t, FormatJSON, FormatForPath("x.json"))
	assert.Equal(t, FormatJSON, FormatForPath("-"))
}

func TestDecodeEncodeAcrossFormats(t *testing.T) {
	doc := jv.ObjectOf(
		jv.O("name", jv.Str("cart")),
		jv.O("items", jv.ArrayOf(jv.Uint(1), jv.Int(-2), jv.Float(0.5))),
		jv.O("open", jv.Bool(false)),
	)

	for _, f := range EncodeFormats {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(f, doc)
			require.NoError(t, err)

			back, err := Decode(f, data)
			require.NoError(t, err)
			assert.True(t, doc.Equal(back), "got %s", back)
		})
	}
}

func TestEncodeJSONIsCanonical(t *testing.T) {
	data, err := Encode(FormatJSON, jv.ObjectOf(jv.O("b", jv.Int(1)), jv.O("a", jv.Float(1))))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1.0,"b":1}`, string(data))
}

func TestDecodeCUE(t *testing.T) {
	v, err := Decode(FormatCUE, []byte(`a: [1, "x"]`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":[1,"x"]}`, v.String())
}

func TestEncodeCUEUnsupported(t *testing.T) {
	_, err := Encode(FormatCUE, jv.Null())
	assert.Error(t, err)

	_, err = Decode(Format("toml"), nil)
	assert.Error(t, err)
}
