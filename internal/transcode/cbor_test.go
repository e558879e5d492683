package transcode

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondoc/internal/jv"
)

func TestToCBORDeterministic(t *testing.T) {
	v := jv.ObjectOf(
		jv.O("b", jv.Uint(1)),
		jv.O("a", jv.ArrayOf(jv.Int(-1), jv.Bool(true), jv.Null())),
	)

	data, err := ToCBOR(v)
	require.NoError(t, err)
	assert.Equal(t, "a261618320f5f6616201", hex.EncodeToString(data))
}

func TestToCBORFloat(t *testing.T) {
	data, err := ToCBOR(jv.Float(2.5))
	require.NoError(t, err)
	assert.Equal(t, "fb4004000000000000", hex.EncodeToString(data))
}

func TestCBORRoundTrip(t *testing.T) {
	v := jv.ObjectOf(
		jv.O("int", jv.Int(math.MinInt64)),
		jv.O("uint", jv.Uint(math.MaxUint64)),
		jv.O("float", jv.Float(3)),
		jv.O("text", jv.Str("héllo")),
		jv.O("nested", jv.ObjectOf(jv.O("list", jv.ArrayOf()))),
	)

	data, err := ToCBOR(v)
	require.NoError(t, err)

	back, err := FromCBOR(data)
	require.NoError(t, err)
	assert.True(t, v.Equal(back), "got %s", back)

	f, err := back.At("float")
	require.NoError(t, err)
	assert.True(t, f.IsFloating())
}

func TestFromCBOR(t *testing.T) {
	tests := []struct {
		name     string
		hex      string
		expected jv.Value
	}{
		{"small uint", "05", jv.Uint(5)},
		{"negative int", "20", jv.Int(-1)},
		{"half float", "f93e00", jv.Float(1.5)},
		{"text", "6161", jv.Str("a")},
		{"byte string", "4161", jv.Str("a")},
		{"undefined", "f7", jv.Null()},
		{"bignum beyond int64", "3bffffffffffffffff", jv.Float(-18446744073709551616)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := hex.DecodeString(tt.hex)
			require.NoError(t, err)

			v, err := FromCBOR(data)
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(v), "got %s", v)
		})
	}
}

func TestFromCBORErrors(t *testing.T) {
	truncated, err := hex.DecodeString("8201")
	require.NoError(t, err)
	_, err = FromCBOR(truncated)
	assert.True(t, jv.IsParseError(err), "got %v", err)

	trailing, err := hex.DecodeString("0100")
	require.NoError(t, err)
	_, err = FromCBOR(trailing)
	assert.True(t, jv.IsParseError(err), "got %v", err)

	intKey, err := hex.DecodeString("a1016178")
	require.NoError(t, err)
	_, err = FromCBOR(intKey)
	assert.Error(t, err)
}
