package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jsondoc/internal/jv"
)

const cartJSON = `{
  "name": "cart",
  "items": [
    {"sku": "A-1", "qty": 2, "price": 9.5},
    {"sku": "B-2", "qty": 1, "price": 20.0}
  ],
  "paid": false,
  "note": null
}`

func writeCart(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte(cartJSON), 0644))
	return path
}

func TestFmtGolden(t *testing.T) {
	stdout, _, err := execute(t, "", "fmt", writeCart(t))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "fmt_cart", []byte(stdout))
}

func TestFmtStdin(t *testing.T) {
	stdout, _, err := execute(t, `{"b": 1, "a": [1.0, 2]}`, "fmt", "-")
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":[1.0,2],\"b\":1}\n", stdout)
}

func TestFmtInlineText(t *testing.T) {
	stdout, _, err := execute(t, "", "fmt", `[true, null, "x"]`)
	require.NoError(t, err)
	assert.Equal(t, "[true,null,\"x\"]\n", stdout)
}

func TestFmtOutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.json")
	stdout, _, err := execute(t, `{"b":2,"a":1}`, "fmt", "-", "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "wrote "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":2}`, string(data))
}

func TestFmtParseError(t *testing.T) {
	stdout, _, err := execute(t, `{"a":}`, "fmt", "-")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, jv.ErrParse)
	assert.Contains(t, stdout, "Error [E002]")
}

func TestFmtJSONFormat(t *testing.T) {
	stdout, _, err := execute(t, `{"b":[1,2.5],"a":"x"}`, "--format", "json", "fmt", "-")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.JSONEq(t, `{"a":"x","b":[1,2.5]}`, string(resp.Data))
}

func TestMinify(t *testing.T) {
	stdout, _, err := execute(t, "", "minify", `{ "a b" : [ 1 , 2 ] }`)
	require.NoError(t, err)
	assert.Equal(t, "{\"a b\":[1,2]}\n", stdout)
}

func TestMinifyDoesNotValidate(t *testing.T) {
	stdout, _, err := execute(t, "[ 1,\n 2", "minify", "-")
	require.NoError(t, err)
	assert.Equal(t, "[1,2\n", stdout)
}

func TestGet(t *testing.T) {
	cart := writeCart(t)

	tests := []struct {
		path string
		want string
	}{
		{"name", `"cart"`},
		{"items[1].sku", `"B-2"`},
		{"items[0].price", "9.5"},
		{"items[1].price", "20.0"},
		{"note", "null"},
		{"", `{"items":[{"price":9.5,"qty":2,"sku":"A-1"},{"price":20.0,"qty":1,"sku":"B-2"}],"name":"cart","note":null,"paid":false}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stdout, _, err := execute(t, "", "get", cart, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", stdout)
		})
	}
}

func TestGetErrors(t *testing.T) {
	cart := writeCart(t)

	tests := []struct {
		name string
		path string
		code string
		kind error
	}{
		{"missing_key", "total", ErrCodeKey, jv.ErrKey},
		{"index_out_of_bounds", "items[5]", ErrCodeIndex, jv.ErrIndex},
		{"index_into_object", "name[0]", ErrCodeType, jv.ErrType},
		{"bad_path", "items[", ErrCodeParse, jv.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, "", "get", cart, tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.kind)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, stdout, "Error ["+tt.code+"]")
		})
	}
}

func TestGetMissingFile(t *testing.T) {
	// A .json name that is not a file is parsed as text, which fails.
	missing := filepath.Join(t.TempDir(), "missing.json")
	_, _, err := execute(t, "", "get", missing, "a")
	require.Error(t, err)
	assert.ErrorIs(t, err, jv.ErrParse)
}

func TestSet(t *testing.T) {
	stdout, _, err := execute(t, "", "set", "null", "a.b[0]", `{"x":1}`)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":{\"b\":[{\"x\":1}]}}\n", stdout)
}

func TestSetAppendAndWrite(t *testing.T) {
	cart := writeCart(t)
	_, _, err := execute(t, "", "set", cart, "items[2]", `{"sku":"C-3"}`, "-o", cart)
	require.NoError(t, err)

	v, err := jv.ReadFile(cart)
	require.NoError(t, err)
	items, err := v.At("items")
	require.NoError(t, err)
	n, err := items.Len()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestSetErrors(t *testing.T) {
	_, _, err := execute(t, "", "set", "[1,2]", "[5]", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, jv.ErrIndex)

	_, _, err = execute(t, "", "set", "{}", "a", "{")
	require.Error(t, err)
	assert.ErrorIs(t, err, jv.ErrParse)
}

func TestDigest(t *testing.T) {
	a, _, err := execute(t, "", "digest", `{"a":1,"b":[true]}`)
	require.NoError(t, err)
	b, _, err := execute(t, "", "digest", `{ "b" : [ true ], "a" : 1 }`)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 65)

	c, _, err := execute(t, "", "digest", `{"a":1.0,"b":[true]}`)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
