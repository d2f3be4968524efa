package jsonvalue

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Object(t *testing.T) {
	v, err := Decode([]byte(`{"type": "user", "n": 2, "tags": ["a", "b"], "meta": {"ok": true}}`))
	require.NoError(t, err)

	require.True(t, v.IsObject())
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, []string{"meta", "n", "tags", "type"}, v.Keys())

	typ, ok := v.Get("type")
	require.True(t, ok)
	assert.Equal(t, "user", typ.Str())

	n, _ := v.Get("n")
	assert.Equal(t, KindInt, n.Kind())
	assert.Equal(t, "2", n.Literal())

	tags, _ := v.Get("tags")
	require.True(t, tags.IsArray())
	assert.Len(t, tags.Items(), 2)

	meta, _ := v.Get("meta")
	okVal, _ := meta.Get("ok")
	assert.True(t, okVal.BoolValue())

	_, ok = v.Get("missing")
	assert.False(t, ok)
}

func TestDecode_DuplicateKeyKeepsLast(t *testing.T) {
	v, err := Decode([]byte(`{"a": 1, "a": "two"}`))
	require.NoError(t, err)
	a, _ := v.Get("a")
	assert.Equal(t, KindString, a.Kind())
	assert.Equal(t, "two", a.Str())
}

func TestDecode_Whitespace(t *testing.T) {
	v, err := Decode([]byte("  \t{\"a\": 1}  \n"))
	require.NoError(t, err)
	assert.True(t, v.IsObject())
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"blank", `   `},
		{"garbage", `not valid json`},
		{"truncated_object", `{"a": 1`},
		{"truncated_array", `[1, 2`},
		{"trailing_comma_array", `[1,]`},
		{"trailing_comma_object", `{"a": 1,}`},
		{"missing_comma", `[1 2]`},
		{"two_values", `{} {}`},
		{"trailing_text", `{"a": 1} x`},
		{"nan", `NaN`},
		{"infinity", `{"a": Infinity}`},
		{"single_quotes", `{'a': 1}`},
		{"leading_zero", `01`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDecode_TrailingDataSentinel(t *testing.T) {
	_, err := Decode([]byte(`1 2`))
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestValue_String(t *testing.T) {
	v, err := Decode([]byte(`{"z": [1, 2.50, null, true], "a": {"k": "v&<>"}}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"k":"v&<>"},"z":[1,2.50,null,true]}`, v.String())
}

func TestValue_Interface(t *testing.T) {
	v, err := Decode([]byte(`{"i": 7, "f": 0.5, "big": 123456789012345678901234567890, "s": "x", "n": null, "b": false, "a": [1]}`))
	require.NoError(t, err)

	native, ok := v.Interface().(map[string]any)
	require.True(t, ok)

	assert.Equal(t, 7, native["i"])
	assert.Equal(t, 0.5, native["f"])
	assert.Equal(t, "x", native["s"])
	assert.Nil(t, native["n"])
	assert.Equal(t, false, native["b"])
	assert.Equal(t, []any{1}, native["a"])

	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	assert.Equal(t, want, native["big"])
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, KindNull, Null().Kind())
	assert.Equal(t, KindInt, Number("10").Kind())
	assert.Equal(t, KindFloat, Number("1e2").Kind())
	assert.Equal(t, KindArray, Array().Kind())
	assert.NotNil(t, Array().Items())
	assert.Equal(t, KindObject, Object(nil).Kind())
	assert.Equal(t, 0, Object(nil).Len())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
