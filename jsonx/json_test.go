package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalJSONC(t *testing.T) {
	var v struct {
		Slot  uint64   `json:"slot"`
		Paths []string `json:"paths"`
	}
	err := UnmarshalJSONC([]byte(`{
		// current slot
		"slot": 12,
		"paths": ["a", "b",], /* trailing comma */
	}`), &v)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), v.Slot)
	assert.Equal(t, []string{"a", "b"}, v.Paths)

	err = UnmarshalJSONC([]byte(`{"slot": `), &v)
	assert.ErrorContains(t, err, "invalid JSONC")
}

func TestMarshalIndent(t *testing.T) {
	out, err := MarshalIndent(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
}
