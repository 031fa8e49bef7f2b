package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVector(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		field    string
		expected []float32
		ok       bool
	}{
		{"Present", `{"vector":[0.5,1,2]}`, "vector", []float32{0.5, 1, 2}, true},
		{"CustomField", `{"embedding":[1,0]}`, "embedding", []float32{1, 0}, true},
		{"MissingField", `{"title":"x"}`, "vector", nil, false},
		{"NotArray", `{"vector":"oops"}`, "vector", nil, false},
		{"MixedElements", `{"vector":[1,"a",2]}`, "vector", []float32{1, 2}, true},
		{"EmptyArray", `{"vector":[]}`, "vector", []float32{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Decode([]byte(tt.data))
			require.NoError(t, err)

			vec, ok := ExtractVector(v, tt.field)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, vec)
		})
	}
}

func TestNewCachesVector(t *testing.T) {
	v, err := Decode([]byte(`{"title":"x","vector":[0.9,0.1]}`))
	require.NoError(t, err)

	doc := New(3, v)
	assert.Equal(t, uint64(3), doc.ID)
	assert.Equal(t, []float32{0.9, 0.1}, doc.Vector)
}

func TestNewWithoutVector(t *testing.T) {
	v, err := Decode([]byte(`{"title":"x"}`))
	require.NoError(t, err)

	doc := New(1, v)
	assert.Nil(t, doc.Vector)
}
