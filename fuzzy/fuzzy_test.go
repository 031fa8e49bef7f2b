package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex/document"
)

func decode(t *testing.T, raw string) document.Value {
	t.Helper()
	v, err := document.Decode([]byte(raw))
	require.NoError(t, err)
	return v
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		query   string
		maxDist int
		dist    int
		ok      bool
	}{
		{"ExactToken", `{"title":"hello world"}`, "hello", 2, 0, true},
		{"OneEdit", `{"title":"hello world"}`, "hell", 2, 1, true},
		{"CaseFolded", `{"title":"HELLO"}`, "hello", 0, 0, true},
		{"BestToken", `{"title":"alpha beta"}`, "betas", 2, 1, true},
		{"OverThreshold", `{"title":"hello"}`, "xyz", 2, 0, false},
		{"NestedObject", `{"a":{"b":"hello"}}`, "hello", 1, 0, true},
		{"Array", `{"tags":["foo","bar"]}`, "baz", 1, 1, true},
		{"NumberRendering", `{"views":42}`, "42", 0, 0, true},
		{"BoolRendering", `{"flag":true}`, "true", 0, 0, true},
		{"NullRendering", `{"x":null}`, "null", 0, 0, true},
		{"MinAcrossBranches", `{"a":"hellish","b":"hello"}`, "hello", 3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, ok := Match(decode(t, tt.doc), tt.query, tt.maxDist)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.dist, dist)
			}
		})
	}
}

func TestMatchBranchOverThresholdIgnored(t *testing.T) {
	// A branch beyond the threshold must contribute nothing, not a
	// large-but-finite distance.
	v := decode(t, `{"far":"completely unrelated","near":"query"}`)

	dist, ok := Match(v, "query", 1)
	require.True(t, ok)
	assert.Equal(t, 0, dist)

	_, ok = Match(decode(t, `{"far":"completely unrelated"}`), "query", 1)
	assert.False(t, ok)
}

func TestMatchScalarQuery(t *testing.T) {
	// Scalar at the root, no object wrapper.
	dist, ok := Match(document.String("hello world"), "word", 2)
	require.True(t, ok)
	assert.Equal(t, 1, dist)
}
