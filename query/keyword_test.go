package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex/document"
	"github.com/docdex/docdex/index"
)

func buildIndex(t *testing.T, raws ...string) *index.Index {
	t.Helper()
	idx := &index.Index{}
	for _, raw := range raws {
		v, err := document.Decode([]byte(raw))
		require.NoError(t, err)
		idx.Append(v)
	}
	return idx
}

func hitIDs(res *Result) []uint64 {
	ids := make([]uint64, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids
}

func TestKeywordSubstring(t *testing.T) {
	idx := buildIndex(t,
		`{"title":"hello world"}`,
		`{"title":"goodbye"}`,
	)

	res := Keyword(idx, KeywordRequest{Query: "hello"})
	assert.Equal(t, []uint64{1}, hitIDs(res))

	res = Keyword(idx, KeywordRequest{Query: "xyz"})
	assert.Empty(t, res.Hits)
}

func TestKeywordCaseInsensitive(t *testing.T) {
	idx := buildIndex(t, `{"title":"Hello World"}`)

	res := Keyword(idx, KeywordRequest{Query: "HELLO"})
	assert.Len(t, res.Hits, 1)
}

func TestKeywordMatchesFieldNames(t *testing.T) {
	// The substring test runs over the full rendering, keys included.
	idx := buildIndex(t, `{"interesting_field":1}`)

	res := Keyword(idx, KeywordRequest{Query: "interesting"})
	assert.Len(t, res.Hits, 1)
}

func TestKeywordExactScoresOne(t *testing.T) {
	idx := buildIndex(t, `{"title":"hello"}`)

	res := Keyword(idx, KeywordRequest{Query: "hello", WithScores: true})
	require.Len(t, res.Hits, 1)
	require.NotNil(t, res.Hits[0].Score)
	assert.Equal(t, Score(1.0), *res.Hits[0].Score)
}

func TestKeywordFuzzyScoreDecreasesWithDistance(t *testing.T) {
	idx := buildIndex(t,
		`{"title":"hello"}`, // distance 0
		`{"title":"hell"}`,  // distance 1
		`{"title":"heap"}`,  // distance 3: too far for fuzz=2
		`{"title":"helio"}`, // distance 1
	)

	res := Keyword(idx, KeywordRequest{Query: "hello", Fuzz: 2, WithScores: true})
	require.Len(t, res.Hits, 3)

	assert.Equal(t, uint64(1), res.Hits[0].ID)
	assert.Equal(t, Score(1.0), *res.Hits[0].Score)
	assert.Equal(t, Score(0.5), *res.Hits[1].Score)
	assert.Equal(t, Score(0.5), *res.Hits[2].Score)
	// Equal scores keep insertion order.
	assert.Equal(t, []uint64{1, 2, 4}, hitIDs(res))
}

func TestKeywordFuzzyScoreFormula(t *testing.T) {
	idx := buildIndex(t, `{"title":"abcd"}`)

	res := Keyword(idx, KeywordRequest{Query: "abxy", Fuzz: 2, WithScores: true})
	require.Len(t, res.Hits, 1)
	assert.InDelta(t, 1.0/3.0, float64(*res.Hits[0].Score), 1e-9)
}

func TestKeywordLimit(t *testing.T) {
	idx := buildIndex(t, `{"t":"a1"}`, `{"t":"a2"}`, `{"t":"a3"}`)

	res := Keyword(idx, KeywordRequest{Query: "a", Limit: 1})
	assert.Len(t, res.Hits, 1)
}

func TestKeywordDefaultLimit(t *testing.T) {
	raws := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		raws = append(raws, `{"t":"match"}`)
	}
	idx := buildIndex(t, raws...)

	res := Keyword(idx, KeywordRequest{Query: "match"})
	assert.Len(t, res.Hits, DefaultLimit)
}

func TestKeywordNoScoresByDefault(t *testing.T) {
	idx := buildIndex(t, `{"title":"hello"}`)

	res := Keyword(idx, KeywordRequest{Query: "hello"})
	require.Len(t, res.Hits, 1)
	assert.Nil(t, res.Hits[0].Score)
}

func TestKeywordEmptyIndex(t *testing.T) {
	res := Keyword(&index.Index{}, KeywordRequest{Query: "anything"})
	assert.Empty(t, res.Hits)
}
