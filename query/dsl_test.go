package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex/index"
)

func f64(v float64) *float64 { return &v }

func viewsIndex(t *testing.T) *index.Index {
	t.Helper()
	return buildIndex(t,
		`{"title":"a","views":10}`,
		`{"title":"b","views":20}`,
		`{"title":"c","views":15}`,
	)
}

func TestTermFilter(t *testing.T) {
	idx := viewsIndex(t)

	res := Run(idx, Request{Term: map[string]string{"title": "b"}})
	assert.Equal(t, []uint64{2}, hitIDs(res))
}

func TestTermFilterNonStringNeverMatches(t *testing.T) {
	idx := buildIndex(t, `{"views":10}`)

	res := Run(idx, Request{Term: map[string]string{"views": "10"}})
	assert.Empty(t, res.Hits)
}

func TestTermFiltersAreANDed(t *testing.T) {
	idx := buildIndex(t,
		`{"color":"red","size":"s"}`,
		`{"color":"red","size":"m"}`,
		`{"color":"blue","size":"m"}`,
	)

	res := Run(idx, Request{Term: map[string]string{"color": "red", "size": "m"}})
	assert.Equal(t, []uint64{2}, hitIDs(res))
}

func TestRangeFilter(t *testing.T) {
	idx := viewsIndex(t)

	tests := []struct {
		name     string
		bounds   Range
		expected []uint64
	}{
		{"GTE", Range{GTE: f64(15)}, []uint64{2, 3}},
		{"LTE", Range{LTE: f64(15)}, []uint64{1, 3}},
		{"Both", Range{GTE: f64(15), LTE: f64(15)}, []uint64{3}},
		{"Open", Range{}, []uint64{1, 2, 3}},
		{"None", Range{GTE: f64(100)}, []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Run(idx, Request{Range: map[string]Range{"views": tt.bounds}})
			assert.Equal(t, tt.expected, hitIDs(res))
		})
	}
}

func TestRangeFilterMissingOrNonNumericFails(t *testing.T) {
	idx := buildIndex(t,
		`{"views":10}`,
		`{"views":"many"}`,
		`{"other":1}`,
	)

	res := Run(idx, Request{Range: map[string]Range{"views": {GTE: f64(0)}}})
	assert.Equal(t, []uint64{1}, hitIDs(res))
}

func TestSort(t *testing.T) {
	idx := viewsIndex(t)

	res := Run(idx, Request{Sort: &Sort{Field: "views"}})
	assert.Equal(t, []uint64{1, 3, 2}, hitIDs(res)) // 10, 15, 20

	res = Run(idx, Request{Sort: &Sort{Field: "views", Order: OrderDesc}})
	assert.Equal(t, []uint64{2, 3, 1}, hitIDs(res)) // 20, 15, 10
}

func TestSortStrings(t *testing.T) {
	idx := buildIndex(t, `{"t":"banana"}`, `{"t":"apple"}`, `{"t":"cherry"}`)

	res := Run(idx, Request{Sort: &Sort{Field: "t"}})
	assert.Equal(t, []uint64{2, 1, 3}, hitIDs(res))
}

func TestSortMismatchedTypesKeepOrder(t *testing.T) {
	idx := buildIndex(t,
		`{"v":"zebra"}`,
		`{"v":5}`,
		`{"other":1}`,
		`{"v":"apple"}`,
	)

	// string-vs-number, missing fields: all equal, stable order preserved
	// except where comparable pairs reorder. zebra/apple are comparable.
	res := Run(idx, Request{Sort: &Sort{Field: "v"}})
	assert.Len(t, res.Hits, 4)
}

func TestLimitDefaultsToAll(t *testing.T) {
	idx := viewsIndex(t)

	res := Run(idx, Request{})
	assert.Len(t, res.Hits, 3)
}

func TestAggregationsOverPreTruncationSet(t *testing.T) {
	idx := viewsIndex(t)

	res := Run(idx, Request{
		Range: map[string]Range{"views": {GTE: f64(15)}},
		Aggs:  "views",
		Limit: 1,
	})

	assert.Len(t, res.Hits, 1)
	assert.Equal(t, map[string]int{"15": 1, "20": 1}, res.Aggregations)
}

func TestAggregationKeysAreRenderings(t *testing.T) {
	idx := buildIndex(t,
		`{"cat":"books"}`,
		`{"cat":"books"}`,
		`{"cat":42}`,
	)

	res := Run(idx, Request{Aggs: "cat"})
	assert.Equal(t, map[string]int{`"books"`: 2, "42": 1}, res.Aggregations)
}

func TestAggregationSkipsMissingField(t *testing.T) {
	idx := buildIndex(t, `{"cat":"x"}`, `{"other":1}`)

	res := Run(idx, Request{Aggs: "cat"})
	assert.Equal(t, map[string]int{`"x"`: 1}, res.Aggregations)
}

func TestNoAggregationWhenUnset(t *testing.T) {
	res := Run(viewsIndex(t), Request{})
	assert.Nil(t, res.Aggregations)
}

func TestDSLScoreDefaultsToOne(t *testing.T) {
	idx := viewsIndex(t)

	res := Run(idx, Request{Term: map[string]string{"title": "a"}, WithScores: true})
	require.Len(t, res.Hits, 1)
	assert.Equal(t, Score(1.0), *res.Hits[0].Score)
}

func TestDSLFuzzyScoreFromFirstTerm(t *testing.T) {
	idx := buildIndex(t, `{"title":"hello"}`)

	res := Run(idx, Request{
		Term:       map[string]string{"title": "hello"},
		Fuzz:       2,
		WithScores: true,
	})
	require.Len(t, res.Hits, 1)
	assert.Equal(t, Score(1.0), *res.Hits[0].Score)
}

func TestFilterSortAggregateCombined(t *testing.T) {
	idx := buildIndex(t,
		`{"cat":"a","views":10}`,
		`{"cat":"a","views":30}`,
		`{"cat":"b","views":20}`,
		`{"cat":"a","views":20}`,
	)

	res := Run(idx, Request{
		Term:  map[string]string{"cat": "a"},
		Range: map[string]Range{"views": {GTE: f64(15)}},
		Sort:  &Sort{Field: "views", Order: OrderDesc},
		Aggs:  "views",
		Limit: 1,
	})

	assert.Equal(t, []uint64{2}, hitIDs(res))
	assert.Equal(t, map[string]int{"30": 1, "20": 1}, res.Aggregations)
}

func TestDSLEmptyIndex(t *testing.T) {
	res := Run(&index.Index{}, Request{Term: map[string]string{"x": "y"}})
	assert.Empty(t, res.Hits)
}
