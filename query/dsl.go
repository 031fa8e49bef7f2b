package query

import (
	"cmp"
	"slices"
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/docdex/docdex/document"
	"github.com/docdex/docdex/fuzzy"
	"github.com/docdex/docdex/index"
)

// Run executes a structured query: AND of all term and range filters, then
// sort, then aggregation over the whole filtered set, then truncation.
func Run(idx *index.Index, req Request) *Result {
	n := idx.Len()

	// Candidate positions survive every filter. Filters intersect bitmaps
	// so each filter costs one scan regardless of how many are combined.
	candidates := roaring.New()
	candidates.AddRange(0, uint64(n))

	for field, want := range req.Term {
		bm := roaring.New()
		for i := 0; i < n; i++ {
			if v, ok := idx.Docs[i].Data.Field(field); ok {
				if s, isStr := v.AsString(); isStr && s == want {
					bm.Add(uint32(i))
				}
			}
		}
		candidates.And(bm)
	}

	for field, bounds := range req.Range {
		bm := roaring.New()
		for i := 0; i < n; i++ {
			v, ok := idx.Docs[i].Data.Field(field)
			if !ok {
				continue
			}
			f, isNum := v.AsFloat64()
			if !isNum {
				continue
			}
			if (bounds.GTE == nil || f >= *bounds.GTE) && (bounds.LTE == nil || f <= *bounds.LTE) {
				bm.Add(uint32(i))
			}
		}
		candidates.And(bm)
	}

	// Ascending positions preserve insertion order before sorting.
	positions := make([]int, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		positions = append(positions, int(it.Next()))
	}

	if req.Sort != nil {
		field := req.Sort.Field
		slices.SortStableFunc(positions, func(a, b int) int {
			av, aok := idx.Docs[a].Data.Field(field)
			bv, bok := idx.Docs[b].Data.Field(field)
			return compareValues(av, aok, bv, bok)
		})
		if req.Sort.Order == OrderDesc {
			slices.Reverse(positions)
		}
	}

	var aggregations map[string]int
	if req.Aggs != "" {
		aggregations = make(map[string]int)
		for _, pos := range positions {
			if v, ok := idx.Docs[pos].Data.Field(req.Aggs); ok {
				aggregations[v.Render()]++
			}
		}
	}

	limit := req.Limit
	if limit <= 0 || limit > len(positions) {
		limit = len(positions)
	}
	kept := positions[:limit]

	hits := make([]Hit, 0, len(kept))
	for _, pos := range kept {
		hit := Hit{ID: idx.Docs[pos].ID, Document: idx.Docs[pos].Data}
		if req.WithScores {
			s := Score(termScore(idx.Docs[pos].Data, req))
			hit.Score = &s
		}
		hits = append(hits, hit)
	}
	return &Result{Hits: hits, Aggregations: aggregations}
}

// termScore derives a hit's score. With fuzz enabled and a term filter
// present, the first term filter's value is fuzzy-matched against that
// field; everything else scores 1.0.
func termScore(data document.Value, req Request) float64 {
	if req.Fuzz <= 0 || len(req.Term) == 0 {
		return 1.0
	}

	fields := make([]string, 0, len(req.Term))
	for f := range req.Term {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	first := fields[0]

	v, ok := data.Field(first)
	if !ok {
		return 1.0
	}
	dist, ok := fuzzy.Match(v, strings.ToLower(req.Term[first]), req.Fuzz)
	if !ok {
		return 1.0
	}
	return 1 / (float64(dist) + 1)
}

// compareValues orders two field values: numbers numerically, strings
// lexicographically, every other combination (including missing fields)
// compares equal so the stable sort preserves their relative order.
func compareValues(a document.Value, aok bool, b document.Value, bok bool) int {
	if !aok || !bok {
		return 0
	}
	if a.IsNumber() && b.IsNumber() {
		af, _ := a.AsFloat64()
		bf, _ := b.AsFloat64()
		return cmp.Compare(af, bf)
	}
	if a.Kind == document.KindString && b.Kind == document.KindString {
		return strings.Compare(a.S, b.S)
	}
	return 0
}
