package query

import (
	"cmp"
	"slices"
	"strings"

	"github.com/docdex/docdex/fuzzy"
	"github.com/docdex/docdex/index"
)

type scoredPos struct {
	pos   int
	score float64
}

// Keyword runs a freeform text search over every document of the index.
//
// With Fuzz == 0 a document matches iff the lowercased rendering of its
// whole data tree contains the query as a substring, scoring 1.0. With
// Fuzz > 0 the fuzzy matcher runs against the data tree and the score is
// 1/(distance+1). Hits sort by score descending (stable) and truncate to
// the limit.
func Keyword(idx *index.Index, req KeywordRequest) *Result {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q := strings.ToLower(req.Query)

	var matches []scoredPos
	for i := range idx.Docs {
		if req.Fuzz > 0 {
			if dist, ok := fuzzy.Match(idx.Docs[i].Data, q, req.Fuzz); ok {
				matches = append(matches, scoredPos{i, 1 / (float64(dist) + 1)})
			}
		} else if strings.Contains(strings.ToLower(idx.Docs[i].Data.Render()), q) {
			matches = append(matches, scoredPos{i, 1.0})
		}
	}

	slices.SortStableFunc(matches, func(a, b scoredPos) int {
		return cmp.Compare(b.score, a.score)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		hit := Hit{ID: idx.Docs[m.pos].ID, Document: idx.Docs[m.pos].Data}
		if req.WithScores {
			s := Score(m.score)
			hit.Score = &s
		}
		hits = append(hits, hit)
	}
	return &Result{Hits: hits}
}
