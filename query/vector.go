package query

import (
	"cmp"
	"slices"

	"github.com/docdex/docdex/distance"
	"github.com/docdex/docdex/document"
	"github.com/docdex/docdex/index"
)

// Vector runs an exhaustive nearest-neighbor search. The default field uses
// the vector cached at insertion time; any other field is extracted from the
// document on the fly. Documents without an extractable vector are silently
// excluded. Dimension mismatches score the incomparable sentinel, which
// sorts last but is never explicitly filtered.
func Vector(idx *index.Index, req VectorRequest) *Result {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	field := req.Field
	if field == "" {
		field = document.VectorField
	}

	var matches []scoredPos
	for i := range idx.Docs {
		var vec []float32
		if field == document.VectorField {
			if idx.Docs[i].Vector == nil {
				continue
			}
			vec = idx.Docs[i].Vector
		} else {
			extracted, ok := document.ExtractVector(idx.Docs[i].Data, field)
			if !ok {
				continue
			}
			vec = extracted
		}
		matches = append(matches, scoredPos{i, float64(distance.L2(req.Vector, vec))})
	}

	slices.SortStableFunc(matches, func(a, b scoredPos) int {
		return cmp.Compare(a.score, b.score)
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
