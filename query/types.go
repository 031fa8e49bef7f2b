package query

import (
	"math"
	"strconv"

	"github.com/docdex/docdex/document"
)

// DefaultLimit is the result cap for keyword and vector search when the
// request does not set one. Structured queries default to all matches.
const DefaultLimit = 10

// Score is a per-hit relevance value. Keyword and structured queries score
// in (0,1] (higher is better); vector search scores are raw distances
// (lower is better) and may be the incomparable sentinel.
type Score float64

// MarshalJSON renders non-finite scores as null, matching the wire shape of
// the persisted JSON model (which has no infinity literal).
func (s Score) MarshalJSON() ([]byte, error) {
	f := float64(s)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

// Hit is one matched document.
type Hit struct {
	ID       uint64         `json:"id"`
	Document document.Value `json:"document"`
	Score    *Score         `json:"score,omitempty"`
}

// Result is the outcome of any query mode.
type Result struct {
	Hits         []Hit          `json:"hits"`
	Aggregations map[string]int `json:"aggregations,omitempty"`
}

// KeywordRequest is a freeform text search.
type KeywordRequest struct {
	// Query is matched case-insensitively.
	Query string
	// Fuzz is the maximum edit distance; 0 means exact substring match.
	Fuzz int
	// Limit caps the hits. An explicit 0 is indistinguishable from unset
	// and means DefaultLimit, never zero hits.
	Limit int
	// WithScores attaches a score to every hit.
	WithScores bool
}

// Range is an inclusive numeric bound; nil sides are unconstrained.
type Range struct {
	GTE *float64 `json:"gte,omitempty"`
	LTE *float64 `json:"lte,omitempty"`
}

// OrderDesc requests descending sort order.
const OrderDesc = "desc"

// Sort is a single-field sort specification, ascending unless Order is
// OrderDesc.
type Sort struct {
	Field string `json:"field"`
	Order string `json:"order,omitempty"`
}

// Request is the structured filter/sort/aggregate query.
type Request struct {
	// Term filters require exact string equality per field, ANDed.
	Term map[string]string `json:"term,omitempty"`
	// Range filters require a numeric field within bounds, ANDed.
	Range map[string]Range `json:"range,omitempty"`
	// Sort orders the filtered set before truncation.
	Sort *Sort `json:"sort,omitempty"`
	// Aggs names a field to bucket-count over the filtered set.
	Aggs string `json:"aggs,omitempty"`
	// Limit caps the hits. An explicit 0 is indistinguishable from unset
	// and keeps every match, never zero hits.
	Limit int `json:"limit,omitempty"`
	// Fuzz enables fuzzy scoring against the first term filter.
	Fuzz int `json:"fuzz,omitempty"`
	// WithScores attaches a score to every hit.
	WithScores bool `json:"scores,omitempty"`
}

// VectorRequest is an exhaustive k-nearest-neighbor search.
type VectorRequest struct {
	// Vector is the query embedding.
	Vector []float32 `json:"vector"`
	// Field selects the document field holding the embedding; empty means
	// the cached "vector" field.
	Field string `json:"field,omitempty"`
	// Limit caps the hits. An explicit 0 is indistinguishable from unset
	// and means DefaultLimit, never zero hits.
	Limit int `json:"limit,omitempty"`
	// WithScores attaches the raw distance to every hit.
	WithScores bool `json:"scores,omitempty"`
}
