// Package distance provides vector distance calculations for exhaustive
// nearest-neighbor search.
package distance

import (
	"math"
)

// Incomparable is the sentinel distance for vectors of unequal length.
// It compares as worse than every finite distance, so mismatched documents
// sort last instead of failing the query.
var Incomparable = float32(math.Inf(1))

// L2 calculates the Euclidean distance between two vectors.
// Vectors of unequal length yield Incomparable.
func L2(a, b []float32) float32 {
	if len(a) != len(b) {
		return Incomparable
	}
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return float32(math.Sqrt(float64(sum)))
}

// IsIncomparable reports whether d is the mismatch sentinel.
func IsIncomparable(d float32) bool {
	return math.IsInf(float64(d), 1)
}
