package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestL2(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float32
		expected float32
	}{
		{"Identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 0},
		{"Simple", []float32{0, 0}, []float32{3, 4}, 5},
		{"Unit", []float32{0, 1}, []float32{1, 0}, 1.4142135},
		{"Empty", []float32{}, []float32{}, 0},
		{"Negative", []float32{-1, -1}, []float32{1, 1}, 2.828427},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, L2(tt.a, tt.b), 1e-5)
		})
	}
}

func TestL2Mismatch(t *testing.T) {
	d := L2([]float32{1, 2}, []float32{1, 2, 3})
	assert.True(t, IsIncomparable(d))

	// The sentinel sorts after every finite distance.
	assert.Greater(t, d, L2([]float32{0, 0}, []float32{1e30, 1e30}))
}

func TestL2NearestWins(t *testing.T) {
	query := []float32{0.9, 0.1}
	assert.Less(t, L2(query, []float32{1, 0}), L2(query, []float32{0, 1}))
}
