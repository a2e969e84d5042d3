// Package weighting holds the weighted-proportion primitive and the
// precondition checks shared by the diagnostic computer.
package weighting

import (
	"fmt"
	"math"
)

// Proportions computes the weight-normalized share of each observed level.
// values and weights are aligned by position; the result maps every level
// that occurs in values to its share of the total weight.
func Proportions(values []string, weights []float64) (map[string]float64, error) {
	if len(values) != len(weights) {
		return nil, fmt.Errorf("values and weights are misaligned: %d values vs %d weights", len(values), len(weights))
	}

	sums := make(map[string]float64)
	total := 0.0
	for i, v := range values {
		w := weights[i]
		if w < 0 || math.IsNaN(w) {
			return nil, fmt.Errorf("weight at row %d is %v, weights must be non-negative", i, w)
		}
		sums[v] += w
		total += w
	}
	if total == 0 {
		return nil, fmt.Errorf("total weight is zero across %d rows", len(values))
	}

	for level := range sums {
		sums[level] /= total
	}
	return sums, nil
}

// Uniform returns a weight vector of n ones. Running Proportions with a
// uniform vector yields plain unweighted proportions.
func Uniform(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// Reindex orders a proportion map to an externally given level order.
// Levels absent from the map come back as 0: a target level that never
// occurs in the data has an observed share of nothing, not an error.
func Reindex(props map[string]float64, levels []string) []float64 {
	out := make([]float64, len(levels))
	for i, level := range levels {
		out[i] = props[level]
	}
	return out
}
