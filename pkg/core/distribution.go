package core

import (
	"fmt"
	"sort"
)

// Distribution1D is a discrete probability distribution over a fixed number of
// items, built from non-negative weights. It is immutable after construction and
// safe for concurrent use.
type Distribution1D struct {
	weights []float64 // Normalized so they sum to 1
	cdf     []float64 // cdf[i] = sum(weights[:i+1]), cdf[len-1] == 1
}

// NewDistribution1D creates a distribution from the given weights.
// Weights are normalized to sum to 1.0; if all weights are zero the distribution is uniform.
func NewDistribution1D(weights []float64) *Distribution1D {
	normalized := make([]float64, len(weights))
	cdf := make([]float64, len(weights))
	if len(weights) == 0 {
		return &Distribution1D{weights: normalized, cdf: cdf}
	}

	totalWeight := 0.0
	for _, weight := range weights {
		if weight < 0 {
			panic(fmt.Sprintf("distribution weights must be non-negative, got %f", weight))
		}
		totalWeight += weight
	}

	for i, weight := range weights {
		if totalWeight == 0 {
			normalized[i] = 1.0 / float64(len(weights))
		} else {
			normalized[i] = weight / totalWeight
		}
	}

	running := 0.0
	for i, w := range normalized {
		running += w
		cdf[i] = running
	}
	cdf[len(cdf)-1] = 1

	return &Distribution1D{weights: normalized, cdf: cdf}
}

// SampleDiscrete selects an item with probability proportional to its weight.
// Returns the item index and its selection probability, or (-1, 0) when empty.
func (d *Distribution1D) SampleDiscrete(u float64) (int, float64) {
	if len(d.weights) == 0 {
		return -1, 0
	}
	i := sort.Search(len(d.cdf), func(i int) bool { return d.cdf[i] > u })
	if i >= len(d.cdf) {
		i = len(d.cdf) - 1
	}
	// u >= 1 clamps to the end; back off trailing zero-weight items
	for d.weights[i] == 0 && i > 0 {
		i--
	}
	return i, d.weights[i]
}

// PDF returns the selection probability of item i
func (d *Distribution1D) PDF(i int) float64 {
	if i < 0 || i >= len(d.weights) {
		return 0
	}
	return d.weights[i]
}

// Count returns the number of items in the distribution
func (d *Distribution1D) Count() int {
	return len(d.weights)
}

// String returns a string representation for debugging
func (d *Distribution1D) String() string {
	if len(d.weights) == 0 {
		return "Distribution1D{empty}"
	}
	result := fmt.Sprintf("Distribution1D{%d items:\n", len(d.weights))
	for i, w := range d.weights {
		result += fmt.Sprintf("  [%d] %.1f%%\n", i, w*100)
	}
	return result + "}"
}
