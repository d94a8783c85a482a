// Package metric implements the global utility metrics: demographic-average
// utility, linguistic-average utility, and the Gini-based equity measure.
package metric

import (
	"math"
	"sort"
)

// Point is one language's performance with its speaker population.
type Point struct {
	Language   string  `json:"language"`
	Score      float64 `json:"score"`
	Population float64 `json:"population"`
}

// DemographicAverage is the population-weighted mean score. Languages with
// more speakers count for more. Returns 0 when the total population is 0.
func DemographicAverage(points []Point) float64 {
	var total, weighted float64
	for _, p := range points {
		total += p.Population
		weighted += p.Score * p.Population
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// LinguisticAverage is the unweighted mean score: every language counts
// equally regardless of speaker population.
func LinguisticAverage(points []Point) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Score
	}
	return sum / float64(len(points))
}

// Gini is the Gini coefficient of the values: 0 for a uniform distribution,
// approaching 1 as performance concentrates in few languages. Returns 0 for
// fewer than two values or an all-zero distribution.
func Gini(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))
	if mean == 0 {
		return 0
	}

	var total float64
	for i, vi := range sorted[:len(sorted)-1] {
		for _, vj := range sorted[i+1:] {
			total += math.Abs(vi - vj)
		}
	}
	return total / (float64(len(sorted)*len(sorted)) * mean)
}

// Equity is 1 minus the Gini coefficient: higher means performance is spread
// more evenly across languages.
func Equity(values []float64) float64 {
	return 1 - Gini(values)
}
