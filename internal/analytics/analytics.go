// Package analytics folds derived records into city, vehicle-class and
// dataset-wide views. Every function is pure: inputs are never modified and
// repeated calls on the same input return equal results.
package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Readiness score shape: min(100, density*ReadinessSlope + ReadinessBase).
const (
	ReadinessSlope = 20.0
	ReadinessBase  = 50.0
	ReadinessMax   = 100.0
)

// meanOr returns the arithmetic mean of xs, or fallback when xs is empty.
// Each call site picks its own fallback.
func meanOr(xs []float64, fallback float64) float64 {
	if len(xs) == 0 {
		return fallback
	}
	return stat.Mean(xs, nil)
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// ReadinessScore maps a charging density onto a 0-100 score.
func ReadinessScore(density float64) float64 {
	return math.Min(ReadinessMax, density*ReadinessSlope+ReadinessBase)
}

// collect maps each selected record to a float.
func collect[T any](items []T, keep func(T) bool, get func(T) float64) []float64 {
	var out []float64
	for _, it := range items {
		if keep(it) {
			out = append(out, get(it))
		}
	}
	return out
}
