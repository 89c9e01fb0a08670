// Package stats provides the numeric primitives shared by the simulation engine.
package stats

import (
	"math"
	"sort"
)

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Mean returns the arithmetic mean, NaN for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return Sum(values) / float64(len(values))
}

// Median returns the middle value of a sorted copy of values; for an even
// count it averages the two middle values. NaN for an empty slice.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := sortedCopy(values)
	mid := n / 2
	if n%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Min returns the smallest value and its index. The first occurrence wins on
// ties. Index is -1 for an empty slice.
func Min(values []float64) (float64, int) {
	if len(values) == 0 {
		return math.NaN(), -1
	}
	idx := 0
	for i, v := range values {
		if v < values[idx] {
			idx = i
		}
	}
	return values[idx], idx
}

// Max returns the largest value and its index. The first occurrence wins on
// ties. Index is -1 for an empty slice.
func Max(values []float64) (float64, int) {
	if len(values) == 0 {
		return math.NaN(), -1
	}
	idx := 0
	for i, v := range values {
		if v > values[idx] {
			idx = i
		}
	}
	return values[idx], idx
}

// Clamp bounds v to the closed interval [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

// Round rounds v to the given number of decimal places, half away from zero.
func Round(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}

// StdDev returns the sample standard deviation (n-1 denominator).
// NaN when fewer than two values are given.
func StdDev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return math.NaN()
	}
	mean := Mean(values)
	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(n-1))
}

// Percentile returns the nearest-rank percentile p (0..100) of values.
func Percentile(values []float64, p float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	sorted := sortedCopy(values)
	// 0.07*100 is 7.000000000000001 in float64; round before taking the ceiling
	rank := math.Ceil(Round(p/100*float64(n), 9))
	return sorted[int(Clamp(rank, 1, float64(n)))-1]
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
