// Package stats provides the small numeric helpers shared by the feature
// engine and the reporter: interpolated quantiles, describe-style
// summaries, and Pearson correlations with pairwise missing handling.
package stats

import (
	"math"
	"sort"
)

// Quantile returns the q-th quantile of vals using linear interpolation
// between order statistics (the pandas/numpy default). vals need not be
// sorted; missing values must already be filtered out by the caller.
// An empty input reports ok=false.
func Quantile(vals []float64, q float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return quantileSorted(cp, q), true
}

func quantileSorted(sorted []float64, q float64) float64 {
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// Summary is a describe-style numeric summary of one column.
type Summary struct {
	Count         int
	Mean, Std     float64
	Min, Max      float64
	Q25, Q50, Q75 float64
}

// Describe computes Summary over vals. Std is the sample standard
// deviation (n-1 denominator), accumulated via Welford's update.
func Describe(vals []float64) Summary {
	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	var mean, m2 float64
	for _, x := range vals {
		s.Count++
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
		delta := x - mean
		mean += delta / float64(s.Count)
		m2 += delta * (x - mean)
	}
	if s.Count == 0 {
		s.Min, s.Max = 0, 0
		return s
	}
	s.Mean = mean
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	s.Q25 = quantileSorted(cp, 0.25)
	s.Q50 = quantileSorted(cp, 0.50)
	s.Q75 = quantileSorted(cp, 0.75)
	return s
}

// Pearson computes the correlation coefficient over paired samples where
// both sides are present (ok[i] true). Degenerate pairs (fewer than two
// points or zero variance) report ok=false.
func Pearson(x, y []float64, present []bool) (float64, bool) {
	var n, sumX, sumY, sumXX, sumYY, sumXY float64
	for i := range x {
		if present != nil && !present[i] {
			continue
		}
		n++
		sumX += x[i]
		sumY += y[i]
		sumXX += x[i] * x[i]
		sumYY += y[i] * y[i]
		sumXY += x[i] * y[i]
	}
	if n < 2 {
		return 0, false
	}
	denom := math.Sqrt((n*sumXX - sumX*sumX) * (n*sumYY - sumY*sumY))
	if denom == 0 {
		return 0, false
	}
	r := (n*sumXY - sumX*sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(x float64) float64 { return math.Round(x*10) / 10 }

// Round3 rounds to three decimal places, half away from zero.
func Round3(x float64) float64 { return math.Round(x*1000) / 1000 }
