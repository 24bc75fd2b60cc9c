package stats

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestQuantile(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		q    float64
		want float64
		ok   bool
	}{
		{"empty", nil, 0.5, 0, false},
		{"single", []float64{7}, 0.75, 7, true},
		{"median even", []float64{1, 2, 3, 4}, 0.5, 2.5, true},
		{"interpolated p75", []float64{1, 2, 3, 4}, 0.75, 3.25, true},
		{"interpolated p25", []float64{0.25, 1, 1, 1}, 0.25, 0.8125, true},
		{"unsorted input", []float64{4, 1, 3, 2}, 0.75, 3.25, true},
		{"q below range", []float64{5, 1}, -1, 1, true},
		{"q above range", []float64{5, 1}, 2, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Quantile(tt.vals, tt.q)
			if ok != tt.ok || !almostEqual(got, tt.want) {
				t.Fatalf("Quantile(%v, %v) = %v, %v; want %v, %v", tt.vals, tt.q, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	vals := []float64{3, 1, 2}
	if _, ok := Quantile(vals, 0.5); !ok {
		t.Fatal("Quantile not ok")
	}
	if vals[0] != 3 || vals[1] != 1 || vals[2] != 2 {
		t.Fatalf("input mutated: %v", vals)
	}
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4})
	if s.Count != 4 {
		t.Fatalf("count = %d", s.Count)
	}
	if !almostEqual(s.Mean, 2.5) {
		t.Fatalf("mean = %v", s.Mean)
	}
	// sample std of 1..4
	if !almostEqual(s.Std, math.Sqrt(5.0/3.0)) {
		t.Fatalf("std = %v", s.Std)
	}
	if s.Min != 1 || s.Max != 4 {
		t.Fatalf("min/max = %v/%v", s.Min, s.Max)
	}
	if !almostEqual(s.Q25, 1.75) || !almostEqual(s.Q50, 2.5) || !almostEqual(s.Q75, 3.25) {
		t.Fatalf("quartiles = %v %v %v", s.Q25, s.Q50, s.Q75)
	}
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)
	if s.Count != 0 || s.Min != 0 || s.Max != 0 || s.Mean != 0 || s.Std != 0 {
		t.Fatalf("describe(nil) = %+v", s)
	}
}

func TestPearson(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4, 6, 8}
	r, ok := Pearson(x, y, nil)
	if !ok || !almostEqual(r, 1) {
		t.Fatalf("perfect correlation: r=%v ok=%v", r, ok)
	}

	inv := []float64{8, 6, 4, 2}
	r, ok = Pearson(x, inv, nil)
	if !ok || !almostEqual(r, -1) {
		t.Fatalf("inverse correlation: r=%v ok=%v", r, ok)
	}

	flat := []float64{5, 5, 5, 5}
	if _, ok := Pearson(x, flat, nil); ok {
		t.Fatal("zero variance should not produce a coefficient")
	}

	// mask excludes the pair that would break the linear fit
	x2 := []float64{1, 2, 100, 3}
	y2 := []float64{2, 4, -7, 6}
	present := []bool{true, true, false, true}
	r, ok = Pearson(x2, y2, present)
	if !ok || !almostEqual(r, 1) {
		t.Fatalf("masked correlation: r=%v ok=%v", r, ok)
	}

	if _, ok := Pearson([]float64{1}, []float64{2}, nil); ok {
		t.Fatal("single point should not produce a coefficient")
	}
}

func TestRounding(t *testing.T) {
	if got := Round1(194.9501); got != 195.0 {
		t.Fatalf("Round1 = %v", got)
	}
	if got := Round1(10.04); got != 10.0 {
		t.Fatalf("Round1 = %v", got)
	}
	if got := Round3(0.33333); got != 0.333 {
		t.Fatalf("Round3 = %v", got)
	}
	if got := Round3(0.0005); got != 0.001 {
		t.Fatalf("Round3 half away = %v", got)
	}
}
