package core

import (
	"fmt"
	"math"
	"sort"
)

// oneMinusEpsilon is the largest float64 below 1
var oneMinusEpsilon = math.Nextafter(1, 0)

// DiscreteCDF samples indices proportionally to non-negative weights.
// The normalized table has len(weights)+1 entries, starts at 0 and ends at 1.
type DiscreteCDF struct {
	cdf   []float64
	total float64
}

// NewDiscreteCDF creates a CDF from weights.
// When every weight is zero the distribution falls back to uniform.
func NewDiscreteCDF(weights []float64) DiscreteCDF {
	cdf := make([]float64, len(weights)+1)
	total := 0.0
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) {
			panic(fmt.Sprintf("cdf weight %d must be non-negative, got %v", i, w))
		}
		total += w
		cdf[i+1] = total
	}

	n := len(weights)
	if n == 0 {
		return DiscreteCDF{cdf: cdf}
	}
	if total == 0 {
		// All weights are zero, use uniform distribution
		for i := range cdf {
			cdf[i] = float64(i) / float64(n)
		}
	} else {
		for i := range cdf {
			cdf[i] /= total
		}
	}
	cdf[n] = 1
	return DiscreteCDF{cdf: cdf, total: total}
}

// Len returns the number of entries
func (d DiscreteCDF) Len() int {
	return len(d.cdf) - 1
}

// Total returns the unnormalized sum of the weights
func (d DiscreteCDF) Total() float64 {
	return d.total
}

// PDF returns the probability of drawing index i
func (d DiscreteCDF) PDF(i int) float64 {
	if i < 0 || i >= d.Len() {
		return 0
	}
	return d.cdf[i+1] - d.cdf[i]
}

// Sample draws an index with s in [0,1) and returns it together with s remapped
// uniformly into [0,1) relative to the chosen entry, so the sample can be reused
func (d DiscreteCDF) Sample(s float64) (int, float64) {
	n := d.Len()
	i := sort.Search(n, func(i int) bool { return d.cdf[i+1] > s })
	if i >= n {
		i = n - 1
	}
	width := d.cdf[i+1] - d.cdf[i]
	remapped := 0.0
	if width > 0 {
		remapped = math.Min((s-d.cdf[i])/width, oneMinusEpsilon)
		remapped = math.Max(remapped, 0)
	}
	return i, remapped
}
