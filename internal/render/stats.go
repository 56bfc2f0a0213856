package render

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Bins splits values into n equal-width bins spanning their range and returns
// a label and count per bin. The last bin includes the maximum.
func Bins(values []float64, n int) ([]string, []float64) {
	if len(values) == 0 || n <= 0 {
		return nil, nil
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)

	lo, hi := x[0], x[len(x)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := make([]float64, n+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram bins are half open
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, x, nil)
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.1f-%.1f", dividers[i], dividers[i+1])
	}
	return labels, counts
}

// BoxStats returns min, lower quartile, median, upper quartile and max
func BoxStats(values []float64) [5]float64 {
	var out [5]float64
	if len(values) == 0 {
		return out
	}

	x := append([]float64(nil), values...)
	sort.Float64s(x)

	out[0] = x[0]
	out[1] = stat.Quantile(0.25, stat.Empirical, x, nil)
	out[2] = stat.Quantile(0.5, stat.Empirical, x, nil)
	out[3] = stat.Quantile(0.75, stat.Empirical, x, nil)
	out[4] = x[len(x)-1]
	return out
}
