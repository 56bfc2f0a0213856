// Package sample synthesizes deterministic demonstration datasets per chart type.
package sample

import (
	"math/rand"
	"strconv"
	"time"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
)

// DefaultSeed makes repeated sample charts identical, which chart replay relies on
const DefaultSeed int64 = 42

const (
	scatterPoints   = 30
	histogramPoints = 200
	heatmapSize     = 10
	linePoints      = 12
)

// Synthesize builds the sample dataset for t. The same type and seed always yield
// identical values. Unknown types get the bar dataset.
func Synthesize(t chart.Type, seed int64) *dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))

	var ds *dataset.Dataset
	switch t {
	case chart.Line:
		ds = lineData(rng)
	case chart.Scatter:
		ds = scatterData(rng)
	case chart.Pie:
		ds = pieData()
	case chart.Histogram:
		ds = histogramData(rng)
	case chart.Heatmap:
		ds = heatmapData(rng)
	default:
		ds = barData(rng)
	}
	ds.Name = "sample"
	ds.Synthetic = true
	return ds
}

// intn returns a uniform integer in [lo, hi)
func intn(rng *rand.Rand, lo, hi int) float64 {
	return float64(lo + rng.Intn(hi-lo))
}

func lineData(rng *rand.Rand) *dataset.Dataset {
	dates := make([]time.Time, linePoints)
	values := make([]float64, linePoints)
	for i := range dates {
		// month end: day zero of the following month
		dates[i] = time.Date(2024, time.Month(i+2), 0, 0, 0, 0, 0, time.UTC)
		values[i] = intn(rng, 50, 200)
	}
	return dataset.New("",
		dataset.TimeColumn("Date", dates),
		dataset.NumericColumn("Value", values),
	)
}

func scatterData(rng *rand.Rand) *dataset.Dataset {
	x := make([]float64, scatterPoints)
	y := make([]float64, scatterPoints)
	cats := make([]string, scatterPoints)
	for i := range x {
		x[i] = intn(rng, 1, 100)
	}
	for i := range y {
		y[i] = 2*x[i] + intn(rng, -20, 20)
	}
	choices := []string{"A", "B", "C"}
	for i := range cats {
		cats[i] = choices[rng.Intn(len(choices))]
	}
	return dataset.New("",
		dataset.NumericColumn("X", x),
		dataset.NumericColumn("Y", y),
		dataset.StringColumn("Category", cats),
	)
}

func pieData() *dataset.Dataset {
	return dataset.New("",
		dataset.StringColumn("Category", []string{"Product A", "Product B", "Product C", "Product D"}),
		dataset.NumericColumn("Value", []float64{30, 25, 20, 25}),
	)
}

func histogramData(rng *rand.Rand) *dataset.Dataset {
	values := make([]float64, histogramPoints)
	for i := range values {
		values[i] = rng.NormFloat64()*15 + 50
	}
	return dataset.New("", dataset.NumericColumn("Values", values))
}

func heatmapData(rng *rand.Rand) *dataset.Dataset {
	cols := make([]dataset.Column, heatmapSize)
	for c := range cols {
		cols[c] = dataset.NumericColumn(strconv.Itoa(c), make([]float64, heatmapSize))
	}
	// row-major fill, matching a 10x10 matrix drawn row by row
	for r := 0; r < heatmapSize; r++ {
		for c := 0; c < heatmapSize; c++ {
			cols[c].Values[r] = rng.Float64()
		}
	}
	return dataset.New("", cols...)
}

func barData(rng *rand.Rand) *dataset.Dataset {
	quarters := []string{"Q1", "Q2", "Q3", "Q4"}
	sales := make([]float64, len(quarters))
	for i := range sales {
		sales[i] = intn(rng, 20, 100)
	}
	return dataset.New("",
		dataset.StringColumn("Quarter", quarters),
		dataset.NumericColumn("Sales", sales),
	)
}
