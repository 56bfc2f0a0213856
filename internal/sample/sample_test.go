package sample

import (
	"reflect"
	"testing"
	"time"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
)

func TestSynthesizeIsDeterministic(t *testing.T) {
	for _, ct := range chart.Types() {
		a := Synthesize(ct, DefaultSeed)
		b := Synthesize(ct, DefaultSeed)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%s: two syntheses with the same seed differ", ct)
		}
	}
}

func TestSynthesizeShapes(t *testing.T) {
	tests := []struct {
		ct      chart.Type
		columns []string
		rows    int
	}{
		{chart.Bar, []string{"Quarter", "Sales"}, 4},
		{chart.Box, []string{"Quarter", "Sales"}, 4},
		{chart.Line, []string{"Date", "Value"}, 12},
		{chart.Scatter, []string{"X", "Y", "Category"}, 30},
		{chart.Pie, []string{"Category", "Value"}, 4},
		{chart.Histogram, []string{"Values"}, 200},
		{chart.Heatmap, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, 10},
		{chart.Type("area"), []string{"Quarter", "Sales"}, 4},
	}
	for _, tt := range tests {
		ds := Synthesize(tt.ct, DefaultSeed)
		if !ds.Synthetic {
			t.Errorf("%s: dataset not marked synthetic", tt.ct)
		}
		if got := ds.Names(); !reflect.DeepEqual(got, tt.columns) {
			t.Errorf("%s: columns = %v, want %v", tt.ct, got, tt.columns)
		}
		if got := ds.Rows(); got != tt.rows {
			t.Errorf("%s: rows = %d, want %d", tt.ct, got, tt.rows)
		}
	}
}

func TestSynthesizeRanges(t *testing.T) {
	bar := Synthesize(chart.Bar, DefaultSeed)
	sales, _ := bar.Column("Sales")
	for _, v := range sales.Floats() {
		if v < 20 || v >= 100 || v != float64(int(v)) {
			t.Errorf("sales value %v outside integer range [20,100)", v)
		}
	}

	line := Synthesize(chart.Line, DefaultSeed)
	dates, _ := line.Column("Date")
	if dates.Kind != dataset.Temporal {
		t.Errorf("Date kind = %s, want temporal", dates.Kind)
	}
	first := dates.Values[0].(time.Time)
	last := dates.Values[11].(time.Time)
	if first.Format("2006-01-02") != "2024-01-31" || last.Format("2006-01-02") != "2024-12-31" {
		t.Errorf("dates span %s..%s, want month ends of 2024", first, last)
	}
	values, _ := line.Column("Value")
	for _, v := range values.Floats() {
		if v < 50 || v >= 200 {
			t.Errorf("line value %v outside [50,200)", v)
		}
	}

	scatter := Synthesize(chart.Scatter, DefaultSeed)
	xs, _ := scatter.Column("X")
	ys, _ := scatter.Column("Y")
	cats, _ := scatter.Column("Category")
	for i, x := range xs.Floats() {
		if x < 1 || x >= 100 {
			t.Errorf("x %v outside [1,100)", x)
		}
		noise := ys.Floats()[i] - 2*x
		if noise < -20 || noise >= 20 {
			t.Errorf("y noise %v outside [-20,20)", noise)
		}
		switch cats.Values[i] {
		case "A", "B", "C":
		default:
			t.Errorf("unexpected category %v", cats.Values[i])
		}
	}

	heat := Synthesize(chart.Heatmap, DefaultSeed)
	for _, c := range heat.Columns {
		for _, v := range c.Floats() {
			if v < 0 || v >= 1 {
				t.Errorf("heatmap cell %v outside [0,1)", v)
			}
		}
	}
}

func TestSynthesizePieIsFixed(t *testing.T) {
	a := Synthesize(chart.Pie, 1)
	b := Synthesize(chart.Pie, 99)
	if !reflect.DeepEqual(a, b) {
		t.Error("pie sample must not depend on the seed")
	}
	values, _ := a.Column("Value")
	if !reflect.DeepEqual(values.Floats(), []float64{30, 25, 20, 25}) {
		t.Errorf("pie values = %v", values.Floats())
	}
}

func TestSynthesizeSeedChangesData(t *testing.T) {
	a := Synthesize(chart.Histogram, DefaultSeed)
	b := Synthesize(chart.Histogram, DefaultSeed+1)
	if reflect.DeepEqual(a, b) {
		t.Error("different seeds produced identical histogram samples")
	}
}
