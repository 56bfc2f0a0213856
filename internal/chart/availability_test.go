package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"VizChat/internal/dataset"
)

func TestQuickCharts(t *testing.T) {
	tests := []struct {
		name    string
		cols    []dataset.Column
		enabled map[Type]bool
	}{
		{
			name: "one numeric only",
			cols: []dataset.Column{dataset.NumericColumn("v", nil)},
			enabled: map[Type]bool{
				Bar: false, Line: false, Scatter: false, Pie: false,
				Histogram: true, Heatmap: true, Box: true,
			},
		},
		{
			name: "numeric and categorical",
			cols: []dataset.Column{dataset.StringColumn("k", nil), dataset.NumericColumn("v", nil)},
			enabled: map[Type]bool{
				Bar: true, Line: true, Scatter: false, Pie: true,
				Histogram: true, Heatmap: true, Box: true,
			},
		},
		{
			name: "temporal counts as categorical",
			cols: []dataset.Column{dataset.TimeColumn("d", []time.Time{}), dataset.NumericColumn("a", nil), dataset.NumericColumn("b", nil)},
			enabled: map[Type]bool{
				Bar: true, Line: true, Scatter: true, Pie: true,
				Histogram: true, Heatmap: true, Box: true,
			},
		},
		{
			name: "text only",
			cols: []dataset.Column{dataset.StringColumn("k", nil)},
			enabled: map[Type]bool{
				Bar: false, Line: false, Scatter: false, Pie: false,
				Histogram: false, Heatmap: false, Box: false,
			},
		},
	}

	for _, tt := range tests {
		quick := QuickCharts(dataset.NewSchema(tt.cols...))
		if len(quick) != len(Priority) {
			t.Fatalf("%s: %d quick charts", tt.name, len(quick))
		}
		for i, q := range quick {
			if q.Type != Priority[i].Type {
				t.Errorf("%s: position %d is %s", tt.name, i, q.Type)
			}
			if q.Enabled != tt.enabled[q.Type] {
				t.Errorf("%s: %s enabled = %v", tt.name, q.Type, q.Enabled)
			}
		}
	}
}

func TestParseAndLookup(t *testing.T) {
	if got := Parse(" Scatter "); got != Scatter {
		t.Errorf("Parse = %s", got)
	}
	if got := Parse("donut"); got != Bar {
		t.Errorf("unknown name should fall back to bar, got %s", got)
	}
	if _, ok := Lookup("donut"); ok {
		t.Error("Lookup reported an unknown type as known")
	}
	if Heatmap.Title() != "Heatmap" || Type("").Title() != "" {
		t.Error("Title() mismatch")
	}
}

func TestLoadStyle(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "style.yaml")
	if err := os.WriteFile(good, []byte("font_family: Inter\ncolor_scheme: viridis\n"), 0644); err != nil {
		t.Fatal(err)
	}
	o, err := LoadStyle(good)
	if err != nil {
		t.Fatal(err)
	}
	s := o.Apply(DefaultStyle(Pie))
	if s.FontFamily != "Inter" || s.ColorScheme != "viridis" || !s.ShowLegend || s.Height != 500 {
		t.Errorf("applied style = %+v", s)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("height: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadStyle(bad); err == nil {
		t.Error("expected a parse error")
	}

	var nilOverrides *StyleOverrides
	if got := nilOverrides.Apply(DefaultStyle(Bar)); got != DefaultStyle(Bar) {
		t.Error("nil overrides must leave the style unchanged")
	}
}
