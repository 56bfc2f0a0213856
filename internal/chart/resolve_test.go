package chart_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
	"VizChat/internal/intent"
	"VizChat/internal/sample"
)

func uploaded(cols ...dataset.Column) *dataset.Dataset {
	return dataset.New("upload.csv", cols...)
}

func TestResolveSyntheticPositional(t *testing.T) {
	tests := []struct {
		ct     chart.Type
		x, y   string
		color  string
		fields int
	}{
		{chart.Bar, "Quarter", "Sales", "", 0},
		{chart.Line, "Date", "Value", "", 0},
		{chart.Scatter, "X", "Y", "Category", 0},
		{chart.Pie, "Category", "Value", "", 0},
		{chart.Histogram, "Values", "", "", 0},
		{chart.Heatmap, "", "", "", 10},
		{chart.Box, "Quarter", "Sales", "", 0},
	}
	for _, tt := range tests {
		ds := sample.Synthesize(tt.ct, sample.DefaultSeed)
		res, err := chart.Resolve(tt.ct, ds, "")
		if err != nil {
			t.Fatalf("%s: %v", tt.ct, err)
		}
		s := res.Spec
		if s.X != tt.x || s.Y != tt.y || s.Color != tt.color || len(s.Fields) != tt.fields {
			t.Errorf("%s: got x=%q y=%q color=%q fields=%d", tt.ct, s.X, s.Y, s.Color, len(s.Fields))
		}
		if res.Data != ds {
			t.Errorf("%s: synthetic data should be rendered as is", tt.ct)
		}
		if err := chart.Validate(s, res.Data); err != nil {
			t.Errorf("%s: %v", tt.ct, err)
		}
	}
}

func TestResolveDefaultTitleAndStyle(t *testing.T) {
	ds := sample.Synthesize(chart.Scatter, sample.DefaultSeed)
	res, err := chart.Resolve(chart.Scatter, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Spec.Title != "Scatter Chart" {
		t.Errorf("title = %q", res.Spec.Title)
	}
	if !res.Spec.Style.ShowLegend || res.Spec.Style.Height != 500 || res.Spec.Style.Background != "white" {
		t.Errorf("unexpected style %+v", res.Spec.Style)
	}

	bar, err := chart.Resolve(chart.Bar, sample.Synthesize(chart.Bar, 1), "Quarterly")
	if err != nil {
		t.Fatal(err)
	}
	if bar.Spec.Title != "Quarterly" {
		t.Errorf("explicit title replaced: %q", bar.Spec.Title)
	}
	if bar.Spec.Style.ShowLegend {
		t.Error("bar charts hide the legend by default")
	}
}

func TestResolveUnknownTypeFallsBackToBar(t *testing.T) {
	res, err := chart.Resolve(chart.Type("area"), sample.Synthesize(chart.Bar, 1), "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Spec.Type != chart.Bar {
		t.Errorf("type = %s, want bar", res.Spec.Type)
	}
}

func TestResolveUploadedByKind(t *testing.T) {
	ds := uploaded(
		dataset.NumericColumn("Revenue", []float64{10, 20, 30}),
		dataset.StringColumn("Region", []string{"N", "S", "N"}),
		dataset.NumericColumn("Units", []float64{1, 2, 3}),
	)

	bar, err := chart.Resolve(chart.Bar, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if bar.Spec.X != "Region" || bar.Spec.Y != "Revenue" {
		t.Errorf("bar bound %q x %q, want Region x Revenue", bar.Spec.X, bar.Spec.Y)
	}

	scatter, err := chart.Resolve(chart.Scatter, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if scatter.Spec.X != "Revenue" || scatter.Spec.Y != "Units" || scatter.Spec.Color != "Region" {
		t.Errorf("scatter bound %+v", scatter.Spec)
	}

	heat, err := chart.Resolve(chart.Heatmap, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(heat.Data.Names(), []string{"Revenue", "Units"}) {
		t.Errorf("heatmap data columns = %v", heat.Data.Names())
	}

	box, err := chart.Resolve(chart.Box, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if box.Spec.X != "Region" || box.Spec.Y != "Revenue" {
		t.Errorf("box bound %+v", box.Spec)
	}
}

func TestResolvePieAggregates(t *testing.T) {
	ds := uploaded(
		dataset.StringColumn("Cat", []string{"A", "A", "B"}),
		dataset.NumericColumn("Amount", []float64{10, 5, 7}),
	)
	res, err := chart.Resolve(chart.Pie, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Data.Rows() != 2 {
		t.Fatalf("pie rows = %d, want 2", res.Data.Rows())
	}
	cats, _ := res.Data.Column("Cat")
	amounts, _ := res.Data.Column("Amount")
	if !reflect.DeepEqual(cats.Values, []any{"A", "B"}) {
		t.Errorf("categories = %v", cats.Values)
	}
	if !reflect.DeepEqual(amounts.Floats(), []float64{15, 7}) {
		t.Errorf("amounts = %v", amounts.Floats())
	}
	if res.Spec.X != "Cat" || res.Spec.Y != "Amount" {
		t.Errorf("pie bound %+v", res.Spec)
	}
	if ds.Rows() != 3 {
		t.Error("input dataset must not be modified")
	}
}

func TestResolveScatterUnavailable(t *testing.T) {
	ds := uploaded(
		dataset.StringColumn("Name", []string{"a", "b"}),
		dataset.NumericColumn("Score", []float64{1, 2}),
	)
	_, err := chart.Resolve(chart.Scatter, ds, "")
	if !errors.Is(err, chart.ErrInsufficientColumns) {
		t.Fatalf("err = %v, want ErrInsufficientColumns", err)
	}
	var ue *chart.UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("err %T is not an UnavailableError", err)
	}
	if ue.Type != chart.Scatter || ue.Need.Numeric != 2 || ue.Have.Numeric != 1 {
		t.Errorf("unexpected error detail %+v", ue)
	}
	if !strings.Contains(err.Error(), "scatter") {
		t.Errorf("error message %q", err)
	}
}

func TestResolveNarrowSyntheticFallsBack(t *testing.T) {
	ds := dataset.New("sample", dataset.NumericColumn("Values", []float64{1, 2, 3}))
	ds.Synthetic = true

	if _, err := chart.Resolve(chart.Bar, ds, ""); !errors.Is(err, chart.ErrInsufficientColumns) {
		t.Errorf("bar on a single numeric column: err = %v", err)
	}

	res, err := chart.Resolve(chart.Histogram, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Spec.X != "Values" {
		t.Errorf("histogram x = %q", res.Spec.X)
	}
}

func TestResolveNilDataset(t *testing.T) {
	if _, err := chart.Resolve(chart.Line, nil, ""); !errors.Is(err, chart.ErrInsufficientColumns) {
		t.Errorf("err = %v", err)
	}
}

func TestResolveOptions(t *testing.T) {
	overrides := &chart.StyleOverrides{}
	bg := "#111"
	overrides.Background = &bg
	res, err := chart.Resolve(chart.Pie, sample.Synthesize(chart.Pie, 1), "",
		chart.WithLegend(false), chart.WithHeight(320), chart.WithOverrides(overrides), chart.WithColorScheme("viridis"))
	if err != nil {
		t.Fatal(err)
	}
	st := res.Spec.Style
	if st.ShowLegend || st.Height != 320 || st.Background != "#111" || st.ColorScheme != "viridis" {
		t.Errorf("options not applied: %+v", st)
	}
	if st.FontFamily != "Segoe UI, Arial, sans-serif" {
		t.Errorf("unset override changed font: %q", st.FontFamily)
	}
}

func TestEndToEndScatterRequest(t *testing.T) {
	text := "Show me a scatter plot"
	if !intent.IsVisualizationRequest(text) {
		t.Fatal("expected a visualization request")
	}
	ct := intent.DetectChartType(text)
	if ct != chart.Scatter {
		t.Fatalf("chart type = %s", ct)
	}
	ds := sample.Synthesize(ct, sample.DefaultSeed)
	if ds.Rows() != 30 || len(ds.Columns) != 3 {
		t.Fatalf("sample shape = %dx%d", ds.Rows(), len(ds.Columns))
	}
	res, err := chart.Resolve(ct, ds, "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Spec.X != "X" || res.Spec.Y != "Y" || res.Spec.Color != "Category" {
		t.Errorf("spec = %+v", res.Spec)
	}
	gotType, rows := res.Entry()
	if gotType != chart.Scatter || rows != 30 {
		t.Errorf("entry = %s/%d", gotType, rows)
	}
}

func TestQuickTitle(t *testing.T) {
	tests := []struct {
		spec chart.Spec
		want string
	}{
		{chart.Spec{Type: chart.Bar, X: "Region", Y: "Sales"}, "Sales by Region"},
		{chart.Spec{Type: chart.Line, X: "Month", Y: "Sales"}, "Sales Trend"},
		{chart.Spec{Type: chart.Scatter, X: "Price", Y: "Qty"}, "Price vs Qty"},
		{chart.Spec{Type: chart.Pie, X: "Region", Y: "Sales"}, "Sales Distribution by Region"},
		{chart.Spec{Type: chart.Heatmap}, "Heatmap Chart"},
	}
	for _, tt := range tests {
		if got := chart.QuickTitle(tt.spec); got != tt.want {
			t.Errorf("QuickTitle(%s) = %q, want %q", tt.spec.Type, got, tt.want)
		}
	}
}
