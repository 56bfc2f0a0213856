package render

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
	"VizChat/internal/sample"
)

func TestRenderEveryType(t *testing.T) {
	r := New()
	for _, ct := range chart.Types() {
		ds := sample.Synthesize(ct, sample.DefaultSeed)
		res, err := chart.Resolve(ct, ds, "Quarterly Overview "+ct.Title())
		if err != nil {
			t.Fatalf("%s: %v", ct, err)
		}

		var buf bytes.Buffer
		if err := r.Render(&buf, res.Spec, res.Data); err != nil {
			t.Fatalf("%s: %v", ct, err)
		}
		html := buf.String()
		if !strings.Contains(html, "<html") {
			t.Errorf("%s: output is not an HTML page", ct)
		}
		if !strings.Contains(html, "Quarterly Overview "+ct.Title()) {
			t.Errorf("%s: title missing from output", ct)
		}
		if !strings.Contains(html, "echarts") {
			t.Errorf("%s: echarts script missing", ct)
		}
	}
}

func TestRenderUploadedPie(t *testing.T) {
	ds := dataset.New("upload.csv",
		dataset.StringColumn("Region", []string{"North", "South", "North"}),
		dataset.NumericColumn("Sales", []float64{1, 2, 3}),
	)
	res, err := chart.Resolve(chart.Pie, ds, "Sales Share")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := New().Render(&buf, res.Spec, res.Data); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"North", "South"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("slice %q missing", want)
		}
	}
}

func TestRenderRejectsUnknownColumns(t *testing.T) {
	ds := sample.Synthesize(chart.Bar, sample.DefaultSeed)
	spec := chart.Spec{Type: chart.Bar, X: "Quarter", Y: "Profit", Title: "x", Style: chart.DefaultStyle(chart.Bar)}
	if err := New().Render(&bytes.Buffer{}, spec, ds); err == nil {
		t.Error("expected an error for a missing column")
	}
	if err := New().Render(&bytes.Buffer{}, spec, nil); err == nil {
		t.Error("expected an error for a nil dataset")
	}
}

func TestRenderFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	ds := sample.Synthesize(chart.Line, sample.DefaultSeed)
	res, err := chart.Resolve(chart.Line, ds, "")
	if err != nil {
		t.Fatal(err)
	}

	path, err := New().RenderFile(dir, res.Spec, res.Data)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "line-") || filepath.Ext(path) != ".html" {
		t.Errorf("unexpected path %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}

	bad := res.Spec
	bad.Y = "missing"
	if _, err := New().RenderFile(dir, bad, res.Data); err == nil {
		t.Error("expected an error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("failed render left %d files, want 1", len(entries))
	}
}

func TestBins(t *testing.T) {
	labels, counts := Bins([]float64{3, 1, 2, 1}, 2)
	if !reflect.DeepEqual(counts, []float64{2, 2}) {
		t.Errorf("counts = %v", counts)
	}
	if !reflect.DeepEqual(labels, []string{"1.0-2.0", "2.0-3.0"}) {
		t.Errorf("labels = %v", labels)
	}

	_, counts = Bins([]float64{5, 5}, 2)
	if counts[0]+counts[1] != 2 {
		t.Errorf("constant values lost: %v", counts)
	}

	if l, c := Bins(nil, 10); l != nil || c != nil {
		t.Error("empty input should produce no bins")
	}

	hist := sample.Synthesize(chart.Histogram, sample.DefaultSeed)
	col, _ := hist.Column("Values")
	_, counts = Bins(col.Floats(), DefaultBins)
	total := 0.0
	for _, c := range counts {
		total += c
	}
	if len(counts) != DefaultBins || total != 200 {
		t.Errorf("got %d bins holding %v values", len(counts), total)
	}
}

func TestBoxStats(t *testing.T) {
	got := BoxStats([]float64{5, 3, 1, 4, 2})
	if got != [5]float64{1, 2, 3, 4, 5} {
		t.Errorf("BoxStats = %v", got)
	}
	if BoxStats(nil) != [5]float64{} {
		t.Error("empty input should yield zeros")
	}
}

func TestCSSSize(t *testing.T) {
	tests := map[string]string{"500": "500px", "100%": "100%", "": "", "40em": "40em"}
	for in, want := range tests {
		if got := cssSize(in); got != want {
			t.Errorf("cssSize(%q) = %q, want %q", in, got, want)
		}
	}
}
