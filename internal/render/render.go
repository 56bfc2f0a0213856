// Package render draws resolved chart specs as standalone interactive HTML pages.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
)

// DefaultBins is the histogram bin count
const DefaultBins = 10

var palettes = map[string][]string{
	"plotly":  {"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A", "#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52"},
	"viridis": {"#440154", "#482878", "#3e4989", "#31688e", "#26828e", "#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725"},
	"pastel":  {"#66c5cc", "#f6cf71", "#f89c74", "#dcb0f2", "#87c55f", "#9eb9f3", "#fe88b1", "#c9db74", "#8be0a4", "#b497e7"},
}

// heatmap gradient, low to high
var heatColors = []string{"#0d0887", "#7e03a8", "#cc4778", "#f89540", "#f0f921"}

// Renderer turns chart specs into HTML. The zero value is usable.
type Renderer struct {
	// Bins is the histogram bin count; zero means DefaultBins
	Bins int
	// AssetsHost overrides where the echarts scripts are loaded from
	AssetsHost string
}

// New returns a renderer with default settings
func New() *Renderer {
	return &Renderer{Bins: DefaultBins}
}

type page interface {
	Render(w io.Writer) error
}

// Render writes spec drawn from ds as an HTML page to w
func (r *Renderer) Render(w io.Writer, spec chart.Spec, ds *dataset.Dataset) error {
	if ds == nil {
		return fmt.Errorf("render %s: no dataset", spec.Type)
	}
	if err := chart.Validate(spec, ds); err != nil {
		return fmt.Errorf("render %s: %w", spec.Type, err)
	}

	var p page
	switch spec.Type {
	case chart.Line:
		p = r.line(spec, ds)
	case chart.Scatter:
		p = r.scatter(spec, ds)
	case chart.Pie:
		p = r.pie(spec, ds)
	case chart.Histogram:
		p = r.histogram(spec, ds)
	case chart.Heatmap:
		p = r.heatmap(spec, ds)
	case chart.Box:
		p = r.box(spec, ds)
	default:
		p = r.bar(spec, ds)
	}

	if err := p.Render(w); err != nil {
		return fmt.Errorf("render %s: %w", spec.Type, err)
	}
	return nil
}

// RenderFile writes the page into dir and returns its path
func (r *Renderer) RenderFile(dir string, spec chart.Spec, ds *dataset.Dataset) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s-%s.html", spec.Type, uuid.NewString()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create chart file: %w", err)
	}

	if err := r.Render(f, spec, ds); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write chart file: %w", err)
	}
	return path, nil
}

func (r *Renderer) globals(spec chart.Spec) []charts.GlobalOpts {
	st := spec.Style
	init := opts.Initialization{
		PageTitle:       spec.Title,
		Width:           cssSize(st.Width),
		Height:          cssSize(strconv.Itoa(st.Height)),
		BackgroundColor: st.Background,
	}
	if r.AssetsHost != "" {
		init.AssetsHost = r.AssetsHost
	}

	palette, ok := palettes[strings.ToLower(st.ColorScheme)]
	if !ok {
		palette = palettes["plotly"]
	}

	return []charts.GlobalOpts{
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{
			Title: spec.Title,
			TitleStyle: &opts.TextStyle{
				FontSize:   st.TitleFontSize,
				FontFamily: st.FontFamily,
			},
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(st.ShowLegend),
			Top:       "bottom",
			TextStyle: &opts.TextStyle{FontSize: st.FontSize, FontFamily: st.FontFamily},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithColorsOpts(opts.Colors(palette)),
	}
}

// cssSize appends px to bare numbers
func cssSize(s string) string {
	if s == "" {
		return ""
	}
	if _, err := strconv.Atoi(s); err == nil {
		return s + "px"
	}
	return s
}

func column(ds *dataset.Dataset, name string) *dataset.Column {
	c, ok := ds.Column(name)
	if !ok {
		return &dataset.Column{Name: name}
	}
	return c
}

func valueAt(c *dataset.Column, i int) any {
	if i >= len(c.Values) {
		return nil
	}
	if f, ok := dataset.Float(c.Values[i]); ok {
		return f
	}
	return nil
}

func (r *Renderer) bar(spec chart.Spec, ds *dataset.Dataset) page {
	x, y := column(ds, spec.X), column(ds, spec.Y)
	data := make([]opts.BarData, len(x.Values))
	for i := range x.Values {
		data[i] = opts.BarData{Value: valueAt(y, i)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globals(spec)...)
	bar.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: spec.X}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.Y}),
	)
	bar.SetXAxis(x.Labels()).AddSeries(spec.Y, data)
	return bar
}

func (r *Renderer) line(spec chart.Spec, ds *dataset.Dataset) page {
	x, y := column(ds, spec.X), column(ds, spec.Y)
	data := make([]opts.LineData, len(x.Values))
	for i := range x.Values {
		data[i] = opts.LineData{Value: valueAt(y, i)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(r.globals(spec)...)
	line.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: spec.X}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.Y}),
	)
	line.SetXAxis(x.Labels()).AddSeries(spec.Y, data)
	return line
}

// scatter draws one series per distinct color value, in first-seen order
func (r *Renderer) scatter(spec chart.Spec, ds *dataset.Dataset) page {
	x, y := column(ds, spec.X), column(ds, spec.Y)

	var groups []string
	points := make(map[string][]opts.ScatterData)
	for i := range x.Values {
		xv, yv := valueAt(x, i), valueAt(y, i)
		if xv == nil || yv == nil {
			continue
		}
		key := spec.Y
		if spec.Color != "" {
			key = dataset.Format(column(ds, spec.Color).Values[i])
		}
		if _, ok := points[key]; !ok {
			groups = append(groups, key)
		}
		points[key] = append(points[key], opts.ScatterData{Value: []any{xv, yv}, SymbolSize: 10})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(r.globals(spec)...)
	scatter.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: spec.X, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.Y, Type: "value"}),
	)
	for _, g := range groups {
		scatter.AddSeries(g, points[g])
	}
	return scatter
}

func (r *Renderer) pie(spec chart.Spec, ds *dataset.Dataset) page {
	names, values := column(ds, spec.X), column(ds, spec.Y)
	labels := names.Labels()
	data := make([]opts.PieData, 0, len(labels))
	for i, name := range labels {
		v := valueAt(values, i)
		if v == nil {
			continue
		}
		data = append(data, opts.PieData{Name: name, Value: v})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(r.globals(spec)...)
	pie.AddSeries(spec.Y, data)
	return pie
}

func (r *Renderer) histogram(spec chart.Spec, ds *dataset.Dataset) page {
	n := r.Bins
	if n <= 0 {
		n = DefaultBins
	}
	labels, counts := Bins(column(ds, spec.X).Floats(), n)
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		data[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globals(spec)...)
	bar.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Name: spec.X}),
		charts.WithYAxisOpts(opts.YAxis{Name: "count"}),
	)
	bar.SetXAxis(labels).AddSeries(spec.X, data)
	return bar
}

// heatmap draws the Fields columns as a matrix with one row per dataset row
func (r *Renderer) heatmap(spec chart.Spec, ds *dataset.Dataset) page {
	fields := spec.Fields
	if len(fields) == 0 {
		fields = ds.Schema().Numeric
	}

	rows := make([]string, ds.Rows())
	for i := range rows {
		rows[i] = strconv.Itoa(i)
	}

	var data []opts.HeatMapData
	lo, hi := 0.0, 0.0
	first := true
	for xi, name := range fields {
		c := column(ds, name)
		for yi := range c.Values {
			v, ok := dataset.Float(c.Values[yi])
			if !ok {
				continue
			}
			if first || v < lo {
				lo = v
			}
			if first || v > hi {
				hi = v
			}
			first = false
			data = append(data, opts.HeatMapData{Value: [3]interface{}{xi, yi, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(r.globals(spec)...)
	hm.SetGlobalOptions(
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: fields}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: rows}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        float32(lo),
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: heatColors},
		}),
	)
	hm.SetXAxis(fields).AddSeries(spec.Title, data)
	return hm
}

// box draws one box per x group when some group repeats, else a single box of y
func (r *Renderer) box(spec chart.Spec, ds *dataset.Dataset) page {
	y := column(ds, spec.Y)

	var groups []string
	values := make(map[string][]float64)
	grouped := false
	if spec.X != "" {
		x := column(ds, spec.X)
		for i := range x.Values {
			v := valueAt(y, i)
			if v == nil {
				continue
			}
			key := dataset.Format(x.Values[i])
			if _, ok := values[key]; ok {
				grouped = true
			} else {
				groups = append(groups, key)
			}
			values[key] = append(values[key], v.(float64))
		}
	}
	if !grouped {
		groups = []string{spec.Y}
		values = map[string][]float64{spec.Y: y.Floats()}
	}

	data := make([]opts.BoxPlotData, 0, len(groups))
	for _, g := range groups {
		stats := BoxStats(values[g])
		data = append(data, opts.BoxPlotData{Name: g, Value: stats[:]})
	}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(r.globals(spec)...)
	bp.SetGlobalOptions(charts.WithYAxisOpts(opts.YAxis{Name: spec.Y}))
	bp.SetXAxis(groups).AddSeries(spec.Y, data)
	return bp
}
