package chart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Style holds presentation defaults. They are orthogonal to the chart type
// except for the legend, which is shown for scatter and pie only.
type Style struct {
	FontFamily    string `json:"font_family" yaml:"font_family"`
	FontSize      int    `json:"font_size" yaml:"font_size"`
	TitleFontSize int    `json:"title_font_size" yaml:"title_font_size"`
	Background    string `json:"background" yaml:"background"`
	ShowLegend    bool   `json:"show_legend" yaml:"show_legend"`
	Height        int    `json:"height" yaml:"height"`
	Width         string `json:"width" yaml:"width"`
	ColorScheme   string `json:"color_scheme" yaml:"color_scheme"`
}

// DefaultStyle returns the fixed presentation defaults for a chart type
func DefaultStyle(t Type) Style {
	return Style{
		FontFamily:    "Segoe UI, Arial, sans-serif",
		FontSize:      12,
		TitleFontSize: 16,
		Background:    "white",
		ShowLegend:    t == Scatter || t == Pie,
		Height:        500,
		Width:         "100%",
		ColorScheme:   "plotly",
	}
}

// StyleOverrides is the YAML shape of a style file. Unset fields keep the defaults.
type StyleOverrides struct {
	FontFamily    *string `yaml:"font_family"`
	FontSize      *int    `yaml:"font_size"`
	TitleFontSize *int    `yaml:"title_font_size"`
	Background    *string `yaml:"background"`
	ShowLegend    *bool   `yaml:"show_legend"`
	Height        *int    `yaml:"height"`
	Width         *string `yaml:"width"`
	ColorScheme   *string `yaml:"color_scheme"`
}

// LoadStyle reads style overrides from a YAML file
func LoadStyle(path string) (*StyleOverrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file: %w", err)
	}
	var o StyleOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to parse style file: %w", err)
	}
	return &o, nil
}

// Apply returns s with every set override applied
func (o *StyleOverrides) Apply(s Style) Style {
	if o == nil {
		return s
	}
	if o.FontFamily != nil {
		s.FontFamily = *o.FontFamily
	}
	if o.FontSize != nil {
		s.FontSize = *o.FontSize
	}
	if o.TitleFontSize != nil {
		s.TitleFontSize = *o.TitleFontSize
	}
	if o.Background != nil {
		s.Background = *o.Background
	}
	if o.ShowLegend != nil {
		s.ShowLegend = *o.ShowLegend
	}
	if o.Height != nil {
		s.Height = *o.Height
	}
	if o.Width != nil {
		s.Width = *o.Width
	}
	if o.ColorScheme != nil {
		s.ColorScheme = *o.ColorScheme
	}
	return s
}

// Option customizes a resolved spec
type Option func(*Spec)

// WithOverrides applies style overrides loaded from a file
func WithOverrides(o *StyleOverrides) Option {
	return func(s *Spec) {
		s.Style = o.Apply(s.Style)
	}
}

// WithLegend forces the legend on or off
func WithLegend(show bool) Option {
	return func(s *Spec) {
		s.Style.ShowLegend = show
	}
}

// WithHeight sets the chart height in pixels
func WithHeight(px int) Option {
	return func(s *Spec) {
		if px > 0 {
			s.Style.Height = px
		}
	}
}

// WithColorScheme selects a palette by name
func WithColorScheme(name string) Option {
	return func(s *Spec) {
		if name != "" {
			s.Style.ColorScheme = name
		}
	}
}
