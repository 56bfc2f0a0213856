// Package chart resolves chart types against datasets into renderable specifications.
package chart

import "strings"

// Type is one of the supported chart forms
type Type string

const (
	Bar       Type = "bar"
	Line      Type = "line"
	Scatter   Type = "scatter"
	Pie       Type = "pie"
	Histogram Type = "histogram"
	Heatmap   Type = "heatmap"
	Box       Type = "box"
)

// Keywords pairs a chart type with its trigger phrases
type Keywords struct {
	Type    Type
	Phrases []string
}

// Priority is the declared detection order. The first type with a matching phrase wins,
// so overlapping phrases resolve by position here and never by specificity.
var Priority = []Keywords{
	{Bar, []string{"bar", "column", "bars"}},
	{Line, []string{"line", "trend", "time series", "over time"}},
	{Scatter, []string{"scatter", "correlation", "relationship", "vs", "versus"}},
	{Pie, []string{"pie", "proportion", "percentage", "share"}},
	{Histogram, []string{"histogram", "distribution", "frequency"}},
	{Heatmap, []string{"heatmap", "correlation matrix", "intensity"}},
	{Box, []string{"box plot", "quartiles", "outliers"}},
}

// Types returns every chart type in priority order
func Types() []Type {
	out := make([]Type, len(Priority))
	for i, k := range Priority {
		out[i] = k.Type
	}
	return out
}

// Parse maps a name to a chart type. Unknown names fall back to Bar.
func Parse(name string) Type {
	t, ok := Lookup(name)
	if !ok {
		return Bar
	}
	return t
}

// Lookup maps a name to a chart type and reports whether it is known
func Lookup(name string) (Type, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, k := range Priority {
		if string(k.Type) == name {
			return k.Type, true
		}
	}
	return Bar, false
}

// Title returns the title-case name, e.g. "Scatter"
func (t Type) Title() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (t Type) String() string {
	return string(t)
}
