// Package intent decides whether free text asks for a chart and which one.
package intent

import (
	"math"
	"strings"

	"VizChat/internal/chart"
)

// Triggers are the phrases that mark a visualization request
var Triggers = []string{
	"chart", "graph", "plot", "visualize", "show me", "display",
	"histogram", "bar chart", "line chart", "scatter plot", "pie chart",
	"heatmap", "box plot", "area chart",
}

// DataKeywords mention data and raise the confidence of a request
var DataKeywords = []string{
	"data", "dataset", "table", "csv", "excel", "spreadsheet",
	"numbers", "statistics", "metrics", "values", "records",
}

// Intent is the classification of one user message
type Intent struct {
	IsRequest  bool       `json:"is_request"`
	ChartType  chart.Type `json:"chart_type"`
	Confidence float64    `json:"confidence"`
}

// IsVisualizationRequest reports whether text contains any trigger phrase
func IsVisualizationRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, t := range Triggers {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// DetectChartType returns the first type in chart.Priority with a phrase contained
// in text, or chart.Bar when nothing matches
func DetectChartType(text string) chart.Type {
	lower := strings.ToLower(text)
	for _, k := range chart.Priority {
		for _, phrase := range k.Phrases {
			if strings.Contains(lower, phrase) {
				return k.Type
			}
		}
	}
	return chart.Bar
}

// Classify runs both checks and scores how strongly the text asks for a chart
func Classify(text string) Intent {
	return Intent{
		IsRequest:  IsVisualizationRequest(text),
		ChartType:  DetectChartType(text),
		Confidence: Confidence(text),
	}
}

// Confidence scores 0.3 per trigger phrase, 0.2 per data keyword and 0.5 per
// chart type name, capped at 1
func Confidence(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	for _, t := range Triggers {
		if strings.Contains(lower, t) {
			score += 0.3
		}
	}
	for _, k := range DataKeywords {
		if strings.Contains(lower, k) {
			score += 0.2
		}
	}
	for _, t := range chart.Types() {
		if strings.Contains(lower, string(t)) {
			score += 0.5
		}
	}
	return math.Min(1.0, score)
}
