package chart

import "VizChat/internal/dataset"

// Requirement counts the column kinds a chart type needs
type Requirement struct {
	Numeric     int `json:"numeric"`
	Categorical int `json:"categorical"`
}

// RequirementFor returns the minimum columns needed to draw t from an uploaded dataset
func RequirementFor(t Type) Requirement {
	switch t {
	case Bar, Line, Pie:
		return Requirement{Numeric: 1, Categorical: 1}
	case Scatter:
		return Requirement{Numeric: 2}
	default:
		return Requirement{Numeric: 1}
	}
}

// Has counts the column kinds present in a schema. Temporal columns count as categorical.
func Has(schema dataset.Schema) Requirement {
	return Requirement{Numeric: len(schema.Numeric), Categorical: len(schema.NonNumeric())}
}

// Available reports whether the schema satisfies the requirement of t
func Available(t Type, schema dataset.Schema) bool {
	need, have := RequirementFor(t), Has(schema)
	return have.Numeric >= need.Numeric && have.Categorical >= need.Categorical
}

// QuickChart is one quick-chart option offered for an uploaded dataset
type QuickChart struct {
	Type    Type        `json:"type"`
	Enabled bool        `json:"enabled"`
	Need    Requirement `json:"need"`
}

// QuickCharts lists every chart type in priority order with its availability
func QuickCharts(schema dataset.Schema) []QuickChart {
	out := make([]QuickChart, 0, len(Priority))
	for _, t := range Types() {
		out = append(out, QuickChart{
			Type:    t,
			Enabled: Available(t, schema),
			Need:    RequirementFor(t),
		})
	}
	return out
}
