package chart

import (
	"errors"
	"fmt"

	"VizChat/internal/dataset"
)

// ErrInsufficientColumns indicates a dataset lacks the column kinds a chart type needs
var ErrInsufficientColumns = errors.New("insufficient columns")

// UnavailableError reports a chart type that cannot be drawn from a dataset
type UnavailableError struct {
	Type Type
	Need Requirement
	Have Requirement
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s chart unavailable: needs %d numeric and %d categorical columns, dataset has %d and %d",
		e.Type, e.Need.Numeric, e.Need.Categorical, e.Have.Numeric, e.Have.Categorical)
}

func (e *UnavailableError) Unwrap() error {
	return ErrInsufficientColumns
}

// Spec binds a chart type to dataset columns plus presentation defaults.
// For pie charts X names the slices and Y holds their values.
type Spec struct {
	Type   Type     `json:"type"`
	X      string   `json:"x,omitempty"`
	Y      string   `json:"y,omitempty"`
	Color  string   `json:"color,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Title  string   `json:"title"`
	Style  Style    `json:"style"`
}

// Result is a resolved spec and the dataset it must be rendered against.
// Data is the input dataset, or a derived one for aggregated or filtered charts.
type Result struct {
	Spec Spec             `json:"spec"`
	Data *dataset.Dataset `json:"data"`
}

// Entry returns what a caller needs to log the chart in its history
func (r Result) Entry() (Type, int) {
	if r.Data == nil {
		return r.Spec.Type, 0
	}
	return r.Spec.Type, r.Data.Rows()
}

// DefaultTitle returns "<Type> Chart"
func DefaultTitle(t Type) string {
	return t.Title() + " Chart"
}

// Resolve produces a spec for t against ds. Synthetic datasets bind columns by
// position; uploaded datasets, and synthetic ones too narrow for positional binding,
// bind by column kind. When the dataset cannot support t an *UnavailableError is
// returned and no spec is produced.
func Resolve(t Type, ds *dataset.Dataset, title string, opts ...Option) (Result, error) {
	t, _ = Lookup(string(t))
	if ds == nil {
		ds = dataset.New("")
	}

	spec := Spec{Type: t, Title: title, Style: DefaultStyle(t)}
	if spec.Title == "" {
		spec.Title = DefaultTitle(t)
	}

	data := ds
	bound := ds.Synthetic && bindPositional(&spec, ds)
	if !bound {
		var err error
		data, err = bindByKind(&spec, ds)
		if err != nil {
			return Result{}, err
		}
	}

	for _, opt := range opts {
		opt(&spec)
	}

	if err := Validate(spec, data); err != nil {
		return Result{}, err
	}
	return Result{Spec: spec, Data: data}, nil
}

func bindPositional(spec *Spec, ds *dataset.Dataset) bool {
	names := ds.Names()
	switch spec.Type {
	case Histogram:
		if len(names) < 1 {
			return false
		}
		spec.X = names[0]
	case Heatmap:
		if len(names) < 1 {
			return false
		}
		spec.Fields = names
	case Scatter:
		if len(names) < 2 {
			return false
		}
		spec.X, spec.Y = names[0], names[1]
		if len(names) > 2 {
			spec.Color = names[2]
		}
	default:
		if len(names) < 2 {
			return false
		}
		spec.X, spec.Y = names[0], names[1]
	}
	return true
}

func bindByKind(spec *Spec, ds *dataset.Dataset) (*dataset.Dataset, error) {
	schema := ds.Schema()
	if !Available(spec.Type, schema) {
		return nil, &UnavailableError{Type: spec.Type, Need: RequirementFor(spec.Type), Have: Has(schema)}
	}

	num, cat := schema.Numeric, schema.NonNumeric()
	spec.X, spec.Y, spec.Color, spec.Fields = "", "", "", nil

	switch spec.Type {
	case Scatter:
		spec.X, spec.Y = num[0], num[1]
		if len(cat) > 0 {
			spec.Color = cat[0]
		}
	case Pie:
		spec.X, spec.Y = cat[0], num[0]
		grouped, err := dataset.GroupSum(ds, cat[0], num[0])
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate pie data: %w", err)
		}
		return grouped, nil
	case Histogram:
		spec.X = num[0]
	case Heatmap:
		spec.Fields = num
		if len(num) == len(ds.Columns) {
			return ds, nil
		}
		return ds.Select(num...)
	case Box:
		spec.Y = num[0]
		if len(cat) > 0 {
			spec.X = cat[0]
		}
	default:
		spec.X, spec.Y = cat[0], num[0]
	}
	return ds, nil
}

// Validate checks that every field a spec references exists in ds
func Validate(spec Spec, ds *dataset.Dataset) error {
	refs := append([]string{spec.X, spec.Y, spec.Color}, spec.Fields...)
	for _, name := range refs {
		if name == "" {
			continue
		}
		if ds == nil || !ds.Has(name) {
			return fmt.Errorf("%s chart references unknown column %q", spec.Type, name)
		}
	}
	return nil
}

// QuickTitle builds a descriptive title from the bound fields
func QuickTitle(spec Spec) string {
	switch spec.Type {
	case Bar:
		return fmt.Sprintf("%s by %s", spec.Y, spec.X)
	case Line:
		return fmt.Sprintf("%s Trend", spec.Y)
	case Scatter:
		return fmt.Sprintf("%s vs %s", spec.X, spec.Y)
	case Pie:
		return fmt.Sprintf("%s Distribution by %s", spec.Y, spec.X)
	case Histogram:
		return fmt.Sprintf("Distribution of %s", spec.X)
	case Box:
		return fmt.Sprintf("%s Spread", spec.Y)
	default:
		return DefaultTitle(spec.Type)
	}
}
