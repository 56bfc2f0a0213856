package dataset

import (
	"fmt"
	"time"
)

// Kind is the inferred value kind of a column
type Kind int

const (
	Categorical Kind = iota
	Numeric
	Temporal
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Temporal:
		return "temporal"
	default:
		return "categorical"
	}
}

// MarshalText lets kinds render as names in JSON payloads
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Column is a named, typed column. Values hold float64, string, time.Time or nil.
type Column struct {
	Name   string `json:"name"`
	Kind   Kind   `json:"kind"`
	Values []any  `json:"values"`
}

// Dataset is an ordered table of columns. Column order is significant.
type Dataset struct {
	Name      string   `json:"name"`
	Synthetic bool     `json:"synthetic"`
	Columns   []Column `json:"columns"`
}

// New creates a dataset from columns in the given order
func New(name string, cols ...Column) *Dataset {
	return &Dataset{Name: name, Columns: cols}
}

// NumericColumn builds a numeric column from float values
func NumericColumn(name string, vals []float64) Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		values[i] = v
	}
	return Column{Name: name, Kind: Numeric, Values: values}
}

// StringColumn builds a categorical column
func StringColumn(name string, vals []string) Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		values[i] = v
	}
	return Column{Name: name, Kind: Categorical, Values: values}
}

// TimeColumn builds a temporal column
func TimeColumn(name string, vals []time.Time) Column {
	values := make([]any, len(vals))
	for i, v := range vals {
		values[i] = v
	}
	return Column{Name: name, Kind: Temporal, Values: values}
}

// Rows returns the row count, taken from the longest column
func (d *Dataset) Rows() int {
	n := 0
	for _, c := range d.Columns {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	return n
}

// Names returns column names in order
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name
func (d *Dataset) Column(name string) (*Column, bool) {
	for i := range d.Columns {
		if d.Columns[i].Name == name {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// Has reports whether a column with the given name exists
func (d *Dataset) Has(name string) bool {
	_, ok := d.Column(name)
	return ok
}

// Select returns a new dataset holding only the named columns, in the given order
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	out := &Dataset{Name: d.Name, Synthetic: d.Synthetic}
	for _, n := range names {
		c, ok := d.Column(n)
		if !ok {
			return nil, fmt.Errorf("column %q not found", n)
		}
		out.Columns = append(out.Columns, *c)
	}
	return out, nil
}

// Floats returns the numeric values of a column, skipping values that are not numbers
func (c *Column) Floats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := Float(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// Labels formats every value of a column as a string, keeping nil as ""
func (c *Column) Labels() []string {
	out := make([]string, len(c.Values))
	for i, v := range c.Values {
		out[i] = Format(v)
	}
	return out
}

// Float converts a numeric cell to float64
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Format renders a cell for labels and group keys
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339)
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}
