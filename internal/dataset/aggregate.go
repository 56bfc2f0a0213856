package dataset

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroupSum sums the value column for each distinct key of the by column.
// The result has one row per key, sorted by key, and keeps the by column's kind.
// Rows whose value is not numeric contribute nothing to their group.
func GroupSum(d *Dataset, by, value string) (*Dataset, error) {
	keyCol, ok := d.Column(by)
	if !ok {
		return nil, fmt.Errorf("group column %q not found", by)
	}
	valCol, ok := d.Column(value)
	if !ok {
		return nil, fmt.Errorf("value column %q not found", value)
	}

	sums := make(map[string]float64)
	firsts := make(map[string]any)
	for i, k := range keyCol.Values {
		if k == nil {
			continue
		}
		key := Format(k)
		if _, seen := firsts[key]; !seen {
			firsts[key] = k
			sums[key] = 0
		}
		if i < len(valCol.Values) {
			if f, ok := Float(valCol.Values[i]); ok {
				sums[key] += f
			}
		}
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sortKeys(keys, firsts)

	groups := Column{Name: by, Kind: keyCol.Kind, Values: make([]any, len(keys))}
	totals := Column{Name: value, Kind: Numeric, Values: make([]any, len(keys))}
	for i, k := range keys {
		groups.Values[i] = firsts[k]
		totals.Values[i] = sums[k]
	}

	return &Dataset{Name: d.Name, Synthetic: d.Synthetic, Columns: []Column{groups, totals}}, nil
}

// sortKeys orders numeric keys by value ahead of every other key, which sort
// by their formatted text
func sortKeys(keys []string, firsts map[string]any) {
	sort.Slice(keys, func(i, j int) bool {
		fa, aNum := Float(firsts[keys[i]])
		fb, bNum := Float(firsts[keys[j]])
		switch {
		case aNum && bNum:
			if fa != fb {
				return fa < fb
			}
		case aNum != bNum:
			return aNum
		}
		return strings.Compare(keys[i], keys[j]) < 0
	})
}

// ColumnStats holds descriptive statistics of a numeric column
type ColumnStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summary describes the shape and quality of a dataset
type Summary struct {
	Rows          int                    `json:"rows"`
	Columns       int                    `json:"columns"`
	Numeric       int                    `json:"numeric_columns"`
	Categorical   int                    `json:"categorical_columns"`
	NullCounts    map[string]int         `json:"null_counts"`
	DuplicateRows int                    `json:"duplicate_rows"`
	Stats         map[string]ColumnStats `json:"stats"`
}

// Describe computes the dataset summary shown next to uploaded data
func Describe(d *Dataset) Summary {
	schema := d.Schema()
	s := Summary{
		Rows:        d.Rows(),
		Columns:     len(d.Columns),
		Numeric:     len(schema.Numeric),
		Categorical: len(schema.NonNumeric()),
		NullCounts:  make(map[string]int, len(d.Columns)),
		Stats:       make(map[string]ColumnStats),
	}

	for _, c := range d.Columns {
		nulls := 0
		for _, v := range c.Values {
			if v == nil {
				nulls++
			}
		}
		nulls += s.Rows - len(c.Values)
		s.NullCounts[c.Name] = nulls

		if c.Kind != Numeric {
			continue
		}
		vals := c.Floats()
		if len(vals) == 0 {
			continue
		}
		mean, std := stat.Mean(vals, nil), 0.0
		if len(vals) > 1 {
			std = stat.StdDev(vals, nil)
		}
		s.Stats[c.Name] = ColumnStats{
			Mean: mean,
			Std:  std,
			Min:  floats.Min(vals),
			Max:  floats.Max(vals),
		}
	}

	seen := make(map[string]struct{}, s.Rows)
	for i := 0; i < s.Rows; i++ {
		var b strings.Builder
		for _, c := range d.Columns {
			if i < len(c.Values) {
				b.WriteString(Format(c.Values[i]))
			}
			b.WriteByte(0x1f)
		}
		key := b.String()
		if _, dup := seen[key]; dup {
			s.DuplicateRows++
			continue
		}
		seen[key] = struct{}{}
	}

	return s
}
