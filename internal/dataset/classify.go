package dataset

import "time"

// Classifier decides whether a column's values belong to a kind.
// Classifiers are tried in order; the first one accepting every non-nil value wins.
type Classifier interface {
	Kind() Kind
	Accepts(v any) bool
}

// NumericClassifier accepts numeric cells
type NumericClassifier struct{}

func (NumericClassifier) Kind() Kind { return Numeric }

func (NumericClassifier) Accepts(v any) bool {
	_, ok := Float(v)
	return ok
}

// TemporalClassifier accepts time.Time cells
type TemporalClassifier struct{}

func (TemporalClassifier) Kind() Kind { return Temporal }

func (TemporalClassifier) Accepts(v any) bool {
	_, ok := v.(time.Time)
	return ok
}

// DefaultClassifiers returns the classifiers used by the loaders
func DefaultClassifiers() []Classifier {
	return []Classifier{NumericClassifier{}, TemporalClassifier{}}
}

// Classify infers the kind of a column from the value types it holds.
// A column with no non-nil values, or one no classifier accepts, is categorical.
func Classify(values []any, classifiers ...Classifier) Kind {
	if len(classifiers) == 0 {
		classifiers = DefaultClassifiers()
	}

	seen := false
	for _, v := range values {
		if v != nil {
			seen = true
			break
		}
	}
	if !seen {
		return Categorical
	}

	for _, c := range classifiers {
		if acceptsAll(c, values) {
			return c.Kind()
		}
	}
	return Categorical
}

func acceptsAll(c Classifier, values []any) bool {
	for _, v := range values {
		if v == nil {
			continue
		}
		if !c.Accepts(v) {
			return false
		}
	}
	return true
}

// Reclassify recomputes every column kind with the given classifiers
func (d *Dataset) Reclassify(classifiers ...Classifier) {
	for i := range d.Columns {
		d.Columns[i].Kind = Classify(d.Columns[i].Values, classifiers...)
	}
}

// Schema partitions column names by kind, preserving column order
type Schema struct {
	Numeric     []string `json:"numeric"`
	Categorical []string `json:"categorical"`
	Temporal    []string `json:"temporal"`
	order       []string
	kinds       map[string]Kind
}

// Schema returns the column partition of the dataset
func (d *Dataset) Schema() Schema {
	s := Schema{kinds: make(map[string]Kind, len(d.Columns))}
	for _, c := range d.Columns {
		s.order = append(s.order, c.Name)
		s.kinds[c.Name] = c.Kind
		switch c.Kind {
		case Numeric:
			s.Numeric = append(s.Numeric, c.Name)
		case Temporal:
			s.Temporal = append(s.Temporal, c.Name)
		default:
			s.Categorical = append(s.Categorical, c.Name)
		}
	}
	return s
}

// NonNumeric returns categorical and temporal columns in column order.
// Upload defaults treat both as grouping candidates.
func (s Schema) NonNumeric() []string {
	var out []string
	for _, name := range s.order {
		if s.kinds[name] != Numeric {
			out = append(out, name)
		}
	}
	return out
}

// NewSchema builds a schema from explicit name/kind pairs, in order.
// Useful for callers that only know column kinds.
func NewSchema(cols ...Column) Schema {
	return (&Dataset{Columns: cols}).Schema()
}
