package dataset

// Predicate decides whether a cell value is valid for its column.
type Predicate func(Value) bool

// Filter maps column names to validity predicates. Columns without a
// predicate accept everything. Invalid cells are replaced with the absent
// marker; rows are never removed, so filtering cannot change row counts or
// order, and re-applying a filter is a no-op.
type Filter struct {
	preds map[string]Predicate
}

// NewFilter returns a filter with no predicates.
func NewFilter() *Filter {
	return &Filter{preds: make(map[string]Predicate)}
}

// Set installs a predicate for a column. Matching uses the same
// normalization as schema reconciliation.
func (f *Filter) Set(column string, p Predicate) {
	f.preds[Normalize(column)] = p
}

// Minimum returns a predicate rejecting numeric values strictly below the
// threshold. Non-numeric and absent cells pass through untouched; the
// filter only invalidates readings the instrument flagged with sentinel
// lows (the split-core logger emits large negatives for bad magnetic
// susceptibility points).
func Minimum(threshold float64) Predicate {
	return func(v Value) bool {
		fv, ok := v.Float()
		if !ok {
			return true
		}
		return fv >= threshold
	}
}

// Apply runs every configured predicate over the dataset and replaces
// failing cells with Absent. It returns the number of cells invalidated.
func (f *Filter) Apply(d *Dataset) int {
	replaced := 0
	for column, pred := range f.preds {
		pos, ok := d.Schema().Lookup(column)
		if !ok {
			continue
		}
		for i := 0; i < d.Len(); i++ {
			v := d.Cell(i, pos)
			if v.IsAbsent() {
				continue
			}
			if !pred(v) {
				d.SetCell(i, pos, Absent)
				replaced++
			}
		}
	}
	return replaced
}
