package dataset

// UnassignedKey groups rows whose partition key cannot be derived. Keeping
// them in a named group means partitioning is always total: no row is
// dropped silently.
const UnassignedKey = "unassigned"

// KeyFunc derives a grouping key for one row. Returning the empty string
// sends the row to the unassigned group.
type KeyFunc func(headers []string, row []Value) string

// Group is one partition of a dataset, preserving the relative order of its
// rows.
type Group struct {
	Key  string
	Data *Dataset
}

// Partition splits the dataset into keyed groups. Every row lands in
// exactly one group; groups appear in first-seen key order and rows keep
// their original relative order within each group.
func Partition(d *Dataset, key KeyFunc) []Group {
	headers := d.Headers()

	var groups []Group
	byKey := make(map[string]int)

	for i := 0; i < d.Len(); i++ {
		row := d.Row(i)
		k := key(headers, row)
		if k == "" {
			k = UnassignedKey
		}

		gi, ok := byKey[k]
		if !ok {
			gi = len(groups)
			byKey[k] = gi
			sub := New(NewSchema())
			groups = append(groups, Group{Key: k, Data: sub})
		}
		// Rows are already projected onto the full schema, so appending
		// with the full header list keeps sub-dataset schemas identical.
		_ = groups[gi].Data.AppendTable(headers, [][]Value{row})
	}
	return groups
}
