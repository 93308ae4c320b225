package dataset

import (
	"strings"
)

// Schema is the unified column set accumulated across the input files of one
// aggregation run. Columns keep their first-seen spelling and first-seen
// relative order; identity is decided on a trimmed, case-folded form so
// headers differing only by whitespace or case collapse to one column.
//
// Internally every column has a stable id assigned in discovery order.
// Display order is tracked separately so a column inserted mid-run (see
// AnchorLast) never shifts the storage position of rows appended earlier.
type Schema struct {
	names []string       // display spelling, indexed by id
	order []int          // ids in display order
	index map[string]int // normalized name -> id

	// anchor, when set, pins the named column to the end of the schema:
	// columns discovered later are inserted in front of it. The Geotek
	// MSCL-S output keeps Temp as the trailing column this way.
	anchor string

	// distinct lists normalized names the caller requires to stay separate
	// columns. Adding a header that folds onto a distinct name with a
	// different spelling is a configuration error.
	distinct map[string]bool
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// Normalize returns the identity form of a column name: surrounding
// whitespace trimmed and case folded. Display names are not affected.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AnchorLast pins the named column to the last schema position. Columns
// added after the anchor is present are inserted before it.
func (s *Schema) AnchorLast(name string) {
	s.anchor = Normalize(name)
}

// ClearAnchor releases the anchored column so later additions append at
// the true end of the schema. The aggregator uses this to place provenance
// columns behind the anchored measurement column.
func (s *Schema) ClearAnchor() {
	s.anchor = ""
}

// RequireDistinct marks column names that must never be merged by
// normalization. Used only under strict configurations.
func (s *Schema) RequireDistinct(names ...string) {
	if s.distinct == nil {
		s.distinct = make(map[string]bool)
	}
	for _, n := range names {
		s.distinct[Normalize(n)] = true
	}
}

// addID records a column if unseen and returns its stable id.
func (s *Schema) addID(name string) (int, error) {
	key := Normalize(name)
	display := strings.TrimSpace(name)
	if id, ok := s.index[key]; ok {
		if s.distinct[key] && s.names[id] != display {
			return 0, NewSchemaConflictError(s.names[id], display)
		}
		return id, nil
	}

	id := len(s.names)
	s.names = append(s.names, display)
	s.index[key] = id

	if s.anchor != "" && s.anchor != key {
		if aid, ok := s.index[s.anchor]; ok {
			// Insert before the anchored column in display order.
			for pos, ordered := range s.order {
				if ordered == aid {
					s.order = append(s.order[:pos], append([]int{id}, s.order[pos:]...)...)
					return id, nil
				}
			}
		}
	}
	s.order = append(s.order, id)
	return id, nil
}

// Add records a column if it has not been seen, returning its display
// position. A schema conflict is only possible when the column was
// registered via RequireDistinct under a different spelling.
func (s *Schema) Add(name string) (int, error) {
	id, err := s.addID(name)
	if err != nil {
		return 0, err
	}
	return s.position(id), nil
}

// AddAll records every header in order and returns their stable ids. Used
// by Dataset to map incoming cells to storage positions.
func (s *Schema) AddAll(headers []string) ([]int, error) {
	ids := make([]int, len(headers))
	for i, h := range headers {
		id, err := s.addID(h)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// Lookup returns the display position of a column by any spelling that
// normalizes to it.
func (s *Schema) Lookup(name string) (int, bool) {
	id, ok := s.index[Normalize(name)]
	if !ok {
		return 0, false
	}
	return s.position(id), true
}

// position maps a stable id to its current display position.
func (s *Schema) position(id int) int {
	for pos, ordered := range s.order {
		if ordered == id {
			return pos
		}
	}
	return -1
}

// idAt maps a display position to the stable storage id.
func (s *Schema) idAt(pos int) int {
	return s.order[pos]
}

// Columns returns the column names in display order, first-seen spellings.
func (s *Schema) Columns() []string {
	out := make([]string, len(s.order))
	for pos, id := range s.order {
		out[pos] = s.names[id]
	}
	return out
}

// Len returns the number of columns.
func (s *Schema) Len() int {
	return len(s.order)
}
