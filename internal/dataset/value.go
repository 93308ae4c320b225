package dataset

import (
	"strconv"
	"strings"
)

// Value is a single cell of a dataset. The zero Value is an empty string
// cell; Absent marks a cell whose column did not exist in the source row.
type Value struct {
	raw    string
	absent bool
}

// Absent is the marker stored for columns a source row never had. It is
// distinct from an empty cell so later type coercion cannot confuse the two.
var Absent = Value{absent: true}

// String creates a Value from a raw cell string.
func String(s string) Value {
	return Value{raw: s}
}

// Raw returns the cell contents. Absent values return the empty string.
func (v Value) Raw() string {
	return v.raw
}

// IsAbsent reports whether the cell is the absent marker.
func (v Value) IsAbsent() bool {
	return v.absent
}

// IsEmpty reports whether the cell is absent or contains only whitespace.
func (v Value) IsEmpty() bool {
	return v.absent || strings.TrimSpace(v.raw) == ""
}

// Float parses the cell as a float64. The second return is false for
// absent, empty, or non-numeric cells.
func (v Value) Float() (float64, bool) {
	if v.IsEmpty() {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.raw), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int parses the cell as an int. The second return is false for absent,
// empty, or non-numeric cells.
func (v Value) Int() (int, bool) {
	if v.IsEmpty() {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.raw))
	if err != nil {
		// Geotek software sometimes writes integral values as floats.
		f, ferr := strconv.ParseFloat(strings.TrimSpace(v.raw), 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return n, true
}

// Strings converts a raw record into a slice of Values.
func Strings(cells []string) []Value {
	values := make([]Value, len(cells))
	for i, c := range cells {
		values[i] = String(c)
	}
	return values
}
