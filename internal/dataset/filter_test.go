package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFilterFixture(t *testing.T) *Dataset {
	t.Helper()
	d := New(NewSchema())
	require.NoError(t, d.AppendTable(
		[]string{"Section Depth", "Magnetic Susceptibility"},
		[][]Value{
			Strings([]string{"1.0", "12.5"}),
			Strings([]string{"2.0", "-9999"}),
			Strings([]string{"3.0", "-49.9"}),
			Strings([]string{"4.0", ""}),
			Strings([]string{"5.0", "n/a"}),
		},
	))
	return d
}

func TestFilter_MinimumThreshold(t *testing.T) {
	d := buildFilterFixture(t)

	f := NewFilter()
	f.Set("Magnetic Susceptibility", Minimum(-50))

	replaced := f.Apply(d)
	assert.Equal(t, 1, replaced)

	pos, ok := d.Schema().Lookup("Magnetic Susceptibility")
	require.True(t, ok)

	assert.Equal(t, "12.5", d.Cell(0, pos).Raw())
	assert.True(t, d.Cell(1, pos).IsAbsent(), "sentinel low must become Absent")
	assert.Equal(t, "-49.9", d.Cell(2, pos).Raw(), "values at or above threshold stay")
	assert.False(t, d.Cell(3, pos).IsAbsent(), "empty cells are not invalidated")
	assert.Equal(t, "n/a", d.Cell(4, pos).Raw(), "non-numeric cells pass through")

	// Filtering never alters row structure.
	assert.Equal(t, 5, d.Len())
}

func TestFilter_Idempotent(t *testing.T) {
	d := buildFilterFixture(t)

	f := NewFilter()
	f.Set("Magnetic Susceptibility", Minimum(-50))

	first := f.Apply(d)
	assert.Equal(t, 1, first)

	second := f.Apply(d)
	assert.Zero(t, second, "re-applying the same filter must change nothing")
}

func TestFilter_UnknownColumnIsNoop(t *testing.T) {
	d := buildFilterFixture(t)

	f := NewFilter()
	f.Set("Impedance", Minimum(0))

	assert.Zero(t, f.Apply(d))
}

func TestFilter_DefaultAcceptsEverything(t *testing.T) {
	d := buildFilterFixture(t)
	before := d.Records()

	assert.Zero(t, NewFilter().Apply(d))
	assert.Equal(t, before, d.Records())
}
