package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_AppendTableBackfillsAbsent(t *testing.T) {
	d := New(NewSchema())

	require.NoError(t, d.AppendTable(
		[]string{"A", "B"},
		[][]Value{Strings([]string{"1", "2"}), Strings([]string{"3", "4"})},
	))
	require.NoError(t, d.AppendTable(
		[]string{"B", "C"},
		[][]Value{Strings([]string{"5", "6"})},
	))

	assert.Equal(t, []string{"A", "B", "C"}, d.Headers())
	assert.Equal(t, 3, d.Len())

	// Earlier rows gain Absent (not empty string) in the new column.
	first := d.Row(0)
	assert.Equal(t, "1", first[0].Raw())
	assert.True(t, first[2].IsAbsent())

	// Later rows have Absent for the column they never carried.
	last := d.Row(2)
	assert.True(t, last[0].IsAbsent())
	assert.Equal(t, "5", last[1].Raw())
	assert.Equal(t, "6", last[2].Raw())
}

func TestDataset_RowOrderIsAppendOrder(t *testing.T) {
	d := New(NewSchema())
	require.NoError(t, d.AppendTable([]string{"Depth"}, [][]Value{
		{String("1")}, {String("2")}, {String("3")},
	}))
	require.NoError(t, d.AppendTable([]string{"Depth"}, [][]Value{
		{String("1")}, {String("2")},
	}))

	var depths []string
	for _, row := range d.Rows() {
		depths = append(depths, row[0].Raw())
	}
	assert.Equal(t, []string{"1", "2", "3", "1", "2"}, depths)
}

func TestDataset_AnchorInsertionDoesNotMisalignEarlierRows(t *testing.T) {
	s := NewSchema()
	s.AnchorLast("Temp")
	d := New(s)

	require.NoError(t, d.AppendTable(
		[]string{"SECT NUM", "Temp"},
		[][]Value{Strings([]string{"1", "21.5"})},
	))
	require.NoError(t, d.AppendTable(
		[]string{"SECT NUM", "MS1", "Temp"},
		[][]Value{Strings([]string{"2", "9.9", "22.0"})},
	))

	assert.Equal(t, []string{"SECT NUM", "MS1", "Temp"}, d.Headers())

	first := d.Row(0)
	assert.Equal(t, "1", first[0].Raw())
	assert.True(t, first[1].IsAbsent(), "inserted column must backfill Absent")
	assert.Equal(t, "21.5", first[2].Raw(), "Temp value must stay under Temp")
}

func TestDataset_AddColumn(t *testing.T) {
	d := New(NewSchema())
	require.NoError(t, d.AppendTable([]string{"A"}, [][]Value{
		{String("1")}, {String("2")},
	}))

	pos, err := d.AddColumn("Core ID", []Value{String("DCH-1A"), String("DCH-2A")})
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "DCH-1A", d.Cell(0, pos).Raw())
	assert.Equal(t, "DCH-2A", d.Cell(1, pos).Raw())
}

func TestDataset_RecordsRenderAbsentAsEmpty(t *testing.T) {
	d := New(NewSchema())
	require.NoError(t, d.AppendTable([]string{"A"}, [][]Value{{String("x")}}))
	require.NoError(t, d.AppendTable([]string{"B"}, [][]Value{{String("y")}}))

	records := d.Records()
	assert.Equal(t, [][]string{{"x", ""}, {"", "y"}}, records)
}

func TestDataset_RowCountEqualsSumOfInputs(t *testing.T) {
	d := New(NewSchema())
	sizes := []int{3, 0, 5, 2}
	total := 0
	for _, n := range sizes {
		rows := make([][]Value, n)
		for i := range rows {
			rows[i] = Strings([]string{"v"})
		}
		require.NoError(t, d.AppendTable([]string{"Col"}, rows))
		total += n
	}
	assert.Equal(t, total, d.Len())
}
