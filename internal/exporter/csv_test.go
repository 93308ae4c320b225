package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "MSCL_DCH.csv")

	w := NewCSVWriter(nil)
	err := w.Write(path, WriteOptions{
		Headers:   []string{"SectionID", "Section Depth", "Gamma Density"},
		Units:     []string{"", "cm", "gm/cc"},
		Records:   [][]string{{"1", "2.0", "1.95"}, {"1", "4.0", ""}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3], "BOM prefix")
	assert.Equal(t,
		"SectionID,Section Depth,Gamma Density\n,cm,gm/cc\n1,2.0,1.95\n1,4.0,\n",
		string(raw[3:]))
}

func TestCSVWriter_WriteNoUnits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xrf.csv")

	w := NewCSVWriter(nil)
	require.NoError(t, w.Write(path, WriteOptions{
		Headers: []string{"Section Depth", "Al"},
		Records: [][]string{{"1.0", "1200"}},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Section Depth,Al\n1.0,1200\n", string(raw))
}

func TestReadCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agg.csv")

	w := NewCSVWriter(nil)
	require.NoError(t, w.Write(path, WriteOptions{
		Headers:   []string{"SectionID", "Section Depth"},
		Units:     []string{"", "cm"},
		Records:   [][]string{{"1", "2.0"}, {"1", "4.0"}},
		BOMPrefix: true,
	}))

	result, err := ReadCSV(path, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "cm"}, result.Units)
	assert.Equal(t, []string{"SectionID", "Section Depth"}, result.Dataset.Headers())
	require.Equal(t, 2, result.Dataset.Len())
	assert.Equal(t, [][]string{{"1", "2.0"}, {"1", "4.0"}}, result.Dataset.Records())
}

func TestReadCSV_RaggedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ragged.csv")
	content := "A,B,C\n1,2\n3,4,5,6\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	result, err := ReadCSV(path, false)
	require.NoError(t, err)

	records := result.Dataset.Records()
	assert.Equal(t, [][]string{{"1", "2", ""}, {"3", "4", "5"}}, records)
}

func TestReadCSV_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.csv")
	require.NoError(t, os.WriteFile(empty, []byte(""), 0644))
	_, err := ReadCSV(empty, false)
	assert.ErrorContains(t, err, "file is empty")

	headerOnly := filepath.Join(dir, "headeronly.csv")
	require.NoError(t, os.WriteFile(headerOnly, []byte("A,B\n"), 0644))
	_, err = ReadCSV(headerOnly, true)
	assert.ErrorContains(t, err, "units row is missing")

	_, err = ReadCSV(filepath.Join(dir, "nope.csv"), false)
	assert.Error(t, err)
}
