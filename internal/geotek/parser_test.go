package geotek

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func TestParseDelimited_MSCLLayout(t *testing.T) {
	content := "some machine banner line\n" +
		"SECT NUM\tSECT DEPTH\tDen1\n" +
		"\tcm\tg/cm3\n" + // units row, dropped
		"1\t2.0\t1.95\n" +
		"1\t4.0\t1.97\n"
	path := writeFile(t, t.TempDir(), "core.out", []byte(content))

	table, err := ParseDelimited(path, ParseSpec{Delimiter: '\t', SkipRows: 1, HeaderRows: 1, DropRows: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"SECT NUM", "SECT DEPTH", "Den1"}, table.Headers)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "1.95", table.Rows[0][2].Raw())
}

func TestParseDelimited_TwoRowHeader(t *testing.T) {
	content := "junk\n" +
		"junk\n" +
		"Section,Section Depth,CIE XYZ Colour Space,,\n" +
		",,,Y,Z\n" +
		"1,2.0,31.1,32.9,30.2\n"
	path := writeFile(t, t.TempDir(), "LAKE_XYZ.csv", []byte(content))

	table, err := ParseDelimited(path, ParseSpec{Delimiter: ',', SkipRows: 2, HeaderRows: 2})
	require.NoError(t, err)

	assert.Equal(t, []string{"Section", "Section Depth", "CIE XYZ Colour Space", "Y", "Z"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "30.2", table.Rows[0][4].Raw())
}

func TestParseDelimited_RaggedRows(t *testing.T) {
	content := "A\tB\tC\n" +
		"1\t2\t3\textra\n" + // over-long row truncated
		"4\t5\n" + // short row padded with Absent
		"\t\t\n" + // fully empty row dropped
		"6\t7\t8\n"
	path := writeFile(t, t.TempDir(), "data.out", []byte(content))

	table, err := ParseDelimited(path, ParseSpec{Delimiter: '\t', HeaderRows: 1})
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Len(t, table.Rows[0], 3)
	assert.True(t, table.Rows[1][2].IsAbsent())
	assert.Equal(t, "6", table.Rows[2][0].Raw())
}

func TestParseDelimited_Latin1(t *testing.T) {
	// "Den1 g/cm³" with the superscript three as the Latin-1 byte 0xB3.
	content := []byte("Den1\xb3\n1.95\n")
	path := writeFile(t, t.TempDir(), "raw.raw", content)

	table, err := ParseDelimited(path, ParseSpec{Delimiter: '\t', HeaderRows: 1})
	require.NoError(t, err)
	assert.Equal(t, "Den1³", table.Headers[0])
}

func TestParseDelimited_UTF8BOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Depth,Core\n1.0,A\n")...)
	path := writeFile(t, t.TempDir(), "named.csv", content)

	table, err := ParseDelimited(path, ParseSpec{Delimiter: ',', HeaderRows: 1})
	require.NoError(t, err)
	assert.Equal(t, "Depth", table.Headers[0], "BOM must not leak into the first header")
}

func TestParseDelimited_MissingHeader(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.out", []byte(""))

	_, err := ParseDelimited(path, ParseSpec{Delimiter: '\t', HeaderRows: 1})
	assert.Error(t, err)
}

func TestParseWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MAL05-1A-xrf.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Section Depth", "Al", "Si"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"1.0", "1200", "5400"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"2.0", "1190", "5380"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := ParseWorkbook(path, ParseSpec{HeaderRows: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"Section Depth", "Al", "Si"}, table.Headers)
	assert.Len(t, table.Rows, 2)
}

func TestParseWorkbook_NotAWorkbook(t *testing.T) {
	path := writeFile(t, t.TempDir(), "fake.xlsx", []byte("not a zip"))

	_, err := ParseWorkbook(path, ParseSpec{HeaderRows: 1})
	assert.Error(t, err)
}
