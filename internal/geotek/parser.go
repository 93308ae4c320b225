package geotek

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/laccore/data-aggregator-and-renamer/internal/dataset"
)

// Table is one parsed instrument file: a header row plus data rows, with
// the provenance needed to trace aggregated rows back to their origin.
type Table struct {
	Headers []string
	Rows    [][]dataset.Value
	Folder  string
	File    string
}

// ParseSpec controls how an instrument file's raw grid becomes a Table.
type ParseSpec struct {
	// Delimiter separates fields in text files (tab for MSCL-S, comma
	// for XYZ).
	Delimiter rune

	// SkipRows is the count of leading junk rows before the header.
	SkipRows int

	// HeaderRows is 1, or 2 for the XYZ layout where a blank primary
	// header cell falls back to the cell beneath it.
	HeaderRows int

	// DropRows is the count of rows discarded after the header (units
	// rows, and the extra off-by-one row of MSCL .raw files).
	DropRows int
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseDelimited reads a delimited Geotek text file. Files are decoded as
// Latin-1, the encoding the acquisition software writes, unless they start
// with a UTF-8 byte order mark.
func ParseDelimited(path string, spec ParseSpec) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var r io.Reader = br
	if peek, _ := br.Peek(len(utf8BOM)); bytes.Equal(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	} else {
		r = transform.NewReader(br, charmap.ISO8859_1.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.Comma = spec.Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = false

	grid, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read delimited data: %w", err)
	}
	return tableFromGrid(grid, spec)
}

// ParseWorkbook reads the first sheet of an Excel workbook, the format XRF
// scanner exports arrive in.
func ParseWorkbook(path string, spec ParseSpec) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return tableFromGrid(rows, spec)
}

// tableFromGrid applies the skip/header/drop layout to a raw grid and
// normalizes the data rows: fully empty rows removed, over-long rows
// truncated to the header width, short rows padded with the absent marker.
func tableFromGrid(grid [][]string, spec ParseSpec) (*Table, error) {
	if spec.SkipRows > 0 {
		if len(grid) < spec.SkipRows {
			return nil, fmt.Errorf("file has %d rows, expected at least %d leading rows", len(grid), spec.SkipRows)
		}
		grid = grid[spec.SkipRows:]
	}

	headerRows := spec.HeaderRows
	if headerRows <= 0 {
		headerRows = 1
	}
	if len(grid) < headerRows {
		return nil, fmt.Errorf("file has no header row")
	}

	headers := mergeHeaders(grid[:headerRows])
	if len(headers) == 0 {
		return nil, fmt.Errorf("file has an empty header row")
	}
	grid = grid[headerRows:]

	if spec.DropRows > 0 {
		if len(grid) >= spec.DropRows {
			grid = grid[spec.DropRows:]
		} else {
			grid = nil
		}
	}

	t := &Table{Headers: headers}
	for _, raw := range grid {
		if emptyRecord(raw) {
			// Trailing empty rows vary between files; dropping them here
			// keeps later row-wise alignment honest.
			continue
		}
		row := make([]dataset.Value, len(headers))
		for i := range row {
			if i < len(raw) {
				row[i] = dataset.String(raw[i])
			} else {
				row[i] = dataset.Absent
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// mergeHeaders builds header names from one or two header rows. With two
// rows, a blank primary cell takes the secondary cell beneath it; the XYZ
// software splits long header names this way.
func mergeHeaders(rows [][]string) []string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}

	headers := make([]string, 0, width)
	for i := 0; i < width; i++ {
		name := ""
		for _, r := range rows {
			if i < len(r) && strings.TrimSpace(r[i]) != "" {
				name = strings.TrimSpace(r[i])
				break
			}
		}
		headers = append(headers, name)
	}
	// Trim trailing unnamed columns left behind by ragged delimiters.
	for len(headers) > 0 && headers[len(headers)-1] == "" {
		headers = headers[:len(headers)-1]
	}
	return headers
}

func emptyRecord(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
