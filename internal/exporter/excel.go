package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

const excelSheet = "Data"

// ExcelWriter writes datasets as single-sheet Excel workbooks.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates an Excel writer. A nil logger falls back to the
// default.
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// Write writes the rendered dataset to path as an .xlsx workbook. Header
// and units rows stay strings; data cells that parse as numbers are written
// as numbers.
func (w *ExcelWriter) Write(path string, options WriteOptions) error {
	w.logger.Info("writing Excel file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), excelSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rowIndex := 1
	writeRow := func(cells []interface{}) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(excelSheet, cell, &cells); err != nil {
			return err
		}
		rowIndex++
		return nil
	}

	if len(options.Headers) > 0 {
		if err := writeRow(asStrings(options.Headers)); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	if len(options.Units) > 0 {
		if err := writeRow(asStrings(options.Units)); err != nil {
			return fmt.Errorf("failed to write units row: %w", err)
		}
	}
	for i, record := range options.Records {
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = cellValue(v)
		}
		if err := writeRow(cells); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func asStrings(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
