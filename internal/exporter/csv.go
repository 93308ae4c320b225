package exporter

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/laccore/data-aggregator-and-renamer/internal/dataset"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteOptions is the dataset rendering handed to a Writer: one header row,
// an optional units row beneath it, then the records.
type WriteOptions struct {
	Headers   []string
	Units     []string
	Records   [][]string
	BOMPrefix bool
}

// Writer encodes one rendered dataset to a file.
type Writer interface {
	Write(path string, options WriteOptions) error
}

// CSVWriter writes datasets as CSV files.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer. A nil logger falls back to the default.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// Write writes the rendered dataset to path, creating parent directories as
// needed.
func (w *CSVWriter) Write(path string, options WriteOptions) error {
	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}
	if len(options.Units) > 0 {
		if err := writer.Write(options.Units); err != nil {
			return fmt.Errorf("failed to write units row: %w", err)
		}
	}
	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadResult is a CSV file loaded back into a dataset, with the units row
// set aside when the caller declared one.
type ReadResult struct {
	Dataset *dataset.Dataset
	Units   []string
}

// ReadCSV loads an exported CSV into a dataset: first record is the header
// row, and with unitsRow set the second record is split off as units rather
// than data. Short records pad with empty cells; long ones truncate to the
// header width.
func ReadCSV(path string, unitsRow bool) (*ReadResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	br := bufio.NewReader(file)
	if peek, _ := br.Peek(len(utf8BOM)); bytes.Equal(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s: file is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	result := &ReadResult{}
	if unitsRow {
		units, err := reader.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("%s: declared units row is missing", path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read units row: %w", err)
		}
		result.Units = fitRecord(units, len(headers))
	}

	var rows [][]dataset.Value
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		rows = append(rows, dataset.Strings(fitRecord(record, len(headers))))
	}

	d := dataset.New(nil)
	if err := d.AppendTable(headers, rows); err != nil {
		return nil, err
	}
	result.Dataset = d
	return result, nil
}

func fitRecord(record []string, width int) []string {
	if len(record) == width {
		return record
	}
	fitted := make([]string, width)
	copy(fitted, record)
	return fitted
}
