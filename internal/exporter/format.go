package exporter

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
)

// Format identifies an export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want csv or xlsx)", s)
	}
}

// Extension returns the filename extension for the format, dot included.
func (f Format) Extension() string {
	if f == FormatExcel {
		return ".xlsx"
	}
	return ".csv"
}

// ValidateFilename forces the filename's extension to match the format,
// replacing a recognized spreadsheet extension and appending one when
// missing. Lab operators routinely type the wrong one.
func ValidateFilename(name string, f Format) string {
	ext := filepath.Ext(name)
	switch strings.ToLower(ext) {
	case ".csv", ".xlsx", ".xls":
		name = strings.TrimSuffix(name, ext)
	}
	return name + f.Extension()
}

// ForFormat returns the writer for the format.
func ForFormat(f Format, logger *slog.Logger) Writer {
	if f == FormatExcel {
		return NewExcelWriter(logger)
	}
	return NewCSVWriter(logger)
}

// cellValue coerces a numeric-looking cell to a float64 for Excel output
// and leaves everything else a string.
func cellValue(s string) interface{} {
	if s == "" {
		return s
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
