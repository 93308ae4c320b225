package dataset

import (
	"fmt"
)

// ErrorType classifies run errors so callers can decide between skipping a
// file and aborting the run.
type ErrorType string

const (
	ErrorTypeParse           ErrorType = "parse"
	ErrorTypeDiscovery       ErrorType = "discovery"
	ErrorTypeSchemaConflict  ErrorType = "schema_conflict"
	ErrorTypeRenameMismatch  ErrorType = "rename_mismatch"
	ErrorTypeAmbiguousColumn ErrorType = "ambiguous_column"
	ErrorTypeColumnNotFound  ErrorType = "column_not_found"
)

// RunError is the error vocabulary of an aggregation or rename run. Parse
// and discovery errors are recoverable (file skipped, run continues); the
// structural kinds always abort.
type RunError struct {
	Type    ErrorType
	File    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e == nil {
		return "unknown run error"
	}
	if e.File != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Type, e.File, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Recoverable reports whether the run may continue after this error.
func (e *RunError) Recoverable() bool {
	if e == nil {
		return false
	}
	return e.Type == ErrorTypeParse || e.Type == ErrorTypeDiscovery
}

// NewParseError creates a recoverable per-file parse error.
func NewParseError(file string, cause error) *RunError {
	return &RunError{
		Type:    ErrorTypeParse,
		File:    file,
		Message: "file could not be parsed",
		Cause:   cause,
	}
}

// NewDiscoveryError creates a recoverable per-session discovery error.
func NewDiscoveryError(folder, message string) *RunError {
	return &RunError{
		Type:    ErrorTypeDiscovery,
		File:    folder,
		Message: message,
	}
}

// NewSchemaConflictError reports two configured-distinct columns that
// normalize to the same identity.
func NewSchemaConflictError(existing, incoming string) *RunError {
	return &RunError{
		Type:    ErrorTypeSchemaConflict,
		Message: fmt.Sprintf("columns %q and %q normalize identically but are configured as distinct", existing, incoming),
		Context: map[string]interface{}{
			"existing": existing,
			"incoming": incoming,
		},
	}
}

// NewRenameMismatchError reports a disagreement between detected depth
// resets and the supplied core list.
func NewRenameMismatchError(rowIndex, detectedResets, expectedEntries int) *RunError {
	return &RunError{
		Type: ErrorTypeRenameMismatch,
		Message: fmt.Sprintf("detected %d depth resets (%d sections) but core list supplies %d entries; first unmatched reset at row %d",
			detectedResets, detectedResets+1, expectedEntries, rowIndex),
		Context: map[string]interface{}{
			"row_index":        rowIndex,
			"detected_resets":  detectedResets,
			"expected_entries": expectedEntries,
		},
	}
}

// NewAmbiguousColumnError asks the caller for an explicit column index when
// several headers match the same candidate name equally well.
func NewAmbiguousColumnError(candidate string, matches []string) *RunError {
	return &RunError{
		Type: ErrorTypeAmbiguousColumn,
		Message: fmt.Sprintf("multiple columns match %q: %v; specify the column index explicitly",
			candidate, matches),
		Context: map[string]interface{}{
			"candidate": candidate,
			"matches":   matches,
		},
	}
}

// NewColumnNotFoundError asks the caller for an explicit column index when
// no header matches any candidate name.
func NewColumnNotFoundError(candidates []string) *RunError {
	return &RunError{
		Type: ErrorTypeColumnNotFound,
		Message: fmt.Sprintf("no column matches any of %v; specify the column index explicitly",
			candidates),
		Context: map[string]interface{}{
			"candidates": candidates,
		},
	}
}

// GetErrorType returns the classification of an error, or the empty string
// for nil and foreign errors.
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ""
	}
	if rErr, ok := err.(*RunError); ok {
		return rErr.Type
	}
	return ""
}
