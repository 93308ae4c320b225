package geotek

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// SkippedFile records one per-file failure that did not abort the run.
type SkippedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Report is the run summary kept separate from the aggregated data: what
// was combined, what was skipped and why, and any non-fatal warnings.
type Report struct {
	ID            string        `json:"id"`
	Instrument    string        `json:"instrument"`
	Started       time.Time     `json:"started"`
	Duration      time.Duration `json:"duration"`
	Sessions      int           `json:"sessions"`
	ParsedFiles   int           `json:"parsed_files"`
	Rows          int           `json:"rows"`
	FilteredCells int           `json:"filtered_cells"`
	Skipped       []SkippedFile `json:"skipped,omitempty"`
	Warnings      []string      `json:"warnings,omitempty"`
}

// NewReport starts a report for one aggregation run.
func NewReport(instrument string) *Report {
	return &Report{
		ID:         uuid.NewString(),
		Instrument: instrument,
		Started:    time.Now(),
	}
}

// AddSkip records a skipped file and its reason.
func (r *Report) AddSkip(file, reason string) {
	r.Skipped = append(r.Skipped, SkippedFile{File: file, Reason: reason})
}

// AddWarning records a non-fatal diagnostic.
func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// LogSummary emits the run outcome through the structured logger, one line
// per skipped file so operators can locate stray or corrupt inputs.
func (r *Report) LogSummary(logger *slog.Logger) {
	logger.Info("aggregation run complete",
		slog.String("run_id", r.ID),
		slog.String("instrument", r.Instrument),
		slog.Int("sessions", r.Sessions),
		slog.Int("parsed_files", r.ParsedFiles),
		slog.Int("rows", r.Rows),
		slog.Int("filtered_cells", r.FilteredCells),
		slog.Int("skipped_files", len(r.Skipped)),
		slog.Duration("duration", r.Duration))

	for _, s := range r.Skipped {
		logger.Warn("file skipped",
			slog.String("run_id", r.ID),
			slog.String("file", s.File),
			slog.String("reason", s.Reason))
	}
	for _, w := range r.Warnings {
		logger.Warn(w, slog.String("run_id", r.ID))
	}
}
