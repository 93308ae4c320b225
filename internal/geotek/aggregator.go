package geotek

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/laccore/data-aggregator-and-renamer/internal/dataset"
)

// DefaultSeparator is the folder part-separator the MSCL software uses by
// default ("MSCL_DCH-p3").
const DefaultSeparator = "-p"

// DefaultFilterMinimum is the reference floor for the built-in
// magnetic-susceptibility filter.
const DefaultFilterMinimum = -50.0

// Options configures one aggregation run.
type Options struct {
	// Separator is the part-separator token in session folder names. Empty
	// disables the part filter: every folder carrying the instrument token
	// is a session, ordered by name. XRF scanner folders have no part
	// token, so their runs use an empty separator.
	Separator string

	// Filter invalidates out-of-range cells during the run. When nil the
	// instrument's built-in filter (magnetic-susceptibility minimum) is
	// applied with the given threshold.
	Filter *dataset.Filter

	// FilterMinimum overrides the built-in filter threshold. Nil keeps
	// DefaultFilterMinimum; an explicit zero is honored.
	FilterMinimum *float64

	// DistinctColumns activates strict schema mode: the named columns
	// must never be merged by header normalization.
	DistinctColumns []string

	Logger *slog.Logger
}

// Aggregator walks a directory tree of instrument sessions and combines
// their data files into one dataset. It owns which files are included and
// in what order; the dataset under construction is owned exclusively by
// the run until Run returns.
type Aggregator struct {
	inst     Instrument
	sep      string
	filter   *dataset.Filter
	distinct []string
	logger   *slog.Logger
}

// NewAggregator creates an aggregator for the given instrument.
func NewAggregator(inst Instrument, opts Options) *Aggregator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	filter := opts.Filter
	if filter == nil {
		filter = dataset.NewFilter()
		threshold := DefaultFilterMinimum
		if opts.FilterMinimum != nil {
			threshold = *opts.FilterMinimum
		}
		for _, col := range inst.FilterColumns {
			filter.Set(col, dataset.Minimum(threshold))
		}
	}

	return &Aggregator{inst: inst, sep: opts.Separator, filter: filter, distinct: opts.DistinctColumns, logger: logger}
}

// Run aggregates every session under root. Per-file failures are recorded
// in the report and skipped; a schema conflict aborts with an error. The
// returned report is non-nil even on error.
func (a *Aggregator) Run(root string) (*dataset.Dataset, *Report, error) {
	report := NewReport(a.inst.Name)

	if len(a.inst.FilterColumns) > 0 {
		a.logger.Debug("value filter active",
			slog.String("run_id", report.ID),
			slog.Any("columns", a.inst.FilterColumns))
	}

	sessions, err := DiscoverSessions(root, a.inst.FolderToken, a.sep)
	if err != nil {
		return nil, report, err
	}
	report.Sessions = len(sessions)
	a.logger.Info("sessions discovered",
		slog.String("run_id", report.ID),
		slog.String("root", root),
		slog.Int("count", len(sessions)))

	schema := dataset.NewSchema()
	if a.inst.TailAnchor != "" {
		schema.AnchorLast(a.inst.TailAnchor)
	}
	if len(a.distinct) > 0 {
		schema.RequireDistinct(a.distinct...)
	}
	d := dataset.New(schema)

	var provFolders, provFiles []dataset.Value

	for _, session := range sessions {
		tables := a.loadSession(session, report)
		for _, t := range tables {
			before := d.Len()
			if err := d.AppendTable(t.Headers, t.Rows); err != nil {
				// Schema conflicts are structural: abort the run.
				return nil, report, err
			}
			added := d.Len() - before
			for i := 0; i < added; i++ {
				provFolders = append(provFolders, dataset.String(t.Folder))
				provFiles = append(provFiles, dataset.String(t.File))
			}
			report.Rows += added

			a.logger.Debug("file aggregated",
				slog.String("run_id", report.ID),
				slog.String("folder", t.Folder),
				slog.String("file", t.File),
				slog.Int("rows", added),
				slog.Int("columns", len(t.Headers)))
		}
	}

	report.FilteredCells = a.filter.Apply(d)

	// Provenance columns always trail the measurement columns, behind any
	// anchored column.
	schema.ClearAnchor()
	if _, err := d.AddColumn(SourceFolderColumn, provFolders); err != nil {
		return nil, report, err
	}
	if _, err := d.AddColumn(SourceFileColumn, provFiles); err != nil {
		return nil, report, err
	}

	report.Duration = time.Since(report.Started)
	return d, report, nil
}

// loadSession parses one session folder into zero or more tables ready to
// append. Failures are recorded on the report; the run continues.
func (a *Aggregator) loadSession(s Session, report *Report) []*Table {
	switch a.inst.Name {
	case InstrumentMSCLS:
		return a.loadMSCLSession(s, report)
	case InstrumentMSCLXYZ:
		return a.loadXYZSession(s, report)
	case InstrumentXRF:
		return a.loadXRFSession(s, report)
	}
	report.AddSkip(s.Name, fmt.Sprintf("no loader for instrument %q", a.inst.Name))
	return nil
}

// loadMSCLSession handles the whole-core logger layout: exactly one .out
// and one .raw file per session. The Temp column lives only in the .raw
// file and is merged row-wise onto the .out data. The .raw files carry one
// extra leading data row, so they drop two rows after the header where
// .out files drop one.
func (a *Aggregator) loadMSCLSession(s Session, report *Report) []*Table {
	outs, err := sessionFiles(s.Path, func(name string) bool { return hasExt(name, ".out") })
	if err != nil {
		report.AddSkip(s.Name, err.Error())
		return nil
	}
	raws, err := sessionFiles(s.Path, func(name string) bool { return hasExt(name, ".raw") })
	if err != nil {
		report.AddSkip(s.Name, err.Error())
		return nil
	}
	if len(outs) != 1 || len(raws) != 1 {
		report.AddSkip(s.Name, fmt.Sprintf("expected exactly one .out and one .raw file, found %d and %d", len(outs), len(raws)))
		return nil
	}

	out, err := a.parseSessionFile(s, outs[0], ParseSpec{Delimiter: '\t', SkipRows: 1, HeaderRows: 1, DropRows: 1}, report)
	if err != nil {
		return nil
	}
	raw, err := a.parseSessionFile(s, raws[0], ParseSpec{Delimiter: '\t', SkipRows: 1, HeaderRows: 1, DropRows: 2}, report)
	if err != nil {
		return nil
	}

	mergeColumn(out, raw, "Temp")
	return []*Table{out}
}

// loadXYZSession handles the split-core logger layout: one csv per session
// with two junk leading rows and a two-row header.
func (a *Aggregator) loadXYZSession(s Session, report *Report) []*Table {
	csvs, err := sessionFiles(s.Path, func(name string) bool {
		return hasExt(name, ".csv") && strings.Contains(strings.ToLower(name), "xyz")
	})
	if err != nil {
		report.AddSkip(s.Name, err.Error())
		return nil
	}
	if len(csvs) == 0 {
		report.AddSkip(s.Name, "no xyz .csv file found")
		return nil
	}
	if len(csvs) > 1 {
		report.AddSkip(s.Name, fmt.Sprintf("expected one xyz .csv file, found %d", len(csvs)))
		return nil
	}

	t, err := a.parseSessionFile(s, csvs[0], ParseSpec{Delimiter: ',', SkipRows: 2, HeaderRows: 2, DropRows: 0}, report)
	if err != nil {
		return nil
	}
	return []*Table{t}
}

// loadXRFSession handles scanner exports: every workbook in the session is
// aggregated, in name order.
func (a *Aggregator) loadXRFSession(s Session, report *Report) []*Table {
	books, err := sessionFiles(s.Path, func(name string) bool {
		return hasExt(name, ".xlsx") || hasExt(name, ".xls")
	})
	if err != nil {
		report.AddSkip(s.Name, err.Error())
		return nil
	}
	if len(books) == 0 {
		report.AddSkip(s.Name, "no workbook found")
		return nil
	}

	var tables []*Table
	for _, name := range books {
		t, err := ParseWorkbook(filepath.Join(s.Path, name), ParseSpec{HeaderRows: 1})
		if err != nil {
			perr := dataset.NewParseError(filepath.Join(s.Name, name), err)
			a.logger.Warn("file skipped",
				slog.String("file", perr.File),
				slog.String("error", err.Error()))
			report.AddSkip(perr.File, err.Error())
			continue
		}
		t.Folder = s.Name
		t.File = name
		report.ParsedFiles++
		tables = append(tables, t)
	}
	return tables
}

// parseSessionFile parses one delimited file, counting it on success and
// recording a skip on failure. MSCL-S sessions therefore report two parsed
// files apiece: the .out and the .raw it merges from.
func (a *Aggregator) parseSessionFile(s Session, name string, spec ParseSpec, report *Report) (*Table, error) {
	t, err := ParseDelimited(filepath.Join(s.Path, name), spec)
	if err != nil {
		perr := dataset.NewParseError(filepath.Join(s.Name, name), err)
		a.logger.Warn("file skipped",
			slog.String("file", perr.File),
			slog.String("error", err.Error()))
		report.AddSkip(perr.File, err.Error())
		return nil, perr
	}
	t.Folder = s.Name
	t.File = name
	report.ParsedFiles++
	return t, nil
}

// mergeColumn copies the named column from src onto dst row-wise. Rows of
// dst beyond src's length get the absent marker.
func mergeColumn(dst, src *Table, column string) {
	srcIdx := -1
	for i, h := range src.Headers {
		if dataset.Normalize(h) == dataset.Normalize(column) {
			srcIdx = i
			break
		}
	}
	if srcIdx < 0 {
		return
	}

	dst.Headers = append(dst.Headers, src.Headers[srcIdx])
	for i := range dst.Rows {
		v := dataset.Absent
		if i < len(src.Rows) && srcIdx < len(src.Rows[i]) {
			v = src.Rows[i][srcIdx]
		}
		dst.Rows[i] = append(dst.Rows[i], v)
	}
}

// siteHoleRe matches the leading project and site/hole tokens of an XRF
// source file name, e.g. "MAL05-1A-24B-xrf.xlsx" -> "MAL05-1A".
var siteHoleRe = regexp.MustCompile(`^([A-Za-z0-9]+)[-_](\d+[A-Za-z])`)

// SiteHoleKey derives the partition key for an XRF row from its source
// file provenance. Rows whose file name does not carry a site/hole token
// return the empty string and land in the unassigned group.
func SiteHoleKey(headers []string, row []dataset.Value) string {
	for i, h := range headers {
		if dataset.Normalize(h) != dataset.Normalize(SourceFileColumn) {
			continue
		}
		if i >= len(row) {
			return ""
		}
		m := siteHoleRe.FindStringSubmatch(row[i].Raw())
		if m == nil {
			return ""
		}
		return m[1] + "-" + m[2]
	}
	return ""
}
