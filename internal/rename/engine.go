package rename

import (
	"fmt"
	"log/slog"

	"github.com/laccore/data-aggregator-and-renamer/internal/dataset"
)

// DefaultCoreColumn is the header of the column Assign adds.
const DefaultCoreColumn = "Core ID"

// Options controls how Assign locates its working columns. Column indices
// are display positions; -1 means locate by candidate name. The section
// column is a refinement: when none can be found the walk falls back to
// depth resets alone. Start from DefaultOptions; the zero value pins both
// columns to index 0.
type Options struct {
	DepthColumn       int
	SectionColumn     int
	DepthCandidates   []string
	SectionCandidates []string
	CoreColumn        string
	Logger            *slog.Logger
}

// DefaultOptions locates both working columns by candidate name.
func DefaultOptions() Options {
	return Options{DepthColumn: -1, SectionColumn: -1}
}

// Result describes a completed core assignment.
type Result struct {
	CorePos   int      // display position of the added core column
	DepthPos  int      // column the reset walk read depths from
	Sections  int      // detected sections, equal to len(core list)
	Resets    []int    // row indices that opened sections two onward
	Unmatched []int    // leading rows with no parsable depth, left unassigned
	Warnings  []string // non-fatal oddities worth surfacing to the operator
}

// Assign walks the dataset in row order, detects section boundaries from
// depth resets, maps each section to the core-list entry in the same
// position, and stamps the core IDs into a new column.
//
// Detected sections and core-list entries must agree exactly; any mismatch
// aborts with an error carrying the row index and both counts, because a
// silent off-by-one would misname every core after the slip.
func Assign(d *dataset.Dataset, list []Entry, opts Options) (*Result, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("core list is empty")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	headers := d.Headers()
	depthPos, err := locateColumn(headers, opts.DepthColumn, candidateList(opts.DepthCandidates, DepthCandidates))
	if err != nil {
		return nil, fmt.Errorf("failed to locate depth column: %w", err)
	}
	sectionPos, err := locateSectionColumn(headers, opts.SectionColumn, candidateList(opts.SectionCandidates, SectionCandidates))
	if err != nil {
		return nil, fmt.Errorf("failed to locate section column: %w", err)
	}
	if sectionPos == depthPos {
		// A lone "Section Depth" header satisfies the section candidates
		// too; reading depths as section numbers would split every row.
		sectionPos = -1
	}

	res := &Result{CorePos: -1, DepthPos: depthPos}
	assignments := make([]int, d.Len())

	section := -1
	var prevDepth float64
	prevSect, havePrevSect := 0, false
	unparsable := 0

	for i := 0; i < d.Len(); i++ {
		depth, ok := d.Cell(i, depthPos).Float()
		if !ok {
			if section < 0 {
				// No section open yet; nothing to inherit from.
				res.Unmatched = append(res.Unmatched, i)
				assignments[i] = -1
				continue
			}
			unparsable++
			assignments[i] = section
			continue
		}

		curSect, haveSect := 0, false
		if sectionPos >= 0 {
			curSect, haveSect = d.Cell(i, sectionPos).Int()
		}

		if section < 0 {
			section = 0
		} else if isReset(depth, prevDepth, curSect, prevSect, haveSect && havePrevSect) {
			section++
			res.Resets = append(res.Resets, i)
		}
		assignments[i] = section

		prevDepth = depth
		// Section numbers only refine the comparison between adjacent
		// parsable-depth rows; a row missing its number drops the pair
		// back to depth-only detection.
		prevSect, havePrevSect = curSect, haveSect
	}

	if section < 0 {
		return nil, dataset.NewRenameMismatchError(0, 0, len(list))
	}
	res.Sections = section + 1
	if res.Sections != len(list) {
		row := d.Len() - 1
		if res.Sections > len(list) {
			// The reset that opened the first section past the end of the
			// core list.
			row = res.Resets[len(list)-1]
		}
		return nil, dataset.NewRenameMismatchError(row, len(res.Resets), len(list))
	}

	res.Warnings = append(res.Warnings, duplicateWarnings(list)...)
	if unparsable > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d rows without a parsable depth inherited the preceding core", unparsable))
	}
	if len(res.Unmatched) > 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%d rows precede the first parsable depth and were left unassigned", len(res.Unmatched)))
	}

	values := make([]dataset.Value, d.Len())
	for i, sec := range assignments {
		if sec < 0 {
			values[i] = dataset.Absent
		} else {
			values[i] = dataset.String(list[sec].CoreID)
		}
	}
	name := opts.CoreColumn
	if name == "" {
		name = DefaultCoreColumn
	}
	pos, err := d.AddColumn(name, values)
	if err != nil {
		return nil, fmt.Errorf("failed to add core column: %w", err)
	}
	res.CorePos = pos

	logger.Info("core assignment complete",
		slog.Int("rows", d.Len()),
		slog.Int("sections", res.Sections),
		slog.Int("resets", len(res.Resets)),
		slog.Int("unmatched_rows", len(res.Unmatched)),
	)
	for _, w := range res.Warnings {
		logger.Warn("core assignment warning", slog.String("detail", w))
	}
	return res, nil
}

// isReset reports a section boundary between the previous data row and the
// current one. With section numbers available on both rows, any change of
// number is a boundary and so is a depth drop within an unchanged number;
// otherwise a depth drop alone decides.
func isReset(depth, prevDepth float64, curSect, prevSect int, haveSections bool) bool {
	if haveSections && curSect != prevSect {
		return true
	}
	return depth < prevDepth
}

func candidateList(configured, fallback []string) []string {
	if len(configured) > 0 {
		return configured
	}
	return fallback
}

func locateColumn(headers []string, explicit int, candidates []string) (int, error) {
	if explicit >= 0 {
		if explicit >= len(headers) {
			return -1, fmt.Errorf("column index %d out of range, dataset has %d columns", explicit, len(headers))
		}
		return explicit, nil
	}
	return FindColumn(headers, candidates)
}

// locateSectionColumn resolves the optional section column: an explicit
// index is validated, a failed name search degrades to depth-only detection,
// and an ambiguous one still needs the operator to decide.
func locateSectionColumn(headers []string, explicit int, candidates []string) (int, error) {
	if explicit >= 0 {
		if explicit >= len(headers) {
			return -1, fmt.Errorf("column index %d out of range, dataset has %d columns", explicit, len(headers))
		}
		return explicit, nil
	}
	pos, err := FindColumn(headers, candidates)
	if err != nil {
		if dataset.GetErrorType(err) == dataset.ErrorTypeColumnNotFound {
			return -1, nil
		}
		return -1, err
	}
	return pos, nil
}
