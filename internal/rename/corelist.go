package rename

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Entry is one line of a core list: the identifier the lab assigned to a
// core, and the section number the logging run used for it.
type Entry struct {
	CoreID  string
	Section int
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadCoreList parses a core list CSV: two columns per line, no header,
// `coreID,sectionNumber`. Core IDs are arbitrary non-empty tokens and
// section numbers positive integers; anything else is a parse error
// naming the offending line.
func ReadCoreList(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open core list: %w", err)
	}
	defer f.Close()
	return parseCoreList(f)
}

func parseCoreList(r io.Reader) ([]Entry, error) {
	br := bufio.NewReader(r)
	if peek, _ := br.Peek(len(utf8BOM)); bytes.Equal(peek, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var entries []Entry
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("core list line %d: %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("core list line %d: expected 2 fields (coreID,sectionNumber), got %d", line, len(record))
		}

		coreID := strings.TrimSpace(record[0])
		if coreID == "" {
			return nil, fmt.Errorf("core list line %d: empty core ID", line)
		}
		section, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("core list line %d: section number %q is not an integer", line, record[1])
		}
		if section <= 0 {
			return nil, fmt.Errorf("core list line %d: section number must be positive, got %d", line, section)
		}
		entries = append(entries, Entry{CoreID: coreID, Section: section})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("core list is empty")
	}
	return entries, nil
}

// duplicateWarnings reports core IDs appearing more than once in the list,
// which usually means a copy-paste slip in the lab's spreadsheet.
func duplicateWarnings(entries []Entry) []string {
	counts := make(map[string]int)
	var order []string
	for _, e := range entries {
		if counts[e.CoreID] == 0 {
			order = append(order, e.CoreID)
		}
		counts[e.CoreID]++
	}

	var warnings []string
	for _, id := range order {
		if counts[id] > 1 {
			warnings = append(warnings, fmt.Sprintf("core %s appears %d times in the core list", id, counts[id]))
		}
	}
	return warnings
}
