package geotek

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Session is one machine run's output folder.
type Session struct {
	Path string
	Name string

	// Part is the numeric part token from the folder name. Parsed as a
	// float because the lab occasionally numbers half parts ("_part1.5").
	Part float64
}

// DiscoverSessions lists the session subfolders of root whose names carry
// the instrument token and the part separator, sorted by part number.
// Hidden folders are ignored. Folders with an unparsable part token sort
// last, in name order.
func DiscoverSessions(root, token, separator string) ([]Session, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", root, err)
	}

	var sessions []Session
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		lower := strings.ToLower(entry.Name())
		if !strings.Contains(lower, strings.ToLower(token)) || !strings.Contains(lower, strings.ToLower(separator)) {
			continue
		}
		sessions = append(sessions, Session{
			Path: filepath.Join(root, entry.Name()),
			Name: entry.Name(),
			Part: partNumber(lower, strings.ToLower(separator)),
		})
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if sessions[i].Part != sessions[j].Part {
			return sessions[i].Part < sessions[j].Part
		}
		return sessions[i].Name < sessions[j].Name
	})
	return sessions, nil
}

// partNumber extracts the numeric token after the last separator
// occurrence in a folder name.
func partNumber(name, separator string) float64 {
	idx := strings.LastIndex(name, separator)
	if idx < 0 {
		return math.MaxFloat64
	}
	token := name[idx+len(separator):]
	// Trim trailing notes sometimes appended after the part number.
	end := 0
	for end < len(token) && (token[end] >= '0' && token[end] <= '9' || token[end] == '.') {
		end++
	}
	part, err := strconv.ParseFloat(token[:end], 64)
	if err != nil {
		return math.MaxFloat64
	}
	return part
}

// sessionFiles lists the non-hidden files of a session folder that pass the
// match predicate, sorted by name.
func sessionFiles(dir string, match func(name string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read session folder %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if match(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// hasExt reports whether a filename carries the extension, ignoring case.
func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
