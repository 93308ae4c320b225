package rename

import (
	"strings"

	"github.com/laccore/data-aggregator-and-renamer/internal/dataset"
)

// Candidate names tried in order when no explicit column index is given.
// The lists cover both the raw machine headers ("SECT DEPTH", "SECT NUM")
// and the readable headers the exporter writes ("Section Depth",
// "SectionID").
var (
	DepthCandidates   = []string{"section depth", "sect depth", "depth"}
	SectionCandidates = []string{"sect num", "sectionid", "section number", "section"}
)

// FindColumn locates a column by candidate name. Candidates are tried in
// order; for each, an exact match on the normalized header wins first, then
// a substring match. Exactly one hit resolves the candidate; several hits
// are an ambiguity error and zero hits move on to the next candidate. When
// every candidate misses, the caller is asked for an explicit index.
func FindColumn(headers []string, candidates []string) (int, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = dataset.Normalize(h)
	}

	for _, candidate := range candidates {
		key := dataset.Normalize(candidate)
		if key == "" {
			continue
		}

		if pos, err := matchOne(headers, normalized, candidate, func(h string) bool { return h == key }); err != nil || pos >= 0 {
			return pos, err
		}
		if pos, err := matchOne(headers, normalized, candidate, func(h string) bool { return strings.Contains(h, key) }); err != nil || pos >= 0 {
			return pos, err
		}
	}
	return -1, dataset.NewColumnNotFoundError(candidates)
}

// matchOne returns the single header position accepted by match, -1 when
// nothing matched, or an ambiguity error naming every matching header.
func matchOne(headers, normalized []string, candidate string, match func(string) bool) (int, error) {
	pos := -1
	var hits []string
	for i, h := range normalized {
		if match(h) {
			pos = i
			hits = append(hits, headers[i])
		}
	}
	if len(hits) > 1 {
		return -1, dataset.NewAmbiguousColumnError(candidate, hits)
	}
	if len(hits) == 0 {
		return -1, nil
	}
	return pos, nil
}
