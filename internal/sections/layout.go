package sections

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// KnownTitle reports whether a layout section title names a recognised
// section rather than an entry line that happened to look like a header.
func KnownTitle(title string) bool {
	return isHeading(title)
}

// Merge folds every titled section whose title is not KnownTitle into the
// section before it. The folded header line is kept as ordinary content so
// entry headers such as employer names reach the extractors.
func Merge(secs []types.Section) []types.Section {
	out := make([]types.Section, 0, len(secs))
	for _, s := range secs {
		if s.Title != "" && !KnownTitle(s.Title) && len(out) > 0 {
			prev := &out[len(out)-1]
			prev.Lines = append(prev.Lines, s.Header)
			prev.Lines = append(prev.Lines, s.Lines...)
			continue
		}
		lines := make([]types.Line, len(s.Lines), len(s.Lines)+8)
		copy(lines, s.Lines)
		s.Lines = lines
		out = append(out, s)
	}
	return out
}

// MatchLayoutSections merges secs and returns the sections whose lowercased
// title contains any of titles.
func MatchLayoutSections(secs []types.Section, titles []string) []types.Section {
	matched := []types.Section{}
	for _, s := range Merge(secs) {
		if s.Title != "" && containsAny(strings.ToLower(s.Title), titles) {
			matched = append(matched, s)
		}
	}
	return matched
}
