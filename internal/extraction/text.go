// Package extraction turns resume text and layout sections into typed entities.
//
// Every extractor degrades to empty results on malformed input; none of them
// returns an error.
package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-extractor/internal/patterns"
)

var blankLineRe = regexp.MustCompile(`\n\s*\n`)

// splitBlocks splits text on blank lines and returns the non-empty lines of
// every block.
func splitBlocks(text string) [][]string {
	var blocks [][]string
	for _, chunk := range blankLineRe.Split(strings.TrimSpace(text), -1) {
		if lines := nonEmptyLines(chunk); len(lines) > 0 {
			blocks = append(blocks, lines)
		}
	}
	return blocks
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// titleCase upper-cases the first letter of every letter run and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		prevLetter = false
		b.WriteRune(r)
	}
	return b.String()
}

func isBullet(line string) bool {
	line = strings.TrimSpace(line)
	for _, m := range patterns.BulletMarkers {
		if strings.HasPrefix(line, m) {
			return true
		}
	}
	return false
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "•-*◦ \t"))
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func hasPrefixAny(lower string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}
	return false
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}
