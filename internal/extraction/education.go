package extraction

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/sections"
	"github.com/jonathan/resume-extractor/internal/types"
)

// EducationExtractor parses education entries.
type EducationExtractor struct {
	lib *patterns.Library
}

// NewEducationExtractor returns an EducationExtractor.
func NewEducationExtractor(lib *patterns.Library) *EducationExtractor {
	return &EducationExtractor{lib: lib}
}

// FromText locates the education section and parses one entry per block.
// Blocks are separated by blank lines; inside a block a degree or
// institution line opens a new entry once the current one already has that
// field.
func (x *EducationExtractor) FromText(text string) []types.Education {
	section, ok := sections.FindHeadedSection(text, patterns.EducationKeywords)
	if !ok {
		return []types.Education{}
	}
	blocks := splitBlocks(section)
	if len(blocks) > 0 && x.isHeading(blocks[0][0]) {
		blocks[0] = blocks[0][1:]
	}
	return x.parseBlocks(blocks)
}

// FromLayout parses the layout sections titled like education, falling back
// to FromText over fullText when there are none.
func (x *EducationExtractor) FromLayout(secs []types.Section, fullText string) []types.Education {
	matched := sections.MatchLayoutSections(secs, patterns.LayoutEducationTitles)
	if len(matched) == 0 {
		return x.FromText(fullText)
	}
	var blocks [][]string
	for _, s := range matched {
		if lines := nonEmptyLines(strings.Join(s.Texts(), "\n")); len(lines) > 0 {
			blocks = append(blocks, lines)
		}
	}
	return x.parseBlocks(blocks)
}

func (x *EducationExtractor) parseBlocks(blocks [][]string) []types.Education {
	out := []types.Education{}
	for _, block := range blocks {
		for _, entry := range x.splitEntries(block) {
			if e, ok := x.ParseEntry(entry); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

// splitEntries cuts a block when a second degree or institution line shows up.
func (x *EducationExtractor) splitEntries(lines []string) [][]string {
	var entries [][]string
	var cur []string
	hasDegree, hasInstitution := false, false
	for _, line := range lines {
		degree := x.lib.Degree.MatchString(line)
		institution := x.lib.Institution.MatchString(line)
		if len(cur) > 0 && ((degree && hasDegree) || (institution && hasInstitution)) {
			entries = append(entries, cur)
			cur, hasDegree, hasInstitution = nil, false, false
		}
		cur = append(cur, line)
		hasDegree = hasDegree || degree
		hasInstitution = hasInstitution || institution
	}
	if len(cur) > 0 {
		entries = append(entries, cur)
	}
	return entries
}

// ParseEntry extracts one education entry from its lines. It reports false
// when none of degree, institution and graduation year were found.
func (x *EducationExtractor) ParseEntry(lines []string) (types.Education, bool) {
	var e types.Education
	text := strings.Join(lines, "\n")

	for _, line := range lines {
		if m := x.lib.Degree.FindStringSubmatch(line); m != nil {
			e.Degree = types.StringPtr(titleCase(m[1]))
			if f := x.lib.Field.FindStringSubmatch(line); f != nil {
				e.Field = types.StringPtr(f[1])
			}
			break
		}
	}

	for _, line := range lines {
		if x.lib.Institution.MatchString(line) {
			e.Institution = types.StringPtr(line)
			break
		}
	}

	best := 0
	for _, y := range x.lib.Year.FindAllString(text, -1) {
		n, err := strconv.Atoi(y)
		if err != nil || n < patterns.MinYear || n > patterns.MaxYear {
			continue
		}
		best = max(best, n)
	}
	if best > 0 {
		e.GraduationYear = &best
	}

	if m := x.lib.GPA.FindStringSubmatch(text); m != nil {
		if gpa, err := strconv.ParseFloat(strings.TrimSuffix(m[1], "."), 64); err == nil &&
			gpa >= patterns.MinGPA && gpa <= patterns.MaxGPA {
			e.GPA = &gpa
		}
	}

	return e, !e.IsEmpty()
}

// isHeading reports whether the first section line is just the section title.
func (x *EducationExtractor) isHeading(line string) bool {
	return !x.lib.Degree.MatchString(line) && !x.lib.Institution.MatchString(line) && !x.lib.Year.MatchString(line)
}
