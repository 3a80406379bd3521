// Package sections partitions resume text and layout sections into named spans.
package sections

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/resume-extractor/internal/patterns"
)

// Section names used as keys throughout the pipeline.
const (
	Education      = "education"
	Experience     = "experience"
	Skills         = "skills"
	Projects       = "projects"
	Certifications = "certifications"
	Awards         = "awards"
	Publications   = "publications"
	Volunteer      = "volunteer"
	Languages      = "languages"
	Interests      = "interests"
)

// Kind pairs a section name with the keywords that open it.
type Kind struct {
	Name     string
	Keywords []string
}

// CoreKinds are the sections FindAllSections looks for, in order.
var CoreKinds = []Kind{
	{Education, patterns.EducationKeywords},
	{Experience, patterns.ExperienceKeywords},
	{Skills, patterns.SkillsKeywords},
	{Projects, patterns.ProjectsKeywords},
	{Certifications, patterns.CertificationsKeywords},
}

// AdditionalKinds are the non-core sections attached to every ResumeData.
var AdditionalKinds = []Kind{
	{Projects, patterns.ProjectsKeywords},
	{Certifications, patterns.CertificationsKeywords},
	{Awards, patterns.AwardsKeywords},
	{Publications, patterns.PublicationsKeywords},
	{Volunteer, patterns.VolunteerKeywords},
	{Languages, patterns.LanguagesKeywords},
	{Interests, patterns.InterestsKeywords},
}

// CleanText collapses whitespace runs inside every line and trims it. Runs
// of blank lines shrink to a single blank line so entry blocks stay
// separable.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}

// FindSection returns the span that starts at the first line containing any
// keyword (case-insensitive substring) and ends before the next line that
// IsSectionHeader accepts. Every call scans from the top of text.
func FindSection(text string, keywords []string) (string, bool) {
	lines := strings.Split(text, "\n")
	start := firstLine(lines, 0, func(l string) bool { return containsAny(strings.ToLower(l), keywords) })
	if start < 0 {
		return "", false
	}
	end := firstLine(lines, start+1, func(l string) bool {
		l = strings.TrimSpace(l)
		return l != "" && IsSectionHeader(l)
	})
	if end < 0 {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n"), true
}

// FindHeadedSection is the stricter lookup used by the entity extractors.
// The span opens at the first heading line naming one of keywords and closes
// at the next heading line of any kind, so short title-cased entry lines such
// as an employer or school name do not cut the section short. When no heading
// line names the section it falls back to FindSection.
func FindHeadedSection(text string, keywords []string) (string, bool) {
	lines := strings.Split(text, "\n")
	start := firstLine(lines, 0, func(l string) bool { return isHeading(l) && containsAnyWord(l, keywords) })
	if start < 0 {
		return FindSection(text, keywords)
	}
	end := firstLine(lines, start+1, isHeading)
	if end < 0 {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n"), true
}

// FindAllSections applies FindSection once per core kind. Spans may overlap.
func FindAllSections(text string) map[string]string {
	found := make(map[string]string)
	for _, k := range CoreKinds {
		if s, ok := FindSection(text, k.Keywords); ok && strings.TrimSpace(s) != "" {
			found[k.Name] = s
		}
	}
	return found
}

// Boundary is a located section as a half-open line range.
type Boundary struct {
	Name   string `json:"name"`
	Header string `json:"header"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// Boundaries locates every core section and returns their line ranges in
// document order.
func Boundaries(text string) []Boundary {
	lines := strings.Split(text, "\n")
	out := []Boundary{}
	for _, k := range CoreKinds {
		start := firstLine(lines, 0, func(l string) bool { return containsAny(strings.ToLower(l), k.Keywords) })
		if start < 0 {
			continue
		}
		end := firstLine(lines, start+1, func(l string) bool {
			l = strings.TrimSpace(l)
			return l != "" && IsSectionHeader(l)
		})
		if end < 0 {
			end = len(lines)
		}
		out = append(out, Boundary{Name: k.Name, Header: strings.TrimSpace(lines[start]), Start: start, End: end})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// IsSectionHeader reports whether a line looks like a section header: it
// contains a common header keyword, or it has at most three words, fewer
// than 50 characters, and is upper case or title case.
func IsSectionHeader(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return false
	}
	if containsAny(lower, patterns.CommonSectionHeaders) {
		return true
	}
	if len(strings.Fields(line)) <= 3 && len(line) < patterns.MaxHeaderLength {
		return IsUpper(line) || IsTitle(line)
	}
	return false
}

// IsUpper reports whether s has at least one cased letter and no lower case ones.
func IsUpper(s string) bool {
	cased := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			return false
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			cased = true
		}
	}
	return cased
}

// IsTitle reports whether s is title cased: upper case letters only follow
// uncased characters, lower case letters only follow cased ones, and there
// is at least one cased letter.
func IsTitle(s string) bool {
	cased, prevCased := false, false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				return false
			}
			prevCased, cased = true, true
		case unicode.IsLower(r):
			if !prevCased {
				return false
			}
			prevCased = true
		default:
			prevCased = false
		}
	}
	return cased
}

var headingKeywords = func() []string {
	kws := append([]string{}, patterns.CommonSectionHeaders...)
	for _, set := range [][]string{
		patterns.EducationKeywords, patterns.ExperienceKeywords, patterns.SkillsKeywords,
		patterns.ProjectsKeywords, patterns.CertificationsKeywords, patterns.ReferencesKeywords,
		patterns.AwardsKeywords, patterns.PublicationsKeywords, patterns.VolunteerKeywords,
		patterns.LanguagesKeywords, patterns.InterestsKeywords,
	} {
		kws = append(kws, set...)
	}
	return kws
}()

var wordRe = regexp.MustCompile(`[a-z]+`)

// isHeading accepts short lines made of section vocabulary.
func isHeading(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || len(line) >= patterns.MaxHeaderLength || len(strings.Fields(line)) > 4 {
		return false
	}
	if strings.ContainsAny(line, "0123456789@|") {
		return false
	}
	return containsAnyWord(line, headingKeywords)
}

// containsAnyWord matches keywords against whole words of line.
func containsAnyWord(line string, keywords []string) bool {
	words := " " + strings.Join(wordRe.FindAllString(strings.ToLower(line), -1), " ") + " "
	for _, kw := range keywords {
		if strings.Contains(words, " "+strings.ToLower(kw)+" ") {
			return true
		}
	}
	return false
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func firstLine(lines []string, from int, pred func(string) bool) int {
	for i := from; i < len(lines); i++ {
		if pred(lines[i]) {
			return i
		}
	}
	return -1
}
