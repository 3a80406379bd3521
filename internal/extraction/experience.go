package extraction

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/sections"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

// maxHeaderWords bounds the length of a role-keyword header line.
const maxHeaderWords = 8

// maxCompanyWords bounds the length of a company line without a pipe.
const maxCompanyWords = 10

// experienceHeadings are exact section titles that never belong to an entry.
var experienceHeadings = []string{
	"experience", "professional experience", "work experience",
	"employment history", "work history", "career history",
}

// cityPrefixes extend a matched "City, ST" to multi-word city names.
var cityPrefixes = map[string]bool{
	"san": true, "santa": true, "new": true, "los": true, "las": true, "salt": true,
	"st.": true, "saint": true, "fort": true, "palo": true, "mountain": true, "long": true,
	"el": true, "grand": true, "baton": true, "corpus": true, "kansas": true, "oklahoma": true,
	"jersey": true, "ann": true, "little": true, "colorado": true, "sioux": true, "green": true,
	"cedar": true, "west": true, "east": true, "north": true, "south": true, "mill": true,
}

const headerTrim = " \t,|-–—:;·"

// ExperienceExtractor groups experience lines into job entries.
type ExperienceExtractor struct {
	lib    *patterns.Library
	skills *skills.Database
}

// NewExperienceExtractor returns an ExperienceExtractor. The skills database
// fills SkillsUsed from each description; nil leaves it empty.
func NewExperienceExtractor(lib *patterns.Library, db *skills.Database) *ExperienceExtractor {
	return &ExperienceExtractor{lib: lib, skills: db}
}

// FromText locates the experience section, splits it into blocks on blank
// lines and splits each block again wherever a new job header follows the
// description of the previous one.
func (x *ExperienceExtractor) FromText(text string) []types.WorkExperience {
	section, ok := sections.FindHeadedSection(text, patterns.ExperienceKeywords)
	if !ok {
		return []types.WorkExperience{}
	}
	var blocks [][]string
	for i, block := range splitBlocks(section) {
		if i == 0 && x.isHeading(block[0]) {
			block = block[1:]
		}
		block = x.dropHeadings(block)
		if len(block) > 0 {
			blocks = append(blocks, x.splitConservative(block)...)
		}
	}
	return x.parseBlocks(blocks)
}

// FromLayout parses the layout sections titled like experience. Inside a
// section every company line opens a new group. Without such sections it
// falls back to FromText over fullText.
func (x *ExperienceExtractor) FromLayout(secs []types.Section, fullText string) []types.WorkExperience {
	matched := sections.MatchLayoutSections(secs, patterns.LayoutExperienceTitles)
	if len(matched) == 0 {
		return x.FromText(fullText)
	}
	var groups [][]string
	for _, s := range matched {
		var cur []string
		for _, line := range x.dropHeadings(nonEmptyLines(strings.Join(s.Texts(), "\n"))) {
			if len(cur) > 0 && !isBullet(line) && x.ContainsCompanyIndicators(line) {
				groups = append(groups, cur)
				cur = nil
			}
			cur = append(cur, line)
		}
		if len(cur) > 0 {
			groups = append(groups, cur)
		}
	}
	return x.parseBlocks(groups)
}

// parseBlocks parses each block. A block without a header continues the
// description of the entry before it.
func (x *ExperienceExtractor) parseBlocks(blocks [][]string) []types.WorkExperience {
	out := []types.WorkExperience{}
	for _, block := range blocks {
		e, ok := x.ParseBlock(block)
		if ok {
			out = append(out, e)
			continue
		}
		if len(out) == 0 || e.Description == nil {
			continue
		}
		prev := &out[len(out)-1]
		desc := *e.Description
		if prev.Description != nil {
			desc = *prev.Description + "\n" + desc
		}
		prev.Description = &desc
		prev.SkillsUsed = x.skillsUsed(prev.Description)
	}
	return out
}

// splitConservative cuts a block where a description line is followed by a
// line that starts a new job. Company and role-with-date lines always do. A
// short role-keyword line only does when the line before it was a bullet, so
// wrapped description sentences stay with their entry.
func (x *ExperienceExtractor) splitConservative(lines []string) [][]string {
	var out [][]string
	var cur []string
	inDescription := false
	for i, line := range lines {
		if inDescription && x.startsEntry(line, lines[i-1]) {
			out = append(out, cur)
			cur, inDescription = nil, false
		}
		cur = append(cur, line)
		if !inDescription && !x.IsHeaderLine(line) {
			inDescription = true
		}
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func (x *ExperienceExtractor) startsEntry(line, prev string) bool {
	if isBullet(line) || hasPrefixAny(strings.ToLower(line), patterns.DescriptionStarters) {
		return false
	}
	if strings.HasSuffix(line, ".") {
		return false
	}
	if x.containsRoleDate(line) || (x.ContainsCompanyIndicators(line) && mostlyCapitalized(line)) {
		return true
	}
	return isBullet(prev) && x.containsJobKeywords(line) && wordCount(line) <= maxHeaderWords
}

// mostlyCapitalized reports whether at least half of the words that start
// with a letter start with an upper case one. Sentences fail; names pass.
func mostlyCapitalized(line string) bool {
	upper, words := 0, 0
	for _, w := range strings.Fields(line) {
		r := []rune(w)[0]
		if !unicode.IsLetter(r) {
			continue
		}
		words++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	return words > 0 && upper*2 >= words
}

// ParseBlock parses one entry. Leading header lines give role, company,
// location and dates; the first other line starts the description, which
// runs to the end of the block. It reports false when neither company nor
// role was found, returning the description so callers can reattach it.
func (x *ExperienceExtractor) ParseBlock(lines []string) (types.WorkExperience, bool) {
	e := types.WorkExperience{SkillsUsed: []string{}}

	var header, description []string
	for i, line := range lines {
		if !x.IsHeaderLine(line) {
			description = lines[i:]
			break
		}
		header = append(header, line)
	}

	first := true
	for _, line := range header {
		rest := x.stripDates(line)
		if rest == "" {
			continue
		}
		if first {
			x.parseFirstHeader(rest, &e)
			first = false
			continue
		}
		switch {
		case e.Role == nil && (x.containsRoleDate(line) || x.looksLikeRole(rest)):
			e.Role = types.StringPtr(rest)
		case e.Company == nil && x.ContainsCompanyIndicators(rest):
			x.parseCompany(rest, &e)
		}
	}
	x.extractDates(header, &e)

	var desc []string
	for _, line := range description {
		if clean := stripBullet(line); clean != "" {
			desc = append(desc, clean)
		}
	}
	if len(desc) > 0 {
		e.Description = types.StringPtr(strings.Join(desc, "\n"))
		e.SkillsUsed = x.skillsUsed(e.Description)
	}

	return e, !e.IsEmpty()
}

// parseFirstHeader tries, in order: "Role | Company", "Company City, ST",
// "Role at Company", then a company/role guess defaulting to company.
func (x *ExperienceExtractor) parseFirstHeader(line string, e *types.WorkExperience) {
	if strings.Contains(line, "|") {
		var parts []string
		for _, p := range strings.Split(line, "|") {
			p = strings.Trim(p, headerTrim)
			if p == "" {
				continue
			}
			if loc, rest := x.splitLocation(p); loc != "" && rest == "" {
				e.Location = types.StringPtr(loc)
				continue
			}
			parts = append(parts, p)
		}
		switch {
		case len(parts) >= 2:
			role, company := parts[0], parts[1]
			if x.ContainsCompanyIndicators(role) && !x.ContainsCompanyIndicators(company) && x.containsJobKeywords(company) {
				role, company = company, role
			}
			e.Role = types.StringPtr(role)
			x.parseCompany(company, e)
			return
		case len(parts) == 1:
			line = parts[0]
		default:
			return
		}
	}

	if loc, rest := x.splitLocation(line); loc != "" {
		e.Location = types.StringPtr(loc)
		if m := x.lib.RoleAt.FindStringSubmatch(rest); m != nil {
			e.Role = types.StringPtr(m[1])
			e.Company = types.StringPtr(strings.Trim(m[2], headerTrim))
			return
		}
		if rest != "" {
			e.Company = types.StringPtr(rest)
		}
		return
	}

	if m := x.lib.RoleAt.FindStringSubmatch(line); m != nil {
		e.Role = types.StringPtr(m[1])
		e.Company = types.StringPtr(m[2])
		return
	}

	if !x.ContainsCompanyIndicators(line) && x.containsJobKeywords(line) {
		e.Role = types.StringPtr(line)
		return
	}
	e.Company = types.StringPtr(line)
}

func (x *ExperienceExtractor) parseCompany(text string, e *types.WorkExperience) {
	loc, rest := x.splitLocation(text)
	if loc == "" {
		e.Company = types.StringPtr(text)
		return
	}
	if e.Location == nil {
		e.Location = types.StringPtr(loc)
	}
	if rest != "" {
		e.Company = types.StringPtr(rest)
	}
}

// splitLocation finds a trailing "City, ST" and returns it with the text
// before it. Known multi-word city prefixes are pulled into the location.
func (x *ExperienceExtractor) splitLocation(text string) (loc, rest string) {
	idx := x.lib.CityState.FindStringIndex(text)
	if idx == nil {
		return "", text
	}
	start := idx[0]
	before := strings.TrimRight(text[:start], " ")
	for {
		sp := strings.LastIndexAny(before, " ,|")
		word := before[sp+1:]
		if word == "" || !cityPrefixes[strings.ToLower(word)] {
			break
		}
		start = sp + 1
		before = strings.TrimRight(before[:sp+1], " ")
		if sp < 0 {
			break
		}
	}
	return text[start:idx[1]], strings.Trim(text[:start], headerTrim)
}

// IsHeaderLine reports whether a line can belong to an entry's header run.
func (x *ExperienceExtractor) IsHeaderLine(line string) bool {
	if isBullet(line) || hasPrefixAny(strings.ToLower(line), patterns.DescriptionStarters) {
		return false
	}
	if x.ContainsCompanyIndicators(line) || x.containsRoleDate(line) {
		return true
	}
	if x.containsJobKeywords(line) && wordCount(line) < maxHeaderWords {
		return true
	}
	return x.hasDate(line) && x.stripDates(line) == ""
}

// ContainsCompanyIndicators is deliberately strict: description-like lines,
// long lines and bullet lines never qualify.
func (x *ExperienceExtractor) ContainsCompanyIndicators(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" || hasPrefixAny(lower, patterns.DescriptionStarters) {
		return false
	}
	hasPipe := strings.Contains(line, "|")
	if wordCount(line) > maxCompanyWords && !hasPipe {
		return false
	}
	if strings.Contains(line, "•") {
		return false
	}
	if hasPipe && containsAny(lower, patterns.PipeRoleKeywords) {
		return true
	}
	return x.lib.CompanySuffix.MatchString(line) ||
		x.lib.CityState.MatchString(line) ||
		x.lib.KnownCompany.MatchString(line)
}

func (x *ExperienceExtractor) containsJobKeywords(line string) bool {
	return containsAny(strings.ToLower(line), patterns.JobKeywords)
}

func (x *ExperienceExtractor) containsRoleDate(line string) bool {
	return containsAny(strings.ToLower(line), patterns.RoleKeywords) && x.hasDate(line)
}

func (x *ExperienceExtractor) looksLikeRole(line string) bool {
	return x.containsJobKeywords(line) && !x.ContainsCompanyIndicators(line)
}

func (x *ExperienceExtractor) hasDate(line string) bool {
	return x.lib.YearRange.MatchString(line) || x.lib.MonthYear.MatchString(line) || x.lib.NumericDate.MatchString(line)
}

// stripDates removes date ranges and single dates and trims separators left behind.
func (x *ExperienceExtractor) stripDates(line string) string {
	for _, re := range []*regexp.Regexp{x.lib.MonthRange, x.lib.NumericRange, x.lib.YearRange, x.lib.MonthYear, x.lib.NumericDate} {
		line = re.ReplaceAllString(line, " ")
	}
	line = strings.Join(strings.Fields(line), " ")
	line = strings.ReplaceAll(line, "( )", "")
	line = strings.ReplaceAll(line, "()", "")
	return strings.Trim(line, headerTrim)
}

// extractDates fills StartDate and EndDate from the first header line that
// carries a range, trying month ranges, year ranges and numeric ranges in
// that order. A lone month-year or year becomes the start date.
func (x *ExperienceExtractor) extractDates(header []string, e *types.WorkExperience) {
	for _, re := range []*regexp.Regexp{x.lib.MonthRange, x.lib.YearRange, x.lib.NumericRange} {
		for _, line := range header {
			if m := re.FindStringSubmatch(line); m != nil {
				e.StartDate = types.StringPtr(normalizeDate(m[1]))
				e.EndDate = types.StringPtr(x.normalizeEnd(m[2]))
				return
			}
		}
	}
	for _, re := range []*regexp.Regexp{x.lib.MonthYear, x.lib.NumericDate, x.lib.Year} {
		for _, line := range header {
			if m := re.FindStringSubmatch(line); m != nil {
				e.StartDate = types.StringPtr(normalizeDate(m[1]))
				return
			}
		}
	}
}

func (x *ExperienceExtractor) normalizeEnd(s string) string {
	if x.lib.Present.MatchString(strings.TrimSpace(s)) {
		return "Present"
	}
	return normalizeDate(s)
}

func normalizeDate(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (x *ExperienceExtractor) skillsUsed(desc *string) []string {
	if x.skills == nil || desc == nil {
		return []string{}
	}
	return x.skills.Match(*desc)
}

// isHeading reports whether a block's first line is the section title.
func (x *ExperienceExtractor) isHeading(line string) bool {
	return sections.KnownTitle(line) && !x.ContainsCompanyIndicators(line) && !x.hasDate(line)
}

func (x *ExperienceExtractor) dropHeadings(lines []string) []string {
	out := lines[:0:0]
	for _, l := range lines {
		lower := strings.ToLower(strings.TrimSpace(l))
		skip := false
		for _, h := range experienceHeadings {
			if lower == h {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, l)
		}
	}
	return out
}
