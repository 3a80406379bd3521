package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/types"
)

const sample = `Jane Doe
jane@example.com

EDUCATION
University of Wisconsin-Madison
B.S. in Computer Science, 2023

EXPERIENCE
Software Engineer | Acme Corp
• Built ETL pipelines in Python

SKILLS
Python, SQL, Docker`

func TestCleanText(t *testing.T) {
	in := "  Jane   Doe \r\n\n\n\n\tEDUCATION  \n\n"
	assert.Equal(t, "Jane Doe\n\nEDUCATION", CleanText(in))
	assert.Equal(t, "", CleanText(" \n\t\n"))
}

func TestIsSectionHeader(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"EXPERIENCE", true},
		{"Technical Skills", true},
		{"Professional Summary", true},
		{"Acme Corp", true},
		{"ACME", true},
		{"Built ETL pipelines in Python for analytics", false},
		{"built things", false},
		{"", false},
		{"2019 - 2023", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSectionHeader(tt.line))
		})
	}
}

func TestIsTitleAndIsUpper(t *testing.T) {
	assert.True(t, IsTitle("Acme Corp"))
	assert.True(t, IsTitle("3M Company"))
	assert.True(t, IsTitle("Wisconsin-Madison"))
	assert.False(t, IsTitle("McDonald"))
	assert.False(t, IsTitle("acme"))
	assert.False(t, IsTitle("2024"))

	assert.True(t, IsUpper("SKILLS & TOOLS"))
	assert.False(t, IsUpper("Skills"))
	assert.False(t, IsUpper("2024"))
}

func TestFindSection(t *testing.T) {
	s, ok := FindSection(sample, patterns.SkillsKeywords)
	require.True(t, ok)
	assert.Equal(t, "SKILLS\nPython, SQL, Docker", s)

	_, ok = FindSection(sample, []string{"publications"})
	assert.False(t, ok)
}

func TestFindSection_ShortTitleLineEndsSection(t *testing.T) {
	// The plain lookup stops at the institution line because it is short and
	// title cased.
	s, ok := FindSection("EDUCATION\nStanford University\nB.S. Computer Science", patterns.EducationKeywords)
	require.True(t, ok)
	assert.Equal(t, "EDUCATION", s)
}

func TestFindSection_RescansFromTop(t *testing.T) {
	text := "EXPERIENCE\nImproved technical onboarding docs\nSKILLS\nGo"
	s, ok := FindSection(text, patterns.SkillsKeywords)
	require.True(t, ok)
	assert.Equal(t, "Improved technical onboarding docs", s, "a body line containing a keyword opens the section")
}

func TestFindHeadedSection(t *testing.T) {
	s, ok := FindHeadedSection(sample, patterns.EducationKeywords)
	require.True(t, ok)
	assert.Equal(t, "EDUCATION\nUniversity of Wisconsin-Madison\nB.S. in Computer Science, 2023\n", s)

	s, ok = FindHeadedSection(sample, patterns.ExperienceKeywords)
	require.True(t, ok)
	assert.Contains(t, s, "Software Engineer | Acme Corp")
	assert.NotContains(t, s, "SKILLS")
}

func TestFindHeadedSection_IgnoresEmbeddedWords(t *testing.T) {
	text := "Network Engineer\nWORK HISTORY\nAcme Corp\nEDUCATION\nState College"
	s, ok := FindHeadedSection(text, patterns.ExperienceKeywords)
	require.True(t, ok)
	assert.Equal(t, "WORK HISTORY\nAcme Corp", s)
}

func TestFindHeadedSection_FallsBack(t *testing.T) {
	text := "Summary of my professional experience and goals in data"
	s, ok := FindHeadedSection(text, patterns.ExperienceKeywords)
	require.True(t, ok)
	assert.Equal(t, text, s)
}

func TestFindAllSections(t *testing.T) {
	found := FindAllSections(sample)
	assert.Contains(t, found, Education)
	assert.Contains(t, found, Experience)
	assert.Contains(t, found, Skills)
	assert.NotContains(t, found, Projects)
}

func TestBoundaries(t *testing.T) {
	b := Boundaries(sample)
	require.Len(t, b, 3)
	assert.Equal(t, Education, b[0].Name)
	assert.Equal(t, "EDUCATION", b[0].Header)
	assert.Equal(t, 3, b[0].Start)
	assert.Equal(t, 7, b[0].End)
	assert.Equal(t, Experience, b[1].Name)
	assert.Equal(t, Skills, b[2].Name)
	assert.Equal(t, 13, b[2].End)
}

func TestMergeAndMatchLayoutSections(t *testing.T) {
	secs := []types.Section{
		{Title: "", Lines: []types.Line{{Text: "Jane Doe"}}},
		{Title: "EXPERIENCE", Header: types.Line{Text: "EXPERIENCE"}, Lines: []types.Line{{Text: "Jan 2020 - Present"}}},
		{Title: "Acme Corp", Header: types.Line{Text: "Acme Corp"}, Lines: []types.Line{{Text: "• Shipped things"}}},
		{Title: "Skills", Header: types.Line{Text: "Skills"}, Lines: []types.Line{{Text: "Go"}}},
	}

	merged := Merge(secs)
	require.Len(t, merged, 3)
	assert.Equal(t, []string{"Jan 2020 - Present", "Acme Corp", "• Shipped things"}, merged[1].Texts())
	assert.Len(t, secs[1].Lines, 1, "input is not modified")

	exp := MatchLayoutSections(secs, patterns.LayoutExperienceTitles)
	require.Len(t, exp, 1)
	assert.Equal(t, "EXPERIENCE", exp[0].Title)

	assert.Len(t, MatchLayoutSections(secs, patterns.LayoutSkillsTitles), 1)
	assert.Empty(t, MatchLayoutSections(secs, patterns.LayoutEducationTitles))
}
