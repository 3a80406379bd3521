//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResume() *ResumeData {
	year := 2023
	gpa := 3.8
	r := NewResumeData()
	r.Contact = ContactInfo{
		Name:  StringPtr("John Doe"),
		Email: StringPtr("john.doe@email.com"),
		Phone: StringPtr("(555) 123-4567"),
	}
	r.Education = []Education{{
		Degree:         StringPtr("Bachelor"),
		Field:          StringPtr("Computer Science"),
		Institution:    StringPtr("University of Technology"),
		GraduationYear: &year,
		GPA:            &gpa,
	}}
	r.Experience = []WorkExperience{{
		Company:     StringPtr("Tech Company Inc."),
		Role:        StringPtr("Software Engineering Intern"),
		StartDate:   StringPtr("June 2022"),
		EndDate:     StringPtr("Present"),
		Description: StringPtr("Developed web applications\nWrote unit tests"),
		SkillsUsed:  []string{"python"},
	}}
	r.Skills = []string{"python", "react"}
	r.AdditionalSections["projects"] = AdditionalSection{Title: "Projects", Content: "Resume parser, Job board\nChess engine"}
	r.RawText = "John Doe"
	return r
}

func TestAdditionalSection_Items(t *testing.T) {
	s := AdditionalSection{Title: "Languages", Content: "English, Spanish\n\n French ,"}
	assert.Equal(t, []string{"English", "Spanish", "French"}, s.Items())

	assert.Empty(t, AdditionalSection{}.Items())
}

func TestResumeData_SectionLookupIsCaseInsensitive(t *testing.T) {
	r := sampleResume()

	s, ok := r.Section("PROJECTS")
	require.True(t, ok)
	assert.Equal(t, "Projects", s.Title)
	assert.True(t, r.HasSection("Projects"))
	assert.False(t, r.HasSection("awards"))
}

func TestResumeData_ToMapShape(t *testing.T) {
	m := sampleResume().ToMap()

	assert.ElementsMatch(t, []string{"contact", "education", "experience", "skills", "additional_sections"}, keys(m))

	contact := m["contact"].(map[string]any)
	assert.Equal(t, "John Doe", contact["name"])
	assert.Nil(t, contact["linkedin"])

	edu := m["education"].([]any)[0].(map[string]any)
	assert.Equal(t, 2023, edu["graduation_year"])
	assert.Equal(t, 3.8, edu["gpa"])

	exp := m["experience"].([]any)[0].(map[string]any)
	assert.Equal(t, "Present", exp["end_date"])
	assert.Nil(t, exp["location"])
}

func TestResumeData_MapRoundTrip(t *testing.T) {
	original := sampleResume()

	back, err := ResumeDataFromMap(original.ToMap())
	require.NoError(t, err)

	assert.Equal(t, original.Contact, back.Contact)
	assert.Equal(t, original.Education, back.Education)
	assert.Equal(t, original.Experience, back.Experience)
	assert.Equal(t, original.Skills, back.Skills)
	assert.Equal(t, original.AdditionalSections, back.AdditionalSections)
}

func TestResumeData_MapRoundTripThroughJSON(t *testing.T) {
	original := sampleResume()

	data, err := json.Marshal(original.ToMap())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	back, err := ResumeDataFromMap(decoded)
	require.NoError(t, err)
	assert.Equal(t, 2023, *back.Education[0].GraduationYear)
	assert.Equal(t, original.Experience[0].Description, back.Experience[0].Description)
}

func TestResumeData_EmptySerializesCollectionsAsArrays(t *testing.T) {
	data, err := json.Marshal(NewResumeData())
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"education":[]`)
	assert.Contains(t, s, `"skills":[]`)
	assert.Contains(t, s, `"name":null`)
}

func TestEntryEmptiness(t *testing.T) {
	assert.True(t, Education{GPA: new(float64)}.IsEmpty())
	assert.False(t, Education{Institution: StringPtr("MIT")}.IsEmpty())
	assert.True(t, WorkExperience{Description: StringPtr("did things")}.IsEmpty())
	assert.False(t, WorkExperience{Role: StringPtr("Intern")}.IsEmpty())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr("   "))
	assert.Equal(t, "x", *StringPtr(" x "))
	assert.Equal(t, "", Deref(nil))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
