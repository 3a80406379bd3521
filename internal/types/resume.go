// Package types provides type definitions for structured data used throughout the resume-extractor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
)

// ContactInfo holds the candidate's contact details. Every field is optional.
type ContactInfo struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

// Education is one education entry.
type Education struct {
	Degree         *string  `json:"degree"`
	Field          *string  `json:"field"`
	Institution    *string  `json:"institution"`
	GraduationYear *int     `json:"graduation_year"`
	GPA            *float64 `json:"gpa"`
}

// IsEmpty reports whether the entry lacks degree, institution and graduation year.
// Such entries are discarded by the extractor.
func (e Education) IsEmpty() bool {
	return e.Degree == nil && e.Institution == nil && e.GraduationYear == nil
}

// WorkExperience is one job entry. Dates are kept as the raw text fragments
// found in the document ("May 2025", "2023", "Present").
type WorkExperience struct {
	Company     *string  `json:"company"`
	Role        *string  `json:"role"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
	SkillsUsed  []string `json:"skills_used"`
}

// IsEmpty reports whether the entry has neither company nor role.
func (w WorkExperience) IsEmpty() bool {
	return w.Company == nil && w.Role == nil
}

// AdditionalSection is a detected section other than education, experience and skills.
type AdditionalSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Items splits the section content into individual items on newlines and commas.
func (s AdditionalSection) Items() []string {
	items := []string{}
	for _, line := range strings.Split(s.Content, "\n") {
		for _, part := range strings.Split(line, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
	}
	return items
}

// ResumeData is the aggregate produced by the extraction pipeline.
type ResumeData struct {
	Contact            ContactInfo                  `json:"contact"`
	Education          []Education                  `json:"education"`
	Experience         []WorkExperience             `json:"experience"`
	Skills             []string                     `json:"skills"`
	AdditionalSections map[string]AdditionalSection `json:"additional_sections"`
	RawText            string                       `json:"raw_text,omitempty"`
}

// NewResumeData returns an empty ResumeData with non-nil collections.
func NewResumeData() *ResumeData {
	return &ResumeData{
		Education:          []Education{},
		Experience:         []WorkExperience{},
		Skills:             []string{},
		AdditionalSections: map[string]AdditionalSection{},
	}
}

// Section returns the additional section with the given name, matched case-insensitively.
func (r *ResumeData) Section(name string) (AdditionalSection, bool) {
	if s, ok := r.AdditionalSections[name]; ok {
		return s, true
	}
	for key, s := range r.AdditionalSections {
		if strings.EqualFold(key, name) {
			return s, true
		}
	}
	return AdditionalSection{}, false
}

// HasSection reports whether an additional section with the given name exists.
func (r *ResumeData) HasSection(name string) bool {
	_, ok := r.Section(name)
	return ok
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
