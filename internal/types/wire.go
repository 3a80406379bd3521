package types

import (
	"encoding/json"
	"fmt"
	"math"
)

// ToMap converts the resume into the plain nested mapping persisted by the job
// queue and returned by the API. The raw text is not part of the mapping.
func (r *ResumeData) ToMap() map[string]any {
	education := make([]any, 0, len(r.Education))
	for _, e := range r.Education {
		education = append(education, map[string]any{
			"degree":          optString(e.Degree),
			"field":           optString(e.Field),
			"institution":     optString(e.Institution),
			"graduation_year": optInt(e.GraduationYear),
			"gpa":             optFloat(e.GPA),
		})
	}

	experience := make([]any, 0, len(r.Experience))
	for _, w := range r.Experience {
		skills := make([]any, 0, len(w.SkillsUsed))
		for _, s := range w.SkillsUsed {
			skills = append(skills, s)
		}
		experience = append(experience, map[string]any{
			"company":     optString(w.Company),
			"role":        optString(w.Role),
			"start_date":  optString(w.StartDate),
			"end_date":    optString(w.EndDate),
			"location":    optString(w.Location),
			"description": optString(w.Description),
			"skills_used": skills,
		})
	}

	skills := make([]any, 0, len(r.Skills))
	for _, s := range r.Skills {
		skills = append(skills, s)
	}

	additional := make(map[string]any, len(r.AdditionalSections))
	for name, s := range r.AdditionalSections {
		additional[name] = map[string]any{"title": s.Title, "content": s.Content}
	}

	return map[string]any{
		"contact": map[string]any{
			"name":     optString(r.Contact.Name),
			"email":    optString(r.Contact.Email),
			"phone":    optString(r.Contact.Phone),
			"linkedin": optString(r.Contact.LinkedIn),
			"github":   optString(r.Contact.GitHub),
		},
		"education":           education,
		"experience":          experience,
		"skills":              skills,
		"additional_sections": additional,
	}
}

// ResumeDataFromMap rebuilds a ResumeData from its wire mapping. It accepts both
// the output of ToMap and a mapping decoded from JSON (numbers as float64).
func ResumeDataFromMap(m map[string]any) (*ResumeData, error) {
	// JSON is the common denominator of both input shapes.
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode resume mapping: %w", err)
	}

	r := NewResumeData()
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to decode resume mapping: %w", err)
	}
	r.normalize()
	return r, nil
}

// normalize replaces nil collections left by decoding with empty ones.
func (r *ResumeData) normalize() {
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Experience == nil {
		r.Experience = []WorkExperience{}
	}
	for i := range r.Experience {
		if r.Experience[i].SkillsUsed == nil {
			r.Experience[i].SkillsUsed = []string{}
		}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.AdditionalSections == nil {
		r.AdditionalSections = map[string]AdditionalSection{}
	}
}

func optString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func optInt(i *int) any {
	if i == nil {
		return nil
	}
	return *i
}

func optFloat(f *float64) any {
	if f == nil || math.IsNaN(*f) {
		return nil
	}
	return *f
}
