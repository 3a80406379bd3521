package tailoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Patch item ids addressed by the generated plan.
const (
	SkillsSectionID  = "skills_section"
	SummarySectionID = "summary_section"
)

const (
	// maxSuggestedSkills is how many missing requirements the skills item names.
	maxSuggestedSkills = 3
	// minDescriptionKeywords is the keyword count below which an experience
	// description gets an edit.
	minDescriptionKeywords = 2
	// maxDescriptionKeywords is how many keywords an experience edit adds.
	maxDescriptionKeywords = 2
	// minMissingForSummary is the missing keyword count that triggers a summary.
	minMissingForSummary = 3
	// defaultMatchScore applies to postings without requirements.
	defaultMatchScore = 0.5
)

// Placeholder ids used when the caller does not set its own.
const (
	DefaultResumeID = "resume_data"
	DefaultJobID    = "job_posting"
)

// GeneratePatchPlan proposes edits that align the resume with the posting:
// a skills insertion for missing requirements, description edits for
// experience that mentions too few job keywords, and a summary when many
// keywords are absent from the resume text. Item order follows that sequence.
func GeneratePatchPlan(resume *types.ResumeData, job *types.JobPosting) *types.PatchPlan {
	keywords := JobKeywords(job)

	items := []types.PatchPlanItem{}
	items = append(items, skillGapItems(resume, job)...)
	items = append(items, experienceItems(resume, keywords)...)
	items = append(items, summaryItems(resume, keywords)...)

	return &types.PatchPlan{
		ResumeID:   DefaultResumeID,
		JobID:      DefaultJobID,
		Items:      items,
		MatchScore: MatchScore(resume, job),
	}
}

// MissingRequirements returns the lowercased requirements that are not a
// substring of any resume skill.
func MissingRequirements(resume *types.ResumeData, job *types.JobPosting) []string {
	missing := []string{}
	for _, req := range requirements(job) {
		if !coveredBySkills(req, resume.Skills) {
			missing = append(missing, req)
		}
	}
	return missing
}

// MatchScore is the share of requirements covered by the resume skills,
// or 0.5 when the posting lists no requirements.
func MatchScore(resume *types.ResumeData, job *types.JobPosting) float64 {
	reqs := requirements(job)
	if len(reqs) == 0 {
		return defaultMatchScore
	}
	matched := 0
	for _, req := range reqs {
		if coveredBySkills(req, resume.Skills) {
			matched++
		}
	}
	return min(float64(matched)/float64(len(reqs)), 1.0)
}

func skillGapItems(resume *types.ResumeData, job *types.JobPosting) []types.PatchPlanItem {
	missing := MissingRequirements(resume, job)
	if len(missing) == 0 {
		return nil
	}
	listed := strings.Join(missing[:min(len(missing), maxSuggestedSkills)], ", ")
	return []types.PatchPlanItem{{
		ID:            SkillsSectionID,
		Action:        types.ActionInsertAfter,
		SuggestedText: &listed,
		Rationale:     "Add key skills mentioned in job requirements: " + listed,
	}}
}

func experienceItems(resume *types.ResumeData, keywords []string) []types.PatchPlanItem {
	var items []types.PatchPlanItem
	for i, exp := range resume.Experience {
		desc := strings.TrimSpace(types.Deref(exp.Description))
		if desc == "" {
			continue
		}

		lowered := strings.ToLower(desc)
		var present, absent []string
		for _, kw := range keywords {
			if containsWord(lowered, kw) {
				present = append(present, kw)
			} else {
				absent = append(absent, kw)
			}
		}
		if len(present) >= minDescriptionKeywords || len(absent) == 0 {
			continue
		}

		top := strings.Join(absent[:min(len(absent), maxDescriptionKeywords)], ", ")
		text := fmt.Sprintf("%s Utilized %s to deliver results.", desc, top)
		items = append(items, types.PatchPlanItem{
			ID:            fmt.Sprintf("experience_%d_description", i),
			Action:        types.ActionEdit,
			SuggestedText: &text,
			Rationale:     fmt.Sprintf("Enhance experience description to highlight %s mentioned in job posting", top),
		})
	}
	return items
}

func summaryItems(resume *types.ResumeData, keywords []string) []types.PatchPlanItem {
	raw := strings.ToLower(resume.RawText)
	var missing []string
	for _, kw := range keywords {
		if !strings.Contains(raw, kw) {
			missing = append(missing, kw)
		}
	}
	if len(missing) < minMissingForSummary {
		return nil
	}

	text := fmt.Sprintf("Experienced in %s with strong problem-solving abilities.",
		strings.Join(missing[:minMissingForSummary], ", "))
	return []types.PatchPlanItem{{
		ID:            SummarySectionID,
		Action:        types.ActionInsertAfter,
		SuggestedText: &text,
		Rationale:     "Add professional summary highlighting key job requirements",
	}}
}
