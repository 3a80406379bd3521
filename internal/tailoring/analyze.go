package tailoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	skillWeight      = 0.6
	experienceWeight = 0.4
	// relevantThreshold is exclusive.
	relevantThreshold = 0.3
	// lowRelevance triggers the experience recommendation.
	lowRelevance = 0.5
	// maxListedMissing is the missing skill count still named one by one.
	maxListedMissing = 3
)

// SkillAnalysis compares the resume skills with the posting requirements.
type SkillAnalysis struct {
	MatchPercentage   float64  `json:"match_percentage"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	TotalRequirements int      `json:"total_requirements"`
}

// RelevantExperience is an experience entry scoring above the threshold.
type RelevantExperience struct {
	Index          int     `json:"index"`
	Company        *string `json:"company"`
	Role           *string `json:"role"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ExperienceAnalysis scores how well the experience descriptions mention the
// posting keywords.
type ExperienceAnalysis struct {
	RelevanceScore      float64              `json:"relevance_score"`
	RelevantExperiences []RelevantExperience `json:"relevant_experiences"`
	TotalExperiences    int                  `json:"total_experiences"`
}

// Analysis is the compatibility report for one resume and posting.
type Analysis struct {
	CompatibilityScore float64            `json:"compatibility_score"`
	SkillAnalysis      SkillAnalysis      `json:"skill_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	Recommendations    []string           `json:"recommendations"`
}

// Analyze scores the resume against the posting. The compatibility score
// weighs skill coverage at 60% and experience relevance at 40%.
func Analyze(resume *types.ResumeData, job *types.JobPosting) *Analysis {
	skills := analyzeSkills(resume, job)
	experience := analyzeExperience(resume, job)

	a := &Analysis{
		CompatibilityScore: round2(skills.MatchPercentage/100*skillWeight + experience.RelevanceScore*experienceWeight),
		SkillAnalysis:      skills,
		ExperienceAnalysis: experience,
	}
	a.Recommendations = recommendations(skills, experience)
	return a
}

func analyzeSkills(resume *types.ResumeData, job *types.JobPosting) SkillAnalysis {
	reqs := requirements(job)
	out := SkillAnalysis{MatchedSkills: []string{}, MissingSkills: []string{}, TotalRequirements: len(reqs)}
	if len(reqs) == 0 {
		return out
	}
	for _, req := range reqs {
		if coveredBySkills(req, resume.Skills) {
			out.MatchedSkills = append(out.MatchedSkills, req)
		} else {
			out.MissingSkills = append(out.MissingSkills, req)
		}
	}
	out.MatchPercentage = round2(float64(len(out.MatchedSkills)) / float64(len(reqs)) * 100)
	return out
}

func analyzeExperience(resume *types.ResumeData, job *types.JobPosting) ExperienceAnalysis {
	out := ExperienceAnalysis{RelevantExperiences: []RelevantExperience{}, TotalExperiences: len(resume.Experience)}
	if len(resume.Experience) == 0 {
		return out
	}

	keywords := analysisKeywords(job)
	var sum float64
	for i, exp := range resume.Experience {
		score := experienceRelevance(types.Deref(exp.Description), keywords)
		if score <= relevantThreshold {
			continue
		}
		sum += score
		out.RelevantExperiences = append(out.RelevantExperiences, RelevantExperience{
			Index:          i,
			Company:        exp.Company,
			Role:           exp.Role,
			RelevanceScore: score,
		})
	}
	out.RelevanceScore = round2(sum / float64(len(resume.Experience)))
	return out
}

// experienceRelevance is the share of keywords mentioned in the description,
// capped at 1.
func experienceRelevance(description string, keywords []string) float64 {
	if strings.TrimSpace(description) == "" || len(keywords) == 0 {
		return 0
	}
	lowered := strings.ToLower(description)
	hits := 0
	for _, kw := range keywords {
		if containsWord(lowered, kw) {
			hits++
		}
	}
	return min(float64(hits)/float64(len(keywords)), 1.0)
}

func recommendations(skills SkillAnalysis, experience ExperienceAnalysis) []string {
	var out []string
	switch n := len(skills.MissingSkills); {
	case n > maxListedMissing:
		out = append(out, fmt.Sprintf("Consider adding %d missing key skills to your resume", n))
	case n > 0:
		out = append(out, "Add these missing skills: "+strings.Join(skills.MissingSkills, ", "))
	}
	if experience.RelevanceScore < lowRelevance {
		out = append(out, "Consider highlighting more relevant experience that aligns with job requirements")
	}
	if len(out) == 0 {
		out = append(out, "Your resume shows good alignment with this job posting")
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
