package tailoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-extractor/internal/types"
)

func resume(skills []string, raw string, descriptions ...string) *types.ResumeData {
	r := types.NewResumeData()
	r.Skills = skills
	r.RawText = raw
	for i, d := range descriptions {
		r.Experience = append(r.Experience, types.WorkExperience{
			Company:     types.StringPtr("Company " + string(rune('A'+i))),
			Role:        types.StringPtr("Engineer"),
			Description: types.StringPtr(d),
			SkillsUsed:  []string{},
		})
	}
	return r
}

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		reqs   []string
		want   float64
	}{
		{name: "no requirements", skills: []string{"python"}, reqs: nil, want: 0.5},
		{name: "blank requirements", skills: []string{"python"}, reqs: []string{" ", ""}, want: 0.5},
		{name: "full coverage", skills: []string{"python", "sql"}, reqs: []string{"Python", "SQL"}, want: 1.0},
		{name: "half", skills: []string{"python"}, reqs: []string{"Python", "Go"}, want: 0.5},
		{name: "substring of a skill", skills: []string{"postgresql"}, reqs: []string{"SQL"}, want: 1.0},
		{name: "none", skills: []string{}, reqs: []string{"Rust"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &types.JobPosting{Requirements: tt.reqs}
			assert.InDelta(t, tt.want, MatchScore(resume(tt.skills, ""), job), 1e-9)
		})
	}
}

func TestJobKeywords(t *testing.T) {
	job := &types.JobPosting{
		Title:        "Senior Data Engineer",
		Requirements: []string{"Python", "SQL", "python"},
		Description:  "We run Docker on AWS and practice Agile. Machine learning is a plus.",
	}

	assert.Equal(t,
		[]string{"python", "sql", "senior", "data", "engineer", "aws", "docker", "machine learning", "agile"},
		JobKeywords(job))
}

func TestJobKeywords_CappedAtTen(t *testing.T) {
	job := &types.JobPosting{
		Requirements: []string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8"},
		Description:  "python java react sql",
	}

	kws := JobKeywords(job)
	assert.Len(t, kws, 10)
	assert.Equal(t, "java", kws[9])
}

func TestGeneratePatchPlan_SkillGap(t *testing.T) {
	job := &types.JobPosting{Title: "Intern", Requirements: []string{"Python", "Go", "Rust", "Kafka", "Terraform"}}

	plan := GeneratePatchPlan(resume([]string{"python"}, "python"), job)
	require.NotEmpty(t, plan.Items)

	item := plan.Items[0]
	assert.Equal(t, SkillsSectionID, item.ID)
	assert.Equal(t, types.ActionInsertAfter, item.Action)
	assert.Equal(t, "go, rust, kafka", types.Deref(item.SuggestedText))
	assert.Equal(t, "Add key skills mentioned in job requirements: go, rust, kafka", item.Rationale)
	assert.InDelta(t, 0.2, plan.MatchScore, 1e-9)
	assert.Equal(t, DefaultResumeID, plan.ResumeID)
}

func TestGeneratePatchPlan_NoGapNoSkillsItem(t *testing.T) {
	job := &types.JobPosting{Requirements: []string{"Python"}}

	plan := GeneratePatchPlan(resume([]string{"python"}, "python"), job)
	assert.Empty(t, plan.Items)
	assert.NotNil(t, plan.Items)
	assert.Equal(t, 1.0, plan.MatchScore)
}

func TestGeneratePatchPlan_ExperienceEdits(t *testing.T) {
	job := &types.JobPosting{Requirements: []string{"Python", "SQL", "Docker"}}
	r := resume([]string{"python", "sql", "docker"}, "python sql docker",
		"Built Python services with SQL storage",
		"Managed the office supply budget",
		"",
	)

	plan := GeneratePatchPlan(r, job)
	require.Len(t, plan.Items, 1)

	item := plan.Items[0]
	assert.Equal(t, "experience_1_description", item.ID)
	assert.Equal(t, types.ActionEdit, item.Action)
	assert.Equal(t, "Managed the office supply budget Utilized python, sql to deliver results.", types.Deref(item.SuggestedText))
	assert.Equal(t, "Enhance experience description to highlight python, sql mentioned in job posting", item.Rationale)
}

func TestGeneratePatchPlan_EditNamesMissingKeywords(t *testing.T) {
	job := &types.JobPosting{Requirements: []string{"Python", "SQL", "Docker"}}
	r := resume([]string{"python", "sql", "docker"}, "python sql docker", "Wrote Python scripts")

	plan := GeneratePatchPlan(r, job)
	require.Len(t, plan.Items, 1)
	assert.Equal(t, "Wrote Python scripts Utilized sql, docker to deliver results.", types.Deref(plan.Items[0].SuggestedText))
}

func TestGeneratePatchPlan_Summary(t *testing.T) {
	job := &types.JobPosting{
		Title:        "Backend Developer",
		Requirements: []string{"Go"},
		Description:  "Kubernetes and AWS experience",
	}
	r := resume([]string{"go"}, "Go developer")

	plan := GeneratePatchPlan(r, job)
	require.Len(t, plan.Items, 1)
	item := plan.Items[0]
	assert.Equal(t, SummarySectionID, item.ID)
	assert.Equal(t, types.ActionInsertAfter, item.Action)
	assert.Equal(t, "Experienced in backend, aws, kubernetes with strong problem-solving abilities.", types.Deref(item.SuggestedText))
	assert.Equal(t, "Add professional summary highlighting key job requirements", item.Rationale)
}

func TestGeneratePatchPlan_ItemOrder(t *testing.T) {
	job := &types.JobPosting{
		Title:        "Platform Engineer",
		Requirements: []string{"Terraform", "Kafka"},
		Description:  "docker and aws",
	}
	r := resume([]string{}, "nothing relevant", "Answered phones")

	plan := GeneratePatchPlan(r, job)
	ids := make([]string, len(plan.Items))
	for i, it := range plan.Items {
		ids[i] = it.ID
		assert.True(t, it.Action.Valid())
	}
	assert.Equal(t, []string{SkillsSectionID, "experience_0_description", SummarySectionID}, ids)
}

func TestContainsWord(t *testing.T) {
	assert.True(t, containsWord("built python, sql and go", "python"))
	assert.True(t, containsWord("c++ services", "c++"))
	assert.True(t, containsWord("applied machine learning daily", "machine learning"))
	assert.False(t, containsWord("javascript only", "java"))
	assert.False(t, containsWord("", "go"))
}

func TestAnalyze(t *testing.T) {
	job := &types.JobPosting{
		Title:        "Data Analyst",
		Requirements: []string{"SQL", "Python", "Tableau", "Excel", "Statistics"},
	}
	r := resume([]string{"sql", "python"}, "",
		"Built SQL reports in Python and Excel for the data team",
		"Answered phones",
	)

	a := Analyze(r, job)

	assert.Equal(t, 40.0, a.SkillAnalysis.MatchPercentage)
	assert.Equal(t, []string{"sql", "python"}, a.SkillAnalysis.MatchedSkills)
	assert.Equal(t, []string{"tableau", "excel", "statistics"}, a.SkillAnalysis.MissingSkills)
	assert.Equal(t, 5, a.SkillAnalysis.TotalRequirements)

	// keywords: sql python tableau excel statistics data analyst -> 4 of 7 hit
	require.Len(t, a.ExperienceAnalysis.RelevantExperiences, 1)
	assert.Equal(t, 0, a.ExperienceAnalysis.RelevantExperiences[0].Index)
	assert.InDelta(t, 4.0/7.0, a.ExperienceAnalysis.RelevantExperiences[0].RelevanceScore, 1e-9)
	assert.Equal(t, 0.29, a.ExperienceAnalysis.RelevanceScore)
	assert.Equal(t, 2, a.ExperienceAnalysis.TotalExperiences)

	assert.Equal(t, 0.36, a.CompatibilityScore)
	assert.Equal(t, []string{
		"Add these missing skills: tableau, excel, statistics",
		"Consider highlighting more relevant experience that aligns with job requirements",
	}, a.Recommendations)
}

func TestAnalyze_Recommendations(t *testing.T) {
	many := &types.JobPosting{Requirements: []string{"a", "b", "c", "d"}}
	a := Analyze(resume(nil, ""), many)
	assert.Contains(t, a.Recommendations, "Consider adding 4 missing key skills to your resume")

	good := &types.JobPosting{Title: "Go", Requirements: []string{"go"}}
	a = Analyze(resume([]string{"go"}, "", "Wrote go services"), good)
	assert.Equal(t, 1.0, a.CompatibilityScore)
	assert.Equal(t, []string{"Your resume shows good alignment with this job posting"}, a.Recommendations)
}

func TestAnalyze_EmptyInputs(t *testing.T) {
	a := Analyze(types.NewResumeData(), &types.JobPosting{})

	assert.Equal(t, 0.0, a.CompatibilityScore)
	assert.Empty(t, a.SkillAnalysis.MissingSkills)
	assert.Empty(t, a.ExperienceAnalysis.RelevantExperiences)
}
