// Package tailoring compares a parsed resume against a job posting and
// proposes edits.
package tailoring

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// maxJobKeywords caps the keywords derived from a posting.
const maxJobKeywords = 10

// minTitleWordLen is exclusive: title words must be longer than this.
const minTitleWordLen = 3

// commonTechTerms are picked up from the posting description.
var commonTechTerms = []string{
	"python", "java", "javascript", "react", "sql", "aws", "docker",
	"kubernetes", "machine learning", "data analysis", "agile", "scrum",
}

// requirements returns the lowercased, non-blank posting requirements.
func requirements(job *types.JobPosting) []string {
	out := make([]string, 0, len(job.Requirements))
	for _, r := range job.Requirements {
		if r = strings.ToLower(strings.TrimSpace(r)); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// titleWords returns the lowercased title words longer than minTitleWordLen.
func titleWords(job *types.JobPosting) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(job.Title)) {
		if len(w) > minTitleWordLen {
			out = append(out, w)
		}
	}
	return out
}

// JobKeywords derives up to ten keywords from the posting: the requirements,
// the longer title words, then the common tech terms found in the
// description. Order is preserved and duplicates are dropped.
func JobKeywords(job *types.JobPosting) []string {
	candidates := append(requirements(job), titleWords(job)...)
	desc := strings.ToLower(job.Description)
	for _, term := range commonTechTerms {
		if strings.Contains(desc, term) {
			candidates = append(candidates, term)
		}
	}
	return firstUnique(candidates, maxJobKeywords)
}

// analysisKeywords is the keyword set used by Analyze: requirements and
// title words, without the description terms.
func analysisKeywords(job *types.JobPosting) []string {
	return firstUnique(append(requirements(job), titleWords(job)...), 0)
}

// firstUnique drops blanks and duplicates, keeping at most limit entries
// when limit is positive.
func firstUnique(items []string, limit int) []string {
	seen := make(map[string]bool, len(items))
	out := []string{}
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// containsWord reports whether keyword occurs in lowered text as a whole word
// or phrase.
func containsWord(lowered, keyword string) bool {
	re, err := regexp.Compile(`(^|[^\pL\pN])` + regexp.QuoteMeta(keyword) + `($|[^\pL\pN])`)
	if err != nil {
		return false
	}
	return re.MatchString(lowered)
}

// coveredBySkills reports whether req is a substring of any resume skill.
func coveredBySkills(req string, skills []string) bool {
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s), req) {
			return true
		}
	}
	return false
}
