package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/sections"
	"github.com/jonathan/resume-extractor/internal/skills"
	"github.com/jonathan/resume-extractor/internal/types"
)

// Skill proficiency levels reported by SkillLevels.
const (
	LevelExpert       = "expert"
	LevelAdvanced     = "advanced"
	LevelIntermediate = "intermediate"
	LevelBeginner     = "beginner"
)

// levelWindow is how many characters around a skill mention are searched for
// a level keyword.
const levelWindow = 50

var levelKeywords = []struct {
	level    string
	keywords []string
}{
	{LevelExpert, []string{"expert", "expertise", "mastery", "advanced"}},
	{LevelAdvanced, []string{"advanced", "proficient", "experienced"}},
	{LevelIntermediate, []string{"intermediate", "familiar", "working knowledge"}},
	{LevelBeginner, []string{"beginner", "basic", "introduction", "learning"}},
}

// SkillsExtractor matches the skills database against resume text.
type SkillsExtractor struct {
	db *skills.Database
}

// NewSkillsExtractor returns a SkillsExtractor.
func NewSkillsExtractor(db *skills.Database) *SkillsExtractor {
	return &SkillsExtractor{db: db}
}

// FromText matches the skills section, or the whole text when there is none.
func (x *SkillsExtractor) FromText(text string) []string {
	corpus, ok := sections.FindHeadedSection(text, patterns.SkillsKeywords)
	if !ok {
		corpus = text
	}
	return x.db.Match(corpus)
}

// FromLayout matches every layout section titled like skills, or fullText
// when there are none.
func (x *SkillsExtractor) FromLayout(secs []types.Section, fullText string) []string {
	matched := sections.MatchLayoutSections(secs, patterns.LayoutSkillsTitles)
	if len(matched) == 0 {
		return x.db.Match(fullText)
	}
	found := []string{}
	seen := make(map[string]bool)
	for _, s := range matched {
		for _, skill := range x.db.Match(strings.Join(s.Texts(), "\n")) {
			if !seen[skill] {
				seen[skill] = true
				found = append(found, skill)
			}
		}
	}
	return found
}

// SkillLevels maps skills to a proficiency level when a level keyword appears
// within a few dozen characters of a whole-word mention. Skills without a
// nearby keyword are omitted.
func SkillLevels(text string, found []string) map[string]string {
	levels := make(map[string]string)
	lower := strings.ToLower(text)
	for _, skill := range found {
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(lower, -1) {
			window := lower[max(0, loc[0]-levelWindow):min(len(lower), loc[1]+levelWindow)]
			if level := levelIn(window); level != "" {
				levels[skill] = level
				break
			}
		}
	}
	return levels
}

func levelIn(window string) string {
	for _, l := range levelKeywords {
		if containsAny(window, l.keywords) {
			return l.level
		}
	}
	return ""
}
