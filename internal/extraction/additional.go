package extraction

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/sections"
	"github.com/jonathan/resume-extractor/internal/types"
)

// AdditionalSections finds the non-core sections (projects, certifications,
// awards, publications, volunteer, languages, interests) with the plain
// section lookup. Keys are the section names; titles are title cased.
func AdditionalSections(text string) map[string]types.AdditionalSection {
	found := make(map[string]types.AdditionalSection)
	for _, k := range sections.AdditionalKinds {
		content, ok := sections.FindSection(text, k.Keywords)
		if !ok {
			continue
		}
		if content = strings.TrimSpace(content); content == "" {
			continue
		}
		found[k.Name] = types.AdditionalSection{Title: titleCase(k.Name), Content: content}
	}
	return found
}
