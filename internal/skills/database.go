// Package skills provides the categorized skills dictionary used for whole-word skill detection.
package skills

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Category is a named group of skill tokens.
type Category struct {
	Name   string   `json:"name" yaml:"name"`
	Skills []string `json:"skills" yaml:"skills"`
}

type entry struct {
	skill    string
	category string
	rank     int
	pattern  *regexp.Regexp
}

// Database is an immutable skills dictionary with precompiled matchers.
// It is safe for concurrent use.
type Database struct {
	categories []Category
	entries    []entry
	byName     map[string]int
}

// New builds a Database from the built-in categories followed by extra.
// Extra categories with a built-in name extend that category.
func New(extra ...Category) *Database {
	cats := builtinCategories()
	for _, c := range extra {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			continue
		}
		idx := -1
		for i := range cats {
			if cats[i].Name == name {
				idx = i
				break
			}
		}
		if idx < 0 {
			// Custom categories rank after technical ones but before soft skills.
			soft := cats[len(cats)-1]
			cats = append(cats[:len(cats)-1], Category{Name: name}, soft)
			idx = len(cats) - 2
		}
		cats[idx].Skills = append(cats[idx].Skills, c.Skills...)
	}

	db := &Database{byName: map[string]int{}}
	for rank, c := range cats {
		kept := Category{Name: c.Name}
		for _, s := range c.Skills {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			if _, dup := db.byName[s]; dup {
				continue
			}
			db.byName[s] = len(db.entries)
			db.entries = append(db.entries, entry{
				skill:    s,
				category: c.Name,
				rank:     rank,
				pattern:  regexp.MustCompile(`\b` + regexp.QuoteMeta(s) + `\b`),
			})
			kept.Skills = append(kept.Skills, s)
		}
		db.categories = append(db.categories, kept)
	}
	return db
}

var defaultDatabase = sync.OnceValue(func() *Database { return New() })

// Default returns the shared built-in Database.
func Default() *Database {
	return defaultDatabase()
}

// Match returns every database skill occurring as a whole word in text.
// Matching is case-insensitive; results follow database order and are unique.
func (d *Database) Match(text string) []string {
	found := []string{}
	if strings.TrimSpace(text) == "" {
		return found
	}
	corpus := strings.ToLower(text)
	for _, e := range d.entries {
		if e.pattern.MatchString(corpus) {
			found = append(found, e.skill)
		}
	}
	return found
}

// Contains reports whether skill is in the database.
func (d *Database) Contains(skill string) bool {
	_, ok := d.byName[strings.ToLower(strings.TrimSpace(skill))]
	return ok
}

// CategoryOf returns the category of skill, or "" when unknown.
func (d *Database) CategoryOf(skill string) string {
	i, ok := d.byName[strings.ToLower(strings.TrimSpace(skill))]
	if !ok {
		return ""
	}
	return d.entries[i].category
}

// Categories returns a copy of the categories in precedence order.
func (d *Database) Categories() []Category {
	out := make([]Category, len(d.categories))
	for i, c := range d.categories {
		out[i] = Category{Name: c.Name, Skills: append([]string(nil), c.Skills...)}
	}
	return out
}

// All returns every skill, technical categories first and soft skills last.
func (d *Database) All() []string {
	out := make([]string, len(d.entries))
	for i, e := range d.entries {
		out[i] = e.skill
	}
	return out
}

// SoftSkills returns the soft skill tokens.
func (d *Database) SoftSkills() []string {
	for _, c := range d.categories {
		if c.Name == CategorySoft {
			return append([]string(nil), c.Skills...)
		}
	}
	return nil
}

// Categorize groups skills by database category. Unknown skills go under "other".
func (d *Database) Categorize(skills []string) map[string][]string {
	out := map[string][]string{}
	for _, s := range skills {
		cat := d.CategoryOf(s)
		if cat == "" {
			cat = "other"
		}
		out[cat] = append(out[cat], s)
	}
	return out
}

// TopSkills returns at most n skills ordered by category precedence, keeping
// input order within a category. Unknown skills come last.
func (d *Database) TopSkills(skills []string, n int) []string {
	if n <= 0 {
		return []string{}
	}
	ranked := append([]string(nil), skills...)
	rank := func(s string) int {
		if i, ok := d.byName[strings.ToLower(s)]; ok {
			return d.entries[i].rank
		}
		return len(d.categories)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return rank(ranked[i]) < rank(ranked[j]) })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
