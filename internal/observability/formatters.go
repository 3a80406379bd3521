// Package observability provides metrics and formatted output for verbose
// CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/resume-extractor/internal/tailoring"
	"github.com/jonathan/resume-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func orDash(s *string) string {
	if v := types.Deref(s); v != "" {
		return v
	}
	return "-"
}

// listLine writes up to limit items and a "... and N more" tail.
func listLine(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", items[i])
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintResume outputs a human-readable summary of extracted resume data.
func (p *Printer) PrintResume(r *types.ResumeData) {
	if r == nil {
		return
	}

	var sb strings.Builder
	c := r.Contact
	fmt.Fprintf(&sb, "Name:     %s\n", orDash(c.Name))
	fmt.Fprintf(&sb, "Email:    %s\n", orDash(c.Email))
	fmt.Fprintf(&sb, "Phone:    %s\n", orDash(c.Phone))
	if c.LinkedIn != nil {
		fmt.Fprintf(&sb, "LinkedIn: %s\n", *c.LinkedIn)
	}
	if c.GitHub != nil {
		fmt.Fprintf(&sb, "GitHub:   %s\n", *c.GitHub)
	}
	sb.WriteString("\n")

	if len(r.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, e := range r.Education {
			fmt.Fprintf(&sb, "  • %s, %s", orDash(e.Degree), orDash(e.Institution))
			if e.GraduationYear != nil {
				fmt.Fprintf(&sb, " (%d)", *e.GraduationYear)
			}
			if e.GPA != nil {
				fmt.Fprintf(&sb, " GPA %.2f", *e.GPA)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(r.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(r.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			w := r.Experience[i]
			fmt.Fprintf(&sb, "  • %s at %s", orDash(w.Role), orDash(w.Company))
			if w.StartDate != nil || w.EndDate != nil {
				fmt.Fprintf(&sb, " [%s - %s]", orDash(w.StartDate), orDash(w.EndDate))
			}
			sb.WriteString("\n")
		}
		if len(r.Experience) > maxItemsToShow {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(r.Experience)-maxItemsToShow)
		}
		sb.WriteString("\n")
	}

	if len(r.Skills) > 0 {
		fmt.Fprintf(&sb, "Skills (%d): %s\n", len(r.Skills), strings.Join(r.Skills[:min(len(r.Skills), 8)], ", "))
	}

	if len(r.AdditionalSections) > 0 {
		names := make([]string, 0, len(r.AdditionalSections))
		for name := range r.AdditionalSections {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "Other sections: %s\n", strings.Join(names, ", "))
	}

	p.printBox("EXTRACTED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobPosting outputs a summary of a job posting.
func (p *Printer) PrintJobPosting(job *types.JobPosting) {
	if job == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:    %s\n", job.Title)
	fmt.Fprintf(&sb, "Company:  %s\n", job.Company)
	if job.Location != "" {
		fmt.Fprintf(&sb, "Location: %s\n", job.Location)
	}
	if job.EmploymentType != "" {
		fmt.Fprintf(&sb, "Type:     %s\n", job.EmploymentType)
	}
	if len(job.Requirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		listLine(&sb, job.Requirements, maxItemsToShow)
	}

	p.printBox("JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPatchPlan outputs the suggested edits with their rationale.
func (p *Printer) PrintPatchPlan(plan *types.PatchPlan) {
	if plan == nil {
		return
	}
	if len(plan.Items) == 0 {
		p.printBox("PATCH PLAN", fmt.Sprintf("Match score: %.0f%%\n\nNo changes suggested.", plan.MatchScore*100))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Match score: %.0f%%\n", plan.MatchScore*100)
	fmt.Fprintf(&sb, "Edits: %d\n\n", len(plan.Items))

	for i, item := range plan.Items {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, item.Action, item.ID)
		if item.SuggestedText != nil {
			fmt.Fprintf(&sb, "   → %s\n", *item.SuggestedText)
		}
		fmt.Fprintf(&sb, "   %s\n", item.Rationale)
	}

	p.printBox("PATCH PLAN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalysis outputs the compatibility report.
func (p *Printer) PrintAnalysis(a *tailoring.Analysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Compatibility: %.0f%%\n", a.CompatibilityScore*100)
	fmt.Fprintf(&sb, "Skill match:   %.0f%% (%d of %d)\n",
		a.SkillAnalysis.MatchPercentage*100, len(a.SkillAnalysis.MatchedSkills), a.SkillAnalysis.TotalRequirements)
	fmt.Fprintf(&sb, "Relevance:     %.2f (%d of %d entries)\n",
		a.ExperienceAnalysis.RelevanceScore, len(a.ExperienceAnalysis.RelevantExperiences), a.ExperienceAnalysis.TotalExperiences)

	if len(a.SkillAnalysis.MissingSkills) > 0 {
		sb.WriteString("\nMissing:\n")
		listLine(&sb, a.SkillAnalysis.MissingSkills, maxItemsToShow)
	}
	if len(a.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		listLine(&sb, a.Recommendations, len(a.Recommendations))
	}

	p.printBox("COMPATIBILITY ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLayout outputs the grouped lines of a document with header flags,
// followed by the detected sections.
func (p *Printer) PrintLayout(layout *types.Layout) {
	if layout == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Pages: %d  Lines: %d  Avg font: %.1f\n\n", layout.Pages, len(layout.Lines), layout.AverageFontSize)
	for _, line := range layout.Lines {
		flag := "  "
		if line.PotentialHeader {
			flag = "H "
		}
		fmt.Fprintf(&sb, "%s%5.1f %s\n", flag, line.FontSize, line.Text)
	}

	if len(layout.Sections) > 0 {
		sb.WriteString("\nSections:\n")
		for _, s := range layout.Sections {
			fmt.Fprintf(&sb, "  • %s (%d lines)\n", s.Title, len(s.Lines))
		}
	}

	p.printBox("DOCUMENT LAYOUT", strings.TrimSuffix(sb.String(), "\n"))
}
