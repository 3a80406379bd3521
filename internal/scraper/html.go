package scraper

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/resume-extractor/internal/types"
)

// ErrNoPosting is returned when a page has neither a title nor a description.
var ErrNoPosting = errors.New("no job posting found in page")

// maxRequirements caps the list items read as requirements.
const maxRequirements = 15

var (
	titleSelectors    = []string{"[data-testid='job-title']", ".job-title", ".top-card-layout__title", "h1"}
	companySelectors  = []string{"[data-testid='company-name']", ".company-name", ".topcard__org-name-link", ".company"}
	locationSelectors = []string{"[data-testid='job-location']", ".job-location", ".topcard__flavor--bullet", ".location"}
	salarySelectors   = []string{"[data-testid='salary']", ".salary", ".compensation"}
	typeSelectors     = []string{"[data-testid='employment-type']", ".employment-type", ".job-type"}
)

// requirementHeadings mark the list that holds the requirements.
var requirementHeadings = []string{"requirement", "qualification", "what you bring", "skills"}

// ParseHTML builds a posting from a saved job page. Fields the page does not
// carry are left empty; the company falls back to the URL host.
func ParseHTML(r io.Reader, pageURL string) (*types.JobPosting, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "failed to parse HTML", Cause: err}
	}
	doc.Find(strings.Join(noiseSelectors, ", ")).Remove()

	posting := &types.JobPosting{
		Title:          firstText(doc, titleSelectors),
		Company:        firstText(doc, companySelectors),
		Location:       firstText(doc, locationSelectors),
		EmploymentType: firstText(doc, typeSelectors),
		Requirements:   []string{},
		URL:            pageURL,
	}
	if posting.Title == "" {
		posting.Title = metaContent(doc, "og:title")
	}
	if posting.Company == "" {
		posting.Company = metaContent(doc, "og:site_name")
	}
	if posting.Company == "" {
		posting.Company = companyFromHost(pageURL)
	}
	if salary := firstText(doc, salarySelectors); salary != "" {
		posting.Salary = &salary
	}

	desc := descriptionNode(doc, DetectPlatform(pageURL))
	if desc != nil {
		posting.Description = cleanWhitespace(desc.Text())
		posting.Requirements = requirementItems(desc)
	}
	if posting.Title == "" && posting.Description == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoPosting, pageURL)
	}
	return posting, nil
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if text := collapseSpaces(s.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, property string) string {
	content, _ := doc.Find(fmt.Sprintf("meta[property='%s']", property)).Attr("content")
	return strings.TrimSpace(content)
}

func descriptionNode(doc *goquery.Document, platform Platform) *goquery.Selection {
	for _, sel := range descriptionSelectors(platform) {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	if body := doc.Find("body"); body.Length() > 0 && strings.TrimSpace(body.Text()) != "" {
		return body
	}
	return nil
}

// requirementItems prefers the list following a requirements heading and
// falls back to every list item in the description.
func requirementItems(desc *goquery.Selection) []string {
	var list *goquery.Selection
	desc.Find("h2, h3, h4, strong, b, p").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		heading := strings.ToLower(h.Text())
		for _, kw := range requirementHeadings {
			if strings.Contains(heading, kw) {
				if ul := h.NextAllFiltered("ul, ol").First(); ul.Length() > 0 {
					list = ul
					return false
				}
			}
		}
		return true
	})
	if list == nil {
		list = desc
	}

	items := []string{}
	list.Find("li").EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if text := collapseSpaces(li.Text()); text != "" {
			items = append(items, text)
		}
		return len(items) < maxRequirements
	})
	return items
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// cleanWhitespace trims every line and drops the empty ones.
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if line = collapseSpaces(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
