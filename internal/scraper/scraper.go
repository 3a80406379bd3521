// Package scraper produces job postings from job board URLs and saved pages.
// Scrape returns canned postings per board; live page fetching is not done.
package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"

	"github.com/jonathan/resume-extractor/internal/logger"
	"github.com/jonathan/resume-extractor/internal/types"
)

// employmentType is reported for every canned posting.
const employmentType = "Internship"

// Error represents a rejected or failed scrape.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("scrape error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("scrape error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Scrape returns the posting for urlStr. Only absolute https URLs are
// accepted.
func Scrape(ctx context.Context, urlStr string) (*types.JobPosting, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	if parsed.Scheme != "https" {
		return nil, &Error{URL: urlStr, Message: "only https URLs are supported"}
	}
	if err := ctx.Err(); err != nil {
		return nil, &Error{URL: urlStr, Message: "cancelled", Cause: err}
	}

	platform := DetectPlatform(urlStr)
	logger.Info().Str("url", urlStr).Str("platform", string(platform)).Msg("scraping job posting")

	posting := mockPosting(platform, parsed.Host)
	posting.URL = urlStr
	return posting, nil
}

func mockPosting(platform Platform, host string) *types.JobPosting {
	switch platform {
	case PlatformLinkedIn:
		return &types.JobPosting{
			Title:          "Software Engineer Intern",
			Company:        "LinkedIn",
			Location:       "San Francisco, CA",
			Description:    "Join our team as a software engineer intern and work on cutting-edge technology at LinkedIn.",
			Requirements:   []string{"Python", "JavaScript", "React", "SQL"},
			EmploymentType: employmentType,
		}
	case PlatformIndeed:
		return &types.JobPosting{
			Title:          "Data Science Intern",
			Company:        "Indeed",
			Location:       "Austin, TX",
			Description:    "Work with the Indeed data science team to analyze job market trends.",
			Requirements:   []string{"Python", "SQL", "Machine Learning", "Statistics"},
			EmploymentType: employmentType,
		}
	case PlatformGlassdoor:
		return &types.JobPosting{
			Title:          "Product Manager Intern",
			Company:        "Glassdoor",
			Location:       "Mill Valley, CA",
			Description:    "Support product development and user research initiatives at Glassdoor.",
			Requirements:   []string{"Product Management", "Analytics", "Communication"},
			EmploymentType: employmentType,
		}
	default:
		company := companyFromHost("https://" + host)
		return &types.JobPosting{
			Title:          "Software Engineering Intern",
			Company:        company,
			Location:       "Remote",
			Description:    fmt.Sprintf("Exciting internship opportunity in software engineering at %s.", company),
			Requirements:   []string{"Programming", "Problem Solving", "Teamwork"},
			EmploymentType: employmentType,
		}
	}
}

// companyFromHost title cases the first host label, "www" excluded.
func companyFromHost(urlStr string) string {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Hostname() == "" {
		return "Unknown Company"
	}
	labels := strings.Split(parsed.Hostname(), ".")
	if len(labels) > 1 && labels[0] == "www" {
		labels = labels[1:]
	}
	return titleWord(labels[0])
}

func titleWord(s string) string {
	runes := []rune(strings.ToLower(s))
	upper := true
	for i, r := range runes {
		if upper && unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
		}
		upper = !unicode.IsLetter(r)
	}
	return string(runes)
}
