package scraper

import (
	"net/url"
	"strings"
)

// Platform is a known job board.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformIndeed    Platform = "indeed"
	PlatformGlassdoor Platform = "glassdoor"
	PlatformGeneric   Platform = "generic"
)

// DetectPlatform identifies the job board from the URL host.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformGeneric
	}

	host := strings.ToLower(parsed.Host)
	switch {
	case strings.Contains(host, "linkedin.com"):
		return PlatformLinkedIn
	case strings.Contains(host, "indeed.com"):
		return PlatformIndeed
	case strings.Contains(host, "glassdoor.com"):
		return PlatformGlassdoor
	default:
		return PlatformGeneric
	}
}

// descriptionSelectors returns the description containers tried for a
// platform, most specific first.
func descriptionSelectors(platform Platform) []string {
	generic := []string{
		".job-description",
		"#job-description",
		".description",
		"[data-testid='job-description']",
		"main",
		"article",
	}
	switch platform {
	case PlatformLinkedIn:
		return append([]string{".show-more-less-html__markup", ".description__text"}, generic...)
	case PlatformIndeed:
		return append([]string{"#jobDescriptionText", ".jobsearch-jobDescriptionText"}, generic...)
	case PlatformGlassdoor:
		return append([]string{"[class*='JobDetails_jobDescription']", ".jobDescriptionContent"}, generic...)
	default:
		return generic
	}
}

// noiseSelectors lists page furniture removed before reading text.
var noiseSelectors = []string{
	"nav", "footer", "script", "style", "noscript",
	"form", ".apply-button-container", ".social-share", ".cookie-banner", ".eeo-statement",
}
