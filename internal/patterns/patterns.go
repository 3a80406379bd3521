// Package patterns provides the compiled regular expressions shared by the resume extractors.
package patterns

import (
	"regexp"
	"sync"
)

// Library is an immutable set of compiled expressions. It is safe for concurrent use.
type Library struct {
	Email       *regexp.Regexp
	Phone       *regexp.Regexp
	LinkedIn    *regexp.Regexp
	GitHub      *regexp.Regexp
	Degree      *regexp.Regexp
	Field       *regexp.Regexp
	GPA         *regexp.Regexp
	Year        *regexp.Regexp
	Institution *regexp.Regexp
	Location    *regexp.Regexp
	CityState   *regexp.Regexp
	Name        *regexp.Regexp

	// Experience header parsing
	JobPipe       *regexp.Regexp
	RoleAt        *regexp.Regexp
	CompanySuffix *regexp.Regexp
	KnownCompany  *regexp.Regexp
	CompanyDomain *regexp.Regexp

	// Date ranges
	MonthRange   *regexp.Regexp
	YearRange    *regexp.Regexp
	NumericRange *regexp.Regexp
	MonthYear    *regexp.Regexp
	NumericDate  *regexp.Regexp
	Present      *regexp.Regexp
}

const (
	month = `(?:jan|feb|mar|apr|may|jun|jul|aug|sep|sept|oct|nov|dec)[a-z]*\.?`
	// dash separates range endpoints. The word form needs surrounding space.
	dash = `(?:\s*[-–—]\s*|\s+to\s+)`
)

// New compiles a fresh Library.
func New() *Library {
	return &Library{
		Email:       regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`),
		Phone:       regexp.MustCompile(`(\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4})`),
		LinkedIn:    regexp.MustCompile(`linkedin\.com/in/[\w-]+|linkedin\.com/pub/[\w-]+/[\w/]+`),
		GitHub:      regexp.MustCompile(`github\.com/[\w-]+`),
		Degree:      regexp.MustCompile(`(?i)\b(bachelor|master|phd|doctorate|associate|b\.?[sa]\.?|m\.?[sa]\.?|ph\.?d\.?)\b`),
		Field:       regexp.MustCompile(`(?i)\bin\s+([A-Za-z][A-Za-z&/ ]*[A-Za-z])`),
		GPA:         regexp.MustCompile(`(?i)gpa[:\s]*(\d\.?\d*)[/\s]*(?:4\.0)?`),
		Year:        regexp.MustCompile(`\b(19\d{2}|20\d{2})\b`),
		Institution: regexp.MustCompile(`(?i)\b(university|college|institute|school)\b`),
		Location:    regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2}),\s*([A-Z]{2})\b`),
		CityState:   regexp.MustCompile(`\b([A-Z][a-z]+),\s*([A-Z]{2})\b`),
		Name:        regexp.MustCompile(`^[A-Za-z\s]+$`),

		JobPipe:       regexp.MustCompile(`^(.+?)\s*\|\s*(.+?)$`),
		RoleAt:        regexp.MustCompile(`^(.+?)\s+at\s+(.+)$`),
		CompanySuffix: regexp.MustCompile(`(?i)\b(inc|corp|corporation|llc|ltd|company|co\.|group|associates)(?:\W|$)`),
		KnownCompany: regexp.MustCompile(`(?i)\b(inpro corporation|erin hills golf course|badger boys state|pharus\.ai|magnet-schultz)\b` +
			`|\b[A-Z][a-z]+\s+(?:corporation|corp|inc|llc|company|group|golf course)\b`),
		CompanyDomain: regexp.MustCompile(`\b(\w+(?:\.\w+)*\.(?:com|ai|io|net|org|co|inc|llc|corp))\b`),

		MonthRange:   regexp.MustCompile(`(?i)\b(` + month + `\s*\d{4})` + dash + `(` + month + `\s*\d{4}|present|current|now)\b`),
		YearRange:    regexp.MustCompile(`(?i)\b(\d{4})` + dash + `(\d{4}|present|current|now)\b`),
		NumericRange: regexp.MustCompile(`(?i)\b(\d{1,2}/\d{4})` + dash + `(\d{1,2}/\d{4}|present|current|now)\b`),
		MonthYear:    regexp.MustCompile(`(?i)\b(` + month + `\s*\d{4})\b`),
		NumericDate:  regexp.MustCompile(`\b(\d{1,2}/\d{4})\b`),
		Present:      regexp.MustCompile(`(?i)^(present|current|now)$`),
	}
}

var defaultLibrary = sync.OnceValue(New)

// Default returns the process-wide shared Library, compiled on first use.
func Default() *Library {
	return defaultLibrary()
}
