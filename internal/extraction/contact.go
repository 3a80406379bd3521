package extraction

import (
	"strings"

	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultContactBandHeight is the height of the top-of-page band searched by
// the layout variant.
const DefaultContactBandHeight = 100.0

// nameFontRatio is the share of the band's largest font a name line needs.
const nameFontRatio = 0.8

// ContactExtractor finds contact details and the candidate name.
type ContactExtractor struct {
	lib        *patterns.Library
	bandHeight float64
}

// NewContactExtractor returns a ContactExtractor. A non-positive bandHeight
// selects DefaultContactBandHeight.
func NewContactExtractor(lib *patterns.Library, bandHeight float64) *ContactExtractor {
	if bandHeight <= 0 {
		bandHeight = DefaultContactBandHeight
	}
	return &ContactExtractor{lib: lib, bandHeight: bandHeight}
}

// FromText takes the first match of every contact pattern in document order
// and looks for the name in the first few lines.
func (x *ContactExtractor) FromText(text string) types.ContactInfo {
	return types.ContactInfo{
		Name:     x.nameFromText(text),
		Email:    types.StringPtr(x.lib.Email.FindString(text)),
		Phone:    types.StringPtr(x.lib.Phone.FindString(text)),
		LinkedIn: types.StringPtr(x.lib.LinkedIn.FindString(text)),
		GitHub:   types.StringPtr(x.lib.GitHub.FindString(text)),
	}
}

// FromLayout searches the band at the top of the first page. The name is the
// first large-font band line that validates as a name, then the text
// heuristic over the band. Fields missing from the band come from fullText.
func (x *ContactExtractor) FromLayout(lines []types.Line, fullText string) types.ContactInfo {
	var band []types.Line
	for _, l := range lines {
		if l.Page <= 1 && l.Y < x.bandHeight && strings.TrimSpace(l.Text) != "" {
			band = append(band, l)
		}
	}
	if len(band) == 0 {
		return x.FromText(fullText)
	}

	texts := make([]string, len(band))
	maxSize := 0.0
	for i, l := range band {
		texts[i] = l.Text
		maxSize = max(maxSize, l.FontSize)
	}
	contact := x.FromText(strings.Join(texts, "\n"))
	contact.Name = nil
	for _, l := range band {
		if l.FontSize >= maxSize*nameFontRatio && x.isName(strings.TrimSpace(l.Text)) {
			contact.Name = types.StringPtr(l.Text)
			break
		}
	}
	if contact.Name == nil {
		contact.Name = x.nameFromText(strings.Join(texts, "\n"))
	}

	full := x.FromText(fullText)
	if contact.Email == nil {
		contact.Email = full.Email
	}
	if contact.Phone == nil {
		contact.Phone = full.Phone
	}
	if contact.LinkedIn == nil {
		contact.LinkedIn = full.LinkedIn
	}
	if contact.GitHub == nil {
		contact.GitHub = full.GitHub
	}
	return contact
}

func (x *ContactExtractor) nameFromText(text string) *string {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if x.isName(line) && len(line) < patterns.MaxNameLength {
			return types.StringPtr(line)
		}
		if seen++; seen == patterns.NameSearchLines {
			break
		}
	}
	return nil
}

// isName accepts short letter-only lines without contact details that are
// not a document title.
func (x *ContactExtractor) isName(line string) bool {
	if line == "" || len(line) > patterns.MaxNameLength || wordCount(line) > patterns.MaxNameWords {
		return false
	}
	if x.lib.Email.MatchString(line) || x.lib.Phone.MatchString(line) ||
		x.lib.LinkedIn.MatchString(line) || x.lib.GitHub.MatchString(line) {
		return false
	}
	if !x.lib.Name.MatchString(line) {
		return false
	}
	lower := strings.ToLower(line)
	for _, h := range patterns.NonNameHeaders {
		if lower == h {
			return false
		}
	}
	return true
}
