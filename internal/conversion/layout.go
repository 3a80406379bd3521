package conversion

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-extractor/internal/patterns"
	"github.com/jonathan/resume-extractor/internal/types"
)

// DefaultFontSize is assumed for words without font metadata.
const DefaultFontSize = 12.0

// LayoutOptions tunes line grouping and header classification.
type LayoutOptions struct {
	// LineTolerance is the maximum vertical distance between a word's top and
	// its line's top.
	LineTolerance float64 `json:"line_tolerance"`
	// HeaderSignalThreshold is the number of signals a line needs to be a
	// potential header.
	HeaderSignalThreshold int `json:"header_signal_threshold"`
	// HeaderMaxChars caps the length of a potential header.
	HeaderMaxChars int `json:"header_max_chars"`
	// LargeFontRatio is the font size ratio against the document average that
	// counts as a signal.
	LargeFontRatio float64 `json:"large_font_ratio"`
	// LeftMargin is the x0 below which a line counts as left aligned.
	LeftMargin float64 `json:"left_margin"`
}

// DefaultLayoutOptions returns the standard parameters.
func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		LineTolerance:         2.0,
		HeaderSignalThreshold: 2,
		HeaderMaxChars:        patterns.MaxHeaderLength,
		LargeFontRatio:        1.2,
		LeftMargin:            100,
	}
}

func (o LayoutOptions) withDefaults() LayoutOptions {
	d := DefaultLayoutOptions()
	if o.LineTolerance <= 0 {
		o.LineTolerance = d.LineTolerance
	}
	if o.HeaderSignalThreshold <= 0 {
		o.HeaderSignalThreshold = d.HeaderSignalThreshold
	}
	if o.HeaderMaxChars <= 0 {
		o.HeaderMaxChars = d.HeaderMaxChars
	}
	if o.LargeFontRatio <= 0 {
		o.LargeFontRatio = d.LargeFontRatio
	}
	if o.LeftMargin <= 0 {
		o.LeftMargin = d.LeftMargin
	}
	return o
}

// BuildLayout groups words into lines, classifies headers and splits sections.
func BuildLayout(words []types.Word, pages int, opts LayoutOptions) *types.Layout {
	opts = opts.withDefaults()
	lines := GroupWords(words, opts.LineTolerance)
	avg := ClassifyHeaders(lines, opts)
	if pages == 0 {
		for _, l := range lines {
			pages = max(pages, l.Page)
		}
	}
	return &types.Layout{
		Lines:           lines,
		Sections:        SectionsFromLayout(lines),
		AverageFontSize: avg,
		Pages:           pages,
	}
}

// GroupWords clusters words into lines page by page. A word whose top differs
// from the current line's top by more than tolerance starts a new line. Words
// inside a line are ordered left to right.
func GroupWords(words []types.Word, tolerance float64) []types.Line {
	if len(words) == 0 {
		return []types.Line{}
	}

	sorted := make([]types.Word, 0, len(words))
	for _, w := range words {
		if strings.TrimSpace(w.Text) != "" {
			sorted = append(sorted, w)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		if sorted[i].Top != sorted[j].Top {
			return sorted[i].Top < sorted[j].Top
		}
		return sorted[i].X0 < sorted[j].X0
	})

	lines := []types.Line{}
	var current []types.Word
	for _, w := range sorted {
		if len(current) > 0 && (w.Page != current[0].Page || math.Abs(w.Top-current[0].Top) > tolerance) {
			lines = append(lines, finalizeLine(current))
			current = nil
		}
		current = append(current, w)
	}
	if len(current) > 0 {
		lines = append(lines, finalizeLine(current))
	}
	return lines
}

func finalizeLine(words []types.Word) types.Line {
	sort.SliceStable(words, func(i, j int) bool { return words[i].X0 < words[j].X0 })

	texts := make([]string, len(words))
	x0, x1, top := words[0].X0, words[0].X1, words[0].Top
	var sizeSum float64
	sized, bold := 0, 0
	for i, w := range words {
		texts[i] = strings.TrimSpace(w.Text)
		x0 = math.Min(x0, w.X0)
		x1 = math.Max(x1, w.X1)
		top = math.Min(top, w.Top)
		if w.FontSize > 0 {
			sizeSum += w.FontSize
			sized++
		}
		if IsBoldFont(w.FontName) {
			bold++
		}
	}

	fontSize := DefaultFontSize
	if sized > 0 {
		fontSize = sizeSum / float64(sized)
	}

	text := strings.Join(texts, " ")
	return types.Line{
		Text:      text,
		Page:      words[0].Page,
		Y:         top,
		X0:        x0,
		X1:        x1,
		FontSize:  fontSize,
		Bold:      bold*2 > len(words),
		AllCaps:   IsAllCaps(text),
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
	}
}

// IsBoldFont reports whether a font name denotes a bold face.
func IsBoldFont(name string) bool {
	n := strings.ToLower(name)
	return strings.Contains(n, "bold") || strings.Contains(n, "black") || strings.Contains(n, "heavy")
}

// IsAllCaps reports whether s has letters and none of them are lower case.
func IsAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}

// ClassifyHeaders marks potential header lines in place and returns the
// document average font size.
func ClassifyHeaders(lines []types.Line, opts LayoutOptions) float64 {
	opts = opts.withDefaults()
	avg := AverageFontSize(lines)
	for i := range lines {
		lines[i].PotentialHeader = HeaderSignals(lines[i], avg, opts) >= opts.HeaderSignalThreshold &&
			lines[i].CharCount <= opts.HeaderMaxChars &&
			strings.TrimSpace(lines[i].Text) != ""
	}
	return avg
}

// AverageFontSize returns the mean line font size, or DefaultFontSize when unknown.
func AverageFontSize(lines []types.Line) float64 {
	var sum float64
	n := 0
	for _, l := range lines {
		if l.FontSize > 0 {
			sum += l.FontSize
			n++
		}
	}
	if n == 0 {
		return DefaultFontSize
	}
	return sum / float64(n)
}

// HeaderSignals counts the independent header cues present on a line.
func HeaderSignals(l types.Line, avgFontSize float64, opts LayoutOptions) int {
	signals := 0
	if avgFontSize > 0 && l.FontSize > avgFontSize*opts.LargeFontRatio {
		signals++
	}
	if l.Bold {
		signals++
	}
	if l.AllCaps {
		signals++
	}
	if l.WordCount <= 3 {
		signals++
	}
	if l.X0 < opts.LeftMargin {
		signals++
	}
	lower := strings.ToLower(l.Text)
	for _, kw := range patterns.LayoutHeaderKeywords {
		if strings.Contains(lower, kw) {
			signals++
			break
		}
	}
	return signals
}

// SectionsFromLayout opens a section at every potential header and collects
// the following lines until the next header. Lines before the first header
// form an untitled leading section.
func SectionsFromLayout(lines []types.Line) []types.Section {
	sections := []types.Section{}
	var current *types.Section
	for _, l := range lines {
		if l.PotentialHeader {
			if current != nil {
				sections = append(sections, *current)
			}
			current = &types.Section{Title: l.Text, Header: l, Lines: []types.Line{}}
			continue
		}
		if current == nil {
			current = &types.Section{Lines: []types.Line{}}
		}
		current.Lines = append(current.Lines, l)
	}
	if current != nil {
		sections = append(sections, *current)
	}
	return sections
}
