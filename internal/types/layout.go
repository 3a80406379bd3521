package types

// Word is a single positioned word produced by a PDF backend. Coordinates are
// in PDF units with the origin at the top-left corner of the page.
type Word struct {
	Text     string  `json:"text"`
	Page     int     `json:"page"`
	X0       float64 `json:"x0"`
	X1       float64 `json:"x1"`
	Top      float64 `json:"top"`
	FontSize float64 `json:"font_size"`
	FontName string  `json:"font_name"`
}

// Line is a group of words sharing a vertical position on one page.
type Line struct {
	Text            string  `json:"text"`
	Page            int     `json:"page"`
	Y               float64 `json:"y"`
	X0              float64 `json:"x0"`
	X1              float64 `json:"x1"`
	FontSize        float64 `json:"font_size"`
	Bold            bool    `json:"bold"`
	AllCaps         bool    `json:"all_caps"`
	WordCount       int     `json:"word_count"`
	CharCount       int     `json:"char_count"`
	PotentialHeader bool    `json:"potential_header"`
}

// Section is a header line and the body lines that follow it.
type Section struct {
	Title  string `json:"title"`
	Header Line   `json:"header"`
	Lines  []Line `json:"lines"`
}

// Texts returns the text of every body line.
func (s Section) Texts() []string {
	out := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		out = append(out, l.Text)
	}
	return out
}

// Layout is the positional view of a document.
type Layout struct {
	Lines           []Line    `json:"lines"`
	Sections        []Section `json:"sections"`
	AverageFontSize float64   `json:"average_font_size"`
	Pages           int       `json:"pages"`
}

// Text joins all lines with newlines.
func (l *Layout) Text() string {
	if l == nil || len(l.Lines) == 0 {
		return ""
	}
	n := 0
	for _, line := range l.Lines {
		n += len(line.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, line := range l.Lines {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, line.Text...)
	}
	return string(buf)
}
