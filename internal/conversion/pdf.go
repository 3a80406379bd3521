package conversion

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/jonathan/resume-extractor/internal/types"
)

// defaultPageHeight is US Letter, used when a page has no MediaBox.
const defaultPageHeight = 792.0

// PDFReader is the PDFBackend built on github.com/ledongthuc/pdf.
type PDFReader struct{}

// NewPDFReader returns a PDFReader.
func NewPDFReader() *PDFReader {
	return &PDFReader{}
}

// Text extracts the plain text of each page and joins the pages with newlines.
func (PDFReader) Text(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

// Words extracts positioned words from every page.
func (PDFReader) Words(ctx context.Context, path string) ([]types.Word, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var words []types.Word
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		height := pageHeight(p)
		content := p.Content()
		glyphs := make([]glyph, 0, len(content.Text))
		for _, t := range content.Text {
			glyphs = append(glyphs, glyph{
				s:        t.S,
				x:        t.X,
				w:        t.W,
				top:      height - t.Y - t.FontSize,
				fontSize: t.FontSize,
				font:     t.Font,
			})
		}
		words = append(words, assembleWords(i, glyphs)...)
	}
	return words, r.NumPage(), nil
}

// pageHeight reads the page MediaBox, walking up to the page tree when it is inherited.
func pageHeight(p pdf.Page) float64 {
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.IsNull() || box.Len() < 4 {
			continue
		}
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return defaultPageHeight
}

// glyph is one positioned text run as reported by the PDF content stream.
type glyph struct {
	s        string
	x, w     float64
	top      float64
	fontSize float64
	font     string
}

// assembleWords merges glyphs into words. A word ends at whitespace, at a
// horizontal gap wider than a quarter of the font size, or when the baseline moves.
func assembleWords(page int, glyphs []glyph) []types.Word {
	var (
		words []types.Word
		cur   *types.Word
		sb    strings.Builder
	)
	flush := func() {
		if cur != nil && strings.TrimSpace(sb.String()) != "" {
			cur.Text = sb.String()
			words = append(words, *cur)
		}
		cur = nil
		sb.Reset()
	}

	for _, g := range glyphs {
		if strings.TrimFunc(g.s, unicode.IsSpace) == "" {
			flush()
			continue
		}
		size := g.fontSize
		if size <= 0 {
			size = DefaultFontSize
		}
		if cur != nil {
			gap := g.x - cur.X1
			if math.Abs(g.top-cur.Top) > size/2 || gap > size/4 || gap < -size/2 {
				flush()
			}
		}
		if cur == nil {
			cur = &types.Word{Page: page, X0: g.x, Top: g.top, FontSize: g.fontSize, FontName: g.font}
		}
		sb.WriteString(g.s)
		cur.X1 = g.x + g.w
	}
	flush()
	return words
}
