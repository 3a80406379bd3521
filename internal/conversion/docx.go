package conversion

import (
	"context"
	"os"
	"strings"

	"code.sajari.com/docconv"
)

// DOCXReader is the DOCXBackend built on code.sajari.com/docconv.
type DOCXReader struct{}

// NewDOCXReader returns a DOCXReader.
func NewDOCXReader() *DOCXReader {
	return &DOCXReader{}
}

// Text returns the document paragraphs, one per line, in document order.
func (DOCXReader) Text(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	text, _, err := docconv.ConvertDocx(f)
	if err != nil {
		return "", err
	}
	return normalizeParagraphs(text), nil
}

// normalizeParagraphs trims each paragraph and drops the empty runs docconv
// leaves between them, keeping single blank lines.
func normalizeParagraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\u00a0", " "))
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
