// Package conversion turns PDF and DOCX resumes into plain text and, for PDFs,
// into positioned lines with typographic metadata.
package conversion

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-extractor/internal/types"
)

// Format is a supported input format.
type Format string

const (
	FormatPDF         Format = "pdf"
	FormatDOCX        Format = "docx"
	FormatUnsupported Format = ""
)

// DetectFormat returns the format implied by the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDOCX
	default:
		return FormatUnsupported
	}
}

// PDFBackend reads PDF documents.
type PDFBackend interface {
	// Text returns the page texts concatenated in page order.
	Text(ctx context.Context, path string) (string, error)
	// Words returns positioned words for every page and the page count.
	Words(ctx context.Context, path string) ([]types.Word, int, error)
}

// DOCXBackend reads DOCX documents.
type DOCXBackend interface {
	// Text returns paragraph texts joined by newlines in document order.
	Text(ctx context.Context, path string) (string, error)
}

// Converter dispatches documents to format backends.
type Converter struct {
	pdf    PDFBackend
	docx   DOCXBackend
	layout LayoutOptions
}

// Option configures a Converter.
type Option func(*Converter)

// WithPDFBackend replaces the PDF backend. A nil backend makes PDF unavailable.
func WithPDFBackend(b PDFBackend) Option {
	return func(c *Converter) { c.pdf = b }
}

// WithDOCXBackend replaces the DOCX backend. A nil backend makes DOCX unavailable.
func WithDOCXBackend(b DOCXBackend) Option {
	return func(c *Converter) { c.docx = b }
}

// WithLayoutOptions sets line grouping and header classification parameters.
func WithLayoutOptions(opts LayoutOptions) Option {
	return func(c *Converter) { c.layout = opts.withDefaults() }
}

// New returns a Converter using the ledongthuc PDF reader and docconv for DOCX.
func New(opts ...Option) *Converter {
	c := &Converter{
		pdf:    NewPDFReader(),
		docx:   NewDOCXReader(),
		layout: DefaultLayoutOptions(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LayoutOptions returns the options used for positional parsing.
func (c *Converter) LayoutOptions() LayoutOptions {
	return c.layout
}

// Supports reports whether the converter has a backend for format.
func (c *Converter) Supports(format Format) bool {
	switch format {
	case FormatPDF:
		return c.pdf != nil
	case FormatDOCX:
		return c.docx != nil
	}
	return false
}

// ConvertToText extracts plain text. Unsupported extensions yield ok == false
// and no error.
func (c *Converter) ConvertToText(ctx context.Context, path string) (text string, ok bool, err error) {
	format := DetectFormat(path)
	if format == FormatUnsupported {
		return "", false, nil
	}
	if !c.Supports(format) {
		return "", true, &LibraryUnavailableError{Format: format}
	}
	if err := ctx.Err(); err != nil {
		return "", true, err
	}

	err = guard(func() error {
		var readErr error
		switch format {
		case FormatPDF:
			text, readErr = c.pdf.Text(ctx, path)
		case FormatDOCX:
			text, readErr = c.docx.Text(ctx, path)
		}
		return readErr
	})
	if err != nil {
		return "", true, &ConversionError{Path: path, Message: "failed to extract text", Cause: err}
	}
	return strings.TrimSpace(text), true, nil
}

// ExtractLayout returns the positional view of a PDF. Failures of the reader,
// panics included, are reported as *LayoutError. A missing reader is reported
// as *LibraryUnavailableError.
func (c *Converter) ExtractLayout(ctx context.Context, path string) (*types.Layout, error) {
	if DetectFormat(path) != FormatPDF {
		return nil, &LayoutError{Path: path, Message: "layout is only available for PDF documents"}
	}
	if c.pdf == nil {
		return nil, &LibraryUnavailableError{Format: FormatPDF}
	}
	if err := ctx.Err(); err != nil {
		return nil, &LayoutError{Path: path, Message: "cancelled", Cause: err}
	}

	var (
		words []types.Word
		pages int
	)
	err := guard(func() error {
		var readErr error
		words, pages, readErr = c.pdf.Words(ctx, path)
		return readErr
	})
	if err != nil {
		return nil, &LayoutError{Path: path, Message: "failed to read positioned words", Cause: err}
	}
	if len(words) == 0 {
		return nil, &LayoutError{Path: path, Message: "no positioned text found"}
	}

	return BuildLayout(words, pages, c.layout), nil
}

// guard runs fn and converts a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()
	return fn()
}

// IsRecoverable reports whether err can be answered by falling back to plain text.
func IsRecoverable(err error) bool {
	var layoutErr *LayoutError
	return errors.As(err, &layoutErr)
}
