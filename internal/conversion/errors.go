package conversion

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned by callers that need an error for a file
// the converter declined. The converter itself reports it with ok == false.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// LibraryUnavailableError indicates no backend is configured for a format.
// It is fatal for the pipeline.
type LibraryUnavailableError struct {
	Format Format
}

func (e *LibraryUnavailableError) Error() string {
	return fmt.Sprintf("no %s reader available", e.Format)
}

// ConversionError represents a failure reading a supported document.
type ConversionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// LayoutError represents a recoverable failure of positional parsing.
// The pipeline answers it by falling back to plain-text parsing.
type LayoutError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LayoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("layout extraction failed for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("layout extraction failed for %s: %s", e.Path, e.Message)
}

func (e *LayoutError) Unwrap() error {
	return e.Cause
}

// panicError wraps a value recovered from a backend panic.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprintf("reader panicked: %v", e.value)
}
