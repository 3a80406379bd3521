package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-extractor/internal/conversion"
	"github.com/jonathan/resume-extractor/internal/ingestion"
	"github.com/jonathan/resume-extractor/internal/jobqueue"
)

// Error codes returned in the "code" field of error bodies.
const (
	CodeValidation      = "validation_error"
	CodeNotFound        = "not_found"
	CodeNotReady        = "dependencies_not_ready"
	CodeUnsupported     = "unsupported_format"
	CodeQueueClosed     = "queue_closed"
	CodeInternal        = "internal_error"
	CodeRequestTimeout  = "request_timeout"
	CodeRateLimitExceed = "rate_limit_exceeded"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates a resource that does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	status, _ := classify(err)
	return status
}

// classify maps err to a status code and an error code.
func classify(err error) (int, string) {
	var (
		fileErr  *ingestion.FileError
		valErr   *ErrValidation
		fields   validator.ValidationErrors
		notFound *ErrNotFound
		depErr   *jobqueue.DependencyError
	)

	switch {
	case errors.As(err, &fileErr):
		switch fileErr.Reason {
		case ingestion.ReasonTooLarge:
			return http.StatusRequestEntityTooLarge, string(fileErr.Reason)
		case ingestion.ReasonInvalidType:
			return http.StatusUnsupportedMediaType, string(fileErr.Reason)
		default:
			return http.StatusBadRequest, string(fileErr.Reason)
		}
	case errors.As(err, &valErr), errors.As(err, &fields):
		return http.StatusBadRequest, CodeValidation
	case errors.As(err, &notFound), errors.Is(err, jobqueue.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.As(err, &depErr):
		return http.StatusConflict, CodeNotReady
	case errors.Is(err, conversion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, CodeUnsupported
	case errors.Is(err, jobqueue.ErrClosed):
		return http.StatusServiceUnavailable, CodeQueueClosed
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeRequestTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// validationMessage renders validator field errors as one line.
func validationMessage(err error) string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return err.Error()
	}
	fe := fields[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
