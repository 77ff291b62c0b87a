package chazara

import (
	"errors"
	"fmt"

	"github.com/ukaji3/chazara-go/pkg/chazara/models"
	"github.com/ukaji3/chazara-go/pkg/chazara/sequence"
)

// ErrNoContent indicates a request without any content id.
var ErrNoContent = errors.New("at least one content id is required")

// ErrInvertedRange indicates a range whose end precedes its start.
var ErrInvertedRange = sequence.ErrInvertedRange

// ErrTooManyRows indicates a chart longer than the configured row limit.
var ErrTooManyRows = errors.New("too many rows")

// ErrFileNotFound indicates an inspected file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates an inspected file is neither .xlsx nor .pdf.
var ErrInvalidFormat = errors.New("invalid chart file format")

// ValidationError reports a request rejected before any generation work.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string, err error) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: reason,
		Err:    err,
	}
}

// RenderError reports a failure while building or writing a document.
type RenderError struct {
	ContentID string
	Format    models.Format
	Stage     string // "render", "write"
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error for %q (%s %s): %v", e.ContentID, e.Format, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError.
func NewRenderError(contentID string, format models.Format, stage string, err error) *RenderError {
	return &RenderError{
		ContentID: contentID,
		Format:    format,
		Stage:     stage,
		Err:       err,
	}
}

// ErrorPayload is the structured error returned to callers instead of a document.
type ErrorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Payload converts an error from Generate into its caller-facing form.
func Payload(err error) ErrorPayload {
	var ve *ValidationError
	if errors.As(err, &ve) {
		if errors.Is(err, ErrNoContent) {
			return ErrorPayload{Error: "Please provide at least one tractate"}
		}
		return ErrorPayload{Error: ve.Error()}
	}

	var re *RenderError
	if errors.As(err, &re) {
		what := "chart"
		switch re.Format {
		case models.FormatTabular:
			what = "Excel file"
		case models.FormatPaginated:
			what = "PDF file"
		}
		return ErrorPayload{Error: "Failed to generate " + what, Details: re.Err.Error()}
	}

	if err == nil {
		return ErrorPayload{}
	}
	return ErrorPayload{Error: "Internal error", Details: err.Error()}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
