package models

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported document format")
	ErrExtractionFailed  = errors.New("document text extraction failed")
	ErrEmptyInput        = errors.New("required input is empty")
	ErrGenerationFailed  = errors.New("text generation failed")
	ErrMalformedResponse = errors.New("malformed model response")
	ErrBusy              = errors.New("a request is already in flight")
	ErrFileTooLarge      = errors.New("uploaded file is too large")
)

// ValidationError carries the message shown to the user when a request
// guard fails. It matches ErrEmptyInput with errors.Is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrEmptyInput
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
