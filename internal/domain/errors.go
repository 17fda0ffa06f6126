package domain

import "errors"

// Domain errors
var (
	ErrInputMissing       = errors.New("no document provided")
	ErrInputFormatInvalid = errors.New("invalid file format, only PDFs are allowed")
	ErrDocumentUnreadable = errors.New("document unreadable")
	ErrRecognitionFailure = errors.New("text recognition failed")
	ErrArtifactAbsent     = errors.New("no report has been produced yet")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Unwrap exposes the sentinel the validation failure maps to
func (e *ValidationError) Unwrap() error {
	return e.Err
}
