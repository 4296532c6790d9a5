package services

import (
	"errors"

	goa "goa.design/goa/v3/pkg"
)

// ValidationError reports the first invalid field of a submitted form.
// Message is shown to the submitter verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err is or wraps a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// BadRequest creates a goa service error for rejected input
func BadRequest(message string) *goa.ServiceError {
	return goa.PermanentError("bad_request", "%s", message)
}

// Internal converts an unexpected error into a goa fault
func Internal(err error) *goa.ServiceError {
	return goa.Fault("%s", err.Error())
}
