// Package core holds the cross-cutting pieces the domain packages lean
// on: configuration, logging, email, validation and the error shapes
// the HTTP layer knows how to render.
package core

import "github.com/pkg/errors"

// FieldError attaches an error message to a single named input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries user-facing input errors. When Fields is set
// the HTTP layer renders it as a field-to-message map; otherwise Err's
// message is shown as-is.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks an error as unrecoverable for the running process.
type shutdown struct {
	message string
}

// NewShutdownError flags an error that should take the service down
// gracefully rather than be retried.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown checks the error chain for a shutdown marker.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
