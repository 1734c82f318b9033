package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means the command needs a session and there is none.
	ErrUnauthenticated = errors.New("not logged in")
	// ErrForbidden means the session lacks the admin role.
	ErrForbidden = errors.New("admin role required")
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports a missing or malformed input field. It is raised
// before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}
