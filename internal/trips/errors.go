package trips

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers a missing trip and, deliberately, a driver probing
	// another driver's trip: the two are indistinguishable to the caller so
	// existence is never leaked.
	ErrNotFound = errors.New("trip not found")

	ErrForbidden = errors.New("forbidden")

	// ErrConflict reports a duplicate unique field, e.g. a driver email
	// that is already registered.
	ErrConflict = errors.New("duplicate record")
)

// FieldError reports a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries field-level detail for malformed input. No
// mutation happens when one is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a field error and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors reports whether any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}
