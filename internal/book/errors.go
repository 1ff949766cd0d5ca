package book

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when no book has the requested id.
	ErrNotFound = errors.New("book not found")

	// ErrAlreadyExists is returned when a create collides with an existing id.
	ErrAlreadyExists = errors.New("book already exists")

	// ErrBadResource is returned when a book payload is malformed or invalid.
	ErrBadResource = errors.New("bad book resource")
)

// FieldError describes one rejected field of a book payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a bad-resource error with per-field details.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrBadResource.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return ErrBadResource.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrBadResource
}

func invalidField(field, message string) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}
