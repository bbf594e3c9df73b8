package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is the kind shared by every missing-entity error.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrTweetNotFound      = fmt.Errorf("tweet %w", ErrNotFound)
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation failed")
)

// FieldError describes one violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every field that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
