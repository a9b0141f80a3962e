package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an id or lookup key resolves to no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique field (e.g. email) is already taken.
	ErrConflict = errors.New("already exists")
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden is returned when an authenticated caller acts outside its own data.
	ErrForbidden = errors.New("forbidden")
	// ErrNoRowsAffected is returned when an update or delete matched nothing.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// ValidationError describes a rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
