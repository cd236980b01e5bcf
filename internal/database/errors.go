package database

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a record is missing or owned by another user.
// Callers cannot tell the two cases apart.
var ErrNotFound = errors.New("not found")

// ValidationError reports invalid input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundIfMissing maps gorm.ErrRecordNotFound to ErrNotFound.
func NotFoundIfMissing(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
