package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation failed")

	// ErrExperimentNotResolved is returned when a comparison references an
	// experiment id that does not exist. It matches ErrNotFound with errors.Is.
	ErrExperimentNotResolved = fmt.Errorf("an experiment id could not be resolved: %w", ErrNotFound)
)

// Validation wraps a user-facing message so it matches ErrValidation.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
