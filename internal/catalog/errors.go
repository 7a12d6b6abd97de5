// Package catalog defines the shared error taxonomy for the snapshot catalog.
package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the target record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate slug or id on create.
	ErrConflict = errors.New("already exists")

	// ErrStorage indicates the underlying store failed.
	ErrStorage = errors.New("storage error")
)

// ValidationError reports missing or malformed input. It is rejected
// before any storage call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
