// Package store implements the data access layer for users, quotas,
// policies and audit logs. Repositories validate input before issuing a
// write and fail fast with a typed error; no partial mutation is ever
// committed.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the referenced entity has no matching row.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict indicates a uniqueness constraint was violated.
	ErrConflict = errors.New("store: already exists")
)

// ValidationError reports caller-supplied data violating a field
// constraint. It names the offending field so handlers can surface a
// precise message.
type ValidationError struct {
	Field  string // Offending field, in wire naming.
	Reason string // Short human-readable reason.
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "store: validation: " + e.Reason
	}
	return fmt.Sprintf("store: validation: %s %s", e.Field, e.Reason)
}

// Message returns the caller-facing description without the package prefix.
func (e *ValidationError) Message() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
