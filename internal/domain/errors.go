package domain

import "errors"

// Errors shared across domain entities. Entity-specific validation
// failures live next to their entity; these cover the cross-cutting
// cases the API layer maps to 400 responses.
var (
	// ErrValidation marks an entity or dependency that failed validation.
	// Wrapped with detail at the point of failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID marks a malformed identifier.
	ErrInvalidID = errors.New("invalid ID")
)
