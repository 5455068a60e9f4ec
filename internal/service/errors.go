package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent common conditions that callers may want to check for with errors.Is().
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Unexpected errors are wrapped in service-specific error types
// 3. Callers use errors.Is/errors.As to check for specific error conditions
// 4. The API layer maps service errors to appropriate HTTP status codes
var (
	// ErrDeckNotFound indicates that the deck does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrNoteNotFound indicates that the note does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrNoteNotFound = errors.New("note not found")

	// ErrDeckNameTaken indicates that another deck already holds the
	// requested name. API layer should map this to HTTP 409 Conflict.
	ErrDeckNameTaken = errors.New("deck name is already taken")

	// ErrInvalidLabel indicates a position label that does not follow the
	// deck@digits form. API layer should map this to HTTP 400 Bad Request.
	ErrInvalidLabel = errors.New("invalid position label")
)
