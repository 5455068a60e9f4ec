package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/domain/position"
	"github.com/phrazzld/deckorder-api/internal/service"
	"github.com/phrazzld/deckorder-api/internal/service/auth"
	"github.com/phrazzld/deckorder-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrDeckNotFound),
		errors.Is(err, service.ErrNoteNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDeckNameTaken),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Ordering errors: the request is well-formed but cannot be applied
	// to the deck in its current state
	case errors.Is(err, position.ErrReorderMismatch),
		errors.Is(err, position.ErrUnpositionedNote),
		errors.Is(err, position.ErrDuplicatePosition):
		return http.StatusUnprocessableEntity

	// Bad request errors
	case errors.Is(err, service.ErrInvalidDirection),
		errors.Is(err, service.ErrInvalidLabel),
		errors.Is(err, domain.ErrDeckNameEmpty),
		errors.Is(err, domain.ErrDeckNameInvalid),
		errors.Is(err, domain.ErrNoteFrontEmpty),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	// Handle nil error
	if err == nil {
		return "An unexpected error occurred"
	}

	// Map specific error types to user-friendly messages
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	// Not found errors
	case errors.Is(err, service.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, service.ErrNoteNotFound):
		return "Note not found"

	// Conflict errors
	case errors.Is(err, service.ErrDeckNameTaken):
		return "Deck name already in use"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	// Ordering errors
	case errors.Is(err, position.ErrReorderMismatch):
		return "Requested order does not match the notes in the deck"

	case errors.Is(err, position.ErrUnpositionedNote):
		return "Note has no position assigned"

	case errors.Is(err, position.ErrDuplicatePosition):
		return "Deck contains duplicate positions"

	// Bad request errors
	case errors.Is(err, service.ErrInvalidDirection):
		return "Invalid move direction"

	case errors.Is(err, service.ErrInvalidLabel):
		return "Label must have the form deck@digits"

	case errors.Is(err, domain.ErrDeckNameEmpty):
		return "Deck name is required"

	case errors.Is(err, domain.ErrDeckNameInvalid):
		return "Deck name must not contain the label separator"

	case errors.Is(err, domain.ErrNoteFrontEmpty):
		return "Note front is required"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	// Default case for unknown errors
	default:
		// Service errors carry the operation name; use it to give the
		// client a hint without exposing the underlying error
		if strings.Contains(err.Error(), "reorder") {
			return "Failed to reorder deck"
		} else if strings.Contains(err.Error(), "renumber") {
			return "Failed to renumber deck"
		} else if strings.Contains(err.Error(), "verify") {
			return "Failed to verify collection"
		}
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Check if this is likely a validation error message
	if strings.Contains(errMsg, "Field validation") {
		// Extract the field name and validation tag
		// Example format: "Key: 'CreateDeckRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			// Further split to get just the field validation part
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				// Create a cleaner error message
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	// Fall back to a generic validation error message
	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
