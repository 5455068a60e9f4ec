package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/domain/position"
	"github.com/phrazzld/deckorder-api/internal/service"
	"github.com/phrazzld/deckorder-api/internal/service/auth"
	"github.com/phrazzld/deckorder-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{
			name:           "nil error",
			err:            nil,
			expectedStatus: http.StatusInternalServerError, // Default to 500 for nil error
		},
		{
			name:           "authentication error",
			err:            auth.ErrInvalidToken,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrapped authentication error",
			err:            fmt.Errorf("failed to authenticate: %w", auth.ErrExpiredToken),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "deck not found",
			err:            service.ErrDeckNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "note not found from store",
			err:            store.ErrNoteNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "deck name taken",
			err:            service.ErrDeckNameTaken,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "position taken",
			err:            store.ErrPositionTaken,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "reorder mismatch",
			err:            fmt.Errorf("%w: 2 notes missing", position.ErrReorderMismatch),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "unpositioned note",
			err:            position.ErrUnpositionedNote,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "duplicate positions",
			err:            position.ErrDuplicatePosition,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "invalid move direction",
			err:            service.ErrInvalidDirection,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid label",
			err:            service.ErrInvalidLabel,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "deck name with separator",
			err:            domain.ErrDeckNameInvalid,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty note front",
			err:            domain.ErrNoteFrontEmpty,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown error",
			err:            errors.New("unknown error"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "store error wrapping not found",
			err: store.NewStoreError(
				"deck",
				"get",
				"lookup failed",
				store.ErrDeckNotFound,
			),
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "store error wrapping duplicate",
			err: store.NewStoreError(
				"deck",
				"create",
				"already exists",
				store.ErrDeckNameExists,
			),
			expectedStatus: http.StatusConflict,
		},
		{
			name: "deeply nested error",
			err: fmt.Errorf(
				"outer: %w",
				fmt.Errorf(
					"middle: %w",
					store.NewStoreError("note", "get", "lookup failed", store.ErrNoteNotFound),
				),
			),
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "store error with no specific wrapped error",
			err: store.NewStoreError(
				"note",
				"update",
				"database error",
				errors.New("connection refused"),
			),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := MapErrorToStatusCode(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name:            "nil error",
			err:             nil,
			expectedMessage: "An unexpected error occurred",
		},
		{
			name:            "invalid token",
			err:             auth.ErrInvalidToken,
			expectedMessage: "Invalid token",
		},
		{
			name:            "expired token",
			err:             fmt.Errorf("failed due to: %w", auth.ErrExpiredToken),
			expectedMessage: "Token expired",
		},
		{
			name:            "deck not found",
			err:             service.ErrDeckNotFound,
			expectedMessage: "Deck not found",
		},
		{
			name:            "note not found",
			err:             service.ErrNoteNotFound,
			expectedMessage: "Note not found",
		},
		{
			name:            "deck name taken",
			err:             service.ErrDeckNameTaken,
			expectedMessage: "Deck name already in use",
		},
		{
			name:            "reorder mismatch with detail",
			err:             fmt.Errorf("%w: unknown note 42", position.ErrReorderMismatch),
			expectedMessage: "Requested order does not match the notes in the deck",
		},
		{
			name:            "unpositioned note",
			err:             position.ErrUnpositionedNote,
			expectedMessage: "Note has no position assigned",
		},
		{
			name:            "invalid direction",
			err:             service.ErrInvalidDirection,
			expectedMessage: "Invalid move direction",
		},
		{
			name:            "invalid label",
			err:             service.ErrInvalidLabel,
			expectedMessage: "Label must have the form deck@digits",
		},
		{
			name:            "deck name with separator",
			err:             domain.ErrDeckNameInvalid,
			expectedMessage: "Deck name must not contain the label separator",
		},
		{
			name:            "unknown reorder failure hints at the operation",
			err:             errors.New("order service reorder_deck failed: db gone"),
			expectedMessage: "Failed to reorder deck",
		},
		{
			name:            "unknown verify failure hints at the operation",
			err:             errors.New("order service verify failed: db gone"),
			expectedMessage: "Failed to verify collection",
		},
		{
			name:            "unknown error",
			err:             errors.New("database error: connection refused"),
			expectedMessage: "An unexpected error occurred", // Database error details are hidden
		},
		{
			name: "wrapped database error with SQL details",
			err: fmt.Errorf(
				"SQL error: %w",
				errors.New("syntax error at line 42 in SELECT * FROM notes"),
			),
			expectedMessage: "An unexpected error occurred", // SQL details are hidden
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			message := GetSafeErrorMessage(tt.err)
			assert.Equal(t, tt.expectedMessage, message)

			// Verify no sensitive details are leaked
			if tt.err != nil && tt.expectedMessage == "An unexpected error occurred" {
				assert.NotContains(
					t,
					message,
					tt.err.Error(),
					"Error message should not contain the actual error",
				)
			}
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	testError := errors.New(
		"Key: 'CreateDeckRequest.Name' Error:Field validation for 'Name' failed on the 'required' tag",
	)
	safeMessage := SanitizeValidationError(testError)

	// The sanitized message should not contain the full error details
	assert.NotEqual(t, testError.Error(), safeMessage)

	// It should contain a user-friendly reference to the field
	assert.Contains(t, safeMessage, "Name")

	// Verify that the specific field and tag are present in a user-friendly format
	assert.Equal(t, "Invalid Name: required field", safeMessage)

	// Test with a different format error
	otherError := errors.New("Some other kind of error")
	genericMessage := SanitizeValidationError(otherError)
	assert.Equal(t, "Validation error", genericMessage)
}

func TestSanitizeValidationErrorTags(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		expectedMessage string
	}{
		{
			name: "oneof tag",
			err: errors.New(
				"Key: 'MoveRequest.Direction' Error:Field validation for 'Direction' failed on the 'oneof' tag",
			),
			expectedMessage: "Invalid Direction: invalid value",
		},
		{
			name: "min tag",
			err: errors.New(
				"Key: 'ReorderRequest.NoteIDs' Error:Field validation for 'NoteIDs' failed on the 'min' tag",
			),
			expectedMessage: "Invalid NoteIDs: too short",
		},
		{
			name: "max tag",
			err: errors.New(
				"Key: 'CreateDeckRequest.Name' Error:Field validation for 'Name' failed on the 'max' tag",
			),
			expectedMessage: "Invalid Name: too long",
		},
		{
			name: "unknown tag",
			err: errors.New(
				"Key: 'CreateDeckRequest.Name' Error:Field validation for 'Name' failed on the 'uuid4' tag",
			),
			expectedMessage: "Invalid Name: validation failed",
		},
		{
			name:            "malformed validator error",
			err:             errors.New("Field validation for Name failed"),
			expectedMessage: "Validation error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedMessage, SanitizeValidationError(tt.err))
		})
	}
}
