//go:build integration

package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/platform/postgres"
	"github.com/phrazzld/deckorder-api/internal/store"
	"github.com/stretchr/testify/require"
)

// CreateTestNote builds an unpositioned note for the given deck with
// unique front text.
func CreateTestNote(t *testing.T, deckID uuid.UUID) *domain.Note {
	t.Helper()

	return &domain.Note{
		ID:        uuid.New(),
		DeckID:    deckID,
		Front:     "Test front " + uuid.New().String()[:8],
		Back:      "Test back",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// MustInsertNote inserts a note into the database for testing.
// A position of zero inserts the note unpositioned.
//
// This helper:
// - Creates a note with default test values in the given deck
// - Assigns the requested display-order position, if any
// - Inserts the note into the database using the provided transaction
// - Returns the inserted note object with all fields populated
// - Fails the test with a descriptive error if insertion fails
func MustInsertNote(
	ctx context.Context,
	t *testing.T,
	tx store.DBTX,
	deckID uuid.UUID,
	position int,
) *domain.Note {
	t.Helper()

	note := CreateTestNote(t, deckID)
	if position > 0 {
		require.NoError(t, note.SetPosition(position), "Failed to set test note position")
	}

	noteStore := postgres.NewPostgresNoteStore(tx, nil)

	err := noteStore.Create(ctx, note)
	require.NoError(t, err, "Failed to insert test note")

	return note
}

// CountNotes counts the number of notes in the database matching certain criteria.
func CountNotes(
	ctx context.Context,
	t *testing.T,
	tx store.DBTX,
	whereClause string,
	args ...interface{},
) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM notes"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	var count int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&count)
	require.NoError(t, err, "Failed to count notes")

	return count
}
