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

// CreateTestDeck builds a deck with a unique name so parallel tests
// never contend on the deck name unique constraint.
func CreateTestDeck(t *testing.T) *domain.Deck {
	t.Helper()

	return &domain.Deck{
		ID:        uuid.New(),
		Name:      "Test Deck " + uuid.New().String()[:8],
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

// MustInsertDeck inserts a deck into the database for testing.
//
// This helper:
// - Creates a deck with a unique test name
// - Inserts the deck into the database using the provided transaction
// - Returns the inserted deck object with all fields populated
// - Fails the test with a descriptive error if insertion fails
func MustInsertDeck(
	ctx context.Context,
	t *testing.T,
	tx store.DBTX,
) *domain.Deck {
	t.Helper()

	deck := CreateTestDeck(t)

	deckStore := postgres.NewPostgresDeckStore(tx, nil)

	err := deckStore.Create(ctx, deck)
	require.NoError(t, err, "Failed to insert test deck")

	return deck
}

// CountDecks counts the number of decks in the database matching certain criteria.
func CountDecks(
	ctx context.Context,
	t *testing.T,
	tx store.DBTX,
	whereClause string,
	args ...interface{},
) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM decks"
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	var count int
	err := tx.QueryRowContext(ctx, query, args...).Scan(&count)
	require.NoError(t, err, "Failed to count decks")

	return count
}
