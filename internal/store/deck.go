package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck to the store.
	// It handles domain validation internally.
	// Returns ErrDeckNameExists if a deck with the same name already exists.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// GetByName retrieves a deck by its unique name.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByName(ctx context.Context, name string) (*domain.Deck, error)

	// List retrieves all decks ordered by name.
	// Returns an empty slice if no decks exist.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Delete removes a deck and, through the schema's cascade, all of
	// its notes. Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// AcquireLock takes a row-level lock on the deck for the duration
	// of the surrounding transaction, serializing position writes
	// against concurrent writers. It must be called inside a
	// transaction. Returns ErrDeckNotFound if the deck does not exist.
	AcquireLock(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DeckStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) DeckStore
}
