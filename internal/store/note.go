package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
)

// NoteStore defines the interface for note data persistence.
type NoteStore interface {
	// Create saves a new note to the store.
	// It handles domain validation internally.
	// Returns ErrDeckNotFound if the note's deck does not exist and
	// ErrPositionTaken if the note's position is already held by
	// another note in the deck.
	Create(ctx context.Context, note *domain.Note) error

	// GetByID retrieves a note by its unique ID.
	// Returns ErrNoteNotFound if the note does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// ListByDeck retrieves all notes in a deck in display order:
	// positioned notes first by position, then unpositioned notes in
	// insertion order. Returns an empty slice if the deck has no notes.
	ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Note, error)

	// ListUnpositioned retrieves every note in the collection that has
	// no position yet, in insertion order across decks.
	// Returns an empty slice if every note is positioned.
	ListUnpositioned(ctx context.Context) ([]*domain.Note, error)

	// UpdatePosition sets the position of an existing note.
	// Returns ErrNoteNotFound if the note does not exist and
	// ErrPositionTaken if the position is already held by another note
	// in the same deck.
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error

	// Delete removes a note from the store.
	// Returns ErrNoteNotFound if the note does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new NoteStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) NoteStore
}
