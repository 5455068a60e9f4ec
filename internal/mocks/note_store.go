package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/store"
)

// MockNoteStore implements store.NoteStore for testing. Notes holds the
// backing data in insertion order, which the default implementations use
// wherever the real store orders by creation time.
type MockNoteStore struct {
	// Function fields for customizable behavior
	CreateFn           func(ctx context.Context, note *domain.Note) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Note, error)
	ListByDeckFn       func(ctx context.Context, deckID uuid.UUID) ([]*domain.Note, error)
	ListUnpositionedFn func(ctx context.Context) ([]*domain.Note, error)
	UpdatePositionFn   func(ctx context.Context, id uuid.UUID, position int) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Notes       []*domain.Note
	CreateError error
}

// NewMockNoteStore creates a new mock store with initialized defaults
func NewMockNoteStore() *MockNoteStore {
	return &MockNoteStore{}
}

// Create implements the NoteStore interface
func (m *MockNoteStore) Create(ctx context.Context, note *domain.Note) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, note)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	if note.Positioned() {
		for _, existing := range m.Notes {
			if existing.DeckID == note.DeckID && existing.Position == note.Position {
				return store.ErrPositionTaken
			}
		}
	}

	m.Notes = append(m.Notes, note)
	return nil
}

// GetByID implements the NoteStore interface
func (m *MockNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	for _, note := range m.Notes {
		if note.ID == id {
			return note, nil
		}
	}

	return nil, store.ErrNoteNotFound
}

// ListByDeck implements the NoteStore interface: positioned notes first
// by position, then unpositioned notes in insertion order.
func (m *MockNoteStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Note, error) {
	if m.ListByDeckFn != nil {
		return m.ListByDeckFn(ctx, deckID)
	}

	var notes []*domain.Note
	for _, note := range m.Notes {
		if note.DeckID == deckID {
			notes = append(notes, note)
		}
	}
	sort.SliceStable(notes, func(i, j int) bool {
		a, b := notes[i], notes[j]
		switch {
		case a.Positioned() && b.Positioned():
			return a.Position < b.Position
		case a.Positioned():
			return true
		default:
			return false
		}
	})

	return notes, nil
}

// ListUnpositioned implements the NoteStore interface
func (m *MockNoteStore) ListUnpositioned(ctx context.Context) ([]*domain.Note, error) {
	if m.ListUnpositionedFn != nil {
		return m.ListUnpositionedFn(ctx)
	}

	var notes []*domain.Note
	for _, note := range m.Notes {
		if !note.Positioned() {
			notes = append(notes, note)
		}
	}

	return notes, nil
}

// UpdatePosition implements the NoteStore interface. The real store
// checks position uniqueness at commit, so the default accepts the
// intermediate duplicates a swap produces; set UpdatePositionFn to
// exercise refusals.
func (m *MockNoteStore) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	if m.UpdatePositionFn != nil {
		return m.UpdatePositionFn(ctx, id, position)
	}

	note, err := m.find(id)
	if err != nil {
		return err
	}

	note.Position = position
	return nil
}

// Delete implements the NoteStore interface
func (m *MockNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	for i, note := range m.Notes {
		if note.ID == id {
			m.Notes = append(m.Notes[:i], m.Notes[i+1:]...)
			return nil
		}
	}

	return store.ErrNoteNotFound
}

// WithTx implements the NoteStore interface for transaction support
func (m *MockNoteStore) WithTx(tx *sql.Tx) store.NoteStore {
	// For mock purposes, just return the same mock
	return m
}

func (m *MockNoteStore) find(id uuid.UUID) (*domain.Note, error) {
	for _, note := range m.Notes {
		if note.ID == id {
			return note, nil
		}
	}
	return nil, store.ErrNoteNotFound
}
