package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/store"
)

// MockDeckStore implements store.DeckStore for testing
type MockDeckStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, deck *domain.Deck) error
	GetByIDFn     func(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	GetByNameFn   func(ctx context.Context, name string) (*domain.Deck, error)
	ListFn        func(ctx context.Context) ([]*domain.Deck, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	AcquireLockFn func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Decks       map[uuid.UUID]*domain.Deck
	CreateError error
}

// NewMockDeckStore creates a new mock store with initialized defaults
func NewMockDeckStore() *MockDeckStore {
	return &MockDeckStore{
		Decks: make(map[uuid.UUID]*domain.Deck),
	}
}

// Create implements the DeckStore interface
func (m *MockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, deck)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Decks {
		if existing.Name == deck.Name {
			return store.ErrDeckNameExists
		}
	}

	m.Decks[deck.ID] = deck
	return nil
}

// GetByID implements the DeckStore interface
func (m *MockDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	deck, exists := m.Decks[id]
	if !exists {
		return nil, store.ErrDeckNotFound
	}

	return deck, nil
}

// GetByName implements the DeckStore interface
func (m *MockDeckStore) GetByName(ctx context.Context, name string) (*domain.Deck, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}

	for _, deck := range m.Decks {
		if deck.Name == name {
			return deck, nil
		}
	}

	return nil, store.ErrDeckNotFound
}

// List implements the DeckStore interface
func (m *MockDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	decks := make([]*domain.Deck, 0, len(m.Decks))
	for _, deck := range m.Decks {
		decks = append(decks, deck)
	}
	sort.Slice(decks, func(i, j int) bool {
		return decks[i].Name < decks[j].Name
	})

	return decks, nil
}

// Delete implements the DeckStore interface
func (m *MockDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Decks[id]; !exists {
		return store.ErrDeckNotFound
	}

	delete(m.Decks, id)
	return nil
}

// AcquireLock implements the DeckStore interface. The in-memory mock
// has no row locks; it only reports whether the deck exists.
func (m *MockDeckStore) AcquireLock(ctx context.Context, id uuid.UUID) error {
	if m.AcquireLockFn != nil {
		return m.AcquireLockFn(ctx, id)
	}

	if _, exists := m.Decks[id]; !exists {
		return store.ErrDeckNotFound
	}

	return nil
}

// WithTx implements the DeckStore interface for transaction support
func (m *MockDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	// For mock purposes, just return the same mock
	return m
}
