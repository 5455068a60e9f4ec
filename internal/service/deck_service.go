package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/store"
)

// DeckService provides deck-related operations
type DeckService interface {
	// CreateDeck creates a new deck with the given name
	CreateDeck(ctx context.Context, name string) (*domain.Deck, error)

	// GetDeck retrieves a deck by its ID
	GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error)

	// ListDecks retrieves all decks ordered by name
	ListDecks(ctx context.Context) ([]*domain.Deck, error)

	// DeleteDeck removes a deck and, through the schema's cascade, all of its notes
	DeleteDeck(ctx context.Context, deckID uuid.UUID) error
}

// DeckServiceError wraps errors from the deck service with context.
type DeckServiceError struct {
	// Operation is the operation that failed (e.g., "create_deck", "delete_deck")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError.
// It returns known sentinel errors directly without wrapping.
func NewDeckServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	// Check for service-defined sentinel errors
	if errors.Is(err, ErrDeckNotFound) || errors.Is(err, store.ErrDeckNotFound) {
		return ErrDeckNotFound
	}
	if errors.Is(err, ErrDeckNameTaken) || errors.Is(err, store.ErrDeckNameExists) {
		return ErrDeckNameTaken
	}

	// If not a sentinel to be returned directly, wrap it
	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// deckServiceImpl implements the DeckService interface
type deckServiceImpl struct {
	deckStore store.DeckStore
	logger    *slog.Logger
}

// NewDeckService creates a new DeckService
// It returns an error if any of the required dependencies are nil.
func NewDeckService(deckStore store.DeckStore, logger *slog.Logger) (DeckService, error) {
	if deckStore == nil {
		return nil, &DeckServiceError{
			Operation: "create_service",
			Message:   "deckStore cannot be nil",
			Err:       domain.ErrValidation,
		}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		deckStore: deckStore,
		logger:    logger.With("component", "deck_service"),
	}, nil
}

// CreateDeck creates and persists a new deck
func (s *deckServiceImpl) CreateDeck(ctx context.Context, name string) (*domain.Deck, error) {
	deck, err := domain.NewDeck(name)
	if err != nil {
		s.logger.Error("failed to create deck object",
			"error", err,
			"name", name)
		return nil, NewDeckServiceError("create_deck", "failed to create deck object", err)
	}

	err = s.deckStore.Create(ctx, deck)
	if err != nil {
		s.logger.Error("failed to save deck",
			"error", err,
			"deck_id", deck.ID,
			"name", deck.Name)
		return nil, NewDeckServiceError("create_deck", "failed to save deck", err)
	}

	s.logger.Info("deck created successfully",
		"deck_id", deck.ID,
		"name", deck.Name)

	return deck, nil
}

// GetDeck retrieves a deck by its ID
func (s *deckServiceImpl) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		s.logger.Error("failed to retrieve deck",
			"error", err,
			"deck_id", deckID)

		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, NewDeckServiceError("get_deck", "failed to retrieve deck", err)
	}

	return deck, nil
}

// ListDecks retrieves all decks ordered by name
func (s *deckServiceImpl) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	decks, err := s.deckStore.List(ctx)
	if err != nil {
		s.logger.Error("failed to list decks", "error", err)
		return nil, NewDeckServiceError("list_decks", "failed to list decks", err)
	}

	s.logger.Debug("listed decks", "count", len(decks))
	return decks, nil
}

// DeleteDeck removes a deck and all of its notes
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, deckID uuid.UUID) error {
	err := s.deckStore.Delete(ctx, deckID)
	if err != nil {
		s.logger.Error("failed to delete deck",
			"error", err,
			"deck_id", deckID)

		if errors.Is(err, store.ErrDeckNotFound) {
			return ErrDeckNotFound
		}
		return NewDeckServiceError("delete_deck", "failed to delete deck", err)
	}

	s.logger.Info("deck deleted", "deck_id", deckID)
	return nil
}
