package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
	"github.com/phrazzld/deckorder-api/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// Create implements store.DeckStore.Create
// It saves a new deck to the database, handling domain validation.
// Returns store.ErrDeckNameExists when another deck already holds the name.
func (s *PostgresDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		log.Warn("deck validation failed during create",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return err
	}

	query := `
		INSERT INTO decks (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		deck.ID,
		deck.Name,
		deck.CreatedAt,
		deck.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("deck name already in use",
				slog.String("deck_id", deck.ID.String()),
				slog.String("name", deck.Name))
			return store.ErrDeckNameExists
		}

		log.Error("failed to create deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.String("name", deck.Name))
	return nil
}

// GetByID implements store.DeckStore.GetByID
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, created_at, updated_at
		FROM decks
		WHERE id = $1
	`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&deck.ID,
		&deck.Name,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, err
	}

	return &deck, nil
}

// GetByName implements store.DeckStore.GetByName
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) GetByName(ctx context.Context, name string) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, created_at, updated_at
		FROM decks
		WHERE name = $1
	`

	var deck domain.Deck
	err := s.db.QueryRowContext(ctx, query, name).Scan(
		&deck.ID,
		&deck.Name,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("name", name))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by name",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, err
	}

	return &deck, nil
}

// List implements store.DeckStore.List
// Decks come back ordered by name. Returns an empty slice when no decks exist.
func (s *PostgresDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, created_at, updated_at
		FROM decks
		ORDER BY name ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var decks []*domain.Deck
	for rows.Next() {
		var deck domain.Deck
		if err := rows.Scan(&deck.ID, &deck.Name, &deck.CreatedAt, &deck.UpdatedAt); err != nil {
			log.Error("failed to scan deck row", slog.String("error", err.Error()))
			return nil, err
		}
		decks = append(decks, &deck)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if decks == nil {
		decks = []*domain.Deck{}
	}

	log.Debug("listed decks", slog.Int("count", len(decks)))
	return decks, nil
}

// Delete implements store.DeckStore.Delete
// The schema's ON DELETE CASCADE removes the deck's notes with it.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM decks WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("deck not found for deletion", slog.String("deck_id", id.String()))
		return store.ErrDeckNotFound
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

// AcquireLock implements store.DeckStore.AcquireLock
// It takes the deck's row lock with SELECT ... FOR UPDATE, blocking until
// concurrent holders release it. The lock lasts until the surrounding
// transaction ends, so calling this outside a transaction serializes
// nothing. Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) AcquireLock(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT id FROM decks WHERE id = $1 FOR UPDATE`

	var locked uuid.UUID
	err := s.db.QueryRowContext(ctx, query, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found for lock", slog.String("deck_id", id.String()))
			return store.ErrDeckNotFound
		}
		log.Error("failed to lock deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return err
	}

	log.Debug("deck locked", slog.String("deck_id", id.String()))
	return nil
}

// WithTx implements store.DeckStore.WithTx
// It returns a store bound to the given transaction, sharing the logger.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}
