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

// PostgresNoteStore implements the store.NoteStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNoteStore creates a new PostgreSQL implementation of the NoteStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresNoteStore(db store.DBTX, logger *slog.Logger) *PostgresNoteStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Ensure PostgresNoteStore implements store.NoteStore interface
var _ store.NoteStore = (*PostgresNoteStore)(nil)

// positionParam converts a note position to its database representation.
// Position zero means unassigned and is stored as NULL so the unique
// constraint on (deck_id, position) never sees it.
func positionParam(position int) sql.NullInt32 {
	if position <= 0 {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(position), Valid: true}
}

// Create implements store.NoteStore.Create
// It saves a new note to the database, handling domain validation.
// Returns store.ErrDeckNotFound when the deck does not exist and
// store.ErrPositionTaken when the position is already occupied.
func (s *PostgresNoteStore) Create(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during create",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return err
	}

	query := `
		INSERT INTO notes (id, deck_id, front, back, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		note.ID,
		note.DeckID,
		note.Front,
		note.Back,
		positionParam(note.Position),
		note.CreatedAt,
		note.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("deck does not exist for note",
				slog.String("note_id", note.ID.String()),
				slog.String("deck_id", note.DeckID.String()))
			return store.ErrDeckNotFound
		}
		if IsUniqueViolation(err) {
			log.Warn("position already occupied",
				slog.String("note_id", note.ID.String()),
				slog.String("deck_id", note.DeckID.String()),
				slog.Int("position", note.Position))
			return store.ErrPositionTaken
		}

		log.Error("failed to create note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return MapError(err)
	}

	log.Info("note created",
		slog.String("note_id", note.ID.String()),
		slog.String("deck_id", note.DeckID.String()),
		slog.Int("position", note.Position))
	return nil
}

// GetByID implements store.NoteStore.GetByID
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *PostgresNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, front, back, position, created_at, updated_at
		FROM notes
		WHERE id = $1
	`

	var note domain.Note
	var position sql.NullInt32
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&note.ID,
		&note.DeckID,
		&note.Front,
		&note.Back,
		&position,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to get note by ID",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return nil, err
	}

	if position.Valid {
		note.Position = int(position.Int32)
	}

	return &note, nil
}

// ListByDeck implements store.NoteStore.ListByDeck
// Notes come back positioned first in ascending position order, then
// unpositioned notes in creation order. Returns an empty slice when the
// deck has no notes.
func (s *PostgresNoteStore) ListByDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, front, back, position, created_at, updated_at
		FROM notes
		WHERE deck_id = $1
		ORDER BY position ASC NULLS LAST, created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		log.Error("failed to list notes",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	notes, err := scanNoteRows(rows)
	if err != nil {
		log.Error("failed to scan note rows",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, err
	}

	log.Debug("listed deck notes",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(notes)))
	return notes, nil
}

// ListUnpositioned implements store.NoteStore.ListUnpositioned
// It returns every note in the collection without a position, in
// creation order across decks.
func (s *PostgresNoteStore) ListUnpositioned(ctx context.Context) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, front, back, position, created_at, updated_at
		FROM notes
		WHERE position IS NULL
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list unpositioned notes", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	notes, err := scanNoteRows(rows)
	if err != nil {
		log.Error("failed to scan note rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed unpositioned notes", slog.Int("count", len(notes)))
	return notes, nil
}

// UpdatePosition implements store.NoteStore.UpdatePosition
// Position zero clears the note's position back to NULL.
// Returns store.ErrPositionTaken when the position is already occupied
// and store.ErrNoteNotFound if the note does not exist.
func (s *PostgresNoteStore) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE notes
		SET position = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, positionParam(position), id)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("position already occupied",
				slog.String("note_id", id.String()),
				slog.Int("position", position))
			return store.ErrPositionTaken
		}
		log.Error("failed to update note position",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("note not found for position update", slog.String("note_id", id.String()))
		return store.ErrNoteNotFound
	}

	log.Debug("note position updated",
		slog.String("note_id", id.String()),
		slog.Int("position", position))
	return nil
}

// Delete implements store.NoteStore.Delete
// Returns store.ErrNoteNotFound if the note does not exist.
func (s *PostgresNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM notes WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete note",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("note not found for deletion", slog.String("note_id", id.String()))
		return store.ErrNoteNotFound
	}

	log.Info("note deleted", slog.String("note_id", id.String()))
	return nil
}

// WithTx implements store.NoteStore.WithTx
// It returns a store bound to the given transaction, sharing the logger.
func (s *PostgresNoteStore) WithTx(tx *sql.Tx) store.NoteStore {
	return &PostgresNoteStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanNoteRows reads every note from rows, mapping NULL positions to zero.
func scanNoteRows(rows *sql.Rows) ([]*domain.Note, error) {
	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		var position sql.NullInt32
		if err := rows.Scan(
			&note.ID,
			&note.DeckID,
			&note.Front,
			&note.Back,
			&position,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if position.Valid {
			note.Position = int(position.Int32)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []*domain.Note{}
	}

	return notes, nil
}
