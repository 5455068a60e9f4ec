package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/domain/position"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
	"github.com/phrazzld/deckorder-api/internal/store"
)

// NoteWithLabel pairs a note with its rendered position label. Notes
// without a position carry an empty label.
type NoteWithLabel struct {
	Note  *domain.Note `json:"note"`
	Label string       `json:"label,omitempty"`
}

// NoteService provides note-related operations
type NoteService interface {
	// CreateNote creates a note in the given deck and assigns it the
	// next free position, both inside one transaction
	CreateNote(ctx context.Context, deckID uuid.UUID, front, back string) (*domain.Note, error)

	// GetNote retrieves a note by its ID
	GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error)

	// ListDeckNotes retrieves a deck's notes in display order together
	// with their rendered position labels
	ListDeckNotes(ctx context.Context, deckID uuid.UUID) ([]NoteWithLabel, error)

	// ResolveLabel finds the note a rendered label such as "Spanish@00042"
	// points at. Returns ErrInvalidLabel for malformed labels,
	// ErrDeckNotFound for unknown decks, and ErrNoteNotFound when no note
	// holds the labelled position.
	ResolveLabel(ctx context.Context, label string) (*domain.Note, error)

	// DeleteNote removes a note. The position it held is not reassigned;
	// renumbering closes the gap on request.
	DeleteNote(ctx context.Context, noteID uuid.UUID) error
}

// NoteServiceError is a custom error type for note service errors.
type NoteServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for NoteServiceError.
func (e *NoteServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("note service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("note service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *NoteServiceError) Unwrap() error {
	return e.Err
}

// NewNoteServiceError creates a new NoteServiceError.
// It returns known sentinel errors directly without wrapping.
func NewNoteServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNoteNotFound) || errors.Is(err, store.ErrNoteNotFound) {
		return ErrNoteNotFound
	}
	if errors.Is(err, ErrDeckNotFound) || errors.Is(err, store.ErrDeckNotFound) {
		return ErrDeckNotFound
	}

	return &NoteServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// noteServiceImpl implements the NoteService interface
type noteServiceImpl struct {
	db        *sql.DB
	deckStore store.DeckStore
	noteStore store.NoteStore
	position  position.Service
	logger    *slog.Logger
}

// NewNoteService creates a new NoteService
// It returns an error if any of the required dependencies are nil.
func NewNoteService(
	db *sql.DB,
	deckStore store.DeckStore,
	noteStore store.NoteStore,
	positionService position.Service,
	logger *slog.Logger,
) (NoteService, error) {
	// Validate dependencies
	if db == nil {
		return nil, &NoteServiceError{Operation: "create_service", Message: "db cannot be nil", Err: domain.ErrValidation}
	}
	if deckStore == nil {
		return nil, &NoteServiceError{Operation: "create_service", Message: "deckStore cannot be nil", Err: domain.ErrValidation}
	}
	if noteStore == nil {
		return nil, &NoteServiceError{Operation: "create_service", Message: "noteStore cannot be nil", Err: domain.ErrValidation}
	}
	if positionService == nil {
		return nil, &NoteServiceError{Operation: "create_service", Message: "positionService cannot be nil", Err: domain.ErrValidation}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &noteServiceImpl{
		db:        db,
		deckStore: deckStore,
		noteStore: noteStore,
		position:  positionService,
		logger:    logger.With(slog.String("component", "note_service")),
	}, nil
}

// CreateNote implements NoteService.CreateNote
// The deck row lock serializes position assignment against concurrent
// creators, so the computed next position cannot be taken before the
// insert commits.
func (s *noteServiceImpl) CreateNote(
	ctx context.Context,
	deckID uuid.UUID,
	front, back string,
) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	note, err := domain.NewNote(deckID, front, back)
	if err != nil {
		log.Error("failed to create note object",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewNoteServiceError("create_note", "failed to create note object", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDeckStore := s.deckStore.WithTx(tx)
		txNoteStore := s.noteStore.WithTx(tx)

		if err := txDeckStore.AcquireLock(ctx, deckID); err != nil {
			log.Error("failed to lock deck for note creation",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()))
			return NewNoteServiceError("create_note", "failed to lock deck", err)
		}

		notes, err := txNoteStore.ListByDeck(ctx, deckID)
		if err != nil {
			log.Error("failed to list deck notes",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()))
			return NewNoteServiceError("create_note", "failed to list deck notes", err)
		}

		next, err := s.position.NextPosition(notes)
		if err != nil {
			log.Error("failed to compute next position",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()))
			return NewNoteServiceError("create_note", "failed to compute next position", err)
		}

		if err := note.SetPosition(next); err != nil {
			return NewNoteServiceError("create_note", "failed to set position", err)
		}

		if err := txNoteStore.Create(ctx, note); err != nil {
			log.Error("failed to save note",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()),
				slog.String("note_id", note.ID.String()))
			return NewNoteServiceError("create_note", "failed to save note", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("note created with position",
		slog.String("note_id", note.ID.String()),
		slog.String("deck_id", deckID.String()),
		slog.Int("position", note.Position))

	return note, nil
}

// GetNote implements NoteService.GetNote
func (s *noteServiceImpl) GetNote(ctx context.Context, noteID uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	note, err := s.noteStore.GetByID(ctx, noteID)
	if err != nil {
		log.Error("failed to retrieve note",
			slog.String("error", err.Error()),
			slog.String("note_id", noteID.String()))

		if errors.Is(err, store.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, NewNoteServiceError("get_note", "failed to retrieve note", err)
	}

	return note, nil
}

// ListDeckNotes implements NoteService.ListDeckNotes
func (s *noteServiceImpl) ListDeckNotes(
	ctx context.Context,
	deckID uuid.UUID,
) ([]NoteWithLabel, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.deckStore.GetByID(ctx, deckID)
	if err != nil {
		log.Error("failed to retrieve deck for note listing",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))

		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		return nil, NewNoteServiceError("list_deck_notes", "failed to retrieve deck", err)
	}

	notes, err := s.noteStore.ListByDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list deck notes",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewNoteServiceError("list_deck_notes", "failed to list deck notes", err)
	}

	labeled := make([]NoteWithLabel, 0, len(notes))
	for _, note := range notes {
		entry := NoteWithLabel{Note: note}
		if note.Positioned() {
			entry.Label = position.FormatLabel(deck.Name, note.Position)
		}
		labeled = append(labeled, entry)
	}

	log.Debug("listed deck notes",
		slog.String("deck_id", deckID.String()),
		slog.Int("count", len(labeled)))

	return labeled, nil
}

// ResolveLabel implements NoteService.ResolveLabel
// Labels parse at the last separator, so a vacant position and an unknown
// deck are the only lookup misses once the label itself is well-formed.
func (s *noteServiceImpl) ResolveLabel(ctx context.Context, label string) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deckName, pos, ok := position.ParseLabel(label)
	if !ok {
		log.Debug("rejected malformed label", slog.String("label", label))
		return nil, ErrInvalidLabel
	}

	deck, err := s.deckStore.GetByName(ctx, deckName)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, ErrDeckNotFound
		}
		log.Error("failed to retrieve deck for label",
			slog.String("error", err.Error()),
			slog.String("deck_name", deckName))
		return nil, NewNoteServiceError("resolve_label", "failed to retrieve deck", err)
	}

	notes, err := s.noteStore.ListByDeck(ctx, deck.ID)
	if err != nil {
		log.Error("failed to list deck notes for label",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return nil, NewNoteServiceError("resolve_label", "failed to list deck notes", err)
	}

	for _, note := range notes {
		if note.Position == pos {
			return note, nil
		}
	}

	log.Debug("label points at a vacant position",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("position", pos))
	return nil, ErrNoteNotFound
}

// DeleteNote implements NoteService.DeleteNote
// The deck lock serializes deletion against in-flight ordering
// operations on the same deck.
func (s *noteServiceImpl) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDeckStore := s.deckStore.WithTx(tx)
		txNoteStore := s.noteStore.WithTx(tx)

		note, err := txNoteStore.GetByID(ctx, noteID)
		if err != nil {
			if errors.Is(err, store.ErrNoteNotFound) {
				return ErrNoteNotFound
			}
			return NewNoteServiceError("delete_note", "failed to retrieve note", err)
		}

		if err := txDeckStore.AcquireLock(ctx, note.DeckID); err != nil {
			log.Error("failed to lock deck for note deletion",
				slog.String("error", err.Error()),
				slog.String("deck_id", note.DeckID.String()),
				slog.String("note_id", noteID.String()))
			return NewNoteServiceError("delete_note", "failed to lock deck", err)
		}

		if err := txNoteStore.Delete(ctx, noteID); err != nil {
			log.Error("failed to delete note",
				slog.String("error", err.Error()),
				slog.String("note_id", noteID.String()))
			return NewNoteServiceError("delete_note", "failed to delete note", err)
		}

		log.Info("note deleted",
			slog.String("note_id", noteID.String()),
			slog.String("deck_id", note.DeckID.String()))
		return nil
	})
}
