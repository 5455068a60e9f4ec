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

// MoveDirection names the two pairwise move operations.
type MoveDirection string

// Supported move directions. Up moves a note toward position 1.
const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// ErrInvalidDirection indicates a move direction other than up or down.
// API layer should map this to HTTP 400 Bad Request.
var ErrInvalidDirection = errors.New("move direction must be up or down")

// MoveResult reports the outcome of a pairwise move. Moved is false,
// with no error, when the note is already at the edge the move points to.
type MoveResult struct {
	Moved bool         `json:"moved"`
	Note  *domain.Note `json:"note"`
}

// VerifyReport summarises a collection-wide verification pass: how many
// decks held unpositioned notes, which notes received positions, and
// which assignments the store refused.
type VerifyReport struct {
	DecksChecked int                   `json:"decks_checked"`
	Assigned     []position.Assignment `json:"assigned"`
	Failures     []position.Failure    `json:"failures,omitempty"`
}

// OrderService owns every operation that rewrites note positions.
type OrderService interface {
	// ReorderDeck rewrites a deck's positions to 1..N following the
	// desired order, which must be exactly a permutation of the deck's
	// note IDs. All-or-nothing: a failed write rolls the deck back.
	ReorderDeck(ctx context.Context, deckID uuid.UUID, desired []uuid.UUID) ([]position.Assignment, error)

	// RenumberDeck rewrites a deck's positions to a dense 1..N sequence
	// preserving the current display order, repairing gaps and duplicates.
	RenumberDeck(ctx context.Context, deckID uuid.UUID) ([]position.Assignment, error)

	// MoveNote swaps a note's position with its neighbour in the given
	// direction. At the deck's edge the move is a no-op, not an error.
	MoveNote(ctx context.Context, noteID uuid.UUID, direction MoveDirection) (*MoveResult, error)

	// AssignMissing gives every unpositioned note in the collection a
	// position. Successfully assigned notes keep their positions even
	// when other assignments fail; the report lists both outcomes.
	AssignMissing(ctx context.Context) (*VerifyReport, error)
}

// OrderServiceError is a custom error type for order service errors.
type OrderServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for OrderServiceError.
func (e *OrderServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("order service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("order service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *OrderServiceError) Unwrap() error {
	return e.Err
}

// NewOrderServiceError creates a new OrderServiceError.
// Known sentinels are returned directly; planning errors keep their
// wrapped detail because it names the offending notes.
func NewOrderServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrDeckNotFound) || errors.Is(err, store.ErrDeckNotFound) {
		return ErrDeckNotFound
	}
	if errors.Is(err, ErrNoteNotFound) || errors.Is(err, store.ErrNoteNotFound) {
		return ErrNoteNotFound
	}
	if errors.Is(err, position.ErrReorderMismatch) ||
		errors.Is(err, position.ErrUnpositionedNote) ||
		errors.Is(err, position.ErrDuplicatePosition) {
		return err
	}

	return &OrderServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// orderServiceImpl implements the OrderService interface
type orderServiceImpl struct {
	db        *sql.DB
	deckStore store.DeckStore
	noteStore store.NoteStore
	position  position.Service
	allocator *position.Allocator
	logger    *slog.Logger
}

// NewOrderService creates a new OrderService
// It returns an error if any of the required dependencies are nil.
func NewOrderService(
	db *sql.DB,
	deckStore store.DeckStore,
	noteStore store.NoteStore,
	positionService position.Service,
	logger *slog.Logger,
) (OrderService, error) {
	// Validate dependencies
	if db == nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "db cannot be nil", Err: domain.ErrValidation}
	}
	if deckStore == nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "deckStore cannot be nil", Err: domain.ErrValidation}
	}
	if noteStore == nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "noteStore cannot be nil", Err: domain.ErrValidation}
	}
	if positionService == nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "positionService cannot be nil", Err: domain.ErrValidation}
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	// Allocator for the non-transactional verify pass; transactional
	// operations build their own over the tx-scoped store
	allocator, err := position.NewAllocator(noteStore, logger)
	if err != nil {
		return nil, &OrderServiceError{Operation: "create_service", Message: "failed to build allocator", Err: err}
	}

	return &orderServiceImpl{
		db:        db,
		deckStore: deckStore,
		noteStore: noteStore,
		position:  positionService,
		allocator: allocator,
		logger:    logger.With(slog.String("component", "order_service")),
	}, nil
}

// ReorderDeck implements OrderService.ReorderDeck
func (s *orderServiceImpl) ReorderDeck(
	ctx context.Context,
	deckID uuid.UUID,
	desired []uuid.UUID,
) ([]position.Assignment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var plan []position.Assignment
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDeckStore := s.deckStore.WithTx(tx)
		txNoteStore := s.noteStore.WithTx(tx)

		if err := txDeckStore.AcquireLock(ctx, deckID); err != nil {
			return NewOrderServiceError("reorder_deck", "failed to lock deck", err)
		}

		notes, err := txNoteStore.ListByDeck(ctx, deckID)
		if err != nil {
			return NewOrderServiceError("reorder_deck", "failed to list deck notes", err)
		}

		plan, err = s.position.PlanReorder(notes, desired)
		if err != nil {
			log.Warn("reorder plan rejected",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()))
			return NewOrderServiceError("reorder_deck", "failed to plan reorder", err)
		}

		return s.applyAll(ctx, txNoteStore, plan, "reorder_deck", log)
	})
	if err != nil {
		return nil, err
	}

	log.Info("deck reordered",
		slog.String("deck_id", deckID.String()),
		slog.Int("assigned", len(plan)))

	return plan, nil
}

// RenumberDeck implements OrderService.RenumberDeck
func (s *orderServiceImpl) RenumberDeck(
	ctx context.Context,
	deckID uuid.UUID,
) ([]position.Assignment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var plan []position.Assignment
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDeckStore := s.deckStore.WithTx(tx)
		txNoteStore := s.noteStore.WithTx(tx)

		if err := txDeckStore.AcquireLock(ctx, deckID); err != nil {
			return NewOrderServiceError("renumber_deck", "failed to lock deck", err)
		}

		notes, err := txNoteStore.ListByDeck(ctx, deckID)
		if err != nil {
			return NewOrderServiceError("renumber_deck", "failed to list deck notes", err)
		}

		plan, err = s.position.PlanRenumber(notes)
		if err != nil {
			return NewOrderServiceError("renumber_deck", "failed to plan renumber", err)
		}

		return s.applyAll(ctx, txNoteStore, plan, "renumber_deck", log)
	})
	if err != nil {
		return nil, err
	}

	log.Info("deck renumbered",
		slog.String("deck_id", deckID.String()),
		slog.Int("assigned", len(plan)))

	return plan, nil
}

// MoveNote implements OrderService.MoveNote
func (s *orderServiceImpl) MoveNote(
	ctx context.Context,
	noteID uuid.UUID,
	direction MoveDirection,
) (*MoveResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if direction != MoveUp && direction != MoveDown {
		return nil, ErrInvalidDirection
	}

	var result *MoveResult
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txDeckStore := s.deckStore.WithTx(tx)
		txNoteStore := s.noteStore.WithTx(tx)

		// First read only discovers the deck; the post-lock snapshot is
		// the one positions are planned from
		located, err := txNoteStore.GetByID(ctx, noteID)
		if err != nil {
			return NewOrderServiceError("move_note", "failed to retrieve note", err)
		}

		if err := txDeckStore.AcquireLock(ctx, located.DeckID); err != nil {
			return NewOrderServiceError("move_note", "failed to lock deck", err)
		}

		notes, err := txNoteStore.ListByDeck(ctx, located.DeckID)
		if err != nil {
			return NewOrderServiceError("move_note", "failed to list deck notes", err)
		}

		var note *domain.Note
		for _, n := range notes {
			if n.ID == noteID {
				note = n
				break
			}
		}
		if note == nil {
			return ErrNoteNotFound
		}
		if !note.Positioned() {
			return NewOrderServiceError("move_note", "note has no position",
				fmt.Errorf("%w: note %s", position.ErrUnpositionedNote, noteID))
		}

		neighbour := findNeighbour(notes, note, direction)
		if neighbour == nil {
			log.Debug("note already at deck edge",
				slog.String("note_id", noteID.String()),
				slog.String("direction", string(direction)))
			result = &MoveResult{Moved: false, Note: note}
			return nil
		}

		plan, err := s.position.PlanSwap(note, neighbour)
		if err != nil {
			return NewOrderServiceError("move_note", "failed to plan swap", err)
		}

		if err := s.applyAll(ctx, txNoteStore, plan.Assignments[:], "move_note", log); err != nil {
			return err
		}

		moved, err := txNoteStore.GetByID(ctx, noteID)
		if err != nil {
			return NewOrderServiceError("move_note", "failed to reload moved note", err)
		}
		result = &MoveResult{Moved: true, Note: moved}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Moved {
		log.Info("note moved",
			slog.String("note_id", noteID.String()),
			slog.String("direction", string(direction)),
			slog.Int("position", result.Note.Position))
	}

	return result, nil
}

// AssignMissing implements OrderService.AssignMissing
//
// The pass deliberately runs without a wrapping transaction: each
// position write is its own atomic statement and the deck's unique
// constraint arbitrates races with concurrent creators. A lost race
// surfaces as a per-note failure in the report, the notes assigned
// before it keep their positions, and the next pass picks up the rest.
func (s *orderServiceImpl) AssignMissing(ctx context.Context) (*VerifyReport, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unpositioned, err := s.noteStore.ListUnpositioned(ctx)
	if err != nil {
		log.Error("failed to list unpositioned notes", slog.String("error", err.Error()))
		return nil, NewOrderServiceError("assign_missing", "failed to list unpositioned notes", err)
	}

	report := &VerifyReport{}
	if len(unpositioned) == 0 {
		log.Info("collection verify found nothing to assign")
		return report, nil
	}

	deckIDs := make(map[uuid.UUID]struct{})
	for _, note := range unpositioned {
		deckIDs[note.DeckID] = struct{}{}
	}

	for deckID := range deckIDs {
		notes, err := s.noteStore.ListByDeck(ctx, deckID)
		if err != nil {
			log.Error("failed to list deck notes, skipping deck",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()))
			continue
		}

		plan, err := s.position.PlanMissing(notes)
		if err != nil {
			log.Error("failed to plan missing positions, skipping deck",
				slog.String("error", err.Error()),
				slog.String("deck_id", deckID.String()))
			continue
		}

		deckReport := s.allocator.Apply(ctx, plan)
		report.DecksChecked++
		report.Assigned = append(report.Assigned, deckReport.Applied...)
		report.Failures = append(report.Failures, deckReport.Failed...)
	}

	log.Info("collection verify finished",
		slog.Int("decks_checked", report.DecksChecked),
		slog.Int("notes_assigned", len(report.Assigned)),
		slog.Int("failures", len(report.Failures)))

	return report, nil
}

// applyAll applies a plan inside a transaction and fails it when any
// assignment is refused, so the surrounding rollback keeps the deck
// untouched.
func (s *orderServiceImpl) applyAll(
	ctx context.Context,
	txNoteStore store.NoteStore,
	plan []position.Assignment,
	operation string,
	log *slog.Logger,
) error {
	if len(plan) == 0 {
		return nil
	}

	allocator, err := position.NewAllocator(txNoteStore, log)
	if err != nil {
		return NewOrderServiceError(operation, "failed to build allocator", err)
	}

	if err := allocator.Apply(ctx, plan).Err(); err != nil {
		return NewOrderServiceError(operation, "failed to apply position plan", err)
	}
	return nil
}

// findNeighbour returns the positioned note adjacent to the given note
// in the move direction, or nil when the note sits at that edge.
func findNeighbour(notes []*domain.Note, note *domain.Note, direction MoveDirection) *domain.Note {
	var neighbour *domain.Note
	for _, candidate := range notes {
		if candidate.ID == note.ID || !candidate.Positioned() {
			continue
		}
		switch direction {
		case MoveUp:
			if candidate.Position < note.Position &&
				(neighbour == nil || candidate.Position > neighbour.Position) {
				neighbour = candidate
			}
		case MoveDown:
			if candidate.Position > note.Position &&
				(neighbour == nil || candidate.Position < neighbour.Position) {
				neighbour = candidate
			}
		}
	}
	return neighbour
}
