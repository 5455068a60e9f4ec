package position

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
)

// Common errors
var (
	ErrNilNote           = errors.New("note cannot be nil")
	ErrDeckMismatch      = errors.New("notes belong to different decks")
	ErrDuplicatePosition = errors.New("deck contains duplicate positions")
	ErrReorderMismatch   = errors.New("desired order does not match deck notes")
	ErrUnpositionedNote  = errors.New("note has no position")
	ErrSameNote          = errors.New("cannot swap a note with itself")
)

// Assignment pairs a note with the position it should receive.
type Assignment struct {
	NoteID   uuid.UUID `json:"note_id"`
	Position int       `json:"position"`
}

// SwapPlan holds the two assignments that exchange the positions of a
// pair of notes.
type SwapPlan struct {
	Assignments [2]Assignment
}

// Service defines the interface for display-order planning operations.
// Every method takes the snapshot of a single deck's notes; callers are
// responsible for loading the snapshot and applying the returned plan.
type Service interface {
	// NextPosition computes the position a new note in the deck should
	// receive: one past the highest assigned position
	NextPosition(notes []*domain.Note) (int, error)

	// PlanMissing plans positions for every note that lacks one,
	// continuing past the highest assigned position in insertion order
	PlanMissing(notes []*domain.Note) ([]Assignment, error)

	// PlanReorder plans positions 1..N following an explicit desired
	// order, which must be exactly a permutation of the deck's note IDs
	PlanReorder(notes []*domain.Note, desired []uuid.UUID) ([]Assignment, error)

	// PlanRenumber plans a dense 1..N renumbering of the whole deck,
	// repairing gaps and duplicates while keeping the display order
	PlanRenumber(notes []*domain.Note) ([]Assignment, error)

	// PlanSwap plans the position exchange of two notes in the same deck
	PlanSwap(a, b *domain.Note) (SwapPlan, error)
}

// defaultService is the standard implementation of the Service interface
type defaultService struct{}

// NewService creates a new display-order planning service
func NewService() Service {
	return &defaultService{}
}

// NextPosition implements the Service interface
func (s *defaultService) NextPosition(notes []*domain.Note) (int, error) {
	if err := validateSnapshot(notes); err != nil {
		return 0, err
	}
	if err := requireUniquePositions(notes); err != nil {
		return 0, err
	}

	return nextPosition(notes), nil
}

// PlanMissing implements the Service interface
func (s *defaultService) PlanMissing(notes []*domain.Note) ([]Assignment, error) {
	if err := validateSnapshot(notes); err != nil {
		return nil, err
	}
	if err := requireUniquePositions(notes); err != nil {
		return nil, err
	}

	return planMissing(notes), nil
}

// PlanReorder implements the Service interface
func (s *defaultService) PlanReorder(notes []*domain.Note, desired []uuid.UUID) ([]Assignment, error) {
	if err := validateSnapshot(notes); err != nil {
		return nil, err
	}
	if err := requireUniquePositions(notes); err != nil {
		return nil, err
	}

	return planReorder(notes, desired)
}

// PlanRenumber implements the Service interface. Unlike the other
// planning operations it accepts decks with duplicate positions, since
// renumbering is the operation that repairs them.
func (s *defaultService) PlanRenumber(notes []*domain.Note) ([]Assignment, error) {
	if err := validateSnapshot(notes); err != nil {
		return nil, err
	}

	return planRenumber(notes), nil
}

// PlanSwap implements the Service interface
func (s *defaultService) PlanSwap(a, b *domain.Note) (SwapPlan, error) {
	if a == nil || b == nil {
		return SwapPlan{}, ErrNilNote
	}
	if a.ID == b.ID {
		return SwapPlan{}, ErrSameNote
	}
	if a.DeckID != b.DeckID {
		return SwapPlan{}, ErrDeckMismatch
	}
	if !a.Positioned() || !b.Positioned() {
		return SwapPlan{}, ErrUnpositionedNote
	}

	return SwapPlan{
		Assignments: [2]Assignment{
			{NoteID: a.ID, Position: b.Position},
			{NoteID: b.ID, Position: a.Position},
		},
	}, nil
}

// validateSnapshot rejects snapshots containing nil notes or notes from
// more than one deck.
func validateSnapshot(notes []*domain.Note) error {
	for _, n := range notes {
		if n == nil {
			return ErrNilNote
		}
	}
	if len(notes) == 0 {
		return nil
	}
	for _, n := range notes[1:] {
		if n.DeckID != notes[0].DeckID {
			return fmt.Errorf(
				"%w: note %s belongs to deck %s, expected %s",
				ErrDeckMismatch, n.ID, n.DeckID, notes[0].DeckID,
			)
		}
	}
	return nil
}

// requireUniquePositions rejects snapshots where two notes share an
// assigned position. Such decks must be renumbered before any other
// planning operation runs.
func requireUniquePositions(notes []*domain.Note) error {
	if pos, dup := findDuplicatePosition(notes); dup {
		return fmt.Errorf("%w: position %d is assigned to multiple notes", ErrDuplicatePosition, pos)
	}
	return nil
}
