package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Note
var (
	ErrNoteIDEmpty         = errors.New("note ID cannot be empty")
	ErrNoteDeckIDEmpty     = errors.New("note deck ID cannot be empty")
	ErrNoteFrontEmpty      = errors.New("note front cannot be empty")
	ErrNotePositionInvalid = errors.New("note position must be a positive integer")
)

// Note is a single flashcard entry belonging to a deck. Position is
// the note's 1-based slot in the deck's display order; zero means no
// slot has been assigned yet. Positions are unique within a deck.
type Note struct {
	ID        uuid.UUID `json:"id"`
	DeckID    uuid.UUID `json:"deck_id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	Position  int       `json:"position,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote creates a new Note in the given deck with the given front
// and back text. It generates a new UUID for the note ID, leaves the
// position unassigned, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewNote(deckID uuid.UUID, front, back string) (*Note, error) {
	note := &Note{
		ID:        uuid.New(),
		DeckID:    deckID,
		Front:     front,
		Back:      back,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := note.Validate(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if the Note has valid data.
// Returns an error if any field fails validation.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrNoteIDEmpty
	}

	if n.DeckID == uuid.Nil {
		return ErrNoteDeckIDEmpty
	}

	if strings.TrimSpace(n.Front) == "" {
		return ErrNoteFrontEmpty
	}

	if n.Position < 0 {
		return ErrNotePositionInvalid
	}

	return nil
}

// Positioned reports whether the note holds a display-order slot.
func (n *Note) Positioned() bool {
	return n.Position > 0
}

// SetPosition assigns a display-order slot and updates the UpdatedAt
// timestamp. Returns an error if the position is not positive.
func (n *Note) SetPosition(position int) error {
	if position <= 0 {
		return ErrNotePositionInvalid
	}

	n.Position = position
	n.UpdatedAt = time.Now().UTC()
	return nil
}

// ClearPosition removes the note's display-order slot and updates the
// UpdatedAt timestamp.
func (n *Note) ClearPosition() {
	n.Position = 0
	n.UpdatedAt = time.Now().UTC()
}
