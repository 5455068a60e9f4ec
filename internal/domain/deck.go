package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Deck
var (
	ErrDeckIDEmpty     = errors.New("deck ID cannot be empty")
	ErrDeckNameEmpty   = errors.New("deck name cannot be empty")
	ErrDeckNameInvalid = errors.New("deck name cannot contain '@'")
)

// Deck groups the notes that share one display-order sequence.
// The deck name doubles as the prefix of rendered position labels,
// so it must not contain the '@' label separator.
type Deck struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck with the given name.
// It generates a new UUID for the deck ID and sets the
// creation/update timestamps.
// Returns an error if validation fails.
func NewDeck(name string) (*Deck, error) {
	deck := &Deck{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
// Returns an error if any field fails validation.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if strings.TrimSpace(d.Name) == "" {
		return ErrDeckNameEmpty
	}

	if strings.Contains(d.Name, "@") {
		return ErrDeckNameInvalid
	}

	return nil
}

// Rename changes the deck's name and updates the UpdatedAt timestamp.
// Returns an error if the new name is invalid.
func (d *Deck) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrDeckNameEmpty
	}

	if strings.Contains(name, "@") {
		return ErrDeckNameInvalid
	}

	d.Name = name
	d.UpdatedAt = time.Now().UTC()
	return nil
}
