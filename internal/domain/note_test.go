package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewNote(t *testing.T) {
	t.Parallel() // Enable parallel execution
	// Test valid note creation
	deckID := uuid.New()

	note, err := NewNote(deckID, "What is the capital of France?", "Paris")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if note.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if note.DeckID != deckID {
		t.Errorf("Expected deck ID %s, got %s", deckID, note.DeckID)
	}

	if note.Front != "What is the capital of France?" {
		t.Errorf("Expected front %q, got %q", "What is the capital of France?", note.Front)
	}

	if note.Back != "Paris" {
		t.Errorf("Expected back %q, got %q", "Paris", note.Back)
	}

	if note.Positioned() {
		t.Errorf("Expected new note to be unpositioned, got position %d", note.Position)
	}

	if note.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	if note.UpdatedAt.IsZero() {
		t.Error("Expected non-zero UpdatedAt time")
	}

	// Test invalid deckID
	_, err = NewNote(uuid.Nil, "front", "back")
	if err != ErrNoteDeckIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrNoteDeckIDEmpty, err)
	}

	// Test empty front
	_, err = NewNote(deckID, "", "back")
	if err != ErrNoteFrontEmpty {
		t.Errorf("Expected error %v, got %v", ErrNoteFrontEmpty, err)
	}

	// Empty back is allowed
	note, err = NewNote(deckID, "front only", "")
	if err != nil {
		t.Errorf("Expected no error for empty back, got %v", err)
	}
	if note.Back != "" {
		t.Errorf("Expected empty back, got %q", note.Back)
	}
}

func TestNoteValidate(t *testing.T) {
	t.Parallel() // Enable parallel execution
	validNote := Note{
		ID:     uuid.New(),
		DeckID: uuid.New(),
		Front:  "What is Go?",
		Back:   "A programming language",
	}

	// Test valid note
	if err := validNote.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	// Test invalid ID
	invalidNote := validNote
	invalidNote.ID = uuid.Nil
	if err := invalidNote.Validate(); err != ErrNoteIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrNoteIDEmpty, err)
	}

	// Test invalid DeckID
	invalidNote = validNote
	invalidNote.DeckID = uuid.Nil
	if err := invalidNote.Validate(); err != ErrNoteDeckIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrNoteDeckIDEmpty, err)
	}

	// Test empty Front
	invalidNote = validNote
	invalidNote.Front = "   "
	if err := invalidNote.Validate(); err != ErrNoteFrontEmpty {
		t.Errorf("Expected error %v, got %v", ErrNoteFrontEmpty, err)
	}

	// Test negative position
	invalidNote = validNote
	invalidNote.Position = -1
	if err := invalidNote.Validate(); err != ErrNotePositionInvalid {
		t.Errorf("Expected error %v, got %v", ErrNotePositionInvalid, err)
	}

	// Position zero (unassigned) is valid
	invalidNote = validNote
	invalidNote.Position = 0
	if err := invalidNote.Validate(); err != nil {
		t.Errorf("Expected no error for unassigned position, got %v", err)
	}
}

func TestNoteSetPosition(t *testing.T) {
	t.Parallel() // Enable parallel execution
	note, err := NewNote(uuid.New(), "front", "back")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := note.SetPosition(3); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	if note.Position != 3 {
		t.Errorf("Expected position 3, got %d", note.Position)
	}

	if !note.Positioned() {
		t.Error("Expected note to report positioned after SetPosition")
	}

	// Test invalid positions
	if err := note.SetPosition(0); err != ErrNotePositionInvalid {
		t.Errorf("Expected error %v, got %v", ErrNotePositionInvalid, err)
	}

	if err := note.SetPosition(-5); err != ErrNotePositionInvalid {
		t.Errorf("Expected error %v, got %v", ErrNotePositionInvalid, err)
	}

	if note.Position != 3 {
		t.Errorf("Expected position to stay 3, got %d", note.Position)
	}
}

func TestNoteClearPosition(t *testing.T) {
	t.Parallel() // Enable parallel execution
	note, err := NewNote(uuid.New(), "front", "back")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := note.SetPosition(7); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	note.ClearPosition()

	if note.Positioned() {
		t.Errorf("Expected note to be unpositioned after clear, got position %d", note.Position)
	}
}
