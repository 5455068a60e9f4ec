package position

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/domain"
)

// nextPosition determines the position a newly numbered note should receive.
//
// The rule is strictly monotonic growth: one past the highest position
// currently assigned in the deck. Positions freed by deletions are never
// reused, which keeps existing notes stable and makes assignment order
// reflect insertion order.
//
// Parameters:
//   - notes: The full snapshot of one deck's notes. Notes that should not
//     take part in numbering simply must not appear in the slice.
//
// Returns:
//   - The next free position: max assigned position + 1, or 1 when the
//     deck is empty or no note has a position yet.
func nextPosition(notes []*domain.Note) int {
	max := 0
	for _, n := range notes {
		if n.Position > max {
			max = n.Position
		}
	}
	return max + 1
}

// planMissing produces assignments that give every unpositioned note in
// the deck a position.
//
// Already-positioned notes are never touched, so running the plan twice
// yields an empty second plan. New positions are handed out consecutively
// starting at nextPosition(notes), in insertion order: CreatedAt
// ascending, ties broken by note ID so the result is deterministic even
// when timestamps collide.
//
// Parameters:
//   - notes: The full snapshot of one deck's notes.
//
// Returns:
//   - One assignment per unpositioned note, or nil when every note
//     already has a position.
func planMissing(notes []*domain.Note) []Assignment {
	var missing []*domain.Note
	for _, n := range notes {
		if !n.Positioned() {
			missing = append(missing, n)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	sortByInsertion(missing)

	next := nextPosition(notes)
	plan := make([]Assignment, 0, len(missing))
	for _, n := range missing {
		plan = append(plan, Assignment{NoteID: n.ID, Position: next})
		next++
	}
	return plan
}

// planReorder turns an explicit desired order into position assignments.
//
// The desired order must be exactly a permutation of the deck's note IDs:
// same length, every ID present, no ID twice. Any deviation aborts the
// plan before a single assignment is produced, so a caller can never
// apply a half-valid reorder. Valid input maps the note at index i to
// position i+1; notes already sitting at their target are omitted from
// the plan.
//
// Parameters:
//   - notes: The full snapshot of one deck's notes.
//   - desired: Note IDs in the order the caller wants them displayed.
//
// Returns:
//   - Assignments for every note whose position changes, and an error
//     wrapping ErrReorderMismatch when the desired order is not a
//     permutation of the deck.
func planReorder(notes []*domain.Note, desired []uuid.UUID) ([]Assignment, error) {
	if len(desired) != len(notes) {
		return nil, fmt.Errorf(
			"%w: deck has %d notes but desired order lists %d",
			ErrReorderMismatch, len(notes), len(desired),
		)
	}

	byID := make(map[uuid.UUID]*domain.Note, len(notes))
	for _, n := range notes {
		byID[n.ID] = n
	}

	seen := make(map[uuid.UUID]struct{}, len(desired))
	plan := make([]Assignment, 0, len(desired))
	for i, id := range desired {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf(
				"%w: note %s appears more than once in desired order",
				ErrReorderMismatch, id,
			)
		}
		seen[id] = struct{}{}

		n, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf(
				"%w: note %s is not in the deck",
				ErrReorderMismatch, id,
			)
		}

		if target := i + 1; n.Position != target {
			plan = append(plan, Assignment{NoteID: id, Position: target})
		}
	}
	return plan, nil
}

// planRenumber compacts a deck's positions into a dense 1..N sequence.
//
// This is the repair operation: it tolerates gaps, duplicates, and
// missing positions, and produces a deck where position equals display
// rank. Ordering is stable - positioned notes keep their relative order
// (duplicates fall back to insertion order), then unpositioned notes
// follow in insertion order. A deck that is already dense yields an
// empty plan.
//
// Parameters:
//   - notes: The full snapshot of one deck's notes.
//
// Returns:
//   - Assignments for every note whose position changes.
func planRenumber(notes []*domain.Note) []Assignment {
	ordered := make([]*domain.Note, len(notes))
	copy(ordered, notes)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		switch {
		case a.Positioned() && !b.Positioned():
			return true
		case !a.Positioned() && b.Positioned():
			return false
		case a.Positioned() && b.Positioned() && a.Position != b.Position:
			return a.Position < b.Position
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})

	var plan []Assignment
	for i, n := range ordered {
		if target := i + 1; n.Position != target {
			plan = append(plan, Assignment{NoteID: n.ID, Position: target})
		}
	}
	return plan
}

// sortByInsertion orders notes by creation time, breaking timestamp ties
// with the note ID so equal inputs always sort the same way.
func sortByInsertion(notes []*domain.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].CreatedAt.Equal(notes[j].CreatedAt) {
			return notes[i].CreatedAt.Before(notes[j].CreatedAt)
		}
		return notes[i].ID.String() < notes[j].ID.String()
	})
}

// findDuplicatePosition scans a deck snapshot for two notes sharing the
// same assigned position. Unpositioned notes are ignored.
func findDuplicatePosition(notes []*domain.Note) (int, bool) {
	seen := make(map[int]struct{}, len(notes))
	for _, n := range notes {
		if !n.Positioned() {
			continue
		}
		if _, dup := seen[n.Position]; dup {
			return n.Position, true
		}
		seen[n.Position] = struct{}{}
	}
	return 0, false
}
