package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/deckorder-api/internal/domain"
	"github.com/phrazzld/deckorder-api/internal/domain/position"
	"github.com/phrazzld/deckorder-api/internal/mocks"
	"github.com/phrazzld/deckorder-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedNote builds a note with a fixed creation time so insertion order
// is deterministic in tests. A zero position means unpositioned.
func seedNote(deckID uuid.UUID, pos int, created time.Time) *domain.Note {
	return &domain.Note{
		ID:        uuid.New(),
		DeckID:    deckID,
		Front:     "front",
		Back:      "back",
		Position:  pos,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

// seedDeck builds a deck and registers it with the mock store.
func seedDeck(t *testing.T, deckStore *mocks.MockDeckStore, name string) *domain.Deck {
	t.Helper()
	deck, err := domain.NewDeck(name)
	require.NoError(t, err)
	deckStore.Decks[deck.ID] = deck
	return deck
}

func newNoteServiceForTest(
	t *testing.T,
) (sqlmock.Sqlmock, *mocks.MockDeckStore, *mocks.MockNoteStore, service.NoteService) {
	t.Helper()

	db, dbmock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	deckStore := mocks.NewMockDeckStore()
	noteStore := mocks.NewMockNoteStore()

	svc, err := service.NewNoteService(db, deckStore, noteStore, position.NewService(), testLogger())
	require.NoError(t, err)

	return dbmock, deckStore, noteStore, svc
}

func TestNewNoteService(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	deckStore := mocks.NewMockDeckStore()
	noteStore := mocks.NewMockNoteStore()

	testCases := []struct {
		name string
		fn   func() (service.NoteService, error)
	}{
		{"nil db", func() (service.NoteService, error) {
			return service.NewNoteService(nil, deckStore, noteStore, position.NewService(), testLogger())
		}},
		{"nil deck store", func() (service.NoteService, error) {
			return service.NewNoteService(db, nil, noteStore, position.NewService(), testLogger())
		}},
		{"nil note store", func() (service.NoteService, error) {
			return service.NewNoteService(db, deckStore, nil, position.NewService(), testLogger())
		}},
		{"nil position service", func() (service.NoteService, error) {
			return service.NewNoteService(db, deckStore, noteStore, nil, testLogger())
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := tc.fn()
			assert.Error(t, err)
			assert.Nil(t, svc)
		})
	}
}

func TestNoteService_CreateNote(t *testing.T) {
	ctx := context.Background()

	t.Run("first note gets position one", func(t *testing.T) {
		dbmock, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		dbmock.ExpectBegin()
		dbmock.ExpectCommit()

		note, err := svc.CreateNote(ctx, deck.ID, "hola", "hello")

		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, 1, note.Position)
		require.Len(t, noteStore.Notes, 1)
		assert.Equal(t, note.ID, noteStore.Notes[0].ID)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("new note continues past highest position", func(t *testing.T) {
		dbmock, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		now := time.Now().UTC()
		noteStore.Notes = append(noteStore.Notes,
			seedNote(deck.ID, 1, now.Add(-2*time.Minute)),
			seedNote(deck.ID, 2, now.Add(-time.Minute)),
		)

		dbmock.ExpectBegin()
		dbmock.ExpectCommit()

		note, err := svc.CreateNote(ctx, deck.ID, "adios", "goodbye")

		require.NoError(t, err)
		assert.Equal(t, 3, note.Position)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("positions freed by deletion are not reused", func(t *testing.T) {
		dbmock, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		now := time.Now().UTC()
		noteStore.Notes = append(noteStore.Notes,
			seedNote(deck.ID, 1, now.Add(-2*time.Minute)),
			seedNote(deck.ID, 5, now.Add(-time.Minute)),
		)

		dbmock.ExpectBegin()
		dbmock.ExpectCommit()

		note, err := svc.CreateNote(ctx, deck.ID, "gracias", "thanks")

		require.NoError(t, err)
		assert.Equal(t, 6, note.Position)
	})

	t.Run("deck not found", func(t *testing.T) {
		dbmock, _, noteStore, svc := newNoteServiceForTest(t)

		dbmock.ExpectBegin()
		dbmock.ExpectRollback()

		note, err := svc.CreateNote(ctx, uuid.New(), "hola", "hello")

		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, service.ErrDeckNotFound)
		assert.Empty(t, noteStore.Notes)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("empty front", func(t *testing.T) {
		dbmock, deckStore, _, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		// Validation fails before any transaction is opened
		note, err := svc.CreateNote(ctx, deck.ID, "", "hello")

		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, domain.ErrNoteFrontEmpty)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("deck with duplicate positions rejects creation", func(t *testing.T) {
		dbmock, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		now := time.Now().UTC()
		noteStore.Notes = append(noteStore.Notes,
			seedNote(deck.ID, 2, now.Add(-2*time.Minute)),
			seedNote(deck.ID, 2, now.Add(-time.Minute)),
		)

		dbmock.ExpectBegin()
		dbmock.ExpectRollback()

		note, err := svc.CreateNote(ctx, deck.ID, "hola", "hello")

		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, position.ErrDuplicatePosition)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})
}

func TestNoteService_GetNote(t *testing.T) {
	ctx := context.Background()

	t.Run("note found", func(t *testing.T) {
		_, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")
		existing := seedNote(deck.ID, 1, time.Now().UTC())
		noteStore.Notes = append(noteStore.Notes, existing)

		note, err := svc.GetNote(ctx, existing.ID)

		require.NoError(t, err)
		assert.Equal(t, existing, note)
	})

	t.Run("note not found", func(t *testing.T) {
		_, _, _, svc := newNoteServiceForTest(t)

		note, err := svc.GetNote(ctx, uuid.New())

		require.Error(t, err)
		assert.Nil(t, note)
		assert.ErrorIs(t, err, service.ErrNoteNotFound)
	})
}

func TestNoteService_ListDeckNotes(t *testing.T) {
	ctx := context.Background()

	t.Run("display order with labels", func(t *testing.T) {
		_, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		now := time.Now().UTC()
		second := seedNote(deck.ID, 2, now.Add(-3*time.Minute))
		first := seedNote(deck.ID, 1, now.Add(-2*time.Minute))
		unpositioned := seedNote(deck.ID, 0, now.Add(-time.Minute))
		noteStore.Notes = append(noteStore.Notes, second, first, unpositioned)

		labeled, err := svc.ListDeckNotes(ctx, deck.ID)

		require.NoError(t, err)
		require.Len(t, labeled, 3)
		assert.Equal(t, first.ID, labeled[0].Note.ID)
		assert.Equal(t, "Spanish@00001", labeled[0].Label)
		assert.Equal(t, second.ID, labeled[1].Note.ID)
		assert.Equal(t, "Spanish@00002", labeled[1].Label)
		assert.Equal(t, unpositioned.ID, labeled[2].Note.ID)
		assert.Empty(t, labeled[2].Label)
	})

	t.Run("empty deck", func(t *testing.T) {
		_, deckStore, _, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		labeled, err := svc.ListDeckNotes(ctx, deck.ID)

		require.NoError(t, err)
		assert.Empty(t, labeled)
	})

	t.Run("deck not found", func(t *testing.T) {
		_, _, _, svc := newNoteServiceForTest(t)

		labeled, err := svc.ListDeckNotes(ctx, uuid.New())

		require.Error(t, err)
		assert.Nil(t, labeled)
		assert.ErrorIs(t, err, service.ErrDeckNotFound)
	})
}

func TestNoteService_ResolveLabel(t *testing.T) {
	ctx := context.Background()

	t.Run("label points at its note", func(t *testing.T) {
		_, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		now := time.Now().UTC()
		target := seedNote(deck.ID, 42, now.Add(-2*time.Minute))
		other := seedNote(deck.ID, 1, now.Add(-time.Minute))
		noteStore.Notes = append(noteStore.Notes, target, other)

		note, err := svc.ResolveLabel(ctx, "Spanish@00042")

		require.NoError(t, err)
		assert.Equal(t, target.ID, note.ID)
	})

	t.Run("unpadded digits resolve too", func(t *testing.T) {
		_, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")
		target := seedNote(deck.ID, 7, time.Now().UTC())
		noteStore.Notes = append(noteStore.Notes, target)

		note, err := svc.ResolveLabel(ctx, "Spanish@7")

		require.NoError(t, err)
		assert.Equal(t, target.ID, note.ID)
	})

	t.Run("malformed label", func(t *testing.T) {
		_, _, _, svc := newNoteServiceForTest(t)

		for _, label := range []string{"Spanish", "@123", "Spanish@", "Spanish@12a4"} {
			note, err := svc.ResolveLabel(ctx, label)
			assert.Nil(t, note, "label %q", label)
			assert.ErrorIs(t, err, service.ErrInvalidLabel, "label %q", label)
		}
	})

	t.Run("unknown deck", func(t *testing.T) {
		_, _, _, svc := newNoteServiceForTest(t)

		note, err := svc.ResolveLabel(ctx, "Nowhere@00001")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, service.ErrDeckNotFound)
	})

	t.Run("vacant position", func(t *testing.T) {
		_, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")
		noteStore.Notes = append(noteStore.Notes, seedNote(deck.ID, 1, time.Now().UTC()))

		note, err := svc.ResolveLabel(ctx, "Spanish@00002")

		assert.Nil(t, note)
		assert.ErrorIs(t, err, service.ErrNoteNotFound)
	})
}

func TestNoteService_DeleteNote(t *testing.T) {
	ctx := context.Background()

	t.Run("successful deletion keeps neighbour positions", func(t *testing.T) {
		dbmock, deckStore, noteStore, svc := newNoteServiceForTest(t)
		deck := seedDeck(t, deckStore, "Spanish")

		now := time.Now().UTC()
		doomed := seedNote(deck.ID, 1, now.Add(-2*time.Minute))
		survivor := seedNote(deck.ID, 2, now.Add(-time.Minute))
		noteStore.Notes = append(noteStore.Notes, doomed, survivor)

		dbmock.ExpectBegin()
		dbmock.ExpectCommit()

		err := svc.DeleteNote(ctx, doomed.ID)

		require.NoError(t, err)
		require.Len(t, noteStore.Notes, 1)
		assert.Equal(t, survivor.ID, noteStore.Notes[0].ID)
		assert.Equal(t, 2, noteStore.Notes[0].Position)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})

	t.Run("note not found", func(t *testing.T) {
		dbmock, _, _, svc := newNoteServiceForTest(t)

		dbmock.ExpectBegin()
		dbmock.ExpectRollback()

		err := svc.DeleteNote(ctx, uuid.New())

		require.Error(t, err)
		assert.ErrorIs(t, err, service.ErrNoteNotFound)
		assert.NoError(t, dbmock.ExpectationsWereMet())
	})
}
