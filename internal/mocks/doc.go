// Package mocks holds the function-field test doubles shared across
// test packages: the deck and note stores and the JWT verifier.
//
// Each mock exposes one Fn field per interface method. A test assigns
// only the methods it cares about; unassigned methods fall back to a
// zero-value-ish default so setup stays short:
//
//	deckStore := mocks.NewMockDeckStore()
//	deckStore.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
//	    return nil, store.ErrDeckNotFound
//	}
//
// New mocks follow the same shape: one file per interface, a struct of
// Fn fields, and a constructor returning usable defaults.
package mocks
