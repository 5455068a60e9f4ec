// Package store defines interfaces for data persistence operations on
// decks and notes, plus the transaction helper store implementations
// share. The interfaces abstract the underlying storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies.
package store
