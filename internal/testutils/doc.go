// Package testutils provides shared helpers for integration tests,
// chiefly functions that seed decks and notes through the real
// PostgreSQL stores. Helpers that need a database carry the
// integration build tag.
package testutils
