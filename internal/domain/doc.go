// Package domain contains the core business entities and validation
// rules of the application: decks, the notes they contain, and the
// display-order positions carried on notes. It is independent of any
// specific infrastructure or delivery mechanism.
package domain
