// Package config loads and validates the deckorder server settings from
// DECKORDER_* environment variables, with an optional YAML file as a
// fallback source. Everything downstream receives a validated Config
// value rather than reading the environment itself.
package config
