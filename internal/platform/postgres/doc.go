// Package postgres implements the storage interfaces defined in the
// internal/store package on top of PostgreSQL. It owns the SQL, the mapping
// between domain entities and rows (including NULL deck positions), and the
// translation of driver errors into the store package's error categories.
package postgres
