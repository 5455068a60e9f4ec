package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database handle the stores run their queries on.
// Both *sql.DB and *sql.Tx satisfy it, so the same store code serves
// standalone calls and the transactional reorder/renumber paths, where
// every statement must share one transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
