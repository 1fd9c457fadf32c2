package repository

import (
	"context"
	"database/sql"
)

// Repository methods that participate in the transition transaction take
// an optional *sql.Tx; a nil tx runs the statement on the pool directly.

func execContext(ctx context.Context, tx *sql.Tx, db *sql.DB, query string, args ...interface{}) (sql.Result, error) {
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return db.ExecContext(ctx, query, args...)
}

func queryRowContext(ctx context.Context, tx *sql.Tx, db *sql.DB, query string, args ...interface{}) *sql.Row {
	if tx != nil {
		return tx.QueryRowContext(ctx, query, args...)
	}
	return db.QueryRowContext(ctx, query, args...)
}
