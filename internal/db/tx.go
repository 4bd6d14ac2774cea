package db

import (
	"context"
	"database/sql"
)

// WithTx runs fn inside a transaction on a single pooled connection.
// The transaction is rolled back when fn returns an error or panics,
// committed otherwise. Commit errors are returned to the caller.
func WithTx(ctx context.Context, d *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
