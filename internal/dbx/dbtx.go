// Package dbx provides the small database abstractions shared by all
// repositories: the DBTX interface satisfied by both *sql.DB and *sql.Tx,
// and WithTx, which wraps a function in one atomic unit of work.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql operations repositories rely on.
// Passing a *sql.Tx scopes a repository to the surrounding transaction;
// passing a *sql.DB runs each call on its own connection.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn against it, and commits on success.
// Any error or panic from fn rolls the transaction back; panics are
// rethrown after the rollback. There is no partial-commit path: a business
// operation either lands entirely or not at all.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
