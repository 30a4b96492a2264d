// Package repository implements the persistence operations over
// PostgreSQL (pgx) and the Redis-backed assignment draft store.
//
// Every Postgres operation runs in its own transaction. Lookups come
// first and the write is issued only once all of them succeeded, so a
// failed operation never leaves a partial write behind.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// DB is the part of *pgxpool.Pool the repositories need.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx runs fn inside a transaction, committing when it returns nil
// and rolling back otherwise.
func withTx(ctx context.Context, db DB, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("rollback transaction: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", sqlErr(err))
	}

	return nil
}

// sqlErr maps a driver error onto an application error. Errors that do
// not map to a known kind are returned as is so the caller's log keeps
// the original cause; the HTTP error handler turns them into a 500.
func sqlErr(err error) error {
	mapped := sqlerr.HandleError(err)
	if errors.Is(mapped, errs.ErrInternal) {
		return err
	}
	return mapped
}

// moduleID resolves a module code to its id.
func moduleID(ctx context.Context, tx pgx.Tx, moduleCode string) (int64, error) {
	var id int64

	err := tx.QueryRow(ctx, `SELECT id FROM modules WHERE module_code = $1`, moduleCode).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, sqlErr(sqlerr.NoRows("modules"))
	}
	if err != nil {
		return 0, fmt.Errorf("looking up module %s: %w", moduleCode, sqlErr(err))
	}

	return id, nil
}
