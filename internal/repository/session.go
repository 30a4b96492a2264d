package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/attendance-bot/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// Lectures and seminars share their columns; these helpers are written
// once against the table name. table is always a constant, never input.

const sessionColumns = `id, name, module_id, status, created_at, updated_at`

func addSession[T any](ctx context.Context, db DB, table, name, moduleCode string) (*T, error) {
	var session T

	err := withTx(ctx, db, func(tx pgx.Tx) error {
		id, err := moduleID(ctx, tx, moduleCode)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`INSERT INTO `+table+` (name, module_id) VALUES ($1, $2) RETURNING `+sessionColumns,
			name, id,
		)
		if err != nil {
			return sqlErr(err)
		}

		session, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}

func listSessions[T any](ctx context.Context, db DB, table, moduleCode string) ([]T, error) {
	var sessions []T

	err := withTx(ctx, db, func(tx pgx.Tx) error {
		id, err := moduleID(ctx, tx, moduleCode)
		if err != nil {
			return err
		}

		rows, err := tx.Query(ctx,
			`SELECT `+sessionColumns+` FROM `+table+` WHERE module_id = $1 ORDER BY name`,
			id,
		)
		if err != nil {
			return sqlErr(err)
		}

		sessions, err = pgx.CollectRows(rows, pgx.RowToStructByName[T])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// sessionID resolves a lecture or seminar of the given module by name.
func sessionID(ctx context.Context, tx pgx.Tx, table string, moduleID int64, name string) (int64, error) {
	var id int64

	err := tx.QueryRow(ctx,
		`SELECT id FROM `+table+` WHERE module_id = $1 AND name = $2`,
		moduleID, name,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, sqlErr(sqlerr.NoRows(table))
	}
	if err != nil {
		return 0, fmt.Errorf("looking up %s %q: %w", table, name, sqlErr(err))
	}

	return id, nil
}

// deleteSessionByID deletes one row; codes pointing at it cascade.
func deleteSessionByID(ctx context.Context, tx pgx.Tx, table string, id int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return sqlErr(err)
	}
	if tag.RowsAffected() == 0 {
		return sqlErr(sqlerr.NoRows(table))
	}
	return nil
}
