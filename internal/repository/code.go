package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const codeColumns = `id, code, module_id, lecture_id, seminar_id, status, created_at, updated_at`

type CodeRepository struct {
	db DB
}

func NewCodeRepository(db DB) *CodeRepository {
	return &CodeRepository{db: db}
}

// AddCode stores a code for a lecture or seminar of the given module.
//
// The module and target must exist (ErrNotFound), and the code string
// must not be stored yet (ErrDuplicateKey). All checks run inside the
// transaction, before the INSERT.
func (r *CodeRepository) AddCode(ctx context.Context, code, moduleCode string, target model.Target) (*model.Code, error) {
	var table string
	switch target.Kind {
	case model.TargetLecture:
		table = "lectures"
	case model.TargetSeminar:
		table = "seminars"
	default:
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("A code must be attached to a lecture or a seminar, got %q", target.Kind),
			true, errs.StrPtr("CODE_TARGET_INVALID"), nil, nil,
		)
	}

	var created model.Code

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		mid, err := moduleID(ctx, tx, moduleCode)
		if err != nil {
			return err
		}

		tid, err := sessionID(ctx, tx, table, mid, target.Name)
		if err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM codes WHERE code = $1)`, code).Scan(&exists); err != nil {
			return fmt.Errorf("checking code %s: %w", code, sqlErr(err))
		}
		if exists {
			return errs.NewDuplicateKeyError(
				fmt.Sprintf("Code %s already exists", code),
				true, errs.StrPtr("CODE_ALREADY_EXISTS"),
			)
		}

		var lectureID, seminarID *int64
		if target.Kind == model.TargetLecture {
			lectureID = &tid
		} else {
			seminarID = &tid
		}

		rows, err := tx.Query(ctx, `
			INSERT INTO codes (code, module_id, lecture_id, seminar_id)
			VALUES ($1, $2, $3, $4)
			RETURNING `+codeColumns,
			code, mid, lectureID, seminarID,
		)
		if err != nil {
			return sqlErr(err)
		}

		created, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Code])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// CodeExists reports whether any row carries the code string.
func (r *CodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM codes WHERE code = $1)`, code).Scan(&exists); err != nil {
			return sqlErr(err)
		}
		return nil
	})

	return exists, err
}

// RemoveCode deletes every row carrying the code string and returns how
// many were removed.
func (r *CodeRepository) RemoveCode(ctx context.Context, code string) (int64, error) {
	var deleted int64

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM codes WHERE code = $1`, code)
		if err != nil {
			return sqlErr(err)
		}
		if tag.RowsAffected() == 0 {
			return sqlErr(sqlerr.NoRows("codes"))
		}

		deleted = tag.RowsAffected()
		return nil
	})

	return deleted, err
}

// ListCodes returns the codes created inside the closed window, newest
// first, with their module and target names resolved.
func (r *CodeRepository) ListCodes(ctx context.Context, window model.Window) ([]model.CodeListing, error) {
	var listings []model.CodeListing

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT
				c.id,
				c.code,
				m.module_code,
				m.name AS module_name,
				CASE WHEN c.lecture_id IS NOT NULL THEN 'lecture' ELSE 'seminar' END AS target_kind,
				COALESCE(l.name, s.name) AS target_name,
				c.created_at
			FROM codes c
			JOIN modules m ON m.id = c.module_id
			LEFT JOIN lectures l ON l.id = c.lecture_id
			LEFT JOIN seminars s ON s.id = c.seminar_id
			WHERE c.created_at BETWEEN $1 AND $2
			ORDER BY c.created_at DESC, c.id DESC`,
			window.From, window.To,
		)
		if err != nil {
			return sqlErr(err)
		}

		listings, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CodeListing])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return listings, nil
}

// ListAllCodes returns every code, oldest first (created_at, then id).
func (r *CodeRepository) ListAllCodes(ctx context.Context) ([]model.Code, error) {
	var codes []model.Code

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+codeColumns+` FROM codes ORDER BY created_at, id`)
		if err != nil {
			return sqlErr(err)
		}

		codes, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Code])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return codes, nil
}

// DeleteCodeByID deletes one code row. ErrNotFound means it was already gone.
func (r *CodeRepository) DeleteCodeByID(ctx context.Context, id int64) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM codes WHERE id = $1`, id)
		if err != nil {
			return sqlErr(err)
		}
		if tag.RowsAffected() == 0 {
			return sqlErr(sqlerr.NoRows("codes"))
		}
		return nil
	})
}

// DeleteCodesCreatedBefore hard-deletes every code older than cutoff and
// returns the removed ids.
func (r *CodeRepository) DeleteCodesCreatedBefore(ctx context.Context, cutoff time.Time) ([]int64, error) {
	var ids []int64

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `DELETE FROM codes WHERE created_at < $1 RETURNING id`, cutoff)
		if err != nil {
			return sqlErr(err)
		}

		ids, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}
