package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

const moduleColumns = `id, name, module_code, description, status, created_at, updated_at`

type ModuleRepository struct {
	db DB
}

func NewModuleRepository(db DB) *ModuleRepository {
	return &ModuleRepository{db: db}
}

// AddModule inserts a module. An existing module code yields ErrDuplicateKey.
func (r *ModuleRepository) AddModule(ctx context.Context, name, moduleCode string, description *string) (*model.Module, error) {
	var module model.Module

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO modules (name, module_code, description)
			VALUES ($1, $2, $3)
			RETURNING `+moduleColumns,
			name, moduleCode, description,
		)
		if err != nil {
			return sqlErr(err)
		}

		module, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Module])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &module, nil
}

// GetModule returns the module with the given code.
func (r *ModuleRepository) GetModule(ctx context.Context, moduleCode string) (*model.Module, error) {
	var module model.Module

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+moduleColumns+` FROM modules WHERE module_code = $1`, moduleCode)
		if err != nil {
			return sqlErr(err)
		}

		module, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Module])
		if errors.Is(err, pgx.ErrNoRows) {
			return sqlErr(sqlerr.NoRows("modules"))
		}
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &module, nil
}

// ListModules returns every module ordered by module code.
func (r *ModuleRepository) ListModules(ctx context.Context) ([]model.Module, error) {
	var modules []model.Module

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT `+moduleColumns+` FROM modules ORDER BY module_code`)
		if err != nil {
			return sqlErr(err)
		}

		modules, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Module])
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return modules, nil
}

// RemoveModule deletes a module that nothing references any more.
//
// A module that still owns lectures, seminars or codes is left untouched
// and ErrHasDependents is returned. The foreign keys are RESTRICT, so a
// dependent inserted concurrently makes the DELETE fail the same way.
func (r *ModuleRepository) RemoveModule(ctx context.Context, moduleCode string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		id, err := moduleID(ctx, tx, moduleCode)
		if err != nil {
			return err
		}

		var lectures, seminars, codes int64
		err = tx.QueryRow(ctx, `
			SELECT
				(SELECT count(*) FROM lectures WHERE module_id = $1),
				(SELECT count(*) FROM seminars WHERE module_id = $1),
				(SELECT count(*) FROM codes WHERE module_id = $1)`,
			id,
		).Scan(&lectures, &seminars, &codes)
		if err != nil {
			return fmt.Errorf("counting dependents of module %s: %w", moduleCode, sqlErr(err))
		}

		if lectures+seminars+codes > 0 {
			return errs.NewHasDependentsError(
				dependentsMessage(moduleCode, lectures, seminars, codes),
				true,
				errs.StrPtr("MODULE_HAS_DEPENDENTS"),
			)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM modules WHERE id = $1`, id); err != nil {
			return sqlErr(err)
		}
		return nil
	})
}

func dependentsMessage(moduleCode string, lectures, seminars, codes int64) string {
	var parts []string
	if lectures > 0 {
		parts = append(parts, fmt.Sprintf("%d lecture(s)", lectures))
	}
	if seminars > 0 {
		parts = append(parts, fmt.Sprintf("%d seminar(s)", seminars))
	}
	if codes > 0 {
		parts = append(parts, fmt.Sprintf("%d code(s)", codes))
	}

	return fmt.Sprintf("Module %s still has %s; remove them first", moduleCode, strings.Join(parts, ", "))
}
