package repository

import (
	"context"
	"errors"

	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type SeminarRepository struct {
	db DB
}

func NewSeminarRepository(db DB) *SeminarRepository {
	return &SeminarRepository{db: db}
}

// AddSeminar adds a seminar to a module. Seminar names are globally unique.
func (r *SeminarRepository) AddSeminar(ctx context.Context, name, moduleCode string) (*model.Seminar, error) {
	return addSession[model.Seminar](ctx, r.db, "seminars", name, moduleCode)
}

// ListSeminars returns the seminars of a module ordered by name.
func (r *SeminarRepository) ListSeminars(ctx context.Context, moduleCode string) ([]model.Seminar, error) {
	return listSessions[model.Seminar](ctx, r.db, "seminars", moduleCode)
}

// RemoveSeminar deletes a seminar by name together with its codes.
func (r *SeminarRepository) RemoveSeminar(ctx context.Context, name string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		var id int64
		if err := tx.QueryRow(ctx, `SELECT id FROM seminars WHERE name = $1`, name).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return sqlErr(sqlerr.NoRows("seminars"))
			}
			return sqlErr(err)
		}

		return deleteSessionByID(ctx, tx, "seminars", id)
	})
}
