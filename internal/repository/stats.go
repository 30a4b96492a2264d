package repository

import (
	"context"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/jackc/pgx/v5"
)

type StatsRepository struct {
	db DB
}

func NewStatsRepository(db DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Count returns the number of rows of one entity kind.
func (r *StatsRepository) Count(ctx context.Context, kind model.EntityKind) (int64, error) {
	table, err := kind.Table()
	if err != nil {
		return 0, errs.NewBadRequestError(err.Error(), true, errs.StrPtr("ENTITY_KIND_INVALID"), nil, nil)
	}

	var count int64
	err = withTx(ctx, r.db, func(tx pgx.Tx) error {
		// table comes from the fixed EntityKind mapping.
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&count); err != nil {
			return sqlErr(err)
		}
		return nil
	})

	return count, err
}

// Stats counts all four entity kinds in one snapshot.
func (r *StatsRepository) Stats(ctx context.Context) (*model.Stats, error) {
	var stats model.Stats

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT
				(SELECT count(*) FROM modules),
				(SELECT count(*) FROM lectures),
				(SELECT count(*) FROM seminars),
				(SELECT count(*) FROM codes)`,
		).Scan(&stats.Modules, &stats.Lectures, &stats.Seminars, &stats.Codes)
		if err != nil {
			return sqlErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
