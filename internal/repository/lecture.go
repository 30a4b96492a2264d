package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

type LectureRepository struct {
	db DB
}

func NewLectureRepository(db DB) *LectureRepository {
	return &LectureRepository{db: db}
}

// AddLecture adds a lecture to a module. Lecture names are unique per module.
func (r *LectureRepository) AddLecture(ctx context.Context, name, moduleCode string) (*model.Lecture, error) {
	return addSession[model.Lecture](ctx, r.db, "lectures", name, moduleCode)
}

// ListLectures returns the lectures of a module ordered by name.
func (r *LectureRepository) ListLectures(ctx context.Context, moduleCode string) ([]model.Lecture, error) {
	return listSessions[model.Lecture](ctx, r.db, "lectures", moduleCode)
}

// RemoveLecture deletes a lecture together with its codes.
//
// With an empty moduleCode the lecture is found by name alone, which
// fails with ErrInvalidArgument when several modules use that name.
func (r *LectureRepository) RemoveLecture(ctx context.Context, moduleCode, name string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		if moduleCode != "" {
			mid, err := moduleID(ctx, tx, moduleCode)
			if err != nil {
				return err
			}

			id, err := sessionID(ctx, tx, "lectures", mid, name)
			if err != nil {
				return err
			}
			return deleteSessionByID(ctx, tx, "lectures", id)
		}

		rows, err := tx.Query(ctx, `SELECT id FROM lectures WHERE name = $1`, name)
		if err != nil {
			return sqlErr(err)
		}

		ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
		if err != nil {
			return sqlErr(err)
		}

		switch len(ids) {
		case 0:
			return sqlErr(sqlerr.NoRows("lectures"))
		case 1:
			return deleteSessionByID(ctx, tx, "lectures", ids[0])
		default:
			return errs.NewBadRequestError(
				fmt.Sprintf("%d modules have a lecture named %q; specify the module code", len(ids), name),
				true,
				errs.StrPtr("LECTURE_AMBIGUOUS"),
				nil,
				nil,
			)
		}
	})
}
