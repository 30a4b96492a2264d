// Package lifecycle runs the two maintenance sweeps over the codes
// table: expiry of old codes and removal of duplicate code strings.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/rs/zerolog"
)

// Kind names a sweep.
type Kind string

const (
	KindExpire Kind = "expire"
	KindDedupe Kind = "dedupe"
)

// ParseKind accepts "expire" or "dedupe".
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindExpire, KindDedupe:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sweep kind %q", s)
	}
}

// CodeStore is the storage the sweeps work on.
type CodeStore interface {
	ListAllCodes(ctx context.Context) ([]model.Code, error)
	DeleteCodeByID(ctx context.Context, id int64) error
	DeleteCodesCreatedBefore(ctx context.Context, cutoff time.Time) ([]int64, error)
}

// Report summarises one sweep.
type Report struct {
	Kind     Kind          `json:"kind"`
	Examined int           `json:"examined"`
	Deleted  int           `json:"deleted"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration"`
}

type Sweeper struct {
	store       CodeStore
	expireAfter time.Duration
	logger      *zerolog.Logger
	now         func() time.Time
}

func NewSweeper(store CodeStore, expireAfter time.Duration, logger *zerolog.Logger) *Sweeper {
	return &Sweeper{
		store:       store,
		expireAfter: expireAfter,
		logger:      logger,
		now:         time.Now,
	}
}

// Run performs the named sweep.
func (s *Sweeper) Run(ctx context.Context, kind Kind) (Report, error) {
	switch kind {
	case KindExpire:
		return s.ExpireCodes(ctx)
	case KindDedupe:
		return s.DedupeCodes(ctx)
	default:
		return Report{Kind: kind}, fmt.Errorf("unknown sweep kind %q", kind)
	}
}

// ExpireCodes hard-deletes every code created more than expireAfter ago.
func (s *Sweeper) ExpireCodes(ctx context.Context) (Report, error) {
	start := s.now()
	report := Report{Kind: KindExpire}

	cutoff := start.Add(-s.expireAfter)

	ids, err := s.store.DeleteCodesCreatedBefore(ctx, cutoff)
	if err != nil {
		report.Duration = s.now().Sub(start)
		s.logger.Error().Err(err).Time("cutoff", cutoff).Msg("expiry sweep failed")
		return report, fmt.Errorf("expiring codes created before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	report.Examined = len(ids)
	report.Deleted = len(ids)
	report.Duration = s.now().Sub(start)

	s.log(report).Time("cutoff", cutoff).Msg("expiry sweep finished")

	return report, nil
}

// DedupeCodes keeps the oldest code of every code string and deletes
// the others one at a time. A failed delete is logged and counted, and
// the sweep moves on to the next one.
func (s *Sweeper) DedupeCodes(ctx context.Context) (Report, error) {
	start := s.now()
	report := Report{Kind: KindDedupe}

	codes, err := s.store.ListAllCodes(ctx)
	if err != nil {
		report.Duration = s.now().Sub(start)
		s.logger.Error().Err(err).Msg("deduplication sweep failed")
		return report, fmt.Errorf("listing codes: %w", err)
	}

	report.Examined = len(codes)

	for _, dup := range Duplicates(codes) {
		if err := ctx.Err(); err != nil {
			report.Duration = s.now().Sub(start)
			return report, err
		}

		err := s.store.DeleteCodeByID(ctx, dup.ID)
		switch {
		case err == nil:
			report.Deleted++
		case errors.Is(err, errs.ErrNotFound):
			// Removed by someone else since the listing.
		default:
			report.Failed++
			s.logger.Warn().
				Err(err).
				Int64("code_id", dup.ID).
				Str("code", dup.Code).
				Msg("could not delete duplicate code")
		}
	}

	report.Duration = s.now().Sub(start)
	s.log(report).Msg("deduplication sweep finished")

	return report, nil
}

func (s *Sweeper) log(r Report) *zerolog.Event {
	event := s.logger.Info()
	if r.Failed > 0 {
		event = s.logger.Warn()
	}

	return event.
		Str("sweep", string(r.Kind)).
		Int("examined", r.Examined).
		Int("deleted", r.Deleted).
		Int("failed", r.Failed).
		Dur("duration", r.Duration)
}

// Duplicates returns every code that shares its code string with an
// older one. The survivor of each group is the oldest by created_at,
// then by id.
func Duplicates(codes []model.Code) []model.Code {
	sorted := make([]model.Code, len(codes))
	copy(sorted, codes)

	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})

	seen := make(map[string]struct{}, len(sorted))
	var dups []model.Code

	for _, c := range sorted {
		if _, ok := seen[c.Code]; ok {
			dups = append(dups, c)
			continue
		}
		seen[c.Code] = struct{}{}
	}

	return dups
}
