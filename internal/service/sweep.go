package service

import (
	"context"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/lifecycle"
)

// SweepEnqueuer queues a sweep for the background worker.
type SweepEnqueuer interface {
	EnqueueSweep(ctx context.Context, kind lifecycle.Kind, requestID string) (string, error)
}

type SweepService struct {
	jobs SweepEnqueuer
}

func NewSweepService(jobs SweepEnqueuer) *SweepService {
	return &SweepService{jobs: jobs}
}

// Trigger queues an on-demand sweep and returns the task id.
func (s *SweepService) Trigger(ctx context.Context, kind, requestID string) (string, error) {
	k, err := lifecycle.ParseKind(kind)
	if err != nil {
		return "", errs.NewBadRequestError(err.Error(), true, errs.StrPtr("SWEEP_KIND_INVALID"), nil, nil)
	}
	return s.jobs.EnqueueSweep(ctx, k, requestID)
}
