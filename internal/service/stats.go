package service

import (
	"context"

	"github.com/deppfellow/attendance-bot/internal/model"
)

type StatsStore interface {
	Count(ctx context.Context, kind model.EntityKind) (int64, error)
	Stats(ctx context.Context) (*model.Stats, error)
}

type StatsService struct {
	stats StatsStore
}

func NewStatsService(stats StatsStore) *StatsService {
	return &StatsService{stats: stats}
}

func (s *StatsService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.stats.Stats(ctx)
}

func (s *StatsService) Count(ctx context.Context, kind model.EntityKind) (int64, error) {
	return s.stats.Count(ctx, kind)
}
