package handler

import (
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/deppfellow/attendance-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	Handler
	statsService *service.StatsService
}

func NewStatsHandler(s *server.Server, statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		Handler:      NewHandler(s),
		statsService: statsService,
	}
}

// GetStats returns every count, or only the one named by ?kind=.
func (h *StatsHandler) GetStats(c echo.Context, query *model.CountQuery) (any, error) {
	ctx := c.Request().Context()

	if query.Kind == "" {
		return h.statsService.Stats(ctx)
	}

	kind := model.EntityKind(query.Kind)

	count, err := h.statsService.Count(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &model.CountResponse{Kind: kind, Count: count}, nil
}
