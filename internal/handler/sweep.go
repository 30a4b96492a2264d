package handler

import (
	"github.com/deppfellow/attendance-bot/internal/middleware"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/deppfellow/attendance-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type SweepHandler struct {
	Handler
	sweepService *service.SweepService
}

func NewSweepHandler(s *server.Server, sweepService *service.SweepService) *SweepHandler {
	return &SweepHandler{
		Handler:      NewHandler(s),
		sweepService: sweepService,
	}
}

// TriggerSweep queues an expiry or deduplication sweep on the worker and
// returns at once.
func (h *SweepHandler) TriggerSweep(c echo.Context, req *model.SweepRequest) (*model.SweepAccepted, error) {
	requestID := middleware.GetRequestID(c)

	taskID, err := h.sweepService.Trigger(c.Request().Context(), req.Kind, requestID)
	if err != nil {
		return nil, err
	}

	middleware.GetLogger(c).Info().
		Str("kind", req.Kind).
		Str("task_id", taskID).
		Msg("sweep queued")

	return &model.SweepAccepted{Kind: req.Kind, TaskID: taskID, RequestID: requestID}, nil
}
