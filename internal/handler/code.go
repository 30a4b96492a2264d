package handler

import (
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/deppfellow/attendance-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type CodeHandler struct {
	Handler
	codeService *service.CodeService
}

func NewCodeHandler(s *server.Server, codeService *service.CodeService) *CodeHandler {
	return &CodeHandler{
		Handler:     NewHandler(s),
		codeService: codeService,
	}
}

// ListCodes answers the "codes" command: codes created around now,
// newest first.
func (h *CodeHandler) ListCodes(c echo.Context, query *model.ListCodesQuery) (*service.CodeListingResult, error) {
	return h.codeService.ListRecent(c.Request().Context(), query.LookBack(), query.LookAhead())
}

func (h *CodeHandler) AddCode(c echo.Context, payload *model.AddCodePayload) (*model.Code, error) {
	target, err := service.TargetFrom(payload.Lecture, payload.Seminar)
	if err != nil {
		return nil, err
	}
	return h.codeService.AddCode(c.Request().Context(), payload.Code, payload.ModuleCode, target)
}

func (h *CodeHandler) RemoveCode(c echo.Context, payload *model.CodeParam) (*model.RemoveCodeResponse, error) {
	removed, err := h.codeService.RemoveCode(c.Request().Context(), payload.Code)
	if err != nil {
		return nil, err
	}
	return &model.RemoveCodeResponse{Code: payload.Code, Removed: removed}, nil
}

// BeginAssignment is the first step of the interactive "addcode": the
// response lists the lectures or seminars the client may pick from.
func (h *CodeHandler) BeginAssignment(c echo.Context, payload *model.BeginAssignmentPayload) (*model.AssignmentDraft, error) {
	return h.codeService.BeginAssignment(c.Request().Context(), payload.Code, payload.ModuleCode, model.TargetKind(payload.Kind))
}

func (h *CodeHandler) SelectAssignment(c echo.Context, payload *model.SelectAssignmentPayload) (*model.Code, error) {
	return h.codeService.CommitAssignment(c.Request().Context(), payload.ID, payload.Choice)
}
