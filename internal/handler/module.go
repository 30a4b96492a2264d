package handler

import (
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/deppfellow/attendance-bot/internal/service"
	"github.com/labstack/echo/v4"
)

type ModuleHandler struct {
	Handler
	moduleService *service.ModuleService
}

func NewModuleHandler(s *server.Server, moduleService *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		Handler:       NewHandler(s),
		moduleService: moduleService,
	}
}

func (h *ModuleHandler) AddModule(c echo.Context, payload *model.AddModulePayload) (*model.Module, error) {
	return h.moduleService.AddModule(c.Request().Context(), payload.Name, payload.ModuleCode, payload.Description)
}

func (h *ModuleHandler) GetModule(c echo.Context, payload *model.ModuleCodeParam) (*model.Module, error) {
	return h.moduleService.GetModule(c.Request().Context(), payload.ModuleCode)
}

func (h *ModuleHandler) ListModules(c echo.Context, _ *model.EmptyRequest) ([]model.Module, error) {
	return h.moduleService.ListModules(c.Request().Context())
}

// RemoveModule fails with a conflict while lectures, seminars or codes
// still belong to the module.
func (h *ModuleHandler) RemoveModule(c echo.Context, payload *model.ModuleCodeParam) error {
	return h.moduleService.RemoveModule(c.Request().Context(), payload.ModuleCode)
}
