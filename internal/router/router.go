// Package router builds the Echo instance: global middleware in order,
// the system routes and the /api/v1 command routes.
package router

import (
	"net/http"

	"github.com/deppfellow/attendance-bot/internal/handler"
	"github.com/deppfellow/attendance-bot/internal/middleware"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter returns the HTTP handler of the service.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerCommandRoutes(v1, h, middlewares)

	return router
}

func registerCommandRoutes(v1 *echo.Group, h *handler.Handlers, m *middleware.Middlewares) {
	admin := m.Auth.RequireAdmin
	limited := m.RateLimit.CodeSubmissions()

	v1.GET("/ping", handler.Handle(h.System.Handler, h.System.Ping, http.StatusOK, &model.EmptyRequest{}))
	v1.GET("/source", handler.Handle(h.System.Handler, h.System.Source, http.StatusOK, &model.EmptyRequest{}))
	v1.GET("/help", handler.Handle(h.System.Handler, h.System.Help, http.StatusOK, &model.EmptyRequest{}))

	modules := v1.Group("/modules")
	modules.GET("", handler.Handle(h.Module.Handler, h.Module.ListModules, http.StatusOK, &model.EmptyRequest{}))
	modules.GET("/:module_code", handler.Handle(h.Module.Handler, h.Module.GetModule, http.StatusOK, &model.ModuleCodeParam{}))
	modules.POST("", handler.Handle(h.Module.Handler, h.Module.AddModule, http.StatusCreated, &model.AddModulePayload{}), admin)
	modules.DELETE("/:module_code", handler.HandleNoContent(h.Module.Handler, h.Module.RemoveModule, http.StatusNoContent, &model.ModuleCodeParam{}), admin)

	modules.GET("/:module_code/lectures", handler.Handle(h.Lecture.Handler, h.Lecture.ListLectures, http.StatusOK, &model.ModuleCodeParam{}))
	modules.POST("/:module_code/lectures", handler.Handle(h.Lecture.Handler, h.Lecture.AddLecture, http.StatusCreated, &model.AddSessionPayload{}), admin)
	modules.GET("/:module_code/seminars", handler.Handle(h.Seminar.Handler, h.Seminar.ListSeminars, http.StatusOK, &model.ModuleCodeParam{}))
	modules.POST("/:module_code/seminars", handler.Handle(h.Seminar.Handler, h.Seminar.AddSeminar, http.StatusCreated, &model.AddSessionPayload{}), admin)

	v1.DELETE("/lectures/:name", handler.HandleNoContent(h.Lecture.Handler, h.Lecture.RemoveLecture, http.StatusNoContent, &model.RemoveLecturePayload{}), admin)
	v1.DELETE("/seminars/:name", handler.HandleNoContent(h.Seminar.Handler, h.Seminar.RemoveSeminar, http.StatusNoContent, &model.RemoveSeminarPayload{}), admin)

	codes := v1.Group("/codes")
	codes.GET("", handler.Handle(h.Code.Handler, h.Code.ListCodes, http.StatusOK, &model.ListCodesQuery{}))
	codes.POST("", handler.Handle(h.Code.Handler, h.Code.AddCode, http.StatusCreated, &model.AddCodePayload{}), limited)
	codes.DELETE("/:code", handler.Handle(h.Code.Handler, h.Code.RemoveCode, http.StatusOK, &model.CodeParam{}), admin)
	codes.POST("/assignments", handler.Handle(h.Code.Handler, h.Code.BeginAssignment, http.StatusCreated, &model.BeginAssignmentPayload{}), limited)
	codes.POST("/assignments/:id/select", handler.Handle(h.Code.Handler, h.Code.SelectAssignment, http.StatusCreated, &model.SelectAssignmentPayload{}))

	v1.GET("/stats", handler.Handle(h.Stats.Handler, h.Stats.GetStats, http.StatusOK, &model.CountQuery{}))

	adminGroup := v1.Group("/admin", admin)
	adminGroup.POST("/sweeps/:kind", handler.Handle(h.Sweep.Handler, h.Sweep.TriggerSweep, http.StatusAccepted, &model.SweepRequest{}))
}
