package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/deppfellow/attendance-bot/internal/config"
	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/lifecycle"
	"github.com/deppfellow/attendance-bot/internal/middleware"
	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/deppfellow/attendance-bot/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{Config: config.DefaultConfig(), Logger: &logger}
}

func newTestEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(middleware.RequestID(), middleware.NewContextEnhancer(s).EnhanceContext())
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandleRejectsInvalidPayload(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	called := false
	e.POST("/codes/assignments", Handle(NewHandler(s),
		func(c echo.Context, req *model.BeginAssignmentPayload) (*model.BeginAssignmentPayload, error) {
			called = true
			return req, nil
		}, http.StatusCreated, &model.BeginAssignmentPayload{}))

	rec := serve(e, http.MethodPost, "/codes/assignments", `{"code":"AB12","module_code":"COMP101","kind":"workshop"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "kind", body.Errors[0].Field)
}

func TestHandleBindsFreshRequests(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	e.POST("/modules/:module_code/lectures", Handle(NewHandler(s),
		func(c echo.Context, req *model.AddSessionPayload) (*model.AddSessionPayload, error) {
			return req, nil
		}, http.StatusCreated, &model.AddSessionPayload{}))

	var wg sync.WaitGroup
	for _, name := range []string{"Lecture 1", "Lecture 2", "Lecture 3", "Lecture 4"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			rec := serve(e, http.MethodPost, "/modules/COMP101/lectures", `{"name":"`+name+`"}`)
			assert.Equal(t, http.StatusCreated, rec.Code)

			var got model.AddSessionPayload
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, name, got.Name)
			assert.Equal(t, "COMP101", got.ModuleCode)
		}(name)
	}
	wg.Wait()
}

func TestHandleNoContent(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	var removed string
	e.DELETE("/seminars/:name", HandleNoContent(NewHandler(s),
		func(c echo.Context, req *model.RemoveSeminarPayload) error {
			removed = req.Name
			return nil
		}, http.StatusNoContent, &model.RemoveSeminarPayload{}))

	rec := serve(e, http.MethodDelete, "/seminars/Seminar%201", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, "Seminar 1", removed)
}

func TestHandlePassesServiceErrors(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	e.GET("/modules/:module_code", Handle(NewHandler(s),
		func(c echo.Context, req *model.ModuleCodeParam) (*model.Module, error) {
			return nil, errs.NewNotFoundError("Module COMP999 not found", true, errs.StrPtr("MODULE_NOT_FOUND"))
		}, http.StatusOK, &model.ModuleCodeParam{}))

	rec := serve(e, http.MethodGet, "/modules/COMP999", "")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "MODULE_NOT_FOUND")
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)

	healthy := newHealthHandler(s, map[string]CheckFunc{
		"database": func(context.Context) error { return nil },
	}, time.Second)
	failing := newHealthHandler(s, map[string]CheckFunc{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("dial tcp: connection refused") },
	}, time.Second)

	e.GET("/healthy", healthy.CheckHealth)
	e.GET("/failing", failing.CheckHealth)

	rec := serve(e, http.MethodGet, "/healthy", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "local", body.Environment)
	assert.Equal(t, "healthy", body.Checks["database"].Status)

	rec = serve(e, http.MethodGet, "/failing", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body = HealthResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "healthy", body.Checks["database"].Status)
	assert.Equal(t, "unhealthy", body.Checks["redis"].Status)
	assert.Contains(t, body.Checks["redis"].Error, "connection refused")
}

func TestHealthChecksFollowConfig(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Enabled = false

	assert.Empty(t, NewHealthHandler(s).checks)
}

func TestSystemHandlers(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)
	h := NewSystemHandler(s)

	e.GET("/ping", Handle(h.Handler, h.Ping, http.StatusOK, &model.EmptyRequest{}))
	e.GET("/source", Handle(h.Handler, h.Source, http.StatusOK, &model.EmptyRequest{}))
	e.GET("/help", Handle(h.Handler, h.Help, http.StatusOK, &model.EmptyRequest{}))

	rec := serve(e, http.MethodGet, "/ping", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"pong"`)

	rec = serve(e, http.MethodGet, "/source", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), s.Config.Bot.SourceURL)

	rec = serve(e, http.MethodGet, "/help", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var commands []model.Command
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &commands))
	assert.Len(t, commands, len(Commands))
}

type fakeStats struct{}

func (fakeStats) Count(_ context.Context, kind model.EntityKind) (int64, error) {
	if kind == model.EntityCode {
		return 7, nil
	}
	return 1, nil
}

func (fakeStats) Stats(context.Context) (*model.Stats, error) {
	return &model.Stats{Modules: 1, Lectures: 2, Seminars: 3, Codes: 7}, nil
}

func TestStatsHandler(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)
	h := NewStatsHandler(s, service.NewStatsService(fakeStats{}))

	e.GET("/stats", Handle(h.Handler, h.GetStats, http.StatusOK, &model.CountQuery{}))

	rec := serve(e, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats model.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, model.Stats{Modules: 1, Lectures: 2, Seminars: 3, Codes: 7}, stats)

	rec = serve(e, http.MethodGet, "/stats?kind=code", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var count model.CountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &count))
	assert.Equal(t, model.CountResponse{Kind: model.EntityCode, Count: 7}, count)

	rec = serve(e, http.MethodGet, "/stats?kind=course", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type fakeEnqueuer struct {
	kind      lifecycle.Kind
	requestID string
}

func (f *fakeEnqueuer) EnqueueSweep(_ context.Context, kind lifecycle.Kind, requestID string) (string, error) {
	f.kind = kind
	f.requestID = requestID
	return "task-1", nil
}

func TestSweepHandler(t *testing.T) {
	s := newTestServer()
	e := newTestEcho(s)
	jobs := &fakeEnqueuer{}
	h := NewSweepHandler(s, service.NewSweepService(jobs))

	e.POST("/sweeps/:kind", Handle(h.Handler, h.TriggerSweep, http.StatusAccepted, &model.SweepRequest{}))

	req := httptest.NewRequest(http.MethodPost, "/sweeps/dedupe", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, lifecycle.KindDedupe, jobs.kind)
	assert.Equal(t, "req-42", jobs.requestID)

	var accepted model.SweepAccepted
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	assert.Equal(t, model.SweepAccepted{Kind: "dedupe", TaskID: "task-1", RequestID: "req-42"}, accepted)

	rec = serve(e, http.MethodPost, "/sweeps/vacuum", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
