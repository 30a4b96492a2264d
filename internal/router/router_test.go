package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/attendance-bot/internal/config"
	"github.com/deppfellow/attendance-bot/internal/handler"
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

const testAdminToken = "0123456789abcdef-admin"

type stubEnqueuer struct{ calls int }

func (s *stubEnqueuer) EnqueueSweep(context.Context, lifecycle.Kind, string) (string, error) {
	s.calls++
	return "task-1", nil
}

type stubStats struct{}

func (stubStats) Count(context.Context, model.EntityKind) (int64, error) { return 0, nil }
func (stubStats) Stats(context.Context) (*model.Stats, error) { return &model.Stats{}, nil }

func newTestRouter(t *testing.T) (*echo.Echo, *stubEnqueuer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Bot.AdminToken = testAdminToken
	logger := zerolog.Nop()
	s := &server.Server{Config: cfg, Logger: &logger}

	jobs := &stubEnqueuer{}
	services := &service.Services{
		Stats: service.NewStatsService(stubStats{}),
		Sweep: service.NewSweepService(jobs),
	}

	return NewRouter(s, handler.NewHandlers(s, services)), jobs
}

func TestRoutesAreRegistered(t *testing.T) {
	r, _ := newTestRouter(t)

	registered := map[string]bool{}
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, cmd := range handler.Commands {
		assert.True(t, registered[cmd.Method+" "+cmd.Path], "%s %s is not routed", cmd.Method, cmd.Path)
	}
	assert.True(t, registered["GET /status"])
}

func TestSweepRouteRequiresAdmin(t *testing.T) {
	r, jobs := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/sweeps/expire", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, jobs.calls)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sweeps/expire", nil)
	req.Header.Set(middleware.AdminTokenHeader, testAdminToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, jobs.calls)
}

func TestStatusAndRequestID(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/attendance", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ROUTE_NOT_FOUND")
}
