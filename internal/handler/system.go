package handler

import (
	"net/http"
	"time"

	"github.com/deppfellow/attendance-bot/internal/model"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/labstack/echo/v4"
)

// Commands is the catalogue returned by the help command, in the order
// it is shown.
var Commands = []model.Command{
	{Name: "ping", Method: http.MethodGet, Path: "/api/v1/ping", Description: "Check the bot is alive"},
	{Name: "sourcecode", Method: http.MethodGet, Path: "/api/v1/source", Description: "Link to the source code"},
	{Name: "help", Method: http.MethodGet, Path: "/api/v1/help", Description: "List the commands"},
	{Name: "codes", Method: http.MethodGet, Path: "/api/v1/codes", Description: "List recent codes (?since=24h&until=1h)"},
	{Name: "addcode", Method: http.MethodPost, Path: "/api/v1/codes", Description: "Add a code for a lecture or seminar"},
	{Name: "addcode", Method: http.MethodPost, Path: "/api/v1/codes/assignments", Description: "Start adding a code and pick its lecture or seminar"},
	{Name: "addcode", Method: http.MethodPost, Path: "/api/v1/codes/assignments/:id/select", Description: "Finish adding a code with the chosen lecture or seminar"},
	{Name: "removecode", Method: http.MethodDelete, Path: "/api/v1/codes/:code", Description: "Remove a code", Admin: true},
	{Name: "modules", Method: http.MethodGet, Path: "/api/v1/modules", Description: "List modules"},
	{Name: "module", Method: http.MethodGet, Path: "/api/v1/modules/:module_code", Description: "Show a module"},
	{Name: "addmodule", Method: http.MethodPost, Path: "/api/v1/modules", Description: "Add a module", Admin: true},
	{Name: "removemodule", Method: http.MethodDelete, Path: "/api/v1/modules/:module_code", Description: "Remove a module without lectures, seminars or codes", Admin: true},
	{Name: "lectures", Method: http.MethodGet, Path: "/api/v1/modules/:module_code/lectures", Description: "List a module's lectures"},
	{Name: "addlecture", Method: http.MethodPost, Path: "/api/v1/modules/:module_code/lectures", Description: "Add a lecture to a module", Admin: true},
	{Name: "removelecture", Method: http.MethodDelete, Path: "/api/v1/lectures/:name", Description: "Remove a lecture and its codes (?module_code= if the name is shared)", Admin: true},
	{Name: "seminars", Method: http.MethodGet, Path: "/api/v1/modules/:module_code/seminars", Description: "List a module's seminars"},
	{Name: "addseminar", Method: http.MethodPost, Path: "/api/v1/modules/:module_code/seminars", Description: "Add a seminar to a module", Admin: true},
	{Name: "removeseminar", Method: http.MethodDelete, Path: "/api/v1/seminars/:name", Description: "Remove a seminar and its codes", Admin: true},
	{Name: "stats", Method: http.MethodGet, Path: "/api/v1/stats", Description: "Count modules, lectures, seminars and codes (?kind=)"},
	{Name: "sweep", Method: http.MethodPost, Path: "/api/v1/admin/sweeps/:kind", Description: "Run the expire or dedupe sweep now", Admin: true},
}

// SystemHandler answers the informational commands.
type SystemHandler struct {
	Handler
}

func NewSystemHandler(s *server.Server) *SystemHandler {
	return &SystemHandler{
		Handler: NewHandler(s),
	}
}

type PingResponse struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

type SourceResponse struct {
	URL string `json:"url"`
}

func (h *SystemHandler) Ping(c echo.Context, _ *model.EmptyRequest) (*PingResponse, error) {
	return &PingResponse{Message: "pong", Time: time.Now().UTC()}, nil
}

func (h *SystemHandler) Source(c echo.Context, _ *model.EmptyRequest) (*SourceResponse, error) {
	return &SourceResponse{URL: h.server.Config.Bot.SourceURL}, nil
}

func (h *SystemHandler) Help(c echo.Context, _ *model.EmptyRequest) ([]model.Command, error) {
	return Commands, nil
}
