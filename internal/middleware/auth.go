package middleware

import (
	"crypto/subtle"
	"time"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/labstack/echo/v4"
)

// AdminTokenHeader carries the shared secret for admin-only commands.
const AdminTokenHeader = "X-Admin-Token"

// AdminKey marks an Echo context whose request passed RequireAdmin.
const AdminKey = "admin"

// AuthMiddleware guards the admin-only commands (module, lecture and
// seminar management, code removal, sweeps).
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAdmin rejects requests whose X-Admin-Token header does not match
// the configured admin token: 401 when the header is missing, 403 when
// it is wrong.
func (auth *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		logger := GetLogger(c)

		token := c.Request().Header.Get(AdminTokenHeader)
		if token == "" {
			logger.Warn().
				Str("function", "RequireAdmin").
				Dur("duration", time.Since(start)).
				Msg("admin token missing")

			return errs.NewUnauthorizedError("This command requires the admin token", true)
		}

		expected := auth.server.Config.Bot.AdminToken
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			logger.Warn().
				Str("function", "RequireAdmin").
				Dur("duration", time.Since(start)).
				Msg("admin token rejected")

			return errs.NewForbiddenError("You are not allowed to run this command", true)
		}

		c.Set(AdminKey, true)

		return next(c)
	}
}

// IsAdmin reports whether RequireAdmin accepted the request.
func IsAdmin(c echo.Context) bool {
	admin, _ := c.Get(AdminKey).(bool)
	return admin
}
