package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/deppfellow/attendance-bot/internal/errs"
	"github.com/deppfellow/attendance-bot/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimitStoreExpiry is how long an idle client keeps its bucket.
const RateLimitStoreExpiry = 3 * time.Minute

// RateLimitMiddleware throttles code submissions per client ip.
type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// RecordRateLimitHit sends a RateLimitHit custom event to New Relic, if enabled.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.server.LoggerService != nil && r.server.LoggerService.GetApplication() != nil {
		r.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}

// CodeSubmissions allows Bot.CodeRateLimit requests per second with a
// burst of the same size rounded up, at least one.
func (r *RateLimitMiddleware) CodeSubmissions() echo.MiddlewareFunc {
	limit := r.server.Config.Bot.CodeRateLimit
	burst := int(math.Ceil(limit))
	if burst < 1 {
		burst = 1
	}

	retryAfter := strconv.Itoa(int(math.Ceil(1 / limit)))

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(limit),
			Burst:     burst,
			ExpiresIn: RateLimitStoreExpiry,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewBadRequestError("Could not identify the client", false, nil, nil, nil)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("client", identifier).
				Str("endpoint", c.Path()).
				Msg("rate limit hit")

			c.Response().Header().Set("Retry-After", retryAfter)

			return errs.NewTooManyRequestsError("Too many codes submitted, slow down", retryAfter)
		},
	})
}
