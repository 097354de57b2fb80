package middleware

import (
	"net/http"
	"time"

	"jobhub/config"
	"jobhub/internal/delivery/api/response"

	"github.com/go-chi/httprate"
	"github.com/labstack/echo/v4"
)

// NewCredentialRateLimiter limits login and registration attempts per client IP and endpoint.
func NewCredentialRateLimiter(cfg *config.AuthConfig) echo.MiddlewareFunc {
	return newRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)
}

func newRateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	limiter := httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.WriteError(w, r, http.StatusTooManyRequests, "RATE_LIMITED", "Too many attempts, please try again later")
		}),
	)

	return echo.WrapMiddleware(limiter)
}
