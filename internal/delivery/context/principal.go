package context

import (
	"log/slog"

	"jobhub/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the key for storing the authenticated user in echo.Context.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the authenticated user in echo.Context and tags the
// request-scoped logger with the user's id and role.
func SetPrincipal(c echo.Context, user *entity.User) {
	c.Set(string(KeyPrincipal), user)

	req := c.Request()
	ctx := req.Context()
	if logger := GetLogger(ctx); logger != nil && user != nil {
		logger = logger.With(
			slog.String("user_id", user.ID.String()),
			slog.String("role", string(user.Role)),
		)
		c.SetRequest(req.WithContext(WithLogger(ctx, logger)))
	}
}

// GetPrincipal returns the authenticated user, or nil when the route is public.
func GetPrincipal(c echo.Context) *entity.User {
	if user, ok := c.Get(string(KeyPrincipal)).(*entity.User); ok {
		return user
	}

	return nil
}
