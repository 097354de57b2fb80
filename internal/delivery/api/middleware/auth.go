package middleware

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"golang.org/x/sync/singleflight"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates bearer access tokens and resolves the principal.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
	lookups  singleflight.Group
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	UserRepo     repository.UserRepository
	Logger       *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc: params.TokenService,
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// Authenticate validates the access token and stores the current user on the context.
// A token whose subject no longer exists is rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || strings.TrimSpace(tokenString) == "" {
			return errors.WithStack(domainerrors.ErrMissingToken)
		}

		claims, err := m.tokenSvc.ValidateAccessToken(strings.TrimSpace(tokenString))
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Debug("Access token rejected",
				slog.Any("error", err),
			)

			return errors.WithStack(domainerrors.ErrAccessTokenInvalid)
		}

		principal, err := m.resolvePrincipal(c.Request().Context(), claims.Subject)
		if err != nil {
			return err
		}

		deliverycontext.SetPrincipal(c, principal)

		return next(c)
	}
}

// resolvePrincipal loads the token subject. Concurrent requests for the same subject
// share one lookup, and each caller receives its own copy.
func (m *AuthMiddleware) resolvePrincipal(ctx context.Context, email string) (*entity.User, error) {
	result, err, _ := m.lookups.Do(email, func() (any, error) {
		return m.userRepo.FindByEmail(context.WithoutCancel(ctx), email)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrPrincipalNotFound)
		}

		return nil, errors.Wrap(err, "failed to resolve principal")
	}

	principal := *result.(*entity.User)

	return &principal, nil
}

// RequireRole rejects principals that hold none of the given roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal := deliverycontext.GetPrincipal(c)
			if principal == nil {
				return errors.WithStack(domainerrors.ErrMissingToken)
			}

			if !principal.HasRole(roles...) {
				return errors.WithStack(domainerrors.ErrPermissionDenied)
			}

			return next(c)
		}
	}
}
