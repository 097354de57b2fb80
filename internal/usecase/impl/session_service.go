// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	sessionRepo  repository.RefreshSessionRepository
	tokenService service.TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	SessionRepo  repository.RefreshSessionRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateSession issues a refresh token and replaces whatever session the user had.
func (srv *sessionService) CreateSession(ctx context.Context, user *entity.User) (string, *entity.RefreshSession, error) {
	refreshToken, err := srv.tokenService.GenerateRefreshToken(user.Email)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to generate refresh token")
	}

	now := srv.now().UTC()
	session := &entity.RefreshSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: now.Add(srv.tokenService.RefreshTokenTTL()),
		CreatedAt: now,
	}

	if err := srv.sessionRepo.Replace(ctx, session); err != nil {
		srv.log(ctx).Error("Failed to store refresh session", slog.Any("user_id", user.ID), slog.Any("error", err))

		return "", nil, errors.Wrap(err, "failed to store refresh session")
	}
	srv.log(ctx).Debug("Refresh session created", slog.Any("user_id", user.ID), slog.Any("session_id", session.ID))

	return refreshToken, session, nil
}

// VerifySession looks the token up by hash and evicts it when it has expired.
func (srv *sessionService) VerifySession(ctx context.Context, refreshToken string) (*entity.RefreshSession, error) {
	if refreshToken == "" {
		return nil, errors.WithStack(domainerrors.ErrRefreshTokenInvalid)
	}

	tokenHash := srv.tokenService.HashToken(refreshToken)
	session, err := srv.sessionRepo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshSessionNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh session not found")
		}

		return nil, errors.Wrap(err, "failed to find refresh session")
	}

	if session.IsExpired(srv.now()) {
		if err := srv.sessionRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
			srv.log(ctx).Error("Failed to evict expired refresh session", slog.Any("user_id", session.UserID), slog.Any("error", err))

			return nil, errors.Wrap(err, "failed to evict expired refresh session")
		}
		srv.log(ctx).Info("Expired refresh session evicted", slog.Any("user_id", session.UserID))

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenExpired, "refresh session expired")
	}

	return session, nil
}

// RotateSession issues a new refresh token in place of the current one. The new session keeps
// the absolute expiry of the old one, so rotation never extends a login.
func (srv *sessionService) RotateSession(ctx context.Context, refreshToken string, user *entity.User) (string, *entity.RefreshSession, error) {
	current, err := srv.VerifySession(ctx, refreshToken)
	if err != nil {
		return "", nil, err
	}
	if current.UserID != user.ID {
		return "", nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh session belongs to another user")
	}

	nextToken, err := srv.tokenService.GenerateRefreshToken(user.Email)
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to generate refresh token")
	}

	next := &entity.RefreshSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(nextToken),
		ExpiresAt: current.ExpiresAt,
		CreatedAt: srv.now().UTC(),
	}

	if err := srv.sessionRepo.Rotate(ctx, current.TokenHash, next); err != nil {
		if errors.Is(err, repository.ErrRefreshSessionNotFound) {
			srv.log(ctx).Warn("Refresh session changed during rotation", slog.Any("user_id", user.ID))

			return "", nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh session superseded")
		}

		return "", nil, errors.Wrap(err, "failed to rotate refresh session")
	}
	srv.log(ctx).Debug("Refresh session rotated", slog.Any("user_id", user.ID), slog.Any("session_id", next.ID))

	return nextToken, next, nil
}

// RevokeSession deletes the session registered for the token, if any.
func (srv *sessionService) RevokeSession(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	if err := srv.sessionRepo.DeleteByTokenHash(ctx, srv.tokenService.HashToken(refreshToken)); err != nil {
		return errors.Wrap(err, "failed to revoke refresh session")
	}

	return nil
}

// RevokeAllSessions deletes the session of a user, if any.
func (srv *sessionService) RevokeAllSessions(ctx context.Context, userID uuid.UUID) error {
	if err := srv.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to revoke sessions", slog.Any("user_id", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke sessions")
	}
	srv.log(ctx).Info("Revoked sessions", slog.Any("user_id", userID))

	return nil
}

// SweepExpiredSessions removes all expired sessions from the store.
func (srv *sessionService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	deleted, err := srv.sessionRepo.DeleteExpired(ctx, srv.now())
	if err != nil {
		srv.log(ctx).Error("Failed to sweep expired sessions", slog.Any("error", err))

		return 0, errors.Wrap(err, "failed to sweep expired sessions")
	}
	srv.log(ctx).Info("Swept expired sessions", slog.Int64("deleted_count", deleted))

	return deleted, nil
}
