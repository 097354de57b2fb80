package usecase

import (
	"context"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// SessionUsecase manages the single refresh session of each principal.
type SessionUsecase interface {
	// CreateSession issues a refresh token for the user and supersedes any previous session.
	CreateSession(ctx context.Context, user *entity.User) (string, *entity.RefreshSession, error)

	// VerifySession returns the session registered for the token. An expired session is
	// deleted before the error is returned.
	VerifySession(ctx context.Context, refreshToken string) (*entity.RefreshSession, error)

	// RotateSession swaps the token's session for a new token that keeps the original expiry.
	RotateSession(ctx context.Context, refreshToken string, user *entity.User) (string, *entity.RefreshSession, error)

	RevokeSession(ctx context.Context, refreshToken string) error
	RevokeAllSessions(ctx context.Context, userID uuid.UUID) error

	// SweepExpiredSessions removes every expired session and returns how many were removed.
	SweepExpiredSessions(ctx context.Context) (int64, error)
}
