package repository

import (
	"context"
	"errors"
	"time"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshSessionNotFound is returned when no session is registered for a token.
var ErrRefreshSessionNotFound = errors.New("refresh session not found")

// RefreshSessionRepository stores at most one refresh session per user.
// Implementations must make Replace and Rotate atomic per user.
type RefreshSessionRepository interface {
	// Replace stores the session and supersedes any prior session of the same user.
	Replace(ctx context.Context, session *entity.RefreshSession) error

	// Rotate swaps the user's session for next only while it still carries oldTokenHash.
	// It returns ErrRefreshSessionNotFound when the swap lost a race or the session is gone.
	Rotate(ctx context.Context, oldTokenHash string, next *entity.RefreshSession) error

	// FindByTokenHash looks up a session by the hash of its refresh token.
	FindByTokenHash(ctx context.Context, tokenHash string) (*entity.RefreshSession, error)

	// DeleteByTokenHash removes the session registered for the token. Missing sessions are not an error.
	DeleteByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes the session of a user. Missing sessions are not an error.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes sessions whose expiry is not after now and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
