package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshSession is the single live refresh-token registration of a user.
// Only the SHA-256 hash of the token is kept.
type RefreshSession struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the session is past its expiry at the given instant.
func (s *RefreshSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
