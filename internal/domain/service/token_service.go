package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims are the registered claims of a validated token plus its type.
type Claims struct {
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateAccessToken mints a short-lived access token whose subject is the email.
	GenerateAccessToken(email string) (string, error)

	// GenerateRefreshToken mints a refresh token with a random jti. Its authority comes
	// from being registered in the refresh session store.
	GenerateRefreshToken(email string) (string, error)

	// ValidateAccessToken verifies signature, algorithm, expiry and token type.
	ValidateAccessToken(token string) (*Claims, error)

	// HashToken returns the lookup key under which a refresh token is stored.
	HashToken(token string) string

	// RefreshTokenTTL returns the configured lifetime of refresh tokens.
	RefreshTokenTTL() time.Duration
}
