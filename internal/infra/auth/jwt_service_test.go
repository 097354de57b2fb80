package auth

import (
	"strings"
	"testing"
	"time"

	"jobhub/config"
	"jobhub/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestConfig())
	require.NoError(t, err)

	impl, ok := svc.(*jwtService)
	require.True(t, ok)

	return impl
}

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateAccessToken("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Subject)
	assert.Equal(t, service.TokenTypeAccess, claims.Type)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 2*time.Second)
}

func TestJWTService_RefreshTokensAreDistinct(t *testing.T) {
	svc := newTestJWTService(t)

	first, err := svc.GenerateRefreshToken("alice@example.com")
	require.NoError(t, err)
	second, err := svc.GenerateRefreshToken("alice@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotEqual(t, svc.HashToken(first), svc.HashToken(second))
	assert.Equal(t, 7*24*time.Hour, svc.RefreshTokenTTL())
}

func TestJWTService_RejectsRefreshTokenAsAccessToken(t *testing.T) {
	svc := newTestJWTService(t)

	refresh, err := svc.GenerateRefreshToken("alice@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refresh)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)
	svc.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := svc.GenerateAccessToken("alice@example.com")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	svc := newTestJWTService(t)

	other := newTestConfig()
	other.SecretKey.Access = "another_access_secret_key_for_testing"
	foreign, err := NewJWTService(other)
	require.NoError(t, err)

	token, err := foreign.GenerateAccessToken("alice@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := newTestJWTService(t)

	claims := service.Claims{
		Type: service.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(svc.accessSecret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestJWTService_InvalidToken(t *testing.T) {
	svc := newTestJWTService(t)

	claims, err := svc.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_HashTokenIsStable(t *testing.T) {
	svc := newTestJWTService(t)

	hash := svc.HashToken("token")
	assert.Len(t, hash, 64)
	assert.Equal(t, hash, svc.HashToken("token"))
}

func TestJWTService_ConfigValidation(t *testing.T) {
	cfg := newTestConfig()
	cfg.SecretKey.Access = ""
	svc, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")

	cfg = newTestConfig()
	cfg.Auth.AccessTokenTTL = 0
	_, err = NewJWTService(cfg)
	assert.Error(t, err)
}
