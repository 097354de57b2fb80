package impl

import (
	"io"
	"log/slog"
	"time"

	"jobhub/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(rotateRefreshTokens bool) *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:          4,
			AccessTokenTTL:      15 * time.Minute,
			RefreshTokenTTL:     7 * 24 * time.Hour,
			RotateRefreshTokens: rotateRefreshTokens,
		},
		Jobs: &config.JobsConfig{
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
	}
}
