package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"jobhub/config"
	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func sqlAndRows() (string, int64) {
	return "SELECT 1", 1
}

func TestGormSlogLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		err     error
		elapsed time.Duration
		want    string
	}{
		{name: "query error", err: errors.New("connection reset"), want: "GORM query failed"},
		{name: "record not found is quiet", err: gorm.ErrRecordNotFound},
		{name: "duplicate insert is quiet", err: &pgconn.PgError{Code: pgUniqueViolation}},
		{name: "slow query", elapsed: time.Second, want: "GORM slow query"},
		{name: "fast query without debug"},
		{name: "fast query in debug", debug: true, want: "GORM query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug
			l := newGormSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)), cfg)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), sqlAndRows, tt.err)

			if tt.want == "" {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	var base, scoped bytes.Buffer
	l := newGormSlogLogger(slog.New(slog.NewTextHandler(&base, nil)), &config.Config{})
	ctx := deliverycontext.WithLogger(context.Background(),
		slog.New(slog.NewTextHandler(&scoped, nil)).With(slog.String("request_id", "req-9")))

	l.Trace(ctx, time.Now(), sqlAndRows, errors.New("boom"))

	assert.Empty(t, base.String())
	assert.Contains(t, scoped.String(), "request_id=req-9")
}
