// Package postgres implements the repositories and transaction manager on PostgreSQL through GORM.
package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"jobhub/config"
	"jobhub/internal/domain/lifecycle"
	"jobhub/internal/errors"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

const (
	poolMonitorInterval   = 5 * time.Second
	poolWaitWarnThreshold = 50 * time.Millisecond
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the connection pool, pings it on start and closes it on stop.
func New(params Params) (*gorm.DB, error) {
	db, err := pgLib.New(params.Config.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	// Multi-step writes go through TransactionManager; single statements run without an implicit transaction.
	db = db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(params.Logger, params.Config),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	monitor := &poolMonitor{
		logger:   params.Logger,
		stats:    sqlDB.Stats,
		interval: poolMonitorInterval,
		done:     make(chan struct{}),
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := sqlDB.PingContext(ctx); err != nil {
				return errors.Wrap(err, "failed to ping PostgreSQL")
			}
			go monitor.run()

			return nil
		},
		OnStop: func(_ context.Context) error {
			close(monitor.done)

			return sqlDB.Close()
		},
	})

	return db, nil
}

// poolMonitor reports connection waits and saturation of the sql.DB pool.
type poolMonitor struct {
	logger   *slog.Logger
	stats    func() sql.DBStats
	interval time.Duration
	done     chan struct{}
}

func (m *poolMonitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	prev := m.stats()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			cur := m.stats()
			m.report(prev, cur)
			prev = cur
		}
	}
}

func (m *poolMonitor) report(prev, cur sql.DBStats) {
	waits := cur.WaitCount - prev.WaitCount
	saturated := cur.MaxOpenConnections > 0 && cur.InUse >= cur.MaxOpenConnections
	if waits <= 0 && !saturated {
		return
	}

	waited := cur.WaitDuration - prev.WaitDuration
	attrs := []slog.Attr{
		slog.Int64("waitCountDelta", waits),
		slog.Duration("waitDurationDelta", waited),
		slog.Int("maxOpenConns", cur.MaxOpenConnections),
		slog.Int("openConns", cur.OpenConnections),
		slog.Int("inUseConns", cur.InUse),
		slog.Int("idleConns", cur.Idle),
	}
	if waits > 0 {
		attrs = append(attrs, slog.Duration("avgWait", waited/time.Duration(waits)))
	}

	level := slog.LevelDebug
	if saturated || waited >= poolWaitWarnThreshold {
		level = slog.LevelWarn
	}
	m.logger.LogAttrs(context.Background(), level, "Postgres pool pressure", attrs...)
}
