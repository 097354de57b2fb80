package postgres

import (
	"context"
	"log/slog"

	"jobhub/config"
	"jobhub/internal/domain/lifecycle"
	"jobhub/internal/errors"
	"jobhub/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// MigrateParams defines the parameters for the startup migration hook
type MigrateParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
}

// RegisterMigrations applies the embedded schema on startup when migrate is enabled.
func RegisterMigrations(params MigrateParams) {
	if !params.Config.Migrate {
		return
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return Migrate(ctx, params.DB, params.Logger)
		},
	})
}

// Migrate runs every pending goose migration against the database.
func Migrate(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return errors.Wrap(err, "failed to read schema version")
	}
	logger.InfoContext(ctx, "Database schema is up to date", slog.Int64("version", version))

	return nil
}
