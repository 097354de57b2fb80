package main

import (
	"context"
	"log/slog"
	"os"

	"jobhub/config"
	"jobhub/internal/delivery"
	"jobhub/internal/delivery/api"
	"jobhub/internal/delivery/api/middleware"
	"jobhub/internal/delivery/api/router/handler"
	"jobhub/internal/domain/repository"
	"jobhub/internal/infra/auth"
	logs "jobhub/internal/infra/log"
	"jobhub/internal/infra/persistence/postgres"
	"jobhub/internal/infra/persistence/redisstore"
	"jobhub/internal/infra/pubsub"
	"jobhub/internal/infra/storage"
	"jobhub/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			postgres.RegisterMigrations,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			redisstore.NewClient,
			storage.NewFileStorage,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCompanyRepository,
			postgres.NewJobRepository,
			postgres.NewApplicationRepository,
			postgres.NewTransactionManager,
			newRefreshSessionRepository,
		),
	)
}

// newRefreshSessionRepository selects the refresh session backend from auth.sessionStore.
func newRefreshSessionRepository(cfg *config.Config, db *gorm.DB, client *redis.Client) (repository.RefreshSessionRepository, error) {
	if cfg.Auth.SessionStore != config.SessionStoreRedis {
		return postgres.NewRefreshSessionRepository(db), nil
	}
	if client == nil {
		return nil, errors.New("auth.sessionStore is redis but redis.addr is not configured")
	}

	return redisstore.NewRefreshSessionStore(client, cfg.Redis.KeyPrefix), nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewCompanyService,
			impl.NewJobService,
			impl.NewApplicationService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewCompanyHandler,
			handler.NewJobHandler,
			handler.NewApplicationHandler,
			handler.NewAdminHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
