package main

import (
	"context"
	"log/slog"
	"os"

	"jobhub/config"
	"jobhub/internal/delivery"
	"jobhub/internal/delivery/worker"
	"jobhub/internal/delivery/worker/handler"
	"jobhub/internal/domain/repository"
	"jobhub/internal/infra/auth"
	logs "jobhub/internal/infra/log"
	"jobhub/internal/infra/persistence/postgres"
	"jobhub/internal/infra/persistence/redisstore"
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
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		redisstore.NewClient,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewCompanyRepository,
			postgres.NewJobRepository,
			postgres.NewApplicationRepository,
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
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewSessionService,
			impl.NewMaintenanceService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
			handler.NewTaskHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				newTaskServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// newTaskServer consumes the asynq queue only when Redis is configured.
func newTaskServer(params worker.TaskServerParams) (delivery.Delivery, error) {
	if params.Cfg.Redis == nil || params.Cfg.Redis.Addr == "" {
		params.Logger.Info("Redis not configured, asynq task server disabled")

		return nil, nil //nolint:nilnil // task server is optional
	}

	return worker.NewTaskServer(params)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		if delivery == nil {
			continue
		}

		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
