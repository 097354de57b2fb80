package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"jobhub/config"
	"jobhub/internal/delivery"
	"jobhub/internal/delivery/worker/handler"
	"jobhub/internal/errors"
	"jobhub/internal/infra/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

const defaultConcurrency = 5

type taskServer struct {
	logger    *slog.Logger
	server    *asynq.Server
	mux       *asynq.ServeMux
	scheduler *asynq.Scheduler
}

// TaskServerParams holds dependencies for the asynq task server
type TaskServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	TaskHandler *handler.TaskHandler
}

// NewTaskServer creates the asynq consumer and the scheduler of periodic tasks.
func NewTaskServer(params TaskServerParams) (delivery.Delivery, error) {
	if params.Cfg.Redis == nil || params.Cfg.Redis.Addr == "" {
		return nil, errors.New("redis.addr is required for the task server")
	}

	redisOpt := tasks.RedisOpt(params.Cfg.Redis)

	concurrency := params.Cfg.Worker.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			tasks.QueueDefault: 1,
		},
		Logger:   newAsynqLogger(params.Logger),
		LogLevel: asynq.InfoLevel,
	})

	mux := asynq.NewServeMux()
	params.TaskHandler.Register(mux)

	var scheduler *asynq.Scheduler
	if spec := params.Cfg.Worker.SessionSweepCron; spec != "" {
		scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			Location: time.UTC,
			Logger:   newAsynqLogger(params.Logger),
		})
		if _, err := scheduler.Register(spec, tasks.NewSessionSweepTask()); err != nil {
			return nil, errors.Wrapf(err, "failed to schedule session sweep %q", spec)
		}
	}

	srv := &taskServer{
		logger:    params.Logger,
		server:    server,
		mux:       mux,
		scheduler: scheduler,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts consuming tasks and, when configured, the scheduler.
func (s *taskServer) Serve(ctx context.Context) error {
	if s.scheduler != nil {
		if err := s.scheduler.Start(); err != nil {
			return errors.Wrap(err, "failed to start scheduler")
		}
	}

	s.logger.Info("Starting asynq task server")
	if err := s.server.Start(s.mux); err != nil {
		return errors.Wrap(err, "failed to start task server")
	}

	return nil
}

func (s *taskServer) stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Shutting down asynq task server")

	if s.scheduler != nil {
		s.scheduler.Shutdown()
	}
	s.server.Shutdown()

	return nil
}

// asynqLogger routes asynq's internal logs to slog.
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.With(slog.String("component", "asynq"))}
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error(fmt.Sprint(args...)) }

// Fatal exits the process as asynq expects.
func (l *asynqLogger) Fatal(args ...any) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
