package pubsub

import (
	"context"
	"log/slog"

	"jobhub/config"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"
	"jobhub/internal/infra/tasks"

	"github.com/hibiken/asynq"
)

// asynqPublisher enqueues events as asynq tasks consumed by the worker.
type asynqPublisher struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewAsynqPublisher creates a publisher backed by the shared Redis.
func NewAsynqPublisher(cfg *config.RedisConfig, logger *slog.Logger) service.EventPublisher {
	return &asynqPublisher{
		client: asynq.NewClient(tasks.RedisOpt(cfg)),
		logger: logger,
	}
}

func (p *asynqPublisher) PublishApplicationEvent(ctx context.Context, event *service.ApplicationEvent) error {
	task, err := tasks.NewApplicationSubmittedTask(event)
	if err != nil {
		return err
	}

	info, err := p.client.EnqueueContext(ctx, task)
	if err != nil {
		return errors.Wrap(err, "failed to enqueue application event")
	}

	p.logger.InfoContext(ctx, "[Asynq] Event enqueued",
		slog.String("application_id", event.ApplicationID),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue),
	)

	return nil
}

func (p *asynqPublisher) Close() error {
	return errors.WithStack(p.client.Close())
}
