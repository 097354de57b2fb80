// Package tasks defines the asynq task types shared by the API and the worker.
package tasks

import (
	"encoding/json"
	"time"

	"jobhub/config"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"

	"github.com/hibiken/asynq"
)

// Task types.
const (
	TypeApplicationSubmitted = service.EventTypeApplicationSubmitted
	TypeSessionSweep         = "session.sweep"
)

// QueueDefault is the only queue the worker consumes.
const QueueDefault = "default"

const (
	applicationMaxRetry = 5
	sweepTimeout        = time.Minute
)

// RedisOpt builds the asynq connection from the shared Redis settings.
func RedisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewApplicationSubmittedTask wraps an application event into a task.
func NewApplicationSubmittedTask(event *service.ApplicationEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode application event")
	}

	return asynq.NewTask(TypeApplicationSubmitted, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(applicationMaxRetry),
	), nil
}

// ParseApplicationSubmitted decodes the task payload.
func ParseApplicationSubmitted(task *asynq.Task) (*service.ApplicationEvent, error) {
	var event service.ApplicationEvent
	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return nil, errors.Wrap(err, "failed to decode application event")
	}

	return &event, nil
}

// NewSessionSweepTask builds the periodic expired-session cleanup task.
func NewSessionSweepTask() *asynq.Task {
	return asynq.NewTask(TypeSessionSweep, nil,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(0),
		asynq.Timeout(sweepTimeout),
	)
}
