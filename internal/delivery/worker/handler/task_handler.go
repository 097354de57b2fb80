package handler

import (
	"context"
	"log/slog"

	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/errors"
	"jobhub/internal/infra/tasks"
	"jobhub/internal/usecase"

	"github.com/hibiken/asynq"
	"go.uber.org/fx"
)

// TaskHandler processes asynq tasks.
type TaskHandler struct {
	logger      *slog.Logger
	maintenance usecase.MaintenanceUsecase
}

// TaskHandlerParams holds dependencies for the TaskHandler
type TaskHandlerParams struct {
	fx.In

	Logger      *slog.Logger
	Maintenance usecase.MaintenanceUsecase
}

// NewTaskHandler creates the asynq task handler.
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		logger:      params.Logger,
		maintenance: params.Maintenance,
	}
}

// Register binds every task type to its handler.
func (h *TaskHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(tasks.TypeApplicationSubmitted, h.HandleApplicationSubmitted)
	mux.HandleFunc(tasks.TypeSessionSweep, h.HandleSessionSweep)
}

// HandleApplicationSubmitted notifies the company owner about a new application.
func (h *TaskHandler) HandleApplicationSubmitted(ctx context.Context, task *asynq.Task) error {
	event, err := tasks.ParseApplicationSubmitted(task)
	if err != nil {
		return errors.Wrap(asynq.SkipRetry, err.Error())
	}

	requestID := event.RequestID
	if requestID == "" {
		requestID, _ = asynq.GetTaskID(ctx)
	}
	logger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, logger)

	if err := h.maintenance.HandleApplicationSubmitted(ctx, event); err != nil {
		if !isRetryable(err) {
			logger.Warn("[Worker] Dropping application event", slog.Any("error", err))

			return errors.Wrap(asynq.SkipRetry, err.Error())
		}

		return errors.WithStack(err)
	}

	return nil
}

// HandleSessionSweep removes expired refresh sessions.
func (h *TaskHandler) HandleSessionSweep(ctx context.Context, _ *asynq.Task) error {
	removed, err := h.maintenance.SweepExpiredSessions(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	h.logger.InfoContext(ctx, "[Worker] Expired sessions swept", slog.Int64("removed", removed))

	return nil
}
