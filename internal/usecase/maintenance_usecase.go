package usecase

import (
	"context"

	"jobhub/internal/domain/service"
)

// MaintenanceUsecase defines the background work run by the worker process.
type MaintenanceUsecase interface {
	SweepExpiredSessions(ctx context.Context) (int64, error)

	// HandleApplicationSubmitted notifies the owner of the job's company about a new application.
	HandleApplicationSubmitted(ctx context.Context, event *service.ApplicationEvent) error
}
