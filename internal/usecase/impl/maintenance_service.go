package impl

import (
	"context"
	"log/slog"

	deliverycontext "jobhub/internal/delivery/context"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// maintenanceService implements the MaintenanceUsecase interface.
type maintenanceService struct {
	sessions usecase.SessionUsecase
	userRepo repository.UserRepository
	resolver *ownershipResolver
	logger   *slog.Logger
}

// MaintenanceServiceParams holds dependencies for MaintenanceService, injected by Fx.
type MaintenanceServiceParams struct {
	fx.In

	Sessions        usecase.SessionUsecase
	UserRepo        repository.UserRepository
	CompanyRepo     repository.CompanyRepository
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Logger          *slog.Logger
}

// NewMaintenanceService is the constructor for maintenanceService.
func NewMaintenanceService(params MaintenanceServiceParams) usecase.MaintenanceUsecase {
	return &maintenanceService{
		sessions: params.Sessions,
		userRepo: params.UserRepo,
		resolver: newOwnershipResolver(params.CompanyRepo, params.JobRepo, params.ApplicationRepo),
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *maintenanceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *maintenanceService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	return srv.sessions.SweepExpiredSessions(ctx)
}

// HandleApplicationSubmitted resolves the company owner of the job and records the notification.
// Events for jobs deleted in the meantime are dropped.
func (srv *maintenanceService) HandleApplicationSubmitted(ctx context.Context, event *service.ApplicationEvent) error {
	jobID, err := uuid.Parse(event.JobID)
	if err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("invalid job_id"), err.Error())
	}

	logger := srv.log(ctx).With(
		slog.String("event_request_id", event.RequestID),
		slog.String("application_id", event.ApplicationID),
		slog.Any("job_id", jobID),
	)

	chain, err := srv.resolver.JobChain(ctx, jobID)
	if err != nil {
		if domainerrors.KindOf(err) == domainerrors.KindNotFound {
			logger.Warn("Dropping application event for missing job", slog.Any("error", err))

			return nil
		}

		return err
	}

	owner, err := srv.userRepo.FindByID(ctx, chain.CompanyOwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logger.Warn("Dropping application event for missing company owner", slog.Any("owner_id", chain.CompanyOwnerID))

			return nil
		}

		return errors.Wrap(err, "failed to load company owner")
	}

	logger.Info("Notifying company owner of new application",
		slog.Any("company_id", chain.CompanyID),
		slog.Any("owner_id", owner.ID),
		slog.String("owner_email", owner.Email),
		slog.String("applicant_id", event.ApplicantID),
	)

	return nil
}
