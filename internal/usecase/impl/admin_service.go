package impl

import (
	"context"
	"log/slog"

	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/policy"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo repository.UserRepository
	jobRepo  repository.JobRepository
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	JobRepo  repository.JobRepository
	Sessions usecase.SessionUsecase
	Logger   *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo: params.UserRepo,
		jobRepo:  params.JobRepo,
		sessions: params.Sessions,
		logger:   params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) ListUsers(ctx context.Context, principal *entity.User) ([]*entity.User, error) {
	if err := policy.Authorize(principal, policy.ActionAdmin, entity.OwnershipChain{}); err != nil {
		return nil, errors.WithStack(err)
	}

	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// DeleteUser removes a user with everything it owns, revoking its session first.
func (srv *adminService) DeleteUser(ctx context.Context, principal *entity.User, userID uuid.UUID) error {
	if err := policy.Authorize(principal, policy.ActionAdmin, entity.OwnershipChain{}); err != nil {
		return errors.WithStack(err)
	}

	if _, err := srv.userRepo.FindByID(ctx, userID); err != nil {
		return translateRepoError(err, "failed to find user")
	}

	if err := deleteUser(ctx, srv.userRepo, srv.sessions, userID); err != nil {
		return err
	}
	srv.log(ctx).Info("User deleted by admin", slog.Any("user_id", userID), slog.Any("admin_id", principal.ID))

	return nil
}

// DeleteJob removes any job and its applications.
func (srv *adminService) DeleteJob(ctx context.Context, principal *entity.User, jobID uuid.UUID) error {
	if err := policy.Authorize(principal, policy.ActionAdmin, entity.OwnershipChain{}); err != nil {
		return errors.WithStack(err)
	}

	if err := srv.jobRepo.Delete(ctx, jobID); err != nil {
		return translateRepoError(err, "failed to delete job")
	}
	srv.log(ctx).Info("Job deleted by admin", slog.Any("job_id", jobID), slog.Any("admin_id", principal.ID))

	return nil
}
