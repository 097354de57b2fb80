package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/policy"
	"jobhub/internal/domain/repository"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// applicationService implements the ApplicationUsecase interface.
type applicationService struct {
	applicationRepo repository.ApplicationRepository
	resolver        *ownershipResolver
	publisher       service.EventPublisher
	logger          *slog.Logger
}

// ApplicationServiceParams holds dependencies for ApplicationService, injected by Fx.
type ApplicationServiceParams struct {
	fx.In

	CompanyRepo     repository.CompanyRepository
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Publisher       service.EventPublisher
	Logger          *slog.Logger
}

// NewApplicationService is the constructor for applicationService.
func NewApplicationService(params ApplicationServiceParams) usecase.ApplicationUsecase {
	return &applicationService{
		applicationRepo: params.ApplicationRepo,
		resolver:        newOwnershipResolver(params.CompanyRepo, params.JobRepo, params.ApplicationRepo),
		publisher:       params.Publisher,
		logger:          params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *applicationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Apply submits the principal's application to a job.
//
// The existence check only produces the friendly error early; the unique (job, user) index
// decides between concurrent identical applications.
func (srv *applicationService) Apply(ctx context.Context, principal *entity.User, jobID uuid.UUID, input *usecase.ApplyInput) (*entity.JobApplication, error) {
	chain, err := srv.resolver.ApplyChain(ctx, jobID, principal.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(principal, policy.ActionApplyToJob, chain); err != nil {
		srv.log(ctx).Info("Application rejected", slog.Any("job_id", jobID), slog.Any("user_id", principal.ID), slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	resumeURL, err := resolveResume(principal, input)
	if err != nil {
		return nil, err
	}

	application := &entity.JobApplication{
		JobID:     jobID,
		UserID:    principal.ID,
		Message:   input.Message,
		ResumeURL: resumeURL,
	}
	if err := srv.applicationRepo.Create(ctx, application); err != nil {
		return nil, translateRepoError(err, "failed to create application")
	}
	srv.log(ctx).Info("Application submitted", slog.Any("application_id", application.ID), slog.Any("job_id", jobID), slog.Any("user_id", principal.ID))

	srv.publishSubmitted(ctx, application, chain)

	return application, nil
}

// resolveResume picks the stored resume unless the caller opted out, in which case a URL is required.
func resolveResume(principal *entity.User, input *usecase.ApplyInput) (string, error) {
	useStored := input.UseStoredResume == nil || *input.UseStoredResume
	if useStored {
		if !principal.HasStoredResume() {
			return "", errors.WithStack(domainerrors.ErrNoStoredResume)
		}

		return principal.ResumeURL, nil
	}

	resumeURL := strings.TrimSpace(input.ResumeURL)
	if resumeURL == "" {
		return "", errors.WithStack(domainerrors.ErrResumeURLRequired)
	}

	return resumeURL, nil
}

// publishSubmitted announces the application. A failed publish never fails the request.
func (srv *applicationService) publishSubmitted(ctx context.Context, application *entity.JobApplication, chain entity.OwnershipChain) {
	event := &service.ApplicationEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		ApplicationID: application.ID.String(),
		JobID:         application.JobID.String(),
		CompanyID:     chain.CompanyID.String(),
		ApplicantID:   application.UserID.String(),
		AppliedAt:     application.AppliedAt,
	}

	if err := srv.publisher.PublishApplicationEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish application event", slog.Any("application_id", application.ID), slog.Any("error", err))
	}
}

// ListForJob returns a job's applications to the company owner or an admin.
func (srv *applicationService) ListForJob(ctx context.Context, principal *entity.User, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	chain, err := srv.resolver.JobChain(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(principal, policy.ActionViewJobApplications, chain); err != nil {
		return nil, errors.WithStack(err)
	}

	applications, err := srv.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list job applications")
	}

	return applications, nil
}

// ListMine returns the principal's own applications.
func (srv *applicationService) ListMine(ctx context.Context, principal *entity.User) ([]*entity.JobApplication, error) {
	applications, err := srv.applicationRepo.ListByUser(ctx, principal.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications")
	}

	return applications, nil
}

// Get returns an application to its applicant, the company owner or an admin.
func (srv *applicationService) Get(ctx context.Context, principal *entity.User, id uuid.UUID) (*entity.JobApplication, error) {
	chain, err := srv.resolver.ApplicationChain(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.Authorize(principal, policy.ActionViewApplication, chain); err != nil {
		return nil, errors.WithStack(err)
	}

	application, err := srv.applicationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "failed to find application")
	}

	return application, nil
}
