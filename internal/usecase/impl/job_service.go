package impl

import (
	"context"
	"log/slog"
	"strings"

	"jobhub/config"
	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/policy"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultJobPageSize = 10
	maxJobPageSize     = 100
)

// jobService implements the JobUsecase interface.
type jobService struct {
	txManager       repository.TransactionManager
	jobRepo         repository.JobRepository
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// JobServiceParams holds dependencies for JobService, injected by Fx.
type JobServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	JobRepo   repository.JobRepository
	Config    *config.Config
	Logger    *slog.Logger
}

// NewJobService is the constructor for jobService.
func NewJobService(params JobServiceParams) usecase.JobUsecase {
	srv := &jobService{
		txManager:       params.TxManager,
		jobRepo:         params.JobRepo,
		defaultPageSize: defaultJobPageSize,
		maxPageSize:     maxJobPageSize,
		logger:          params.Logger,
	}
	if params.Config != nil && params.Config.Jobs != nil {
		if params.Config.Jobs.DefaultPageSize > 0 {
			srv.defaultPageSize = params.Config.Jobs.DefaultPageSize
		}
		if params.Config.Jobs.MaxPageSize > 0 {
			srv.maxPageSize = params.Config.Jobs.MaxPageSize
		}
	}

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *jobService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create posts a job under a company the principal owns.
func (srv *jobService) Create(ctx context.Context, principal *entity.User, input *usecase.CreateJobInput) (*entity.Job, error) {
	var created *entity.Job

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chain, err := resolverFor(repoFactory).CompanyChain(ctx, input.CompanyID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(principal, policy.ActionCreateJob, chain); err != nil {
			return errors.WithStack(err)
		}

		job := &entity.Job{
			Title:        strings.TrimSpace(input.Title),
			Description:  input.Description,
			Requirements: input.Requirements,
			Location:     input.Location,
			Salary:       input.Salary,
			CompanyID:    input.CompanyID,
		}
		if err := repoFactory.JobRepo().Create(ctx, job); err != nil {
			return translateRepoError(err, "failed to create job")
		}
		created = job

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Job creation rejected", slog.Any("company_id", input.CompanyID), slog.Any("user_id", principal.ID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Job created", slog.Any("job_id", created.ID), slog.Any("company_id", created.CompanyID))

	return created, nil
}

// Search pages through jobs matching the keyword, newest first.
func (srv *jobService) Search(ctx context.Context, input *usecase.SearchJobsInput) (*entity.JobPage, error) {
	criteria := entity.JobSearchCriteria{
		Keyword: strings.TrimSpace(input.Keyword),
		Page:    max(input.Page, 0),
		Size:    input.Size,
	}
	if criteria.Size <= 0 {
		criteria.Size = srv.defaultPageSize
	}
	criteria.Size = min(criteria.Size, srv.maxPageSize)

	page, err := srv.jobRepo.Search(ctx, criteria)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search jobs")
	}

	return page, nil
}

// Get returns a single job with its company.
func (srv *jobService) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := srv.jobRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "failed to find job")
	}

	return job, nil
}

// Update applies a partial update. Only the company owner or an admin may change a job.
func (srv *jobService) Update(ctx context.Context, principal *entity.User, id uuid.UUID, input *usecase.UpdateJobInput) (*entity.Job, error) {
	var updated *entity.Job

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chain, err := resolverFor(repoFactory).JobChain(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.Authorize(principal, policy.ActionUpdateJob, chain); err != nil {
			return errors.WithStack(err)
		}

		jobRepo := repoFactory.JobRepo()
		job, err := jobRepo.FindByID(ctx, id)
		if err != nil {
			return translateRepoError(err, "failed to load job")
		}
		applyJobUpdate(job, input)

		if err := jobRepo.Update(ctx, job); err != nil {
			return translateRepoError(err, "failed to update job")
		}
		updated = job

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Job update rejected", slog.Any("job_id", id), slog.Any("user_id", principal.ID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Job updated", slog.Any("job_id", id), slog.Any("user_id", principal.ID))

	return updated, nil
}

func applyJobUpdate(job *entity.Job, input *usecase.UpdateJobInput) {
	if input.Title != nil {
		job.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Requirements != nil {
		job.Requirements = *input.Requirements
	}
	if input.Location != nil {
		job.Location = *input.Location
	}
	if input.Salary != nil {
		job.Salary = input.Salary
	}
}

// Delete removes a job and its applications. Only the company owner or an admin may delete a job.
func (srv *jobService) Delete(ctx context.Context, principal *entity.User, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chain, err := resolverFor(repoFactory).JobChain(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.Authorize(principal, policy.ActionDeleteJob, chain); err != nil {
			return errors.WithStack(err)
		}

		if err := repoFactory.JobRepo().Delete(ctx, id); err != nil {
			return translateRepoError(err, "failed to delete job")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Job deletion rejected", slog.Any("job_id", id), slog.Any("user_id", principal.ID), slog.Any("error", err))

		return err
	}
	srv.log(ctx).Info("Job deleted", slog.Any("job_id", id), slog.Any("user_id", principal.ID))

	return nil
}
