package impl

import (
	"context"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"

	"github.com/google/uuid"
)

// ownershipResolver builds ownership chains by explicit lookups, one hop at a time.
// A missing hop is reported as the not-found error of that hop, never as a denial.
type ownershipResolver struct {
	companyRepo     repository.CompanyRepository
	jobRepo         repository.JobRepository
	applicationRepo repository.ApplicationRepository
}

func newOwnershipResolver(
	companyRepo repository.CompanyRepository,
	jobRepo repository.JobRepository,
	applicationRepo repository.ApplicationRepository,
) *ownershipResolver {
	return &ownershipResolver{
		companyRepo:     companyRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
	}
}

// resolverFor returns a resolver whose lookups run inside the factory's transaction.
func resolverFor(repoFactory repository.RepositoryFactory) *ownershipResolver {
	return newOwnershipResolver(repoFactory.CompanyRepo(), repoFactory.JobRepo(), repoFactory.ApplicationRepo())
}

// CompanyChain resolves a company to its owner.
func (r *ownershipResolver) CompanyChain(ctx context.Context, companyID uuid.UUID) (entity.OwnershipChain, error) {
	company, err := r.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return entity.OwnershipChain{}, translateRepoError(err, "failed to resolve company")
	}

	return entity.OwnershipChain{
		ResourceID:     company.ID,
		CompanyID:      company.ID,
		CompanyOwnerID: company.OwnerID,
	}, nil
}

// JobChain resolves a job to its company and the company owner.
func (r *ownershipResolver) JobChain(ctx context.Context, jobID uuid.UUID) (entity.OwnershipChain, error) {
	job, err := r.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		return entity.OwnershipChain{}, translateRepoError(err, "failed to resolve job")
	}

	chain, err := r.CompanyChain(ctx, job.CompanyID)
	if err != nil {
		return entity.OwnershipChain{}, err
	}
	chain.ResourceID = job.ID

	return chain, nil
}

// ApplicationChain resolves an application to its applicant, job, company and company owner.
func (r *ownershipResolver) ApplicationChain(ctx context.Context, applicationID uuid.UUID) (entity.OwnershipChain, error) {
	application, err := r.applicationRepo.FindByID(ctx, applicationID)
	if err != nil {
		return entity.OwnershipChain{}, translateRepoError(err, "failed to resolve application")
	}

	chain, err := r.JobChain(ctx, application.JobID)
	if err != nil {
		return entity.OwnershipChain{}, err
	}
	chain.ResourceID = application.ID
	chain.ApplicantID = application.UserID

	return chain, nil
}

// ApplyChain resolves a job for an apply request and records whether the applicant already applied.
func (r *ownershipResolver) ApplyChain(ctx context.Context, jobID, applicantID uuid.UUID) (entity.OwnershipChain, error) {
	chain, err := r.JobChain(ctx, jobID)
	if err != nil {
		return entity.OwnershipChain{}, err
	}

	applied, err := r.applicationRepo.ExistsByJobAndUser(ctx, jobID, applicantID)
	if err != nil {
		return entity.OwnershipChain{}, errors.Wrap(err, "failed to check existing application")
	}
	chain.AlreadyApplied = applied

	return chain, nil
}

// translateRepoError maps repository sentinels to client-visible errors and wraps everything else.
func translateRepoError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(domainerrors.ErrUserNotFound, message)
	case errors.Is(err, repository.ErrCompanyNotFound):
		return errors.Wrap(domainerrors.ErrCompanyNotFound, message)
	case errors.Is(err, repository.ErrJobNotFound):
		return errors.Wrap(domainerrors.ErrJobNotFound, message)
	case errors.Is(err, repository.ErrApplicationNotFound):
		return errors.Wrap(domainerrors.ErrApplicationNotFound, message)
	case errors.Is(err, repository.ErrEmailTaken):
		return errors.Wrap(domainerrors.ErrEmailAlreadyExists, message)
	case errors.Is(err, repository.ErrDuplicateApplication):
		return errors.Wrap(domainerrors.ErrAlreadyApplied, message)
	default:
		return errors.Wrap(err, message)
	}
}
