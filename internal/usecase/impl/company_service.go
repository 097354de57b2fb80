package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/policy"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// companyService implements the CompanyUsecase interface.
type companyService struct {
	txManager   repository.TransactionManager
	companyRepo repository.CompanyRepository
	logger      *slog.Logger
}

// CompanyServiceParams holds dependencies for CompanyService, injected by Fx.
type CompanyServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	CompanyRepo repository.CompanyRepository
	Logger      *slog.Logger
}

// NewCompanyService is the constructor for companyService.
func NewCompanyService(params CompanyServiceParams) usecase.CompanyUsecase {
	return &companyService{
		txManager:   params.TxManager,
		companyRepo: params.CompanyRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *companyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create registers a company owned by the principal.
func (srv *companyService) Create(ctx context.Context, principal *entity.User, input *usecase.CreateCompanyInput) (*entity.Company, error) {
	if err := policy.Authorize(principal, policy.ActionCreateCompany, entity.OwnershipChain{}); err != nil {
		return nil, errors.WithStack(err)
	}

	company := &entity.Company{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Website:     input.Website,
		OwnerID:     principal.ID,
	}
	if err := srv.companyRepo.Create(ctx, company); err != nil {
		return nil, translateRepoError(err, "failed to create company")
	}
	company.Owner = principal
	srv.log(ctx).Info("Company created", slog.Any("company_id", company.ID), slog.Any("owner_id", principal.ID))

	return company, nil
}

// List returns every company.
func (srv *companyService) List(ctx context.Context) ([]*entity.Company, error) {
	companies, err := srv.companyRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list companies")
	}

	return companies, nil
}

// Get returns a single company.
func (srv *companyService) Get(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := srv.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, "failed to find company")
	}

	return company, nil
}

// Update applies a partial update. Only the owner or an admin may change a company.
func (srv *companyService) Update(ctx context.Context, principal *entity.User, id uuid.UUID, input *usecase.UpdateCompanyInput) (*entity.Company, error) {
	var updated *entity.Company

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		chain, err := resolverFor(repoFactory).CompanyChain(ctx, id)
		if err != nil {
			return err
		}
		if err := policy.Authorize(principal, policy.ActionUpdateCompany, chain); err != nil {
			return errors.WithStack(err)
		}

		companyRepo := repoFactory.CompanyRepo()
		company, err := companyRepo.FindByID(ctx, id)
		if err != nil {
			return translateRepoError(err, "failed to load company")
		}

		if input.Name != nil {
			company.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			company.Description = *input.Description
		}
		if input.Website != nil {
			company.Website = *input.Website
		}

		if err := companyRepo.Update(ctx, company); err != nil {
			return translateRepoError(err, "failed to update company")
		}
		updated = company

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Company update rejected", slog.Any("company_id", id), slog.Any("user_id", principal.ID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Company updated", slog.Any("company_id", id), slog.Any("user_id", principal.ID))

	return updated, nil
}
