package usecase

import (
	"context"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCompanyInput defines the data required to create a company.
type CreateCompanyInput struct {
	Name        string
	Description string
	Website     string
}

// UpdateCompanyInput is a partial company update; nil fields are left unchanged.
type UpdateCompanyInput struct {
	Name        *string
	Description *string
	Website     *string
}

// CompanyUsecase defines company operations.
type CompanyUsecase interface {
	Create(ctx context.Context, principal *entity.User, input *CreateCompanyInput) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	Update(ctx context.Context, principal *entity.User, id uuid.UUID, input *UpdateCompanyInput) (*entity.Company, error)
}
