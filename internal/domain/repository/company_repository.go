package repository

import (
	"context"
	"errors"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCompanyNotFound is returned when a company is not found.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepository defines persistence operations for companies.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, company *entity.Company) error
}
