package postgres

import (
	"context"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"
	"jobhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository is the constructor for companyRepository.
func NewCompanyRepository(db *gorm.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

func (repo *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var companyM model.CompanyModel
	err := repo.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&companyM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCompanyNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find company by id")
	}

	return toCompanyDomain(&companyM), nil
}

func (repo *companyRepository) List(ctx context.Context) ([]*entity.Company, error) {
	var companyMs []*model.CompanyModel
	if err := repo.db.WithContext(ctx).Preload("Owner").Order("created_at DESC").Find(&companyMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list companies")
	}

	companies := make([]*entity.Company, 0, len(companyMs))
	for _, companyM := range companyMs {
		companies = append(companies, toCompanyDomain(companyM))
	}

	return companies, nil
}

func (repo *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	companyM := fromCompanyDomain(company)

	if err := repo.db.WithContext(ctx).Omit("Owner").Create(companyM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create company")
	}
	company.CreatedAt = companyM.CreatedAt

	return nil
}

// Update writes the descriptive fields. Ownership never changes.
func (repo *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	result := repo.db.WithContext(ctx).Model(&model.CompanyModel{}).Where("id = ?", company.ID).Updates(map[string]any{
		"name":        company.Name,
		"description": company.Description,
		"website":     company.Website,
	})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update company")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCompanyNotFound
	}

	return nil
}

func toCompanyDomain(data *model.CompanyModel) *entity.Company {
	if data == nil {
		return nil
	}

	return &entity.Company{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Website:     data.Website,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		Owner:       toUserDomain(data.Owner),
	}
}

func fromCompanyDomain(data *entity.Company) *model.CompanyModel {
	return &model.CompanyModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Website:     data.Website,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
	}
}
