package postgres

import (
	"context"
	"strings"
	"time"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"
	"jobhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository is the constructor for jobRepository.
func NewJobRepository(db *gorm.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

func (repo *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var jobM model.JobModel
	err := repo.db.WithContext(ctx).
		Preload("Company").
		Where("id = ?", id).
		First(&jobM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJobNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find job by id")
	}

	return toJobDomain(&jobM), nil
}

func (repo *jobRepository) Search(ctx context.Context, criteria entity.JobSearchCriteria) (*entity.JobPage, error) {
	query := repo.db.WithContext(ctx).Model(&model.JobModel{})
	if keyword := strings.TrimSpace(criteria.Keyword); keyword != "" {
		pattern := "%" + escapeLike(keyword) + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR location ILIKE ?", pattern, pattern, pattern)
	}
	// Count and Find share the filter, so the chain must be reusable.
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to count jobs")
	}

	var jobMs []*model.JobModel
	err := query.
		Preload("Company").
		Order("posted_at DESC").
		Offset(criteria.Offset()).
		Limit(criteria.Size).
		Find(&jobMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to search jobs")
	}

	jobs := make([]*entity.Job, 0, len(jobMs))
	for _, jobM := range jobMs {
		jobs = append(jobs, toJobDomain(jobM))
	}

	return &entity.JobPage{
		Jobs:       jobs,
		Page:       criteria.Page,
		Size:       criteria.Size,
		TotalItems: total,
	}, nil
}

func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.PostedAt.IsZero() {
		job.PostedAt = time.Now().UTC()
	}
	jobM := fromJobDomain(job)

	if err := repo.db.WithContext(ctx).Omit("Company").Create(jobM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCompanyNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create job")
	}

	return nil
}

// Update writes the descriptive fields. The owning company never changes.
func (repo *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	result := repo.db.WithContext(ctx).Model(&model.JobModel{}).Where("id = ?", job.ID).Updates(map[string]any{
		"title":        job.Title,
		"description":  job.Description,
		"requirements": job.Requirements,
		"location":     job.Location,
		"salary":       job.Salary,
	})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update job")
	}
	if result.RowsAffected == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

// Delete relies on ON DELETE CASCADE to remove the job's applications.
func (repo *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.JobModel{})
	if err := result.Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete job")
	}
	if result.RowsAffected == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

// escapeLike escapes LIKE wildcards so the keyword matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toJobDomain(data *model.JobModel) *entity.Job {
	if data == nil {
		return nil
	}

	return &entity.Job{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		Requirements: data.Requirements,
		Location:     data.Location,
		Salary:       data.Salary,
		CompanyID:    data.CompanyID,
		PostedAt:     data.PostedAt,
		Company:      toCompanyDomain(data.Company),
	}
}

func fromJobDomain(data *entity.Job) *model.JobModel {
	return &model.JobModel{
		ID:           data.ID,
		Title:        data.Title,
		Description:  data.Description,
		Requirements: data.Requirements,
		Location:     data.Location,
		Salary:       data.Salary,
		CompanyID:    data.CompanyID,
		PostedAt:     data.PostedAt,
	}
}
