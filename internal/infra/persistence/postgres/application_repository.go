package postgres

import (
	"context"
	"time"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/errors"
	"jobhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const applicationJobUserConstraint = "uq_job_applications_job_user"

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository is the constructor for applicationRepository.
func NewApplicationRepository(db *gorm.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

func (repo *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error) {
	var applicationM model.JobApplicationModel
	err := repo.db.WithContext(ctx).
		Preload("Job.Company").
		Preload("Applicant").
		Where("id = ?", id).
		First(&applicationM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrApplicationNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find application by id")
	}

	return toApplicationDomain(&applicationM), nil
}

func (repo *applicationRepository) ExistsByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.JobApplicationModel{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	if err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check application")
	}

	return count > 0, nil
}

func (repo *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	return repo.list(ctx, "job_id = ?", jobID)
}

func (repo *applicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.JobApplication, error) {
	return repo.list(ctx, "user_id = ?", userID)
}

func (repo *applicationRepository) list(ctx context.Context, cond string, arg uuid.UUID) ([]*entity.JobApplication, error) {
	var applicationMs []*model.JobApplicationModel
	err := repo.db.WithContext(ctx).
		Preload("Job.Company").
		Preload("Applicant").
		Where(cond, arg).
		Order("applied_at DESC").
		Find(&applicationMs).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list applications")
	}

	applications := make([]*entity.JobApplication, 0, len(applicationMs))
	for _, applicationM := range applicationMs {
		applications = append(applications, toApplicationDomain(applicationM))
	}

	return applications, nil
}

// Create inserts the application. The unique (job_id, user_id) index closes the race
// between two concurrent applications of the same user.
func (repo *applicationRepository) Create(ctx context.Context, application *entity.JobApplication) error {
	if application.ID == uuid.Nil {
		application.ID = uuid.New()
	}
	if application.AppliedAt.IsZero() {
		application.AppliedAt = time.Now().UTC()
	}
	applicationM := fromApplicationDomain(application)

	if err := repo.db.WithContext(ctx).Omit("Job", "Applicant").Create(applicationM).Error; err != nil {
		if isConstraintViolationOn(err, applicationJobUserConstraint) {
			return repository.ErrDuplicateApplication
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrJobNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create application")
	}

	return nil
}

func toApplicationDomain(data *model.JobApplicationModel) *entity.JobApplication {
	if data == nil {
		return nil
	}

	return &entity.JobApplication{
		ID:        data.ID,
		JobID:     data.JobID,
		UserID:    data.UserID,
		Message:   data.Message,
		ResumeURL: data.ResumeURL,
		AppliedAt: data.AppliedAt,
		Job:       toJobDomain(data.Job),
		Applicant: toUserDomain(data.Applicant),
	}
}

func fromApplicationDomain(data *entity.JobApplication) *model.JobApplicationModel {
	return &model.JobApplicationModel{
		ID:        data.ID,
		JobID:     data.JobID,
		UserID:    data.UserID,
		Message:   data.Message,
		ResumeURL: data.ResumeURL,
		AppliedAt: data.AppliedAt,
	}
}
