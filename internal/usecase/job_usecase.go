package usecase

import (
	"context"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateJobInput defines the data required to post a job under a company.
type CreateJobInput struct {
	CompanyID    uuid.UUID
	Title        string
	Description  string
	Requirements string
	Location     string
	Salary       *float64
}

// UpdateJobInput is a partial job update; nil fields are left unchanged.
type UpdateJobInput struct {
	Title        *string
	Description  *string
	Requirements *string
	Location     *string
	Salary       *float64
}

// SearchJobsInput filters job listings. Page is zero based; a non-positive Size
// selects the configured default.
type SearchJobsInput struct {
	Keyword string
	Page    int
	Size    int
}

// JobUsecase defines job operations.
type JobUsecase interface {
	Create(ctx context.Context, principal *entity.User, input *CreateJobInput) (*entity.Job, error)
	Search(ctx context.Context, input *SearchJobsInput) (*entity.JobPage, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Job, error)
	Update(ctx context.Context, principal *entity.User, id uuid.UUID, input *UpdateJobInput) (*entity.Job, error)
	Delete(ctx context.Context, principal *entity.User, id uuid.UUID) error
}
