package repository

import (
	"context"
	"errors"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrJobNotFound is returned when a job is not found.
var ErrJobNotFound = errors.New("job not found")

// JobRepository defines persistence operations for jobs.
type JobRepository interface {
	// FindByID returns the job with its company loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)

	// Search matches the keyword case-insensitively against title, description and location,
	// newest first. An empty keyword matches every job.
	Search(ctx context.Context, criteria entity.JobSearchCriteria) (*entity.JobPage, error)

	Create(ctx context.Context, job *entity.Job) error
	Update(ctx context.Context, job *entity.Job) error

	// Delete removes the job and its applications.
	Delete(ctx context.Context, id uuid.UUID) error
}
