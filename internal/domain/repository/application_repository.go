package repository

import (
	"context"
	"errors"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrApplicationNotFound is returned when an application is not found.
	ErrApplicationNotFound = errors.New("application not found")
	// ErrDuplicateApplication is returned when the unique (job, user) constraint rejects an insert.
	ErrDuplicateApplication = errors.New("application already exists for job and user")
)

// ApplicationRepository defines persistence operations for job applications.
type ApplicationRepository interface {
	// FindByID returns the application with its job and applicant loaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JobApplication, error)

	ExistsByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (bool, error)

	// ListByJob returns the applications of a job with applicants loaded, newest first.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.JobApplication, error)

	// ListByUser returns a user's applications with jobs loaded, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.JobApplication, error)

	// Create inserts the application or returns ErrDuplicateApplication.
	Create(ctx context.Context, application *entity.JobApplication) error
}
