package usecase

import (
	"context"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ApplyInput defines an application to a job. UseStoredResume defaults to true;
// when false ResumeURL is required.
type ApplyInput struct {
	Message         string
	UseStoredResume *bool
	ResumeURL       string
}

// ApplicationUsecase defines job application operations.
type ApplicationUsecase interface {
	Apply(ctx context.Context, principal *entity.User, jobID uuid.UUID, input *ApplyInput) (*entity.JobApplication, error)
	ListForJob(ctx context.Context, principal *entity.User, jobID uuid.UUID) ([]*entity.JobApplication, error)
	ListMine(ctx context.Context, principal *entity.User) ([]*entity.JobApplication, error)
	Get(ctx context.Context, principal *entity.User, id uuid.UUID) (*entity.JobApplication, error)
}
