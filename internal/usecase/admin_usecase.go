package usecase

import (
	"context"

	"jobhub/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase defines platform administration. Every operation requires the ADMIN role.
type AdminUsecase interface {
	ListUsers(ctx context.Context, principal *entity.User) ([]*entity.User, error)
	DeleteUser(ctx context.Context, principal *entity.User, userID uuid.UUID) error
	DeleteJob(ctx context.Context, principal *entity.User, jobID uuid.UUID) error
}
