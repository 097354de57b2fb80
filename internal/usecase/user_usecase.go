package usecase

import (
	"context"

	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/service"
)

// UpdateProfileInput is a partial profile update; nil fields are left unchanged.
type UpdateProfileInput struct {
	Name  *string
	Email *string
}

// UploadRequestInput describes a file the client wants to upload directly to storage.
type UploadRequestInput struct {
	FileName    string
	ContentType string
}

// UserUsecase defines the profile operations of the authenticated principal.
type UserUsecase interface {
	GetCurrentUser(ctx context.Context, principal *entity.User) (*entity.User, error)
	UpdateProfile(ctx context.Context, principal *entity.User, input *UpdateProfileInput) (*entity.User, error)

	RequestProfilePictureUpload(ctx context.Context, principal *entity.User, input *UploadRequestInput) (*service.PresignedUpload, error)
	RequestResumeUpload(ctx context.Context, principal *entity.User, input *UploadRequestInput) (*service.PresignedUpload, error)
	UpdateProfilePicture(ctx context.Context, principal *entity.User, fileURL string) (*entity.User, error)
	UpdateResume(ctx context.Context, principal *entity.User, fileURL string) (*entity.User, error)

	// DeleteAccount revokes the principal's session and removes the user with everything it owns.
	DeleteAccount(ctx context.Context, principal *entity.User) error
}
