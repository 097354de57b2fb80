package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	sessions    usecase.SessionUsecase
	fileStorage service.FileStorage
	logger      *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	Sessions    usecase.SessionUsecase
	FileStorage service.FileStorage
	Logger      *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		sessions:    params.Sessions,
		fileStorage: params.FileStorage,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCurrentUser reloads the principal from the store.
func (srv *userService) GetCurrentUser(ctx context.Context, principal *entity.User) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, principal.ID)
	if err != nil {
		return nil, translateRepoError(err, "failed to load current user")
	}

	return user, nil
}

// UpdateProfile changes name and email. A changed email must not belong to another user.
func (srv *userService) UpdateProfile(ctx context.Context, principal *entity.User, input *usecase.UpdateProfileInput) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, principal.ID)
		if err != nil {
			return translateRepoError(err, "failed to load user")
		}

		if input.Name != nil {
			user.Name = strings.TrimSpace(*input.Name)
		}

		if input.Email != nil {
			email := entity.NormalizeEmail(*input.Email)
			if email != user.Email {
				exists, err := userRepo.ExistsByEmail(ctx, email)
				if err != nil {
					return errors.Wrap(err, "failed to check email")
				}
				if exists {
					return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email belongs to another user")
				}
				user.Email = email
			}
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return translateRepoError(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update profile", slog.Any("user_id", principal.ID), slog.Any("error", err))

		return nil, err
	}
	srv.log(ctx).Info("Profile updated", slog.Any("user_id", principal.ID))

	return updated, nil
}

// RequestProfilePictureUpload presigns an upload into the profile picture folder.
func (srv *userService) RequestProfilePictureUpload(ctx context.Context, principal *entity.User, input *usecase.UploadRequestInput) (*service.PresignedUpload, error) {
	return srv.presign(ctx, principal, service.FolderProfilePictures, input)
}

// RequestResumeUpload presigns an upload into the resume folder.
func (srv *userService) RequestResumeUpload(ctx context.Context, principal *entity.User, input *usecase.UploadRequestInput) (*service.PresignedUpload, error) {
	return srv.presign(ctx, principal, service.FolderResumes, input)
}

func (srv *userService) presign(ctx context.Context, principal *entity.User, folder string, input *usecase.UploadRequestInput) (*service.PresignedUpload, error) {
	if strings.TrimSpace(input.FileName) == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed.WithDetails("fileName is required"), "missing file name")
	}

	upload, err := srv.fileStorage.PresignUpload(ctx, service.ObjectKey(folder, input.FileName), input.ContentType)
	if err != nil {
		srv.log(ctx).Error("Failed to presign upload", slog.Any("user_id", principal.ID), slog.String("folder", folder), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to presign upload")
	}
	srv.log(ctx).Debug("Upload presigned", slog.Any("user_id", principal.ID), slog.String("key", upload.Key))

	return upload, nil
}

// UpdateProfilePicture stores the URL of an uploaded profile picture.
func (srv *userService) UpdateProfilePicture(ctx context.Context, principal *entity.User, fileURL string) (*entity.User, error) {
	return srv.updateFileURL(ctx, principal, func(user *entity.User) { user.ProfilePictureURL = fileURL })
}

// UpdateResume stores the URL of an uploaded resume.
func (srv *userService) UpdateResume(ctx context.Context, principal *entity.User, fileURL string) (*entity.User, error) {
	return srv.updateFileURL(ctx, principal, func(user *entity.User) { user.ResumeURL = fileURL })
}

func (srv *userService) updateFileURL(ctx context.Context, principal *entity.User, apply func(*entity.User)) (*entity.User, error) {
	var updated *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, principal.ID)
		if err != nil {
			return translateRepoError(err, "failed to load user")
		}

		apply(user)
		if err := userRepo.Update(ctx, user); err != nil {
			return translateRepoError(err, "failed to update user")
		}
		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteAccount removes the principal. The session goes first because it may live outside the database.
func (srv *userService) DeleteAccount(ctx context.Context, principal *entity.User) error {
	return deleteUser(ctx, srv.userRepo, srv.sessions, principal.ID)
}

func deleteUser(ctx context.Context, userRepo repository.UserRepository, sessions usecase.SessionUsecase, userID uuid.UUID) error {
	if err := sessions.RevokeAllSessions(ctx, userID); err != nil {
		return err
	}

	if err := userRepo.Delete(ctx, userID); err != nil {
		return translateRepoError(err, "failed to delete user")
	}

	return nil
}
