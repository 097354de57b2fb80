package handler

import (
	"context"
	"net/http"

	"jobhub/internal/delivery/api/response"
	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/service"
	"jobhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UpdateProfileRequest is the body of PUT /api/users/me. Omitted fields are left unchanged.
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// FileUploadRequest asks for a presigned upload URL.
type FileUploadRequest struct {
	FileName    string `json:"fileName" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required"`
}

// FileURLRequest stores the URL of an uploaded file on the profile.
type FileURLRequest struct {
	FileURL string `json:"fileUrl" validate:"required,url"`
}

type (
	presignFunc       func(ctx context.Context, principal *entity.User, input *usecase.UploadRequestInput) (*service.PresignedUpload, error)
	updateFileURLFunc func(ctx context.Context, principal *entity.User, fileURL string) (*entity.User, error)
)

// UserHandler serves the current user's profile endpoints.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// GetProfile returns the current user.
func (h *UserHandler) GetProfile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetCurrentUser(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newUserResponse(user))
}

// UpdateProfile changes the name and email of the current user.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), principal, &usecase.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newUserResponse(user))
}

// DeleteAccount removes the current user.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAccount(c.Request().Context(), principal); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RequestProfilePictureUpload returns a presigned URL for a new profile picture.
func (h *UserHandler) RequestProfilePictureUpload(c echo.Context) error {
	return h.requestUpload(c, h.uc.RequestProfilePictureUpload)
}

// RequestResumeUpload returns a presigned URL for a new resume.
func (h *UserHandler) RequestResumeUpload(c echo.Context) error {
	return h.requestUpload(c, h.uc.RequestResumeUpload)
}

// UpdateProfilePicture stores the uploaded profile picture URL.
func (h *UserHandler) UpdateProfilePicture(c echo.Context) error {
	return h.updateFileURL(c, h.uc.UpdateProfilePicture)
}

// UpdateResume stores the uploaded resume URL.
func (h *UserHandler) UpdateResume(c echo.Context) error {
	return h.updateFileURL(c, h.uc.UpdateResume)
}

func (h *UserHandler) requestUpload(c echo.Context, presign presignFunc) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req FileUploadRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	upload, err := presign(c.Request().Context(), principal, &usecase.UploadRequestInput{
		FileName:    req.FileName,
		ContentType: req.ContentType,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newPresignedURLResponse(upload))
}

func (h *UserHandler) updateFileURL(c echo.Context, update updateFileURLFunc) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req FileURLRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := update(c.Request().Context(), principal, req.FileURL)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newUserResponse(user))
}
