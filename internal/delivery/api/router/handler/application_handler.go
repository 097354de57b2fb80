package handler

import (
	"net/http"

	"jobhub/internal/delivery/api/response"
	"jobhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ApplyJobRequest is the body of POST /api/jobs/:id/apply. UseStoredResume defaults to true.
type ApplyJobRequest struct {
	Message         string `json:"message,omitempty" validate:"max=5000"`
	UseStoredResume *bool  `json:"useStoredResume,omitempty"`
	ResumeURL       string `json:"resumeUrl,omitempty" validate:"omitempty,url"`
}

// ApplicationHandler serves job application endpoints.
type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

// NewApplicationHandler is the constructor for ApplicationHandler, injected by Fx.
func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// Apply submits the current user's application to a job.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ApplyJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	application, err := h.uc.Apply(c.Request().Context(), principal, jobID, &usecase.ApplyInput{
		Message:         req.Message,
		UseStoredResume: req.UseStoredResume,
		ResumeURL:       req.ResumeURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newApplicationResponse(application))
}

// ListForJob returns the applications of a job to its company owner.
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	applications, err := h.uc.ListForJob(c.Request().Context(), principal, jobID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newApplicationResponses(applications))
}

// ListMine returns the current user's applications.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	applications, err := h.uc.ListMine(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newApplicationResponses(applications))
}

// Get returns one application to its applicant or the job's company owner.
func (h *ApplicationHandler) Get(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	application, err := h.uc.Get(c.Request().Context(), principal, id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newApplicationResponse(application))
}
