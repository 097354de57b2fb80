package handler

import (
	"net/http"

	"jobhub/internal/delivery/api/response"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CreateJobRequest is the body of POST /api/jobs.
type CreateJobRequest struct {
	CompanyID    uuid.UUID `json:"companyId" validate:"required"`
	Title        string    `json:"title" validate:"required,max=255"`
	Description  string    `json:"description" validate:"required"`
	Requirements string    `json:"requirements,omitempty"`
	Location     string    `json:"location" validate:"required,max=255"`
	Salary       *float64  `json:"salary,omitempty" validate:"omitempty,gte=0"`
}

// UpdateJobRequest is the body of PUT /api/jobs/:id. Omitted fields are left unchanged.
type UpdateJobRequest struct {
	Title        *string  `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	Requirements *string  `json:"requirements,omitempty"`
	Location     *string  `json:"location,omitempty" validate:"omitempty,min=1,max=255"`
	Salary       *float64 `json:"salary,omitempty" validate:"omitempty,gte=0"`
}

// SearchJobsRequest holds the query of GET /api/jobs.
type SearchJobsRequest struct {
	Keyword string `query:"keyword"`
	Page    int    `query:"page" validate:"gte=0"`
	Size    int    `query:"size" validate:"gte=0"`
}

// JobHandler serves job posting endpoints.
type JobHandler struct {
	uc usecase.JobUsecase
}

// NewJobHandler is the constructor for JobHandler, injected by Fx.
func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// Create posts a job under a company owned by the current user.
func (h *JobHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req CreateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.uc.Create(c.Request().Context(), principal, &usecase.CreateJobInput{
		CompanyID:    req.CompanyID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newJobResponse(job))
}

// Search lists jobs matching the keyword, newest first.
func (h *JobHandler) Search(c echo.Context) error {
	var req SearchJobsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	page, err := h.uc.Search(c.Request().Context(), &usecase.SearchJobsInput{
		Keyword: req.Keyword,
		Page:    req.Page,
		Size:    req.Size,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newJobPageResponse(page))
}

// Get returns one job.
func (h *JobHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	job, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newJobResponse(job))
}

// Update changes a job of a company owned by the current user.
func (h *JobHandler) Update(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateJobRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	job, err := h.uc.Update(c.Request().Context(), principal, id, &usecase.UpdateJobInput{
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		Salary:       req.Salary,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newJobResponse(job))
}

// Delete removes a job and its applications.
func (h *JobHandler) Delete(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), principal, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
