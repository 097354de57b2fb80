package handler

import (
	"net/http"

	"jobhub/internal/delivery/api/response"
	"jobhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CreateCompanyRequest is the body of POST /api/companies.
type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty" validate:"omitempty,url"`
}

// UpdateCompanyRequest is the body of PUT /api/companies/:id. Omitted fields are left unchanged.
type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url"`
}

// CompanyHandler serves company endpoints.
type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

// NewCompanyHandler is the constructor for CompanyHandler, injected by Fx.
func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// Create registers a company owned by the current user.
func (h *CompanyHandler) Create(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req CreateCompanyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, err := h.uc.Create(c.Request().Context(), principal, &usecase.CreateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newCompanyResponse(company))
}

// List returns every company.
func (h *CompanyHandler) List(c echo.Context) error {
	companies, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newCompanyResponses(companies))
}

// Get returns one company.
func (h *CompanyHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	company, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newCompanyResponse(company))
}

// Update changes a company owned by the current user.
func (h *CompanyHandler) Update(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateCompanyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	company, err := h.uc.Update(c.Request().Context(), principal, id, &usecase.UpdateCompanyInput{
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newCompanyResponse(company))
}
