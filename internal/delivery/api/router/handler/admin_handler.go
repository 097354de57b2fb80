package handler

import (
	"net/http"

	"jobhub/internal/delivery/api/response"
	"jobhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AdminHandler serves platform administration endpoints.
type AdminHandler struct {
	uc usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(uc usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{uc: uc}
}

// ListUsers returns every user.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	users, err := h.uc.ListUsers(c.Request().Context(), principal)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, newUserResponses(users))
}

// DeleteUser removes a user and everything it owns.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), principal, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteJob removes any job.
func (h *AdminHandler) DeleteJob(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteJob(c.Request().Context(), principal, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
