// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"jobhub/internal/delivery/api/response"
	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("malformed request body"))
	}

	return errors.WithStack(c.Validate(req))
}

// pathID parses a uuid path parameter.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails(name + " must be a valid UUID"))
	}

	return id, nil
}

// currentPrincipal returns the user resolved by the auth middleware.
func currentPrincipal(c echo.Context) (*entity.User, error) {
	principal := deliverycontext.GetPrincipal(c)
	if principal == nil {
		return nil, errors.WithStack(domainerrors.ErrMissingToken)
	}

	return principal, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
