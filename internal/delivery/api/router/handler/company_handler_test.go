package handler

import (
	"net/http"
	"testing"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompanyHandler(t *testing.T) {
	owner := &entity.User{ID: uuid.New(), Name: "Owner", Role: entity.RoleCompany}
	company := &entity.Company{ID: uuid.New(), Name: "Acme", Website: "https://acme.example.com", OwnerID: owner.ID, Owner: owner}
	stranger := &entity.User{ID: uuid.New(), Role: entity.RoleCompany}
	newName := "Acme Corp"

	uc := new(mockCompanyUsecase)
	uc.On("Create", mock.Anything, owner, &usecase.CreateCompanyInput{Name: "Acme", Website: "https://acme.example.com"}).Return(company, nil)
	uc.On("List", mock.Anything).Return([]*entity.Company{company}, nil)
	uc.On("Update", mock.Anything, stranger, company.ID, &usecase.UpdateCompanyInput{Name: &newName}).
		Return(nil, domainerrors.ErrPermissionDenied)
	h := NewCompanyHandler(uc)

	c, rec := newTestContext(testRequest{
		method:    http.MethodPost,
		target:    "/api/companies",
		principal: owner,
		body:      `{"name":"Acme","website":"https://acme.example.com"}`,
	})
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	var created CompanyResponse
	decodeData(t, rec, &created)
	assert.Equal(t, "Owner", created.OwnerName)

	c, rec = newTestContext(testRequest{method: http.MethodGet, target: "/api/companies"})
	require.NoError(t, h.List(c))
	var listed []*CompanyResponse
	decodeData(t, rec, &listed)
	assert.Len(t, listed, 1)

	c, _ = newTestContext(testRequest{
		method:    http.MethodPut,
		target:    "/api/companies/" + company.ID.String(),
		principal: stranger,
		params:    map[string]string{"id": company.ID.String()},
		body:      `{"name":"Acme Corp"}`,
	})
	assert.ErrorIs(t, h.Update(c), domainerrors.ErrPermissionDenied)

	c, _ = newTestContext(testRequest{method: http.MethodPost, target: "/api/companies", principal: owner, body: `{"website":"ftp"}`})
	assertErrorCode(t, h.Create(c), "VALIDATION_FAILED")

	uc.AssertExpectations(t)
}
