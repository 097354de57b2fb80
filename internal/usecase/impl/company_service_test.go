package impl

import (
	"context"
	"testing"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(v string) *string {
	return &v
}

func TestCompanyService_Create(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(false))
	ctx := context.Background()
	owner := f.seedUser(t, "owner@example.com", entity.RoleCompany)
	seeker := f.seedUser(t, "seeker@example.com", entity.RoleUser)

	company, err := f.companies.Create(ctx, owner, &usecase.CreateCompanyInput{Name: " Acme ", Website: "https://acme.example"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", company.Name)
	assert.Equal(t, owner.ID, company.OwnerID)

	_, err = f.companies.Create(ctx, seeker, &usecase.CreateCompanyInput{Name: "Nope"})
	assert.ErrorIs(t, err, domainerrors.ErrCompanyRoleRequired)
	assert.Equal(t, domainerrors.KindBadRequest, domainerrors.KindOf(err))

	companies, err := f.companies.List(ctx)
	require.NoError(t, err)
	assert.Len(t, companies, 1)
}

func TestCompanyService_Update_OwnerOrAdmin(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(false))
	ctx := context.Background()
	owner := f.seedUser(t, "owner@example.com", entity.RoleCompany)
	other := f.seedUser(t, "other@example.com", entity.RoleCompany)
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	company := f.seedCompany(t, owner)

	_, err := f.companies.Update(ctx, other, company.ID, &usecase.UpdateCompanyInput{Name: strPtr("Hijacked")})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))

	stored, err := f.companies.Get(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Name, "denied update leaves the company untouched")

	updated, err := f.companies.Update(ctx, owner, company.ID, &usecase.UpdateCompanyInput{Description: strPtr("Rockets")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "Rockets", updated.Description)

	updated, err = f.companies.Update(ctx, admin, company.ID, &usecase.UpdateCompanyInput{Name: strPtr("Acme Corp")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "Rockets", updated.Description)
}

func TestCompanyService_MissingCompanyIsNotFound(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(false))
	ctx := context.Background()
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)

	_, err := f.companies.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrCompanyNotFound)

	_, err = f.companies.Update(ctx, admin, uuid.New(), &usecase.UpdateCompanyInput{})
	assert.ErrorIs(t, err, domainerrors.ErrCompanyNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}
