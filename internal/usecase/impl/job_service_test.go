package impl

import (
	"context"
	"fmt"
	"testing"
	"time"

	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJobService_Create(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(false))
	ctx := context.Background()
	owner := f.seedUser(t, "owner@example.com", entity.RoleCompany)
	other := f.seedUser(t, "other@example.com", entity.RoleCompany)
	company := f.seedCompany(t, owner)
	salary := 120000.0

	job, err := f.jobs.Create(ctx, owner, &usecase.CreateJobInput{
		CompanyID: company.ID,
		Title:     "Backend Engineer",
		Location:  "Remote",
		Salary:    &salary,
	})
	require.NoError(t, err)
	assert.Equal(t, company.ID, job.CompanyID)
	assert.Equal(t, salary, *job.Salary)
	assert.False(t, job.PostedAt.IsZero())

	_, err = f.jobs.Create(ctx, other, &usecase.CreateJobInput{CompanyID: company.ID, Title: "Fake"})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	_, err = f.jobs.Create(ctx, owner, &usecase.CreateJobInput{CompanyID: uuid.New(), Title: "Orphan"})
	assert.ErrorIs(t, err, domainerrors.ErrCompanyNotFound)

	assert.Len(t, f.store.jobs, 1)
}

func TestJobService_Update(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(false))
	ctx := context.Background()
	owner := f.seedUser(t, "owner@example.com", entity.RoleCompany)
	other := f.seedUser(t, "other@example.com", entity.RoleCompany)
	admin := f.seedUser(t, "admin@example.com", entity.RoleAdmin)
	job := f.seedJob(t, f.seedCompany(t, owner), "Go Engineer", time.Now())

	_, err := f.jobs.Update(ctx, other, job.ID, &usecase.UpdateJobInput{Title: strPtr("Mine now")})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	updated, err := f.jobs.Update(ctx, owner, job.ID, &usecase.UpdateJobInput{Location: strPtr("Kaohsiung")})
	require.NoError(t, err)
	assert.Equal(t, "Go Engineer", updated.Title)
	assert.Equal(t, "Kaohsiung", updated.Location)

	updated, err = f.jobs.Update(ctx, admin, job.ID, &usecase.UpdateJobInput{Title: strPtr("Senior Go Engineer")})
	require.NoError(t, err)
	assert.Equal(t, "Senior Go Engineer", updated.Title)

	_, err = f.jobs.Update(ctx, owner, uuid.New(), &usecase.UpdateJobInput{})
	assert.ErrorIs(t, err, domainerrors.ErrJobNotFound)
}

func TestJobService_Delete_CascadesApplications(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(false))
	ctx := context.Background()
	owner := f.seedUser(t, "owner@example.com", entity.RoleCompany)
	applicant := f.seedUser(t, "applicant@example.com", entity.RoleUser)
	applicant.ResumeURL = "https://files.example.com/cv.pdf"
	job := f.seedJob(t, f.seedCompany(t, owner), "Go Engineer", time.Now())
	f.publisher.On("PublishApplicationEvent", mock.Anything, mock.Anything).Return(nil)

	_, err := f.applications.Apply(ctx, applicant, job.ID, &usecase.ApplyInput{})
	require.NoError(t, err)

	err = f.jobs.Delete(ctx, applicant, job.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	require.NoError(t, f.jobs.Delete(ctx, owner, job.ID))
	assert.Empty(t, f.store.jobs)
	assert.Empty(t, f.store.applications)

	err = f.jobs.Delete(ctx, owner, job.ID)
	assert.ErrorIs(t, err, domainerrors.ErrJobNotFound)
}

func TestJobService_Search(t *testing.T) {
	f := newServiceFixtures(t, newTestConfig(false))
	ctx := context.Background()
	company := f.seedCompany(t, f.seedUser(t, "owner@example.com", entity.RoleCompany))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 25 {
		f.seedJob(t, company, fmt.Sprintf("Engineer %02d", i), base.Add(time.Duration(i)*time.Hour))
	}
	f.seedJob(t, company, "Barista", base.Add(-time.Hour))

	page, err := f.jobs.Search(ctx, &usecase.SearchJobsInput{})
	require.NoError(t, err)
	assert.Equal(t, 10, page.Size, "default page size")
	assert.Equal(t, int64(26), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages())
	require.Len(t, page.Jobs, 10)
	assert.Equal(t, "Engineer 24", page.Jobs[0].Title, "newest first")

	page, err = f.jobs.Search(ctx, &usecase.SearchJobsInput{Keyword: "ENGINEER", Page: 2, Size: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.TotalItems)
	assert.Len(t, page.Jobs, 5)

	page, err = f.jobs.Search(ctx, &usecase.SearchJobsInput{Size: 1000, Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 100, page.Size, "size is clamped to the maximum")
	assert.Equal(t, 0, page.Page)
	assert.Len(t, page.Jobs, 26)

	page, err = f.jobs.Search(ctx, &usecase.SearchJobsInput{Keyword: "taipei"})
	require.NoError(t, err)
	assert.Equal(t, int64(26), page.TotalItems, "location is searched too")
}
