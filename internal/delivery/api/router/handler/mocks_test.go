package handler

import (
	"context"

	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/service"
	"jobhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *mockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, refreshToken)
	output, _ := args.Get(0).(*usecase.AuthOutput)

	return output, args.Error(1)
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) GetCurrentUser(ctx context.Context, principal *entity.User) (*entity.User, error) {
	args := m.Called(ctx, principal)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) UpdateProfile(ctx context.Context, principal *entity.User, input *usecase.UpdateProfileInput) (*entity.User, error) {
	args := m.Called(ctx, principal, input)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) RequestProfilePictureUpload(ctx context.Context, principal *entity.User, input *usecase.UploadRequestInput) (*service.PresignedUpload, error) {
	args := m.Called(ctx, principal, input)
	upload, _ := args.Get(0).(*service.PresignedUpload)

	return upload, args.Error(1)
}

func (m *mockUserUsecase) RequestResumeUpload(ctx context.Context, principal *entity.User, input *usecase.UploadRequestInput) (*service.PresignedUpload, error) {
	args := m.Called(ctx, principal, input)
	upload, _ := args.Get(0).(*service.PresignedUpload)

	return upload, args.Error(1)
}

func (m *mockUserUsecase) UpdateProfilePicture(ctx context.Context, principal *entity.User, fileURL string) (*entity.User, error) {
	args := m.Called(ctx, principal, fileURL)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) UpdateResume(ctx context.Context, principal *entity.User, fileURL string) (*entity.User, error) {
	args := m.Called(ctx, principal, fileURL)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (m *mockUserUsecase) DeleteAccount(ctx context.Context, principal *entity.User) error {
	return m.Called(ctx, principal).Error(0)
}

type mockJobUsecase struct {
	mock.Mock
}

func (m *mockJobUsecase) Create(ctx context.Context, principal *entity.User, input *usecase.CreateJobInput) (*entity.Job, error) {
	args := m.Called(ctx, principal, input)
	job, _ := args.Get(0).(*entity.Job)

	return job, args.Error(1)
}

func (m *mockJobUsecase) Search(ctx context.Context, input *usecase.SearchJobsInput) (*entity.JobPage, error) {
	args := m.Called(ctx, input)
	page, _ := args.Get(0).(*entity.JobPage)

	return page, args.Error(1)
}

func (m *mockJobUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*entity.Job)

	return job, args.Error(1)
}

func (m *mockJobUsecase) Update(ctx context.Context, principal *entity.User, id uuid.UUID, input *usecase.UpdateJobInput) (*entity.Job, error) {
	args := m.Called(ctx, principal, id, input)
	job, _ := args.Get(0).(*entity.Job)

	return job, args.Error(1)
}

func (m *mockJobUsecase) Delete(ctx context.Context, principal *entity.User, id uuid.UUID) error {
	return m.Called(ctx, principal, id).Error(0)
}

type mockApplicationUsecase struct {
	mock.Mock
}

func (m *mockApplicationUsecase) Apply(ctx context.Context, principal *entity.User, jobID uuid.UUID, input *usecase.ApplyInput) (*entity.JobApplication, error) {
	args := m.Called(ctx, principal, jobID, input)
	application, _ := args.Get(0).(*entity.JobApplication)

	return application, args.Error(1)
}

func (m *mockApplicationUsecase) ListForJob(ctx context.Context, principal *entity.User, jobID uuid.UUID) ([]*entity.JobApplication, error) {
	args := m.Called(ctx, principal, jobID)
	applications, _ := args.Get(0).([]*entity.JobApplication)

	return applications, args.Error(1)
}

func (m *mockApplicationUsecase) ListMine(ctx context.Context, principal *entity.User) ([]*entity.JobApplication, error) {
	args := m.Called(ctx, principal)
	applications, _ := args.Get(0).([]*entity.JobApplication)

	return applications, args.Error(1)
}

func (m *mockApplicationUsecase) Get(ctx context.Context, principal *entity.User, id uuid.UUID) (*entity.JobApplication, error) {
	args := m.Called(ctx, principal, id)
	application, _ := args.Get(0).(*entity.JobApplication)

	return application, args.Error(1)
}

type mockAdminUsecase struct {
	mock.Mock
}

func (m *mockAdminUsecase) ListUsers(ctx context.Context, principal *entity.User) ([]*entity.User, error) {
	args := m.Called(ctx, principal)
	users, _ := args.Get(0).([]*entity.User)

	return users, args.Error(1)
}

func (m *mockAdminUsecase) DeleteUser(ctx context.Context, principal *entity.User, userID uuid.UUID) error {
	return m.Called(ctx, principal, userID).Error(0)
}

func (m *mockAdminUsecase) DeleteJob(ctx context.Context, principal *entity.User, jobID uuid.UUID) error {
	return m.Called(ctx, principal, jobID).Error(0)
}

type mockCompanyUsecase struct {
	mock.Mock
}

func (m *mockCompanyUsecase) Create(ctx context.Context, principal *entity.User, input *usecase.CreateCompanyInput) (*entity.Company, error) {
	args := m.Called(ctx, principal, input)
	company, _ := args.Get(0).(*entity.Company)

	return company, args.Error(1)
}

func (m *mockCompanyUsecase) List(ctx context.Context) ([]*entity.Company, error) {
	args := m.Called(ctx)
	companies, _ := args.Get(0).([]*entity.Company)

	return companies, args.Error(1)
}

func (m *mockCompanyUsecase) Get(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	args := m.Called(ctx, id)
	company, _ := args.Get(0).(*entity.Company)

	return company, args.Error(1)
}

func (m *mockCompanyUsecase) Update(ctx context.Context, principal *entity.User, id uuid.UUID, input *usecase.UpdateCompanyInput) (*entity.Company, error) {
	args := m.Called(ctx, principal, id, input)
	company, _ := args.Get(0).(*entity.Company)

	return company, args.Error(1)
}
