package handler

import (
	"time"

	"jobhub/internal/domain/entity"
	"jobhub/internal/domain/service"

	"github.com/google/uuid"
)

// UserResponse is the public view of a user. The password hash never leaves the server.
type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	ResumeURL         string    `json:"resumeUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AuthResponse carries the token pair issued by register, login and refresh.
type AuthResponse struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         *UserResponse `json:"user"`
}

// CompanyResponse is the public view of a company.
type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	OwnerID     uuid.UUID `json:"ownerId"`
	OwnerName   string    `json:"ownerName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// JobResponse is the public view of a job posting.
type JobResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements,omitempty"`
	Location     string    `json:"location"`
	Salary       *float64  `json:"salary,omitempty"`
	CompanyID    uuid.UUID `json:"companyId"`
	CompanyName  string    `json:"companyName,omitempty"`
	PostedAt     time.Time `json:"postedAt"`
}

// JobPageResponse is one page of a job search.
type JobPageResponse struct {
	Content       []*JobResponse `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
}

// ApplicationResponse is the view of a job application shown to its applicant and the company.
type ApplicationResponse struct {
	ID        uuid.UUID `json:"id"`
	JobID     uuid.UUID `json:"jobId"`
	JobTitle  string    `json:"jobTitle,omitempty"`
	UserID    uuid.UUID `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	UserEmail string    `json:"userEmail,omitempty"`
	Message   string    `json:"message,omitempty"`
	ResumeURL string    `json:"resumeUrl"`
	AppliedAt time.Time `json:"appliedAt"`
}

// PresignedURLResponse tells the client where to upload a file and the URL to save afterwards.
type PresignedURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	FileURL   string    `json:"fileUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newUserResponse(user *entity.User) *UserResponse {
	if user == nil {
		return nil
	}

	return &UserResponse{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		Role:              user.Role.String(),
		ProfilePictureURL: user.ProfilePictureURL,
		ResumeURL:         user.ResumeURL,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

func newUserResponses(users []*entity.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, newUserResponse(user))
	}

	return out
}

func newCompanyResponse(company *entity.Company) *CompanyResponse {
	resp := &CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		OwnerID:     company.OwnerID,
		CreatedAt:   company.CreatedAt,
	}
	if company.Owner != nil {
		resp.OwnerName = company.Owner.Name
	}

	return resp
}

func newCompanyResponses(companies []*entity.Company) []*CompanyResponse {
	out := make([]*CompanyResponse, 0, len(companies))
	for _, company := range companies {
		out = append(out, newCompanyResponse(company))
	}

	return out
}

func newJobResponse(job *entity.Job) *JobResponse {
	resp := &JobResponse{
		ID:           job.ID,
		Title:        job.Title,
		Description:  job.Description,
		Requirements: job.Requirements,
		Location:     job.Location,
		Salary:       job.Salary,
		CompanyID:    job.CompanyID,
		PostedAt:     job.PostedAt,
	}
	if job.Company != nil {
		resp.CompanyName = job.Company.Name
	}

	return resp
}

func newJobPageResponse(page *entity.JobPage) *JobPageResponse {
	content := make([]*JobResponse, 0, len(page.Jobs))
	for _, job := range page.Jobs {
		content = append(content, newJobResponse(job))
	}

	return &JobPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalItems,
		TotalPages:    page.TotalPages(),
	}
}

func newApplicationResponse(application *entity.JobApplication) *ApplicationResponse {
	resp := &ApplicationResponse{
		ID:        application.ID,
		JobID:     application.JobID,
		UserID:    application.UserID,
		Message:   application.Message,
		ResumeURL: application.ResumeURL,
		AppliedAt: application.AppliedAt,
	}
	if application.Job != nil {
		resp.JobTitle = application.Job.Title
	}
	if application.Applicant != nil {
		resp.UserName = application.Applicant.Name
		resp.UserEmail = application.Applicant.Email
	}

	return resp
}

func newApplicationResponses(applications []*entity.JobApplication) []*ApplicationResponse {
	out := make([]*ApplicationResponse, 0, len(applications))
	for _, application := range applications {
		out = append(out, newApplicationResponse(application))
	}

	return out
}

func newPresignedURLResponse(upload *service.PresignedUpload) *PresignedURLResponse {
	return &PresignedURLResponse{
		UploadURL: upload.UploadURL,
		FileURL:   upload.FileURL,
		Key:       upload.Key,
		ExpiresAt: upload.ExpiresAt,
	}
}
