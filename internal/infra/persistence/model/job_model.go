package model

import (
	"time"

	"github.com/google/uuid"
)

// JobModel mirrors the 'jobs' table.
type JobModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title        string    `gorm:"type:varchar(255);not null"`
	Description  string    `gorm:"type:text"`
	Requirements string    `gorm:"type:text"`
	Location     string    `gorm:"type:varchar(255);not null"`
	Salary       *float64  `gorm:"type:numeric(12,2)"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	PostedAt     time.Time `gorm:"not null"`

	Company *CompanyModel `gorm:"foreignKey:CompanyID"`
}

// TableName explicitly sets the table name for GORM.
func (JobModel) TableName() string {
	return "jobs"
}

// JobApplicationModel mirrors the 'job_applications' table. (job_id, user_id) is unique.
type JobApplicationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_job_applications_job_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_job_applications_job_user"`
	Message   string    `gorm:"type:text"`
	ResumeURL string    `gorm:"type:text;not null"`
	AppliedAt time.Time `gorm:"not null"`

	Job       *JobModel  `gorm:"foreignKey:JobID"`
	Applicant *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (JobApplicationModel) TableName() string {
	return "job_applications"
}
