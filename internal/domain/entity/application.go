package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobApplication is a user's application to a job. The (JobID, UserID) pair is unique.
type JobApplication struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	UserID    uuid.UUID
	Message   string
	ResumeURL string
	AppliedAt time.Time

	Job       *Job
	Applicant *User
}
