package service

import (
	"context"
	"time"
)

// EventTypeApplicationSubmitted is published after a job application is stored.
const EventTypeApplicationSubmitted = "application.submitted"

// ApplicationEvent notifies the worker that a job received an application.
type ApplicationEvent struct {
	RequestID     string    `json:"request_id,omitempty"` // For distributed tracing
	ApplicationID string    `json:"application_id"`
	JobID         string    `json:"job_id"`
	CompanyID     string    `json:"company_id"`
	ApplicantID   string    `json:"applicant_id"`
	AppliedAt     time.Time `json:"applied_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishApplicationEvent publishes an application event for async processing
	PublishApplicationEvent(ctx context.Context, event *ApplicationEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
