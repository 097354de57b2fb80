package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer owned by exactly one user.
type Company struct {
	ID          uuid.UUID
	Name        string
	Description string
	Website     string
	OwnerID     uuid.UUID
	CreatedAt   time.Time

	// Owner is populated by read paths that join the owning user.
	Owner *User
}
