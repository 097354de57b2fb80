package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// User is a principal of the system.
type User struct {
	ID                uuid.UUID
	Email             string
	PasswordHash      string
	Name              string
	Role              Role
	ProfilePictureURL string
	ResumeURL         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsAdmin reports whether the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// HasRole reports whether the user holds one of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	return u != nil && Roles(roles).Contains(u.Role)
}

// HasStoredResume reports whether a resume has been uploaded to the profile.
func (u *User) HasStoredResume() bool {
	return u != nil && strings.TrimSpace(u.ResumeURL) != ""
}

// NormalizeEmail returns the canonical form used as the unique lookup key.
// A Caser is stateful, so one is built per call.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
