// Package model holds the GORM persistence models. They mirror the tables created by the
// embedded migrations and never leave the persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Name              string    `gorm:"type:varchar(100);not null"`
	Role              string    `gorm:"type:varchar(20);not null"`
	ProfilePictureURL string    `gorm:"type:text"`
	ResumeURL         string    `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
