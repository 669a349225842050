package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StaffUser is a front-desk account allowed onto the dashboard.
type StaffUser struct {
	ID string `gorm:"primaryKey;type:uuid" json:"id"`

	Name         string `gorm:"size:100" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'staff'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *StaffUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
