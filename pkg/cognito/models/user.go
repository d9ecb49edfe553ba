package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"` // Empty for Google-only accounts
	FirstName    string         `gorm:"not null" json:"first_name"`
	LastName     string         `json:"last_name,omitempty"`
	Bio          string         `json:"bio,omitempty"`
	GoogleID     string         `gorm:"index" json:"-"`

	// Relationships
	Contents []Content `gorm:"foreignKey:UserID" json:"contents,omitempty"`
}

// DisplayName returns the name shown on a shared brain: first name,
// falling back to the email address.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}
