package models

import (
	"time"
)

// ShareLink maps a public opaque hash to a user's content collection.
// At most one ShareLink exists per user; the hash indirects a public URL
// to the owner's collection without exposing the internal user ID.
type ShareLink struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Hash      string    `gorm:"uniqueIndex;not null" json:"hash"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	IsPublic  bool      `gorm:"default:true" json:"is_public"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
