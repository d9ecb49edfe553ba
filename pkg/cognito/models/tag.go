package models

import (
	"time"
)

// Tag represents a label attached to content. Tags are pooled globally by
// title and created lazily; they are never deleted.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `gorm:"uniqueIndex;not null" json:"title"`

	// Relationships
	Contents []Content `gorm:"many2many:content_tags;" json:"contents,omitempty"`
}
