package models

import (
	"time"

	"gorm.io/gorm"
)

// ContentType enumerates the kinds of items a user can save
type ContentType string

const (
	ContentTypeImage    ContentType = "image"
	ContentTypeVideo    ContentType = "video"
	ContentTypeArticle  ContentType = "article"
	ContentTypeAudio    ContentType = "audio"
	ContentTypeTweet    ContentType = "tweet"
	ContentTypeLink     ContentType = "link"
	ContentTypeDocument ContentType = "document"
)

// ValidContentType reports whether t is one of the allowed content types
func ValidContentType(t string) bool {
	switch ContentType(t) {
	case ContentTypeImage, ContentTypeVideo, ContentTypeArticle,
		ContentTypeAudio, ContentTypeTweet, ContentTypeLink, ContentTypeDocument:
		return true
	}
	return false
}

// Content represents a single bookmarked item
type Content struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Type      ContentType    `gorm:"type:varchar(20);not null" json:"type"`
	Link      string         `gorm:"not null;uniqueIndex:idx_contents_link_user" json:"link"`
	Title     string         `gorm:"not null" json:"title"`
	UserID    uint           `gorm:"not null;index;uniqueIndex:idx_contents_link_user" json:"user_id"`

	// Relationships
	User User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tags []Tag `gorm:"many2many:content_tags;" json:"tags,omitempty"`
}
