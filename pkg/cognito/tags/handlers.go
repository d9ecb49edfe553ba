package tags

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cognito-app/cognito/pkg/cognito/auth"
	"github.com/cognito-app/cognito/pkg/cognito/models"
)

// Handler handles tag-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	ContentCount int    `json:"content_count,omitempty"`
}

// Upsert resolves tag titles to Tag records, creating missing ones.
// The insert uses ON CONFLICT DO NOTHING keyed on the title's unique index,
// so two concurrent requests upserting the same new title cannot create
// duplicates; the loser of the race reads the winner's row.
func Upsert(db *gorm.DB, titles []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, title := range titles {
		if title == "" {
			continue
		}

		tag := models.Tag{Title: title}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			return nil, err
		}
		// On conflict the insert is a no-op and the ID stays zero; read
		// the canonical row either way.
		if err := db.Where("title = ?", title).First(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Titles extracts tag titles in order
func Titles(tags []models.Tag) []string {
	titles := make([]string, len(tags))
	for i, t := range tags {
		titles[i] = t.Title
	}
	return titles
}

// List returns all tags used by the caller's content, with usage counts
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	type tagWithCount struct {
		ID           uint
		Title        string
		ContentCount int
	}

	var results []tagWithCount
	err := h.db.Table("tags").
		Select("tags.id, tags.title, COUNT(DISTINCT contents.id) as content_count").
		Joins("INNER JOIN content_tags ON tags.id = content_tags.tag_id").
		Joins("INNER JOIN contents ON content_tags.content_id = contents.id AND contents.user_id = ? AND contents.deleted_at IS NULL", userID).
		Group("tags.id").
		Order("content_count DESC").
		Find(&results).Error

	if err != nil {
		log.Printf("tags: failed to list tags for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	tags := make([]TagResponse, len(results))
	for i, r := range results {
		tags[i] = TagResponse{
			ID:           r.ID,
			Title:        r.Title,
			ContentCount: r.ContentCount,
		}
	}

	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
}
