package importexport

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cognito-app/cognito/pkg/cognito/auth"
	"github.com/cognito-app/cognito/pkg/cognito/models"
	"github.com/cognito-app/cognito/pkg/cognito/tags"
)

// Handler handles import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// ExportItem represents a single saved item in the export format
type ExportItem struct {
	Type  string   `json:"type"`
	Link  string   `json:"link"`
	Title string   `json:"title"`
	Tags  []string `json:"tags"`
	Time  string   `json:"time"`
}

// ExportPayload is the full export document
type ExportPayload struct {
	Version    int          `json:"version"`
	ExportedAt string       `json:"exported_at"`
	IsShared   bool         `json:"is_shared"`
	Items      []ExportItem `json:"items"`
}

// ImportRequest represents an import request
type ImportRequest struct {
	Items []ExportItem `json:"items" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// Export returns all of the caller's saved items plus the sharing state,
// in a format Import accepts back unchanged.
func (h *Handler) Export(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var contents []models.Content
	if err := h.db.Preload("Tags").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&contents).Error; err != nil {
		log.Printf("importexport: failed to fetch content for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content"})
		return
	}

	var share models.ShareLink
	isShared := false
	if err := h.db.Where("user_id = ?", userID).First(&share).Error; err == nil {
		isShared = share.IsPublic
	}

	items := make([]ExportItem, len(contents))
	for i, content := range contents {
		items[i] = ExportItem{
			Type:  string(content.Type),
			Link:  content.Link,
			Title: content.Title,
			Tags:  tags.Titles(content.Tags),
			Time:  content.CreatedAt.Format(time.RFC3339),
		}
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename=cognito-export.json")
	}

	c.JSON(http.StatusOK, ExportPayload{
		Version:    1,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		IsShared:   isShared,
		Items:      items,
	})
}

// Import creates saved items from an export document. Items whose link
// the caller already saved are skipped, not overwritten.
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{Errors: []string{}}

	for i, item := range req.Items {
		if item.Link == "" || item.Title == "" {
			result.Errors = append(result.Errors, "item "+strconv.Itoa(i)+": link and title are required")
			result.Skipped++
			continue
		}
		if !models.ValidContentType(item.Type) {
			result.Errors = append(result.Errors, "item "+strconv.Itoa(i)+": invalid content type")
			result.Skipped++
			continue
		}

		var count int64
		h.db.Model(&models.Content{}).Where("link = ? AND user_id = ?", item.Link, userID).Count(&count)
		if count > 0 {
			result.Skipped++
			continue
		}

		tagRecords, err := tags.Upsert(h.db, item.Tags)
		if err != nil {
			result.Errors = append(result.Errors, "item "+strconv.Itoa(i)+": failed to resolve tags")
			result.Skipped++
			continue
		}

		content := models.Content{
			Type:   models.ContentType(item.Type),
			Link:   item.Link,
			Title:  item.Title,
			UserID: userID,
			Tags:   tagRecords,
		}
		if item.Time != "" {
			if parsed, err := time.Parse(time.RFC3339, item.Time); err == nil {
				content.CreatedAt = parsed
			}
		}

		if err := h.db.Create(&content).Error; err != nil {
			result.Errors = append(result.Errors, "item "+strconv.Itoa(i)+": "+err.Error())
			result.Skipped++
			continue
		}

		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
}
