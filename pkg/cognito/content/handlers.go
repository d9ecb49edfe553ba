package content

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cognito-app/cognito/pkg/cognito/auth"
	"github.com/cognito-app/cognito/pkg/cognito/models"
	"github.com/cognito-app/cognito/pkg/cognito/tags"
)

// Handler handles content-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new content handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateContentRequest represents the request to create content
type CreateContentRequest struct {
	Type  string   `json:"type" binding:"required"`
	Link  string   `json:"link" binding:"required,url"`
	Title string   `json:"title" binding:"required"`
	Tags  []string `json:"tags"`
}

// EditContentRequest represents the request to edit content
type EditContentRequest struct {
	ContentID uint     `json:"contentId" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Link      string   `json:"link" binding:"required,url"`
	Title     string   `json:"title" binding:"required"`
	Tags      []string `json:"tags"`
}

// DeleteContentRequest represents the request to delete content
type DeleteContentRequest struct {
	ContentID uint `json:"contentId" binding:"required"`
}

// ContentResponse represents content in API responses
type ContentResponse struct {
	ID        uint     `json:"id"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Tags      []string `json:"tags"`
	CreatedAt string   `json:"created_at"`
}

// ToResponse projects a content record with its tags expanded to titles
func ToResponse(content models.Content) ContentResponse {
	return ContentResponse{
		ID:        content.ID,
		Type:      string(content.Type),
		Title:     content.Title,
		Link:      content.Link,
		Tags:      tags.Titles(content.Tags),
		CreatedAt: content.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// Create creates a new content item owned by the caller
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidContentType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid content type. Allowed types are: image, video, article, audio, tweet, link, document",
		})
		return
	}

	// The same link saved twice by one user violates the per-user
	// uniqueness constraint
	var existing models.Content
	if err := h.db.Where("link = ? AND user_id = ?", req.Link, userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Content with this link already exists"})
		return
	}

	tagRecords, err := tags.Upsert(h.db, req.Tags)
	if err != nil {
		log.Printf("content: failed to upsert tags for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	content := models.Content{
		Type:   models.ContentType(req.Type),
		Link:   req.Link,
		Title:  req.Title,
		UserID: userID,
		Tags:   tagRecords,
	}

	if err := h.db.Create(&content).Error; err != nil {
		log.Printf("content: failed to create content for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create content"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"content": ToResponse(content)})
}

// List returns all content owned by the caller
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var contents []models.Content
	if err := h.db.Preload("Tags").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&contents).Error; err != nil {
		log.Printf("content: failed to list content for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch content"})
		return
	}

	responses := make([]ContentResponse, len(contents))
	for i, item := range contents {
		responses[i] = ToResponse(item)
	}

	c.JSON(http.StatusOK, gin.H{"content": responses})
}

// Edit updates a content item. Ownership is part of the lookup: a record
// owned by someone else is indistinguishable from a missing one.
func (h *Handler) Edit(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req EditContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidContentType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid content type. Allowed types are: image, video, article, audio, tweet, link, document",
		})
		return
	}

	var content models.Content
	if err := h.db.Where("id = ? AND user_id = ?", req.ContentID, userID).First(&content).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	tagRecords, err := tags.Upsert(h.db, req.Tags)
	if err != nil {
		log.Printf("content: failed to upsert tags for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}

	content.Title = req.Title
	content.Type = models.ContentType(req.Type)
	content.Link = req.Link

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&content).Error; err != nil {
			return err
		}
		return tx.Model(&content).Association("Tags").Replace(tagRecords)
	})
	if err != nil {
		log.Printf("content: failed to update content %d: %v", content.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update content"})
		return
	}

	content.Tags = tagRecords
	c.JSON(http.StatusOK, gin.H{"content": ToResponse(content)})
}

// Delete removes a content item. The lookup and delete are a single
// conditional statement so a concurrent edit cannot slip between them.
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req DeleteContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.db.Where("id = ? AND user_id = ?", req.ContentID, userID).Delete(&models.Content{})
	if result.Error != nil {
		log.Printf("content: failed to delete content %d: %v", req.ContentID, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete content"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Content not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

// RegisterRoutes registers content routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/content", h.List)
	rg.POST("/content/create", h.Create)
	rg.PUT("/content/edit", h.Edit)
	rg.DELETE("/content", h.Delete)
}
