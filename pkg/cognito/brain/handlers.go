package brain

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cognito-app/cognito/pkg/cognito/auth"
	"github.com/cognito-app/cognito/pkg/cognito/content"
	"github.com/cognito-app/cognito/pkg/cognito/models"
	"github.com/cognito-app/cognito/pkg/cognito/sharehash"
)

// placeholderOwner is returned when the owner record is missing or its
// lookup fails; content listing is the primary value of a shared brain,
// owner attribution is secondary.
const placeholderOwner = "Unknown User"

// Handler handles share-link requests
type Handler struct {
	db          *gorm.DB
	frontendURL string
}

// NewHandler creates a new brain handler
func NewHandler(db *gorm.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

// ShareRequest represents the request to toggle sharing
type ShareRequest struct {
	IsShare *bool `json:"isShare" binding:"required"`
}

// ShareResponse represents the share response
type ShareResponse struct {
	Hash      string `json:"hash"`
	ShareLink string `json:"shareLink"`
}

// BrainResponse represents a resolved shared brain
type BrainResponse struct {
	Contents  []content.ContentResponse `json:"contents"`
	UserID    uint                      `json:"userId"`
	OwnerName string                    `json:"ownerName"`
}

// Share issues (or fetches) the caller's share link. Repeat calls return
// the same hash. isShare:false turns sharing off without discarding the
// hash, so turning it back on restores the same URL.
func (h *Handler) Share(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "isShare is required"})
		return
	}

	if !*req.IsShare {
		if err := h.db.Model(&models.ShareLink{}).Where("user_id = ?", userID).
			Update("is_public", false).Error; err != nil {
			log.Printf("brain: failed to unshare for user %d: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to update share link"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Brain is no longer shared"})
		return
	}

	link, err := h.issueShareLink(userID)
	if err != nil {
		log.Printf("brain: failed to issue share link for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch share link"})
		return
	}

	c.JSON(http.StatusOK, ShareResponse{
		Hash:      link.Hash,
		ShareLink: h.frontendURL + "/brain/" + link.Hash,
	})
}

// issueShareLink returns the user's share link, creating it on first use.
// The insert is keyed on the user_id unique index so concurrent first-share
// requests converge on a single row, and generation retries if the fresh
// hash collides with an existing one.
func (h *Handler) issueShareLink(userID uint) (*models.ShareLink, error) {
	var link models.ShareLink
	err := h.db.Where("user_id = ?", userID).First(&link).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err == nil && link.Hash != "" {
		if !link.IsPublic {
			if err := h.db.Model(&link).Update("is_public", true).Error; err != nil {
				return nil, err
			}
			link.IsPublic = true
		}
		return &link, nil
	}

	// No share link yet, or one whose hash was somehow lost: (re)generate.
	for attempt := 0; attempt < 3; attempt++ {
		hash, genErr := sharehash.New()
		if genErr != nil {
			return nil, genErr
		}

		if err == nil {
			// Self-heal a row with an empty hash
			result := h.db.Model(&models.ShareLink{}).
				Where("user_id = ? AND (hash = '' OR hash IS NULL)", userID).
				Updates(map[string]interface{}{"hash": hash, "is_public": true})
			if result.Error == nil {
				link.Hash = hash
				link.IsPublic = true
				return &link, nil
			}
			continue
		}

		link = models.ShareLink{Hash: hash, UserID: userID, IsPublic: true}
		createErr := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(&link).Error
		if createErr != nil {
			// Hash collision with another user's link; draw again
			continue
		}

		// Re-read in case a concurrent request won the insert
		if err := h.db.Where("user_id = ?", userID).First(&link).Error; err != nil {
			return nil, err
		}
		return &link, nil
	}

	return nil, errors.New("could not generate a unique share hash")
}

// Resolve returns the shared brain behind a hash. No authentication is
// required: the hash itself is the capability. Owners viewing their own
// brain are recognized client-side by comparing userId.
func (h *Handler) Resolve(c *gin.Context) {
	hash := c.Param("shareLink")

	var link models.ShareLink
	if err := h.db.Where("hash = ?", hash).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brain not found"})
		return
	}

	// A revoked link resolves exactly like a missing one
	if !link.IsPublic {
		c.JSON(http.StatusNotFound, gin.H{"error": "Brain not found"})
		return
	}

	var contents []models.Content
	if err := h.db.Preload("Tags").Where("user_id = ?", link.UserID).
		Order("created_at DESC").Find(&contents).Error; err != nil {
		log.Printf("brain: failed to list content for shared brain %s: %v", hash, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch shared brain"})
		return
	}

	responses := make([]content.ContentResponse, len(contents))
	for i, item := range contents {
		responses[i] = content.ToResponse(item)
	}

	c.JSON(http.StatusOK, BrainResponse{
		Contents:  responses,
		UserID:    link.UserID,
		OwnerName: h.ownerName(link.UserID),
	})
}

// ownerName resolves the owner's display name, degrading to a placeholder
// rather than failing the whole request when the lookup errors.
func (h *Handler) ownerName(userID uint) string {
	var owner models.User
	if err := h.db.First(&owner, userID).Error; err != nil {
		log.Printf("brain: failed to look up owner %d: %v", userID, err)
		return placeholderOwner
	}
	if name := owner.DisplayName(); name != "" {
		return name
	}
	return placeholderOwner
}

// RegisterAuthRoutes registers the authenticated share route
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/brain/share", h.Share)
}

// RegisterPublicRoutes registers the unauthenticated resolve route
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/brain/:shareLink", h.Resolve)
}
