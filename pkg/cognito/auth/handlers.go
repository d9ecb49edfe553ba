package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cognito-app/cognito/pkg/cognito/models"
	"github.com/cognito-app/cognito/pkg/cognito/sharehash"
)

// Handler handles authentication requests
type Handler struct {
	db          *gorm.DB
	frontendURL string
	verifier    GoogleTokenVerifier
}

// NewHandler creates a new auth handler. The verifier may be nil when
// Google sign-in is not configured.
func NewHandler(db *gorm.DB, frontendURL string, verifier GoogleTokenVerifier) *Handler {
	return &Handler{db: db, frontendURL: frontendURL, verifier: verifier}
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
}

// SigninRequest represents the signin request body
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupResponse represents the signup response
type SignupResponse struct {
	Token     string `json:"token"`
	BrainLink string `json:"brainLink"`
	Hash      string `json:"hash"`
}

// SigninResponse represents the signin response
type SigninResponse struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName"`
}

// Signup handles user registration. A share link is issued alongside the
// account so the brain URL is available immediately after signup.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if email already exists
	var existingUser models.User
	if err := h.db.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	hash, err := sharehash.New()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	// Create user and share link in a transaction
	user := models.User{
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		link := models.ShareLink{
			Hash:     hash,
			UserID:   user.ID,
			IsPublic: true,
		}
		return tx.Create(&link).Error
	})

	if err != nil {
		log.Printf("signup: failed to create user %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := GenerateToken(user.ID, user.Email, user.FirstName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, SignupResponse{
		Token:     token,
		BrainLink: h.frontendURL + "/brain/" + hash,
		Hash:      hash,
	})
}

// Signin handles user login
func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// Google-only accounts have no password to compare against
	if user.PasswordHash == "" || !CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := GenerateToken(user.ID, user.Email, user.FirstName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, SigninResponse{
		Token:     token,
		FirstName: user.FirstName,
	})
}

// RegisterUserRoutes registers signup/signin routes
func (h *Handler) RegisterUserRoutes(rg *gin.RouterGroup) {
	rg.POST("/signup", h.Signup)
	rg.POST("/signin", h.Signin)
}

// RegisterAuthRoutes registers external identity provider routes
func (h *Handler) RegisterAuthRoutes(rg *gin.RouterGroup) {
	rg.POST("/google-auth", h.GoogleAuth)
}
