package auth

import (
	"context"
	"log"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"

	"github.com/cognito-app/cognito/pkg/cognito/models"
	"github.com/cognito-app/cognito/pkg/cognito/sharehash"
	"gorm.io/gorm"
)

const googleIssuer = "https://accounts.google.com"

// GoogleClaims holds the identity fields extracted from a verified
// Google ID token.
type GoogleClaims struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// GoogleTokenVerifier verifies a raw Google ID token and returns its claims.
type GoogleTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*GoogleClaims, error)
}

type oidcGoogleVerifier struct {
	verifier *oidc.IDTokenVerifier
}

// NewGoogleVerifier builds a verifier for Google ID tokens issued to the
// given OAuth client ID. It fetches the provider's discovery document once
// at startup.
func NewGoogleVerifier(ctx context.Context, clientID string) (GoogleTokenVerifier, error) {
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, err
	}
	return &oidcGoogleVerifier{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (v *oidcGoogleVerifier) Verify(ctx context.Context, rawIDToken string) (*GoogleClaims, error) {
	idToken, err := v.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}
	var claims GoogleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}
	return &claims, nil
}

// GoogleAuthRequest represents the google-auth request body
type GoogleAuthRequest struct {
	Token string `json:"token" binding:"required"`
}

// GoogleAuthResponse represents the google-auth response
type GoogleAuthResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	UserID    uint   `json:"userId"`
}

// GoogleAuth exchanges a Google ID token for a session token, creating the
// user account on first sign-in.
func (h *Handler) GoogleAuth(c *gin.Context) {
	if h.verifier == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Google sign-in is not configured"})
		return
	}

	var req GoogleAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims, err := h.verifier.Verify(c.Request.Context(), req.Token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	user, err := h.findOrCreateGoogleUser(claims)
	if err != nil {
		log.Printf("google-auth: failed to resolve user %s: %v", claims.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign in"})
		return
	}

	token, err := GenerateToken(user.ID, user.Email, user.FirstName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, GoogleAuthResponse{
		Token:     token,
		Email:     user.Email,
		FirstName: user.FirstName,
		UserID:    user.ID,
	})
}

// findOrCreateGoogleUser looks up a user by Google subject, then by email
// (linking the Google identity to an existing account), and finally creates
// a new account with a share link.
func (h *Handler) findOrCreateGoogleUser(claims *GoogleClaims) (*models.User, error) {
	var user models.User
	if err := h.db.Where("google_id = ?", claims.Subject).First(&user).Error; err == nil {
		return &user, nil
	}

	if err := h.db.Where("email = ?", claims.Email).First(&user).Error; err == nil {
		if err := h.db.Model(&user).Update("google_id", claims.Subject).Error; err != nil {
			return nil, err
		}
		return &user, nil
	}

	hash, err := sharehash.New()
	if err != nil {
		return nil, err
	}

	user = models.User{
		Email:     claims.Email,
		FirstName: claims.GivenName,
		LastName:  claims.FamilyName,
		GoogleID:  claims.Subject,
	}
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		link := models.ShareLink{Hash: hash, UserID: user.ID, IsPublic: true}
		return tx.Create(&link).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
