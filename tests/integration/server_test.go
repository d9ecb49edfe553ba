package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cognito-app/cognito/pkg/cognito/auth"
	"github.com/cognito-app/cognito/pkg/cognito/brain"
	"github.com/cognito-app/cognito/pkg/cognito/content"
	"github.com/cognito-app/cognito/pkg/cognito/importexport"
	"github.com/cognito-app/cognito/pkg/cognito/models"
	"github.com/cognito-app/cognito/pkg/cognito/profile"
	"github.com/cognito-app/cognito/pkg/cognito/tags"
)

const frontendURL = "http://localhost:5173"

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// setupFullServer creates a Gin engine with all routes registered.
// This mirrors the setup in cmd/cognito-server/main.go.
func setupFullServer(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		authHandler := auth.NewHandler(db, frontendURL, nil)
		authHandler.RegisterUserRoutes(api.Group("/user"))
		authHandler.RegisterAuthRoutes(api.Group("/auth"))

		brainHandler := brain.NewHandler(db, frontendURL)
		brainHandler.RegisterPublicRoutes(api)

		protected := api.Group("", auth.AuthMiddleware())

		brainHandler.RegisterAuthRoutes(protected)
		content.NewHandler(db).RegisterRoutes(protected)
		tags.NewHandler(db).RegisterRoutes(protected)
		profile.NewHandler(db).RegisterRoutes(protected)
		importexport.NewHandler(db).RegisterRoutes(protected)
	}

	return r
}

func doJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// TestServerStartup verifies that all routes can be registered without conflicts
func TestServerStartup(t *testing.T) {
	db := setupTestDB(t)

	router := setupFullServer(db)

	if router == nil {
		t.Fatal("Expected router to be created")
	}
}

// TestHealthEndpoint verifies the health endpoint responds correctly
func TestHealthEndpoint(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)

	req, _ := http.NewRequest("GET", "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.Code)
	}
}

// TestSignupToPublicBrain walks the primary user journey: register, save
// content, publish the brain, and read it back anonymously.
func TestSignupToPublicBrain(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)

	// Sign up
	resp := doJSON(router, "POST", "/api/v1/user/signup", map[string]string{
		"email":     "alice@example.com",
		"password":  "password123",
		"firstName": "Alice",
	}, "")
	if resp.Code != http.StatusCreated {
		t.Fatalf("Signup failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var signup struct {
		Token string `json:"token"`
		Hash  string `json:"hash"`
	}
	json.Unmarshal(resp.Body.Bytes(), &signup)
	if signup.Token == "" || len(signup.Hash) != 10 {
		t.Fatalf("Expected token and 10-char hash, got %+v", signup)
	}

	// Save a piece of content
	resp = doJSON(router, "POST", "/api/v1/content/create", map[string]interface{}{
		"type":  "article",
		"link":  "https://go.dev/blog/error-handling",
		"title": "Error handling in Go",
		"tags":  []string{"go", "errors"},
	}, signup.Token)
	if resp.Code != http.StatusCreated {
		t.Fatalf("Content creation failed with status %d: %s", resp.Code, resp.Body.String())
	}

	// Publish the brain
	resp = doJSON(router, "POST", "/api/v1/brain/share", map[string]bool{"isShare": true}, signup.Token)
	if resp.Code != http.StatusOK {
		t.Fatalf("Share failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var share struct {
		Hash string `json:"hash"`
	}
	json.Unmarshal(resp.Body.Bytes(), &share)
	if share.Hash != signup.Hash {
		t.Errorf("Expected the signup hash %s to be reused, got %s", signup.Hash, share.Hash)
	}

	// Anyone can read the published brain, no token required
	resp = doJSON(router, "GET", "/api/v1/brain/"+share.Hash, nil, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("Public brain fetch failed with status %d: %s", resp.Code, resp.Body.String())
	}

	var publicBrain struct {
		OwnerName string `json:"ownerName"`
		Contents  []struct {
			Title string   `json:"title"`
			Tags  []string `json:"tags"`
		} `json:"contents"`
	}
	json.Unmarshal(resp.Body.Bytes(), &publicBrain)

	if publicBrain.OwnerName != "Alice" {
		t.Errorf("Expected owner name Alice, got %s", publicBrain.OwnerName)
	}
	if len(publicBrain.Contents) != 1 || publicBrain.Contents[0].Title != "Error handling in Go" {
		t.Errorf("Expected the saved article in the public brain, got %+v", publicBrain.Contents)
	}
}

// TestUnshareHidesBrain verifies an unshared brain is indistinguishable
// from a nonexistent one.
func TestUnshareHidesBrain(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)

	resp := doJSON(router, "POST", "/api/v1/user/signup", map[string]string{
		"email":     "bob@example.com",
		"password":  "password123",
		"firstName": "Bob",
	}, "")
	var signup struct {
		Token string `json:"token"`
		Hash  string `json:"hash"`
	}
	json.Unmarshal(resp.Body.Bytes(), &signup)

	resp = doJSON(router, "POST", "/api/v1/brain/share", map[string]bool{"isShare": false}, signup.Token)
	if resp.Code != http.StatusOK {
		t.Fatalf("Unshare failed with status %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(router, "GET", "/api/v1/brain/"+signup.Hash, nil, "")
	if resp.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unshared brain, got %d", resp.Code)
	}
}

// TestProtectedRoutesRequireAuth verifies the middleware covers the
// authenticated surface.
func TestProtectedRoutesRequireAuth(t *testing.T) {
	db := setupTestDB(t)
	router := setupFullServer(db)

	routes := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/content"},
		{"POST", "/api/v1/content/create"},
		{"GET", "/api/v1/tags"},
		{"GET", "/api/v1/profile"},
		{"POST", "/api/v1/brain/share"},
		{"GET", "/api/v1/export"},
	}

	for _, route := range routes {
		resp := doJSON(router, route.method, route.path, nil, "")
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401 without token, got %d", route.method, route.path, resp.Code)
		}
	}
}
