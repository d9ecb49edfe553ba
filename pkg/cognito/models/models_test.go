package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return db
}

func TestAutoMigrate(t *testing.T) {
	db := setupTestDB(t)

	err := AutoMigrate(db)
	if err != nil {
		t.Fatalf("AutoMigrate failed: %v", err)
	}

	// Verify tables exist by checking if we can query them
	tables := []string{"users", "tags", "contents", "share_links", "content_tags"}
	for _, table := range tables {
		if !db.Migrator().HasTable(table) {
			t.Errorf("Expected table %s to exist", table)
		}
	}
}

func TestUserModel(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := User{
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		FirstName:    "Test",
		LastName:     "User",
	}

	result := db.Create(&user)
	if result.Error != nil {
		t.Fatalf("Failed to create user: %v", result.Error)
	}

	if user.ID == 0 {
		t.Error("Expected user ID to be set after create")
	}

	// Test unique email constraint
	user2 := User{
		Email:        "test@example.com",
		PasswordHash: "another_hash",
		FirstName:    "Another",
	}
	result = db.Create(&user2)
	if result.Error == nil {
		t.Error("Expected error when creating user with duplicate email")
	}
}

func TestUserDisplayName(t *testing.T) {
	user := User{Email: "alice@example.com", FirstName: "Alice"}
	if got := user.DisplayName(); got != "Alice" {
		t.Errorf("Expected display name Alice, got %s", got)
	}

	user.FirstName = ""
	if got := user.DisplayName(); got != "alice@example.com" {
		t.Errorf("Expected display name to fall back to email, got %s", got)
	}
}

func TestContentWithTags(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := User{Email: "test@example.com", PasswordHash: "hash", FirstName: "Test"}
	db.Create(&user)

	tag1 := Tag{Title: "golang"}
	tag2 := Tag{Title: "programming"}
	db.Create(&tag1)
	db.Create(&tag2)

	content := Content{
		Type:   ContentTypeArticle,
		Link:   "https://example.com",
		Title:  "Example Site",
		UserID: user.ID,
		Tags:   []Tag{tag1, tag2},
	}
	result := db.Create(&content)
	if result.Error != nil {
		t.Fatalf("Failed to create content: %v", result.Error)
	}

	// Verify tags relationship
	var loaded Content
	db.Preload("Tags").First(&loaded, content.ID)
	if len(loaded.Tags) != 2 {
		t.Errorf("Expected 2 tags, got %d", len(loaded.Tags))
	}
}

func TestContentLinkUniquePerUser(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	alice := User{Email: "alice@example.com", PasswordHash: "hash", FirstName: "Alice"}
	bob := User{Email: "bob@example.com", PasswordHash: "hash", FirstName: "Bob"}
	db.Create(&alice)
	db.Create(&bob)

	first := Content{Type: ContentTypeLink, Link: "https://example.com", Title: "One", UserID: alice.ID}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("Failed to create content: %v", err)
	}

	// Same link for the same user violates the composite unique index
	dup := Content{Type: ContentTypeLink, Link: "https://example.com", Title: "Two", UserID: alice.ID}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("Expected error when creating duplicate link for same user")
	}

	// Same link for a different user is fine
	other := Content{Type: ContentTypeLink, Link: "https://example.com", Title: "Three", UserID: bob.ID}
	if err := db.Create(&other).Error; err != nil {
		t.Errorf("Expected same link to be allowed for a different user: %v", err)
	}
}

func TestTagTitleUniqueness(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	tag1 := Tag{Title: "productivity"}
	db.Create(&tag1)

	tag2 := Tag{Title: "productivity"}
	result := db.Create(&tag2)
	if result.Error == nil {
		t.Error("Expected error when creating tag with duplicate title")
	}
}

func TestShareLinkConstraints(t *testing.T) {
	db := setupTestDB(t)
	AutoMigrate(db)

	user := User{Email: "test@example.com", PasswordHash: "hash", FirstName: "Test"}
	db.Create(&user)
	other := User{Email: "other@example.com", PasswordHash: "hash", FirstName: "Other"}
	db.Create(&other)

	link := ShareLink{Hash: "aB3dE5fG7h", UserID: user.ID, IsPublic: true}
	if err := db.Create(&link).Error; err != nil {
		t.Fatalf("Failed to create share link: %v", err)
	}

	// One share link per user
	second := ShareLink{Hash: "zY9xW7vU5t", UserID: user.ID, IsPublic: true}
	if err := db.Create(&second).Error; err == nil {
		t.Error("Expected error when creating second share link for same user")
	}

	// Hash is globally unique
	clash := ShareLink{Hash: "aB3dE5fG7h", UserID: other.ID, IsPublic: true}
	if err := db.Create(&clash).Error; err == nil {
		t.Error("Expected error when creating share link with duplicate hash")
	}
}

func TestValidContentType(t *testing.T) {
	valid := []string{"image", "video", "article", "audio", "tweet", "link", "document"}
	for _, v := range valid {
		if !ValidContentType(v) {
			t.Errorf("Expected %s to be a valid content type", v)
		}
	}

	for _, v := range []string{"", "podcast", "Article", "IMAGE"} {
		if ValidContentType(v) {
			t.Errorf("Expected %s to be rejected", v)
		}
	}
}
