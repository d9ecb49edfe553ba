package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cognito-app/cognito/pkg/cognito/ai"
	"github.com/cognito-app/cognito/pkg/cognito/auth"
	"github.com/cognito-app/cognito/pkg/cognito/brain"
	"github.com/cognito-app/cognito/pkg/cognito/config"
	"github.com/cognito-app/cognito/pkg/cognito/content"
	"github.com/cognito-app/cognito/pkg/cognito/database"
	"github.com/cognito-app/cognito/pkg/cognito/importexport"
	"github.com/cognito-app/cognito/pkg/cognito/models"
	"github.com/cognito-app/cognito/pkg/cognito/profile"
	"github.com/cognito-app/cognito/pkg/cognito/tags"
	"github.com/cognito-app/cognito/pkg/cognito/upload"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Optional integrations degrade to "not configured" responses when
	// their credentials are absent
	var verifier auth.GoogleTokenVerifier
	if cfg.GoogleClientID != "" {
		verifier, err = auth.NewGoogleVerifier(ctx, cfg.GoogleClientID)
		if err != nil {
			log.Fatalf("Failed to initialize Google verifier: %v", err)
		}
	} else {
		log.Println("GOOGLE_CLIENT_ID not set - Google sign-in disabled")
	}

	var chatter ai.Chatter
	if cfg.GeminiAPIKey != "" {
		geminiChatter, err := ai.NewGeminiChatter(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini client: %v", err)
		}
		chatter = geminiChatter
	} else {
		log.Println("GEMINI_API_KEY not set - AI chat disabled")
	}

	var uploader upload.Uploader
	if cfg.CloudinaryURL != "" {
		cloudinaryUploader, err := upload.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.Fatalf("Failed to initialize Cloudinary client: %v", err)
		}
		uploader = cloudinaryUploader
	} else {
		log.Println("CLOUDINARY_URL not set - uploads disabled")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		// Public routes
		authHandler := auth.NewHandler(db, cfg.FrontendURL, verifier)
		authHandler.RegisterUserRoutes(api.Group("/user"))
		authHandler.RegisterAuthRoutes(api.Group("/auth"))

		brainHandler := brain.NewHandler(db, cfg.FrontendURL)
		brainHandler.RegisterPublicRoutes(api)

		// Protected routes
		protected := api.Group("", auth.AuthMiddleware())

		brainHandler.RegisterAuthRoutes(protected)

		contentHandler := content.NewHandler(db)
		contentHandler.RegisterRoutes(protected)

		tagsHandler := tags.NewHandler(db)
		tagsHandler.RegisterRoutes(protected)

		profileHandler := profile.NewHandler(db)
		profileHandler.RegisterRoutes(protected)

		uploadHandler := upload.NewHandler(uploader)
		uploadHandler.RegisterRoutes(protected)

		aiHandler := ai.NewHandler(chatter, ai.NewTweetFetcher())
		aiHandler.RegisterRoutes(protected)

		importExportHandler := importexport.NewHandler(db)
		importExportHandler.RegisterRoutes(protected)
	}

	log.Printf("Starting Cognito server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
