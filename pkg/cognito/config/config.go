package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	DatabaseURL    string
	Port           string
	JWTSecret      string
	BaseURL        string
	FrontendURL    string
	CORSOrigins    []string
	GeminiAPIKey   string
	GoogleClientID string
	CloudinaryURL  string
}

// Load reads configuration from the environment with sensible defaults.
func Load() Config {
	viper.SetDefault("DATABASE_URL", "cognito.db")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("JWT_SECRET", "cognito-dev-secret-change-in-production")
	viper.SetDefault("BASE_URL", "http://localhost:8080")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	viper.AutomaticEnv()

	return Config{
		DatabaseURL:    viper.GetString("DATABASE_URL"),
		Port:           viper.GetString("PORT"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		BaseURL:        viper.GetString("BASE_URL"),
		FrontendURL:    viper.GetString("FRONTEND_URL"),
		CORSOrigins:    splitOrigins(viper.GetString("CORS_ORIGINS")),
		GeminiAPIKey:   viper.GetString("GEMINI_API_KEY"),
		GoogleClientID: viper.GetString("GOOGLE_CLIENT_ID"),
		CloudinaryURL:  viper.GetString("CLOUDINARY_URL"),
	}
}

// splitOrigins parses a comma-separated origin allow-list.
func splitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
