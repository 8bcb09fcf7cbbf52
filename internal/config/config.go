package config

import (
	"strings"

	"cafe_storefront_backend/pkg/utils"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the storefront backend.
type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Catalog CatalogConfig
	Auth    AuthConfig
}

// DBConfig holds Postgres connection settings.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// CatalogConfig holds settings for the external point-of-sale catalog service.
type CatalogConfig struct {
	BaseURL     string
	AccessToken string
	// DefaultTimezone is the fallback business timezone when the
	// storefront_settings table carries none.
	DefaultTimezone string
}

// AuthConfig holds admin session settings. BootstrapUsername and
// BootstrapPassword, when both set, seed the initial admin account at
// startup.
type AuthConfig struct {
	JWTSecret         string
	BootstrapUsername string
	BootstrapPassword string
}

// Load reads configuration from .env (if present) and the environment.
func Load() *Config {
	_ = godotenv.Load()

	var origins []string
	if raw := utils.Getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		origins = strings.Split(raw, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	return &Config{
		DB: DBConfig{
			Host:     utils.Getenv("DB_HOST", "localhost"),
			Port:     utils.Getenv("DB_PORT", "5432"),
			User:     utils.Getenv("DB_USER", "storefront_user"),
			Password: utils.Getenv("DB_PASSWORD", "storefront_password"),
			Name:     utils.Getenv("DB_NAME", "cafe_storefront_db"),
			SSLMode:  utils.Getenv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port:           utils.Getenv("PORT", "8080"),
			AllowedOrigins: origins,
		},
		Catalog: CatalogConfig{
			BaseURL:         utils.Getenv("CATALOG_BASE_URL", "https://connect.squareup.com"),
			AccessToken:     utils.Getenv("CATALOG_ACCESS_TOKEN", ""),
			DefaultTimezone: utils.Getenv("BUSINESS_TIMEZONE", "Australia/Sydney"),
		},
		Auth: AuthConfig{
			JWTSecret:         utils.Getenv("JWT_SECRET", "change-me-in-production"),
			BootstrapUsername: utils.Getenv("ADMIN_USERNAME", ""),
			BootstrapPassword: utils.Getenv("ADMIN_PASSWORD", ""),
		},
	}
}
