package router

import (
	"database/sql"

	"cafe_storefront_backend/internal/catalogapi"
	"cafe_storefront_backend/internal/config"
	"cafe_storefront_backend/internal/handlers"
	"cafe_storefront_backend/internal/middleware"
	"cafe_storefront_backend/internal/repositories"
	"cafe_storefront_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	overrideRepo := repositories.NewOverrideRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	// Initialize the catalog collaborator. An empty access token yields
	// an unconfigured client; the menu endpoint then answers 503 with a
	// structured empty-result body instead of panicking.
	catalogClient := catalogapi.NewClient(cfg.Catalog.AccessToken,
		catalogapi.WithBaseURL(cfg.Catalog.BaseURL),
	)

	// Initialize Services
	authService := services.NewAuthService(authRepo)
	menuService := services.NewMenuService(catalogClient, overrideRepo)
	availabilityService := services.NewAvailabilityService(settingsRepo, cfg.Catalog.DefaultTimezone)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	menuHandler := handlers.NewMenuHandler(menuService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	adminHandler := handlers.NewAdminHandler(overrideRepo, settingsRepo)

	apiV1 := engine.Group("/api/v1")

	// Public storefront routes
	SetupMenuRoutes(apiV1, menuHandler)
	SetupAvailabilityRoutes(apiV1, availabilityHandler)
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	// Authenticated admin routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAdminRoutes(authenticated, adminHandler)
	}
}
