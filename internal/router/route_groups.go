package router

import (
	"cafe_storefront_backend/internal/handlers"
	"cafe_storefront_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupMenuRoutes sets up the storefront menu routes.
func SetupMenuRoutes(apiGroup *gin.RouterGroup, menuHandler *handlers.MenuHandler) {
	menuRoutes := apiGroup.Group("/menu")
	{
		menuRoutes.GET("", menuHandler.GetMenu)
		menuRoutes.GET("/categories", menuHandler.GetCategories)
	}
}

// SetupAvailabilityRoutes sets up the ordering-availability routes.
func SetupAvailabilityRoutes(apiGroup *gin.RouterGroup, availabilityHandler *handlers.AvailabilityHandler) {
	apiGroup.GET("/ordering-availability", availabilityHandler.GetOrderingAvailability)
}

// SetupPublicAuthRoutes sets up the public authentication routes.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
}

// SetupAdminRoutes sets up the admin routes for visibility overrides
// and ordering-hours settings.
func SetupAdminRoutes(authenticatedGroup *gin.RouterGroup, adminHandler *handlers.AdminHandler) {
	adminRoutes := authenticatedGroup.Group("/admin")
	adminRoutes.Use(middleware.RoleAuthMiddleware("Admin", "Staff"))
	{
		adminRoutes.GET("/disabled-items", adminHandler.ListDisabledItems)
		adminRoutes.POST("/disabled-items", adminHandler.AddDisabledItem)
		adminRoutes.DELETE("/disabled-items/:sourceId", adminHandler.RemoveDisabledItem)

		adminRoutes.GET("/disabled-categories", adminHandler.ListDisabledCategories)
		adminRoutes.POST("/disabled-categories", adminHandler.AddDisabledCategory)
		adminRoutes.DELETE("/disabled-categories/:name", adminHandler.RemoveDisabledCategory)

		adminRoutes.GET("/ordering-hours", adminHandler.GetOrderingHours)
		adminRoutes.PUT("/ordering-hours", adminHandler.UpdateOrderingHours)
		adminRoutes.PUT("/timezone", adminHandler.SetTimezone)
	}
}
