package main

import (
	"log"
	"net/http"

	"cafe_storefront_backend/internal/config"
	"cafe_storefront_backend/internal/database"
	"cafe_storefront_backend/internal/middleware"
	"cafe_storefront_backend/internal/repositories"
	router_pkg "cafe_storefront_backend/internal/router"
	"cafe_storefront_backend/internal/services"
	"cafe_storefront_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	utils.InitLogger()

	cfg := config.Load()
	utils.InitJWT(cfg.Auth.JWTSecret)

	database.InitDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode)
	utils.LogInfo("Database initialized", map[string]interface{}{"host": cfg.DB.Host, "name": cfg.DB.Name})

	if cfg.Auth.BootstrapUsername != "" && cfg.Auth.BootstrapPassword != "" {
		authRepo := repositories.NewAuthRepository(database.GetDB())
		if err := services.EnsureAdminAccount(authRepo, database.GetDB(), cfg.Auth.BootstrapUsername, cfg.Auth.BootstrapPassword); err != nil {
			utils.LogError(err, "Failed to seed initial admin account")
		}
	}

	if cfg.Catalog.AccessToken == "" {
		utils.LogWarn(nil, "CATALOG_ACCESS_TOKEN is not set; the menu endpoint will answer 503")
	}

	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router_pkg.Setup(router, database.GetDB(), cfg)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port})
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
