package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"reboot-api/config"
	_ "reboot-api/docs"
	"reboot-api/identity"
	"reboot-api/libs"
	"reboot-api/middleware"
	"reboot-api/routes"
)

// @title Reboot iOS API
// @version 1.0.0
// @description Backend API for the Reboot iOS storefront
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	ctx := context.Background()

	pool, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := config.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	identityClient, err := identity.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to build identity client: %v", err)
	}

	storage, err := libs.NewStorage(cfg.CloudinaryURL)
	if err != nil {
		log.Printf("Warning: object storage disabled: %v", err)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, &routes.Deps{
		Cfg:      cfg,
		DB:       pool,
		Identity: identityClient,
		Storage:  storage,
	})

	addr := ":" + cfg.Port
	log.Printf("Server starting on port %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
