// Serverless entrypoint: the router is built once per instance and reused
// across invocations.
package api

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"reboot-api/config"
	_ "reboot-api/docs"
	"reboot-api/identity"
	"reboot-api/libs"
	"reboot-api/middleware"
	"reboot-api/routes"
)

var (
	router *gin.Engine
	once   sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.Load()

		pool, err := config.ConnectDB(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}

		identityClient, err := identity.NewClient(cfg)
		if err != nil {
			log.Fatalf("Failed to build identity client: %v", err)
		}

		storage, err := libs.NewStorage(cfg.CloudinaryURL)
		if err != nil {
			log.Printf("Warning: object storage disabled: %v", err)
		}

		router = gin.New()
		router.Use(gin.Recovery())
		router.Use(middleware.CORSMiddleware())

		routes.SetupRoutes(router, &routes.Deps{
			Cfg:      cfg,
			DB:       pool,
			Identity: identityClient,
			Storage:  storage,
		})
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
