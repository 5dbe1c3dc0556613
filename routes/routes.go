package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"reboot-api/config"
	"reboot-api/controllers"
	"reboot-api/identity"
	"reboot-api/libs"
	"reboot-api/middleware"
	"reboot-api/repositories"
)

type Deps struct {
	Cfg      *config.Config
	DB       repositories.Store
	Identity *identity.Client
	Storage  *libs.Storage
}

func SetupRoutes(router *gin.Engine, deps *Deps) {
	router.Use(middleware.AccessGate(deps.Cfg.APISecretKey, deps.Identity))

	productCtrl := controllers.NewProductController(deps.DB)
	variantCtrl := controllers.NewVariantController(deps.DB)
	specCtrl := controllers.NewSpecificationController(deps.DB)
	categoryCtrl := controllers.NewCategoryController(deps.DB)
	orderCtrl := controllers.NewOrderController(deps.DB)
	userCtrl := controllers.NewUserController(deps.DB, deps.Identity)
	authCtrl := controllers.NewAuthController()
	uploadCtrl := controllers.NewUploadController(deps.Storage, deps.Cfg.MaxUploadSize)
	webhookCtrl := controllers.NewWebhookController(deps.DB, deps.Cfg.ClerkWebhookSecret)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "Reboot iOS API",
			"version": "1.0.0",
			"message": "Welcome to the Reboot iOS Backend API",
			"endpoints": gin.H{
				"products":   "/api/products",
				"categories": "/api/categories",
				"carousel":   "/api/carousel",
				"orders":     "/api/orders",
				"auth":       "/api/auth/me",
			},
		})
	})

	api := router.Group("/api")
	{
		api.GET("/products", productCtrl.GetProducts)
		api.POST("/products", productCtrl.CreateProduct)
		api.GET("/products/:id", productCtrl.GetProductByID)
		api.PUT("/products/:id", productCtrl.UpdateProduct)
		api.DELETE("/products/:id", productCtrl.DeleteProduct)
		api.PUT("/products/:id/stock", productCtrl.UpdateProductStock)
		api.GET("/products/:id/reviews", productCtrl.GetProductReviews)

		api.GET("/products/:id/variants", variantCtrl.GetVariants)
		api.POST("/products/:id/variants", variantCtrl.CreateVariant)
		api.GET("/products/:id/variants/:variantId", variantCtrl.GetVariantByID)
		api.PUT("/products/:id/variants/:variantId", variantCtrl.UpdateVariant)
		api.DELETE("/products/:id/variants/:variantId", variantCtrl.DeleteVariant)

		api.GET("/products/:id/specifications", specCtrl.GetSpecifications)
		api.POST("/products/:id/specifications", specCtrl.CreateSpecification)
		api.DELETE("/products/:id/specifications", specCtrl.DeleteSpecifications)

		api.GET("/categories", categoryCtrl.GetCategories)
		api.POST("/categories", categoryCtrl.CreateCategory)
		api.GET("/categories/:id", categoryCtrl.GetCategoryByID)
		api.PUT("/categories/:id", categoryCtrl.UpdateCategory)
		api.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

		api.GET("/carousel", categoryCtrl.GetCarousel)

		api.GET("/orders", orderCtrl.GetOrders)
		api.POST("/orders", orderCtrl.CreateOrder)
		api.GET("/orders/:id", orderCtrl.GetOrderByID)
		api.DELETE("/orders/:id", orderCtrl.DeleteOrder)
		api.PUT("/orders/:id/status", orderCtrl.UpdateOrderStatus)

		api.GET("/users", userCtrl.GetUsers)
		api.DELETE("/users", userCtrl.DeleteUserByQuery)
		api.POST("/users/sync", userCtrl.SyncUsers)
		api.GET("/users/:id", userCtrl.GetUserByID)
		api.PUT("/users/:id", userCtrl.UpdateUser)
		api.DELETE("/users/:id", userCtrl.DeleteUser)

		api.GET("/auth/me", authCtrl.Me)

		api.POST("/upload", uploadCtrl.Upload)
		api.POST("/upload/delete", uploadCtrl.Delete)

		api.POST("/webhooks/clerk", webhookCtrl.HandleEvent)
		api.GET("/webhooks/clerk", webhookCtrl.Probe)
	}
}
