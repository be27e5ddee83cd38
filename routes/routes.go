package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"urban-canvas/config"
	"urban-canvas/controllers"
	"urban-canvas/middleware"
	"urban-canvas/models"
	"urban-canvas/repositories"
	"urban-canvas/services"
)

// SetupRoutes wires repositories, services and controllers onto the router.
// The returned shutdown func flushes the order event publisher; call it when
// the server stops so queued events are not dropped.
func SetupRoutes(router *gin.Engine) func() {
	cfg := config.AppConfig

	catalogRepo := repositories.NewCatalogRepository(cfg.CatalogBaseURL)
	orderRepo := repositories.NewOrderRepository(cfg.CatalogBaseURL)
	userRepo := repositories.NewUserRepository(cfg.CatalogBaseURL)

	productSvc := services.NewProductService(catalogRepo)
	cartSvc := services.NewCartService()
	whatsappSvc := services.NewWhatsAppService(cfg.WhatsAppRecipient, cfg.CountryCode)
	authSvc := services.NewAuthService(userRepo)

	var events *services.OrderEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		events = services.NewOrderEventPublisher(cfg.KafkaBrokers, cfg.OrderTopic)
		log.Printf("Order events enabled on topic %s", cfg.OrderTopic)
	}

	mailer, err := models.NewEmailService()
	if err != nil {
		log.Println("Email notifications disabled:", err)
		mailer = nil
	}

	orderSvc := services.NewOrderService(orderRepo, whatsappSvc, events, mailer)

	productCtrl := controllers.NewProductController(productSvc)
	cartCtrl := controllers.NewCartController(cartSvc, catalogRepo)
	checkoutCtrl := controllers.NewCheckoutController(orderSvc, cartSvc)
	authCtrl := controllers.NewAuthController(authSvc)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)

	router.GET("/products", productCtrl.GetProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/categories", productCtrl.GetCategories)
	router.GET("/shop/state", productCtrl.GetShopState)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
	}

	// Cart and checkout work for guests; identity is attached when present.
	shop := router.Group("/")
	shop.Use(middleware.OptionalAuthMiddleware())
	{
		shop.GET("/cart", cartCtrl.GetCart)
		shop.POST("/cart/items", cartCtrl.AddItem)
		shop.PATCH("/cart/items/:key", cartCtrl.UpdateItem)
		shop.DELETE("/cart/items/:key", cartCtrl.RemoveItem)
		shop.DELETE("/cart", cartCtrl.ClearCart)
		shop.POST("/checkout", checkoutCtrl.Checkout)
	}

	return func() {
		if events != nil {
			events.Close()
		}
	}
}
