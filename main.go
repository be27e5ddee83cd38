package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"urban-canvas/config"
	_ "urban-canvas/docs"
	"urban-canvas/middleware"
	"urban-canvas/models"
	"urban-canvas/routes"
)

// @title Urban Canvas Storefront API
// @version 1.0
// @description Storefront API fronting the catalog collaborator: product search, cart, checkout and WhatsApp order notification links.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	models.InitRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	shutdown := routes.SetupRoutes(router)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	// Run only returns on failure; flush queued order events and close
	// Redis before exiting.
	err := router.Run(port)
	shutdown()
	models.CloseRedis()
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
