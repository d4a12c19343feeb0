package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"eduquest/config"
	"eduquest/middleware"
	"eduquest/routes"
	"eduquest/store"
	"eduquest/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Resource client for the backing data store
	storeClient := store.NewClient(cfg.StoreURL, time.Duration(cfg.StoreTimeoutSec)*time.Second)

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New()

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, storeClient, cfg)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
