package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"quickstay/internal/config"
	"quickstay/internal/handler"
	"quickstay/internal/repository"
	"quickstay/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("QuickStay Booking API")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("Connected to PostgreSQL database")

	// Initialize services
	roomService := service.NewRoomService(repo)
	userService := service.NewUserService(repo)
	webhookService := service.NewWebhookService(repo)

	if !cfg.Webhook.Enabled {
		log.Println("Warning: WEBHOOK_SIGNING_SECRET is not set - identity webhooks will be rejected")
	}

	log.Println("Services initialized")

	// Initialize handlers
	roomHandler := handler.NewRoomHandler(roomService, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	userHandler := handler.NewUserHandler(userService)
	webhookHandler := handler.NewWebhookHandler(
		handler.NewHMACAuthenticator(cfg.Webhook.SigningSecret, cfg.Webhook.Tolerance),
		webhookService,
	)

	// Setup Gin router
	router := gin.Default()
	router.Use(handler.RequestID())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "X-User-Id"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := repo.Ping(c.Request.Context()); err != nil {
			status = "degraded"
		}
		c.JSON(200, gin.H{
			"status":     status,
			"service":    "quickstay-booking-api",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Identity provider webhook (signed, not CORS-facing)
	router.POST("/api/webhooks/identity", webhookHandler.Handle)

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/rooms", roomHandler.List)
		apiV1.GET("/rooms/filters", roomHandler.Filters)
		apiV1.GET("/rooms/:id", roomHandler.Get)

		apiV1.GET("/user", userHandler.Get)
		apiV1.POST("/user/recent-search", userHandler.RecentSearch)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)
	log.Printf("API base: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}
