package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"farmstay-server/config"
	"farmstay-server/database"
	"farmstay-server/jobs"
	"farmstay-server/middleware"
	"farmstay-server/routes"
	"farmstay-server/services"
	"farmstay-server/storage"
	ws "farmstay-server/websocket"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	// Initialize database
	if err := database.Initialize(); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}

	// Optional starter data for a fresh install
	if os.Getenv("SEED_DATA") == "true" {
		if err := seedInitialData(); err != nil {
			log.Fatal("Failed to seed initial data:", err)
		}
	}

	// Initialize the public payload cache
	storage.InitializeCache()

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Input validation
	router.Use(middleware.InputValidationMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origins)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Farmstay server is running",
			"time":    time.Now().UTC(),
		})
	})

	// Dashboard event hub
	dashboardHub := ws.NewHub()
	go dashboardHub.Run()
	routes.InitHub(dashboardHub)

	// API routes
	api := router.Group("/api/v1")
	{
		// Public marketing site (no authentication)
		publicRoutes := api.Group("/public")
		routes.RegisterPublicRoutes(publicRoutes)

		// Staff auth (no authentication required) - with strict rate limiting
		authRoutes := api.Group("/auth")
		authRoutes.Use(middleware.AuthRateLimitMiddleware())
		routes.RegisterAuthRoutes(authRoutes)

		// Protected staff routes
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			routes.RegisterProtectedAuthRoutes(protected)

			// Dashboard event feed
			protected.GET("/ws/dashboard", ws.HandleDashboard(dashboardHub))

			// Operations
			routes.RegisterBookingRoutes(protected)
			routes.RegisterRentalRoutes(protected)
			routes.RegisterRoomRoutes(protected)
			routes.RegisterTreeRoutes(protected)
			routes.RegisterCustomerRoutes(protected)
			routes.RegisterTaskRoutes(protected)
			routes.RegisterArticleRoutes(protected)
			routes.RegisterUploadRoutes(protected)

			// Admin-only management
			adminRoutes := protected.Group("/admin")
			adminRoutes.Use(middleware.AdminOnlyMiddleware())
			{
				routes.RegisterAdminRoutes(adminRoutes)
				routes.RegisterStaffRoutes(adminRoutes)
			}
		}
	}

	// Start background jobs
	middleware.StartRateLimiterCleanup()

	expiryJob := jobs.NewRentalExpiryJob(dashboardHub)
	expiryJob.Start()
	defer expiryJob.Stop()

	// Start token cleanup job
	go func() {
		ticker := time.NewTicker(24 * time.Hour) // Run daily
		defer ticker.Stop()

		for range ticker.C {
			jwtService := services.NewJWTService()
			if err := jwtService.CleanupExpiredTokens(); err != nil {
				log.Printf("❌ Token cleanup failed: %v", err)
			}
		}
	}()

	port := config.AppConfig.Server.Port

	log.Printf("Server starting on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
