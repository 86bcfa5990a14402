package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/hirelink/hirelink-backend/internal/cache"
	"github.com/hirelink/hirelink-backend/internal/handlers"
	"github.com/hirelink/hirelink-backend/internal/handlers/ws"
	"github.com/hirelink/hirelink-backend/internal/middleware"
	"github.com/hirelink/hirelink-backend/internal/repository"
	"github.com/hirelink/hirelink-backend/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName: "HireLink Backend",
	})

	// Middleware
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     os.Getenv("ALLOWED_ORIGINS"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-HL-CSRF",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize database connection
	db, err := repository.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis cache
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if parsedDB, err := strconv.Atoi(dbStr); err == nil {
			redisDB = parsedDB
		}
	}

	redisCache := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
	if err := redisCache.Ping(); err != nil {
		log.Printf("WARNING: Redis connection failed: %v. Running without cache.", err)
		redisCache = nil
	} else {
		log.Println("Redis cache connected successfully")
	}

	inboxCache := cache.NewInboxCache(redisCache)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	hireRepo := repository.NewHireRepository(db)

	// Room registry shared by both transports
	rooms := ws.NewRooms()

	// Initialize services
	authService := service.NewAuthService(userRepo)
	inboxService := service.NewInboxService(conversationRepo, messageRepo, rooms, inboxCache)
	hireService := service.NewHireService(hireRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	inboxHandler := handlers.NewInboxHandler(inboxService)
	hireHandler := handlers.NewHireHandler(hireService)
	wsHandler := handlers.NewWebSocketHandler(inboxService, rooms)

	// Public routes
	api := app.Group("/api", middleware.OriginAllowed())
	auth := api.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))
	auth.Get("/csrf", authHandler.CSRF)
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Protected routes
	protected := api.Group("/", middleware.AuthRequired(), middleware.CSRFRequired())
	protected.Get("/conversations", inboxHandler.GetConversations)
	protected.Post("/conversations", inboxHandler.CreateConversation)
	protected.Get("/conversations/:id/messages", inboxHandler.GetMessages)
	protected.Post("/conversations/:id/messages", inboxHandler.SendMessage)
	protected.Post("/conversations/:id/read", inboxHandler.MarkRead)
	protected.Delete("/conversations/:id", inboxHandler.LeaveConversation)
	protected.Post("/hires", middleware.RequireRole("company"), hireHandler.HireCandidate)

	// WebSocket route. Connections upgrade unauthenticated; credentials
	// arrive with the join event.
	app.Use(
		"/ws",
		middleware.OriginAllowed(),
		func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		},
	)
	app.Get("/ws", websocket.New(wsHandler.HandleWebSocket))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "HireLink is running",
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s...", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
