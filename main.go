package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"astro-session-system/handlers"
	"astro-session-system/middleware"
	"astro-session-system/models"
	"astro-session-system/services"
	"astro-session-system/utils"
	"astro-session-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// 🔐 GLOBAL: Only Gateway requests allowed — no exceptions
	app.Use(middleware.GatewayAuthMiddleware())

	// Attach the connected wallet (if forwarded) once, for all routes
	app.Use(middleware.WalletContextMiddleware())

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-Wallet-Address",
		ExposeHeaders:    "Content-Length, Content-Type, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitR2(); err != nil {
		log.Fatal("failed to initialize R2 client:", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.WalletSession{},
		&models.ActivityEntry{},
		&models.MatchResult{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	sessionService := services.NewSessionService(db)
	activityService := services.NewActivityService(db)
	matchService := services.NewMatchService(db)

	// --- Chain reader client (fronts the astrology contract on Base) ---
	chainReaderURL := os.Getenv("CHAIN_READER_URL")
	if chainReaderURL == "" {
		log.Fatal("CHAIN_READER_URL environment variable not set")
	}
	serviceToken := os.Getenv("ASTRO_SERVICE_TOKEN")
	if serviceToken == "" {
		log.Fatal("ASTRO_SERVICE_TOKEN environment variable not set")
	}
	chainClient := services.NewChainServiceClient(chainReaderURL, serviceToken)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Refresh session caches not touched in the last hour
	syncWorker := workers.NewProfileSyncWorker(db, chainClient, sessionService, 1*time.Hour)
	go workers.PollStaleSessions(ctx, syncWorker, 5*time.Minute)

	activityService.StartFeedArchiver()

	handlers.SetupSessionRoutes(app, sessionService, chainClient)
	handlers.SetupFeedRoutes(app, activityService, matchService, sessionService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:5300")
	log.Println("✅ Stale session polling running (every 5m)")
	log.Println("✅ Feed archiver scheduled (hourly)")
	log.Println("✅ GatewayAuthMiddleware enforced globally — all requests must come from Gateway")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
