package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localnerve/jam-build-bookmarks/internal/config"
	"github.com/localnerve/jam-build-bookmarks/internal/database"
	"github.com/localnerve/jam-build-bookmarks/internal/logger"
	"github.com/localnerve/jam-build-bookmarks/internal/server"
	"github.com/localnerve/jam-build-bookmarks/internal/services"
)

// @title Bookmarks API
// @version 1.0.0
// @description Go Fiber bookmarking service with token authentication and multi-database support
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/jam-build-bookmarks
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer appLog.Sync()

	db, err := database.Connect(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", logger.Error(err))
	}
	defer database.Close(db)
	appLog.Info("Connected to database",
		logger.String("type", cfg.DBType),
		logger.String("database", cfg.DBDatabase),
	)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		appLog.Fatal("Failed to run migrations", logger.Error(err))
	}

	if cfg.TokenTTL == 0 {
		appLog.Warn("TOKEN_TTL is not set, tokens never expire")
	}

	app := server.New(server.Options{
		Config: cfg,
		DB:     db,
		Log:    appLog,
		Auth:   services.NewAuthenticator(cfg),
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		appLog.Info("Gracefully shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			appLog.Error("Shutdown did not complete", logger.Error(err))
		}
	}()

	// Start server
	appLog.Info("Starting server", logger.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		appLog.Fatal("Failed to start server", logger.Error(err))
	}

	appLog.Info("Server stopped")
}
