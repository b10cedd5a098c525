package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "greenloop-backend/internal/api/http"
	"greenloop-backend/internal/config"
	"greenloop-backend/internal/logger"
	"greenloop-backend/internal/repository/postgres"
	"greenloop-backend/internal/security"
	"greenloop-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting GreenLoop Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	// Initialize Push Service (optional)
	var pushSvc service.PushService
	if cfg.Push.Enabled {
		pushSvc, err = service.NewPushService(context.Background(), cfg.Push.CredentialsFile)
		if err != nil {
			logger.Error("Failed to initialize push service", "error", err)
			log.Fatalf("Failed to initialize push service: %v", err)
		}
		logger.Info("Push notifications enabled")
	}

	// Initialize Services
	settlementSvc := service.NewSettlementService(store, emailSvc, pushSvc, cfg.LateUnitDuration())
	borrowSvc := service.NewBorrowService(store)
	walletSvc := service.NewWalletService(store)
	noteSvc := service.NewNotificationService(store.Repos().Notifications)

	// Set up HTTP server
	handler := httpapi.NewHandler(borrowSvc, settlementSvc, walletSvc, noteSvc, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), handler.Router()); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
