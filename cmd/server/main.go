package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "suitrental-backend/internal/api/http"
	"suitrental-backend/internal/config"
	"suitrental-backend/internal/jobs"
	"suitrental-backend/internal/logger"
	"suitrental-backend/internal/render"
	"suitrental-backend/internal/repository/postgres"
	"suitrental-backend/internal/scheduler"
	"suitrental-backend/internal/security"
	"suitrental-backend/internal/service"
	"suitrental-backend/internal/storage"

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
	logger.Info("Starting Suit Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Artifact Storage
	artifacts, err := storage.NewFilesystemStore(cfg.Storage.BaseURL, cfg.Storage.Dir)
	if err != nil {
		logger.Error("Failed to initialize artifact storage", "error", err, "dir", cfg.Storage.Dir)
		log.Fatalf("Failed to initialize artifact storage: %v", err)
	}

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	clientSvc := service.NewClientService(store.ClientRepository)
	inventorySvc := service.NewInventoryService(
		store.ArticleRepository,
		store.SuitRepository,
		store.SettingsRepository,
	)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.ClientRepository,
		store.SettingsRepository,
	)
	saleSvc := service.NewSaleService(store.SaleRepository, store.ClientRepository)
	reportSvc := service.NewReportService(store.ReportRepository, render.NewTextRenderer(), artifacts)
	dashboardSvc := service.NewDashboardService(store.ReportRepository)
	settingsSvc := service.NewSettingsService(store.SettingsRepository)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authSvc),
		Client:    httpapi.NewClientHandler(clientSvc),
		Inventory: httpapi.NewInventoryHandler(inventorySvc),
		Rental:    httpapi.NewRentalHandler(rentalSvc),
		Sale:      httpapi.NewSaleHandler(saleSvc),
		Report:    httpapi.NewReportHandler(reportSvc, dashboardSvc, artifacts),
		Settings:  httpapi.NewSettingsHandler(settingsSvc),
	}
	router := httpapi.NewRouter(handlers, tokenManager)

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(store, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
