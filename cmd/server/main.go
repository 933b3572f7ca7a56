package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "rentnest-backend/internal/api/http"
	"rentnest-backend/internal/config"
	"rentnest-backend/internal/jobs"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository/postgres"
	"rentnest-backend/internal/scheduler"
	"rentnest-backend/internal/security"
	"rentnest-backend/internal/service"
	"rentnest-backend/internal/storage"

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
	logger.Info("Starting RentNest backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format, "environment", cfg.Server.Environment)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.SessionExpiry(), cfg.AdminExpiry())

	// Initialize Storage
	logger.Info("Using local image storage", "upload_dir", cfg.Storage.UploadDir)
	imageStore, err := storage.New(storage.Config{UploadDir: cfg.Storage.UploadDir, BaseURL: cfg.Storage.BaseURL})
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}
	maxUpload := cfg.Storage.MaxFileSize << 20

	// Initialize Services
	imageSvc := service.NewImageStorageService(imageStore, maxUpload, cfg.Storage.AllowedTypes)
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromAddress, cfg.Email.FromName)
	if cfg.Email.SendGridAPIKey == "" {
		logger.Warn("No SendGrid API key configured, emails will only be logged")
	}

	authSvc := service.NewAuthService(store.UserRepository, tokenManager, cfg.Admin)
	userSvc := service.NewUserService(store.UserRepository)
	listingSvc := service.NewListingService(store.ListingRepository, store.UserRepository, imageSvc, service.ListingOptions{
		PlaceholderImage: cfg.Listings.PlaceholderImage,
		DefaultPageSize:  cfg.Listings.DefaultPageSize,
		MaxPageSize:      cfg.Listings.MaxPageSize,
	})
	inquirySvc := service.NewInquiryService(store.InquiryRepository, store.ListingRepository, store.UserRepository, emailSvc, cfg.Listings.PlaceholderImage)
	savedSvc := service.NewSavedListingService(store.SavedListingRepository, store.ListingRepository, cfg.Listings.PlaceholderImage)
	adminSvc := service.NewAdminService(store.UserRepository, store.ListingRepository, store.StatsRepository, listingSvc, imageSvc)

	api := httpapi.NewServer(httpapi.Services{
		Auth:      authSvc,
		Users:     userSvc,
		Listings:  listingSvc,
		Inquiries: inquirySvc,
		Saved:     savedSvc,
		Admin:     adminSvc,
		Images:    imageSvc,
	}, tokenManager, httpapi.Options{
		Production:      cfg.IsProduction(),
		SessionTTL:      cfg.SessionExpiry(),
		AdminTTL:        cfg.AdminExpiry(),
		MaxUploadBytes:  maxUpload,
		DefaultPageSize: cfg.Listings.DefaultPageSize,
		MaxPageSize:     cfg.Listings.MaxPageSize,
		ImageStore:      imageStore,
	})

	// In-process scheduler, for single-instance deployments that do not run cmd/cronjob
	var cronScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		runner := jobs.NewJobRunner(store.ListingRepository, store.InquiryRepository, emailSvc, cfg.Scheduler)
		cronScheduler, err = scheduler.NewScheduler(runner)
		if err != nil {
			log.Fatalf("Failed to initialize scheduler: %v", err)
		}
		cronScheduler.Start()
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           api.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	if cronScheduler != nil {
		cronScheduler.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
