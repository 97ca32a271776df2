package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kavehz/realmstats/internal/config"
	"github.com/kavehz/realmstats/internal/database"
	"github.com/kavehz/realmstats/internal/handlers"
	"github.com/kavehz/realmstats/internal/ingest"
	"github.com/kavehz/realmstats/internal/notify"
	"github.com/kavehz/realmstats/internal/repositories"
	"github.com/kavehz/realmstats/internal/services"
	"github.com/kavehz/realmstats/pkg/logger"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting realm snapshot service...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Repositories
	uploadRepo := repositories.NewUploadRepository(db)
	playerRepo := repositories.NewPlayerRepository(db)
	snapshotRepo := repositories.NewSnapshotRepository(db)
	changeRepo := repositories.NewChangeRepository(db)
	seasonRepo := repositories.NewSeasonRepository(db)

	// Optional ingest digest notifier
	notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		logger.Fatal("Failed to initialize notifier", err)
	}
	var ingestNotifier ingest.Notifier
	if notifier != nil {
		ingestNotifier = notifier
		logger.Info("Telegram ingest digests enabled")
	}

	// Ingestion pipeline
	ingestSvc := ingest.NewService(db, cfg, uploadRepo, seasonRepo, ingestNotifier)

	// Scheduled departure-flag recompute
	departureSvc := services.NewDepartureService(db, snapshotRepo,
		cfg.GetDepartureCutoff(), cfg.GetDeparturePowerFloor())
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.DepartureSweepSpec, departureSvc.RecomputeAll); err != nil {
		logger.Fatal("Failed to schedule departure sweep", err)
	}
	scheduler.Start()

	// HTTP server
	manager := handlers.NewManager(cfg, ingestSvc, uploadRepo, playerRepo, snapshotRepo, changeRepo, seasonRepo)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           manager.NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	logger.Info("Service stopped")
}
