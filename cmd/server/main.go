package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/display"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/logger"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/scheduler"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}).Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Str("version", version.Version).Msg("Starting Portfolio Pro")

	// Open database connection and apply migrations
	db, err := database.Open(context.Background(), cfg.Database.Path, log)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("Failed to open database")
	}
	defer db.Close()

	log.Info().Str("path", cfg.Database.Path).Msg("Connected to database")

	var sealer *interchange.Sealer
	if cfg.Backup.Key != "" {
		sealer, err = interchange.NewSealer(cfg.Backup.Key)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid BACKUP_KEY")
		}
	}

	// Create repositories
	symbolRepo := repository.NewSymbolRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	ids := service.NewIDGenerator()
	formatter := display.NewFormatter(cfg.Currency.NativeCode, cfg.Currency.NativeLocale, cfg.Currency.USDLocale)
	reportService := service.NewReportService(snapshotRepo, formatter, cfg.Reports.CacheTTL, log)
	transferService := service.NewTransferService(
		snapshotRepo,
		symbolRepo,
		operationRepo,
		assetRepo,
		ids,
		sealer,
		reportService,
		log,
	)

	services := api.Services{
		System:     service.NewSystemService(db),
		Symbols:    service.NewSymbolService(symbolRepo, reportService),
		Operations: service.NewOperationService(operationRepo, ids, reportService),
		Assets:     service.NewAssetService(assetRepo, ids, reportService),
		Reports:    reportService,
		Transfer:   transferService,
	}

	// Scheduled backups
	var sched *scheduler.Scheduler
	if cfg.Backup.Schedule != "" {
		sched = scheduler.New(log)
		backup := service.NewBackupService(transferService, cfg.Backup.Dir, sealer, log)
		if err := sched.AddJob(cfg.Backup.Schedule, backup); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule backups")
		}
		sched.Start()
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(services, cfg, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if sched != nil {
		sched.Stop()
	}

	log.Info().Msg("Server exited")
}
