package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/config"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/display"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/logger"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/rs/zerolog"
)

var (
	dbPath  = flag.String("db", "", "Path to the SQLite database (default: DB_PATH)")
	raw     = flag.Bool("raw", false, "Print plain markdown instead of styled terminal output")
	width   = flag.Int("width", 100, "Wrap styled output at this many columns (0 disables wrapping)")
	verbose = flag.Bool("v", false, "Log progress to stderr")
)

// app holds the services a command works with.
type app struct {
	cfg       *config.Config
	db        *sql.DB
	log       zerolog.Logger
	formatter display.Formatter
	reports   *service.ReportService
	transfer  *service.TransferService
}

// openApp loads configuration, opens the database and wires the services.
// key, when not empty, overrides BACKUP_KEY for sealing and opening archives.
func openApp(ctx context.Context, key string) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if key != "" {
		cfg.Backup.Key = key
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log := logger.NewWithWriter(logger.Config{Level: level, Pretty: true}, os.Stderr)

	db, err := database.Open(ctx, cfg.Database.Path, log)
	if err != nil {
		return nil, err
	}

	sealer, err := newSealer(cfg.Backup.Key)
	if err != nil {
		db.Close()
		return nil, err
	}

	symbolRepo := repository.NewSymbolRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	formatter := display.NewFormatter(cfg.Currency.NativeCode, cfg.Currency.NativeLocale, cfg.Currency.USDLocale)
	reports := service.NewReportService(snapshotRepo, formatter, 0, log)

	return &app{
		cfg:       cfg,
		db:        db,
		log:       log,
		formatter: formatter,
		reports:   reports,
		transfer: service.NewTransferService(
			snapshotRepo, symbolRepo, operationRepo, assetRepo,
			service.NewIDGenerator(), sealer, reports, log,
		),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) sealer() (*interchange.Sealer, error) {
	return newSealer(a.cfg.Backup.Key)
}

func newSealer(key string) (*interchange.Sealer, error) {
	if key == "" {
		return nil, nil
	}
	sealer, err := interchange.NewSealer(key)
	if err != nil {
		return nil, fmt.Errorf("invalid backup key: %w", err)
	}
	return sealer, nil
}

// printMarkdown writes md to stdout, styled for the terminal unless -raw is set.
func printMarkdown(md string) error {
	if *raw {
		_, err := fmt.Fprint(os.Stdout, md)
		return err
	}
	out, err := display.Terminal(md, *width)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}
