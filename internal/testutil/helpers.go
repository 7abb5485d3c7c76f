package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/display"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/service"
	"github.com/rs/zerolog"
)

// Services bundles every service wired to one test database, sharing the
// ID generator and report cache the way the server does.
type Services struct {
	IDs        *service.IDGenerator
	Reports    *service.ReportService
	Symbols    *service.SymbolService
	Operations *service.OperationService
	Assets     *service.AssetService
	Transfer   *service.TransferService
	System     *service.SystemService
}

// NewTestServices wires all services with report caching enabled.
func NewTestServices(t *testing.T, db *sql.DB) *Services {
	t.Helper()
	return NewTestServicesWithSealer(t, db, nil)
}

// NewTestServicesWithSealer wires all services, restoring sealed archives with sealer.
func NewTestServicesWithSealer(t *testing.T, db *sql.DB, sealer *interchange.Sealer) *Services {
	t.Helper()

	log := zerolog.Nop()
	symbolRepo := repository.NewSymbolRepository(db)
	operationRepo := repository.NewOperationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	ids := service.NewIDGenerator()
	reports := service.NewReportService(snapshotRepo, display.NewFormatter("ARS", "es-AR", "en-US"), time.Minute, log)

	return &Services{
		IDs:        ids,
		Reports:    reports,
		Symbols:    service.NewSymbolService(symbolRepo, reports),
		Operations: service.NewOperationService(operationRepo, ids, reports),
		Assets:     service.NewAssetService(assetRepo, ids, reports),
		Transfer: service.NewTransferService(
			snapshotRepo, symbolRepo, operationRepo, assetRepo, ids, sealer, reports, log,
		),
		System: service.NewSystemService(db),
	}
}

// NewTestSealer returns a sealer with a fresh random key.
func NewTestSealer(t *testing.T) *interchange.Sealer {
	t.Helper()

	key, err := interchange.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	sealer, err := interchange.NewSealer(key)
	if err != nil {
		t.Fatalf("Failed to create sealer: %v", err)
	}
	return sealer
}
