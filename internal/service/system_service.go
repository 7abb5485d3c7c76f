package service

import (
	"context"
	"database/sql"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/database"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db *sql.DB
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB) *SystemService {
	return &SystemService{
		db: db,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version.
func (s *SystemService) CheckVersion() string {
	return version.Version
}

// SchemaVersion returns the latest applied migration.
func (s *SystemService) SchemaVersion(ctx context.Context) (int64, error) {
	return database.SchemaVersion(ctx, s.db)
}
