package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/rs/zerolog"
)

// BackupService writes archives of every collection into a directory.
// It is also a scheduler job.
type BackupService struct {
	transfer *TransferService
	dir      string
	sealer   *interchange.Sealer
	now      func() time.Time
	log      zerolog.Logger
}

// NewBackupService creates a new BackupService writing into dir. Archives
// are sealed when sealer is not nil.
func NewBackupService(transfer *TransferService, dir string, sealer *interchange.Sealer, log zerolog.Logger) *BackupService {
	return &BackupService{
		transfer: transfer,
		dir:      dir,
		sealer:   sealer,
		now:      time.Now,
		log:      log.With().Str("job", "backup").Logger(),
	}
}

// Name returns the job name
func (s *BackupService) Name() string {
	return "backup"
}

// Run writes a backup. An empty database is not an error.
func (s *BackupService) Run() error {
	path, err := s.Backup(context.Background())
	if errors.Is(err, apperrors.ErrEmptyBackup) {
		s.log.Info().Msg("Nothing to back up")
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info().Str("path", path).Msg("Backup written")
	return nil
}

// Backup writes one archive and returns its path. The file appears
// atomically: it is written to a temporary name and renamed.
func (s *BackupService) Backup(ctx context.Context) (string, error) {
	var buf bytes.Buffer
	if err := s.transfer.ExportArchive(ctx, &buf); err != nil {
		return "", err
	}

	data := buf.Bytes()
	name := fmt.Sprintf("portfolio-backup-%s.zip", s.now().Format("20060102-150405"))
	if s.sealer != nil {
		sealed, err := s.sealer.Seal(data)
		if err != nil {
			return "", err
		}
		data = sealed
		name += ".fernet"
	}

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize backup: %w", err)
	}
	return path, nil
}
