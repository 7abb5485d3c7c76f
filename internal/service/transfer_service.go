package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/interchange"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/rs/zerolog"
)

// ImportResult summarises a CSV import.
type ImportResult struct {
	BatchID    string             `json:"batchId"`
	Collection model.Collection   `json:"collection"`
	Mode       request.ImportMode `json:"mode"`
	Count      int                `json:"count"`
}

// RestoreResult summarises a backup restore.
type RestoreResult struct {
	BatchID string                   `json:"batchId"`
	Counts  map[model.Collection]int `json:"counts"`
}

// TransferService moves collections in and out of the application as CSV
// files and ZIP archives.
type TransferService struct {
	snapshotRepo  *repository.SnapshotRepository
	symbolRepo    *repository.SymbolRepository
	operationRepo *repository.OperationRepository
	assetRepo     *repository.AssetRepository
	ids           *IDGenerator
	sealer        *interchange.Sealer
	reports       Invalidator
	now           func() time.Time
	log           zerolog.Logger
}

// NewTransferService creates a new TransferService. sealer may be nil, in
// which case only plain archives can be restored.
func NewTransferService(
	snapshotRepo *repository.SnapshotRepository,
	symbolRepo *repository.SymbolRepository,
	operationRepo *repository.OperationRepository,
	assetRepo *repository.AssetRepository,
	ids *IDGenerator,
	sealer *interchange.Sealer,
	reports Invalidator,
	log zerolog.Logger,
) *TransferService {
	return &TransferService{
		snapshotRepo:  snapshotRepo,
		symbolRepo:    symbolRepo,
		operationRepo: operationRepo,
		assetRepo:     assetRepo,
		ids:           ids,
		sealer:        sealer,
		reports:       reports,
		now:           time.Now,
		log:           log.With().Str("component", "transfer").Logger(),
	}
}

// Snapshot returns a consistent copy of every collection.
func (s *TransferService) Snapshot(ctx context.Context) (model.Snapshot, error) {
	return s.snapshotRepo.Load(ctx)
}

// ExportCSV writes one collection as CSV.
func (s *TransferService) ExportCSV(ctx context.Context, w io.Writer, c model.Collection) error {
	snap, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		return err
	}
	return interchange.Encode(w, snap, c)
}

// ExportArchive writes every non-empty collection into a ZIP archive.
// Returns apperrors.ErrEmptyBackup when there is nothing to export.
func (s *TransferService) ExportArchive(ctx context.Context, w io.Writer) error {
	snap, err := s.snapshotRepo.Load(ctx)
	if err != nil {
		return err
	}
	return interchange.WriteArchive(w, snap, s.now())
}

// Import decodes a CSV file into collection c. Append mode upserts by key;
// replace mode swaps the whole collection atomically. Records without an ID
// get consecutive generated IDs.
func (s *TransferService) Import(ctx context.Context, r io.Reader, c model.Collection, mode request.ImportMode) (ImportResult, error) {
	batchID := uuid.New().String()
	log := s.log.With().Str("batch", batchID).Str("collection", string(c)).Str("mode", string(mode)).Logger()

	snap, err := interchange.Decode(r, c, today(s.now))
	if err != nil {
		log.Warn().Err(err).Msg("Import rejected")
		return ImportResult{}, err
	}
	s.assignIDs(&snap)

	switch {
	case mode == request.ImportReplace:
		err = s.snapshotRepo.Replace(ctx, snap, c)
	case c == model.CollectionSymbols:
		err = s.symbolRepo.UpsertSymbols(ctx, snap.Symbols)
	case c == model.CollectionOperations:
		err = s.operationRepo.UpsertOperations(ctx, snap.Operations)
	case c == model.CollectionAssets:
		err = s.assetRepo.UpsertAssets(ctx, snap.Assets)
	}
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to store imported %s: %w", c, err)
	}
	s.reports.Invalidate()

	count := interchange.Count(snap, c)
	log.Info().Int("count", count).Msg("Import completed")

	return ImportResult{BatchID: batchID, Collection: c, Mode: mode, Count: count}, nil
}

// Restore replaces every collection present in a backup archive, all in one
// transaction. Sealed archives are decrypted with the configured key.
func (s *TransferService) Restore(ctx context.Context, data []byte) (RestoreResult, error) {
	batchID := uuid.New().String()
	log := s.log.With().Str("batch", batchID).Logger()

	if !interchange.IsArchive(data) {
		if s.sealer == nil {
			return RestoreResult{}, fmt.Errorf("%w: not a ZIP archive", apperrors.ErrInvalidBackup)
		}
		plain, err := s.sealer.Open(bytes.TrimSpace(data))
		if err != nil {
			return RestoreResult{}, err
		}
		data = plain
	}

	snap, present, err := interchange.ReadArchive(data, today(s.now))
	if err != nil {
		log.Warn().Err(err).Msg("Restore rejected")
		return RestoreResult{}, err
	}
	s.assignIDs(&snap)

	if err := s.snapshotRepo.Replace(ctx, snap, present...); err != nil {
		return RestoreResult{}, fmt.Errorf("failed to restore backup: %w", err)
	}
	s.reports.Invalidate()

	counts := make(map[model.Collection]int, len(present))
	for _, c := range present {
		counts[c] = interchange.Count(snap, c)
	}
	log.Info().Interface("counts", counts).Msg("Restore completed")

	return RestoreResult{BatchID: batchID, Counts: counts}, nil
}

// Clear deletes every record of every collection.
func (s *TransferService) Clear(ctx context.Context) error {
	if err := s.snapshotRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear data: %w", err)
	}
	s.reports.Invalidate()
	s.log.Warn().Msg("All data cleared")
	return nil
}

func (s *TransferService) assignIDs(snap *model.Snapshot) {
	missing := 0
	for _, op := range snap.Operations {
		if op.ID == 0 {
			missing++
		}
	}
	for _, a := range snap.Assets {
		if a.ID == 0 {
			missing++
		}
	}
	if missing == 0 {
		return
	}

	ids := s.ids.NextN(missing)
	for i := range snap.Operations {
		if snap.Operations[i].ID == 0 {
			snap.Operations[i].ID, ids = ids[0], ids[1:]
		}
	}
	for i := range snap.Assets {
		if snap.Assets[i].ID == 0 {
			snap.Assets[i].ID, ids = ids[0], ids[1:]
		}
	}
}
