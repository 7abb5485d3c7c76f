package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/validation"
)

// AssetService handles business logic for declared non-portfolio assets.
type AssetService struct {
	assetRepo *repository.AssetRepository
	ids       *IDGenerator
	reports   Invalidator
}

// NewAssetService creates a new AssetService with the provided repository dependencies.
func NewAssetService(assetRepo *repository.AssetRepository, ids *IDGenerator, reports Invalidator) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		ids:       ids,
		reports:   reports,
	}
}

// GetAssets returns every declared asset.
func (s *AssetService) GetAssets(ctx context.Context) ([]model.Asset, error) {
	return s.assetRepo.GetAssets(ctx)
}

// CreateAsset stores an asset under a newly generated ID. The name is
// stripped of markup before it is saved.
func (s *AssetService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (model.Asset, error) {
	if err := validation.ValidateCreateAsset(req); err != nil {
		return model.Asset{}, err
	}

	asset := model.Asset{
		ID:    s.ids.Next(),
		Name:  validation.SanitizeText(req.Name),
		Value: req.Value,
	}

	if err := s.assetRepo.InsertAsset(ctx, asset); err != nil {
		return model.Asset{}, fmt.Errorf("failed to create asset: %w", err)
	}
	s.reports.Invalidate()

	return asset, nil
}

// DeleteAsset removes an asset by ID.
func (s *AssetService) DeleteAsset(ctx context.Context, id int64) error {
	if err := s.assetRepo.DeleteAsset(ctx, id); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	s.reports.Invalidate()
	return nil
}
