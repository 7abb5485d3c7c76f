package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
)

// Invalidator is notified after every write so cached reports are rebuilt.
type Invalidator interface {
	Invalidate()
}

// SymbolService handles symbol registry business logic.
type SymbolService struct {
	symbolRepo *repository.SymbolRepository
	reports    Invalidator
}

// NewSymbolService creates a new SymbolService with the provided repository dependencies.
func NewSymbolService(symbolRepo *repository.SymbolRepository, reports Invalidator) *SymbolService {
	return &SymbolService{
		symbolRepo: symbolRepo,
		reports:    reports,
	}
}

// GetSymbols returns every configured symbol ordered by ticker.
func (s *SymbolService) GetSymbols(ctx context.Context) ([]model.Symbol, error) {
	return s.symbolRepo.GetSymbols(ctx)
}

// CreateSymbol lists a validated, normalized ticker.
// Returns apperrors.ErrDuplicateSymbol if the ticker is already listed;
// symbols are never updated in place.
func (s *SymbolService) CreateSymbol(ctx context.Context, req request.CreateSymbolRequest) (model.Symbol, error) {
	symbol := model.Symbol{
		Ticker: req.Ticker,
		Ratio:  req.Ratio,
	}

	if err := s.symbolRepo.InsertSymbol(ctx, symbol); err != nil {
		return model.Symbol{}, fmt.Errorf("failed to create symbol: %w", err)
	}
	s.reports.Invalidate()

	return symbol, nil
}

// DeleteSymbol unlists a ticker. Operations referencing it remain and will
// show as unlisted while the position is open.
func (s *SymbolService) DeleteSymbol(ctx context.Context, ticker string) error {
	if err := s.symbolRepo.DeleteSymbol(ctx, ticker); err != nil {
		return fmt.Errorf("failed to delete symbol: %w", err)
	}
	s.reports.Invalidate()
	return nil
}
