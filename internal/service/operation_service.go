package service

import (
	"context"
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/request"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

// OperationService handles ledger business logic.
type OperationService struct {
	operationRepo *repository.OperationRepository
	ids           *IDGenerator
	reports       Invalidator
}

// NewOperationService creates a new OperationService with the provided repository dependencies.
func NewOperationService(
	operationRepo *repository.OperationRepository,
	ids *IDGenerator,
	reports Invalidator,
) *OperationService {
	return &OperationService{
		operationRepo: operationRepo,
		ids:           ids,
		reports:       reports,
	}
}

// GetOperations returns the full ledger ordered by date, then id.
func (s *OperationService) GetOperations(ctx context.Context) ([]model.Operation, error) {
	return s.operationRepo.GetOperations(ctx)
}

// GetOperation retrieves a single operation by its ID.
func (s *OperationService) GetOperation(ctx context.Context, id int64) (model.Operation, error) {
	return s.operationRepo.GetOperation(ctx, id)
}

// GetLastMEP returns the exchange rate of the most recently recorded
// operation, used to prefill the next entry.
func (s *OperationService) GetLastMEP(ctx context.Context) (decimal.Decimal, bool, error) {
	return s.operationRepo.GetLastMEP(ctx)
}

// CreateOperation records a validated operation under a newly generated ID.
func (s *OperationService) CreateOperation(ctx context.Context, req request.OperationRequest) (model.Operation, error) {
	op, err := operationFromRequest(s.ids.Next(), req)
	if err != nil {
		return model.Operation{}, err
	}

	if err := s.operationRepo.UpsertOperation(ctx, op); err != nil {
		return model.Operation{}, fmt.Errorf("failed to create operation: %w", err)
	}
	s.reports.Invalidate()

	return op, nil
}

// UpdateOperation replaces every field of an existing operation.
// Returns apperrors.ErrOperationNotFound if id does not exist.
func (s *OperationService) UpdateOperation(ctx context.Context, id int64, req request.OperationRequest) (model.Operation, error) {
	op, err := operationFromRequest(id, req)
	if err != nil {
		return model.Operation{}, err
	}

	if err := s.operationRepo.ReplaceOperation(ctx, op); err != nil {
		return model.Operation{}, fmt.Errorf("failed to update operation: %w", err)
	}
	s.reports.Invalidate()

	return op, nil
}

// DeleteOperation removes an operation from the ledger.
func (s *OperationService) DeleteOperation(ctx context.Context, id int64) error {
	if err := s.operationRepo.DeleteOperation(ctx, id); err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}
	s.reports.Invalidate()
	return nil
}

func operationFromRequest(id int64, req request.OperationRequest) (model.Operation, error) {
	opType, err := model.ParseOperationType(req.Type)
	if err != nil {
		return model.Operation{}, err
	}
	return model.Operation{
		ID:     id,
		Ticker: req.Ticker,
		Type:   opType,
		Qty:    req.Qty,
		Date:   req.Date,
		MEP:    req.MEP,
		Amount: req.Amount,
	}, nil
}
