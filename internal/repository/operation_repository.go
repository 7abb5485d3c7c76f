package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/shopspring/decimal"
)

// OperationRepository provides data access methods for the operation table.
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new OperationRepository with the provided database connection.
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

const operationColumns = `id, ticker, type, qty, date, mep, amount`

// GetOperations retrieves every operation ordered by date, then id.
// Returns an empty, non-nil slice when the ledger is empty.
func (r *OperationRepository) GetOperations(ctx context.Context) ([]model.Operation, error) {
	return listOperations(ctx, r.db)
}

// GetOperation retrieves a single operation by its ID.
// Returns apperrors.ErrOperationNotFound if it does not exist.
func (r *OperationRepository) GetOperation(ctx context.Context, id int64) (model.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM "operation" WHERE id = ?`

	op, err := scanOperation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Operation{}, apperrors.ErrOperationNotFound
	}
	if err != nil {
		return model.Operation{}, fmt.Errorf("failed to scan operation: %w", err)
	}
	return op, nil
}

// GetLastMEP returns the exchange rate of the most recently recorded
// operation that carries one. ok is false when no operation has a rate.
func (r *OperationRepository) GetLastMEP(ctx context.Context) (mep decimal.Decimal, ok bool, err error) {
	query := `
		SELECT mep
		FROM "operation"
		WHERE CAST(mep AS REAL) > 0
		ORDER BY id DESC
		LIMIT 1
	`
	err = r.db.QueryRowContext(ctx, query).Scan(&mep)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("failed to query last rate: %w", err)
	}
	return mep, true, nil
}

// UpsertOperation writes op under its ID, replacing every field of an
// existing record.
func (r *OperationRepository) UpsertOperation(ctx context.Context, op model.Operation) error {
	return upsertOperation(ctx, r.db, op)
}

// ReplaceOperation replaces an existing operation.
// Returns apperrors.ErrOperationNotFound if no operation has op.ID.
func (r *OperationRepository) ReplaceOperation(ctx context.Context, op model.Operation) error {
	query := `
		UPDATE "operation"
		SET ticker = ?, type = ?, qty = ?, date = ?, mep = ?, amount = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query, op.Ticker, string(op.Type), op.Qty, op.Date, op.MEP, op.Amount, op.ID)
	if err != nil {
		return fmt.Errorf("failed to update operation: %w", err)
	}
	return expectAffected(res, apperrors.ErrOperationNotFound)
}

// DeleteOperation removes an operation by ID.
// Returns apperrors.ErrOperationNotFound if it does not exist.
func (r *OperationRepository) DeleteOperation(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM "operation" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}
	return expectAffected(res, apperrors.ErrOperationNotFound)
}

// UpsertOperations writes a batch of operations in one transaction.
func (r *OperationRepository) UpsertOperations(ctx context.Context, ops []model.Operation) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, op := range ops {
			if err := upsertOperation(ctx, tx, op); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceOperations deletes the whole ledger and writes ops in its place,
// atomically.
func (r *OperationRepository) ReplaceOperations(ctx context.Context, ops []model.Operation) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return replaceOperations(ctx, tx, ops)
	})
}

func listOperations(ctx context.Context, q querier) ([]model.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM "operation" ORDER BY date ASC, id ASC`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation table: %w", err)
	}
	defer rows.Close()

	ops := []model.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation table results: %w", err)
		}
		ops = append(ops, op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operation table: %w", err)
	}
	return ops, nil
}

func upsertOperation(ctx context.Context, q querier, op model.Operation) error {
	query := `
		INSERT INTO "operation" (` + operationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			ticker = excluded.ticker,
			type = excluded.type,
			qty = excluded.qty,
			date = excluded.date,
			mep = excluded.mep,
			amount = excluded.amount
	`
	_, err := q.ExecContext(ctx, query, op.ID, op.Ticker, string(op.Type), op.Qty, op.Date, op.MEP, op.Amount)
	if err != nil {
		return fmt.Errorf("failed to write operation %d: %w", op.ID, err)
	}
	return nil
}

func replaceOperations(ctx context.Context, q querier, ops []model.Operation) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM "operation"`); err != nil {
		return fmt.Errorf("failed to clear operation table: %w", err)
	}
	for _, op := range ops {
		if err := upsertOperation(ctx, q, op); err != nil {
			return err
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (model.Operation, error) {
	var op model.Operation
	var opType string
	err := row.Scan(&op.ID, &op.Ticker, &opType, &op.Qty, &op.Date, &op.MEP, &op.Amount)
	if err != nil {
		return model.Operation{}, err
	}
	op.Type = model.OperationType(opType)
	return op, nil
}

// expectAffected returns notFound when res reports no affected rows.
func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
