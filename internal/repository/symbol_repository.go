package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// SymbolRepository provides data access methods for the symbol registry.
type SymbolRepository struct {
	db *sql.DB
}

// NewSymbolRepository creates a new SymbolRepository with the provided database connection.
func NewSymbolRepository(db *sql.DB) *SymbolRepository {
	return &SymbolRepository{db: db}
}

// GetSymbols retrieves all listed symbols ordered by ticker.
// Returns an empty, non-nil slice when the registry is empty.
func (r *SymbolRepository) GetSymbols(ctx context.Context) ([]model.Symbol, error) {
	return listSymbols(ctx, r.db)
}

// GetSymbol retrieves a single symbol by ticker.
// Returns apperrors.ErrSymbolNotFound if it is not listed.
func (r *SymbolRepository) GetSymbol(ctx context.Context, ticker string) (model.Symbol, error) {
	var s model.Symbol
	err := r.db.QueryRowContext(ctx, `SELECT ticker, ratio FROM symbol WHERE ticker = ?`, ticker).
		Scan(&s.Ticker, &s.Ratio)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Symbol{}, apperrors.ErrSymbolNotFound
	}
	if err != nil {
		return model.Symbol{}, fmt.Errorf("failed to scan symbol: %w", err)
	}
	return s, nil
}

// InsertSymbol lists a new symbol.
// Returns apperrors.ErrDuplicateSymbol if the ticker is already listed.
func (r *SymbolRepository) InsertSymbol(ctx context.Context, s model.Symbol) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO symbol (ticker, ratio) VALUES (?, ?)`, s.Ticker, s.Ratio)
	if isUniqueViolation(err) {
		return apperrors.ErrDuplicateSymbol
	}
	if err != nil {
		return fmt.Errorf("failed to insert symbol: %w", err)
	}
	return nil
}

// DeleteSymbol unlists a ticker. Operations on it are left untouched.
// Returns apperrors.ErrSymbolNotFound if it is not listed.
func (r *SymbolRepository) DeleteSymbol(ctx context.Context, ticker string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM symbol WHERE ticker = ?`, ticker)
	if err != nil {
		return fmt.Errorf("failed to delete symbol: %w", err)
	}
	return expectAffected(res, apperrors.ErrSymbolNotFound)
}

// UpsertSymbols writes a batch of symbols in one transaction; a ticker
// already listed takes the new ratio.
func (r *SymbolRepository) UpsertSymbols(ctx context.Context, symbols []model.Symbol) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, s := range symbols {
			if err := upsertSymbol(ctx, tx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceSymbols swaps the whole registry for symbols, atomically.
func (r *SymbolRepository) ReplaceSymbols(ctx context.Context, symbols []model.Symbol) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return replaceSymbols(ctx, tx, symbols)
	})
}

func listSymbols(ctx context.Context, q querier) ([]model.Symbol, error) {
	rows, err := q.QueryContext(ctx, `SELECT ticker, ratio FROM symbol ORDER BY ticker ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbol table: %w", err)
	}
	defer rows.Close()

	symbols := []model.Symbol{}
	for rows.Next() {
		var s model.Symbol
		if err := rows.Scan(&s.Ticker, &s.Ratio); err != nil {
			return nil, fmt.Errorf("failed to scan symbol table results: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbol table: %w", err)
	}
	return symbols, nil
}

func upsertSymbol(ctx context.Context, q querier, s model.Symbol) error {
	query := `
		INSERT INTO symbol (ticker, ratio) VALUES (?, ?)
		ON CONFLICT(ticker) DO UPDATE SET ratio = excluded.ratio
	`
	if _, err := q.ExecContext(ctx, query, s.Ticker, s.Ratio); err != nil {
		return fmt.Errorf("failed to write symbol %s: %w", s.Ticker, err)
	}
	return nil
}

func replaceSymbols(ctx context.Context, q querier, symbols []model.Symbol) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM symbol`); err != nil {
		return fmt.Errorf("failed to clear symbol table: %w", err)
	}
	for _, s := range symbols {
		if err := upsertSymbol(ctx, q, s); err != nil {
			return err
		}
	}
	return nil
}
