package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// AssetRepository provides data access methods for the non-portfolio asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssets retrieves all assets ordered by ID.
func (r *AssetRepository) GetAssets(ctx context.Context) ([]model.Asset, error) {
	return listAssets(ctx, r.db)
}

// InsertAsset stores a new asset.
func (r *AssetRepository) InsertAsset(ctx context.Context, a model.Asset) error {
	return upsertAsset(ctx, r.db, a)
}

// DeleteAsset removes an asset by ID.
// Returns apperrors.ErrAssetNotFound if it does not exist.
func (r *AssetRepository) DeleteAsset(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM asset WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return expectAffected(res, apperrors.ErrAssetNotFound)
}

// UpsertAssets writes a batch of assets in one transaction.
func (r *AssetRepository) UpsertAssets(ctx context.Context, assets []model.Asset) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, a := range assets {
			if err := upsertAsset(ctx, tx, a); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceAssets swaps every asset for assets, atomically.
func (r *AssetRepository) ReplaceAssets(ctx context.Context, assets []model.Asset) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		return replaceAssets(ctx, tx, assets)
	})
}

func listAssets(ctx context.Context, q querier) ([]model.Asset, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name, value FROM asset ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		var a model.Asset
		if err := rows.Scan(&a.ID, &a.Name, &a.Value); err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}
	return assets, nil
}

func upsertAsset(ctx context.Context, q querier, a model.Asset) error {
	query := `
		INSERT INTO asset (id, name, value) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, value = excluded.value
	`
	if _, err := q.ExecContext(ctx, query, a.ID, a.Name, a.Value); err != nil {
		return fmt.Errorf("failed to write asset %d: %w", a.ID, err)
	}
	return nil
}

func replaceAssets(ctx context.Context, q querier, assets []model.Asset) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM asset`); err != nil {
		return fmt.Errorf("failed to clear asset table: %w", err)
	}
	for _, a := range assets {
		if err := upsertAsset(ctx, q, a); err != nil {
			return err
		}
	}
	return nil
}
