package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
)

// SnapshotRepository reads and writes all three collections together so
// reports and restores see a consistent state.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load reads operations, symbols and assets within a single transaction.
func (r *SnapshotRepository) Load(ctx context.Context) (model.Snapshot, error) {
	var snap model.Snapshot
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		if snap.Operations, err = listOperations(ctx, tx); err != nil {
			return err
		}
		if snap.Symbols, err = listSymbols(ctx, tx); err != nil {
			return err
		}
		snap.Assets, err = listAssets(ctx, tx)
		return err
	})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snap, nil
}

// Replace swaps the named collections for the contents of snap in one
// transaction. Collections not named are left untouched; if any write
// fails nothing is changed.
func (r *SnapshotRepository) Replace(ctx context.Context, snap model.Snapshot, collections ...model.Collection) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, c := range collections {
			var err error
			switch c {
			case model.CollectionSymbols:
				err = replaceSymbols(ctx, tx, snap.Symbols)
			case model.CollectionOperations:
				err = replaceOperations(ctx, tx, snap.Operations)
			case model.CollectionAssets:
				err = replaceAssets(ctx, tx, snap.Assets)
			default:
				err = fmt.Errorf("unknown collection %q", c)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Clear deletes every record in every collection.
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	return r.Replace(ctx, model.Snapshot{}, model.Collections...)
}
