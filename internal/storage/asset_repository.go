package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	pq "github.com/lib/pq"

	"github.com/guttosm/portfoli/internal/domain/models"
)

const assetColumns = `id, exchange, ticker, name, asset_type`

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) AssetRepository {
	return &assetRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*models.Asset, error) {
	var (
		id                           models.AssetID
		exchange, ticker, name, kind string
	)
	if err := row.Scan(&id, &exchange, &ticker, &name, &kind); err != nil {
		return nil, err
	}
	return models.RestoreAsset(id, exchange, ticker, name, models.AssetType(kind))
}

func (r *assetRepository) Get(ctx context.Context, id models.AssetID) (*models.Asset, error) {
	a, err := scanAsset(r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("asset %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get asset %s: %w", id, err)
	}
	return a, nil
}

// GetByTicker resolves the catalog entry for (exchange, ticker). Both are
// normalised the same way as on insert.
func (r *assetRepository) GetByTicker(ctx context.Context, exchange, ticker string) (*models.Asset, error) {
	key := models.NewAssetKey(exchange, ticker)
	a, err := scanAsset(r.db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE exchange = $1 AND ticker = $2`,
		key.Exchange, key.Ticker,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("asset %s: %w", key, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get asset %s: %w", key, err)
	}
	return a, nil
}

func (r *assetRepository) List(ctx context.Context) ([]*models.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY exchange, ticker`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	out := []*models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *assetRepository) Add(ctx context.Context, a *models.Asset) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO assets (`+assetColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		a.ID(), a.Exchange(), a.Ticker(), a.Name(), string(a.Type()),
	)
	if isPQError(err, "unique_violation") {
		return fmt.Errorf("%s: %w", a.Key(), models.ErrAssetExists)
	}
	if err != nil {
		return fmt.Errorf("insert asset %s: %w", a.Key(), err)
	}
	return nil
}

func (r *assetRepository) AddBatch(ctx context.Context, assets []*models.Asset) (int, error) {
	if len(assets) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assets (`+assetColumns+`) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (exchange, ticker) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, a := range sortedByKey(assets) {
		res, err := stmt.ExecContext(ctx, a.ID(), a.Exchange(), a.Ticker(), a.Name(), string(a.Type()))
		if err != nil {
			return 0, fmt.Errorf("insert asset %s: %w", a.Key(), err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// Delete fails with models.ErrAssetInUse while any holding references the
// asset.
func (r *assetRepository) Delete(ctx context.Context, id models.AssetID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if isPQError(err, "foreign_key_violation") {
		return fmt.Errorf("asset %s: %w", id, models.ErrAssetInUse)
	}
	if err != nil {
		return fmt.Errorf("delete asset %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete asset %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("asset %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func isPQError(err error, name string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == name
}

// sortedByKey returns a copy of assets ordered by (exchange, ticker), so
// concurrent batches take row locks on overlapping keys in the same order.
func sortedByKey(assets []*models.Asset) []*models.Asset {
	out := make([]*models.Asset, len(assets))
	copy(out, assets)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := out[i].Key(), out[j].Key()
		if ki.Exchange != kj.Exchange {
			return ki.Exchange < kj.Exchange
		}
		return ki.Ticker < kj.Ticker
	})
	return out
}
