package storage

import (
	"context"

	"github.com/guttosm/portfoli/internal/domain/models"
)

// PortfolioRepository loads and persists whole portfolio aggregates.
//
// Get returns a fully hydrated aggregate (holdings, their assets and
// transactions). Save commits the graph in one database transaction and
// fails with models.ErrConcurrentModification when the stored version no
// longer matches p.Version(). Missing rows are reported as models.ErrNotFound.
type PortfolioRepository interface {
	List(ctx context.Context) ([]models.PortfolioSummary, error)
	Get(ctx context.Context, id models.PortfolioID) (*models.Portfolio, error)
	Add(ctx context.Context, p *models.Portfolio) error
	Save(ctx context.Context, p *models.Portfolio) error
	Delete(ctx context.Context, id models.PortfolioID) error
}

// AssetRepository is the asset catalog. (Exchange, Ticker) is unique.
type AssetRepository interface {
	Get(ctx context.Context, id models.AssetID) (*models.Asset, error)
	GetByTicker(ctx context.Context, exchange, ticker string) (*models.Asset, error)
	List(ctx context.Context) ([]*models.Asset, error)
	Add(ctx context.Context, a *models.Asset) error
	// AddBatch inserts assets, skipping any whose (exchange, ticker) already
	// exists, and returns how many were inserted.
	AddBatch(ctx context.Context, assets []*models.Asset) (int, error)
	Delete(ctx context.Context, id models.AssetID) error
}
