package service

import (
	"context"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/domain/result"
	"github.com/guttosm/portfoli/internal/storage"
)

// AssetInput describes a catalog entry as received from a client.
type AssetInput struct {
	Exchange  string
	Ticker    string
	Name      string
	AssetType string
}

// AssetService manages the asset catalog that holdings reference.
type AssetService interface {
	ListAssets(ctx context.Context) result.Result[[]*models.Asset]
	GetAsset(ctx context.Context, id models.AssetID) result.Result[*models.Asset]
	FindAsset(ctx context.Context, exchange, ticker string) result.Result[*models.Asset]
	CreateAsset(ctx context.Context, in AssetInput) result.Result[models.AssetID]
	DeleteAsset(ctx context.Context, id models.AssetID) result.Result[result.Empty]
}

type assetService struct {
	base
	assets storage.AssetRepository
}

func NewAssetService(assets storage.AssetRepository, rec Recorder) AssetService {
	return &assetService{base: newBase(nil, rec), assets: assets}
}

func (s *assetService) ListAssets(ctx context.Context) result.Result[[]*models.Asset] {
	list, err := s.assets.List(ctx)
	if err != nil {
		return result.Fail[[]*models.Asset](s.reject(ctx, "list_assets", err))
	}
	return result.Ok(list)
}

func (s *assetService) GetAsset(ctx context.Context, id models.AssetID) result.Result[*models.Asset] {
	a, err := s.assets.Get(ctx, id)
	if err != nil {
		return result.Fail[*models.Asset](s.reject(ctx, "get_asset", err))
	}
	return result.Ok(a)
}

func (s *assetService) FindAsset(ctx context.Context, exchange, ticker string) result.Result[*models.Asset] {
	a, err := s.assets.GetByTicker(ctx, exchange, ticker)
	if err != nil {
		return result.Fail[*models.Asset](s.reject(ctx, "find_asset", err))
	}
	return result.Ok(a)
}

func (s *assetService) CreateAsset(ctx context.Context, in AssetInput) result.Result[models.AssetID] {
	const op = "create_asset"
	a, err := models.NewAsset(in.Exchange, in.Ticker, in.Name, models.AssetType(in.AssetType))
	if err != nil {
		return result.Fail[models.AssetID](s.reject(ctx, op, err))
	}
	if err := s.assets.Add(ctx, a); err != nil {
		return result.Fail[models.AssetID](s.reject(ctx, op, err))
	}
	s.metrics.Mutation(op)
	return result.Ok(a.ID())
}

func (s *assetService) DeleteAsset(ctx context.Context, id models.AssetID) result.Result[result.Empty] {
	const op = "delete_asset"
	if err := s.assets.Delete(ctx, id); err != nil {
		return result.Fail[result.Empty](s.reject(ctx, op, err))
	}
	s.metrics.Mutation(op)
	return result.Ok(result.Empty{})
}
