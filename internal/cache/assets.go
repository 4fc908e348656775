// Package cache puts a Redis read-through cache in front of the asset
// catalog. Assets are immutable once created, so entries only need to be
// dropped when an asset is deleted.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/logger"
	"github.com/guttosm/portfoli/internal/storage"
)

const DefaultTTL = 10 * time.Minute

// assetRecord is the cached JSON form of a models.Asset.
type assetRecord struct {
	ID       string `json:"id"`
	Exchange string `json:"exchange"`
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Type     string `json:"type"`
}

func toRecord(a *models.Asset) assetRecord {
	return assetRecord{
		ID:       a.ID().String(),
		Exchange: a.Exchange(),
		Ticker:   a.Ticker(),
		Name:     a.Name(),
		Type:     string(a.Type()),
	}
}

func (r assetRecord) toAsset() (*models.Asset, error) {
	id, err := models.ParseAssetID(r.ID)
	if err != nil {
		return nil, err
	}
	return models.RestoreAsset(id, r.Exchange, r.Ticker, r.Name, models.AssetType(r.Type))
}

// AssetRepository decorates a storage.AssetRepository. Lookups by id and by
// (exchange, ticker) are cached; concurrent misses for the same key share a
// single backend call. Redis failures degrade to the backend.
type AssetRepository struct {
	storage.AssetRepository

	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
	group  singleflight.Group
}

func NewAssetRepository(next storage.AssetRepository, rdb redis.Cmdable, prefix string, ttl time.Duration) *AssetRepository {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &AssetRepository{AssetRepository: next, rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *AssetRepository) idKey(id models.AssetID) string {
	return c.prefix + "asset:id:" + id.String()
}

func (c *AssetRepository) tickerKey(key models.AssetKey) string {
	return c.prefix + "asset:ticker:" + key.Exchange + ":" + key.Ticker
}

func (c *AssetRepository) Get(ctx context.Context, id models.AssetID) (*models.Asset, error) {
	return c.lookup(ctx, c.idKey(id), func(ctx context.Context) (*models.Asset, error) {
		return c.AssetRepository.Get(ctx, id)
	})
}

func (c *AssetRepository) GetByTicker(ctx context.Context, exchange, ticker string) (*models.Asset, error) {
	key := models.NewAssetKey(exchange, ticker)
	return c.lookup(ctx, c.tickerKey(key), func(ctx context.Context) (*models.Asset, error) {
		return c.AssetRepository.GetByTicker(ctx, key.Exchange, key.Ticker)
	})
}

// Delete removes the asset from storage first, then evicts both cache keys.
func (c *AssetRepository) Delete(ctx context.Context, id models.AssetID) error {
	a, err := c.AssetRepository.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := c.AssetRepository.Delete(ctx, id); err != nil {
		return err
	}
	if err := c.rdb.Del(ctx, c.idKey(id), c.tickerKey(a.Key())).Err(); err != nil {
		logger.L().Warn().Err(err).Str("asset_id", id.String()).Msg("asset cache eviction failed")
	}
	return nil
}

func (c *AssetRepository) lookup(ctx context.Context, key string, load func(context.Context) (*models.Asset, error)) (*models.Asset, error) {
	data, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rec assetRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			if a, err := rec.toAsset(); err == nil {
				return a, nil
			}
		}
		logger.L().Warn().Str("key", key).Msg("discarding unreadable asset cache entry")
	case !errors.Is(err, redis.Nil):
		logger.L().Warn().Err(err).Str("key", key).Msg("asset cache read failed")
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		a, err := load(ctx)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, a)
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Asset), nil
}

func (c *AssetRepository) store(ctx context.Context, key string, a *models.Asset) {
	data, err := json.Marshal(toRecord(a))
	if err != nil {
		logger.L().Warn().Err(err).Msg("asset cache encode failed")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.L().Warn().Err(fmt.Errorf("set %s: %w", key, err)).Msg("asset cache write failed")
	}
}
