package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/storage"
)

type countingAssets struct {
	storage.AssetRepository
	gets atomic.Int32
}

func (c *countingAssets) Get(ctx context.Context, id models.AssetID) (*models.Asset, error) {
	c.gets.Add(1)
	return c.AssetRepository.Get(ctx, id)
}

func (c *countingAssets) GetByTicker(ctx context.Context, exchange, ticker string) (*models.Asset, error) {
	c.gets.Add(1)
	return c.AssetRepository.GetByTicker(ctx, exchange, ticker)
}

func setup(t *testing.T) (*AssetRepository, redismock.ClientMock, *countingAssets, *models.Asset) {
	t.Helper()
	backend := &countingAssets{AssetRepository: storage.NewMemoryStore().Assets()}
	aapl, err := models.NewAsset("NASDAQ", "AAPL", "Apple Inc.", models.AssetTypeStock)
	require.NoError(t, err)
	require.NoError(t, backend.Add(context.Background(), aapl))

	db, mock := redismock.NewClientMock()
	t.Cleanup(func() { assert.NoError(t, mock.ExpectationsWereMet()) })
	return NewAssetRepository(backend, db, "test:", time.Minute), mock, backend, aapl
}

func encoded(t *testing.T, a *models.Asset) []byte {
	t.Helper()
	data, err := json.Marshal(toRecord(a))
	require.NoError(t, err)
	return data
}

func TestGetByTicker_MissLoadsAndStores(t *testing.T) {
	repo, mock, backend, aapl := setup(t)
	mock.ExpectGet("test:asset:ticker:NASDAQ:AAPL").RedisNil()
	mock.ExpectSet("test:asset:ticker:NASDAQ:AAPL", encoded(t, aapl), time.Minute).SetVal("OK")

	got, err := repo.GetByTicker(context.Background(), "nasdaq", "aapl")

	require.NoError(t, err)
	assert.Equal(t, aapl.ID(), got.ID())
	assert.Equal(t, int32(1), backend.gets.Load())
}

func TestGet_HitSkipsBackend(t *testing.T) {
	repo, mock, backend, aapl := setup(t)
	mock.ExpectGet("test:asset:id:" + aapl.ID().String()).SetVal(string(encoded(t, aapl)))

	got, err := repo.Get(context.Background(), aapl.ID())

	require.NoError(t, err)
	assert.Equal(t, aapl.Key(), got.Key())
	assert.Equal(t, aapl.Name(), got.Name())
	assert.Equal(t, int32(0), backend.gets.Load())
}

func TestGet_RedisDownFallsBackToStorage(t *testing.T) {
	repo, mock, backend, aapl := setup(t)
	key := "test:asset:id:" + aapl.ID().String()
	mock.ExpectGet(key).SetErr(errors.New("connection refused"))
	mock.ExpectSet(key, encoded(t, aapl), time.Minute).SetErr(errors.New("connection refused"))

	got, err := repo.Get(context.Background(), aapl.ID())

	require.NoError(t, err)
	assert.Equal(t, aapl.ID(), got.ID())
	assert.Equal(t, int32(1), backend.gets.Load())
}

func TestGet_NotFoundIsNotCached(t *testing.T) {
	repo, mock, _, _ := setup(t)
	id := models.NewAssetID()
	mock.ExpectGet("test:asset:id:" + id.String()).RedisNil()

	_, err := repo.Get(context.Background(), id)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDelete_EvictsBothKeys(t *testing.T) {
	repo, mock, _, aapl := setup(t)
	mock.ExpectDel("test:asset:id:"+aapl.ID().String(), "test:asset:ticker:NASDAQ:AAPL").SetVal(2)

	require.NoError(t, repo.Delete(context.Background(), aapl.ID()))

	_, err := repo.AssetRepository.Get(context.Background(), aapl.ID())
	assert.ErrorIs(t, err, models.ErrNotFound)
}
