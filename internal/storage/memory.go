package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/guttosm/portfoli/internal/domain/models"
)

// MemoryStore keeps portfolios and assets in process memory with the same
// semantics as the Postgres repositories: aggregates are stored as snapshots,
// so callers never share object graphs, and saves are version checked.
type MemoryStore struct {
	mu         sync.RWMutex
	portfolios map[models.PortfolioID]portfolioSnapshot
	assets     map[models.AssetID]*models.Asset
}

type portfolioSnapshot struct {
	name     string
	version  int64
	holdings []holdingSnapshot
}

// Transactions and assets are immutable, so snapshots may share them.
type holdingSnapshot struct {
	id           models.HoldingID
	assetID      models.AssetID
	transactions []*models.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		portfolios: make(map[models.PortfolioID]portfolioSnapshot),
		assets:     make(map[models.AssetID]*models.Asset),
	}
}

func (s *MemoryStore) Portfolios() PortfolioRepository { return memoryPortfolios{s} }
func (s *MemoryStore) Assets() AssetRepository { return memoryAssets{s} }

type memoryPortfolios struct{ s *MemoryStore }

func (m memoryPortfolios) List(_ context.Context) ([]models.PortfolioSummary, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := make([]models.PortfolioSummary, 0, len(m.s.portfolios))
	for id, p := range m.s.portfolios {
		out = append(out, models.PortfolioSummary{ID: id, Name: p.name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (m memoryPortfolios) Get(_ context.Context, id models.PortfolioID) (*models.Portfolio, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	snap, ok := m.s.portfolios[id]
	if !ok {
		return nil, fmt.Errorf("portfolio %s: %w", id, models.ErrNotFound)
	}

	holdings := make([]*models.Holding, 0, len(snap.holdings))
	for _, hs := range snap.holdings {
		asset, ok := m.s.assets[hs.assetID]
		if !ok {
			return nil, fmt.Errorf("holding %s references asset %s: %w", hs.id, hs.assetID, models.ErrNotFound)
		}
		h, err := models.RestoreHolding(hs.id, asset, hs.transactions)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return models.RestorePortfolio(id, snap.name, snap.version, holdings)
}

func (m memoryPortfolios) Add(_ context.Context, p *models.Portfolio) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, exists := m.s.portfolios[p.ID()]; exists {
		return fmt.Errorf("portfolio %s: %w", p.ID(), models.ErrConflict)
	}
	snap, err := m.s.snapshot(p, 1)
	if err != nil {
		return err
	}
	m.s.portfolios[p.ID()] = snap
	p.SetVersion(1)
	return nil
}

func (m memoryPortfolios) Save(_ context.Context, p *models.Portfolio) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	current, ok := m.s.portfolios[p.ID()]
	if !ok || current.version != p.Version() {
		return fmt.Errorf("save portfolio %s at version %d: %w", p.ID(), p.Version(), models.ErrConcurrentModification)
	}
	snap, err := m.s.snapshot(p, p.Version()+1)
	if err != nil {
		return err
	}
	m.s.portfolios[p.ID()] = snap
	p.SetVersion(snap.version)
	return nil
}

func (m memoryPortfolios) Delete(_ context.Context, id models.PortfolioID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.portfolios[id]; !ok {
		return fmt.Errorf("portfolio %s: %w", id, models.ErrNotFound)
	}
	delete(m.s.portfolios, id)
	return nil
}

// snapshot must be called with mu held.
func (s *MemoryStore) snapshot(p *models.Portfolio, version int64) (portfolioSnapshot, error) {
	snap := portfolioSnapshot{name: p.Name(), version: version}
	for _, h := range p.Holdings() {
		if _, ok := s.assets[h.Asset().ID()]; !ok {
			return portfolioSnapshot{}, fmt.Errorf("holding %s references asset %s: %w", h.ID(), h.Asset().ID(), models.ErrNotFound)
		}
		snap.holdings = append(snap.holdings, holdingSnapshot{
			id:           h.ID(),
			assetID:      h.Asset().ID(),
			transactions: h.Transactions(),
		})
	}
	return snap, nil
}

type memoryAssets struct{ s *MemoryStore }

func (m memoryAssets) Get(_ context.Context, id models.AssetID) (*models.Asset, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	a, ok := m.s.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", id, models.ErrNotFound)
	}
	return a, nil
}

func (m memoryAssets) GetByTicker(_ context.Context, exchange, ticker string) (*models.Asset, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	key := models.NewAssetKey(exchange, ticker)
	if a := m.s.assetByKey(key); a != nil {
		return a, nil
	}
	return nil, fmt.Errorf("asset %s: %w", key, models.ErrNotFound)
}

func (m memoryAssets) List(_ context.Context) ([]*models.Asset, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()

	out := make([]*models.Asset, 0, len(m.s.assets))
	for _, a := range m.s.assets {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Exchange() != out[j].Exchange() {
			return out[i].Exchange() < out[j].Exchange()
		}
		return out[i].Ticker() < out[j].Ticker()
	})
	return out, nil
}

func (m memoryAssets) Add(_ context.Context, a *models.Asset) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.s.assetByKey(a.Key()) != nil {
		return fmt.Errorf("%s: %w", a.Key(), models.ErrAssetExists)
	}
	m.s.assets[a.ID()] = a
	return nil
}

func (m memoryAssets) AddBatch(_ context.Context, assets []*models.Asset) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	inserted := 0
	for _, a := range assets {
		if m.s.assetByKey(a.Key()) != nil {
			continue
		}
		m.s.assets[a.ID()] = a
		inserted++
	}
	return inserted, nil
}

func (m memoryAssets) Delete(_ context.Context, id models.AssetID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.assets[id]; !ok {
		return fmt.Errorf("asset %s: %w", id, models.ErrNotFound)
	}
	for _, p := range m.s.portfolios {
		for _, h := range p.holdings {
			if h.assetID == id {
				return fmt.Errorf("asset %s: %w", id, models.ErrAssetInUse)
			}
		}
	}
	delete(m.s.assets, id)
	return nil
}

func (s *MemoryStore) assetByKey(key models.AssetKey) *models.Asset {
	for _, a := range s.assets {
		if a.Key() == key {
			return a
		}
	}
	return nil
}
