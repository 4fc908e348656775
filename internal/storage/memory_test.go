package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/portfoli/internal/domain/models"
)

func seededMemoryStore(t *testing.T) (*MemoryStore, *models.Asset) {
	t.Helper()
	store := NewMemoryStore()
	aapl, err := models.NewAsset("NASDAQ", "AAPL", "Apple Inc.", models.AssetTypeStock)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Assets().Add(context.Background(), aapl); err != nil {
		t.Fatal(err)
	}
	return store, aapl
}

func TestMemoryStore_RoundTripAndVersioning(t *testing.T) {
	ctx := context.Background()
	store, aapl := seededMemoryStore(t)
	repo := store.Portfolios()

	p, _ := models.NewPortfolio("Retirement")
	if err := repo.Add(ctx, p); err != nil {
		t.Fatalf("add: %v", err)
	}

	loaded, err := repo.Get(ctx, p.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	h, _ := models.NewHolding(aapl)
	tx, _ := models.NewTransaction(models.TransactionBuy, time.Now(), decimal.NewFromInt(10), decimal.NewFromInt(150), decimal.Zero)
	if err := loaded.AddHolding(h); err != nil {
		t.Fatal(err)
	}
	if err := loaded.AddTransaction(h, tx); err != nil {
		t.Fatal(err)
	}

	stale, _ := repo.Get(ctx, p.ID())
	if err := repo.Save(ctx, loaded); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := stale.Rename("Renamed"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, stale); !errors.Is(err, models.ErrConcurrentModification) {
		t.Fatalf("want ErrConcurrentModification, got %v", err)
	}

	again, err := repo.Get(ctx, p.ID())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again == loaded {
		t.Fatal("store must not hand out the saved instance")
	}
	got, ok := again.GetHolding(h.ID())
	if !ok || !got.Quantity().Equal(decimal.NewFromInt(10)) {
		t.Fatalf("holding not persisted: %+v", got)
	}
	if again.Name() != "Retirement" || again.Version() != 2 {
		t.Fatalf("unexpected %s v%d", again.Name(), again.Version())
	}
}

func TestMemoryStore_ListOrderedByName(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Portfolios()
	for _, name := range []string{"Retirement", "Education", "House"} {
		p, _ := models.NewPortfolio(name)
		if err := repo.Add(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	list, _ := repo.List(ctx)
	if len(list) != 3 || list[0].Name != "Education" || list[1].Name != "House" || list[2].Name != "Retirement" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestMemoryStore_AssetRules(t *testing.T) {
	ctx := context.Background()
	store, aapl := seededMemoryStore(t)
	assets := store.Assets()

	dup, _ := models.NewAsset("nasdaq", "aapl", "dup", models.AssetTypeStock)
	if err := assets.Add(ctx, dup); !errors.Is(err, models.ErrAssetExists) {
		t.Fatalf("want ErrAssetExists, got %v", err)
	}

	msft, _ := models.NewAsset("NASDAQ", "MSFT", "Microsoft", models.AssetTypeStock)
	n, _ := assets.AddBatch(ctx, []*models.Asset{dup, msft})
	if n != 1 {
		t.Fatalf("inserted = %d, want 1", n)
	}

	p, _ := models.NewPortfolio("Retirement")
	h, _ := models.NewHolding(aapl)
	_ = p.AddHolding(h)
	if err := store.Portfolios().Add(ctx, p); err != nil {
		t.Fatal(err)
	}
	if err := assets.Delete(ctx, aapl.ID()); !errors.Is(err, models.ErrAssetInUse) {
		t.Fatalf("want ErrAssetInUse, got %v", err)
	}
	if err := assets.Delete(ctx, msft.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := assets.GetByTicker(ctx, "NASDAQ", "MSFT"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	store, aapl := seededMemoryStore(t)
	p, _ := models.NewPortfolio("Retirement")
	h, _ := models.NewHolding(aapl)
	_ = p.AddHolding(h)
	_ = store.Portfolios().Add(ctx, p)

	if err := store.Portfolios().Delete(ctx, p.ID()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Portfolios().Get(ctx, p.ID()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := store.Assets().Delete(ctx, aapl.ID()); err != nil {
		t.Fatalf("asset should be free after cascade: %v", err)
	}
}
