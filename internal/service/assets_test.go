package service

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/domain/result"
	"github.com/guttosm/portfoli/internal/storage"
)

func TestAssetService_CreateAsset(t *testing.T) {
	cases := []struct {
		name     string
		in       AssetInput
		category result.Category
		fields   []string
	}{
		{name: "normalised", in: AssetInput{Exchange: " nasdaq ", Ticker: "aapl", Name: "Apple Inc.", AssetType: "stock"}},
		{name: "missing symbols", in: AssetInput{AssetType: "ETF"}, category: result.Validation, fields: []string{"exchange", "ticker"}},
		{name: "unknown type", in: AssetInput{Exchange: "NYSE", Ticker: "X", AssetType: "Bond"}, category: result.Validation, fields: []string{"assetType"}},
		{name: "duplicate key", in: AssetInput{Exchange: "NASDAQ", Ticker: "MSFT", AssetType: "Stock"}, category: result.Conflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			rec := newCountingRecorder()
			svc := NewAssetService(f.store.Assets(), rec)

			r := svc.CreateAsset(context.Background(), tc.in)
			if tc.category == "" {
				id := mustOK(t, r)
				a := mustOK(t, svc.GetAsset(context.Background(), id))
				if a.Exchange() != "NASDAQ" || a.Ticker() != "AAPL" || a.Type() != models.AssetTypeStock {
					t.Fatalf("asset not normalised: %s/%s %s", a.Exchange(), a.Ticker(), a.Type())
				}
				if rec.mutations["create_asset"] != 1 {
					t.Fatalf("mutation not counted")
				}
				return
			}
			wantCategory(t, r, tc.category)
			for _, field := range tc.fields {
				if _, ok := r.Err().FieldErrors[field]; !ok {
					t.Fatalf("missing field error %q in %v", field, r.Err().FieldErrors)
				}
			}
		})
	}
}

func TestAssetService_FindAndList(t *testing.T) {
	f := newFixture(t)
	svc := NewAssetService(f.store.Assets(), nil)
	ctx := context.Background()

	a := mustOK(t, svc.FindAsset(ctx, "nasdaq", "msft"))
	if a.Ticker() != "MSFT" {
		t.Fatalf("found %s", a.Ticker())
	}
	wantCategory(t, svc.FindAsset(ctx, "NYSE", "MSFT"), result.NotFound)
	wantCategory(t, svc.GetAsset(ctx, models.NewAssetID()), result.NotFound)

	if list := mustOK(t, svc.ListAssets(ctx)); len(list) != 2 {
		t.Fatalf("assets = %d, want 2", len(list))
	}
}

func TestAssetService_DeleteAsset(t *testing.T) {
	f := newFixture(t)
	svc := NewAssetService(f.store.Assets(), nil)
	ctx := context.Background()

	pid := mustOK(t, f.svc.CreatePortfolio(ctx, "Growth"))
	mustOK(t, f.svc.CreateHolding(ctx, pid, "NASDAQ", "AAPL"))
	aapl := mustOK(t, svc.FindAsset(ctx, "NASDAQ", "AAPL"))
	msft := mustOK(t, svc.FindAsset(ctx, "NASDAQ", "MSFT"))

	inUse := svc.DeleteAsset(ctx, aapl.ID())
	wantCategory(t, inUse, result.Conflict)
	if !errors.Is(inUse.Err(), models.ErrAssetInUse) {
		t.Fatalf("expected asset in use, got %v", inUse.Err())
	}

	mustOK(t, svc.DeleteAsset(ctx, msft.ID()))
	wantCategory(t, svc.DeleteAsset(ctx, msft.ID()), result.NotFound)
}

type brokenAssets struct {
	storage.AssetRepository
}

func (brokenAssets) List(context.Context) ([]*models.Asset, error) {
	return nil, errors.New("connection reset")
}

func TestAssetService_StorageFailureIsUnexpected(t *testing.T) {
	rec := newCountingRecorder()
	svc := NewAssetService(brokenAssets{}, rec)

	r := svc.ListAssets(context.Background())

	wantCategory(t, r, result.Unexpected)
	if r.Err().Message == "connection reset" {
		t.Fatalf("storage detail leaked to caller")
	}
	if rec.rejections["list_assets/unexpected"] != 1 {
		t.Fatalf("rejections = %v", rec.rejections)
	}
}
