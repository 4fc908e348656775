package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/guttosm/portfoli/internal/domain/models"
)

func newMockPortfolioRepo(t *testing.T) (*portfolioRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &portfolioRepository{db: db}, mock
}

func TestPortfolioRepository_List(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	a, b := models.NewPortfolioID(), models.NewPortfolioID()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM portfolios ORDER BY name, id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(a.String(), "Education").
			AddRow(b.String(), "Retirement"))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].ID != a || got[1].Name != "Retirement" {
		t.Fatalf("unexpected summaries: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_Get(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	pid, hid, aid := models.NewPortfolioID(), models.NewHoldingID(), models.NewAssetID()
	buyID, sellID := models.NewTransactionID(), models.NewTransactionID()
	date := time.Date(2024, 3, 15, 15, 30, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name, version FROM portfolios WHERE id = $1`)).
		WithArgs(pid.String()).
		WillReturnRows(sqlmock.NewRows([]string{"name", "version"}).AddRow("Retirement", int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM transactions t`)).
		WithArgs(pid.String()).
		WillReturnRows(sqlmock.NewRows([]string{"holding_id", "id", "type", "date", "quantity", "price", "commission"}).
			AddRow(hid.String(), buyID.String(), "Buy", date, "10.000000000000000000", "150", "0").
			AddRow(hid.String(), sellID.String(), "Sell", date, "4", "160", "1.5"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM holdings h`)).
		WithArgs(pid.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "asset_id", "exchange", "ticker", "name", "asset_type"}).
			AddRow(hid.String(), aid.String(), "NASDAQ", "AAPL", "Apple Inc.", "Stock"))
	mock.ExpectCommit()

	p, err := repo.Get(context.Background(), pid)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if p.Name() != "Retirement" || p.Version() != 3 {
		t.Fatalf("unexpected portfolio: %s v%d", p.Name(), p.Version())
	}
	h, ok := p.GetHolding(hid)
	if !ok {
		t.Fatalf("holding %s not hydrated", hid)
	}
	if !h.Quantity().Equal(decimal.NewFromInt(6)) {
		t.Fatalf("quantity = %s, want 6", h.Quantity())
	}
	if h.Asset().Ticker() != "AAPL" || h.Asset().ID() != aid {
		t.Fatalf("unexpected asset %+v", h.Asset())
	}
	if _, ok := p.GetTransaction(hid, sellID); !ok {
		t.Fatalf("sell transaction missing")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_GetNotFound(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	pid := models.NewPortfolioID()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT name, version FROM portfolios`)).
		WithArgs(pid.String()).
		WillReturnRows(sqlmock.NewRows([]string{"name", "version"}))
	mock.ExpectRollback()

	_, err := repo.Get(context.Background(), pid)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_Add(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	p, err := models.NewPortfolio("Retirement")
	if err != nil {
		t.Fatal(err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO portfolios (id, name, version) VALUES ($1, $2, 1)`)).
		WithArgs(p.ID().String(), "Retirement").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holdings WHERE portfolio_id = $1`)).
		WithArgs(p.ID().String(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions WHERE holding_id = ANY($1::uuid[])`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.Add(context.Background(), p); err != nil {
		t.Fatalf("add: %v", err)
	}
	if p.Version() != 1 {
		t.Fatalf("version = %d, want 1", p.Version())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_Save(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	asset, _ := models.NewAsset("NASDAQ", "AAPL", "Apple Inc.", models.AssetTypeStock)
	p, _ := models.RestorePortfolio(models.NewPortfolioID(), "Retirement", 4, nil)
	h, _ := models.NewHolding(asset)
	tx, _ := models.NewTransaction(models.TransactionBuy, time.Now(), decimal.NewFromInt(10), decimal.NewFromInt(150), decimal.Zero)
	if err := p.AddHolding(h); err != nil {
		t.Fatal(err)
	}
	if err := p.AddTransaction(h, tx); err != nil {
		t.Fatal(err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE portfolios`)).
		WithArgs(p.ID().String(), "Retirement", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holdings`)).
		WithArgs(p.ID().String(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	holdings := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO holdings`))
	transactions := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO transactions`))
	holdings.ExpectExec().
		WithArgs(h.ID().String(), p.ID().String(), asset.ID().String(), sqlmock.AnyArg(), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	transactions.ExpectExec().
		WithArgs(tx.ID().String(), h.ID().String(), "Buy", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.Version() != 5 {
		t.Fatalf("version = %d, want 5", p.Version())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_SaveAfterRemovingLastTransaction(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	asset, _ := models.NewAsset("NASDAQ", "AAPL", "Apple Inc.", models.AssetTypeStock)
	h, _ := models.NewHolding(asset)
	buy, _ := models.NewTransaction(models.TransactionBuy, time.Now(), decimal.NewFromInt(10), decimal.NewFromInt(150), decimal.Zero)
	p, _ := models.RestorePortfolio(models.NewPortfolioID(), "Retirement", 3, nil)
	if err := p.AddHolding(h); err != nil {
		t.Fatal(err)
	}
	if err := p.AddTransaction(h, buy); err != nil {
		t.Fatal(err)
	}
	if err := p.RemoveTransaction(h, buy); err != nil {
		t.Fatal(err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE portfolios`)).
		WithArgs(p.ID().String(), "Retirement", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holdings`)).
		WithArgs(p.ID().String(), `{"`+h.ID().String()+`"}`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	// The kept-transactions list is empty, not NULL, so the stored Buy is deleted.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions`)).
		WithArgs(`{"`+h.ID().String()+`"}`, "{}").
		WillReturnResult(sqlmock.NewResult(0, 1))
	holdings := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO holdings`))
	mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO transactions`))
	holdings.ExpectExec().
		WithArgs(h.ID().String(), p.ID().String(), asset.ID().String(), sqlmock.AnyArg(), 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_SaveEmptyPortfolioBindsEmptyLists(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	p, _ := models.RestorePortfolio(models.NewPortfolioID(), "Retirement", 1, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE portfolios`)).
		WithArgs(p.ID().String(), "Retirement", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holdings`)).
		WithArgs(p.ID().String(), "{}").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM transactions`)).
		WithArgs("{}", "{}").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_SaveStaleVersion(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	p, _ := models.RestorePortfolio(models.NewPortfolioID(), "Retirement", 2, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE portfolios`)).
		WithArgs(p.ID().String(), "Retirement", int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Save(context.Background(), p)
	if !errors.Is(err, models.ErrConcurrentModification) {
		t.Fatalf("want ErrConcurrentModification, got %v", err)
	}
	if p.Version() != 2 {
		t.Fatalf("version must not move on failure, got %d", p.Version())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_SaveRollsBackOnChildFailure(t *testing.T) {
	repo, mock := newMockPortfolioRepo(t)
	p, _ := models.RestorePortfolio(models.NewPortfolioID(), "Retirement", 1, nil)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE portfolios`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM holdings`)).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	if err := repo.Save(context.Background(), p); err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPortfolioRepository_Delete(t *testing.T) {
	cases := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: models.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newMockPortfolioRepo(t)
			id := models.NewPortfolioID()
			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM portfolios WHERE id = $1`)).
				WithArgs(id.String()).
				WillReturnResult(sqlmock.NewResult(0, tc.affected))

			err := repo.Delete(context.Background(), id)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("want %v, got %v", tc.wantErr, err)
			}
		})
	}
}
