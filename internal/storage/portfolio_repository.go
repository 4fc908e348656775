package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	pq "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/guttosm/portfoli/internal/domain/models"
)

type portfolioRepository struct {
	db *sql.DB
}

func NewPortfolioRepository(db *sql.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

// List returns every portfolio ordered by name.
func (r *portfolioRepository) List(ctx context.Context) ([]models.PortfolioSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM portfolios ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer rows.Close()

	out := []models.PortfolioSummary{}
	for rows.Next() {
		var s models.PortfolioSummary
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("scan portfolio: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Get hydrates the aggregate from a single read-only snapshot.
func (r *portfolioRepository) Get(ctx context.Context, id models.PortfolioID) (*models.Portfolio, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true, Isolation: sql.LevelRepeatableRead})
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		name    string
		version int64
	)
	err = tx.QueryRowContext(ctx, `SELECT name, version FROM portfolios WHERE id = $1`, id).Scan(&name, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("portfolio %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get portfolio %s: %w", id, err)
	}

	txByHolding, err := r.loadTransactions(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	holdings, err := r.loadHoldings(ctx, tx, id, txByHolding)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return models.RestorePortfolio(id, name, version, holdings)
}

func (r *portfolioRepository) loadHoldings(ctx context.Context, tx *sql.Tx, id models.PortfolioID, txByHolding map[models.HoldingID][]*models.Transaction) ([]*models.Holding, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT h.id, a.id, a.exchange, a.ticker, a.name, a.asset_type
		FROM holdings h
		JOIN assets a ON a.id = h.asset_id
		WHERE h.portfolio_id = $1
		ORDER BY h.position`, id)
	if err != nil {
		return nil, fmt.Errorf("load holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*models.Holding
	for rows.Next() {
		var (
			hid                           models.HoldingID
			aid                           models.AssetID
			exchange, ticker, name, aType string
		)
		if err := rows.Scan(&hid, &aid, &exchange, &ticker, &name, &aType); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		asset, err := models.RestoreAsset(aid, exchange, ticker, name, models.AssetType(aType))
		if err != nil {
			return nil, fmt.Errorf("asset %s: %w", aid, err)
		}
		h, err := models.RestoreHolding(hid, asset, txByHolding[hid])
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *portfolioRepository) loadTransactions(ctx context.Context, tx *sql.Tx, id models.PortfolioID) (map[models.HoldingID][]*models.Transaction, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT t.holding_id, t.id, t.type, t.date, t.quantity, t.price, t.commission
		FROM transactions t
		JOIN holdings h ON h.id = t.holding_id
		WHERE h.portfolio_id = $1
		ORDER BY t.holding_id, t.position`, id)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	defer rows.Close()

	out := make(map[models.HoldingID][]*models.Transaction)
	for rows.Next() {
		var (
			hid                    models.HoldingID
			tid                    models.TransactionID
			typ                    string
			date                   time.Time
			qty, price, commission decimal.Decimal
		)
		if err := rows.Scan(&hid, &tid, &typ, &date, &qty, &price, &commission); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		t, err := models.RestoreTransaction(tid, models.TransactionType(typ), date, qty, price, commission)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", tid, err)
		}
		out[hid] = append(out[hid], t)
	}
	return out, rows.Err()
}

// Add inserts a new aggregate at version 1.
func (r *portfolioRepository) Add(ctx context.Context, p *models.Portfolio) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO portfolios (id, name, version) VALUES ($1, $2, 1)`,
		p.ID(), p.Name(),
	); err != nil {
		return fmt.Errorf("insert portfolio %s: %w", p.ID(), err)
	}
	if err := writeChildren(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	p.SetVersion(1)
	return nil
}

// Save writes the aggregate over its stored copy. Holdings and transactions
// missing from p are deleted (transactions cascade with their holding).
func (r *portfolioRepository) Save(ctx context.Context, p *models.Portfolio) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE portfolios
		SET name = $2, version = version + 1, updated_at = NOW()
		WHERE id = $1 AND version = $3`,
		p.ID(), p.Name(), p.Version(),
	)
	if err != nil {
		return fmt.Errorf("update portfolio %s: %w", p.ID(), err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("update portfolio %s: %w", p.ID(), err)
	} else if n == 0 {
		return fmt.Errorf("save portfolio %s at version %d: %w", p.ID(), p.Version(), models.ErrConcurrentModification)
	}

	if err := writeChildren(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	p.SetVersion(p.Version() + 1)
	return nil
}

func writeChildren(ctx context.Context, tx *sql.Tx, p *models.Portfolio) error {
	holdings := p.Holdings()

	// Empty keep-lists must bind as '{}', never NULL.
	holdingIDs := make([]string, 0, len(holdings))
	transactionIDs := make([]string, 0)
	for _, h := range holdings {
		holdingIDs = append(holdingIDs, h.ID().String())
		for _, t := range h.Transactions() {
			transactionIDs = append(transactionIDs, t.ID().String())
		}
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM holdings WHERE portfolio_id = $1 AND NOT (id = ANY($2::uuid[]))`,
		p.ID(), pq.Array(holdingIDs),
	); err != nil {
		return fmt.Errorf("delete removed holdings: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM transactions WHERE holding_id = ANY($1::uuid[]) AND NOT (id = ANY($2::uuid[]))`,
		pq.Array(holdingIDs), pq.Array(transactionIDs),
	); err != nil {
		return fmt.Errorf("delete removed transactions: %w", err)
	}

	if len(holdings) == 0 {
		return nil
	}

	holdingStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO holdings (id, portfolio_id, asset_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET quantity = EXCLUDED.quantity, position = EXCLUDED.position`)
	if err != nil {
		return fmt.Errorf("prepare holdings: %w", err)
	}
	defer holdingStmt.Close()

	txStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (id, holding_id, type, date, quantity, price, commission, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position`)
	if err != nil {
		return fmt.Errorf("prepare transactions: %w", err)
	}
	defer txStmt.Close()

	for i, h := range holdings {
		if _, err := holdingStmt.ExecContext(ctx, h.ID(), p.ID(), h.Asset().ID(), h.Quantity(), i); err != nil {
			return fmt.Errorf("upsert holding %s: %w", h.ID(), err)
		}
		for j, t := range h.Transactions() {
			if _, err := txStmt.ExecContext(ctx,
				t.ID(), h.ID(), string(t.Type()), t.Date(), t.Quantity(), t.Price(), t.Commission(), j,
			); err != nil {
				return fmt.Errorf("upsert transaction %s: %w", t.ID(), err)
			}
		}
	}
	return nil
}

// Delete removes the portfolio; holdings and transactions cascade.
func (r *portfolioRepository) Delete(ctx context.Context, id models.PortfolioID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete portfolio %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete portfolio %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("portfolio %s: %w", id, models.ErrNotFound)
	}
	return nil
}
