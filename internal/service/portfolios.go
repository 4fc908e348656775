package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/portfoli/internal/domain/models"
	"github.com/guttosm/portfoli/internal/domain/result"
	"github.com/guttosm/portfoli/internal/events"
	"github.com/guttosm/portfoli/internal/storage"
)

// TransactionInput is a buy or sell as received from a client, before
// validation.
type TransactionInput struct {
	Type       string
	Date       time.Time
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal
}

// PortfolioService runs the portfolio use cases. Each mutating call is one
// unit of work: load the aggregate, apply one change, save it.
type PortfolioService interface {
	ListPortfolios(ctx context.Context) result.Result[[]models.PortfolioSummary]
	GetPortfolio(ctx context.Context, id models.PortfolioID) result.Result[*models.Portfolio]
	CreatePortfolio(ctx context.Context, name string) result.Result[models.PortfolioID]
	RenamePortfolio(ctx context.Context, id models.PortfolioID, name string) result.Result[result.Empty]
	DeletePortfolio(ctx context.Context, id models.PortfolioID) result.Result[result.Empty]

	GetHolding(ctx context.Context, pid models.PortfolioID, hid models.HoldingID) result.Result[*models.Holding]
	CreateHolding(ctx context.Context, pid models.PortfolioID, exchange, ticker string) result.Result[models.HoldingID]
	DeleteHolding(ctx context.Context, pid models.PortfolioID, hid models.HoldingID) result.Result[result.Empty]

	GetTransaction(ctx context.Context, pid models.PortfolioID, hid models.HoldingID, tid models.TransactionID) result.Result[*models.Transaction]
	CreateTransaction(ctx context.Context, pid models.PortfolioID, hid models.HoldingID, in TransactionInput) result.Result[models.TransactionID]
	DeleteTransaction(ctx context.Context, pid models.PortfolioID, hid models.HoldingID, tid models.TransactionID) result.Result[result.Empty]
}

type portfolioService struct {
	base
	portfolios storage.PortfolioRepository
	assets     storage.AssetRepository
}

func NewPortfolioService(portfolios storage.PortfolioRepository, assets storage.AssetRepository, publisher events.Publisher, rec Recorder) PortfolioService {
	return &portfolioService{
		base:       newBase(publisher, rec),
		portfolios: portfolios,
		assets:     assets,
	}
}

func (s *portfolioService) ListPortfolios(ctx context.Context) result.Result[[]models.PortfolioSummary] {
	list, err := s.portfolios.List(ctx)
	if err != nil {
		return result.Fail[[]models.PortfolioSummary](s.reject(ctx, "list_portfolios", err))
	}
	return result.Ok(list)
}

func (s *portfolioService) GetPortfolio(ctx context.Context, id models.PortfolioID) result.Result[*models.Portfolio] {
	p, err := s.portfolios.Get(ctx, id)
	if err != nil {
		return result.Fail[*models.Portfolio](s.reject(ctx, "get_portfolio", err))
	}
	return result.Ok(p)
}

func (s *portfolioService) CreatePortfolio(ctx context.Context, name string) result.Result[models.PortfolioID] {
	const op = "create_portfolio"
	p, err := models.NewPortfolio(name)
	if err != nil {
		return result.Fail[models.PortfolioID](s.reject(ctx, op, err))
	}
	if err := s.portfolios.Add(ctx, p); err != nil {
		return result.Fail[models.PortfolioID](s.reject(ctx, op, err))
	}
	s.committed(ctx, op, p.Events())
	return result.Ok(p.ID())
}

func (s *portfolioService) RenamePortfolio(ctx context.Context, id models.PortfolioID, name string) result.Result[result.Empty] {
	const op = "rename_portfolio"
	err := s.mutate(ctx, op, id, func(p *models.Portfolio) error {
		return p.Rename(name)
	})
	if err != nil {
		return result.Fail[result.Empty](s.reject(ctx, op, err))
	}
	return result.Ok(result.Empty{})
}

func (s *portfolioService) DeletePortfolio(ctx context.Context, id models.PortfolioID) result.Result[result.Empty] {
	const op = "delete_portfolio"
	if err := s.portfolios.Delete(ctx, id); err != nil {
		return result.Fail[result.Empty](s.reject(ctx, op, err))
	}
	s.committed(ctx, op, []models.Event{models.PortfolioDeletedEvent(id)})
	return result.Ok(result.Empty{})
}

func (s *portfolioService) GetHolding(ctx context.Context, pid models.PortfolioID, hid models.HoldingID) result.Result[*models.Holding] {
	const op = "get_holding"
	p, err := s.portfolios.Get(ctx, pid)
	if err != nil {
		return result.Fail[*models.Holding](s.reject(ctx, op, err))
	}
	h, err := holdingOf(p, hid)
	if err != nil {
		return result.Fail[*models.Holding](s.reject(ctx, op, err))
	}
	return result.Ok(h)
}

// CreateHolding opens a position in a catalog asset. The asset must already
// exist; holdings never create assets.
func (s *portfolioService) CreateHolding(ctx context.Context, pid models.PortfolioID, exchange, ticker string) result.Result[models.HoldingID] {
	const op = "create_holding"
	key := models.NewAssetKey(exchange, ticker)
	verrs := models.ValidationErrors{}
	if key.Exchange == "" {
		verrs.Add("exchange", "is required")
	}
	if key.Ticker == "" {
		verrs.Add("ticker", "is required")
	}
	if err := verrs.OrNil(); err != nil {
		return result.Fail[models.HoldingID](s.reject(ctx, op, err))
	}

	var id models.HoldingID
	err := s.mutate(ctx, op, pid, func(p *models.Portfolio) error {
		asset, err := s.assets.GetByTicker(ctx, key.Exchange, key.Ticker)
		if err != nil {
			return err
		}
		h, err := models.NewHolding(asset)
		if err != nil {
			return err
		}
		if err := p.AddHolding(h); err != nil {
			return err
		}
		id = h.ID()
		return nil
	})
	if err != nil {
		return result.Fail[models.HoldingID](s.reject(ctx, op, err))
	}
	return result.Ok(id)
}

func (s *portfolioService) DeleteHolding(ctx context.Context, pid models.PortfolioID, hid models.HoldingID) result.Result[result.Empty] {
	const op = "delete_holding"
	err := s.mutate(ctx, op, pid, func(p *models.Portfolio) error {
		h, err := holdingOf(p, hid)
		if err != nil {
			return err
		}
		return p.RemoveHolding(h)
	})
	if err != nil {
		return result.Fail[result.Empty](s.reject(ctx, op, err))
	}
	return result.Ok(result.Empty{})
}

func (s *portfolioService) GetTransaction(ctx context.Context, pid models.PortfolioID, hid models.HoldingID, tid models.TransactionID) result.Result[*models.Transaction] {
	const op = "get_transaction"
	p, err := s.portfolios.Get(ctx, pid)
	if err != nil {
		return result.Fail[*models.Transaction](s.reject(ctx, op, err))
	}
	h, err := holdingOf(p, hid)
	if err != nil {
		return result.Fail[*models.Transaction](s.reject(ctx, op, err))
	}
	t, err := transactionOf(h, tid)
	if err != nil {
		return result.Fail[*models.Transaction](s.reject(ctx, op, err))
	}
	return result.Ok(t)
}

// CreateTransaction validates the input before the aggregate is loaded, so
// malformed requests never reach the invariant checks.
func (s *portfolioService) CreateTransaction(ctx context.Context, pid models.PortfolioID, hid models.HoldingID, in TransactionInput) result.Result[models.TransactionID] {
	const op = "create_transaction"
	t, err := models.NewTransaction(models.TransactionType(in.Type), in.Date, in.Quantity, in.Price, in.Commission)
	if err != nil {
		return result.Fail[models.TransactionID](s.reject(ctx, op, err))
	}

	err = s.mutate(ctx, op, pid, func(p *models.Portfolio) error {
		h, err := holdingOf(p, hid)
		if err != nil {
			return err
		}
		return p.AddTransaction(h, t)
	})
	if err != nil {
		return result.Fail[models.TransactionID](s.reject(ctx, op, err))
	}
	return result.Ok(t.ID())
}

func (s *portfolioService) DeleteTransaction(ctx context.Context, pid models.PortfolioID, hid models.HoldingID, tid models.TransactionID) result.Result[result.Empty] {
	const op = "delete_transaction"
	err := s.mutate(ctx, op, pid, func(p *models.Portfolio) error {
		h, err := holdingOf(p, hid)
		if err != nil {
			return err
		}
		t, err := transactionOf(h, tid)
		if err != nil {
			return err
		}
		return p.RemoveTransaction(h, t)
	})
	if err != nil {
		return result.Fail[result.Empty](s.reject(ctx, op, err))
	}
	return result.Ok(result.Empty{})
}

// mutate is one unit of work. fn's error is returned unchanged so invariant
// violations reach the caller as raised by the aggregate.
func (s *portfolioService) mutate(ctx context.Context, op string, id models.PortfolioID, fn func(*models.Portfolio) error) error {
	p, err := s.portfolios.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	if err := s.portfolios.Save(ctx, p); err != nil {
		return err
	}
	s.committed(ctx, op, p.Events())
	return nil
}

func holdingOf(p *models.Portfolio, id models.HoldingID) (*models.Holding, error) {
	h, ok := p.GetHolding(id)
	if !ok {
		return nil, fmt.Errorf("holding %s in portfolio %s: %w", id, p.ID(), models.ErrNotFound)
	}
	return h, nil
}

func transactionOf(h *models.Holding, id models.TransactionID) (*models.Transaction, error) {
	t, ok := h.GetTransaction(id)
	if !ok {
		return nil, fmt.Errorf("transaction %s in holding %s: %w", id, h.ID(), models.ErrNotFound)
	}
	return t, nil
}
