package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const MaxPortfolioNameLength = 512

// PortfolioSummary is the list view of a portfolio.
type PortfolioSummary struct {
	ID   PortfolioID
	Name string
}

// Portfolio is the aggregate root. Holdings and their transactions are only
// mutated through its methods, which is where every invariant is checked:
//   - a holding appears at most once
//   - no two holdings share an (exchange, ticker) pair
//   - each holding's quantity is the non-negative net of its history
//
// A Portfolio is not safe for concurrent use.
type Portfolio struct {
	id       PortfolioID
	name     string
	holdings []*Holding
	version  int64
	events   []Event
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio(name string) (*Portfolio, error) {
	name, err := validatePortfolioName(name)
	if err != nil {
		return nil, err
	}
	p := &Portfolio{id: NewPortfolioID(), name: name}
	p.record(newEvent(EventPortfolioCreated, p.id))
	return p, nil
}

// RestorePortfolio rebuilds a stored portfolio. Holdings are re-added through
// AddHolding so a stored duplicate is reported rather than silently loaded.
func RestorePortfolio(id PortfolioID, name string, version int64, holdings []*Holding) (*Portfolio, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: portfolio id", ErrMissingArgument)
	}
	name, err := validatePortfolioName(name)
	if err != nil {
		return nil, err
	}

	p := &Portfolio{id: id, name: name, version: version}
	for _, h := range holdings {
		if err := p.AddHolding(h); err != nil {
			return nil, fmt.Errorf("restore portfolio %s: %w", id, err)
		}
	}
	p.events = nil
	return p, nil
}

func validatePortfolioName(name string) (string, error) {
	name = strings.TrimSpace(name)
	errs := ValidationErrors{}
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		errs.Add("name", "is required")
	case n > MaxPortfolioNameLength:
		errs.Add("name", fmt.Sprintf("must be at most %d characters", MaxPortfolioNameLength))
	}
	return name, errs.OrNil()
}

func (p *Portfolio) ID() PortfolioID { return p.id }
func (p *Portfolio) Name() string { return p.name }

// Version is the storage revision the aggregate was loaded at.
func (p *Portfolio) Version() int64 { return p.version }

// SetVersion is called by storage after a successful save.
func (p *Portfolio) SetVersion(v int64) { p.version = v }

// Holdings returns the holdings in insertion order. The slice is a copy.
func (p *Portfolio) Holdings() []*Holding {
	out := make([]*Holding, len(p.holdings))
	copy(out, p.holdings)
	return out
}

// Rename changes the display name.
func (p *Portfolio) Rename(name string) error {
	name, err := validatePortfolioName(name)
	if err != nil {
		return err
	}
	if name == p.name {
		return nil
	}
	p.name = name
	p.record(newEvent(EventPortfolioRenamed, p.id))
	return nil
}

// AddHolding appends h unless it is already present or another holding
// covers the same asset.
func (p *Portfolio) AddHolding(h *Holding) error {
	if h == nil {
		return fmt.Errorf("%w: holding", ErrMissingArgument)
	}
	if h.asset == nil {
		return fmt.Errorf("%w: holding asset", ErrMissingArgument)
	}
	key := h.asset.Key()
	for _, existing := range p.holdings {
		if existing.id == h.id {
			return fmt.Errorf("%w: holding %s already in portfolio", ErrDuplicateHolding, h.id)
		}
		if sameAsset(existing.asset.Key(), key) {
			return fmt.Errorf("%w: portfolio already holds %s", ErrDuplicateHolding, key)
		}
	}

	p.holdings = append(p.holdings, h)
	e := newEvent(EventHoldingAdded, p.id)
	e.HoldingID = h.id
	p.record(e)
	return nil
}

// RemoveHolding drops h and, with it, its transactions.
func (p *Portfolio) RemoveHolding(h *Holding) error {
	if h == nil {
		return fmt.Errorf("%w: holding", ErrMissingArgument)
	}
	idx := p.indexOf(h.id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrHoldingNotPresent, h.id)
	}

	p.holdings = append(p.holdings[:idx:idx], p.holdings[idx+1:]...)
	e := newEvent(EventHoldingRemoved, p.id)
	e.HoldingID = h.id
	p.record(e)
	return nil
}

// GetHolding looks up a holding by ID.
func (p *Portfolio) GetHolding(id HoldingID) (*Holding, bool) {
	if i := p.indexOf(id); i >= 0 {
		return p.holdings[i], true
	}
	return nil, false
}

// HoldingFor returns the holding of the given asset, if any.
func (p *Portfolio) HoldingFor(key AssetKey) (*Holding, bool) {
	for _, h := range p.holdings {
		if sameAsset(h.asset.Key(), key) {
			return h, true
		}
	}
	return nil, false
}

// AddTransaction records t against holding h, which must belong to p.
func (p *Portfolio) AddTransaction(h *Holding, t *Transaction) error {
	if err := p.checkMember(h, t); err != nil {
		return err
	}
	if err := h.addTransaction(t); err != nil {
		return err
	}
	p.recordTransaction(EventTransactionAdded, h, t)
	return nil
}

// RemoveTransaction reverses t on holding h, which must belong to p.
func (p *Portfolio) RemoveTransaction(h *Holding, t *Transaction) error {
	if err := p.checkMember(h, t); err != nil {
		return err
	}
	if err := h.removeTransaction(t); err != nil {
		return err
	}
	p.recordTransaction(EventTransactionRemoved, h, t)
	return nil
}

// GetTransaction finds a transaction through its holding.
func (p *Portfolio) GetTransaction(holdingID HoldingID, transactionID TransactionID) (*Transaction, bool) {
	h, ok := p.GetHolding(holdingID)
	if !ok {
		return nil, false
	}
	return h.GetTransaction(transactionID)
}

// Events drains the events recorded since the last call.
func (p *Portfolio) Events() []Event {
	events := p.events
	p.events = nil
	return events
}

func (p *Portfolio) checkMember(h *Holding, t *Transaction) error {
	if h == nil {
		return fmt.Errorf("%w: holding", ErrMissingArgument)
	}
	if t == nil {
		return fmt.Errorf("%w: transaction", ErrMissingArgument)
	}
	if i := p.indexOf(h.id); i < 0 || p.holdings[i] != h {
		return fmt.Errorf("%w: %s", ErrHoldingNotPresent, h.id)
	}
	return nil
}

func (p *Portfolio) indexOf(id HoldingID) int {
	for i, h := range p.holdings {
		if h.id == id {
			return i
		}
	}
	return -1
}

func (p *Portfolio) record(e Event) {
	p.events = append(p.events, e)
}

func (p *Portfolio) recordTransaction(t EventType, h *Holding, tx *Transaction) {
	e := newEvent(t, p.id)
	e.HoldingID = h.id
	e.TransactionID = tx.id
	p.record(e)
}

func sameAsset(a, b AssetKey) bool {
	return strings.EqualFold(a.Exchange, b.Exchange) && strings.EqualFold(a.Ticker, b.Ticker)
}
