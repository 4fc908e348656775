package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Holding is a position in one asset. Its quantity is always the net of its
// transaction history and never negative. Mutation goes through Portfolio.
type Holding struct {
	id           HoldingID
	asset        *Asset
	quantity     decimal.Decimal
	transactions []*Transaction
}

// NewHolding opens an empty position in asset.
func NewHolding(asset *Asset) (*Holding, error) {
	return RestoreHolding(NewHoldingID(), asset, nil)
}

// RestoreHolding rebuilds a holding from storage by replaying transactions
// in their stored order. A history that would go negative is rejected.
func RestoreHolding(id HoldingID, asset *Asset, transactions []*Transaction) (*Holding, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: holding id", ErrMissingArgument)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: asset", ErrMissingArgument)
	}

	h := &Holding{id: id, asset: asset, quantity: decimal.Zero}
	for _, t := range transactions {
		if err := h.addTransaction(t); err != nil {
			return nil, fmt.Errorf("restore holding %s: %w", id, err)
		}
	}
	return h, nil
}

func (h *Holding) ID() HoldingID { return h.id }
func (h *Holding) Asset() *Asset { return h.asset }
func (h *Holding) Quantity() decimal.Decimal { return h.quantity }

// Transactions returns the history in insertion order. The slice is a copy.
func (h *Holding) Transactions() []*Transaction {
	out := make([]*Transaction, len(h.transactions))
	copy(out, h.transactions)
	return out
}

// GetTransaction looks up a transaction of this holding by ID.
func (h *Holding) GetTransaction(id TransactionID) (*Transaction, bool) {
	if i := h.indexOf(id); i >= 0 {
		return h.transactions[i], true
	}
	return nil, false
}

func (h *Holding) indexOf(id TransactionID) int {
	for i, t := range h.transactions {
		if t.id == id {
			return i
		}
	}
	return -1
}

// addTransaction checks everything before touching state so a rejection
// leaves quantity and history as they were.
func (h *Holding) addTransaction(t *Transaction) error {
	if t == nil {
		return fmt.Errorf("%w: transaction", ErrMissingArgument)
	}
	if h.indexOf(t.id) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTransaction, t.id)
	}

	next := h.quantity.Add(t.Effect())
	if next.IsNegative() {
		return fmt.Errorf("%w: %s %s on %s holds %s",
			ErrNegativeQuantity, t.txType, t.quantity, h.asset.Key(), h.quantity)
	}

	h.quantity = next
	h.transactions = append(h.transactions, t)
	return nil
}

// removeTransaction reverses t. The remaining history is replayed in
// insertion order and the removal is rejected if any prefix of it would be
// negative, e.g. dropping an early buy that a later sell depends on.
func (h *Holding) removeTransaction(t *Transaction) error {
	if t == nil {
		return fmt.Errorf("%w: transaction", ErrMissingArgument)
	}
	idx := h.indexOf(t.id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTransactionNotPresent, t.id)
	}

	running := decimal.Zero
	for i, other := range h.transactions {
		if i == idx {
			continue
		}
		running = running.Add(other.Effect())
		if running.IsNegative() {
			return fmt.Errorf("%w: removing %s leaves %s %s on %s uncovered",
				ErrNegativeQuantity, t.id, other.txType, other.quantity, h.asset.Key())
		}
	}

	remaining := make([]*Transaction, 0, len(h.transactions)-1)
	remaining = append(remaining, h.transactions[:idx]...)
	remaining = append(remaining, h.transactions[idx+1:]...)

	h.quantity = running
	h.transactions = remaining
	return nil
}
