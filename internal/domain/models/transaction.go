package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a trade.
type TransactionType string

const (
	TransactionBuy  TransactionType = "Buy"
	TransactionSell TransactionType = "Sell"
)

// ParseTransactionType accepts "buy"/"sell" in any casing.
func ParseTransactionType(s string) (TransactionType, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(TransactionBuy)):
		return TransactionBuy, nil
	case strings.EqualFold(strings.TrimSpace(s), string(TransactionSell)):
		return TransactionSell, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// Transaction is one buy or sell event. It is immutable; a correction is a
// removal followed by a new transaction.
type Transaction struct {
	id         TransactionID
	txType     TransactionType
	date       time.Time
	quantity   decimal.Decimal
	price      decimal.Decimal
	commission decimal.Decimal
}

// NewTransaction validates the trade and assigns a fresh ID.
func NewTransaction(txType TransactionType, date time.Time, quantity, price, commission decimal.Decimal) (*Transaction, error) {
	return RestoreTransaction(NewTransactionID(), txType, date, quantity, price, commission)
}

// RestoreTransaction rebuilds a transaction read back from storage.
func RestoreTransaction(id TransactionID, txType TransactionType, date time.Time, quantity, price, commission decimal.Decimal) (*Transaction, error) {
	errs := ValidationErrors{}
	if id.IsZero() {
		errs.Add("id", "is required")
	}
	canonical, err := ParseTransactionType(string(txType))
	if err != nil {
		errs.Add("type", "must be Buy or Sell")
	}
	if date.IsZero() {
		errs.Add("date", "is required")
	}
	if !quantity.IsPositive() {
		errs.Add("quantity", "must be greater than zero")
	}
	if !price.IsPositive() {
		errs.Add("price", "must be greater than zero")
	}
	if commission.IsNegative() {
		errs.Add("commission", "must not be negative")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	return &Transaction{
		id:         id,
		txType:     canonical,
		date:       date,
		quantity:   quantity,
		price:      price,
		commission: commission,
	}, nil
}

func (t *Transaction) ID() TransactionID { return t.id }
func (t *Transaction) Type() TransactionType { return t.txType }
func (t *Transaction) Date() time.Time { return t.date }
func (t *Transaction) Quantity() decimal.Decimal { return t.quantity }
func (t *Transaction) Price() decimal.Decimal { return t.price }
func (t *Transaction) Commission() decimal.Decimal { return t.commission }

// Effect is the signed change this transaction applies to a holding's
// quantity.
func (t *Transaction) Effect() decimal.Decimal {
	if t.txType == TransactionSell {
		return t.quantity.Neg()
	}
	return t.quantity
}
