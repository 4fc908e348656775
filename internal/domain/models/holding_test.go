package models

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolding_QuantityTracksNetOfHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		h := mustHolding(t, mustAsset(t, "NYSE", "KO"))
		buys, sells := decimal.Zero, decimal.Zero

		for step := 0; step < 40; step++ {
			qty := decimal.NewFromInt(int64(rng.Intn(20) + 1))
			typ := TransactionBuy
			if rng.Intn(2) == 0 {
				typ = TransactionSell
			}
			tx := mustTx(t, typ, qty.String(), "10")

			err := h.addTransaction(tx)
			switch {
			case typ == TransactionSell && buys.Sub(sells).LessThan(qty):
				require.ErrorIs(t, err, ErrNegativeQuantity)
			case typ == TransactionSell:
				require.NoError(t, err)
				sells = sells.Add(qty)
			default:
				require.NoError(t, err)
				buys = buys.Add(qty)
			}

			require.True(t, h.Quantity().Equal(buys.Sub(sells)), "run %d step %d", run, step)
			require.False(t, h.Quantity().IsNegative())
		}
	}
}

func TestHolding_RejectedAddLeavesStateUntouched(t *testing.T) {
	h := mustHolding(t, mustAsset(t, "NASDAQ", "MSFT"))
	require.NoError(t, h.addTransaction(mustTx(t, TransactionBuy, "3", "300")))
	before := h.Transactions()

	err := h.addTransaction(mustTx(t, TransactionSell, "3.0001", "310"))

	require.ErrorIs(t, err, ErrNegativeQuantity)
	require.ErrorIs(t, err, ErrInvalidOperation)
	assert.True(t, h.Quantity().Equal(dec("3")))
	assert.Equal(t, before, h.Transactions())
}

func TestHolding_DuplicateTransactionRejected(t *testing.T) {
	h := mustHolding(t, mustAsset(t, "NASDAQ", "MSFT"))
	tx := mustTx(t, TransactionBuy, "5", "300")
	require.NoError(t, h.addTransaction(tx))

	err := h.addTransaction(tx)

	assert.ErrorIs(t, err, ErrDuplicateTransaction)
	assert.True(t, h.Quantity().Equal(dec("5")))
	assert.Len(t, h.Transactions(), 1)
}

func TestHolding_NilTransaction(t *testing.T) {
	h := mustHolding(t, mustAsset(t, "NASDAQ", "MSFT"))
	assert.ErrorIs(t, h.addTransaction(nil), ErrInvalidOperation)
	assert.ErrorIs(t, h.removeTransaction(nil), ErrInvalidOperation)
}

func TestHolding_AddThenRemoveRestoresState(t *testing.T) {
	h := mustHolding(t, mustAsset(t, "NASDAQ", "MSFT"))
	require.NoError(t, h.addTransaction(mustTx(t, TransactionBuy, "7.5", "300")))
	require.NoError(t, h.addTransaction(mustTx(t, TransactionSell, "2.25", "300")))
	qty, history := h.Quantity(), h.Transactions()

	tx := mustTx(t, TransactionSell, "1", "320")
	require.NoError(t, h.addTransaction(tx))
	require.NoError(t, h.removeTransaction(tx))

	assert.True(t, h.Quantity().Equal(qty))
	assert.Equal(t, history, h.Transactions())
}

func TestHolding_RemoveMissingTransaction(t *testing.T) {
	h := mustHolding(t, mustAsset(t, "NASDAQ", "MSFT"))
	require.NoError(t, h.addTransaction(mustTx(t, TransactionBuy, "1", "300")))

	err := h.removeTransaction(mustTx(t, TransactionBuy, "1", "300"))

	assert.ErrorIs(t, err, ErrTransactionNotPresent)
	assert.Len(t, h.Transactions(), 1)
}

func TestHolding_RemoveEarlyBuyCoveringLaterSellRejected(t *testing.T) {
	h := mustHolding(t, mustAsset(t, "NASDAQ", "MSFT"))
	buy := mustTx(t, TransactionBuy, "10", "100")
	require.NoError(t, h.addTransaction(buy))
	require.NoError(t, h.addTransaction(mustTx(t, TransactionSell, "8", "110")))
	require.NoError(t, h.addTransaction(mustTx(t, TransactionBuy, "10", "90")))

	err := h.removeTransaction(buy)

	assert.ErrorIs(t, err, ErrNegativeQuantity)
	assert.True(t, h.Quantity().Equal(dec("12")))
	assert.Len(t, h.Transactions(), 3)
}

func TestHolding_GetTransaction(t *testing.T) {
	h := mustHolding(t, mustAsset(t, "NASDAQ", "MSFT"))
	tx := mustTx(t, TransactionBuy, "1", "300")
	require.NoError(t, h.addTransaction(tx))

	got, ok := h.GetTransaction(tx.ID())
	assert.True(t, ok)
	assert.Same(t, tx, got)

	_, ok = h.GetTransaction(NewTransactionID())
	assert.False(t, ok)
}

func TestRestoreHolding(t *testing.T) {
	a := mustAsset(t, "NASDAQ", "MSFT")
	buy := mustTx(t, TransactionBuy, "4", "300")
	sell := mustTx(t, TransactionSell, "1", "300")

	h, err := RestoreHolding(NewHoldingID(), a, []*Transaction{buy, sell})
	require.NoError(t, err)
	assert.True(t, h.Quantity().Equal(dec("3")))

	_, err = RestoreHolding(NewHoldingID(), a, []*Transaction{sell, buy})
	assert.True(t, errors.Is(err, ErrNegativeQuantity))

	_, err = RestoreHolding(NewHoldingID(), nil, nil)
	assert.ErrorIs(t, err, ErrMissingArgument)
}
