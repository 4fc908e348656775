package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var tradeDate = time.Date(2024, 3, 15, 10, 30, 0, 0, time.FixedZone("EST", -5*3600))

func mustAsset(t *testing.T, exchange, ticker string) *Asset {
	t.Helper()
	a, err := NewAsset(exchange, ticker, ticker+" Inc.", AssetTypeStock)
	require.NoError(t, err)
	return a
}

func mustTx(t *testing.T, typ TransactionType, qty, price string) *Transaction {
	t.Helper()
	tx, err := NewTransaction(typ, tradeDate, decimal.RequireFromString(qty), decimal.RequireFromString(price), decimal.Zero)
	require.NoError(t, err)
	return tx
}

func mustHolding(t *testing.T, a *Asset) *Holding {
	t.Helper()
	h, err := NewHolding(a)
	require.NoError(t, err)
	return h
}

func mustPortfolio(t *testing.T, name string) *Portfolio {
	t.Helper()
	p, err := NewPortfolio(name)
	require.NoError(t, err)
	return p
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
