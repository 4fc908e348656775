package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAsset_NormalisesSymbols(t *testing.T) {
	a, err := NewAsset(" nasdaq ", "aapl", "Apple Inc.", "stock")
	require.NoError(t, err)

	assert.Equal(t, "NASDAQ", a.Exchange())
	assert.Equal(t, "AAPL", a.Ticker())
	assert.Equal(t, AssetTypeStock, a.Type())
	assert.Equal(t, AssetKey{Exchange: "NASDAQ", Ticker: "AAPL"}, a.Key())
	assert.Equal(t, NewAssetKey("nasdaq", " aapl"), a.Key())
}

func TestNewAsset_Validation(t *testing.T) {
	tests := []struct {
		name      string
		exchange  string
		ticker    string
		assetName string
		assetType AssetType
		field     string
	}{
		{"missing exchange", "", "AAPL", "Apple", AssetTypeStock, "exchange"},
		{"blank ticker", "NASDAQ", "   ", "Apple", AssetTypeStock, "ticker"},
		{"long ticker", "NASDAQ", strings.Repeat("A", MaxTickerLength+1), "Apple", AssetTypeStock, "ticker"},
		{"long name", "NASDAQ", "AAPL", strings.Repeat("n", MaxAssetNameLength+1), AssetTypeStock, "name"},
		{"unknown type", "NASDAQ", "AAPL", "Apple", "Bond", "assetType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAsset(tt.exchange, tt.ticker, tt.assetName, tt.assetType)
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs, tt.field)
		})
	}
}

func TestParseAssetType(t *testing.T) {
	got, err := ParseAssetType("etf")
	require.NoError(t, err)
	assert.Equal(t, AssetTypeETF, got)

	_, err = ParseAssetType("option")
	assert.Error(t, err)
	assert.True(t, AssetTypeCrypto.Valid())
	assert.False(t, AssetType("").Valid())
}
