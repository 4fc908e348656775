package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxExchangeLength  = 128
	MaxTickerLength    = 128
	MaxAssetNameLength = 512
)

// AssetType classifies a tradable instrument.
type AssetType string

const (
	AssetTypeStock  AssetType = "Stock"
	AssetTypeETF    AssetType = "ETF"
	AssetTypeCrypto AssetType = "Crypto"
)

var assetTypes = []AssetType{AssetTypeStock, AssetTypeETF, AssetTypeCrypto}

// ParseAssetType accepts any casing of a known asset type and returns its
// canonical form.
func ParseAssetType(s string) (AssetType, error) {
	s = strings.TrimSpace(s)
	for _, t := range assetTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown asset type %q", s)
}

func (t AssetType) Valid() bool {
	_, err := ParseAssetType(string(t))
	return err == nil
}

// AssetKey is the natural key of an asset in the catalog.
type AssetKey struct {
	Exchange string
	Ticker   string
}

// NewAssetKey normalises exchange and ticker the same way NewAsset does.
func NewAssetKey(exchange, ticker string) AssetKey {
	return AssetKey{
		Exchange: normaliseSymbol(exchange),
		Ticker:   normaliseSymbol(ticker),
	}
}

func (k AssetKey) String() string {
	return k.Exchange + ":" + k.Ticker
}

// Asset describes a tradable instrument. Holdings reference assets but never
// own them; the catalog outlives any portfolio.
type Asset struct {
	id        AssetID
	exchange  string
	ticker    string
	name      string
	assetType AssetType
}

// NewAsset validates the description and assigns a fresh ID.
func NewAsset(exchange, ticker, name string, assetType AssetType) (*Asset, error) {
	return RestoreAsset(NewAssetID(), exchange, ticker, name, assetType)
}

// RestoreAsset rebuilds an asset read back from storage.
func RestoreAsset(id AssetID, exchange, ticker, name string, assetType AssetType) (*Asset, error) {
	exchange = normaliseSymbol(exchange)
	ticker = normaliseSymbol(ticker)
	name = strings.TrimSpace(name)

	errs := ValidationErrors{}
	if id.IsZero() {
		errs.Add("id", "is required")
	}
	checkSymbol(errs, "exchange", exchange, MaxExchangeLength)
	checkSymbol(errs, "ticker", ticker, MaxTickerLength)
	if utf8.RuneCountInString(name) > MaxAssetNameLength {
		errs.Add("name", fmt.Sprintf("must be at most %d characters", MaxAssetNameLength))
	}
	canonical, err := ParseAssetType(string(assetType))
	if err != nil {
		errs.Add("assetType", "must be one of Stock, ETF, Crypto")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	return &Asset{
		id:        id,
		exchange:  exchange,
		ticker:    ticker,
		name:      name,
		assetType: canonical,
	}, nil
}

func (a *Asset) ID() AssetID { return a.id }
func (a *Asset) Exchange() string { return a.exchange }
func (a *Asset) Ticker() string { return a.ticker }
func (a *Asset) Name() string { return a.name }
func (a *Asset) Type() AssetType { return a.assetType }
func (a *Asset) Key() AssetKey { return AssetKey{Exchange: a.exchange, Ticker: a.ticker} }

func normaliseSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func checkSymbol(errs ValidationErrors, field, value string, max int) {
	switch {
	case value == "":
		errs.Add(field, "is required")
	case utf8.RuneCountInString(value) > max:
		errs.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}
