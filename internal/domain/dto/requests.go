package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePortfolioRequest is the body of POST /api/v1/portfolios.
type CreatePortfolioRequest struct {
	Name string `json:"name" binding:"required" example:"Retirement"`
}

// RenamePortfolioRequest is the body of PATCH /api/v1/portfolios/{portfolioId}.
type RenamePortfolioRequest struct {
	Name string `json:"name" binding:"required" example:"Retirement (Roth)"`
}

// CreateHoldingRequest names the catalog asset to hold.
type CreateHoldingRequest struct {
	Exchange string `json:"exchange" binding:"required" example:"NASDAQ"`
	Ticker   string `json:"ticker" binding:"required" example:"AAPL"`
}

// CreateTransactionRequest is a buy or sell against a holding. Decimals are
// accepted as JSON numbers or strings.
type CreateTransactionRequest struct {
	Type       string          `json:"type" binding:"required" example:"Buy" enums:"Buy,Sell"`
	Date       time.Time       `json:"date" example:"2024-03-15T10:30:00-05:00"`
	Quantity   decimal.Decimal `json:"quantity" swaggertype:"string" example:"10"`
	Price      decimal.Decimal `json:"price" swaggertype:"string" example:"150.25"`
	Commission decimal.Decimal `json:"commission" swaggertype:"string" example:"0.99"`
}

// CreateAssetRequest adds an instrument to the catalog.
type CreateAssetRequest struct {
	Exchange  string `json:"exchange" binding:"required" example:"NASDAQ"`
	Ticker    string `json:"ticker" binding:"required" example:"AAPL"`
	Name      string `json:"name" example:"Apple Inc."`
	AssetType string `json:"assetType" binding:"required" example:"Stock" enums:"Stock,ETF,Crypto"`
}
