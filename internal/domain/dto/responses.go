package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/portfoli/internal/domain/models"
)

// CreatedResponse is returned by every create endpoint.
type CreatedResponse struct {
	ID string `json:"id" example:"6f1c3a0e-2b0c-4d43-9a59-4f8c1f2d7b11"`
}

type PortfolioSummaryResponse struct {
	ID   string `json:"id" example:"6f1c3a0e-2b0c-4d43-9a59-4f8c1f2d7b11"`
	Name string `json:"name" example:"Retirement"`
}

type PortfolioResponse struct {
	ID       string            `json:"id" example:"6f1c3a0e-2b0c-4d43-9a59-4f8c1f2d7b11"`
	Name     string            `json:"name" example:"Retirement"`
	Holdings []HoldingResponse `json:"holdings"`
}

type HoldingResponse struct {
	ID           string                `json:"id" example:"0b5d6c1e-8f5e-4a7b-9a44-5a3b5c9d2e10"`
	Asset        AssetResponse         `json:"asset"`
	Quantity     decimal.Decimal       `json:"quantity" swaggertype:"string" example:"6"`
	Transactions []TransactionResponse `json:"transactions"`
}

type TransactionResponse struct {
	ID         string          `json:"id" example:"9e7c6a2b-1d3f-4e5a-8b9c-0d1e2f3a4b5c"`
	Type       string          `json:"type" example:"Buy"`
	Date       time.Time       `json:"date" example:"2024-03-15T10:30:00-05:00"`
	Quantity   decimal.Decimal `json:"quantity" swaggertype:"string" example:"10"`
	Price      decimal.Decimal `json:"price" swaggertype:"string" example:"150.25"`
	Commission decimal.Decimal `json:"commission" swaggertype:"string" example:"0.99"`
}

type AssetResponse struct {
	ID        string `json:"id" example:"3c2b1a09-8f7e-4d6c-5b4a-392817160504"`
	Exchange  string `json:"exchange" example:"NASDAQ"`
	Ticker    string `json:"ticker" example:"AAPL"`
	Name      string `json:"name" example:"Apple Inc."`
	AssetType string `json:"assetType" example:"Stock"`
}

func NewPortfolioSummaries(in []models.PortfolioSummary) []PortfolioSummaryResponse {
	out := make([]PortfolioSummaryResponse, 0, len(in))
	for _, s := range in {
		out = append(out, PortfolioSummaryResponse{ID: s.ID.String(), Name: s.Name})
	}
	return out
}

func NewPortfolioResponse(p *models.Portfolio) PortfolioResponse {
	holdings := p.Holdings()
	resp := PortfolioResponse{
		ID:       p.ID().String(),
		Name:     p.Name(),
		Holdings: make([]HoldingResponse, 0, len(holdings)),
	}
	for _, h := range holdings {
		resp.Holdings = append(resp.Holdings, NewHoldingResponse(h))
	}
	return resp
}

func NewHoldingResponse(h *models.Holding) HoldingResponse {
	txs := h.Transactions()
	resp := HoldingResponse{
		ID:           h.ID().String(),
		Asset:        NewAssetResponse(h.Asset()),
		Quantity:     h.Quantity(),
		Transactions: make([]TransactionResponse, 0, len(txs)),
	}
	for _, t := range txs {
		resp.Transactions = append(resp.Transactions, NewTransactionResponse(t))
	}
	return resp
}

func NewTransactionResponse(t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         t.ID().String(),
		Type:       string(t.Type()),
		Date:       t.Date(),
		Quantity:   t.Quantity(),
		Price:      t.Price(),
		Commission: t.Commission(),
	}
}

func NewAssetResponse(a *models.Asset) AssetResponse {
	return AssetResponse{
		ID:        a.ID().String(),
		Exchange:  a.Exchange(),
		Ticker:    a.Ticker(),
		Name:      a.Name(),
		AssetType: string(a.Type()),
	}
}

func NewAssetResponses(in []*models.Asset) []AssetResponse {
	out := make([]AssetResponse, 0, len(in))
	for _, a := range in {
		out = append(out, NewAssetResponse(a))
	}
	return out
}
