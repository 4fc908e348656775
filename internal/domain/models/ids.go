package models

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is a UUID tagged with the entity it identifies. Each tag produces a
// distinct type, so a HoldingID cannot be passed where a PortfolioID is
// expected even though both are 16 bytes underneath.
//
// The embedded uuid.UUID provides String, text marshalling (JSON and route
// segments use the canonical UUID form) and sql.Scanner / driver.Valuer.
type ID[T any] struct {
	uuid.UUID
}

type (
	portfolioTag   struct{}
	holdingTag     struct{}
	transactionTag struct{}
	assetTag       struct{}
)

type (
	PortfolioID   = ID[portfolioTag]
	HoldingID     = ID[holdingTag]
	TransactionID = ID[transactionTag]
	AssetID       = ID[assetTag]
)

// IsZero reports whether the ID was never assigned.
func (id ID[T]) IsZero() bool {
	return id.UUID == uuid.Nil
}

func newID[T any]() ID[T] {
	return ID[T]{UUID: uuid.New()}
}

func parseID[T any](kind, s string) (ID[T], error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID[T]{}, fmt.Errorf("invalid %s id %q: %w", kind, s, err)
	}
	return ID[T]{UUID: u}, nil
}

func NewPortfolioID() PortfolioID {
	return newID[portfolioTag]()
}

func NewHoldingID() HoldingID {
	return newID[holdingTag]()
}

func NewTransactionID() TransactionID {
	return newID[transactionTag]()
}

func NewAssetID() AssetID {
	return newID[assetTag]()
}

func ParsePortfolioID(s string) (PortfolioID, error) {
	return parseID[portfolioTag]("portfolio", s)
}

func ParseHoldingID(s string) (HoldingID, error) {
	return parseID[holdingTag]("holding", s)
}

func ParseTransactionID(s string) (TransactionID, error) {
	return parseID[transactionTag]("transaction", s)
}

func ParseAssetID(s string) (AssetID, error) {
	return parseID[assetTag]("asset", s)
}
