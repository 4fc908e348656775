package models

import "time"

// EventType names a change to a portfolio aggregate.
type EventType string

const (
	EventPortfolioCreated   EventType = "portfolio.created"
	EventPortfolioRenamed   EventType = "portfolio.renamed"
	EventPortfolioDeleted   EventType = "portfolio.deleted"
	EventHoldingAdded       EventType = "holding.added"
	EventHoldingRemoved     EventType = "holding.removed"
	EventTransactionAdded   EventType = "transaction.added"
	EventTransactionRemoved EventType = "transaction.removed"
)

// Event records a mutation. HoldingID and TransactionID are zero when the
// event is not about a holding or transaction.
type Event struct {
	Type          EventType
	PortfolioID   PortfolioID
	HoldingID     HoldingID
	TransactionID TransactionID
	OccurredAt    time.Time
}

func newEvent(t EventType, pid PortfolioID) Event {
	return Event{Type: t, PortfolioID: pid, OccurredAt: time.Now().UTC()}
}

// PortfolioDeletedEvent is raised by the caller that removes the aggregate
// from storage; the aggregate never deletes itself.
func PortfolioDeletedEvent(id PortfolioID) Event {
	return newEvent(EventPortfolioDeleted, id)
}
