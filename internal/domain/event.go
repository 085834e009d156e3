package domain

// EventKind identifies a class of events published by the engine.
type EventKind string

const (
	// EventBidPlaced is published once per committed bid, in per-item
	// commit order.
	EventBidPlaced EventKind = "bid.placed"
)

// BidEvent carries a committed bid to subscribers.
type BidEvent struct {
	Bid *Bid
}

// Kind returns EventBidPlaced.
func (BidEvent) Kind() EventKind { return EventBidPlaced }
