package domain

import "time"

// Bid is an immutable record of an amount a user offers for an item.
// Committed bids are never edited or deleted, only superseded by a
// strictly higher bid on the same item.
type Bid struct {
	BidID     string
	ItemID    string
	UserID    string
	Username  string // advisory, display only, never used for authorization
	Amount    int64  // cents
	Seq       int64  // per-item, strictly increasing, never reused
	CreatedAt time.Time
}
