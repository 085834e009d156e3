package domain

import (
	"sync"
	"time"
)

// User represents a registered bidder with a spendable credit balance.
// The balance is mutated only by the credit ledger, under Mu.
type User struct {
	UserID    string
	Username  string
	Balance   int64 // credits in cents, never negative
	CreatedAt time.Time
	Mu        sync.Mutex // per-user lock for balance mutations
}
