// Package storage persists committed bidding state across process
// restarts. The in-memory stores stay authoritative at runtime; this
// layer is written through on every commit and read once at startup.
package storage

import (
	"context"

	"github.com/efreitasn/memebid/internal/domain"
)

// Store is the durable persistence boundary for users and bids.
// CommitBid must be all-or-nothing: the bid insert and the balance
// write either both survive a restart or neither does.
type Store interface {
	// CreateUser persists a newly registered user and their initial
	// balance. Returns domain.ErrUserAlreadyExists on duplicate IDs.
	CreateUser(ctx context.Context, u *domain.User) error

	// CommitBid persists a committed bid together with the bidder's
	// post-debit balance in a single transaction.
	CommitBid(ctx context.Context, bid *domain.Bid, newBalance int64) error

	// LoadUsers returns all persisted users.
	LoadUsers(ctx context.Context) ([]*domain.User, error)

	// LoadBids returns all persisted bids grouped by item with sequence
	// numbers ascending within each item.
	LoadBids(ctx context.Context) ([]*domain.Bid, error)

	// Close releases any underlying resources.
	Close()
}
