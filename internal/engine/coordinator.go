package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/pubsub"
	"github.com/efreitasn/memebid/internal/storage"
	"github.com/efreitasn/memebid/internal/store"
)

// Coordinator validates and commits bids as a single atomic unit
// spanning the bid store and the credit ledger. It is the only caller
// of BidStore.Append and the only writer of balance decrements (via
// the ledger).
type Coordinator struct {
	auctions    *AuctionManager
	bids        *store.BidStore
	ledger      *store.CreditLedger
	users       *store.UserStore
	items       *domain.ItemRegistry
	leaderboard *Leaderboard
	storage     storage.Store
	broker      *pubsub.Broker
}

// NewCoordinator creates a Coordinator with the given dependencies.
func NewCoordinator(
	auctions *AuctionManager,
	bids *store.BidStore,
	ledger *store.CreditLedger,
	users *store.UserStore,
	items *domain.ItemRegistry,
	leaderboard *Leaderboard,
	durable storage.Store,
	broker *pubsub.Broker,
) *Coordinator {
	return &Coordinator{
		auctions:    auctions,
		bids:        bids,
		ledger:      ledger,
		users:       users,
		items:       items,
		leaderboard: leaderboard,
		storage:     durable,
		broker:      broker,
	}
}

// PlaceBid commits a bid of amount cents by userID on itemID, or
// returns one of:
//
//   - domain.ErrInvalidAmount: amount is not a positive value
//   - domain.ErrUserNotFound: unknown bidder
//   - *domain.BidTooLowError: amount does not strictly exceed the
//     current highest bid; carries that amount for retry
//   - domain.ErrInsufficientFunds: the bidder's balance does not cover
//     the amount
//
// The item's commit lock is held from the highest-bid check through the
// durable write, so concurrent bids on the same item serialize and the
// loser of a commit race observes the winner's amount in its error.
// Lock order is fixed: item, then user. A call never holds more than
// one item lock and one user lock, so two simultaneous bids by
// different users on different items cannot deadlock.
//
// On any error no state changes: the durable write runs inside the
// ledger's critical section, before either store is mutated, making the
// whole commit all-or-nothing.
func (c *Coordinator) PlaceBid(ctx context.Context, itemID, userID string, amount int64) (*domain.Bid, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	user, err := c.users.Get(userID)
	if err != nil {
		return nil, err
	}

	a := c.auctions.getOrCreate(itemID)
	a.mu.Lock()
	defer a.mu.Unlock()

	if highest, ok := c.bids.CurrentHighest(itemID); ok && amount <= highest.Amount {
		return nil, &domain.BidTooLowError{CurrentHighest: highest.Amount}
	}

	bid := &domain.Bid{
		BidID:     uuid.New().String(),
		ItemID:    itemID,
		UserID:    userID,
		Username:  user.Username,
		Amount:    amount,
		Seq:       c.bids.NextSeq(itemID),
		CreatedAt: time.Now().UTC(),
	}

	// Debit and durable write commit together: the storage transaction
	// runs inside the per-user critical section, and a storage failure
	// leaves the balance untouched.
	err = c.ledger.DebitWithin(userID, amount, func(newBalance int64) error {
		return c.storage.CommitBid(ctx, bid, newBalance)
	})
	if err != nil {
		return nil, err
	}

	c.bids.Append(bid)
	c.items.Register(itemID)
	c.leaderboard.Update(bid)

	// Publish before releasing the item lock so per-item delivery order
	// matches commit order. Publish only enqueues to subscriber
	// buffers; it never blocks on network I/O.
	c.broker.Publish(domain.BidEvent{Bid: bid})

	return bid, nil
}

// CurrentHighest returns the currently winning bid for the item.
func (c *Coordinator) CurrentHighest(itemID string) (*domain.Bid, bool) {
	return c.bids.CurrentHighest(itemID)
}
