package store

import (
	"sync"

	"github.com/efreitasn/memebid/internal/domain"
)

// itemBids holds the per-item bid log, the highest-bid index entry, and
// the next sequence number for that item.
type itemBids struct {
	bids    []*domain.Bid // chronological, amounts strictly increasing
	highest *domain.Bid
	nextSeq int64
}

// BidStore is a thread-safe, append-only store of bid records per item,
// with a derived highest-bid index. Append must be called only by the
// bid coordinator after validation, under the item's commit lock.
type BidStore struct {
	mu    sync.RWMutex
	items map[string]*itemBids
}

// NewBidStore creates an empty BidStore.
func NewBidStore() *BidStore {
	return &BidStore{
		items: make(map[string]*itemBids),
	}
}

// CurrentHighest returns the currently winning bid for the item, or
// (nil, false) when the item has no bids. Ties cannot occur: a bid is
// only accepted when strictly greater than the previous highest, so the
// index always points at the single most recent bid.
func (s *BidStore) CurrentHighest(itemID string) (*domain.Bid, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ib, ok := s.items[itemID]
	if !ok || ib.highest == nil {
		return nil, false
	}
	return ib.highest, true
}

// NextSeq returns the sequence number the next committed bid for the
// item will receive. Sequence numbers are per-item, start at 1, and are
// never reused. Only meaningful under the item's commit lock, where no
// concurrent Append for the same item can run.
func (s *BidStore) NextSeq(itemID string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ib, ok := s.items[itemID]
	if !ok {
		return 1
	}
	return ib.nextSeq
}

// Append inserts a committed bid and updates the item's highest-bid
// index in the same atomic step. The bid's Seq must equal NextSeq for
// its item, which the coordinator guarantees by holding the item's
// commit lock from NextSeq through Append.
func (s *BidStore) Append(bid *domain.Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ib, ok := s.items[bid.ItemID]
	if !ok {
		ib = &itemBids{nextSeq: 1}
		s.items[bid.ItemID] = ib
	}
	ib.bids = append(ib.bids, bid)
	ib.highest = bid
	ib.nextSeq = bid.Seq + 1
}

// ListByItem returns all bids for an item in commit order.
// Returns an empty slice if no bids exist for the item.
func (s *BidStore) ListByItem(itemID string) []*domain.Bid {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ib, ok := s.items[itemID]
	if !ok {
		return []*domain.Bid{}
	}

	// Return a copy to avoid callers mutating the internal slice.
	result := make([]*domain.Bid, len(ib.bids))
	copy(result, ib.bids)
	return result
}

// Items returns the IDs of all items with at least one bid.
func (s *BidStore) Items() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	return ids
}

// Restore rebuilds the store from bids loaded out of durable storage.
// Input must be grouped by item with sequence numbers ascending within
// each item, which is how the storage layer returns them. Only called
// during startup, before any concurrent access.
func (s *BidStore) Restore(bids []*domain.Bid) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bid := range bids {
		ib, ok := s.items[bid.ItemID]
		if !ok {
			ib = &itemBids{nextSeq: 1}
			s.items[bid.ItemID] = ib
		}
		ib.bids = append(ib.bids, bid)
		ib.highest = bid
		ib.nextSeq = bid.Seq + 1
	}
}
