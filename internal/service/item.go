package service

import (
	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/engine"
	"github.com/efreitasn/memebid/internal/store"
)

// ItemService serves read-only views of per-item bidding state.
type ItemService struct {
	items       *domain.ItemRegistry
	bids        *store.BidStore
	leaderboard *engine.Leaderboard
}

// NewItemService creates a new ItemService.
func NewItemService(items *domain.ItemRegistry, bids *store.BidStore, leaderboard *engine.Leaderboard) *ItemService {
	return &ItemService{
		items:       items,
		bids:        bids,
		leaderboard: leaderboard,
	}
}

// HighestBid returns the currently winning bid for the item. It returns
// domain.ErrItemNotFound for items that have never received a bid.
func (s *ItemService) HighestBid(itemID string) (*domain.Bid, error) {
	if !s.items.Exists(itemID) {
		return nil, domain.ErrItemNotFound
	}
	highest, ok := s.bids.CurrentHighest(itemID)
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	return highest, nil
}

// ListBids returns all committed bids for the item in commit order.
// It returns domain.ErrItemNotFound for items that have never received
// a bid.
func (s *ItemService) ListBids(itemID string) ([]*domain.Bid, error) {
	if !s.items.Exists(itemID) {
		return nil, domain.ErrItemNotFound
	}
	return s.bids.ListByItem(itemID), nil
}

// Leaderboard returns up to limit items ranked by current highest bid.
// Limit is clamped to [1, 100]; zero or negative means the default of 10.
func (s *ItemService) Leaderboard(limit int) []engine.LeaderboardEntry {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return s.leaderboard.Top(limit)
}
