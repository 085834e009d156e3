package engine

import "sync"

// auction serializes all bid commits for a single item. Bids on
// different items never contend on each other's auction.
type auction struct {
	itemID string
	mu     sync.Mutex
}

// AuctionManager is a thread-safe map of item → auction.
type AuctionManager struct {
	mu       sync.RWMutex
	auctions map[string]*auction
}

// NewAuctionManager creates a new AuctionManager.
func NewAuctionManager() *AuctionManager {
	return &AuctionManager{
		auctions: make(map[string]*auction),
	}
}

// getOrCreate returns the auction for the given item, creating
// one if it doesn't already exist.
func (am *AuctionManager) getOrCreate(itemID string) *auction {
	am.mu.RLock()
	a, ok := am.auctions[itemID]
	am.mu.RUnlock()
	if ok {
		return a
	}

	am.mu.Lock()
	defer am.mu.Unlock()
	// Double-check after acquiring write lock.
	if a, ok = am.auctions[itemID]; ok {
		return a
	}
	a = &auction{itemID: itemID}
	am.auctions[itemID] = a
	return a
}
