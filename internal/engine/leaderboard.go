package engine

import (
	"sync"
	"time"

	"github.com/google/btree"

	"github.com/efreitasn/memebid/internal/domain"
)

// LeaderboardEntry ranks an item by its currently winning bid.
type LeaderboardEntry struct {
	ItemID    string
	BidID     string
	UserID    string
	Username  string
	Amount    int64
	Seq       int64
	CreatedAt time.Time
}

// entryLess orders the leaderboard: amount descending, then earliest
// winning bid, then item ID ascending. Min() returns the top item.
func entryLess(a, b LeaderboardEntry) bool {
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ItemID < b.ItemID
}

// Leaderboard maintains items ordered by their current highest bid
// using a B-tree, with a secondary index for O(log n) replacement when
// an item's winning bid changes.
type Leaderboard struct {
	mu     sync.RWMutex
	tree   *btree.BTreeG[LeaderboardEntry]
	byItem map[string]LeaderboardEntry // item_id → current entry
}

// NewLeaderboard creates an empty Leaderboard.
func NewLeaderboard() *Leaderboard {
	const degree = 32
	return &Leaderboard{
		tree:   btree.NewG[LeaderboardEntry](degree, entryLess),
		byItem: make(map[string]LeaderboardEntry),
	}
}

// Update replaces the item's entry with the given winning bid.
func (l *Leaderboard) Update(bid *domain.Bid) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if old, ok := l.byItem[bid.ItemID]; ok {
		l.tree.Delete(old)
	}
	entry := LeaderboardEntry{
		ItemID:    bid.ItemID,
		BidID:     bid.BidID,
		UserID:    bid.UserID,
		Username:  bid.Username,
		Amount:    bid.Amount,
		Seq:       bid.Seq,
		CreatedAt: bid.CreatedAt,
	}
	l.tree.ReplaceOrInsert(entry)
	l.byItem[bid.ItemID] = entry
}

// Top returns up to n entries ordered by amount descending.
func (l *Leaderboard) Top(n int) []LeaderboardEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	entries := make([]LeaderboardEntry, 0, n)
	l.tree.Ascend(func(e LeaderboardEntry) bool {
		if len(entries) >= n {
			return false
		}
		entries = append(entries, e)
		return true
	})
	return entries
}

// Len returns the number of ranked items.
func (l *Leaderboard) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tree.Len()
}
