package engine

import (
	"testing"
	"time"

	"github.com/efreitasn/memebid/internal/domain"
)

var baseTime = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func makeBid(itemID string, amount int64, createdAt time.Time) *domain.Bid {
	return &domain.Bid{
		BidID:     itemID + "-bid",
		ItemID:    itemID,
		UserID:    "u1",
		Username:  "user one",
		Amount:    amount,
		Seq:       1,
		CreatedAt: createdAt,
	}
}

func TestEntryLess_AmountDescending(t *testing.T) {
	a := LeaderboardEntry{ItemID: "a", Amount: 200, CreatedAt: baseTime}
	b := LeaderboardEntry{ItemID: "b", Amount: 100, CreatedAt: baseTime}
	if !entryLess(a, b) {
		t.Error("expected higher amount to rank first")
	}
	if entryLess(b, a) {
		t.Error("expected lower amount to not rank first")
	}
}

func TestEntryLess_EarliestBidBreaksTies(t *testing.T) {
	a := LeaderboardEntry{ItemID: "a", Amount: 100, CreatedAt: baseTime}
	b := LeaderboardEntry{ItemID: "b", Amount: 100, CreatedAt: baseTime.Add(time.Second)}
	if !entryLess(a, b) {
		t.Error("expected earlier winning bid to rank first at equal amount")
	}
}

func TestEntryLess_ItemIDBreaksRemainingTies(t *testing.T) {
	a := LeaderboardEntry{ItemID: "a", Amount: 100, CreatedAt: baseTime}
	b := LeaderboardEntry{ItemID: "b", Amount: 100, CreatedAt: baseTime}
	if !entryLess(a, b) {
		t.Error("expected smaller item ID to rank first at equal amount and time")
	}
}

func TestLeaderboard_TopOrdering(t *testing.T) {
	l := NewLeaderboard()

	l.Update(makeBid("meme-a", 100, baseTime))
	l.Update(makeBid("meme-b", 300, baseTime))
	l.Update(makeBid("meme-c", 200, baseTime))

	top := l.Top(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].ItemID != "meme-b" || top[1].ItemID != "meme-c" {
		t.Errorf("top = %s, %s; want meme-b, meme-c", top[0].ItemID, top[1].ItemID)
	}
}

func TestLeaderboard_UpdateReplacesEntry(t *testing.T) {
	l := NewLeaderboard()

	l.Update(makeBid("meme-a", 100, baseTime))
	l.Update(makeBid("meme-a", 500, baseTime.Add(time.Second)))

	if l.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", l.Len())
	}
	top := l.Top(1)
	if top[0].Amount != 500 {
		t.Errorf("amount = %d, want 500", top[0].Amount)
	}
}

func TestLeaderboard_TopZero(t *testing.T) {
	l := NewLeaderboard()
	l.Update(makeBid("meme-a", 100, baseTime))

	if top := l.Top(0); len(top) != 0 {
		t.Errorf("Top(0) returned %d entries", len(top))
	}
}
