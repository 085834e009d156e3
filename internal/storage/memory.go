package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/efreitasn/memebid/internal/domain"
)

// Ensure Memory satisfies the Store interface at compile time.
var _ Store = (*Memory)(nil)

// Memory is a Store kept entirely in process memory. It is used when no
// DATABASE_URL is configured and in tests; state does not survive a
// process restart, but reload behaviour is otherwise identical.
type Memory struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	balances map[string]int64
	bids     []*domain.Bid
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		users:    make(map[string]*domain.User),
		balances: make(map[string]int64),
	}
}

// CreateUser records the user and their initial balance.
func (m *Memory) CreateUser(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.users[u.UserID]; exists {
		return domain.ErrUserAlreadyExists
	}
	m.users[u.UserID] = &domain.User{
		UserID:    u.UserID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
	m.balances[u.UserID] = u.Balance
	return nil
}

// CommitBid records the bid and the bidder's post-debit balance.
func (m *Memory) CommitBid(_ context.Context, bid *domain.Bid, newBalance int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bids = append(m.bids, bid)
	m.balances[bid.UserID] = newBalance
	return nil
}

// LoadUsers returns all recorded users with their current balances.
func (m *Memory) LoadUsers(_ context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]*domain.User, 0, len(m.users))
	for id, u := range m.users {
		users = append(users, &domain.User{
			UserID:    u.UserID,
			Username:  u.Username,
			Balance:   m.balances[id],
			CreatedAt: u.CreatedAt,
		})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].UserID < users[j].UserID })
	return users, nil
}

// LoadBids returns all recorded bids grouped by item, sequence ascending.
func (m *Memory) LoadBids(_ context.Context) ([]*domain.Bid, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bids := make([]*domain.Bid, len(m.bids))
	copy(bids, m.bids)
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].ItemID != bids[j].ItemID {
			return bids[i].ItemID < bids[j].ItemID
		}
		return bids[i].Seq < bids[j].Seq
	})
	return bids, nil
}

// Close is a no-op.
func (m *Memory) Close() {}
