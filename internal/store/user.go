package store

import (
	"sync"

	"github.com/efreitasn/memebid/internal/domain"
)

// UserStore is a thread-safe in-memory store for users,
// keyed by user_id.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{
		users: make(map[string]*domain.User),
	}
}

// Create adds a user to the store. It returns
// domain.ErrUserAlreadyExists if a user with the same ID
// already exists.
func (s *UserStore) Create(u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.UserID]; exists {
		return domain.ErrUserAlreadyExists
	}
	s.users[u.UserID] = u
	return nil
}

// Get retrieves a user by ID. It returns
// domain.ErrUserNotFound if the user does not exist.
func (s *UserStore) Get(id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// Exists returns true if a user with the given ID exists.
func (s *UserStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok
}
