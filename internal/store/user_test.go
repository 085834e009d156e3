package store

import (
	"errors"
	"testing"
	"time"

	"github.com/efreitasn/memebid/internal/domain"
)

func newTestUser(id string, balance int64) *domain.User {
	return &domain.User{
		UserID:    id,
		Username:  "user " + id,
		Balance:   balance,
		CreatedAt: time.Now(),
	}
}

func TestUserStore_CreateAndGet(t *testing.T) {
	s := NewUserStore()

	u := newTestUser("u1", 50000)
	if err := s.Create(u); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.Get("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UserID != "u1" || got.Balance != 50000 {
		t.Errorf("got user %q balance %d, want u1 / 50000", got.UserID, got.Balance)
	}
}

func TestUserStore_CreateDuplicate(t *testing.T) {
	s := NewUserStore()

	if err := s.Create(newTestUser("u1", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := s.Create(newTestUser("u1", 100))
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Errorf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUserStore_GetMissing(t *testing.T) {
	s := NewUserStore()

	_, err := s.Get("nope")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStore_Exists(t *testing.T) {
	s := NewUserStore()
	if s.Exists("u1") {
		t.Error("expected u1 to not exist")
	}
	if err := s.Create(newTestUser("u1", 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Exists("u1") {
		t.Error("expected u1 to exist")
	}
}
