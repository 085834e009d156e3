package store

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/efreitasn/memebid/internal/domain"
	"pgregory.net/rapid"
)

func newTestLedger(t *testing.T, userID string, balance int64) *CreditLedger {
	t.Helper()
	users := NewUserStore()
	if err := users.Create(newTestUser(userID, balance)); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewCreditLedger(users)
}

func TestCreditLedger_Debit(t *testing.T) {
	l := newTestLedger(t, "u1", 50000)

	if err := l.Debit("u1", 10000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	balance, err := l.Balance("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance != 40000 {
		t.Errorf("balance = %d, want 40000", balance)
	}
}

func TestCreditLedger_DebitInsufficientFunds(t *testing.T) {
	l := newTestLedger(t, "u1", 5000)

	err := l.Debit("u1", 6000)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// Balance must be unchanged after a rejected debit.
	balance, _ := l.Balance("u1")
	if balance != 5000 {
		t.Errorf("balance = %d, want 5000", balance)
	}
}

func TestCreditLedger_DebitExactBalance(t *testing.T) {
	l := newTestLedger(t, "u1", 5000)

	if err := l.Debit("u1", 5000); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	balance, _ := l.Balance("u1")
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

func TestCreditLedger_DebitUnknownUser(t *testing.T) {
	l := NewCreditLedger(NewUserStore())

	err := l.Debit("ghost", 100)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestCreditLedger_DebitWithin_HookError(t *testing.T) {
	l := newTestLedger(t, "u1", 5000)

	hookErr := fmt.Errorf("durable write failed")
	err := l.DebitWithin("u1", 1000, func(newBalance int64) error {
		if newBalance != 4000 {
			t.Errorf("hook newBalance = %d, want 4000", newBalance)
		}
		return hookErr
	})
	if !errors.Is(err, hookErr) {
		t.Fatalf("expected hook error, got %v", err)
	}

	// A hook failure must leave the balance untouched.
	balance, _ := l.Balance("u1")
	if balance != 5000 {
		t.Errorf("balance = %d, want 5000", balance)
	}
}

func TestCreditLedger_DebitWithin_HookSkippedOnInsufficientFunds(t *testing.T) {
	l := newTestLedger(t, "u1", 500)

	called := false
	err := l.DebitWithin("u1", 1000, func(int64) error {
		called = true
		return nil
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if called {
		t.Error("hook must not run when the balance check fails")
	}
}

func TestCreditLedger_Credit(t *testing.T) {
	l := newTestLedger(t, "u1", 100)

	if err := l.Credit("u1", 900); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	balance, _ := l.Balance("u1")
	if balance != 1000 {
		t.Errorf("balance = %d, want 1000", balance)
	}
}

// Concurrent debits on the same user must never drive the balance
// negative: the check and write are one critical section.
func TestCreditLedger_ConcurrentDebits(t *testing.T) {
	const workers = 20
	const amount = 100

	// Balance only covers half of the attempted debits.
	l := newTestLedger(t, "u1", workers/2*amount)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Debit("u1", amount); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != workers/2 {
		t.Errorf("succeeded = %d, want %d", succeeded, workers/2)
	}
	balance, _ := l.Balance("u1")
	if balance != 0 {
		t.Errorf("balance = %d, want 0", balance)
	}
}

// Property: after any sequence of debits and credits, the balance equals
// the initial balance plus credits minus accepted debits, and is never
// negative.
func TestProperty_LedgerConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		initial := rapid.Int64Range(0, 100_000).Draw(t, "initial")

		users := NewUserStore()
		if err := users.Create(&domain.User{UserID: "u1", Balance: initial}); err != nil {
			t.Fatalf("create user: %v", err)
		}
		l := NewCreditLedger(users)

		expected := initial
		ops := rapid.IntRange(1, 50).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			amount := rapid.Int64Range(1, 10_000).Draw(t, "amount")
			if rapid.Bool().Draw(t, "isDebit") {
				err := l.Debit("u1", amount)
				if amount <= expected {
					if err != nil {
						t.Fatalf("debit of %d with balance %d failed: %v", amount, expected, err)
					}
					expected -= amount
				} else if !errors.Is(err, domain.ErrInsufficientFunds) {
					t.Fatalf("debit of %d with balance %d: expected ErrInsufficientFunds, got %v", amount, expected, err)
				}
			} else {
				if err := l.Credit("u1", amount); err != nil {
					t.Fatalf("credit failed: %v", err)
				}
				expected += amount
			}

			balance, err := l.Balance("u1")
			if err != nil {
				t.Fatalf("balance: %v", err)
			}
			if balance != expected {
				t.Fatalf("balance = %d, want %d", balance, expected)
			}
			if balance < 0 {
				t.Fatalf("balance went negative: %d", balance)
			}
		}
	})
}
