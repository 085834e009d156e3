package store

import "github.com/efreitasn/memebid/internal/domain"

// CreditLedger is the authoritative source of each user's spendable
// balance and the only writer of balance decrements caused by bidding.
// Every mutation runs as a single critical section under the user's
// lock, so no observer sees an intermediate state.
type CreditLedger struct {
	users *UserStore
}

// NewCreditLedger creates a CreditLedger over the given user store.
func NewCreditLedger(users *UserStore) *CreditLedger {
	return &CreditLedger{users: users}
}

// Debit atomically withdraws amount cents from the user's balance.
// It returns domain.ErrInsufficientFunds if the balance at the instant
// of the check does not cover the amount, and domain.ErrUserNotFound
// if the user does not exist. The check and the write are indivisible
// with respect to other debits on the same user.
func (l *CreditLedger) Debit(userID string, amount int64) error {
	return l.DebitWithin(userID, amount, nil)
}

// DebitWithin is Debit with a hook: fn, when non-nil, runs inside the
// per-user critical section after the sufficiency check and before the
// balance is written, receiving the balance as it will be after the
// debit. If fn returns an error the balance is left untouched and the
// error is returned. The coordinator uses this to make the durable
// write part of the same all-or-nothing step as the debit.
func (l *CreditLedger) DebitWithin(userID string, amount int64, fn func(newBalance int64) error) error {
	u, err := l.users.Get(userID)
	if err != nil {
		return err
	}

	u.Mu.Lock()
	defer u.Mu.Unlock()

	if amount > u.Balance {
		return domain.ErrInsufficientFunds
	}
	if fn != nil {
		if err := fn(u.Balance - amount); err != nil {
			return err
		}
	}
	u.Balance -= amount
	return nil
}

// Credit atomically adds amount cents to the user's balance. Used when
// seeding balances and when rebuilding state from durable storage;
// nothing in the bidding path refunds credits.
func (l *CreditLedger) Credit(userID string, amount int64) error {
	u, err := l.users.Get(userID)
	if err != nil {
		return err
	}

	u.Mu.Lock()
	defer u.Mu.Unlock()

	u.Balance += amount
	return nil
}

// Balance returns the user's current balance in cents. The value may be
// stale by at most the duration of one in-flight debit.
func (l *CreditLedger) Balance(userID string) (int64, error) {
	u, err := l.users.Get(userID)
	if err != nil {
		return 0, err
	}

	u.Mu.Lock()
	defer u.Mu.Unlock()

	return u.Balance, nil
}
