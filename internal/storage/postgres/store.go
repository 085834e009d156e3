// Package postgres provides Postgres-backed persistence for users and
// bids using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store persists users and bids in Postgres. Bids are keyed by
// (item_id, seq); balances by user_id.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database and runs migrations.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			balance BIGINT NOT NULL CHECK (balance >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS bids (
			item_id TEXT NOT NULL,
			seq BIGINT NOT NULL,
			bid_id TEXT NOT NULL,
			user_id TEXT NOT NULL REFERENCES users (user_id),
			username TEXT NOT NULL,
			amount BIGINT NOT NULL CHECK (amount > 0),
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (item_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS bids_user_id_idx ON bids (user_id);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row with their initial balance.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	const query = `
		INSERT INTO users (user_id, username, balance, created_at)
		VALUES ($1, $2, $3, $4);`

	_, err := s.pool.Exec(ctx, query, u.UserID, u.Username, u.Balance, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// CommitBid inserts the bid and writes the bidder's post-debit balance
// in a single transaction.
func (s *Store) CommitBid(ctx context.Context, bid *domain.Bid, newBalance int64) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	const insertBid = `
		INSERT INTO bids (item_id, seq, bid_id, user_id, username, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`
	if _, err := tx.Exec(ctx, insertBid,
		bid.ItemID, bid.Seq, bid.BidID, bid.UserID, bid.Username, bid.Amount, bid.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}

	const updateBalance = `UPDATE users SET balance = $1 WHERE user_id = $2;`
	if _, err := tx.Exec(ctx, updateBalance, newBalance, bid.UserID); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// LoadUsers returns all persisted users.
func (s *Store) LoadUsers(ctx context.Context) ([]*domain.User, error) {
	const query = `SELECT user_id, username, balance, created_at FROM users ORDER BY user_id;`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.UserID, &u.Username, &u.Balance, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// LoadBids returns all persisted bids grouped by item, sequence ascending.
func (s *Store) LoadBids(ctx context.Context) ([]*domain.Bid, error) {
	const query = `
		SELECT item_id, seq, bid_id, user_id, username, amount, created_at
		FROM bids
		ORDER BY item_id, seq;`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		b := &domain.Bid{}
		if err := rows.Scan(&b.ItemID, &b.Seq, &b.BidID, &b.UserID, &b.Username, &b.Amount, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bids: %w", err)
	}
	return bids, nil
}
