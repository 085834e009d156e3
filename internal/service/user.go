package service

import (
	"context"
	"regexp"
	"time"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/storage"
	"github.com/efreitasn/memebid/internal/store"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_ .-]{1,32}$`)

// DefaultInitialCredits is the balance granted to a new user when the
// registration request does not specify one.
const DefaultInitialCredits = 500.00

// RegisterUserRequest represents the input for user registration.
type RegisterUserRequest struct {
	UserID         string
	Username       string
	InitialCredits *float64
}

// UserService handles user registration and balance queries. Users
// proper (passwords, profiles) live with an external collaborator; this
// is only the ledger-facing identity surface.
type UserService struct {
	users   *store.UserStore
	ledger  *store.CreditLedger
	storage storage.Store
}

// NewUserService creates a new UserService.
func NewUserService(users *store.UserStore, ledger *store.CreditLedger, durable storage.Store) *UserService {
	return &UserService{
		users:   users,
		ledger:  ledger,
		storage: durable,
	}
}

// Register validates the request and creates the user with their
// initial credit balance, durably first. Returns
// domain.ErrUserAlreadyExists for duplicate IDs.
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*domain.User, error) {
	if !userIDRegex.MatchString(req.UserID) {
		return nil, &domain.ValidationError{
			Message: "user_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if !usernameRegex.MatchString(req.Username) {
		return nil, &domain.ValidationError{
			Message: "username must match ^[a-zA-Z0-9_ .-]{1,32}$",
		}
	}

	credits := DefaultInitialCredits
	if req.InitialCredits != nil {
		credits = *req.InitialCredits
	}
	if credits < 0 {
		return nil, &domain.ValidationError{
			Message: "initial_credits must be >= 0",
		}
	}
	balance, err := domain.CreditsToCents(credits)
	if err != nil {
		return nil, &domain.ValidationError{
			Message: "initial_credits must have at most 2 decimal places",
		}
	}

	user := &domain.User{
		UserID:    req.UserID,
		Username:  req.Username,
		Balance:   balance,
		CreatedAt: time.Now().UTC(),
	}

	// Durable write first: the durable store is the duplicate arbiter
	// across restarts and concurrent registrations.
	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(userID string) (*domain.User, error) {
	return s.users.Get(userID)
}

// Balance returns the user's current balance in cents.
func (s *UserService) Balance(userID string) (int64, error) {
	return s.ledger.Balance(userID)
}
