package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrUserAlreadyExists = errors.New("user_already_exists")
	ErrUserNotFound      = errors.New("user_not_found")
	ErrItemNotFound      = errors.New("item_not_found")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInsufficientFunds = errors.New("insufficient_funds")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// BidTooLowError is returned when a bid does not strictly exceed the
// current highest bid on the item. CurrentHighest carries the winning
// amount in cents so the caller can retry without another round-trip.
type BidTooLowError struct {
	CurrentHighest int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid_too_low: current highest bid is %d cents", e.CurrentHighest)
}
