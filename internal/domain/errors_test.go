package domain

import (
	"errors"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Message: "initial_credits must be >= 0"}
	if err.Error() != "initial_credits must be >= 0" {
		t.Errorf("Error() = %q, want %q", err.Error(), "initial_credits must be >= 0")
	}
}

func TestBidTooLowError_CarriesCurrentHighest(t *testing.T) {
	var err error = &BidTooLowError{CurrentHighest: 15000}

	var tooLow *BidTooLowError
	if !errors.As(err, &tooLow) {
		t.Fatal("expected errors.As to match *BidTooLowError")
	}
	if tooLow.CurrentHighest != 15000 {
		t.Errorf("CurrentHighest = %d, want 15000", tooLow.CurrentHighest)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	errs := []error{
		ErrUserAlreadyExists,
		ErrUserNotFound,
		ErrItemNotFound,
		ErrInvalidAmount,
		ErrInsufficientFunds,
	}
	for i := 0; i < len(errs); i++ {
		for j := i + 1; j < len(errs); j++ {
			if errors.Is(errs[i], errs[j]) {
				t.Errorf("sentinel errors %d and %d should be distinct", i, j)
			}
		}
	}
}
