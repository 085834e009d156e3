package service

import (
	"context"
	"regexp"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/engine"
)

var (
	itemIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// PlaceBidRequest represents the input for bid submission. Amount is in
// credits; conversion to cents happens at this boundary.
type PlaceBidRequest struct {
	ItemID string
	UserID string
	Amount float64
}

// BidService validates bid submissions and hands them to the
// coordinator.
type BidService struct {
	coord *engine.Coordinator
}

// NewBidService creates a new BidService.
func NewBidService(coord *engine.Coordinator) *BidService {
	return &BidService{coord: coord}
}

// PlaceBid validates the request and commits the bid through the
// coordinator. The user identity must come from a trusted source (the
// session registry or the request surface), never from advisory
// display fields.
func (s *BidService) PlaceBid(ctx context.Context, req PlaceBidRequest) (*domain.Bid, error) {
	if !itemIDRegex.MatchString(req.ItemID) {
		return nil, &domain.ValidationError{
			Message: "item_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}
	if !userIDRegex.MatchString(req.UserID) {
		return nil, &domain.ValidationError{
			Message: "user_id must match ^[a-zA-Z0-9_-]{1,64}$",
		}
	}

	cents, err := domain.CreditsToCents(req.Amount)
	if err != nil || cents <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	return s.coord.PlaceBid(ctx, req.ItemID, req.UserID, cents)
}
