package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/service"
)

// BidHandler handles HTTP requests for the synchronous bid surface.
type BidHandler struct {
	bidSvc *service.BidService
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bidSvc *service.BidService) *BidHandler {
	return &BidHandler{bidSvc: bidSvc}
}

// placeBidRequest is the JSON request body for POST /bids.
type placeBidRequest struct {
	ItemID string  `json:"item_id"`
	UserID string  `json:"user_id"`
	Amount float64 `json:"amount"`
}

// bidResponse is a committed bid in JSON form.
type bidResponse struct {
	BidID     string  `json:"bid_id"`
	ItemID    string  `json:"item_id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Amount    float64 `json:"amount"`
	Seq       int64   `json:"seq"`
	CreatedAt string  `json:"created_at"`
}

// dataEnvelope wraps successful bid responses.
type dataEnvelope struct {
	Data any `json:"data"`
}

// PlaceBid handles POST /bids.
func (h *BidHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req placeBidRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	bid, err := h.bidSvc.PlaceBid(r.Context(), service.PlaceBidRequest{
		ItemID: req.ItemID,
		UserID: req.UserID,
		Amount: req.Amount,
	})
	if err != nil {
		mapBidError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, dataEnvelope{Data: buildBidResponse(bid)})
}

// buildBidResponse converts a domain bid to its JSON form.
func buildBidResponse(b *domain.Bid) bidResponse {
	return bidResponse{
		BidID:     b.BidID,
		ItemID:    b.ItemID,
		UserID:    b.UserID,
		Username:  b.Username,
		Amount:    domain.CentsToCredits(b.Amount),
		Seq:       b.Seq,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// mapBidError maps domain errors to HTTP responses for bid endpoints.
func mapBidError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	var tooLow *domain.BidTooLowError
	if errors.As(err, &tooLow) {
		highest := domain.CentsToCredits(tooLow.CurrentHighest)
		WriteJSON(w, http.StatusConflict, errorResponse{
			Error:          "bid_too_low",
			Message:        "bid must exceed the current highest bid",
			CurrentHighest: &highest,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		WriteError(w, http.StatusBadRequest, "invalid_amount",
			"amount must be a positive number with at most 2 decimal places")
	case errors.Is(err, domain.ErrInsufficientFunds):
		WriteError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, domain.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
