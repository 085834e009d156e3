package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/engine"
	"github.com/efreitasn/memebid/internal/service"
)

// ItemHandler handles HTTP requests for per-item bid views.
type ItemHandler struct {
	itemSvc *service.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemSvc *service.ItemService) *ItemHandler {
	return &ItemHandler{itemSvc: itemSvc}
}

// bidListResponse is the JSON response for the bid history endpoint.
type bidListResponse struct {
	ItemID string        `json:"item_id"`
	Bids   []bidResponse `json:"bids"`
}

// leaderboardEntryResponse is one ranked item in the leaderboard.
type leaderboardEntryResponse struct {
	ItemID   string  `json:"item_id"`
	BidID    string  `json:"bid_id"`
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Amount   float64 `json:"amount"`
	BidAt    string  `json:"bid_at"`
}

// leaderboardResponse is the JSON response for GET /leaderboard.
type leaderboardResponse struct {
	Entries []leaderboardEntryResponse `json:"entries"`
}

// GetHighest handles GET /items/{item_id}/highest.
func (h *ItemHandler) GetHighest(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	highest, err := h.itemSvc.HighestBid(itemID)
	if err != nil {
		mapItemError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dataEnvelope{Data: buildBidResponse(highest)})
}

// ListBids handles GET /items/{item_id}/bids.
func (h *ItemHandler) ListBids(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	bids, err := h.itemSvc.ListBids(itemID)
	if err != nil {
		mapItemError(w, err)
		return
	}

	resp := bidListResponse{
		ItemID: itemID,
		Bids:   make([]bidResponse, len(bids)),
	}
	for i, b := range bids {
		resp.Bids[i] = buildBidResponse(b)
	}
	WriteJSON(w, http.StatusOK, resp)
}

// GetLeaderboard handles GET /leaderboard.
func (h *ItemHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "validation_error", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries := h.itemSvc.Leaderboard(limit)
	resp := leaderboardResponse{
		Entries: make([]leaderboardEntryResponse, len(entries)),
	}
	for i, e := range entries {
		resp.Entries[i] = buildLeaderboardEntry(e)
	}
	WriteJSON(w, http.StatusOK, resp)
}

func buildLeaderboardEntry(e engine.LeaderboardEntry) leaderboardEntryResponse {
	return leaderboardEntryResponse{
		ItemID:   e.ItemID,
		BidID:    e.BidID,
		UserID:   e.UserID,
		Username: e.Username,
		Amount:   domain.CentsToCredits(e.Amount),
		BidAt:    e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// mapItemError maps domain errors to HTTP responses for item endpoints.
func mapItemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		WriteError(w, http.StatusNotFound, "item_not_found", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
