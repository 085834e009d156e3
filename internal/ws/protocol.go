package ws

import (
	"encoding/json"
	"time"

	"github.com/efreitasn/memebid/internal/domain"
)

// Event names on the real-time channel.
const (
	EventNewBid    = "new_bid"
	EventBidUpdate = "bid_update"
	EventBidError  = "bid_error"
)

// inboundFrame is the envelope for client → server messages.
type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// newBidData is the payload of a new_bid frame. UserID and Username are
// advisory: the bid is attributed to the session's identity resolved
// at connect time, never to these fields.
type newBidData struct {
	ItemID   string  `json:"item_id"`
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Amount   float64 `json:"amount"`
}

// outboundFrame is the envelope for server → client messages.
type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// bidUpdateData is the payload broadcast once per committed bid.
type bidUpdateData struct {
	ItemID    string  `json:"item_id"`
	BidID     string  `json:"bid_id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	Amount    float64 `json:"amount"`
	Seq       int64   `json:"seq"`
	Timestamp string  `json:"timestamp"`
}

// bidErrorData is sent only to the submitting session when its bid is
// rejected.
type bidErrorData struct {
	Error          string   `json:"error"`
	Message        string   `json:"message"`
	CurrentHighest *float64 `json:"current_highest,omitempty"`
}

// marshalBidUpdate builds the bid_update frame for a committed bid.
func marshalBidUpdate(bid *domain.Bid) ([]byte, error) {
	return json.Marshal(outboundFrame{
		Event: EventBidUpdate,
		Data: bidUpdateData{
			ItemID:    bid.ItemID,
			BidID:     bid.BidID,
			UserID:    bid.UserID,
			Username:  bid.Username,
			Amount:    domain.CentsToCredits(bid.Amount),
			Seq:       bid.Seq,
			Timestamp: bid.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
}
