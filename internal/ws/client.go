package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/service"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

// Client is one websocket connection with its outbound queue. Writes go
// through send so the broadcast path never blocks on a slow peer; a
// client whose queue is full is dropped.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte

	session    Session
	registered bool

	mu     sync.Mutex // guards closed and sends into send
	closed bool
}

// enqueue queues a frame for delivery, returning false when the client
// is closed or its queue is full.
func (c *Client) enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// close tears the client down exactly once: unregister, stop the write
// pump, close the connection.
func (c *Client) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.hub.registry.Unregister(c)
	close(c.send)
	c.conn.Close()
}

// readPump consumes frames from the connection until it drops. A
// disconnect mid-bid does not abort the bid: PlaceBid runs to
// completion and the result is simply undeliverable.
func (c *Client) readPump(ctx context.Context) {
	defer c.close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.hub.pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			c.sendError("invalid_request", "message must be a JSON event envelope", nil)
			continue
		}
		if frame.Event != EventNewBid {
			c.sendError("invalid_request", "unknown event: "+frame.Event, nil)
			continue
		}
		c.handleNewBid(ctx, frame.Data)
	}
}

// handleNewBid places a bid attributed to the session's user. The
// payload's user_id and username are advisory and ignored.
func (c *Client) handleNewBid(ctx context.Context, raw json.RawMessage) {
	if !c.registered {
		c.sendError("not_registered", "connection has no resolved identity; bids cannot be attributed", nil)
		return
	}

	var data newBidData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.sendError("invalid_request", "new_bid payload must be valid JSON", nil)
		return
	}

	_, err := c.hub.bids.PlaceBid(ctx, service.PlaceBidRequest{
		ItemID: data.ItemID,
		UserID: c.session.UserID,
		Amount: data.Amount,
	})
	if err == nil {
		// The commit is broadcast to every session, including this one.
		return
	}

	var tooLow *domain.BidTooLowError
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &tooLow):
		highest := domain.CentsToCredits(tooLow.CurrentHighest)
		c.sendError("bid_too_low", "bid must exceed the current highest bid", &highest)
	case errors.Is(err, domain.ErrInvalidAmount):
		c.sendError("invalid_amount", "amount must be a positive number with at most 2 decimal places", nil)
	case errors.Is(err, domain.ErrInsufficientFunds):
		c.sendError("insufficient_funds", "not enough credits", nil)
	case errors.As(err, &validationErr):
		c.sendError("validation_error", validationErr.Message, nil)
	default:
		c.sendError("internal_error", "bid could not be processed", nil)
	}
}

// sendError delivers a bid_error frame to this client only.
func (c *Client) sendError(code, message string, currentHighest *float64) {
	frame, err := json.Marshal(outboundFrame{
		Event: EventBidError,
		Data: bidErrorData{
			Error:          code,
			Message:        message,
			CurrentHighest: currentHighest,
		},
	})
	if err != nil {
		return
	}
	c.enqueue(frame)
}

// writePump drains the send queue onto the connection and keeps the
// connection alive with pings. It exits when send is closed or a write
// fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.hub.pingInterval)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
