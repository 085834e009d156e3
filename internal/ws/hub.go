// Package ws is the real-time channel: one persistent websocket per
// client, new_bid in, bid_update out. Broadcast is best-effort,
// at-most-once per connected session; missed events are not replayed.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/efreitasn/memebid/internal/domain"
	"github.com/efreitasn/memebid/internal/pubsub"
	"github.com/efreitasn/memebid/internal/service"
	"github.com/efreitasn/memebid/internal/store"
)

// Hub owns the session registry and fans committed-bid events out to
// every registered session.
type Hub struct {
	logger   *slog.Logger
	registry *Registry
	broker   *pubsub.Broker
	bids     *service.BidService
	users    *store.UserStore

	upgrader     websocket.Upgrader
	sendBuffer   int
	pingInterval time.Duration
	pongWait     time.Duration
}

// NewHub creates a Hub. sendBuffer is the per-session outbound queue
// size; a session that falls that far behind is dropped.
func NewHub(
	registry *Registry,
	broker *pubsub.Broker,
	bids *service.BidService,
	users *store.UserStore,
	sendBuffer int,
	pingInterval time.Duration,
	logger *slog.Logger,
) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 64
	}
	return &Hub{
		logger:   logger,
		registry: registry,
		broker:   broker,
		bids:     bids,
		users:    users,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The browser client connects cross-origin; authorization is
			// by resolved user identity, not origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		sendBuffer:   sendBuffer,
		pingInterval: pingInterval,
		pongWait:     pingInterval + writeWait,
	}
}

// Registry exposes the session registry, which fan-out reads and
// nothing else writes.
func (h *Hub) Registry() *Registry {
	return h.registry
}

// Run consumes committed-bid events and broadcasts them until ctx is
// cancelled. Events arrive in per-item commit order and are delivered
// to each session in that order.
func (h *Hub) Run(ctx context.Context) {
	sub := h.broker.Subscribe(domain.EventBidPlaced)
	defer sub.Cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.C:
			if !ok {
				return
			}
			bidEv, ok := ev.(domain.BidEvent)
			if !ok {
				continue
			}
			h.broadcast(bidEv.Bid)
		}
	}
}

// broadcast enqueues the bid_update frame on every registered session,
// collecting sessions whose queue is full and dropping them afterwards.
// Enqueueing never performs network I/O, so a slow peer cannot stall
// the others.
func (h *Hub) broadcast(bid *domain.Bid) {
	frame, err := marshalBidUpdate(bid)
	if err != nil {
		h.logger.Error("marshal bid_update", slog.String("error", err.Error()))
		return
	}

	var stalled []*Client
	h.registry.ForEach(func(c *Client, s Session) {
		if !c.enqueue(frame) {
			stalled = append(stalled, c)
		}
	})
	for _, c := range stalled {
		h.logger.Warn("dropping stalled session",
			slog.String("user_id", c.session.UserID),
		)
		c.close()
	}
}

// ServeHTTP upgrades the connection and runs its read loop. The
// handshake query carries user_id and username; a connection whose
// user_id does not resolve to a known user is served but never
// registered, so it receives no broadcasts and cannot bid.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	username := r.URL.Query().Get("username")

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	if user, err := h.users.Get(userID); err == nil {
		c.session = Session{UserID: user.UserID, Username: username}
		c.registered = true
		h.registry.Register(c, c.session)
		h.logger.Info("session connected",
			slog.String("user_id", user.UserID),
			slog.String("username", username),
		)
	} else {
		h.logger.Info("unidentified connection", slog.String("user_id", userID))
	}

	go c.writePump()
	c.readPump(r.Context())

	if c.registered {
		h.logger.Info("session disconnected", slog.String("user_id", c.session.UserID))
	}
}
