// Package pubsub provides a typed in-process publish/subscribe broker
// for engine events. Subscribers receive events on a buffered channel
// and cancel explicitly; publishing never performs I/O and never blocks.
package pubsub

import (
	"sync"

	"github.com/efreitasn/memebid/internal/domain"
)

// Event is a message published on the broker.
type Event interface {
	Kind() domain.EventKind
}

// Subscription is one subscriber's stream of events of a single kind.
// Events arrive on C in publish order. Cancel must be called when the
// subscriber is done; C is closed afterwards.
type Subscription struct {
	C <-chan Event

	broker *Broker
	kind   domain.EventKind
	ch     chan Event
	once   sync.Once
}

// Cancel removes the subscription from the broker and closes C.
// Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.broker.remove(s)
		close(s.ch)
	})
}

// Broker fans events out to subscribers by kind. Delivery is
// best-effort: a subscriber whose buffer is full misses the event
// rather than delaying the publisher.
type Broker struct {
	mu     sync.RWMutex
	subs   map[domain.EventKind]map[*Subscription]struct{}
	buffer int
}

// NewBroker creates a Broker whose subscriptions buffer up to buffer
// events each.
func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 256
	}
	return &Broker{
		subs:   make(map[domain.EventKind]map[*Subscription]struct{}),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber for the given event kind.
// A subscriber only receives events published after it subscribed.
func (b *Broker) Subscribe(kind domain.EventKind) *Subscription {
	sub := &Subscription{
		broker: b,
		kind:   kind,
		ch:     make(chan Event, b.buffer),
	}
	sub.C = sub.ch

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[kind] == nil {
		b.subs[kind] = make(map[*Subscription]struct{})
	}
	b.subs[kind][sub] = struct{}{}
	return sub
}

// Publish delivers ev to every current subscriber of ev's kind, exactly
// once per subscriber, dropping it for subscribers whose buffer is
// full. Sends happen under the broker's read lock, so a subscription
// can never be cancelled mid-send.
func (b *Broker) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[ev.Kind()] {
		select {
		case sub.ch <- ev:
		default:
			// Subscriber is too far behind; best-effort delivery.
		}
	}
}

// SubscriberCount returns the number of active subscriptions for the
// given kind. Useful for testing.
func (b *Broker) SubscriberCount(kind domain.EventKind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[kind])
}

func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if subs, ok := b.subs[s.kind]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(b.subs, s.kind)
		}
	}
}
