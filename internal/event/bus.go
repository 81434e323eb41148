package event

import (
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/Iron-Ham/relay/internal/logging"
)

// wildcard is the topic that receives every event.
const wildcard = "*"

// Handler is a function that handles an event.
type Handler func(Event)

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous pub-sub event bus.
type Bus struct {
	mu     sync.RWMutex
	topics map[string][]subscription
	nextID atomic.Uint64
	logger atomic.Pointer[logging.Logger]
}

// NewBus creates a new event bus. Handler panics are logged to a discarding
// logger until SetLogger is called.
func NewBus() *Bus {
	b := &Bus{topics: make(map[string][]subscription)}
	b.logger.Store(logging.NopLogger())
	return b
}

// SetLogger sets the logger used to report recovered handler panics.
func (b *Bus) SetLogger(l *logging.Logger) {
	if l != nil {
		b.logger.Store(l)
	}
}

// Subscribe registers a handler for a specific event type and returns an ID
// for Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	id := fmt.Sprintf("sub-%d", b.nextID.Add(1))

	b.mu.Lock()
	b.topics[eventType] = append(b.topics[eventType], subscription{id: id, handler: handler})
	b.mu.Unlock()

	return id
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a subscription by ID.
// Returns true if the subscription was found and removed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for topic, subs := range b.topics {
		for i, sub := range subs {
			if sub.id != id {
				continue
			}
			// Copy so a Publish iterating the old slice is unaffected.
			next := make([]subscription, 0, len(subs)-1)
			next = append(next, subs[:i]...)
			next = append(next, subs[i+1:]...)
			b.topics[topic] = next
			return true
		}
	}
	return false
}

// Publish dispatches an event to every handler subscribed to its type, then
// to wildcard handlers, each group in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	specific := b.topics[e.EventType()]
	all := b.topics[wildcard]
	b.mu.RUnlock()

	for _, sub := range specific {
		b.dispatch(sub.handler, e)
	}
	for _, sub := range all {
		b.dispatch(sub.handler, e)
	}
}

func (b *Bus) dispatch(handler Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Load().Error("event handler panicked",
				"event", e.EventType(),
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()))
		}
	}()
	handler(e)
}

// Clear removes all subscriptions.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.topics = make(map[string][]subscription)
	b.mu.Unlock()
}

// SubscriptionCount returns the total number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.topics {
		count += len(subs)
	}
	return count
}
