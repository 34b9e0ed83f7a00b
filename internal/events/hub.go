// Package events is the in-process fan-out feeding the /events SSE
// stream. Every successful mutation publishes one Event; subscribers
// are browser tabs holding a long-lived connection.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Actions carried in an Event.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionMoved   = "moved"
)

// Event describes one entity change. The client refetches whatever it
// cares about; there is no replay and no payload diffing.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	ID     int64  `json:"id"`
}

// subscriberBuffer bounds how far a subscriber may fall behind before
// events are dropped for it.
const subscriberBuffer = 16

// Hub fans events out to all current subscribers. A Hub is safe for
// concurrent use; the zero value is not usable, call NewHub.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]chan Event
}

func NewHub() *Hub {
	return &Hub{subscribers: make(map[string]chan Event)}
}

// Subscribe registers a new subscriber and returns its id and channel.
// The caller must Unsubscribe with the same id when done.
func (h *Hub) Subscribe() (string, <-chan Event) {
	id := uuid.NewString()
	ch := make(chan Event, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	h.mu.Unlock()

	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.subscribers[id]; ok {
		delete(h.subscribers, id)
		close(ch)
	}
}

// Publish delivers ev to every subscriber. A subscriber whose buffer is
// full loses the event rather than blocking the request that caused it.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports how many streams are currently attached.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
