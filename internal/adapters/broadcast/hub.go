// Package broadcast provides the typed publish/subscribe fan-out for timer
// state snapshots.
package broadcast

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// Hub fans snapshots out to subscribers. Delivery is best effort: sends
// never block, a subscriber with a full buffer misses the update. There is
// no replay; fresh subscribers pull the current state on demand instead.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]chan domain.TimerState
	closed bool
}

// Ensure Hub implements ports.Publisher.
var _ ports.Publisher = (*Hub)(nil)

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan domain.TimerState)}
}

// Subscribe registers a listener and returns its id and receive channel.
// buffer must be at least 1; smaller values are bumped.
func (h *Hub) Subscribe(buffer int) (string, <-chan domain.TimerState) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan domain.TimerState, buffer)
	id := uuid.New().String()

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a listener and closes its channel. Unknown ids are
// ignored.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch, ok := h.subs[id]
	if !ok {
		return
	}
	delete(h.subs, id)
	close(ch)
}

// Publish delivers the snapshot to every current subscriber without
// blocking.
func (h *Hub) Publish(snapshot domain.TimerState) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- snapshot.Clone():
		default:
		}
	}
}

// Count returns the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close closes every subscriber channel and rejects future subscriptions.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
