package ports

import "github.com/dvidx/tempo/internal/domain"

// Publisher fans a state snapshot out to whoever is currently subscribed.
// Delivery is best effort: no queuing, no replay, disconnected listeners
// simply miss the update. This is a driven port (implemented by adapters).
type Publisher interface {
	Publish(snapshot domain.TimerState)
}
