// Package notification provides desktop notification utilities.
package notification

import (
	"math/rand"

	"github.com/gen2brain/beeep"

	"github.com/dvidx/tempo/internal/config"
	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// motivations are optional body suffixes attached to half of all work
// completions.
var motivations = []string{
	"Small steps add up.",
	"Momentum beats motivation.",
	"One block at a time.",
	"Your future self says thanks.",
	"Consistency is the whole trick.",
}

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	rand func() float64
	pick func(n int) int
}

// Ensure Notifier implements ports.Notifier.
var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:  cfg,
		rand: rand.Float64,
		pick: rand.Intn,
	}
}

// PhaseComplete delivers a completion notice for the phase that just ended.
func (n *Notifier) PhaseComplete(phase domain.Phase) error {
	if n.cfg == nil || !n.cfg.Enabled {
		return nil
	}

	title, body := n.Compose(phase)
	return beeep.Notify(title, body, "")
}

// Compose picks the title/body pair for a completed phase. Work completions
// carry a motivational line with fixed 50% probability.
func (n *Notifier) Compose(phase domain.Phase) (title, body string) {
	switch phase {
	case domain.PhaseWork:
		title = "🍅 Work block complete!"
		body = "Time for a break."
		if n.rand() < 0.5 {
			body += " " + motivations[n.pick(len(motivations))]
		}
	case domain.PhaseShortBreak:
		title = "☕ Break over!"
		body = "Ready to focus again?"
	case domain.PhaseLongBreak:
		title = "🌴 Long break over!"
		body = "Rested and ready for the next round."
	default:
		title = "⏱ Timer"
		body = "Phase complete."
	}
	return title, body
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}
