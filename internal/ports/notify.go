package ports

import "github.com/dvidx/tempo/internal/domain"

// Notifier delivers a completion notice for the phase that just ended.
// Purely cosmetic: failures never affect timer state.
// This is a driven port (implemented by adapters).
type Notifier interface {
	PhaseComplete(phase domain.Phase) error
}

// SettingsProvider supplies the merged configuration snapshot. The engine
// fetches one per decision point and falls back to defaults when the
// provider fails. This is a driven port (implemented by the config layer).
type SettingsProvider interface {
	Settings() domain.Settings
}
