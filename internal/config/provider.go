package config

import (
	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// Provider adapts the config file to the engine's settings port. Each call
// re-reads the file so edits take effect at the next decision point; a read
// failure falls back to defaults rather than stalling the timer.
type Provider struct{}

// Ensure Provider implements ports.SettingsProvider.
var _ ports.SettingsProvider = (*Provider)(nil)

// NewProvider creates a settings provider backed by the config file.
func NewProvider() *Provider {
	return &Provider{}
}

// Settings returns the current settings snapshot.
func (p *Provider) Settings() domain.Settings {
	cfg, err := Load()
	if err != nil {
		return domain.DefaultSettings()
	}
	return cfg.ToSettings()
}

// Static is a fixed-snapshot settings provider, mainly for wiring a loaded
// config once or for tests.
type Static struct {
	Snapshot domain.Settings
}

// Ensure Static implements ports.SettingsProvider.
var _ ports.SettingsProvider = (*Static)(nil)

// Settings returns the fixed snapshot.
func (s *Static) Settings() domain.Settings {
	return s.Snapshot.Normalize()
}
