package config

import (
	"testing"
	"time"

	"github.com/dvidx/tempo/internal/domain"
)

func TestDefaultConfig_TimerSection(t *testing.T) {
	cfg := DefaultConfig()
	if time.Duration(cfg.Timer.WorkDuration) != 25*time.Minute {
		t.Errorf("expected default work duration 25m, got %v", cfg.Timer.WorkDuration)
	}
	if time.Duration(cfg.Timer.ShortBreak) != 5*time.Minute {
		t.Errorf("expected default short break 5m, got %v", cfg.Timer.ShortBreak)
	}
	if time.Duration(cfg.Timer.LongBreak) != 15*time.Minute {
		t.Errorf("expected default long break 15m, got %v", cfg.Timer.LongBreak)
	}
	if cfg.Timer.LongBreakInterval != 4 {
		t.Errorf("expected default long break interval 4, got %d", cfg.Timer.LongBreakInterval)
	}
}

func TestConfig_ToSettings(t *testing.T) {
	cfg := DefaultConfig()
	settings := cfg.ToSettings()
	if settings.WorkDuration != 25*time.Minute {
		t.Errorf("expected work duration 25m, got %v", settings.WorkDuration)
	}
	if settings.DurationFor(domain.PhaseLongBreak) != 15*time.Minute {
		t.Errorf("expected long break duration 15m, got %v", settings.DurationFor(domain.PhaseLongBreak))
	}
}

func TestConfig_ToSettingsNormalizesZeroes(t *testing.T) {
	cfg := &Config{}
	settings := cfg.ToSettings()
	if settings.WorkDuration != domain.DefaultWorkDuration {
		t.Errorf("expected zero work duration to normalize to default, got %v", settings.WorkDuration)
	}
	if settings.LongBreakInterval != domain.DefaultLongBreakInterval {
		t.Errorf("expected zero interval to normalize to default, got %d", settings.LongBreakInterval)
	}
}

func TestStaticProvider(t *testing.T) {
	p := &Static{Snapshot: domain.Settings{WorkDuration: 50 * time.Minute}}
	got := p.Settings()
	if got.WorkDuration != 50*time.Minute {
		t.Errorf("expected 50m work duration, got %v", got.WorkDuration)
	}
	if got.LongBreakInterval != domain.DefaultLongBreakInterval {
		t.Errorf("expected normalized interval, got %d", got.LongBreakInterval)
	}
}

func TestDuration_TextRoundTrip(t *testing.T) {
	var d Duration
	if err := d.UnmarshalText([]byte("25m")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	if time.Duration(d) != 25*time.Minute {
		t.Errorf("UnmarshalText() = %v, want 25m", d)
	}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "25m0s" {
		t.Errorf("MarshalText() = %q, want 25m0s", text)
	}
}
