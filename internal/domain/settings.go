package domain

import "time"

// Default timing values.
const (
	DefaultWorkDuration       = 25 * time.Minute
	DefaultShortBreakDuration = 5 * time.Minute
	DefaultLongBreakDuration  = 15 * time.Minute
	DefaultLongBreakInterval  = 4
)

// Settings is an immutable snapshot of the configured timer durations.
// The engine fetches a fresh snapshot per decision point and never mutates it.
type Settings struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakInterval  int
}

// DefaultSettings returns the standard pomodoro timing.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:       DefaultWorkDuration,
		ShortBreakDuration: DefaultShortBreakDuration,
		LongBreakDuration:  DefaultLongBreakDuration,
		LongBreakInterval:  DefaultLongBreakInterval,
	}
}

// DurationFor returns the configured duration of the given phase.
// Idle has no duration.
func (s Settings) DurationFor(p Phase) time.Duration {
	switch p {
	case PhaseWork:
		return s.WorkDuration
	case PhaseShortBreak:
		return s.ShortBreakDuration
	case PhaseLongBreak:
		return s.LongBreakDuration
	default:
		return 0
	}
}

// Normalize fills zero or invalid fields with defaults.
func (s Settings) Normalize() Settings {
	defaults := DefaultSettings()
	if s.WorkDuration <= 0 {
		s.WorkDuration = defaults.WorkDuration
	}
	if s.ShortBreakDuration <= 0 {
		s.ShortBreakDuration = defaults.ShortBreakDuration
	}
	if s.LongBreakDuration <= 0 {
		s.LongBreakDuration = defaults.LongBreakDuration
	}
	if s.LongBreakInterval < 1 {
		s.LongBreakInterval = defaults.LongBreakInterval
	}
	return s
}
