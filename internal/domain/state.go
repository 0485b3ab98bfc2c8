package domain

import "time"

// TimerState is the single in-memory entity owned by the engine. Exactly one
// of three shapes holds at any time: idle (not running, no end time, no
// remaining time), running (end time set, remaining unset) or paused
// (remaining set, end time unset).
type TimerState struct {
	Phase      Phase
	Running    bool
	StartTime  *time.Time
	EndTime    *time.Time
	Remaining  *time.Duration
	CycleCount int
}

// NewTimerState returns the initial idle state.
func NewTimerState() TimerState {
	return TimerState{Phase: PhaseIdle}
}

// Validate reports whether the state satisfies the exactly-one-of invariant.
func (s TimerState) Validate() error {
	if s.CycleCount < 0 {
		return ErrInvalidState
	}
	if s.Running {
		if s.StartTime == nil || s.EndTime == nil || s.Remaining != nil {
			return ErrInvalidState
		}
		if s.Phase == PhaseIdle {
			return ErrInvalidState
		}
		return nil
	}
	// Not running: either paused (remaining set) or settled. Never an end time.
	if s.EndTime != nil {
		return ErrInvalidState
	}
	if s.Remaining != nil && s.Phase == PhaseIdle {
		return ErrInvalidState
	}
	return nil
}

// IsPaused returns true when the timer holds frozen remaining time.
func (s TimerState) IsPaused() bool {
	return !s.Running && s.Remaining != nil
}

// IsIdle returns true when no phase is counting down or frozen.
func (s TimerState) IsIdle() bool {
	return !s.Running && s.Remaining == nil && s.Phase == PhaseIdle
}

// JustCompleted returns true for the settled state right after a phase ends:
// not running, nothing frozen, but a non-idle phase still recorded.
func (s TimerState) JustCompleted() bool {
	return !s.Running && s.Remaining == nil && s.Phase != PhaseIdle
}

// RemainingAt returns the time left on the clock as observed at now.
// Paused states report the frozen remainder regardless of now.
func (s TimerState) RemainingAt(now time.Time) time.Duration {
	if s.Remaining != nil {
		return *s.Remaining
	}
	if !s.Running || s.EndTime == nil {
		return 0
	}
	remaining := s.EndTime.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ProgressAt returns the completion fraction (0.0 to 1.0) of the current
// phase given its configured duration.
func (s TimerState) ProgressAt(now time.Time, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	remaining := s.RemainingAt(now)
	progress := 1 - float64(remaining)/float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Clone returns a deep copy safe to hand to observers.
func (s TimerState) Clone() TimerState {
	out := s
	if s.StartTime != nil {
		t := *s.StartTime
		out.StartTime = &t
	}
	if s.EndTime != nil {
		t := *s.EndTime
		out.EndTime = &t
	}
	if s.Remaining != nil {
		d := *s.Remaining
		out.Remaining = &d
	}
	return out
}
