package domain

import (
	"testing"
	"time"
)

func runningState(now time.Time, d time.Duration) TimerState {
	end := now.Add(d)
	return TimerState{
		Phase:     PhaseWork,
		Running:   true,
		StartTime: &now,
		EndTime:   &end,
	}
}

func pausedState(remaining time.Duration) TimerState {
	return TimerState{
		Phase:     PhaseWork,
		Remaining: &remaining,
	}
}

func TestTimerState_Validate(t *testing.T) {
	now := time.Now()

	t.Run("idle state is valid", func(t *testing.T) {
		if err := NewTimerState().Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("running state is valid", func(t *testing.T) {
		if err := runningState(now, 25*time.Minute).Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("paused state is valid", func(t *testing.T) {
		if err := pausedState(10 * time.Minute).Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})

	t.Run("just completed state is valid", func(t *testing.T) {
		s := TimerState{Phase: PhaseWork, CycleCount: 1}
		if err := s.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
		if !s.JustCompleted() {
			t.Error("JustCompleted() = false, want true")
		}
	})

	t.Run("running without end time is invalid", func(t *testing.T) {
		s := TimerState{Phase: PhaseWork, Running: true, StartTime: &now}
		if err := s.Validate(); err == nil {
			t.Error("Validate() should reject running state without end time")
		}
	})

	t.Run("running with remaining is invalid", func(t *testing.T) {
		s := runningState(now, time.Minute)
		rem := time.Minute
		s.Remaining = &rem
		if err := s.Validate(); err == nil {
			t.Error("Validate() should reject running state with remaining time")
		}
	})

	t.Run("paused with end time is invalid", func(t *testing.T) {
		s := pausedState(time.Minute)
		end := now.Add(time.Minute)
		s.EndTime = &end
		if err := s.Validate(); err == nil {
			t.Error("Validate() should reject paused state with end time")
		}
	})

	t.Run("idle with remaining is invalid", func(t *testing.T) {
		rem := time.Minute
		s := TimerState{Phase: PhaseIdle, Remaining: &rem}
		if err := s.Validate(); err == nil {
			t.Error("Validate() should reject idle state with remaining time")
		}
	})

	t.Run("negative cycle count is invalid", func(t *testing.T) {
		s := TimerState{Phase: PhaseIdle, CycleCount: -1}
		if err := s.Validate(); err == nil {
			t.Error("Validate() should reject negative cycle count")
		}
	})
}

func TestTimerState_RemainingAt(t *testing.T) {
	now := time.Now()

	t.Run("running counts down against wall clock", func(t *testing.T) {
		s := runningState(now, 25*time.Minute)
		if got := s.RemainingAt(now.Add(10 * time.Minute)); got != 15*time.Minute {
			t.Errorf("RemainingAt() = %v, want 15m", got)
		}
	})

	t.Run("late observation clamps to zero", func(t *testing.T) {
		s := runningState(now, time.Minute)
		if got := s.RemainingAt(now.Add(time.Hour)); got != 0 {
			t.Errorf("RemainingAt() = %v, want 0", got)
		}
	})

	t.Run("paused reports frozen remainder", func(t *testing.T) {
		s := pausedState(7 * time.Minute)
		if got := s.RemainingAt(now.Add(time.Hour)); got != 7*time.Minute {
			t.Errorf("RemainingAt() = %v, want 7m", got)
		}
	})

	t.Run("idle reports zero", func(t *testing.T) {
		if got := NewTimerState().RemainingAt(now); got != 0 {
			t.Errorf("RemainingAt() = %v, want 0", got)
		}
	})
}

func TestTimerState_ProgressAt(t *testing.T) {
	now := time.Now()
	s := runningState(now, 20*time.Minute)

	if got := s.ProgressAt(now, 20*time.Minute); got != 0 {
		t.Errorf("ProgressAt(start) = %v, want 0", got)
	}
	if got := s.ProgressAt(now.Add(10*time.Minute), 20*time.Minute); got != 0.5 {
		t.Errorf("ProgressAt(halfway) = %v, want 0.5", got)
	}
	if got := s.ProgressAt(now.Add(time.Hour), 20*time.Minute); got != 1 {
		t.Errorf("ProgressAt(overdue) = %v, want 1", got)
	}
	if got := s.ProgressAt(now, 0); got != 0 {
		t.Errorf("ProgressAt(zero total) = %v, want 0", got)
	}
}

func TestTimerState_Clone(t *testing.T) {
	now := time.Now()
	s := runningState(now, 25*time.Minute)
	clone := s.Clone()

	*clone.EndTime = clone.EndTime.Add(time.Hour)
	if s.EndTime.Equal(*clone.EndTime) {
		t.Error("Clone() should not share end time pointers")
	}

	p := pausedState(time.Minute)
	pc := p.Clone()
	*pc.Remaining = time.Hour
	if *p.Remaining != time.Minute {
		t.Error("Clone() should not share remaining pointers")
	}
}
