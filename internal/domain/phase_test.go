package domain

import (
	"errors"
	"testing"
)

func TestNextPhase_FromIdleAndBreaks(t *testing.T) {
	for _, leaving := range []Phase{PhaseIdle, PhaseShortBreak, PhaseLongBreak} {
		t.Run(string(leaving), func(t *testing.T) {
			next, err := NextPhase(leaving, 2, 4)
			if err != nil {
				t.Fatalf("NextPhase() error = %v", err)
			}
			if next != PhaseWork {
				t.Errorf("NextPhase() = %v, want work", next)
			}
		})
	}
}

func TestNextPhase_FromWork(t *testing.T) {
	// The count passed in already includes the work phase being left.
	tests := []struct {
		name      string
		count     int
		interval  int
		wantPhase Phase
	}{
		{"first completion", 1, 4, PhaseShortBreak},
		{"second completion", 2, 4, PhaseShortBreak},
		{"third completion", 3, 4, PhaseShortBreak},
		{"fourth earns long break", 4, 4, PhaseLongBreak},
		{"fifth back to short", 5, 4, PhaseShortBreak},
		{"eighth earns long break", 8, 4, PhaseLongBreak},
		{"interval of one is always long", 1, 1, PhaseLongBreak},
		{"zero count never earns long", 0, 4, PhaseShortBreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextPhase(PhaseWork, tt.count, tt.interval)
			if err != nil {
				t.Fatalf("NextPhase() error = %v", err)
			}
			if next != tt.wantPhase {
				t.Errorf("NextPhase() = %v, want %v", next, tt.wantPhase)
			}
		})
	}
}

func TestNextPhase_BreakSequence(t *testing.T) {
	// With an interval of 4 the break sequence must read
	// short, short, short, long, short, short, short, long.
	want := []Phase{
		PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak,
		PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak,
	}

	for i, expected := range want {
		next, err := NextPhase(PhaseWork, i+1, 4)
		if err != nil {
			t.Fatalf("completion %d: NextPhase() error = %v", i+1, err)
		}
		if next != expected {
			t.Errorf("completion %d: break = %v, want %v", i+1, next, expected)
		}
	}
}

func TestNextPhase_UnknownPhase(t *testing.T) {
	next, err := NextPhase(Phase("garbage"), 3, 4)
	if !errors.Is(err, ErrUnexpectedPhase) {
		t.Fatalf("NextPhase() error = %v, want ErrUnexpectedPhase", err)
	}
	if next != PhaseIdle {
		t.Errorf("NextPhase() = %v, want idle", next)
	}
}

func TestNextPhase_InvalidIntervalFallsBack(t *testing.T) {
	// A non-positive interval must not panic the modulo; the default applies.
	next, err := NextPhase(PhaseWork, 1, 0)
	if err != nil {
		t.Fatalf("NextPhase() error = %v", err)
	}
	if next != PhaseShortBreak {
		t.Errorf("NextPhase() = %v, want short_break", next)
	}
}

func TestPhaseLabel(t *testing.T) {
	if got := PhaseLabel(PhaseLongBreak); got != "Long Break" {
		t.Errorf("PhaseLabel(long_break) = %q, want %q", got, "Long Break")
	}
	if got := PhaseLabel(Phase("nope")); got != "Unknown" {
		t.Errorf("PhaseLabel(nope) = %q, want %q", got, "Unknown")
	}
}
