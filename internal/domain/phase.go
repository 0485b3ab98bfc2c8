package domain

// Phase represents the activity the timer currently counts down.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short_break"
	PhaseLongBreak  Phase = "long_break"
)

// IsBreak returns true for either break phase.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// PhaseLabel returns a human-readable label for the phase.
func PhaseLabel(p Phase) string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// NextPhase computes the phase that follows the one being left. The cycle
// count already includes the work phase being left: every
// longBreakInterval-th completed work phase earns a long break, the others a
// short one. Idle and both breaks always lead back to work.
func NextPhase(leaving Phase, cycleCount, longBreakInterval int) (Phase, error) {
	switch leaving {
	case PhaseIdle, PhaseShortBreak, PhaseLongBreak:
		return PhaseWork, nil
	case PhaseWork:
		if longBreakInterval < 1 {
			longBreakInterval = DefaultLongBreakInterval
		}
		if cycleCount > 0 && cycleCount%longBreakInterval == 0 {
			return PhaseLongBreak, nil
		}
		return PhaseShortBreak, nil
	default:
		return PhaseIdle, ErrUnexpectedPhase
	}
}
