package ports

import "time"

// WakeFunc is invoked by a scheduler with the wall-clock time of the wake.
// Handlers must tolerate late delivery: a process that was suspended sees a
// now well past the requested instant and reconciles against stored state.
type WakeFunc func(now time.Time)

// Scheduler translates "wake me at T" and "tick every N" requests into
// concrete timer registrations. At most one phase-end wake and one periodic
// tick are outstanding at any time; re-arming replaces both slots.
// This is a driven port (implemented by adapters).
type Scheduler interface {
	// SetHandlers registers the wake and tick callbacks. Must be called
	// before Arm. Either handler may be nil.
	SetHandlers(onWake, onTick WakeFunc)

	// Arm schedules the phase-end wake for wakeAt and, when tickEvery > 0,
	// a repeating tick. Prior registrations for both slots are cancelled.
	Arm(wakeAt time.Time, tickEvery time.Duration)

	// CancelAll removes every pending registration. After it returns no
	// previously armed wake or tick will be delivered.
	CancelAll()
}
