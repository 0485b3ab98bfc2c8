package ports

import (
	"context"

	"github.com/dvidx/tempo/internal/domain"
)

// TimerController is the command surface of the timer engine as consumed by
// outer adapters (CLI, TUI, MCP). Invalid transitions are silent no-ops that
// return the unchanged state. This is a driving port (implemented by the
// engine).
type TimerController interface {
	// State returns the current snapshot.
	State() domain.TimerState

	// Start begins the next phase per the transition rule. A no-op while
	// already running.
	Start(ctx context.Context) (domain.TimerState, error)

	// Pause freezes the running phase. A no-op unless running.
	Pause(ctx context.Context) (domain.TimerState, error)

	// Resume continues a paused phase. A no-op unless paused.
	Resume(ctx context.Context) (domain.TimerState, error)

	// Reset unconditionally returns to idle and cancels pending wakes.
	Reset(ctx context.Context) (domain.TimerState, error)

	// StatsSummary returns today's count, the trailing week total and the
	// streak.
	StatsSummary(ctx context.Context) (*domain.StatsSummary, error)

	// ClearStats empties the completion ledger and streak together.
	ClearStats(ctx context.Context) error
}
