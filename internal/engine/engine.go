// Package engine implements the phase/timer state machine at the core of
// Tempo. The engine is the single owner of the timer state: every mutating
// operation runs under one mutex, so timer wakes and user commands never
// interleave.
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// DefaultAutoStartDelay is the pause between a phase completing and the next
// one starting automatically, so observers can show the "just completed"
// snapshot.
const DefaultAutoStartDelay = 3 * time.Second

// Deps groups the engine's injected collaborators. Settings, Stats,
// Snapshots, Scheduler, Notifier and Publisher may each be nil; the engine
// degrades to in-memory-only operation for whatever is missing.
type Deps struct {
	Settings  ports.SettingsProvider
	Stats     ports.StatsRepository
	Snapshots ports.StateRepository
	Scheduler ports.Scheduler
	Notifier  ports.Notifier
	Publisher ports.Publisher
}

// Engine is the phase state machine.
type Engine struct {
	mu    sync.Mutex
	state domain.TimerState

	settings  ports.SettingsProvider
	stats     ports.StatsRepository
	snapshots ports.StateRepository
	scheduler ports.Scheduler
	notifier  ports.Notifier
	publisher ports.Publisher

	log            *zap.SugaredLogger
	now            func() time.Time
	autoStartDelay time.Duration
	tickInterval   time.Duration

	// autoStart is the pending deferred continuation after a completion.
	// Reset (or a manual start) stops it so a stale auto-start cannot fire
	// into changed state.
	autoStart *time.Timer
}

// Ensure Engine implements ports.TimerController.
var _ ports.TimerController = (*Engine)(nil)

// Option customizes engine construction.
type Option func(*Engine)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithAutoStartDelay overrides the delay before the deferred auto-start.
func WithAutoStartDelay(d time.Duration) Option {
	return func(e *Engine) { e.autoStartDelay = d }
}

// WithTickInterval overrides the coarse re-render tick period.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tickInterval = d }
}

// WithLogger injects the logger.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine, eagerly restoring the persisted snapshot when one
// exists. A snapshot that fails to load or validate is discarded in favor of
// the idle state; storage trouble never prevents construction.
func New(deps Deps, opts ...Option) *Engine {
	e := &Engine{
		state:          domain.NewTimerState(),
		settings:       deps.Settings,
		stats:          deps.Stats,
		snapshots:      deps.Snapshots,
		scheduler:      deps.Scheduler,
		notifier:       deps.Notifier,
		publisher:      deps.Publisher,
		log:            zap.NewNop().Sugar(),
		now:            time.Now,
		autoStartDelay: DefaultAutoStartDelay,
		tickInterval:   time.Minute,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.scheduler != nil {
		e.scheduler.SetHandlers(e.handleWake, e.handleTick)
	}

	if e.snapshots != nil {
		state, found, err := e.snapshots.Load(context.Background())
		switch {
		case err != nil:
			e.log.Warnw("failed to load persisted timer state", "error", err)
		case found && state.Validate() != nil:
			e.log.Warnw("discarding invalid persisted timer state", "phase", state.Phase)
		case found:
			e.state = state
		}
	}

	return e
}

// State returns the current snapshot.
func (e *Engine) State() domain.TimerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Start begins the next phase per the transition rule. Already running is a
// no-op that returns the unchanged state.
func (e *Engine) Start(ctx context.Context) (domain.TimerState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Running {
		return e.state.Clone(), nil
	}
	e.cancelAutoStartLocked()

	return e.startLocked(ctx)
}

// startLocked advances to the next phase. Callers hold the mutex.
func (e *Engine) startLocked(ctx context.Context) (domain.TimerState, error) {
	settings := e.currentSettings()

	next, err := domain.NextPhase(e.state.Phase, e.state.CycleCount, settings.LongBreakInterval)
	if err != nil {
		// Phase math failed; a full reset is safer than guessing.
		e.log.Errorw("unexpected phase, resetting", "phase", e.state.Phase)
		return e.resetLocked(ctx)
	}

	now := e.now()
	end := now.Add(settings.DurationFor(next))
	e.state = domain.TimerState{
		Phase:      next,
		Running:    true,
		StartTime:  &now,
		EndTime:    &end,
		CycleCount: e.state.CycleCount,
	}

	persistErr := e.persistLocked(ctx)
	if e.scheduler != nil {
		e.scheduler.Arm(end, e.tickInterval)
	}
	e.publishLocked()
	e.log.Debugw("phase started", "phase", next, "ends_at", end, "cycle_count", e.state.CycleCount)

	return e.state.Clone(), persistErr
}

// Pause freezes the running phase. Not running is a no-op.
func (e *Engine) Pause(ctx context.Context) (domain.TimerState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Running {
		return e.state.Clone(), nil
	}

	remaining := e.state.RemainingAt(e.now())
	e.state.Running = false
	e.state.StartTime = nil
	e.state.EndTime = nil
	e.state.Remaining = &remaining

	if e.scheduler != nil {
		e.scheduler.CancelAll()
	}
	persistErr := e.persistLocked(ctx)
	e.publishLocked()
	e.log.Debugw("phase paused", "phase", e.state.Phase, "remaining", remaining)

	return e.state.Clone(), persistErr
}

// Resume continues a paused phase. Anything but paused is a no-op.
func (e *Engine) Resume(ctx context.Context) (domain.TimerState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Running || e.state.Remaining == nil {
		return e.state.Clone(), nil
	}

	now := e.now()
	end := now.Add(*e.state.Remaining)
	e.state.Running = true
	e.state.StartTime = &now
	e.state.EndTime = &end
	e.state.Remaining = nil

	persistErr := e.persistLocked(ctx)
	if e.scheduler != nil {
		e.scheduler.Arm(end, e.tickInterval)
	}
	e.publishLocked()
	e.log.Debugw("phase resumed", "phase", e.state.Phase, "ends_at", end)

	return e.state.Clone(), persistErr
}

// Reset unconditionally returns to idle. Pending wakes and any deferred
// auto-start are cancelled before the method returns.
func (e *Engine) Reset(ctx context.Context) (domain.TimerState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resetLocked(ctx)
}

func (e *Engine) resetLocked(ctx context.Context) (domain.TimerState, error) {
	e.cancelAutoStartLocked()
	if e.scheduler != nil {
		e.scheduler.CancelAll()
	}
	e.state = domain.NewTimerState()

	persistErr := e.persistLocked(ctx)
	e.publishLocked()
	e.log.Debugw("timer reset")

	return e.state.Clone(), persistErr
}

// Reconcile settles a phase whose end time passed while no process was
// watching the clock (the host was suspended or between CLI invocations).
// Stats are still recorded, but no deferred auto-start is scheduled: the
// next phase begins on the user's explicit start.
func (e *Engine) Reconcile(ctx context.Context) (domain.TimerState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	if !e.state.Running || e.state.EndTime == nil || now.Before(*e.state.EndTime) {
		return e.state.Clone(), nil
	}

	err := e.completeLocked(ctx, now, false)
	return e.state.Clone(), err
}

// StatsSummary returns today's count, the trailing week total and the
// streak.
func (e *Engine) StatsSummary(ctx context.Context) (*domain.StatsSummary, error) {
	if e.stats == nil {
		return &domain.StatsSummary{}, nil
	}
	return e.stats.Summary(ctx, domain.DateKeyOf(e.now()))
}

// ClearStats empties the completion ledger and streak together.
func (e *Engine) ClearStats(ctx context.Context) error {
	if e.stats == nil {
		return nil
	}
	return e.stats.Clear(ctx)
}

// handleWake is the scheduler's phase-end callback.
func (e *Engine) handleWake(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.state.Running || e.state.EndTime == nil {
		// Stale wake racing a pause or reset.
		return
	}
	if now.Before(*e.state.EndTime) {
		// Early delivery; put the wake back for the real end.
		if e.scheduler != nil {
			e.scheduler.Arm(*e.state.EndTime, e.tickInterval)
		}
		return
	}

	if err := e.completeLocked(context.Background(), now, true); err != nil {
		e.log.Warnw("phase completion bookkeeping failed", "error", err)
	}
}

// handleTick is the scheduler's coarse re-render callback. It carries no
// state semantics, but a tick that observes an end time in the past means
// the phase-end wake was missed (host suspended), so it settles the phase
// the same way a late wake would.
func (e *Engine) handleTick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Running && e.state.EndTime != nil && !now.Before(*e.state.EndTime) {
		if err := e.completeLocked(context.Background(), now, true); err != nil {
			e.log.Warnw("phase completion bookkeeping failed", "error", err)
		}
		return
	}
	e.publishLocked()
}

// completeLocked settles the current phase: records a work completion,
// publishes the intermediate "just completed" snapshot, notifies, and (when
// autoAdvance is set) schedules the deferred start of the next phase.
// In-memory state advances regardless of storage outcome; only the stats
// increment can fail, and that failure is returned after the transition is
// done.
func (e *Engine) completeLocked(ctx context.Context, now time.Time, autoAdvance bool) error {
	completed := e.state.Phase

	if e.scheduler != nil {
		e.scheduler.CancelAll()
	}
	e.state.Running = false
	e.state.StartTime = nil
	e.state.EndTime = nil
	e.state.Remaining = nil

	var statsErr error
	if completed == domain.PhaseWork {
		// The completion snapshot already carries the finished work phase,
		// so the break choice at the next start keys off this count as-is.
		e.state.CycleCount++
		if e.stats != nil {
			statsErr = e.stats.RecordCompletion(ctx, domain.DateKeyOf(now))
			if statsErr != nil {
				e.log.Warnw("failed to record work completion", "error", statsErr)
			}
		}
	}

	if err := e.persistLocked(ctx); err != nil && statsErr == nil {
		statsErr = err
	}
	e.publishLocked()
	e.log.Infow("phase completed", "phase", completed, "cycle_count", e.state.CycleCount)

	if e.notifier != nil {
		if err := e.notifier.PhaseComplete(completed); err != nil {
			e.log.Debugw("notification failed", "error", err)
		}
	}

	if autoAdvance {
		e.scheduleAutoStartLocked()
	}

	return statsErr
}

// scheduleAutoStartLocked arms the deferred continuation that begins the
// next phase after the completion delay.
func (e *Engine) scheduleAutoStartLocked() {
	e.cancelAutoStartLocked()
	e.autoStart = time.AfterFunc(e.autoStartDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		// A reset or manual start in the delay window cleared the handle;
		// in that case this continuation must not run.
		if e.autoStart == nil || e.state.Running {
			return
		}
		e.autoStart = nil
		if _, err := e.startLocked(context.Background()); err != nil {
			e.log.Warnw("auto-start persistence failed", "error", err)
		}
	})
}

func (e *Engine) cancelAutoStartLocked() {
	if e.autoStart != nil {
		e.autoStart.Stop()
		e.autoStart = nil
	}
}

// currentSettings fetches a fresh settings snapshot, falling back to
// defaults when the provider is missing or misconfigured.
func (e *Engine) currentSettings() domain.Settings {
	if e.settings == nil {
		return domain.DefaultSettings()
	}
	return e.settings.Settings().Normalize()
}

// persistLocked writes the snapshot through to storage. Failures are
// returned for the caller to surface; the in-memory state is already
// committed.
func (e *Engine) persistLocked(ctx context.Context) error {
	if e.snapshots == nil {
		return nil
	}
	if err := e.snapshots.Save(ctx, e.state.Clone()); err != nil {
		e.log.Warnw("failed to persist timer state", "error", err)
		return err
	}
	return nil
}

func (e *Engine) publishLocked() {
	if e.publisher != nil {
		e.publisher.Publish(e.state.Clone())
	}
}
