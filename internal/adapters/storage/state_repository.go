package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// stateRepository implements ports.StateRepository using SQLite. The timer
// state lives in a single row overwritten on every mutation.
type stateRepository struct {
	db *sql.DB
}

// newStateRepository creates a new snapshot repository.
func newStateRepository(db *sql.DB) ports.StateRepository {
	return &stateRepository{db: db}
}

// Save overwrites the persisted snapshot.
func (r *stateRepository) Save(ctx context.Context, state domain.TimerState) error {
	var remainingMS sql.NullInt64
	if state.Remaining != nil {
		remainingMS = sql.NullInt64{Int64: state.Remaining.Milliseconds(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO timer_state (id, phase, running, started_at, ends_at, remaining_ms, cycle_count, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			phase = excluded.phase,
			running = excluded.running,
			started_at = excluded.started_at,
			ends_at = excluded.ends_at,
			remaining_ms = excluded.remaining_ms,
			cycle_count = excluded.cycle_count,
			updated_at = excluded.updated_at
	`,
		string(state.Phase),
		state.Running,
		state.StartTime,
		state.EndTime,
		remainingMS,
		state.CycleCount,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to save timer state: %w", err)
	}

	return nil
}

// Load returns the persisted snapshot, or found=false when none exists.
func (r *stateRepository) Load(ctx context.Context) (domain.TimerState, bool, error) {
	var (
		phase       string
		running     bool
		startedAt   sql.NullTime
		endsAt      sql.NullTime
		remainingMS sql.NullInt64
		cycleCount  int
		updatedAt   time.Time
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT phase, running, started_at, ends_at, remaining_ms, cycle_count, updated_at
		FROM timer_state WHERE id = 1
	`).Scan(&phase, &running, &startedAt, &endsAt, &remainingMS, &cycleCount, &updatedAt)
	if err == sql.ErrNoRows {
		return domain.NewTimerState(), false, nil
	}
	if err != nil {
		return domain.NewTimerState(), false, fmt.Errorf("failed to load timer state: %w", err)
	}

	state := domain.TimerState{
		Phase:      domain.Phase(phase),
		Running:    running,
		CycleCount: cycleCount,
	}
	if startedAt.Valid {
		t := startedAt.Time
		state.StartTime = &t
	}
	if endsAt.Valid {
		t := endsAt.Time
		state.EndTime = &t
	}
	if remainingMS.Valid {
		d := time.Duration(remainingMS.Int64) * time.Millisecond
		state.Remaining = &d
	}

	return state, true, nil
}
