// Package ports defines the interfaces (driven and driving ports) between
// the timer engine and its infrastructure, following hexagonal architecture
// principles.
package ports

import (
	"context"

	"github.com/dvidx/tempo/internal/domain"
)

// StatsRepository is the append-only completion ledger.
// This is a driven port (implemented by adapters).
type StatsRepository interface {
	// RecordCompletion increments the counter for the given day and applies
	// the streak rule, atomically.
	RecordCompletion(ctx context.Context, day domain.DateKey) error

	// CountForDay returns the completion count for one day (0 when absent).
	CountForDay(ctx context.Context, day domain.DateKey) (int, error)

	// Streak returns the current streak and the day it was last advanced.
	Streak(ctx context.Context) (int, domain.DateKey, error)

	// Summary aggregates today's count, the trailing 7-day total and the
	// streak as observed from the given day.
	Summary(ctx context.Context, today domain.DateKey) (*domain.StatsSummary, error)

	// Clear empties all day entries and the streak fields together.
	Clear(ctx context.Context) error
}

// StateRepository persists the timer state snapshot write-through.
// This is a driven port (implemented by adapters).
type StateRepository interface {
	// Save overwrites the persisted snapshot.
	Save(ctx context.Context, state domain.TimerState) error

	// Load returns the persisted snapshot, or found=false when none exists.
	Load(ctx context.Context) (state domain.TimerState, found bool, err error)
}

// Storage is the combined repository interface.
type Storage interface {
	// Stats provides access to the completion ledger.
	Stats() StatsRepository

	// TimerState provides access to the persisted snapshot.
	TimerState() StateRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
