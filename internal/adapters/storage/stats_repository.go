package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

// statsRepository implements ports.StatsRepository using SQLite.
type statsRepository struct {
	db *sql.DB
}

// newStatsRepository creates a new stats ledger repository.
func newStatsRepository(db *sql.DB) ports.StatsRepository {
	return &statsRepository{db: db}
}

// RecordCompletion increments the day counter and applies the streak rule in
// a single transaction, so a failure leaves the ledger untouched.
func (r *statsRepository) RecordCompletion(ctx context.Context, day domain.DateKey) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO completions (day, count) VALUES (?, 1)
		ON CONFLICT(day) DO UPDATE SET count = count + 1
	`, string(day))
	if err != nil {
		return fmt.Errorf("failed to increment completion count: %w", err)
	}

	var streak int
	var lastDay string
	err = tx.QueryRowContext(ctx,
		"SELECT current, last_day FROM streak WHERE id = 1").Scan(&streak, &lastDay)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to read streak: %w", err)
	}

	streak = domain.AdvanceStreak(streak, domain.DateKey(lastDay), day)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO streak (id, current, last_day) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET current = excluded.current, last_day = excluded.last_day
	`, streak, string(day))
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}

	return tx.Commit()
}

// CountForDay returns the completion count for one day, 0 when absent.
func (r *statsRepository) CountForDay(ctx context.Context, day domain.DateKey) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT count FROM completions WHERE day = ?", string(day)).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read completion count: %w", err)
	}
	return count, nil
}

// Streak returns the current streak and the day it was last advanced.
func (r *statsRepository) Streak(ctx context.Context) (int, domain.DateKey, error) {
	var streak int
	var lastDay string
	err := r.db.QueryRowContext(ctx,
		"SELECT current, last_day FROM streak WHERE id = 1").Scan(&streak, &lastDay)
	if err == sql.ErrNoRows {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to read streak: %w", err)
	}
	return streak, domain.DateKey(lastDay), nil
}

// Summary aggregates today's count, the trailing 7-day window (inclusive of
// today, each day looked up independently) and the streak.
func (r *statsRepository) Summary(ctx context.Context, today domain.DateKey) (*domain.StatsSummary, error) {
	summary := &domain.StatsSummary{}

	for offset := 0; offset > -7; offset-- {
		count, err := r.CountForDay(ctx, today.AddDays(offset))
		if err != nil {
			return nil, err
		}
		if offset == 0 {
			summary.Today = count
		}
		summary.Week += count
	}

	streak, _, err := r.Streak(ctx)
	if err != nil {
		return nil, err
	}
	summary.Streak = streak

	return summary, nil
}

// Clear empties all day entries and the streak fields in one transaction.
func (r *statsRepository) Clear(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM completions"); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM streak"); err != nil {
		return fmt.Errorf("failed to clear streak: %w", err)
	}

	return tx.Commit()
}
