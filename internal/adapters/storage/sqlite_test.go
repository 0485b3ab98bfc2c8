package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvidx/tempo/internal/domain"
	"github.com/dvidx/tempo/internal/ports"
)

func setupTestStorage(t *testing.T) ports.Storage {
	t.Helper()
	store, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStatsRepository_RecordCompletion(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	stats := store.Stats()

	day := domain.DateKey("2024-03-09")

	require.NoError(t, stats.RecordCompletion(ctx, day))
	require.NoError(t, stats.RecordCompletion(ctx, day))

	count, err := stats.CountForDay(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Absent days read as zero, not an error.
	count, err = stats.CountForDay(ctx, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStatsRepository_StreakProgression(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	stats := store.Stats()

	// Consecutive days 1, 2, 3 build a streak of 3.
	for _, day := range []domain.DateKey{"2024-03-01", "2024-03-02", "2024-03-03"} {
		require.NoError(t, stats.RecordCompletion(ctx, day))
	}
	streak, lastDay, err := stats.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)
	assert.Equal(t, domain.DateKey("2024-03-03"), lastDay)

	// A second completion on the same day leaves the streak alone.
	require.NoError(t, stats.RecordCompletion(ctx, "2024-03-03"))
	streak, _, err = stats.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	// A gap of two or more days restarts at 1.
	require.NoError(t, stats.RecordCompletion(ctx, "2024-03-07"))
	streak, lastDay, err = stats.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)
	assert.Equal(t, domain.DateKey("2024-03-07"), lastDay)
}

func TestStatsRepository_SummaryWeekWindow(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	stats := store.Stats()

	today := domain.DateKey("2024-03-09")

	// today: 2, today-1: 1, today-8: 5 — the day-8 entry falls outside the
	// trailing window.
	require.NoError(t, stats.RecordCompletion(ctx, today))
	require.NoError(t, stats.RecordCompletion(ctx, today))
	require.NoError(t, stats.RecordCompletion(ctx, today.AddDays(-1)))
	for i := 0; i < 5; i++ {
		require.NoError(t, stats.RecordCompletion(ctx, today.AddDays(-8)))
	}

	summary, err := stats.Summary(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Today)
	assert.Equal(t, 3, summary.Week)
}

func TestStatsRepository_Clear(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	stats := store.Stats()

	today := domain.DateKey("2024-03-09")
	require.NoError(t, stats.RecordCompletion(ctx, today))
	require.NoError(t, stats.Clear(ctx))

	summary, err := stats.Summary(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Today)
	assert.Equal(t, 0, summary.Week)
	assert.Equal(t, 0, summary.Streak)

	_, lastDay, err := stats.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DateKey(""), lastDay)
}

func TestStateRepository_SaveAndLoad(t *testing.T) {
	store := setupTestStorage(t)
	ctx := context.Background()
	repo := store.TimerState()

	t.Run("load before any save reports not found", func(t *testing.T) {
		state, found, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, domain.PhaseIdle, state.Phase)
	})

	t.Run("running snapshot round trips", func(t *testing.T) {
		start := time.Now().Truncate(time.Millisecond)
		end := start.Add(25 * time.Minute)
		in := domain.TimerState{
			Phase:      domain.PhaseWork,
			Running:    true,
			StartTime:  &start,
			EndTime:    &end,
			CycleCount: 2,
		}
		require.NoError(t, repo.Save(ctx, in))

		out, found, err := repo.Load(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, domain.PhaseWork, out.Phase)
		assert.True(t, out.Running)
		require.NotNil(t, out.EndTime)
		assert.True(t, out.EndTime.Equal(end))
		assert.Nil(t, out.Remaining)
		assert.Equal(t, 2, out.CycleCount)
	})

	t.Run("paused snapshot overwrites the row", func(t *testing.T) {
		rem := 7 * time.Minute
		in := domain.TimerState{
			Phase:      domain.PhaseShortBreak,
			Remaining:  &rem,
			CycleCount: 2,
		}
		require.NoError(t, repo.Save(ctx, in))

		out, found, err := repo.Load(ctx)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, domain.PhaseShortBreak, out.Phase)
		assert.False(t, out.Running)
		assert.Nil(t, out.EndTime)
		require.NotNil(t, out.Remaining)
		assert.Equal(t, rem, *out.Remaining)
		assert.NoError(t, out.Validate())
	})
}
