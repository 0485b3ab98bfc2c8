package domain

import "time"

// dateKeyLayout is the calendar-date key format used by the stats ledger.
const dateKeyLayout = "2006-01-02"

// DateKey identifies a local calendar day (YYYY-MM-DD). Day granularity is
// the unit of truth; sub-day precision and DST shifts are deliberately
// ignored.
type DateKey string

// DateKeyOf returns the key for the local calendar day containing t.
func DateKeyOf(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// AddDays returns the key of the calendar day n days after (or before, for
// negative n) this one. An unparseable key is returned unchanged.
func (d DateKey) AddDays(n int) DateKey {
	t, err := time.ParseInLocation(dateKeyLayout, string(d), time.Local)
	if err != nil {
		return d
	}
	return DateKeyOf(t.AddDate(0, 0, n))
}

// Valid reports whether the key parses as a calendar date.
func (d DateKey) Valid() bool {
	_, err := time.ParseInLocation(dateKeyLayout, string(d), time.Local)
	return err == nil
}

// AdvanceStreak applies the consecutive-day streak rule for a work
// completion on today. Same-day repeats leave the streak alone, the day
// after the last recorded one extends it, anything else restarts at 1.
func AdvanceStreak(streak int, lastDay, today DateKey) int {
	switch {
	case lastDay == "":
		return 1
	case lastDay == today:
		if streak < 1 {
			return 1
		}
		return streak
	case lastDay.AddDays(1) == today:
		return streak + 1
	default:
		return 1
	}
}

// StatsSummary aggregates the ledger counters surfaced to callers.
type StatsSummary struct {
	Today  int
	Week   int
	Streak int
}
