package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evdal/timeliste/internal/calendar"
)

var rollingToday = time.Date(2024, time.June, 30, 15, 0, 0, 0, time.Local)

// entryDaysAgo returns a billable entry dated n days before rollingToday.
func entryDaysAgo(n int, hours float64) TimeEntry {
	return TimeEntry{
		Date:    rollingToday.AddDate(0, 0, -n).Format(calendar.DateKey),
		Hours:   hours,
		CaseRef: "c1",
	}
}

func TestComputeRolling_WindowShape(t *testing.T) {
	s := ComputeRolling(nil, rollingToday)

	require.Len(t, s.Dates, WindowDays)
	require.Len(t, s.Daily, WindowDays)
	require.Len(t, s.Cumulative, WindowDays)
	require.Len(t, s.Expected, WindowDays)

	assert.Equal(t, "2024-06-01", s.Dates[0])
	assert.Equal(t, "2024-06-30", s.Dates[WindowDays-1])
}

func TestComputeRolling_EmptyDataIsValid(t *testing.T) {
	s := ComputeRolling(nil, rollingToday)

	assert.Zero(t, s.Average)
	assert.Zero(t, s.StreakDays)
	assert.Zero(t, s.Last7Total)
	assert.Empty(t, s.PeakDate)
	for i := 0; i < WindowDays; i++ {
		assert.Zero(t, s.Daily[i])
		assert.Zero(t, s.Cumulative[i])
	}
}

func TestComputeRolling_StreakStopsAtFirstGap(t *testing.T) {
	// Last 4 days positive, 5th-from-last zero.
	entries := []TimeEntry{
		entryDaysAgo(0, 2),
		entryDaysAgo(1, 1),
		entryDaysAgo(2, 3),
		entryDaysAgo(3, 0.5),
		entryDaysAgo(5, 4),
	}
	s := ComputeRolling(entries, rollingToday)
	assert.Equal(t, 4, s.StreakDays)
}

func TestComputeRolling_NoWorkEntriesBreakNothing(t *testing.T) {
	// A sentinel-only day counts as zero, ending the streak there.
	entries := []TimeEntry{
		entryDaysAgo(0, 2),
		{Date: rollingToday.AddDate(0, 0, -1).Format(calendar.DateKey), Hours: 8, CaseRef: NoWorkCaseRef},
		entryDaysAgo(2, 3),
	}
	s := ComputeRolling(entries, rollingToday)
	assert.Equal(t, 1, s.StreakDays)
	assert.Equal(t, 5.0, s.Cumulative[WindowDays-1])
}

func TestComputeRolling_PeakFirstOccurrenceWins(t *testing.T) {
	entries := []TimeEntry{
		entryDaysAgo(10, 6),
		entryDaysAgo(4, 6),
		entryDaysAgo(2, 1),
	}
	s := ComputeRolling(entries, rollingToday)
	assert.Equal(t, rollingToday.AddDate(0, 0, -10).Format(calendar.DateKey), s.PeakDate)
}

func TestComputeRolling_CumulativeAndBaseline(t *testing.T) {
	entries := []TimeEntry{
		entryDaysAgo(0, 3),
		entryDaysAgo(29, 3),
	}
	s := ComputeRolling(entries, rollingToday)

	assert.Equal(t, 3.0, s.Cumulative[0])
	assert.Equal(t, 3.0, s.Cumulative[WindowDays-2])
	assert.Equal(t, 6.0, s.Cumulative[WindowDays-1])

	assert.InDelta(t, 0.2, s.Average, 1e-9)
	assert.InDelta(t, 0.2, s.Expected[0], 1e-9)
	assert.InDelta(t, 6.0, s.Expected[WindowDays-1], 1e-9)
}

func TestComputeRolling_Last7Total(t *testing.T) {
	entries := []TimeEntry{
		entryDaysAgo(0, 1),
		entryDaysAgo(6, 2),
		entryDaysAgo(7, 100), // just outside the final 7 days
	}
	s := ComputeRolling(entries, rollingToday)
	assert.Equal(t, 3.0, s.Last7Total)
}

func TestComputeRolling_EntriesOutsideWindowIgnored(t *testing.T) {
	entries := []TimeEntry{
		entryDaysAgo(30, 9),
		entryDaysAgo(29, 1),
	}
	s := ComputeRolling(entries, rollingToday)
	assert.Equal(t, 1.0, s.Cumulative[WindowDays-1])
	assert.Equal(t, s.Dates[0], s.PeakDate)
}
