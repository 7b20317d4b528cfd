package activity

import (
	"time"

	"github.com/evdal/timeliste/internal/calendar"
)

// WindowDays is the fixed length of the rolling look-back window.
const WindowDays = 30

// RollingStats summarizes the trailing 30 calendar days ending today.
// Every slice has exactly WindowDays points, one per day, zero-filled for
// days without data.
type RollingStats struct {
	Dates      []string  // yyyy-MM-dd, oldest first
	Daily      []float64 // billable hours per day
	Cumulative []float64 // running sum of Daily
	Expected   []float64 // averagePerDay * (i+1), even-pacing baseline
	Average    float64   // sum(Daily) / WindowDays
	PeakDate   string    // date of the first maximum; "" when all zero
	StreakDays int       // consecutive trailing days with positive hours
	Last7Total float64
}

// ComputeRolling builds RollingStats for the inclusive range
// [today-29, today]. An empty entry collection is a valid input and
// yields the all-zero result.
func ComputeRolling(entries []TimeEntry, today time.Time) RollingStats {
	byDay := make(map[string]float64)
	for _, e := range entries {
		if e.Billable() {
			byDay[e.Date] += e.Hours
		}
	}

	stats := RollingStats{
		Dates:      make([]string, WindowDays),
		Daily:      make([]float64, WindowDays),
		Cumulative: make([]float64, WindowDays),
		Expected:   make([]float64, WindowDays),
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	start := day.AddDate(0, 0, -(WindowDays - 1))

	var sum, peak float64
	for i := 0; i < WindowDays; i++ {
		key := start.AddDate(0, 0, i).Format(calendar.DateKey)
		h := byDay[key]
		stats.Dates[i] = key
		stats.Daily[i] = h
		sum += h
		stats.Cumulative[i] = sum
		if h > peak {
			peak = h
			stats.PeakDate = key
		}
	}

	stats.Average = sum / WindowDays
	for i := range stats.Expected {
		stats.Expected[i] = stats.Average * float64(i+1)
	}

	for i := WindowDays - 1; i >= 0 && stats.Daily[i] > 0; i-- {
		stats.StreakDays++
	}
	for i := WindowDays - 7; i < WindowDays; i++ {
		stats.Last7Total += stats.Daily[i]
	}

	return stats
}
