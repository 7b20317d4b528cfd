package activity

import (
	"sort"
	"time"

	"github.com/evdal/timeliste/internal/calendar"
)

// BuildMonthView groups the input records into per-day buckets for the
// month containing in.Month, annotates them with calendar markers, and
// assigns intensity levels scaled to the month's busiest day.
func BuildMonthView(in MonthInput) MonthView {
	first := monthStart(in.Month)
	markers := calendar.MarkersForMonth(first)

	entriesByDay := groupEntries(in.Entries)
	eventsByDay := groupEvents(in.Events)

	var days []DayBucket
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		key := d.Format(calendar.DateKey)
		entries := entriesByDay[key]
		days = append(days, DayBucket{
			Date:       key,
			TotalHours: dayTotal(key, entries, in.DailyHours),
			Entries:    entries,
			Events:     eventsByDay[key],
			Markers:    markers[key],
		})
	}

	scale := newLevelScale(days)
	for i := range days {
		days[i].Level = scale.level(days[i].TotalHours)
	}

	return MonthView{
		MonthStart:    first,
		Days:          days,
		LeadingBlanks: leadingBlanks(first),
	}
}

// groupEntries buckets entries by their date key verbatim, most recently
// created first within a day.
func groupEntries(entries []TimeEntry) map[string][]TimeEntry {
	byDay := make(map[string][]TimeEntry)
	for _, e := range entries {
		byDay[e.Date] = append(byDay[e.Date], e)
	}
	for _, day := range byDay {
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].CreatedAt.After(day[j].CreatedAt)
		})
	}
	return byDay
}

// groupEvents buckets events by the calendar date of their timestamp,
// newest first. Events with an unparsable timestamp are dropped.
func groupEvents(events []Event) map[string][]Event {
	byDay := make(map[string][]Event)
	for _, ev := range events {
		ts, err := time.Parse(time.RFC3339, ev.Timestamp)
		if err != nil {
			continue
		}
		byDay[ts.Format(calendar.DateKey)] = append(byDay[ts.Format(calendar.DateKey)], ev)
	}
	for _, day := range byDay {
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].Timestamp > day[j].Timestamp
		})
	}
	return byDay
}

// dayTotal prefers the external rollup when it has the date; otherwise it
// sums the billable entries.
func dayTotal(key string, entries []TimeEntry, rollup map[string]float64) float64 {
	if h, ok := rollup[key]; ok {
		return h
	}
	return SumBillable(entries)
}

// SumBillable sums hours across entries, skipping no-work sentinels.
func SumBillable(entries []TimeEntry) float64 {
	var total float64
	for _, e := range entries {
		if e.Billable() {
			total += e.Hours
		}
	}
	return total
}

func monthStart(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
}

// leadingBlanks is the ISO weekday of the month start minus one, giving a
// Monday-first grid offset in 0..6.
func leadingBlanks(first time.Time) int {
	wd := int(first.Weekday())
	if wd == 0 {
		wd = 7
	}
	return wd - 1
}
