package activity

import (
	"time"

	"github.com/evdal/timeliste/internal/calendar"
)

// ResolveSelection reconciles an externally requested selected date with
// the visible month. The fallback chain is deterministic: the request if
// it parses and is in-month, else today if in-month, else the first day
// of the month. Consumers read the resolved value only, never the raw
// request.
func ResolveSelection(requested string, month, today time.Time) string {
	first := monthStart(month)

	if d, err := time.ParseInLocation(calendar.DateKey, requested, month.Location()); err == nil {
		if sameMonth(d, first) {
			return d.Format(calendar.DateKey)
		}
	}
	if sameMonth(today, first) {
		return today.Format(calendar.DateKey)
	}
	return first.Format(calendar.DateKey)
}

func sameMonth(d, ref time.Time) bool {
	return d.Year() == ref.Year() && d.Month() == ref.Month()
}
