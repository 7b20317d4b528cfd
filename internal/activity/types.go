// Package activity derives calendar views and rolling statistics from raw
// time entries and activity events. Everything here is a pure function of
// its inputs; malformed input degrades to a defined zero value instead of
// an error.
package activity

import (
	"time"

	"github.com/evdal/timeliste/internal/calendar"
)

// Status is the approval state of a time entry.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// NoWorkCaseRef marks comment-only entries logged to record that no
// billable work occurred. Their hours never count toward totals.
const NoWorkCaseRef = "client_sick"

// TimeEntry is a logged unit of work, keyed to a calendar date.
type TimeEntry struct {
	ID        int64
	Date      string // yyyy-MM-dd
	Hours     float64
	Status    Status
	CaseRef   string // optional
	CreatedAt time.Time
}

// Billable reports whether the entry's hours count toward day totals.
func (e TimeEntry) Billable() bool {
	return e.CaseRef != NoWorkCaseRef
}

// Event is an activity-log record. Timestamp is kept raw; events whose
// timestamp does not parse are dropped during aggregation.
type Event struct {
	ID        string
	Timestamp string // RFC 3339
	Message   string
	Actor     string // optional
}

// DayBucket holds everything known about one calendar date.
type DayBucket struct {
	Date       string
	TotalHours float64
	Entries    []TimeEntry
	Events     []Event
	Markers    []calendar.Marker
	Level      int // 0..5 intensity, relative to the month
}

// MonthView is the renderable grid for one visible month.
type MonthView struct {
	MonthStart    time.Time
	Days          []DayBucket
	LeadingBlanks int // blank cells before day 1 in a Monday-first grid
}

// MonthInput is everything a month view is computed from.
type MonthInput struct {
	Month   time.Time // any date within the visible month
	Entries []TimeEntry
	Events  []Event

	// DailyHours is an optional precomputed rollup keyed by date. Where
	// present it is authoritative; the locally summed value is only the
	// fallback.
	DailyHours map[string]float64
}
