package store

import "time"

// Case is a billing target for time entries.
type Case struct {
	ID        int64
	Ref       string
	Name      string
	Color     string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Setting struct {
	Key   string
	Value string
}

// EntryFilter is used to filter time entries in queries. Date bounds are
// yyyy-MM-dd keys, inclusive.
type EntryFilter struct {
	CaseRef *string
	From    *string
	To      *string
	Limit   int
}

// DailyHours is the per-day billable rollup computed in SQL. It is the
// authoritative daily-hours summary fed to the view engine.
type DailyHours struct {
	Date       string
	Hours      float64
	EntryCount int
}
