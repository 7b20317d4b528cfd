package tui

import (
	"fmt"
	"time"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewCalendar
	viewTrends
	viewEntries
	viewSettings
)

var viewNames = []string{"Dashboard", "Calendar", "Trends", "Entries", "Settings"}

// --- Messages ---

type timerStartedMsg struct{}

type timerStoppedMsg struct {
	hours   float64
	caseRef string
}

type entryLoggedMsg struct {
	entry *activity.TimeEntry
}

type entryChangedMsg struct{}

type caseCreatedMsg struct {
	c *store.Case
}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatHours(hours float64) string {
	return fmt.Sprintf("%.1fh", hours)
}

func todayKey() string {
	return time.Now().Format("2006-01-02")
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
