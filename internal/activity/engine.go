package activity

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/maypok86/otter/v2"

	"github.com/evdal/timeliste/internal/calendar"
)

// Engine memoizes view computation by input identity: the same data
// revision and the same month reuse the prior result. The cache is purely
// a performance layer; recomputing from scratch yields identical output.
type Engine struct {
	views   *otter.Cache[string, MonthView]
	rolling *otter.Cache[string, RollingStats]
	rev     atomic.Uint64
}

func NewEngine() *Engine {
	return &Engine{
		views: otter.Must(&otter.Options[string, MonthView]{
			MaximumSize: 64,
		}),
		rolling: otter.Must(&otter.Options[string, RollingStats]{
			MaximumSize: 8,
		}),
	}
}

// MonthView returns the view for in.Month, computing it at most once per
// data revision.
func (e *Engine) MonthView(in MonthInput) MonthView {
	key := fmt.Sprintf("%d|%s", e.rev.Load(), in.Month.Format("2006-01"))
	if v, ok := e.views.GetIfPresent(key); ok {
		return v
	}
	v := BuildMonthView(in)
	e.views.Set(key, v)
	return v
}

// Rolling returns the 30-day statistics ending today, memoized per data
// revision and calendar day.
func (e *Engine) Rolling(entries []TimeEntry, today time.Time) RollingStats {
	key := fmt.Sprintf("%d|%s", e.rev.Load(), today.Format(calendar.DateKey))
	if s, ok := e.rolling.GetIfPresent(key); ok {
		return s
	}
	s := ComputeRolling(entries, today)
	e.rolling.Set(key, s)
	return s
}

// Invalidate marks all cached views stale. Call after any write to the
// underlying records.
func (e *Engine) Invalidate() {
	e.rev.Add(1)
}
