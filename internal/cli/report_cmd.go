package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/calendar"
	"github.com/evdal/timeliste/internal/store"
)

func newReportCmd(app *App) *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a month overview and rolling activity summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			if monthFlag != "" {
				parsed, err := time.ParseInLocation("2006-01", monthFlag, time.Local)
				if err != nil {
					return fmt.Errorf("parsing month %q: %w", monthFlag, err)
				}
				month = parsed
			}

			engine := activity.NewEngine()

			view, err := buildMonthView(app.Store, engine, month)
			if err != nil {
				return err
			}
			fmt.Print(formatMonth(month, view))

			from := now.AddDate(0, 0, -(activity.WindowDays - 1)).Format(calendar.DateKey)
			entries, err := app.Store.ListEntries(store.EntryFilter{From: &from})
			if err != nil {
				return fmt.Errorf("listing entries: %w", err)
			}
			fmt.Print(formatRolling(engine.Rolling(entries, now)))
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "Month to report on (YYYY-MM, default current)")

	return cmd
}

func buildMonthView(s *store.Store, engine *activity.Engine, month time.Time) (activity.MonthView, error) {
	last := month.AddDate(0, 1, -1)
	from := month.Format(calendar.DateKey)
	to := last.Format(calendar.DateKey)

	entries, err := s.ListEntries(store.EntryFilter{From: &from, To: &to})
	if err != nil {
		return activity.MonthView{}, fmt.Errorf("listing entries: %w", err)
	}
	events, err := s.EventsBetween(from, to)
	if err != nil {
		return activity.MonthView{}, fmt.Errorf("listing events: %w", err)
	}

	rollup := make(map[string]float64)
	days, err := s.GetDailyHours(from, to)
	if err != nil {
		return activity.MonthView{}, fmt.Errorf("daily rollup: %w", err)
	}
	for _, d := range days {
		rollup[d.Date] = d.Hours
	}

	return engine.MonthView(activity.MonthInput{
		Month:      month,
		Entries:    entries,
		Events:     events,
		DailyHours: rollup,
	}), nil
}

// formatMonth renders a Monday-first grid where each cell shows the day
// number and its intensity level, with holiday/vacation marks.
func formatMonth(month time.Time, view activity.MonthView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", month.Format("January 2006"))
	b.WriteString("  Mo     Tu     We     Th     Fr     Sa     Su\n")

	col := 0
	for i := 0; i < view.LeadingBlanks; i++ {
		b.WriteString("       ")
		col++
	}

	var total float64
	var markers []string
	for _, day := range view.Days {
		total += day.TotalHours

		mark := " "
		for _, m := range day.Markers {
			if m.Kind == calendar.KindHoliday {
				mark = "*"
			} else if mark == " " {
				mark = "~"
			}
			markers = append(markers, fmt.Sprintf("%s %s %s", day.Date, markKind(m.Kind), m.Label))
		}

		fmt.Fprintf(&b, "%4s:%d%s ", day.Date[len(day.Date)-2:], day.Level, mark)
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nTotal: %.1fh    (* holiday, ~ vacation, :N intensity 0-5)\n", total)

	if len(markers) > 0 {
		b.WriteString("\n")
		for _, m := range markers {
			fmt.Fprintf(&b, "  %s\n", m)
		}
	}

	b.WriteString("\n")
	return b.String()
}

func markKind(k calendar.Kind) string {
	if k == calendar.KindHoliday {
		return "holiday "
	}
	return "vacation"
}

func formatRolling(stats activity.RollingStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Last %d days\n", activity.WindowDays)
	fmt.Fprintf(&b, "  Daily average: %.1fh\n", stats.Average)
	fmt.Fprintf(&b, "  Last 7 days:   %.1fh\n", stats.Last7Total)

	if stats.PeakDate != "" {
		for i, d := range stats.Dates {
			if d == stats.PeakDate {
				fmt.Fprintf(&b, "  Peak day:      %s (%.1fh)\n", stats.PeakDate, stats.Daily[i])
				break
			}
		}
	}

	if stats.StreakDays > 0 {
		fmt.Fprintf(&b, "  Streak:        %d days\n", stats.StreakDays)
	}

	if n := len(stats.Cumulative); n > 0 {
		actual := stats.Cumulative[n-1]
		expected := stats.Expected[n-1]
		fmt.Fprintf(&b, "  Total:         %.1fh (even pace: %.1fh)\n", actual, expected)
	}

	return b.String()
}
