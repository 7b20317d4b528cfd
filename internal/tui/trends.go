package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/calendar"
	"github.com/evdal/timeliste/internal/store"
)

type trendsModel struct {
	store  *store.Store
	engine *activity.Engine
	width  int
	height int

	stats  activity.RollingStats
	loaded bool

	chart barchart.Model
}

func newTrendsModel(s *store.Store, e *activity.Engine) trendsModel {
	return trendsModel{
		store:  s,
		engine: e,
		chart:  barchart.New(60, 10),
	}
}

func (t *trendsModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

type trendsDataMsg struct {
	stats activity.RollingStats
}

func (t trendsModel) refresh() tea.Cmd {
	s := t.store
	e := t.engine
	return func() tea.Msg {
		now := time.Now()
		from := now.AddDate(0, 0, -(activity.WindowDays - 1)).Format(calendar.DateKey)
		entries, _ := s.ListEntries(store.EntryFilter{From: &from})
		return trendsDataMsg{stats: e.Rolling(entries, now)}
	}
}

func (t trendsModel) update(msg tea.Msg) (trendsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case trendsDataMsg:
		t.stats = msg.stats
		t.loaded = true
		t.buildChart()
		return t, nil
	}
	return t, nil
}

func (t *trendsModel) buildChart() {
	chartWidth := t.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if t.height > 30 {
		chartHeight = 14
	}

	t.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for i, date := range t.stats.Dates {
		hours := t.stats.Daily[i]

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if date == t.stats.PeakDate && hours > 0 {
			style = lipgloss.NewStyle().Foreground(colorHighlight)
		}

		label := ""
		if d, err := time.ParseInLocation(calendar.DateKey, date, time.Local); err == nil {
			label = d.Format("02")
		}

		values := []barchart.BarValue{{Name: date, Value: hours, Style: style}}
		if hours == 0 {
			values = []barchart.BarValue{{Name: date, Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	t.chart.PushAll(bars)
	t.chart.Draw()
}

func (t trendsModel) view() string {
	w := t.width - 4

	var rangeLabel string
	if n := len(t.stats.Dates); n > 0 {
		first, _ := time.ParseInLocation(calendar.DateKey, t.stats.Dates[0], time.Local)
		last, _ := time.ParseInLocation(calendar.DateKey, t.stats.Dates[n-1], time.Local)
		rangeLabel = mutedStyle.Render(fmt.Sprintf("%s — %s", first.Format("Jan 02"), last.Format("Jan 02, 2006")))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Trends"), "  ",
		mutedStyle.Render("last 30 days"), "  ", rangeLabel,
	)

	chartView := t.chart.View()
	statsView := t.renderStats(w)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", chartView, "", statsView),
	)
}

func (t trendsModel) renderStats(w int) string {
	if !t.loaded {
		return mutedStyle.Render("  Loading...")
	}

	var rows []string

	peak := mutedStyle.Render("none")
	if t.stats.PeakDate != "" {
		i := indexOf(t.stats.Dates, t.stats.PeakDate)
		if i >= 0 {
			peak = highlightStyle.Render(fmt.Sprintf("%s (%s)", t.stats.PeakDate, formatHours(t.stats.Daily[i])))
		}
	}

	streak := mutedStyle.Render("none")
	if t.stats.StreakDays > 0 {
		streak = successStyle.Render(fmt.Sprintf("%d days", t.stats.StreakDays))
	}

	rows = append(rows,
		fmt.Sprintf("  %s %s", mutedStyle.Render("Daily average:"), highlightStyle.Render(formatHours(t.stats.Average))),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Peak day:     "), peak),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Streak:       "), streak),
		fmt.Sprintf("  %s %s", mutedStyle.Render("Last 7 days:  "), highlightStyle.Render(formatHours(t.stats.Last7Total))),
	)

	rows = append(rows, "", t.renderPacing(w))
	return strings.Join(rows, "\n")
}

// renderPacing compares accumulated hours against the even-pace baseline
// over the same window.
func (t trendsModel) renderPacing(w int) string {
	n := len(t.stats.Cumulative)
	if n == 0 {
		return ""
	}
	actual := t.stats.Cumulative[n-1]
	expected := t.stats.Expected[n-1]
	diff := actual - expected

	var verdict string
	switch {
	case diff >= 0.5:
		verdict = successStyle.Render(fmt.Sprintf("ahead of pace by %s", formatHours(diff)))
	case diff <= -0.5:
		verdict = warningStyle.Render(fmt.Sprintf("behind pace by %s", formatHours(-diff)))
	default:
		verdict = mutedStyle.Render("on pace")
	}

	return fmt.Sprintf("  %s %s %s",
		mutedStyle.Render("Total:        "),
		highlightStyle.Render(formatHours(actual)),
		verdict,
	)
}

func indexOf(xs []string, x string) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}
