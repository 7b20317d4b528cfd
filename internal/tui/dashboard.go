package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/store"
)

type dashboardModel struct {
	store  *store.Store
	engine *activity.Engine
	timer  timerModel
	width  int
	height int

	todayTotal   float64
	dailyGoal    float64
	streakDays   int
	recentEvents []activity.Event
	cases        []store.Case

	// Case picker state
	picking      bool
	pickerCursor int
}

func newDashboardModel(s *store.Store, e *activity.Engine) dashboardModel {
	return dashboardModel{
		store:  s,
		engine: e,
		timer:  newTimerModel(),
	}
}

func (d dashboardModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) isRunning() bool { return d.timer.running() }
func (d dashboardModel) isPaused() bool  { return d.timer.paused() }
func (d dashboardModel) elapsed() time.Duration {
	return d.timer.currentElapsed()
}

type dashboardDataMsg struct {
	todayTotal   float64
	dailyGoal    float64
	streakDays   int
	recentEvents []activity.Event
	cases        []store.Case
}

func (d dashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		total, _ := d.store.GetTodayTotal()
		goal := d.store.DailyGoalHours()

		now := time.Now()
		from := now.AddDate(0, 0, -(activity.WindowDays - 1)).Format("2006-01-02")
		entries, _ := d.store.ListEntries(store.EntryFilter{From: &from})
		streak := d.engine.Rolling(entries, now).StreakDays

		events, _ := d.store.RecentEvents(6)
		cases, _ := d.store.ListCases(false)

		return dashboardDataMsg{
			todayTotal:   total,
			dailyGoal:    goal,
			streakDays:   streak,
			recentEvents: events,
			cases:        cases,
		}
	}
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		d.todayTotal = msg.todayTotal
		d.dailyGoal = msg.dailyGoal
		d.streakDays = msg.streakDays
		d.recentEvents = msg.recentEvents
		d.cases = msg.cases
		return d, nil

	case tickMsg:
		d.timer.tick()
		return d, nil

	case tea.KeyMsg:
		d.timer.recordActivity()

		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Start):
			if d.timer.running() {
				return d, nil
			}
			if len(d.cases) == 0 {
				d.timer.start("", "")
				return d, func() tea.Msg { return timerStartedMsg{} }
			}
			if len(d.cases) == 1 {
				d.timer.start(d.cases[0].Ref, d.cases[0].Name)
				return d, func() tea.Msg { return timerStartedMsg{} }
			}
			d.picking = true
			d.pickerCursor = 0
			return d, nil

		case key.Matches(msg, keys.Stop):
			return d.stopTimer()

		case key.Matches(msg, keys.Pause):
			d.timer.toggle()
			return d, nil
		}
	}
	return d, nil
}

func (d dashboardModel) updatePicker(msg tea.Msg) (dashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if d.pickerCursor > 0 {
				d.pickerCursor--
			}
		case key.Matches(msg, keys.Down):
			if d.pickerCursor < len(d.cases)-1 {
				d.pickerCursor++
			}
		case key.Matches(msg, keys.Enter):
			c := d.cases[d.pickerCursor]
			d.picking = false
			d.timer.start(c.Ref, c.Name)
			return d, func() tea.Msg { return timerStartedMsg{} }
		case key.Matches(msg, keys.Back):
			d.picking = false
		}
	}
	return d, nil
}

// stopTimer ends the session and persists it as a draft entry for today.
func (d dashboardModel) stopTimer() (dashboardModel, tea.Cmd) {
	hours, caseRef := d.timer.stop()
	if hours <= 0 {
		return d, func() tea.Msg {
			return statusMsg{text: "Nothing to log", isError: false}
		}
	}
	logEntry := func() tea.Msg {
		entry, err := d.store.AddEntry(todayKey(), hours, activity.StatusDraft, caseRef)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return entryLoggedMsg{entry: entry}
	}
	return d, tea.Batch(logEntry, func() tea.Msg { return timerStoppedMsg{hours: hours, caseRef: caseRef} })
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4

	timerPanel := d.renderTimerPanel(contentWidth)
	todayPanel := d.renderTodayPanel(contentWidth)

	var bottomPanel string
	if d.picking {
		bottomPanel = d.renderCasePicker(contentWidth)
	} else {
		bottomPanel = d.renderActivityPanel(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, timerPanel, todayPanel, bottomPanel)
}

func (d dashboardModel) renderTimerPanel(w int) string {
	var timeDisplay string
	var indicator string

	if d.timer.running() {
		elapsed := d.timer.currentElapsed()
		timeStr := formatDuration(elapsed)

		if d.timer.paused() {
			timeDisplay = timerPausedStyle.Width(w - 6).Render(timeStr)
			if d.timer.isIdle {
				indicator = warningStyle.Render("⏸  IDLE")
			} else {
				indicator = warningStyle.Render("⏸  PAUSED")
			}
		} else {
			timeDisplay = timerRunningStyle.Width(w - 6).Render(timeStr)
			indicator = successStyle.Render("●  RUNNING")
		}

		caseLine := mutedStyle.Render("no case")
		if d.timer.caseName != "" {
			caseLine = highlightStyle.Render(d.timer.caseName)
		}

		content := lipgloss.JoinVertical(lipgloss.Center,
			timeDisplay,
			indicator,
			caseLine,
		)
		return activePanelStyle.Width(w).Render(content)
	}

	timeDisplay = timerStyle.Width(w - 6).Render("00:00:00")
	indicator = mutedStyle.Render("■  STOPPED")
	hint := mutedStyle.Render("Press s to start tracking")

	content := lipgloss.JoinVertical(lipgloss.Center,
		timeDisplay,
		indicator,
		hint,
	)
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderTodayPanel(w int) string {
	title := titleStyle.Render("Today")
	total := highlightStyle.Render(formatHours(d.todayTotal))
	goal := mutedStyle.Render(fmt.Sprintf("of %s goal", formatHours(d.dailyGoal)))
	header := fmt.Sprintf("%s  %s %s", title, total, goal)

	bar := renderGoalBar(d.todayTotal, d.dailyGoal, min(w-6, 40))

	streak := mutedStyle.Render("No active streak")
	if d.streakDays > 0 {
		streak = successStyle.Render(fmt.Sprintf("🔥 %d-day streak", d.streakDays))
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, bar, streak),
	)
}

func renderGoalBar(value, goal float64, width int) string {
	if width < 10 {
		width = 10
	}
	ratio := 0.0
	if goal > 0 {
		ratio = value / goal
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	style := warningStyle
	if ratio >= 1 {
		style = successStyle
	}
	return style.Render(bar)
}

func (d dashboardModel) renderActivityPanel(w int) string {
	title := titleStyle.Render("Recent Activity")
	if len(d.recentEvents) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			mutedStyle.Render("No activity yet"),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	for _, ev := range d.recentEvents {
		when := ev.Timestamp
		if ts, err := time.Parse(time.RFC3339, ev.Timestamp); err == nil {
			when = ts.Local().Format("Jan 02 15:04")
		}
		row := fmt.Sprintf("  %s  %s", mutedStyle.Render(when), ev.Message)
		if ev.Actor != "" {
			row += mutedStyle.Render(" — " + ev.Actor)
		}
		rows = append(rows, row)
	}

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderCasePicker(w int) string {
	title := titleStyle.Render("Select Case")

	var rows []string
	rows = append(rows, title)
	for i, c := range d.cases {
		colorDot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, colorDot, c.Name)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
