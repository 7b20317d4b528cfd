package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/calendar"
	"github.com/evdal/timeliste/internal/store"
)

type calendarModel struct {
	store  *store.Store
	engine *activity.Engine
	width  int
	height int

	month     time.Time // first of the visible month
	requested string    // raw selection request, resolved before use
	selected  string    // resolved selected date
	grid      activity.MonthView
	loaded    bool
}

func newCalendarModel(s *store.Store, e *activity.Engine) calendarModel {
	now := time.Now()
	m := calendarModel{
		store:     s,
		engine:    e,
		month:     time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		requested: now.Format(calendar.DateKey),
	}
	m.resolveSelection()
	return m
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

// resolveSelection is the single gate between the raw request and what
// the rest of the view reads.
func (c *calendarModel) resolveSelection() {
	c.selected = activity.ResolveSelection(c.requested, c.month, time.Now())
}

type calendarDataMsg struct {
	view activity.MonthView
}

func (c calendarModel) refresh() tea.Cmd {
	month := c.month
	s := c.store
	e := c.engine
	return func() tea.Msg {
		last := month.AddDate(0, 1, -1)
		from := month.Format(calendar.DateKey)
		to := last.Format(calendar.DateKey)

		entries, _ := s.ListEntries(store.EntryFilter{From: &from, To: &to})
		events, _ := s.EventsBetween(from, to)

		rollup := make(map[string]float64)
		if days, err := s.GetDailyHours(from, to); err == nil {
			for _, d := range days {
				rollup[d.Date] = d.Hours
			}
		}

		view := e.MonthView(activity.MonthInput{
			Month:      month,
			Entries:    entries,
			Events:     events,
			DailyHours: rollup,
		})
		return calendarDataMsg{view: view}
	}
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	switch msg := msg.(type) {
	case calendarDataMsg:
		c.grid = msg.view
		c.loaded = true
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			return c.moveSelection(-1)
		case key.Matches(msg, keys.Right):
			return c.moveSelection(1)
		case key.Matches(msg, keys.Up):
			return c.moveSelection(-7)
		case key.Matches(msg, keys.Down):
			return c.moveSelection(7)
		case key.Matches(msg, keys.PrevMonth):
			return c.shiftMonth(-1)
		case key.Matches(msg, keys.NextMonth):
			return c.shiftMonth(1)
		case key.Matches(msg, keys.Today):
			now := time.Now()
			c.month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
			c.requested = now.Format(calendar.DateKey)
			c.resolveSelection()
			return c, c.refresh()
		}
	}
	return c, nil
}

func (c calendarModel) moveSelection(days int) (calendarModel, tea.Cmd) {
	cur, err := time.ParseInLocation(calendar.DateKey, c.selected, time.Local)
	if err != nil {
		return c, nil
	}
	next := cur.AddDate(0, 0, days)
	c.requested = next.Format(calendar.DateKey)

	if next.Month() != c.month.Month() || next.Year() != c.month.Year() {
		c.month = time.Date(next.Year(), next.Month(), 1, 0, 0, 0, 0, next.Location())
		c.resolveSelection()
		return c, c.refresh()
	}
	c.resolveSelection()
	return c, nil
}

func (c calendarModel) shiftMonth(months int) (calendarModel, tea.Cmd) {
	c.month = c.month.AddDate(0, months, 0)
	c.resolveSelection()
	return c, c.refresh()
}

func (c calendarModel) view() string {
	w := c.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Calendar"), "  ",
		highlightStyle.Render(c.month.Format("January 2006")),
	)

	grid := c.renderGrid()
	legend := c.renderLegend()
	detail := c.renderDetail(w)
	nav := mutedStyle.Render("  ←↑↓→: select day  [/]: month  t: today")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", grid, "", legend, "", detail, nav),
	)
}

func (c calendarModel) renderGrid() string {
	if !c.loaded {
		return mutedStyle.Render("  Loading...")
	}

	var rows []string
	rows = append(rows, mutedStyle.Render("  Mo  Tu  We  Th  Fr  Sa  Su"))

	cells := make([]string, 0, c.grid.LeadingBlanks+len(c.grid.Days))
	for i := 0; i < c.grid.LeadingBlanks; i++ {
		cells = append(cells, "    ")
	}
	for _, day := range c.grid.Days {
		cells = append(cells, c.renderCell(day))
	}
	for len(cells)%7 != 0 {
		cells = append(cells, "    ")
	}

	for i := 0; i < len(cells); i += 7 {
		rows = append(rows, strings.Join(cells[i:i+7], ""))
	}
	return strings.Join(rows, "\n")
}

func (c calendarModel) renderCell(day activity.DayBucket) string {
	num := day.Date[len(day.Date)-2:]
	if num[0] == '0' {
		num = " " + num[1:]
	}

	mark := " "
	for _, m := range day.Markers {
		if m.Kind == calendar.KindHoliday {
			mark = holidayMarkStyle.Render("•")
			break
		}
		mark = vacationMarkStyle.Render("•")
	}

	if day.Date == c.selected {
		return " " + selectedDayStyle.Width(2).Render(num) + mark
	}
	return " " + heatStyle(day.Level).Width(2).Render(num) + mark
}

func (c calendarModel) renderLegend() string {
	var ramp []string
	ramp = append(ramp, mutedStyle.Render("  less "))
	for level := 0; level <= 5; level++ {
		ramp = append(ramp, heatStyle(level).Width(1).Render("■"))
	}
	ramp = append(ramp, mutedStyle.Render(" more   "))
	ramp = append(ramp, holidayMarkStyle.Render("•"), mutedStyle.Render(" holiday  "))
	ramp = append(ramp, vacationMarkStyle.Render("•"), mutedStyle.Render(" vacation"))
	return lipgloss.JoinHorizontal(lipgloss.Center, ramp...)
}

func (c calendarModel) renderDetail(w int) string {
	var day *activity.DayBucket
	for i := range c.grid.Days {
		if c.grid.Days[i].Date == c.selected {
			day = &c.grid.Days[i]
			break
		}
	}
	if day == nil {
		return ""
	}

	title := titleStyle.Render(day.Date) + "  " + highlightStyle.Render(formatHours(day.TotalHours))

	var rows []string
	rows = append(rows, title)

	for _, m := range day.Markers {
		style := holidayMarkStyle
		if m.Kind == calendar.KindVacation {
			style = vacationMarkStyle
		}
		rows = append(rows, "  "+style.Render("• "+m.Label))
	}

	if len(day.Entries) == 0 && len(day.Events) == 0 {
		rows = append(rows, mutedStyle.Render("  No entries"))
	}
	for _, e := range day.Entries {
		label := formatHours(e.Hours)
		if !e.Billable() {
			label = mutedStyle.Render("no billable work")
		}
		caseStr := ""
		if e.CaseRef != "" && e.Billable() {
			caseStr = mutedStyle.Render(" " + e.CaseRef)
		}
		rows = append(rows, fmt.Sprintf("  %s%s  %s", label, caseStr, subtitleStyle.Render(string(e.Status))))
	}
	for _, ev := range day.Events {
		when := ""
		if ts, err := time.Parse(time.RFC3339, ev.Timestamp); err == nil {
			when = ts.Local().Format("15:04") + " "
		}
		rows = append(rows, mutedStyle.Render("  "+when+ev.Message))
	}

	return strings.Join(rows, "\n")
}
