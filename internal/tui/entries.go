package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/evdal/timeliste/internal/activity"
	"github.com/evdal/timeliste/internal/calendar"
	"github.com/evdal/timeliste/internal/store"
)

var caseColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type entriesModel struct {
	store  *store.Store
	width  int
	height int

	entries []activity.TimeEntry
	cases   []store.Case
	cursor  int

	formActive bool
	form       *huh.Form
	formType   string // "entry", "case"

	// Form field pointers (survive value copies)
	formDate    *string
	formHours   *string
	formCaseRef *string
	formStatus  *string
	formRef     *string
	formName    *string
	formColor   *string
}

func newEntriesModel(s *store.Store) entriesModel {
	date, hours, caseRef, status := "", "", "", ""
	ref, name, color := "", "", caseColors[0]
	return entriesModel{
		store:       s,
		formDate:    &date,
		formHours:   &hours,
		formCaseRef: &caseRef,
		formStatus:  &status,
		formRef:     &ref,
		formName:    &name,
		formColor:   &color,
	}
}

func (e *entriesModel) setSize(w, h int) {
	e.width = w
	e.height = h
}

type entriesDataMsg struct {
	entries []activity.TimeEntry
	cases   []store.Case
}

func (e entriesModel) refresh() tea.Cmd {
	s := e.store
	return func() tea.Msg {
		entries, _ := s.ListEntries(store.EntryFilter{Limit: 50})
		cases, _ := s.ListCases(false)
		return entriesDataMsg{entries: entries, cases: cases}
	}
}

func (e entriesModel) update(msg tea.Msg) (entriesModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case entriesDataMsg:
		e.entries = msg.entries
		e.cases = msg.cases
		if e.cursor >= len(e.entries) {
			e.cursor = max(0, len(e.entries)-1)
		}
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if e.cursor > 0 {
				e.cursor--
			}
		case key.Matches(msg, keys.Down):
			if e.cursor < len(e.entries)-1 {
				e.cursor++
			}
		case key.Matches(msg, keys.New):
			return e.showEntryForm()
		case key.Matches(msg, keys.NewCase):
			return e.showCaseForm()
		case key.Matches(msg, keys.Delete):
			if len(e.entries) > 0 {
				id := e.entries[e.cursor].ID
				return e, func() tea.Msg {
					if err := e.store.DeleteEntry(id); err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					return entryChangedMsg{}
				}
			}
		case key.Matches(msg, keys.Submit):
			return e.submitSelected()
		}
	}
	return e, nil
}

// submitSelected moves a draft entry into the approval queue.
func (e entriesModel) submitSelected() (entriesModel, tea.Cmd) {
	if len(e.entries) == 0 {
		return e, nil
	}
	entry := e.entries[e.cursor]
	if entry.Status != activity.StatusDraft {
		return e, func() tea.Msg {
			return statusMsg{text: "Only drafts can be submitted", isError: true}
		}
	}
	return e, func() tea.Msg {
		if err := e.store.SetEntryStatus(entry.ID, activity.StatusPending); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return entryChangedMsg{}
	}
}

func (e entriesModel) showEntryForm() (entriesModel, tea.Cmd) {
	*e.formDate = todayKey()
	*e.formHours = ""
	*e.formCaseRef = ""
	if len(e.cases) > 0 {
		*e.formCaseRef = e.cases[0].Ref
	}
	*e.formStatus = string(activity.StatusDraft)
	e.formType = "entry"

	caseOptions := make([]huh.Option[string], 0, len(e.cases)+1)
	for _, c := range e.cases {
		caseOptions = append(caseOptions, huh.NewOption(fmt.Sprintf("● %s (%s)", c.Name, c.Ref), c.Ref))
	}
	caseOptions = append(caseOptions, huh.NewOption("No billable work (sick leave etc.)", activity.NoWorkCaseRef))

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Description("YYYY-MM-DD").Value(e.formDate).Validate(validDate),
			huh.NewInput().Title("Hours").Value(e.formHours).Validate(validHours),
			huh.NewSelect[string]().Title("Case").Options(caseOptions...).Value(e.formCaseRef),
			huh.NewSelect[string]().Title("Status").
				Options(
					huh.NewOption("Draft", string(activity.StatusDraft)),
					huh.NewOption("Submit for approval", string(activity.StatusPending)),
				).Value(e.formStatus),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func (e entriesModel) showCaseForm() (entriesModel, tea.Cmd) {
	*e.formRef = ""
	*e.formName = ""
	*e.formColor = caseColors[0]
	e.formType = "case"

	colorOptions := make([]huh.Option[string], len(caseColors))
	for i, c := range caseColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Case Reference").Description("e.g. ACME-2026-014").Value(e.formRef),
			huh.NewInput().Title("Case Name").Value(e.formName),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(e.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	e.formActive = true
	return e, e.form.Init()
}

func validDate(s string) error {
	if _, err := time.ParseInLocation(calendar.DateKey, s, time.Local); err != nil {
		return fmt.Errorf("not a valid date")
	}
	return nil
}

func validHours(s string) error {
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if h < 0 || h > 24 {
		return fmt.Errorf("must be between 0 and 24")
	}
	return nil
}

func (e entriesModel) updateForm(msg tea.Msg) (entriesModel, tea.Cmd) {
	// Check for escape to cancel form
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		switch e.formType {
		case "entry":
			date, hoursStr, caseRef := *e.formDate, *e.formHours, *e.formCaseRef
			status := activity.Status(*e.formStatus)
			return e, func() tea.Msg {
				hours, _ := strconv.ParseFloat(hoursStr, 64)
				entry, err := e.store.AddEntry(date, hours, status, caseRef)
				if err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return entryLoggedMsg{entry: entry}
			}
		case "case":
			ref, name, color := *e.formRef, *e.formName, *e.formColor
			if ref == "" || name == "" {
				return e, nil
			}
			return e, func() tea.Msg {
				c, err := e.store.CreateCase(ref, name, color)
				if err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return caseCreatedMsg{c: c}
			}
		}
	}

	return e, cmd
}

func (e entriesModel) view() string {
	if e.formActive && e.form != nil {
		title := titleStyle.Render("Log Entry")
		if e.formType == "case" {
			title = titleStyle.Render("New Case")
		}
		formView := e.form.View()
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", formView)
		return panelStyle.Width(e.width - 4).Render(content)
	}
	return e.renderList()
}

func (e entriesModel) renderList() string {
	w := e.width - 4
	title := titleStyle.Render("Entries")

	if len(e.entries) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No entries yet. Press n to log one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	casesByRef := make(map[string]store.Case, len(e.cases))
	for _, c := range e.cases {
		casesByRef[c.Ref] = c
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-12s %7s %-10s %-20s", "", "Date", "Hours", "Status", "Case"))
	rows = append(rows, header)
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 56))))

	for i, entry := range e.entries {
		cursor := "   "
		style := normalItemStyle
		if i == e.cursor {
			cursor = " > "
			style = selectedItemStyle
		}

		hoursStr := formatHours(entry.Hours)
		caseStr := mutedStyle.Render("no billable work")
		if entry.Billable() {
			if c, ok := casesByRef[entry.CaseRef]; ok {
				dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render("●")
				caseStr = dot + " " + c.Name
			} else {
				caseStr = entry.CaseRef
			}
		}

		row := fmt.Sprintf("%s%-12s %7s %-10s %s",
			cursor, entry.Date, hoursStr, renderStatus(entry.Status), caseStr,
		)
		rows = append(rows, style.Render(row))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: log entry  c: new case  p: submit  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderStatus(s activity.Status) string {
	switch s {
	case activity.StatusDraft:
		return mutedStyle.Render(string(s))
	case activity.StatusPending:
		return warningStyle.Render(string(s))
	case activity.StatusApproved:
		return successStyle.Render(string(s))
	case activity.StatusRejected:
		return errorStyle.Render(string(s))
	}
	return string(s)
}
