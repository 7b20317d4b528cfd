package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/evdal/timeliste/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	cases      []store.Case
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	actorName   *string
	dailyGoal   *string
	defaultCase *string
}

func newSettingsModel(s *store.Store) settingsModel {
	an, dg, dc := "", "", ""
	return settingsModel{
		store:       s,
		actorName:   &an,
		dailyGoal:   &dg,
		defaultCase: &dc,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
	cases    []store.Case
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		cases, _ := s.store.ListCases(false)
		return settingsDataMsg{settings: settings, cases: cases}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.cases = msg.cases
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.actorName = s.getVal("actor_name", "")
	*s.dailyGoal = s.getVal("daily_goal_hours", "7.5")
	*s.defaultCase = s.getVal("default_case", "")

	caseOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range s.cases {
		caseOptions = append(caseOptions, huh.NewOption(fmt.Sprintf("%s (%s)", c.Name, c.Ref), c.Ref))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Description("Shown on activity events").Value(s.actorName),
			huh.NewInput().Title("Daily goal (hours)").Value(s.dailyGoal).Validate(validGoal),
			huh.NewSelect[string]().Title("Default case").Options(caseOptions...).Value(s.defaultCase),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func validGoal(v string) error {
	g, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if g <= 0 || g > 24 {
		return fmt.Errorf("must be between 0 and 24")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.saveSettings()
		return s, s.refresh()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() {
	s.store.SetSetting("actor_name", *s.actorName)
	s.store.SetSetting("daily_goal_hours", *s.dailyGoal)
	s.store.SetSetting("default_case", *s.defaultCase)
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil || v == "" {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func formatSettingValue(k, v string) string {
	if v == "" {
		return "unset"
	}
	if k == "daily_goal_hours" {
		if g, err := strconv.ParseFloat(v, 64); err == nil {
			return fmt.Sprintf("%.1f hours", g)
		}
	}
	return v
}
