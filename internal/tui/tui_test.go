package tui

import (
	"testing"
	"time"

	"github.com/evdal/timeliste/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Timer model
// ============================================================

func TestTimerStartStop(t *testing.T) {
	tm := newTimerModel()
	if tm.running() {
		t.Fatal("timer should start stopped")
	}

	tm.start("ACME-1", "Acme onboarding")
	if !tm.running() {
		t.Fatal("timer should be running after start")
	}
	if tm.paused() {
		t.Fatal("timer should not be paused")
	}
	if tm.caseRef != "ACME-1" || tm.caseName != "Acme onboarding" {
		t.Fatal("case info not set")
	}

	time.Sleep(10 * time.Millisecond)
	hours, caseRef := tm.stop()
	if caseRef != "ACME-1" {
		t.Fatalf("stop should return the tracked case, got %q", caseRef)
	}
	if hours < 0 {
		t.Fatalf("negative hours: %v", hours)
	}
	if tm.running() {
		t.Fatal("timer should be stopped")
	}
}

func TestTimerStopWhenStopped(t *testing.T) {
	tm := newTimerModel()

	hours, caseRef := tm.stop()
	if hours != 0 || caseRef != "" {
		t.Fatal("stop on stopped timer should return zero values")
	}
}

func TestTimerPauseResume(t *testing.T) {
	tm := newTimerModel()
	tm.start("ACME-1", "Acme")

	tm.pause()
	if !tm.paused() {
		t.Fatal("timer should be paused")
	}
	if !tm.running() {
		t.Fatal("paused timer is still 'running' (not stopped)")
	}

	tm.resume()
	if tm.paused() {
		t.Fatal("timer should not be paused after resume")
	}
	if !tm.running() {
		t.Fatal("timer should be running after resume")
	}

	tm.stop()
}

func TestTimerPauseWhenNotRunning(t *testing.T) {
	tm := newTimerModel()

	// Pause when stopped — should be a no-op
	tm.pause()
	if tm.paused() {
		t.Fatal("should not be paused when stopped")
	}
}

func TestTimerResumeWhenNotPaused(t *testing.T) {
	tm := newTimerModel()
	tm.start("ACME-1", "Acme")

	// Resume when running — should be a no-op
	tm.resume()
	if tm.paused() {
		t.Fatal("should not be paused")
	}

	tm.stop()
}

func TestTimerToggle(t *testing.T) {
	tm := newTimerModel()
	tm.start("ACME-1", "Acme")

	tm.toggle() // running -> paused
	if !tm.paused() {
		t.Fatal("toggle should pause")
	}

	tm.toggle() // paused -> running
	if tm.paused() {
		t.Fatal("toggle should resume")
	}

	tm.stop()
}

func TestTimerToggleWhenStopped(t *testing.T) {
	tm := newTimerModel()

	// Toggle when stopped — should be a no-op
	tm.toggle()
	if tm.running() {
		t.Fatal("toggle should not start the timer")
	}
}

func TestTimerElapsed(t *testing.T) {
	tm := newTimerModel()

	// Stopped timer should return 0
	if tm.currentElapsed() != 0 {
		t.Fatal("stopped timer should have 0 elapsed")
	}

	tm.start("ACME-1", "Acme")
	time.Sleep(50 * time.Millisecond)

	elapsed := tm.currentElapsed()
	if elapsed < 40*time.Millisecond {
		t.Fatalf("elapsed too small: %v", elapsed)
	}

	tm.stop()
}

func TestTimerElapsedWhilePaused(t *testing.T) {
	tm := newTimerModel()
	tm.start("ACME-1", "Acme")

	time.Sleep(50 * time.Millisecond)
	tm.pause()
	pausedElapsed := tm.currentElapsed()

	time.Sleep(50 * time.Millisecond)
	// While paused, elapsed should not grow significantly
	stillPaused := tm.currentElapsed()
	diff := stillPaused - pausedElapsed
	if diff > 10*time.Millisecond {
		t.Fatalf("elapsed grew %v while paused", diff)
	}

	tm.stop()
}

func TestTimerTick(t *testing.T) {
	tm := newTimerModel()
	tm.start("ACME-1", "Acme")

	time.Sleep(20 * time.Millisecond)
	tm.tick()

	if tm.elapsed < 10*time.Millisecond {
		t.Fatal("tick should update elapsed")
	}

	tm.stop()
}

func TestTimerTickWhenStopped(t *testing.T) {
	tm := newTimerModel()

	// Tick on stopped timer should be a no-op
	tm.tick()
	if tm.elapsed != 0 {
		t.Fatal("tick on stopped timer should not change elapsed")
	}
}

func TestTimerIdleDetection(t *testing.T) {
	tm := newTimerModel()
	tm.idleTimeout = 50 * time.Millisecond // very short for testing
	tm.start("ACME-1", "Acme")

	time.Sleep(100 * time.Millisecond)
	tm.tick()

	if !tm.isIdle {
		t.Fatal("timer should detect idle")
	}
	if !tm.paused() {
		t.Fatal("timer should auto-pause on idle")
	}

	tm.stop()
}

func TestTimerIdleRecovery(t *testing.T) {
	tm := newTimerModel()
	tm.idleTimeout = 50 * time.Millisecond
	tm.start("ACME-1", "Acme")

	time.Sleep(100 * time.Millisecond)
	tm.tick() // triggers idle

	if !tm.isIdle || !tm.paused() {
		t.Fatal("should be idle and paused")
	}

	// Activity should resume
	tm.recordActivity()
	if tm.isIdle {
		t.Fatal("should no longer be idle after activity")
	}
	if tm.paused() {
		t.Fatal("should have resumed after activity")
	}

	tm.stop()
}

func TestTimerStopRoundsHours(t *testing.T) {
	tm := newTimerModel()
	tm.start("", "")
	time.Sleep(10 * time.Millisecond)

	hours, _ := tm.stop()
	// Sub-minute sessions round down to 0.00
	if hours != 0 {
		t.Fatalf("expected 0.00 for a 10ms session, got %v", hours)
	}
}

// ============================================================
// Helper functions
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Minute, "00:01:00"},
		{time.Hour, "01:00:00"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		got := formatDuration(tt.d)
		if got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0.0h"},
		{1, "1.0h"},
		{1.5, "1.5h"},
		{7.5, "7.5h"},
	}
	for _, tt := range tests {
		got := formatHours(tt.hours)
		if got != tt.want {
			t.Errorf("formatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 {
		t.Fatal("min(3,5) should be 3")
	}
	if min(5, 3) != 3 {
		t.Fatal("min(5,3) should be 3")
	}
	if max(3, 5) != 5 {
		t.Fatal("max(3,5) should be 5")
	}
	if max(5, 3) != 5 {
		t.Fatal("max(5,3) should be 5")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Dashboard", "Calendar", "Trends", "Entries", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewDashboard != 0 || viewCalendar != 1 || viewTrends != 2 || viewEntries != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// Form validators
// ============================================================

func TestValidDate(t *testing.T) {
	if err := validDate("2026-03-15"); err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	if err := validDate("2026-02-30"); err == nil {
		t.Fatal("impossible date accepted")
	}
	if err := validDate("15.03.2026"); err == nil {
		t.Fatal("wrong format accepted")
	}
	if err := validDate(""); err == nil {
		t.Fatal("empty date accepted")
	}
}

func TestValidHours(t *testing.T) {
	if err := validHours("7.5"); err != nil {
		t.Fatalf("valid hours rejected: %v", err)
	}
	if err := validHours("0"); err != nil {
		t.Fatalf("zero hours rejected: %v", err)
	}
	if err := validHours("25"); err == nil {
		t.Fatal("hours above 24 accepted")
	}
	if err := validHours("-1"); err == nil {
		t.Fatal("negative hours accepted")
	}
	if err := validHours("abc"); err == nil {
		t.Fatal("non-numeric hours accepted")
	}
}

func TestValidGoal(t *testing.T) {
	if err := validGoal("7.5"); err != nil {
		t.Fatalf("valid goal rejected: %v", err)
	}
	if err := validGoal("0"); err == nil {
		t.Fatal("zero goal accepted")
	}
	if err := validGoal("abc"); err == nil {
		t.Fatal("non-numeric goal accepted")
	}
}

func TestFormatSettingValue(t *testing.T) {
	tests := []struct {
		key, val, want string
	}{
		{"daily_goal_hours", "7.5", "7.5 hours"},
		{"daily_goal_hours", "invalid", "invalid"},
		{"actor_name", "kari", "kari"},
		{"default_case", "", "unset"},
	}
	for _, tt := range tests {
		got := formatSettingValue(tt.key, tt.val)
		if got != tt.want {
			t.Errorf("formatSettingValue(%q, %q) = %q, want %q", tt.key, tt.val, got, tt.want)
		}
	}
}

// ============================================================
// Dashboard model
// ============================================================

func TestDashboardInit(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	d := app.dashboard

	if d.isRunning() {
		t.Fatal("dashboard timer should not be running initially")
	}
	if d.isPaused() {
		t.Fatal("dashboard timer should not be paused initially")
	}
	if d.elapsed() != 0 {
		t.Fatal("dashboard should have 0 elapsed initially")
	}
	if d.picking {
		t.Fatal("should not be in picker mode initially")
	}
}

func TestDashboardStopWithoutHoursDoesNotLog(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	d := app.dashboard

	d.timer.start("ACME-1", "Acme")
	d, cmd := d.stopTimer()
	if cmd == nil {
		t.Fatal("stop should return a command")
	}
	msg := cmd()
	// An instant session rounds to 0 hours and must not create an entry
	if _, ok := msg.(statusMsg); !ok {
		t.Fatalf("expected statusMsg for empty session, got %T", msg)
	}
	entries, _ := s.ListEntries(store.EntryFilter{})
	if len(entries) != 0 {
		t.Fatal("no entry should be logged for a zero-hour session")
	}
}

// ============================================================
// Calendar model
// ============================================================

func TestCalendarInitSelectsToday(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	c := app.calendar

	if c.selected != todayKey() {
		t.Fatalf("initial selection = %q, want today %q", c.selected, todayKey())
	}
	if c.month.Day() != 1 {
		t.Fatal("month anchor should be the first of the month")
	}
}

func TestCalendarShiftMonthResolvesSelection(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	c := app.calendar

	c, _ = c.shiftMonth(1)
	// The original request (today) is outside the new month, so the
	// selection falls back to the first of that month.
	if c.selected != c.month.Format("2006-01-02") {
		t.Fatalf("selection = %q, want first of month %q", c.selected, c.month.Format("2006-01-02"))
	}
}

func TestCalendarShiftBackToCurrentMonthRestoresToday(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	c := app.calendar

	c, _ = c.shiftMonth(1)
	c, _ = c.shiftMonth(-1)
	if c.selected != todayKey() {
		t.Fatalf("selection = %q, want today %q", c.selected, todayKey())
	}
}

func TestCalendarMoveSelectionAcrossMonth(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	c := app.calendar

	before := c.month
	// Walk forward enough days to guarantee crossing into the next month.
	for i := 0; i < 5; i++ {
		c, _ = c.moveSelection(7)
	}
	if c.month.Equal(before) {
		t.Fatal("month should have advanced with the selection")
	}
	if c.selected == "" {
		t.Fatal("selection should stay resolved")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewDashboard {
		t.Fatal("default view should be dashboard")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
	if app.engine == nil {
		t.Fatal("engine should be initialized")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	// Test all views render without panic
	views := []viewState{viewDashboard, viewCalendar, viewTrends, viewEntries, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !stringContains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppRenderFooter(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	footer := app.renderFooter()
	if footer == "" {
		t.Fatal("footer should not be empty")
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !stringContains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func stringContains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test — just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"timerRunning", func() string { return timerRunningStyle.Render("test") }},
		{"timerPaused", func() string { return timerPausedStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"subtitle", func() string { return subtitleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
		{"holidayMark", func() string { return holidayMarkStyle.Render("test") }},
		{"vacationMark", func() string { return vacationMarkStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}

func TestHeatStyleClamps(t *testing.T) {
	// Out-of-range levels clamp instead of panicking
	for _, level := range []int{-1, 0, 3, 5, 9} {
		out := heatStyle(level).Render("x")
		if out == "" {
			t.Fatalf("heatStyle(%d) rendered empty", level)
		}
	}
}
