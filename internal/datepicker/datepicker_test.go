package datepicker

import (
	"strings"
	"testing"
	"time"

	"extras-cli/internal/calendar"

	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"
)

var testLoc = time.FixedZone("UTC+2", 2*3600)

// 2026-10-19 is a Monday; October 2026 starts on a Thursday.
func fixedNow() time.Time {
	return time.Date(2026, time.October, 19, 10, 0, 0, 0, testLoc)
}

func newTestPicker(opts ...Option) Model {
	base := []Option{WithNow(fixedNow), WithLocation(testLoc)}
	m := New(append(base, opts...)...)
	m.Focus()
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "delete":
		return tea.KeyMsg{Type: tea.KeyDelete}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func changes(cmd tea.Cmd) []ChangeMsg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case ChangeMsg:
		return []ChangeMsg{msg}
	case tea.BatchMsg:
		var out []ChangeMsg
		for _, c := range msg {
			out = append(out, changes(c)...)
		}
		return out
	}
	return nil
}

func press(t *testing.T, m Model, keys ...string) (Model, []ChangeMsg) {
	t.Helper()
	var out []ChangeMsg
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = m.Update(keyMsg(k))
		out = append(out, changes(cmd)...)
	}
	return m, out
}

func plain(s string) string { return xansi.Strip(s) }

func assertInvariant(t *testing.T, m Model) {
	t.Helper()
	if m.selected == nil {
		return
	}
	if got := calendar.ClockOf(*m.selected); got != m.timeOfDay {
		t.Fatalf("selected clock %v != timeOfDay %v", got, m.timeOfDay)
	}
}

func TestScenario_SetDueDate_PickDayQuickTimeThenClear(t *testing.T) {
	m := newTestPicker(WithValue(""))
	if !strings.Contains(plain(m.View()), "Set Due Date") {
		t.Fatalf("expected placeholder, got %q", plain(m.View()))
	}

	// Open, move the cursor from today (19) to 15, pick it.
	m, got := press(t, m, "enter", "left", "left", "left", "left", "enter")
	if len(got) != 1 {
		t.Fatalf("expected one change after picking a day, got %#v", got)
	}
	if got[0].Value != "2026-10-15T10:00:00Z" {
		t.Fatalf("expected day 15 at default 12:00 local, got %q", got[0].Value)
	}
	if got[0].ID != m.ID() {
		t.Fatalf("expected change id %d, got %d", m.ID(), got[0].ID)
	}
	if !m.open {
		t.Fatalf("picking a day must not close the popover")
	}

	// The quick-pick cursor starts on 12:00; 15:00 is one to the right.
	m, got = press(t, m, "tab", "right", "enter")
	if len(got) != 1 {
		t.Fatalf("expected one change after quick time, got %#v", got)
	}
	ts, err := time.Parse(time.RFC3339, got[0].Value)
	if err != nil {
		t.Fatalf("emitted value not RFC 3339: %v", err)
	}
	local := ts.In(testLoc)
	if local.Year() != 2026 || local.Month() != time.October || local.Day() != 15 || local.Hour() != 15 || local.Minute() != 0 {
		t.Fatalf("expected 2026-10-15 15:00 local, got %v", local)
	}
	if m.Label() != "Oct 15, 03:00 PM" {
		t.Fatalf("unexpected label %q", m.Label())
	}
	assertInvariant(t, m)

	// Parent echoes the value back; nothing changes and nothing is emitted.
	m.SetValue(got[0].Value)
	if m.Value() != got[0].Value {
		t.Fatalf("echo changed value: %q", m.Value())
	}

	m, got = press(t, m, "x")
	if len(got) != 1 || got[0].Value != "" {
		t.Fatalf("expected a single empty change on clear, got %#v", got)
	}
	m.SetValue("")
	if !strings.Contains(plain(m.View()), "Set Due Date") {
		t.Fatalf("expected placeholder after clear")
	}
}

func TestSelectDay_UsesCurrentTimeOfDay_RoundTrip(t *testing.T) {
	m := newTestPicker()
	m, _ = press(t, m, "enter")
	m, got := press(t, m, "enter") // today
	if len(got) != 1 {
		t.Fatalf("expected one change, got %d", len(got))
	}
	sel, ok := ParseValue(got[0].Value, testLoc)
	if !ok {
		t.Fatalf("emitted value does not parse: %q", got[0].Value)
	}
	if sel.Day() != 19 || calendar.ClockOf(sel) != calendar.DefaultClock {
		t.Fatalf("expected 19th at 12:00, got %v", sel)
	}

	// Set a time through the hour list: tab to quick, tab to hour, up, select.
	m, got = press(t, m, "tab", "tab", "up", "enter")
	if len(got) != 1 {
		t.Fatalf("expected one change from hour list, got %d", len(got))
	}
	sel, _ = ParseValue(got[0].Value, testLoc)
	if sel.Day() != 19 || sel.Hour() != 11 || sel.Minute() != 0 {
		t.Fatalf("expected 19th at 11:00, got %v", sel)
	}
	assertInvariant(t, m)
}

func TestTimeBeforeDate_RecordedWithoutEmission(t *testing.T) {
	m := newTestPicker()
	m, got := press(t, m, "enter", "tab", "left", "enter") // quick 09:00
	if len(got) != 0 {
		t.Fatalf("time change without a date must not emit, got %#v", got)
	}
	if m.timeOfDay != (calendar.Clock{Hour: 9}) {
		t.Fatalf("expected time recorded as 09:00, got %v", m.timeOfDay)
	}
	if m.Value() != "" {
		t.Fatalf("expected no selection yet")
	}

	m, got = press(t, m, "shift+tab", "enter")
	if len(got) != 1 {
		t.Fatalf("expected emission on date pick, got %d", len(got))
	}
	sel, _ := ParseValue(got[0].Value, testLoc)
	if sel.Hour() != 9 || sel.Minute() != 0 {
		t.Fatalf("expected picked date to carry 09:00, got %v", sel)
	}
}

func TestMinuteListAndRawInput(t *testing.T) {
	m := newTestPicker(WithValue("2026-10-19T10:00:00Z")) // 12:00 local
	m, _ = press(t, m, "enter", "tab", "tab", "tab")
	if m.zone != zoneMinute {
		t.Fatalf("expected minute zone, got %v", m.zone)
	}
	m, got := press(t, m, "down", "down", "down", "enter")
	if len(got) != 1 {
		t.Fatalf("expected one change, got %d", len(got))
	}
	if m.timeOfDay != (calendar.Clock{Hour: 12, Minute: 15}) {
		t.Fatalf("expected 12:15, got %v", m.timeOfDay)
	}

	m, _ = press(t, m, "tab")
	if m.zone != zoneInput {
		t.Fatalf("expected input zone, got %v", m.zone)
	}
	for i := 0; i < 5; i++ {
		m, _ = press(t, m, "backspace")
	}
	m, got = press(t, m, "1", "7", ":", "4")
	if len(got) != 0 {
		t.Fatalf("partial input must not emit, got %#v", got)
	}
	m, got = press(t, m, "2")
	if len(got) != 1 {
		t.Fatalf("expected emission once input is a full time, got %d", len(got))
	}
	sel, _ := ParseValue(got[0].Value, testLoc)
	if sel.Hour() != 17 || sel.Minute() != 42 {
		t.Fatalf("expected 17:42, got %v", sel)
	}
	assertInvariant(t, m)

	// Invalid text + enter is ignored.
	m, _ = press(t, m, "backspace", "backspace")
	m, got = press(t, m, "9", "9", "enter")
	if len(got) != 0 || m.timeOfDay != (calendar.Clock{Hour: 17, Minute: 42}) {
		t.Fatalf("invalid input should be ignored, got %#v time=%v", got, m.timeOfDay)
	}
}

func TestClear_EmitsOnceAndKeepsDisplayedMonth(t *testing.T) {
	m := newTestPicker(WithValue("2026-10-05T07:30:00Z"))
	m, _ = press(t, m, "enter", "]", "]")
	before := m.displayed
	if before != (calendar.Month{Year: 2026, Month: time.December}) {
		t.Fatalf("expected December 2026, got %v", before)
	}
	m, got := press(t, m, "x")
	if len(got) != 1 || got[0].Value != "" {
		t.Fatalf("expected exactly one empty change, got %#v", got)
	}
	if m.displayed != before {
		t.Fatalf("clear changed displayed month: %v", m.displayed)
	}
	m, got = press(t, m, "x")
	if len(got) != 0 {
		t.Fatalf("clearing an empty picker must not emit, got %#v", got)
	}
}

func TestClosedTrigger_ClearKey(t *testing.T) {
	m := newTestPicker(WithValue("2026-10-05T07:30:00Z"))
	m, got := press(t, m, "x")
	if len(got) != 1 || got[0].Value != "" || m.open {
		t.Fatalf("expected clear from closed trigger, got %#v open=%v", got, m.open)
	}
}

func TestSetValue_ExternalAlwaysWins(t *testing.T) {
	m := newTestPicker()
	m, _ = press(t, m, "enter", "enter", "tab", "right", "enter") // 19th 12:00, then 12:00 quick
	m.SetValue("2025-01-02T08:15:00Z")
	want := time.Date(2025, time.January, 2, 10, 15, 0, 0, testLoc)
	if m.selected == nil || !m.selected.Equal(want) {
		t.Fatalf("expected external value to win, got %v", m.selected)
	}
	if m.timeOfDay != (calendar.Clock{Hour: 10, Minute: 15}) {
		t.Fatalf("expected timeOfDay resynced, got %v", m.timeOfDay)
	}
	if m.Label() != FormatLabel(want) {
		t.Fatalf("label %q != %q", m.Label(), FormatLabel(want))
	}
	if m.displayed != (calendar.Month{Year: 2026, Month: time.October}) {
		t.Fatalf("external value must not move the displayed month, got %v", m.displayed)
	}
	assertInvariant(t, m)
}

func TestSetValue_MalformedDegradesToUnset(t *testing.T) {
	for _, v := range []string{"", "   ", "not a date", "2026-13-45", "12:00"} {
		m := newTestPicker(WithValue("2026-10-05T07:30:00Z"))
		m.SetValue(v)
		if m.Value() != "" || m.Label() != DefaultPlaceholder {
			t.Fatalf("SetValue(%q): expected unset, got %q / %q", v, m.Value(), m.Label())
		}
	}
}

func TestSetValue_AcceptsLocalForms(t *testing.T) {
	m := newTestPicker()
	m.SetValue("2026-11-03T18:45")
	if m.Value() != "2026-11-03T16:45:00Z" {
		t.Fatalf("got %q", m.Value())
	}
	m.SetValue("2026-11-03")
	if m.Value() != "2026-11-03T10:00:00Z" {
		t.Fatalf("date-only should default to 12:00 local, got %q", m.Value())
	}
	m.SetValue("2026-11-03T18:45:59.999+02:00")
	if m.Value() != "2026-11-03T16:45:00Z" {
		t.Fatalf("seconds should be truncated, got %q", m.Value())
	}
}

func TestWithValue_ParsedInConfiguredLocation(t *testing.T) {
	m := New(WithValue("2026-11-03T18:45"), WithLocation(testLoc), WithNow(fixedNow))
	if m.Value() != "2026-11-03T16:45:00Z" {
		t.Fatalf("got %q", m.Value())
	}
	if m.timeOfDay != (calendar.Clock{Hour: 18, Minute: 45}) {
		t.Fatalf("timeOfDay=%v", m.timeOfDay)
	}
}

func TestSelectDay_InDSTGapKeepsClockInvariant(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	now := func() time.Time { return time.Date(2026, time.March, 1, 10, 0, 0, 0, ny) }
	m := New(WithNow(now), WithLocation(ny))
	m.Focus()

	if cmd := m.setTime(calendar.Clock{Hour: 2, Minute: 30}); cmd != nil {
		t.Fatalf("time without a date should not emit")
	}
	got := changes(m.selectDay(8))
	if len(got) != 1 {
		t.Fatalf("expected one change, got %v", got)
	}
	assertInvariant(t, m)
	if m.Value() != got[0].Value {
		t.Fatalf("emitted %q, value %q", got[0].Value, m.Value())
	}
	if m.input.Value() != m.timeOfDay.String() {
		t.Fatalf("time input %q not synced to %v", m.input.Value(), m.timeOfDay)
	}

	changes(m.setTime(calendar.Clock{Hour: 2, Minute: 15}))
	assertInvariant(t, m)
}

func TestIdempotentEcho_SameState(t *testing.T) {
	m := newTestPicker()
	m, got := press(t, m, "enter", "right", "enter")
	if len(got) != 1 {
		t.Fatalf("expected a change")
	}
	before := m
	m.SetValue(got[0].Value)
	if m.Value() != before.Value() || m.timeOfDay != before.timeOfDay || m.displayed != before.displayed || m.open != before.open {
		t.Fatalf("echo altered state")
	}
}

func TestMonthNavigation_TwelveStepsAndSelectionUntouched(t *testing.T) {
	m := newTestPicker(WithValue("2026-10-05T07:30:00Z"))
	v := m.Value()
	m, _ = press(t, m, "enter")
	for i := 0; i < 12; i++ {
		m, _ = press(t, m, "]")
	}
	if m.displayed != (calendar.Month{Year: 2027, Month: time.October}) {
		t.Fatalf("expected October 2027, got %v", m.displayed)
	}
	if m.Value() != v {
		t.Fatalf("navigation changed selection")
	}
	m, _ = press(t, m, "[")
	if m.displayed != (calendar.Month{Year: 2027, Month: time.September}) {
		t.Fatalf("expected September 2027, got %v", m.displayed)
	}
}

func TestNavigate_ClampsCursorDay(t *testing.T) {
	m := newTestPicker(WithNow(func() time.Time {
		return time.Date(2026, time.January, 31, 9, 0, 0, 0, testLoc)
	}))
	m, _ = press(t, m, "enter", "]")
	if m.cursorDay != 28 {
		t.Fatalf("expected cursor clamped to 28 in Feb 2026, got %d", m.cursorDay)
	}
}

func TestGridCursor_StaysInMonth(t *testing.T) {
	m := newTestPicker()
	m, _ = press(t, m, "enter")
	m.cursorDay = 2
	m, _ = press(t, m, "up", "left", "left", "left")
	if m.cursorDay != 1 {
		t.Fatalf("expected cursor to stop at 1, got %d", m.cursorDay)
	}
	m.cursorDay = 30
	m, _ = press(t, m, "down", "right", "right")
	if m.cursorDay != 31 {
		t.Fatalf("expected cursor to stop at 31, got %d", m.cursorDay)
	}
}

func TestEsc_ClosesWithoutChangingSelection(t *testing.T) {
	m := newTestPicker(WithValue("2026-10-05T07:30:00Z"))
	v := m.Value()
	m, got := press(t, m, "enter", "esc")
	if m.open || len(got) != 0 || m.Value() != v {
		t.Fatalf("esc should only close: open=%v got=%#v", m.open, got)
	}
}

func TestUnfocused_IgnoresKeys(t *testing.T) {
	m := newTestPicker()
	m.Blur()
	m, got := press(t, m, "enter")
	if m.open || len(got) != 0 {
		t.Fatalf("blurred picker reacted to keys")
	}
	if m.Capturing() {
		t.Fatalf("blurred picker should not capture")
	}
}

func TestWithQuickTimes(t *testing.T) {
	m := newTestPicker(WithQuickTimes([]string{"07:30", "bogus", "22:00"}))
	if len(m.QuickTimes) != 2 || m.QuickTimes[0] != (calendar.Clock{Hour: 7, Minute: 30}) {
		t.Fatalf("unexpected quick times %v", m.QuickTimes)
	}
	m2 := newTestPicker(WithQuickTimes([]string{"bogus"}))
	if len(m2.QuickTimes) != len(DefaultQuickTimes) {
		t.Fatalf("expected defaults when all entries are invalid")
	}
}

func TestNormalizeValue(t *testing.T) {
	cases := []struct {
		in, want string
		ok       bool
	}{
		{"", "", true},
		{"  ", "", true},
		{"2026-10-15T15:00:00+02:00", "2026-10-15T13:00:00Z", true},
		{"2026-10-15T15:00:42Z", "2026-10-15T15:00:00Z", true},
		{"2026-10-15T15:00", "2026-10-15T13:00:00Z", true},
		{"2026-10-15", "2026-10-15T10:00:00Z", true},
		{"next tuesday", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeValue(tc.in, testLoc)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("NormalizeValue(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
