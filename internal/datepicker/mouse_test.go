package datepicker

import (
	"strings"
	"testing"

	"extras-cli/internal/calendar"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	testOriginX = 5
	testOriginY = 3
)

func click(t *testing.T, m Model, x, y int) (Model, []ChangeMsg) {
	t.Helper()
	m, cmd := m.Update(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	return m, changes(cmd)
}

// contentCell maps popover content coordinates to screen coordinates.
func contentCell(cx, cy int) (int, int) {
	return testOriginX + contentOffsetX + cx, testOriginY + contentOffsetY + cy
}

func mountedPicker(opts ...Option) Model {
	m := newTestPicker(opts...)
	m.SetOrigin(testOriginX, testOriginY)
	_ = m.Mount()
	return m
}

func TestOutsideClick_ClosesWithoutAlteringSelection(t *testing.T) {
	m := mountedPicker(WithValue("2026-10-05T07:30:00Z"))
	v := m.Value()
	m, _ = press(t, m, "enter")
	if !m.open {
		t.Fatalf("expected open")
	}
	m, got := click(t, m, 0, 0)
	if m.open {
		t.Fatalf("outside click should close the popover")
	}
	if len(got) != 0 || m.Value() != v {
		t.Fatalf("outside click must not touch the selection: %#v %q", got, m.Value())
	}
}

func TestOutsideClick_BelowPopoverCloses(t *testing.T) {
	m := mountedPicker()
	m, _ = press(t, m, "enter")
	w, h := m.popoverSize()
	if w == 0 || h == 0 {
		t.Fatalf("expected a rendered popover")
	}
	m, _ = click(t, m, testOriginX, testOriginY+1+h)
	if m.open {
		t.Fatalf("click just below the popover should close it")
	}
}

func TestInsideClick_KeepsPopoverOpen(t *testing.T) {
	m := mountedPicker()
	m, _ = press(t, m, "enter")
	// Blank padding area of the header row is inside the popover.
	x, y := contentCell(5, rowWeekdays)
	m, got := click(t, m, x, y)
	if !m.open || len(got) != 0 {
		t.Fatalf("inside click should not close or emit")
	}
}

func TestUnmounted_IgnoresPointer(t *testing.T) {
	m := newTestPicker()
	m.SetOrigin(testOriginX, testOriginY)
	m, _ = press(t, m, "enter")
	m, _ = click(t, m, 0, 0)
	if !m.open {
		t.Fatalf("pointer events before Mount should be ignored")
	}

	m = mountedPicker()
	m, _ = press(t, m, "enter")
	cmd := m.Unmount()
	if cmd == nil {
		t.Fatalf("expected Unmount to release the pointer subscription")
	}
	if m.open {
		t.Fatalf("Unmount should hide the popover")
	}
	m.toggle()
	m, _ = click(t, m, 0, 0)
	if !m.open {
		t.Fatalf("pointer events after Unmount should be ignored")
	}
}

func TestClickTrigger_Toggles(t *testing.T) {
	m := mountedPicker()
	m, _ = click(t, m, testOriginX+1, testOriginY)
	if !m.open {
		t.Fatalf("trigger click should open")
	}
	m, _ = click(t, m, testOriginX+1, testOriginY)
	if m.open {
		t.Fatalf("second trigger click should close")
	}
}

func TestClickDay_SelectsAndStaysOpen(t *testing.T) {
	m := mountedPicker()
	m, _ = press(t, m, "enter")
	// Oct 2026: 4 leading blanks, so the 15th is row 2, column 4.
	x, y := contentCell(4*cellWidth, rowGrid+2)
	m, got := click(t, m, x, y)
	if len(got) != 1 || got[0].Value != "2026-10-15T10:00:00Z" {
		t.Fatalf("expected day 15 selected, got %#v", got)
	}
	if !m.open {
		t.Fatalf("day click must not close the popover")
	}

	// Gap column between cells and leading blanks select nothing.
	x, y = contentCell(4*cellWidth+2, rowGrid+2)
	if _, got = click(t, m, x, y); len(got) != 0 {
		t.Fatalf("gap click should not select, got %#v", got)
	}
	x, y = contentCell(0, rowGrid)
	if _, got = click(t, m, x, y); len(got) != 0 {
		t.Fatalf("blank cell click should not select, got %#v", got)
	}
}

func TestClickQuickTimeAndLists(t *testing.T) {
	m := mountedPicker(WithValue("2026-10-15T10:00:00Z"))
	m, _ = press(t, m, "enter")

	x, y := contentCell(2*quickWidth, rowQuick)
	m, got := click(t, m, x, y)
	if len(got) != 1 || m.timeOfDay != (calendar.Clock{Hour: 15}) {
		t.Fatalf("expected 15:00 from quick pick, got %#v %v", got, m.timeOfDay)
	}

	// Top row of the hour list shows the current hour minus two.
	x, y = contentCell(colHour+1, rowList)
	m, got = click(t, m, x, y)
	if len(got) != 1 || m.timeOfDay != (calendar.Clock{Hour: 13}) {
		t.Fatalf("expected 13:00 from hour list, got %#v %v", got, m.timeOfDay)
	}

	x, y = contentCell(colMinute+1, rowList+4)
	m, got = click(t, m, x, y)
	if len(got) != 1 || m.timeOfDay != (calendar.Clock{Hour: 13, Minute: 10}) {
		t.Fatalf("expected 13:10 from minute list, got %#v %v", got, m.timeOfDay)
	}
	assertInvariant(t, m)

	x, y = contentCell(colInput+2, rowList)
	m, _ = click(t, m, x, y)
	if m.zone != zoneInput {
		t.Fatalf("expected input zone after clicking the input")
	}
}

func TestClickArrows_Navigate(t *testing.T) {
	m := mountedPicker()
	m, _ = press(t, m, "enter")
	x, y := contentCell(contentWidth-1, rowHeader)
	m, _ = click(t, m, x, y)
	if m.displayed != (calendar.Month{Year: 2026, Month: 11}) {
		t.Fatalf("expected November, got %v", m.displayed)
	}
	x, y = contentCell(0, rowHeader)
	m, _ = click(t, m, x, y)
	m, _ = click(t, m, x, y)
	if m.displayed != (calendar.Month{Year: 2026, Month: 9}) {
		t.Fatalf("expected September, got %v", m.displayed)
	}
}

func TestClickClearGlyph(t *testing.T) {
	m := mountedPicker(WithValue("2026-10-15T10:00:00Z"))
	line := plain(m.View())
	col := strings.Index(line, clearGlyph)
	if col < 0 {
		t.Fatalf("expected clear glyph in %q", line)
	}
	runeCol := len([]rune(line[:col]))
	if runeCol != m.clearCol() {
		t.Fatalf("clear glyph rendered at %d, hit-test expects %d", runeCol, m.clearCol())
	}
	m, got := click(t, m, testOriginX+runeCol, testOriginY)
	if len(got) != 1 || got[0].Value != "" {
		t.Fatalf("expected clear emission, got %#v", got)
	}
	if m.open {
		t.Fatalf("clear should not open the popover")
	}
}

func TestWheelAndRelease_Ignored(t *testing.T) {
	m := mountedPicker()
	m, _ = press(t, m, "enter")
	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if !m.open {
		t.Fatalf("wheel/release events should not dismiss")
	}
}
