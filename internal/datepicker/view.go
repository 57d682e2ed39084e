package datepicker

import (
	"fmt"
	"strings"

	"extras-cli/internal/calendar"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// Popover layout, in content coordinates (inside border and padding).
const (
	contentWidth = 29
	cellWidth    = 3 // two digits plus a gap

	rowHeader   = 0
	rowWeekdays = 1
	rowGrid     = 2
	rowTimeHead = rowGrid + calendar.GridRows + 1
	rowQuick    = rowTimeHead + 1
	rowListHead = rowQuick + 2
	rowList     = rowListHead + 1
	listRows    = 5
	rowHint     = rowList + listRows + 1

	quickWidth = 6 // "HH:MM" plus a gap
	colHour    = 0
	colMinute  = 6
	colInput   = 12
	listWidth  = 4

	// Content starts one row below the trigger, inside a one-cell border and
	// one column of padding.
	contentOffsetX = 2
	contentOffsetY = 2
)

var weekdayNames = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

const clearGlyph = "×"

func (m Model) View() string {
	trigger := m.viewTrigger()
	if !m.open {
		return trigger
	}
	return lipgloss.JoinVertical(lipgloss.Left, trigger, m.viewPopover())
}

func (m Model) triggerText() string {
	txt := "▦ " + m.Label()
	if m.selected != nil {
		txt += " " + clearGlyph
	}
	return txt
}

func (m Model) viewTrigger() string {
	st := m.Styles.Trigger
	if m.selected != nil {
		st = m.Styles.TriggerSet
	}
	if m.focused && !m.open {
		st = st.Inherit(m.Styles.TriggerFocus)
	}
	return st.Render(m.triggerText())
}

// triggerWidth is the rendered width of the trigger button (text + padding).
func (m Model) triggerWidth() int {
	return xansi.StringWidth(m.triggerText()) + 2
}

// clearCol is the trigger column holding the clear glyph, or -1.
func (m Model) clearCol() int {
	if m.selected == nil {
		return -1
	}
	return m.triggerWidth() - 2
}

func padRight(s string, w int) string {
	n := lipgloss.Width(s)
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}

func (m Model) viewPopover() string {
	lines := make([]string, 0, rowHint+1)
	lines = append(lines, m.viewHeader())
	lines = append(lines, m.Styles.Weekday.Render(strings.Join(weekdayNames, " ")))
	lines = append(lines, m.viewGrid()...)
	lines = append(lines, "")
	lines = append(lines, m.Styles.Label.Render("Time")+"  "+m.Styles.Header.Render(m.timeOfDay.String()))
	lines = append(lines, m.viewQuick())
	lines = append(lines, "")
	lines = append(lines, m.Styles.Label.Render(padRight("Hr", colMinute)+padRight("Min", colInput-colMinute)+"Type"))
	lines = append(lines, m.viewLists()...)
	lines = append(lines, "")
	lines = append(lines, m.Styles.Muted.Render("tab · [ ] month · x clear"))

	for i := range lines {
		lines[i] = padRight(lines[i], contentWidth)
	}
	return m.Styles.Popover.Render(strings.Join(lines, "\n"))
}

func (m Model) viewHeader() string {
	title := m.displayed.String()
	mid := lipgloss.PlaceHorizontal(contentWidth-2, lipgloss.Center, m.Styles.Header.Render(title))
	return m.Styles.Arrow.Render("‹") + mid + m.Styles.Arrow.Render("›")
}

func (m Model) viewGrid() []string {
	g := calendar.NewGrid(m.displayed)
	today := m.now().In(m.loc)
	rows := make([]string, 0, calendar.GridRows)
	for r := 0; r < calendar.GridRows; r++ {
		cells := make([]string, 0, calendar.GridCols)
		for c := 0; c < calendar.GridCols; c++ {
			cell := g.At(r, c)
			if cell.Blank() {
				cells = append(cells, "  ")
				continue
			}
			txt := fmt.Sprintf("%2d", cell.Day)
			date := m.displayed.Date(cell.Day, m.loc)
			st := m.Styles.Day
			switch {
			case m.selected != nil && calendar.SameDay(*m.selected, date):
				st = m.Styles.Selected
			case calendar.SameDay(today, date):
				st = st.Inherit(m.Styles.Today)
			}
			if m.focused && m.zone == zoneGrid && cell.Day == m.cursorDay {
				st = m.Styles.Cursor.Inherit(st)
			}
			cells = append(cells, st.Render(txt))
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return rows
}

func (m Model) viewQuick() string {
	parts := make([]string, 0, len(m.QuickTimes))
	for i, q := range m.QuickTimes {
		st := m.Styles.Quick
		if q == m.timeOfDay {
			st = m.Styles.QuickActive
		}
		if m.focused && m.zone == zoneQuick && i == m.quickIdx {
			st = m.Styles.Cursor.Inherit(st)
		}
		parts = append(parts, st.Render(q.String()))
	}
	return strings.Join(parts, " ")
}

// listValue returns the hour (or minute) shown at visual row r of a list
// centered on idx.
func listValue(idx, r, n, step int) int {
	return wrapIndex(idx+r-listRows/2, n) * step
}

func (m Model) viewLists() []string {
	rows := make([]string, 0, listRows)
	for r := 0; r < listRows; r++ {
		center := r == listRows/2
		h := listValue(m.hourIdx, r, 24, 1)
		mi := listValue(m.minuteIdx, r, 60/minuteStep, minuteStep)
		hs, ms := m.Styles.ListItem, m.Styles.ListItem
		if center {
			hs, ms = m.Styles.ListCurrent, m.Styles.ListCurrent
			if m.focused && m.zone == zoneHour {
				hs = m.Styles.Cursor.Inherit(hs)
			}
			if m.focused && m.zone == zoneMinute {
				ms = m.Styles.Cursor.Inherit(ms)
			}
		}
		line := padRight(hs.Render(fmt.Sprintf(" %02d ", h)), colMinute) +
			padRight(ms.Render(fmt.Sprintf(" %02d ", mi)), colInput-colMinute)
		if r == 0 {
			in := m.input.View()
			if m.focused && m.zone == zoneInput {
				in = "> " + in
			} else {
				in = "  " + in
			}
			line += in
		}
		rows = append(rows, line)
	}
	return rows
}
