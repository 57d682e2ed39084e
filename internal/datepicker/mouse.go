package datepicker

import (
	"extras-cli/internal/calendar"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitTrigger
	hitClear
	hitPrevMonth
	hitNextMonth
	hitDay
	hitQuick
	hitHour
	hitMinute
	hitInput
	hitPopover
)

type hit struct {
	kind  hitKind
	value int
}

func isWheel(b tea.MouseButton) bool {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

func (m Model) popoverSize() (w, h int) {
	if !m.open {
		return 0, 0
	}
	v := m.viewPopover()
	return lipgloss.Width(v), lipgloss.Height(v)
}

// contains reports whether the component-relative cell (x, y) is inside the
// rendered trigger or popover.
func (m Model) contains(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	if y == 0 {
		return x < m.triggerWidth()
	}
	w, h := m.popoverSize()
	return x < w && y < 1+h
}

func (m Model) hitTest(x, y int) hit {
	if !m.contains(x, y) {
		return hit{kind: hitNone}
	}
	if y == 0 {
		if x == m.clearCol() {
			return hit{kind: hitClear}
		}
		return hit{kind: hitTrigger}
	}

	cx, cy := x-contentOffsetX, y-contentOffsetY
	if cx < 0 || cx >= contentWidth {
		return hit{kind: hitPopover}
	}
	switch {
	case cy == rowHeader:
		if cx == 0 {
			return hit{kind: hitPrevMonth}
		}
		if cx == contentWidth-1 {
			return hit{kind: hitNextMonth}
		}
	case cy >= rowGrid && cy < rowGrid+calendar.GridRows:
		if cx%cellWidth == cellWidth-1 || cx >= calendar.GridCols*cellWidth {
			break
		}
		g := calendar.NewGrid(m.displayed)
		if c := g.At(cy-rowGrid, cx/cellWidth); !c.Blank() {
			return hit{kind: hitDay, value: c.Day}
		}
	case cy == rowQuick:
		i := cx / quickWidth
		if cx%quickWidth != quickWidth-1 && i < len(m.QuickTimes) {
			return hit{kind: hitQuick, value: i}
		}
	case cy >= rowList && cy < rowList+listRows:
		r := cy - rowList
		switch {
		case cx >= colHour && cx < colHour+listWidth:
			return hit{kind: hitHour, value: listValue(m.hourIdx, r, 24, 1)}
		case cx >= colMinute && cx < colMinute+listWidth:
			return hit{kind: hitMinute, value: listValue(m.minuteIdx, r, 60/minuteStep, minuteStep)}
		case cx >= colInput && r == 0:
			return hit{kind: hitInput}
		}
	}
	return hit{kind: hitPopover}
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.attached {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || isWheel(msg.Button) {
		return m, nil
	}

	h := m.hitTest(msg.X-m.originX, msg.Y-m.originY)
	if h.kind == hitNone {
		// Press outside the component dismisses the popover; the selection is untouched.
		if m.open {
			m.close()
		}
		return m, nil
	}

	switch h.kind {
	case hitTrigger:
		m.toggle()
	case hitClear:
		return m, m.clear()
	case hitPrevMonth:
		m.navigate(-1)
	case hitNextMonth:
		m.navigate(1)
	case hitDay:
		m.setZone(zoneGrid)
		return m, m.selectDay(h.value)
	case hitQuick:
		m.setZone(zoneQuick)
		m.quickIdx = h.value
		return m, m.setTime(m.QuickTimes[h.value])
	case hitHour:
		m.setZone(zoneHour)
		c := m.timeOfDay
		c.Hour = h.value
		return m, m.setTime(c)
	case hitMinute:
		m.setZone(zoneMinute)
		c := m.timeOfDay
		c.Minute = h.value
		return m, m.setTime(c)
	case hitInput:
		m.setZone(zoneInput)
	}
	return m, nil
}
