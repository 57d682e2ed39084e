// Package datepicker provides a Bubble Tea date/time picker.
//
// The picker is a controlled component: the parent owns the value. User edits
// are reported through a single ChangeMsg, and the parent hands the value back
// with SetValue, which always overrides local state and never emits.
//
// Values are exchanged as RFC 3339 UTC timestamps; "" means unset.
package datepicker

import (
	"strings"
	"sync/atomic"
	"time"

	"extras-cli/internal/calendar"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const DefaultPlaceholder = "Set Due Date"

// LabelLayout renders a set value as e.g. "Oct 15, 03:00 PM".
const LabelLayout = "Jan 2, 03:04 PM"

var DefaultQuickTimes = []calendar.Clock{
	{Hour: 9}, {Hour: 12}, {Hour: 15}, {Hour: 18}, {Hour: 20},
}

// ChangeMsg is the picker's only output. Value is an RFC 3339 UTC timestamp,
// or "" when the selection was cleared.
type ChangeMsg struct {
	ID    int
	Value string
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

type zone int

const (
	zoneTrigger zone = iota
	zoneGrid
	zoneQuick
	zoneHour
	zoneMinute
	zoneInput
)

const minuteStep = 5

type Option func(*Model)

// WithNow overrides the clock used to pick the initially displayed month and
// to highlight today.
func WithNow(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

func WithLocation(loc *time.Location) Option {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithValue sets the initial value. It is parsed after every other option,
// so local forms use the WithLocation zone regardless of option order.
func WithValue(v string) Option {
	return func(m *Model) { m.initial = &v }
}

func WithPlaceholder(s string) Option {
	return func(m *Model) { m.Placeholder = s }
}

// WithQuickTimes replaces the quick-pick buttons. Invalid entries are skipped.
func WithQuickTimes(times []string) Option {
	return func(m *Model) {
		out := make([]calendar.Clock, 0, len(times))
		for _, s := range times {
			if c, err := calendar.ParseClock(s); err == nil {
				out = append(out, c)
			}
		}
		if len(out) > 0 {
			m.QuickTimes = out
		}
	}
}

type Model struct {
	KeyMap      KeyMap
	Styles      Styles
	Placeholder string
	QuickTimes  []calendar.Clock

	id      int
	now     func() time.Time
	loc     *time.Location
	initial *string

	displayed calendar.Month
	selected  *time.Time
	timeOfDay calendar.Clock
	open      bool

	focused   bool
	zone      zone
	cursorDay int
	quickIdx  int
	hourIdx   int
	minuteIdx int
	input     textinput.Model

	// attached gates pointer handling between Mount and Unmount.
	attached bool
	originX  int
	originY  int
}

func New(opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "HH:MM"
	ti.CharLimit = 5
	ti.Width = 5
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		KeyMap:      DefaultKeyMap(),
		Styles:      DefaultStyles(),
		Placeholder: DefaultPlaceholder,
		QuickTimes:  append([]calendar.Clock(nil), DefaultQuickTimes...),
		id:          nextID(),
		now:         time.Now,
		loc:         time.Local,
		timeOfDay:   calendar.DefaultClock,
		input:       ti,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.initial != nil {
		m.SetValue(*m.initial)
		m.initial = nil
	}
	today := m.now().In(m.loc)
	m.displayed = calendar.MonthOf(today)
	m.cursorDay = today.Day()
	m.syncTimeControls()
	return m
}

func (m Model) ID() int { return m.id }

func (m Model) Init() tea.Cmd { return nil }

// Value returns the current selection in exchange format ("" when unset).
func (m Model) Value() string {
	if m.selected == nil {
		return ""
	}
	return m.selected.UTC().Format(time.RFC3339)
}

// SetValue resynchronizes the picker with an externally supplied value. The
// external value always wins over local edits; empty or malformed input
// clears the selection. It never emits a ChangeMsg.
func (m *Model) SetValue(v string) {
	t, ok := ParseValue(v, m.loc)
	if !ok {
		m.selected = nil
		return
	}
	m.selected = &t
	m.timeOfDay = calendar.ClockOf(t)
	m.syncTimeControls()
}

// ParseValue parses an exchanged value into loc, truncated to the minute.
// Accepted forms: RFC 3339, "2006-01-02T15:04" and "2006-01-02".
func ParseValue(v string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}
	var t time.Time
	var err error
	if t, err = time.Parse(time.RFC3339Nano, v); err != nil {
		if t, err = time.ParseInLocation("2006-01-02T15:04", v, loc); err != nil {
			if t, err = time.ParseInLocation("2006-01-02", v, loc); err != nil {
				return time.Time{}, false
			}
			t = calendar.Combine(t, calendar.DefaultClock, loc)
		}
	}
	t = t.In(loc)
	return calendar.Combine(t, calendar.ClockOf(t), loc), true
}

// NormalizeValue converts v to exchange format. Empty input is the unset
// value; ok is false only for non-empty input that does not parse.
func NormalizeValue(v string, loc *time.Location) (out string, ok bool) {
	if strings.TrimSpace(v) == "" {
		return "", true
	}
	t, ok := ParseValue(v, loc)
	if !ok {
		return "", false
	}
	return t.UTC().Format(time.RFC3339), true
}

// Label is the trigger text: the formatted value, or the placeholder.
func (m Model) Label() string {
	if m.selected == nil {
		return m.Placeholder
	}
	return FormatLabel(*m.selected)
}

func FormatLabel(t time.Time) string {
	return t.Format(LabelLayout)
}

func (m *Model) Focus() {
	m.focused = true
	if m.open && m.zone == zoneInput {
		m.input.Focus()
	}
}

func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

func (m Model) Focused() bool { return m.focused }

// Capturing reports whether key input should reach the picker before the
// parent's own bindings (the picker is focused and its popover is up).
func (m Model) Capturing() bool { return m.focused && m.open }

// SetOrigin records where the parent rendered the picker's top-left cell, so
// pointer events can be mapped onto it.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Mount acquires the pointer subscription used for dismissal and clicks.
func (m *Model) Mount() tea.Cmd {
	m.attached = true
	return tea.EnableMouseCellMotion
}

// Unmount releases the pointer subscription and hides the popover. After
// Unmount, pointer events are ignored until the next Mount.
func (m *Model) Unmount() tea.Cmd {
	m.attached = false
	m.close()
	return tea.DisableMouse
}

// emit is the single emission point for the picker's value.
func (m Model) emit() tea.Cmd {
	id, v := m.id, m.Value()
	return func() tea.Msg { return ChangeMsg{ID: id, Value: v} }
}

func (m *Model) toggle() {
	if m.open {
		m.close()
		return
	}
	m.open = true
	m.zone = zoneGrid
	if m.selected != nil && calendar.MonthOf(*m.selected) == m.displayed {
		m.cursorDay = m.selected.Day()
	}
	m.cursorDay = calendar.ClampDay(m.displayed.Year, m.displayed.Month, m.cursorDay)
	m.syncTimeControls()
}

func (m *Model) close() {
	m.open = false
	m.zone = zoneTrigger
	m.input.Blur()
}

func (m *Model) navigate(delta int) {
	m.displayed = m.displayed.Add(delta)
	m.cursorDay = calendar.ClampDay(m.displayed.Year, m.displayed.Month, m.cursorDay)
}

func (m *Model) selectDay(day int) tea.Cmd {
	if day < 1 || day > m.displayed.Days() {
		return nil
	}
	m.setSelected(calendar.Combine(m.displayed.Date(day, m.loc), m.timeOfDay, m.loc))
	m.cursorDay = day
	return m.emit()
}

func (m *Model) setTime(c calendar.Clock) tea.Cmd {
	m.timeOfDay = c.Wrap()
	m.syncTimeControls()
	if m.selected == nil {
		return nil
	}
	m.setSelected(calendar.Combine(*m.selected, m.timeOfDay, m.loc))
	return m.emit()
}

// setSelected stores t and takes its clock as the time of day. The two differ
// from the requested clock only when it falls in a DST gap.
func (m *Model) setSelected(t time.Time) {
	m.selected = &t
	if c := calendar.ClockOf(t); c != m.timeOfDay {
		m.timeOfDay = c
		m.syncTimeControls()
	}
}

func (m *Model) clear() tea.Cmd {
	if m.selected == nil {
		return nil
	}
	m.selected = nil
	return m.emit()
}

func (m *Model) syncTimeControls() {
	m.hourIdx = m.timeOfDay.Hour
	m.minuteIdx = m.timeOfDay.Minute / minuteStep
	for i, q := range m.QuickTimes {
		if q == m.timeOfDay {
			m.quickIdx = i
			break
		}
	}
	if m.zone != zoneInput {
		m.input.SetValue(m.timeOfDay.String())
	}
}

func (m *Model) setZone(z zone) {
	m.zone = z
	if z == zoneInput {
		m.input.SetValue(m.timeOfDay.String())
		m.input.CursorEnd()
		m.input.Focus()
		return
	}
	m.input.Blur()
}

func (m *Model) cycleZone(delta int) {
	z := int(m.zone) + delta
	if z > int(zoneInput) {
		z = int(zoneGrid)
	}
	if z < int(zoneGrid) {
		z = int(zoneInput)
	}
	m.setZone(zone(z))
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		if !m.open {
			return m.updateClosed(msg)
		}
		return m.updateOpen(msg)
	}
	if m.open && m.zone == zoneInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateClosed(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.KeyMap.Open):
		m.toggle()
		return m, nil
	case key.Matches(msg, m.KeyMap.Clear):
		return m, m.clear()
	}
	return m, nil
}

func (m Model) updateOpen(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.KeyMap.Close):
		m.close()
		return m, nil
	case key.Matches(msg, m.KeyMap.NextZone):
		m.cycleZone(1)
		return m, nil
	case key.Matches(msg, m.KeyMap.PrevZone):
		m.cycleZone(-1)
		return m, nil
	}

	if m.zone == zoneInput {
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, m.KeyMap.PrevMonth):
		m.navigate(-1)
		return m, nil
	case key.Matches(msg, m.KeyMap.NextMonth):
		m.navigate(1)
		return m, nil
	case key.Matches(msg, m.KeyMap.Clear):
		return m, m.clear()
	}

	switch m.zone {
	case zoneGrid:
		return m.updateGrid(msg)
	case zoneQuick:
		return m.updateQuick(msg)
	case zoneHour, zoneMinute:
		return m.updateLists(msg)
	}
	return m, nil
}

func (m Model) updateGrid(msg tea.KeyMsg) (Model, tea.Cmd) {
	days := m.displayed.Days()
	move := func(d int) {
		n := m.cursorDay + d
		if n >= 1 && n <= days {
			m.cursorDay = n
		}
	}
	switch {
	case key.Matches(msg, m.KeyMap.Left):
		move(-1)
	case key.Matches(msg, m.KeyMap.Right):
		move(1)
	case key.Matches(msg, m.KeyMap.Up):
		move(-calendar.GridCols)
	case key.Matches(msg, m.KeyMap.Down):
		move(calendar.GridCols)
	case key.Matches(msg, m.KeyMap.Select):
		return m, m.selectDay(m.cursorDay)
	}
	return m, nil
}

func (m Model) updateQuick(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.QuickTimes)
	if n == 0 {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.KeyMap.Left):
		m.quickIdx = (m.quickIdx - 1 + n) % n
	case key.Matches(msg, m.KeyMap.Right):
		m.quickIdx = (m.quickIdx + 1) % n
	case key.Matches(msg, m.KeyMap.Select):
		return m, m.setTime(m.QuickTimes[m.quickIdx])
	}
	return m, nil
}

func (m Model) updateLists(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.KeyMap.Left):
		m.setZone(zoneHour)
	case key.Matches(msg, m.KeyMap.Right):
		m.setZone(zoneMinute)
	case key.Matches(msg, m.KeyMap.Up):
		m.scrollList(-1)
	case key.Matches(msg, m.KeyMap.Down):
		m.scrollList(1)
	case key.Matches(msg, m.KeyMap.Select):
		return m, m.setTime(m.listClock())
	}
	return m, nil
}

func (m *Model) scrollList(delta int) {
	if m.zone == zoneHour {
		m.hourIdx = wrapIndex(m.hourIdx+delta, 24)
		return
	}
	m.minuteIdx = wrapIndex(m.minuteIdx+delta, 60/minuteStep)
}

// listClock is the time the hour/minute lists point at. Only the focused list
// contributes; the other component comes from the current time of day.
func (m Model) listClock() calendar.Clock {
	c := m.timeOfDay
	if m.zone == zoneHour {
		c.Hour = m.hourIdx
	} else {
		c.Minute = m.minuteIdx * minuteStep
	}
	return c
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		c, err := calendar.ParseClock(m.input.Value())
		if err != nil {
			return m, nil
		}
		return m, m.setTime(c)
	}
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	// Mirror a native time input: apply as soon as the text is a complete time.
	raw := strings.TrimSpace(m.input.Value())
	if len(raw) == 5 {
		if c, err := calendar.ParseClock(raw); err == nil && c != m.timeOfDay {
			cmds = append(cmds, m.setTime(c))
		}
	}
	return m, tea.Batch(cmds...)
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
