package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"extras-cli/internal/datepicker"
	"extras-cli/internal/model"
	"extras-cli/internal/todos"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type todoItem struct {
	todo model.Todo
}

func (i todoItem) FilterValue() string { return i.todo.Title }
func (i todoItem) Title() string       { return i.todo.Title }

// todoDelegate renders one todo per line: checkbox, title, then priority and
// due date right-aligned.
type todoDelegate struct {
	now func() time.Time
	loc *time.Location
}

func (d todoDelegate) Height() int                             { return 1 }
func (d todoDelegate) Spacing() int                            { return 0 }
func (d todoDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d todoDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}
	width := m.Width()
	if width < 8 {
		return
	}
	t := it.todo
	selected := index == m.Index()

	box := "[ ]"
	titleStyle := lipgloss.NewStyle().Foreground(colorSurfaceFg)
	if t.Completed {
		box = lipgloss.NewStyle().Foreground(colorDone).Render("[x]")
		titleStyle = styleMuted().Strikethrough(true)
	}

	meta := priorityStyle(string(t.Priority)).Render(string(t.Priority))
	if due, ok := t.Due(); ok {
		label := datepicker.FormatLabel(due.In(d.loc))
		st := styleMuted()
		if todos.IsOverdue(t, d.now()) {
			st = lipgloss.NewStyle().Foreground(colorDanger)
			label = "overdue " + label
		}
		meta += "  " + st.Render(label)
	}
	if t.Repeat != "" {
		meta += styleMuted().Render(" " + glyphRepeat())
	}

	left := box + " " + titleStyle.Render(t.Title)
	metaW := xansi.StringWidth(meta)
	room := width - metaW - 2
	if room < 4 {
		meta, metaW, room = "", 0, width
	}
	if xansi.StringWidth(left) > room {
		left = xansi.Truncate(left, room, glyphEllipsis())
	}
	gap := width - xansi.StringWidth(left) - metaW
	if gap < 0 {
		gap = 0
	}
	line := left + strings.Repeat(" ", gap) + meta

	if selected {
		line = lipgloss.NewStyle().
			Background(colorSelectedBg).
			Foreground(colorSelectedFg).
			Bold(true).
			Render(xansi.Strip(line))
	}
	fmt.Fprint(w, line)
}

func newTodoList(d todoDelegate) list.Model {
	l := list.New(nil, d, 0, 0)
	l.Title = "Todos"
	// The header and footer are drawn by the app.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.KeyMap.CursorUp.SetKeys(append(append([]string{}, l.KeyMap.CursorUp.Keys()...), "ctrl+p")...)
	l.KeyMap.CursorDown.SetKeys(append(append([]string{}, l.KeyMap.CursorDown.Keys()...), "ctrl+n")...)
	return l
}
