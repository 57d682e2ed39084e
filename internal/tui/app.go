package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"extras-cli/internal/datepicker"
	"extras-cli/internal/model"
	"extras-cli/internal/store"
	"extras-cli/internal/todos"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeAdd
	modeDue
	modeConfirmDelete
)

const (
	headerHeight = 3 // tabs, stats, gap
	footerHeight = 2 // status, help
	modalTop     = 1
	// Inside a modal box, content starts below the border, the header row
	// and one row of padding, and right of the border and one column of padding.
	modalContentX = 2
	modalContentY = 3
)

type Options struct {
	Location   *time.Location
	QuickTimes []string
	// ColorProfile is "ascii", "16", "256", "truecolor", or empty to detect.
	ColorProfile string
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type (
	todosLoadedMsg struct {
		todos []model.Todo
		err   error
	}
	storeChangedMsg struct{ ok bool }
	todoSavedMsg    struct {
		todo model.Todo
		verb string
		err  error
	}
	todoDeletedMsg struct {
		id  string
		err error
	}
)

type appModel struct {
	ctx     context.Context
	store   *store.Store
	opts    Options
	changes <-chan model.Change

	width  int
	height int

	mode   mode
	filter todos.Filter
	all    []model.Todo
	stats  todos.Stats
	list   list.Model
	keys   keyMap
	help   help.Model

	form         addForm
	due          dueModal
	confirmID    string
	confirmFocus confirmModalFocus
	detail       viewport.Model
	detailID     string

	status string
	err    error
}

func newAppModel(ctx context.Context, st *store.Store, changes <-chan model.Change, opts Options) appModel {
	opts = opts.withDefaults()
	m := appModel{
		ctx:     ctx,
		store:   st,
		opts:    opts,
		changes: changes,
		filter:  todos.FilterAll,
		list:    newTodoList(todoDelegate{now: opts.Now, loc: opts.Location}),
		keys:    defaultKeyMap(),
		help:    help.New(),
		detail:  viewport.New(0, 0),
		width:   80,
		height:  24,
	}
	m.resize()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadTodos(), m.waitForChange())
}

func (m appModel) loadTodos() tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		list, err := st.ListTodos(ctx)
		return todosLoadedMsg{todos: list, err: err}
	}
}

// waitForChange blocks on the store's change feed and reports one change.
func (m appModel) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-ch
		return storeChangedMsg{ok: ok}
	}
}

func (m appModel) createTodo(t model.Todo) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		created, err := st.CreateTodo(ctx, t)
		return todoSavedMsg{todo: created, verb: "added", err: err}
	}
}

func (m appModel) patchTodo(id string, p model.TodoPatch, verb string) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		t, err := st.UpdateTodo(ctx, id, p)
		return todoSavedMsg{todo: t, verb: verb, err: err}
	}
}

func (m appModel) deleteTodo(id string) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return todoDeletedMsg{id: id, err: st.DeleteTodo(ctx, id)}
	}
}

func (m appModel) selected() (model.Todo, bool) {
	it, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

func (m *appModel) setTodos(list []model.Todo) {
	m.all = list
	m.stats = todos.ComputeStats(list, m.opts.Now())
	m.refreshList()
}

// refreshList re-applies the filter, keeping the selection on the same todo.
func (m *appModel) refreshList() {
	keep := ""
	if t, ok := m.selected(); ok {
		keep = t.ID
	}
	filtered := todos.Apply(m.all, m.filter)
	items := make([]list.Item, 0, len(filtered))
	sel := 0
	for i, t := range filtered {
		items = append(items, todoItem{todo: t})
		if t.ID == keep {
			sel = i
		}
	}
	m.list.SetItems(items)
	if len(items) > 0 {
		m.list.Select(sel)
	}
}

func (m *appModel) resize() {
	h := m.height - headerHeight - footerHeight
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width, h)
	m.detail.Width = m.width
	m.detail.Height = h
	m.help.Width = m.width
	m.placePickers()
}

func (m appModel) modalX() int {
	x := (m.width - modalWidth(m.width)) / 2
	if x < 0 {
		x = 0
	}
	return x
}

// placePickers tells the active picker where it is drawn on screen.
func (m *appModel) placePickers() {
	x := m.modalX() + modalContentX
	y := modalTop + modalContentY
	switch m.mode {
	case modeAdd:
		m.form.picker.SetOrigin(x, y+formPickerRow)
	case modeDue:
		m.due.picker.SetOrigin(x, y+dueModalPickerRow)
	}
}

func (m *appModel) openAdd() tea.Cmd {
	m.mode = modeAdd
	m.form = newAddForm(m.opts, m.width)
	m.placePickers()
	return m.form.picker.Mount()
}

func (m *appModel) openDue(t model.Todo) tea.Cmd {
	m.mode = modeDue
	m.due = newDueModal(t, m.opts)
	m.placePickers()
	return m.due.picker.Mount()
}

func (m *appModel) closeModal() tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeAdd:
		cmd = m.form.picker.Unmount()
	case modeDue:
		cmd = m.due.picker.Unmount()
	}
	m.mode = modeList
	return cmd
}

func (m *appModel) openDetail(t model.Todo) {
	m.mode = modeDetail
	m.detailID = t.ID
	m.detail.SetContent(m.renderDetail(t))
	m.detail.GotoTop()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case todosLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.setTodos(msg.todos)
		if m.mode == modeDetail {
			if t, ok := findTodo(m.all, m.detailID); ok {
				m.detail.SetContent(m.renderDetail(t))
			} else {
				m.mode = modeList
			}
		}
		return m, nil

	case storeChangedMsg:
		if !msg.ok {
			return m, nil
		}
		return m, tea.Batch(m.loadTodos(), m.waitForChange())

	case todoSavedMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("%s %q", msg.verb, msg.todo.Title)
		if m.changes == nil {
			return m, m.loadTodos()
		}
		return m, nil

	case todoDeletedMsg:
		if msg.err != nil {
			m.status = "error: " + msg.err.Error()
			return m, nil
		}
		m.status = "deleted " + msg.id
		if m.changes == nil {
			return m, m.loadTodos()
		}
		return m, nil

	case datepicker.ChangeMsg:
		return m.handlePickerChange(msg)

	case editorDoneMsg:
		return m.applyEditorResult(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		switch m.mode {
		case modeAdd:
			m.form.picker, cmd = m.form.picker.Update(msg)
		case modeDue:
			m.due.picker, cmd = m.due.picker.Update(msg)
		}
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeDue:
			return m.updateDue(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modeDetail:
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}

	if m.mode == modeAdd {
		// Cursor blink and other textinput/textarea ticks.
		var c1, c2 tea.Cmd
		m.form.title, c1 = m.form.title.Update(msg)
		m.form.desc, c2 = m.form.desc.Update(msg)
		return m, tea.Batch(c1, c2)
	}
	return m, nil
}

// handlePickerChange accepts changes only from the picker of the open modal.
func (m appModel) handlePickerChange(msg datepicker.ChangeMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.mode == modeAdd && msg.ID == m.form.picker.ID():
		m.form.setDue(msg.Value)
		return m, nil
	case m.mode == modeDue && msg.ID == m.due.picker.ID():
		m.due.picker.SetValue(msg.Value)
		v := msg.Value
		verb := "rescheduled"
		if v == "" {
			verb = "cleared due date of"
		}
		return m, m.patchTodo(m.due.todoID, model.TodoPatch{DueDate: &v}, verb)
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Filter):
		m.filter = m.filter.Next()
		m.refreshList()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m, m.openAdd()
	}

	t, ok := m.selected()
	switch {
	case !ok:
	case key.Matches(msg, m.keys.Toggle):
		p := todos.TogglePatch(t, m.opts.Now())
		verb := "completed"
		if p.Completed != nil && !*p.Completed {
			verb = "reopened"
			if !t.Completed {
				verb = "advanced"
			}
		}
		return m, m.patchTodo(t.ID, p, verb)
	case key.Matches(msg, m.keys.Due):
		return m, m.openDue(t)
	case key.Matches(msg, m.keys.Delete):
		m.mode = modeConfirmDelete
		m.confirmID = t.ID
		m.confirmFocus = confirmFocusCancel
		return m, nil
	case key.Matches(msg, m.keys.Detail):
		m.openDetail(t)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m appModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	capturing := m.form.focus == fieldDue && m.form.picker.Capturing()
	if !capturing {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, m.closeModal()
		case key.Matches(msg, m.keys.Save):
			t, ok := m.form.todo()
			if !ok {
				m.form.err = "title is required"
				m.form.setFocus(fieldTitle)
				return m, nil
			}
			return m, tea.Batch(m.closeModal(), m.createTodo(t))
		}
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg, m.keys)
	return m, cmd
}

func (m appModel) updateDue(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.due.picker.Capturing() && (key.Matches(msg, m.keys.Back) || msg.String() == "q") {
		return m, m.closeModal()
	}
	var cmd tea.Cmd
	m.due.picker, cmd = m.due.picker.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
	case "y":
		m.mode = modeList
		return m, m.deleteTodo(m.confirmID)
	case "enter":
		m.mode = modeList
		if m.confirmFocus == confirmFocusConfirm {
			return m, m.deleteTodo(m.confirmID)
		}
	case "esc", "n", "q":
		m.mode = modeList
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Detail), key.Matches(msg, m.keys.Quit):
		m.mode = modeList
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		t, ok := findTodo(m.all, m.detailID)
		if !ok {
			return m, nil
		}
		cmd, err := m.editDescription(t.ID, t.Description)
		if err != nil {
			m.status = "editor: " + err.Error()
			return m, nil
		}
		return m, cmd
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func findTodo(list []model.Todo, id string) (model.Todo, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

func (m appModel) View() string {
	body := m.list.View()
	if m.mode == modeDetail {
		body = m.detail.View()
	} else if len(m.list.Items()) == 0 {
		body = styleMuted().Render("  Nothing here. Press a to add a todo.")
	}
	bodyH := m.height - headerHeight - footerHeight
	base := strings.Join([]string{
		normalizePane(m.viewHeader(), m.width, headerHeight),
		normalizePane(body, m.width, bodyH),
		normalizePane(m.viewFooter(), m.width, footerHeight),
	}, "\n")

	var modal string
	switch m.mode {
	case modeAdd:
		modal = renderModalBox(m.width, "New todo", m.form.view())
	case modeDue:
		modal = renderModalBox(m.width, "Due date", m.due.view())
	case modeConfirmDelete:
		title := m.confirmID
		if t, ok := findTodo(m.all, m.confirmID); ok {
			title = t.Title
		}
		modal = renderConfirmModal(m.width, "Delete todo", fmt.Sprintf("Delete %q?", title), "Delete", "Cancel", m.confirmFocus)
	default:
		return base
	}
	return overlayAt(base, modal, m.modalX(), modalTop, m.width)
}

func (m appModel) viewHeader() string {
	active := lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(colorAccent).Padding(0, 1)
	inactive := styleMuted().Padding(0, 1)
	tabs := []string{styleTitle().Render("Todos") + " "}
	for _, f := range todos.Filters {
		if f == m.filter {
			tabs = append(tabs, active.Render(f.Title()))
		} else {
			tabs = append(tabs, inactive.Render(f.Title()))
		}
	}
	s := m.stats
	parts := []string{
		fmt.Sprintf("%d total", s.Total),
		fmt.Sprintf("%d done", s.Completed),
		fmt.Sprintf("%d pending", s.Pending),
		fmt.Sprintf("%d high", s.HighPriority),
	}
	stats := styleMuted().Render(strings.Join(parts, glyphSep()))
	if s.Overdue > 0 {
		stats += styleMuted().Render(glyphSep()) + lipgloss.NewStyle().Foreground(colorDanger).Render(fmt.Sprintf("%d overdue", s.Overdue))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + stats
}

func (m appModel) viewFooter() string {
	status := m.status
	if m.err != nil {
		status = "error: " + m.err.Error()
	}
	var helpLine string
	switch m.mode {
	case modeAdd:
		helpLine = m.help.View(formHelp(m.keys))
	case modeDue:
		helpLine = m.help.View(m.due.picker.KeyMap)
	case modeDetail:
		helpLine = m.help.View(detailHelp(m.keys))
	default:
		helpLine = m.help.View(m.keys)
	}
	return styleMuted().Render(status) + "\n" + helpLine
}

func (m appModel) renderDetail(t model.Todo) string {
	var b strings.Builder
	b.WriteString(styleTitle().Render(t.Title))
	b.WriteString("\n\n")

	state := "open"
	if t.Completed {
		state = "done"
	}
	meta := []string{
		"status    " + state,
		"priority  " + priorityStyle(string(t.Priority)).Render(string(t.Priority)),
	}
	if due, ok := t.Due(); ok {
		label := datepicker.FormatLabel(due.In(m.opts.Location))
		if todos.IsOverdue(t, m.opts.Now()) {
			label += lipgloss.NewStyle().Foreground(colorDanger).Render(" (overdue)")
		}
		meta = append(meta, "due       "+label)
	}
	if t.Repeat != "" {
		meta = append(meta, "repeats   "+t.Repeat)
	}
	meta = append(meta, styleMuted().Render("created   "+t.CreatedAt.In(m.opts.Location).Format("2006-01-02 15:04")))
	b.WriteString(strings.Join(meta, "\n"))

	if md := renderMarkdown(t.Description, m.width-2); md != "" {
		b.WriteString("\n")
		b.WriteString(styleMuted().Render(strings.Repeat(glyphHRule(), max(0, m.width-2))))
		b.WriteString("\n")
		b.WriteString(md)
	}
	return b.String()
}
