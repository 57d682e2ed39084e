package tui

import (
	"strings"

	"extras-cli/internal/datepicker"
	"extras-cli/internal/model"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formField int

const (
	fieldTitle formField = iota
	fieldDescription
	fieldPriority
	fieldDue
	fieldCount
)

const (
	descriptionHeight = 3
	// formPickerRow is the content row of the due picker trigger:
	// label, input, gap, label, textarea, gap, priority, gap, label.
	formPickerRow = 6 + descriptionHeight + 2
)

var priorities = []model.Priority{model.PriorityLow, model.PriorityMedium, model.PriorityHigh}

// addForm collects a new todo. The due picker is controlled: its ChangeMsg
// values are kept in due and handed back through SetValue.
type addForm struct {
	focus    formField
	title    textinput.Model
	desc     textarea.Model
	priority model.Priority
	picker   datepicker.Model
	due      string
	err      string
}

func newAddForm(opts Options, width int) addForm {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.Prompt = ""
	ti.CharLimit = 200
	ti.Width = modalBodyWidth(width) - 1

	ta := textarea.New()
	ta.Placeholder = "Notes (markdown)"
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(descriptionHeight)
	ta.SetWidth(modalBodyWidth(width))

	f := addForm{
		title:    ti,
		desc:     ta,
		priority: model.PriorityMedium,
		picker:   newPicker(opts, ""),
	}
	f.setFocus(fieldTitle)
	return f
}

func (f *addForm) setFocus(field formField) {
	f.focus = field
	f.title.Blur()
	f.desc.Blur()
	f.picker.Blur()
	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.desc.Focus()
	case fieldDue:
		f.picker.Focus()
	}
}

func (f *addForm) cycle(delta int) {
	n := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	f.setFocus(formField(n))
}

func (f *addForm) cyclePriority(delta int) {
	idx := 1
	for i, p := range priorities {
		if p == f.priority {
			idx = i
		}
	}
	idx = (idx + delta + len(priorities)) % len(priorities)
	f.priority = priorities[idx]
}

// setDue stores a picker change and echoes it back.
func (f *addForm) setDue(v string) {
	f.due = v
	f.picker.SetValue(v)
}

func (f addForm) todo() (model.Todo, bool) {
	title := strings.TrimSpace(f.title.Value())
	if title == "" {
		return model.Todo{}, false
	}
	return model.Todo{
		Title:       title,
		Description: strings.TrimSpace(f.desc.Value()),
		Priority:    f.priority,
		DueDate:     f.due,
	}, true
}

// update handles keys other than save and cancel.
func (f addForm) update(msg tea.KeyMsg, keys keyMap) (addForm, tea.Cmd) {
	if f.focus == fieldDue && f.picker.Capturing() {
		var cmd tea.Cmd
		f.picker, cmd = f.picker.Update(msg)
		return f, cmd
	}
	switch {
	case key.Matches(msg, keys.NextFld):
		f.cycle(1)
		return f, nil
	case key.Matches(msg, keys.PrevFld):
		f.cycle(-1)
		return f, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		if msg.Type == tea.KeyEnter {
			f.cycle(1)
			return f, nil
		}
		f.title, cmd = f.title.Update(msg)
		f.err = ""
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldPriority:
		switch msg.String() {
		case "left", "h":
			f.cyclePriority(-1)
		case "right", "l", " ":
			f.cyclePriority(1)
		}
	case fieldDue:
		f.picker, cmd = f.picker.Update(msg)
	}
	return f, cmd
}

func (f addForm) label(s string, field formField) string {
	st := styleMuted()
	if f.focus == field {
		st = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	}
	return st.Render(s)
}

func (f addForm) view() string {
	prio := priorityStyle(string(f.priority)).Render(string(f.priority))
	if f.focus == fieldPriority {
		prio = "‹ " + prio + " ›"
	}
	lines := []string{
		f.label("Title", fieldTitle),
		f.title.View(),
		"",
		f.label("Description", fieldDescription),
		f.desc.View(),
		"",
		f.label("Priority", fieldPriority) + "  " + prio,
		"",
		f.label("Due", fieldDue),
		f.picker.View(),
	}
	if f.err != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorDanger).Render(f.err))
	}
	return strings.Join(lines, "\n")
}
