package tui

import (
	"extras-cli/internal/datepicker"
	"extras-cli/internal/model"

	tea "github.com/charmbracelet/bubbletea"
)

// dueModalPickerRow is the content row of the picker trigger: the todo title
// and a gap sit above it.
const dueModalPickerRow = 2

type dueModal struct {
	todoID string
	title  string
	picker datepicker.Model
}

func newPicker(opts Options, value string) datepicker.Model {
	p := datepicker.New(
		datepicker.WithLocation(opts.Location),
		datepicker.WithNow(opts.Now),
		datepicker.WithQuickTimes(opts.QuickTimes),
		datepicker.WithValue(value),
	)
	return p
}

// newDueModal opens with the picker focused and its popover up.
func newDueModal(t model.Todo, opts Options) dueModal {
	p := newPicker(opts, t.DueDate)
	p.Focus()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return dueModal{todoID: t.ID, title: t.Title, picker: p}
}

func (d dueModal) view() string {
	return styleMuted().Render(d.title) + "\n\n" + d.picker.View()
}
