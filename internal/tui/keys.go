package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add     key.Binding
	Due     key.Binding
	Toggle  key.Binding
	Delete  key.Binding
	Detail  key.Binding
	Edit    key.Binding
	Filter  key.Binding
	Up      key.Binding
	Down    key.Binding
	Back    key.Binding
	Save    key.Binding
	Quit    key.Binding
	NextFld key.Binding
	PrevFld key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Due:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "due date")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "done")),
		Delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Detail:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit description")),
		Filter:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		NextFld: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFld: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Due, k.Toggle, k.Delete, k.Detail, k.Filter, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Down, k.Back}}
}

// formHelp is shown in the add form footer.
type formHelp keyMap

func (k formHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFld, k.PrevFld, k.Save, k.Back}
}

func (k formHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// detailHelp is shown under the detail pane.
type detailHelp keyMap

func (k detailHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Edit, k.Back}
}

func (k detailHelp) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
