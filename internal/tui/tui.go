package tui

import (
	"context"

	"extras-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the interactive todo list and blocks until the user quits.
func Run(ctx context.Context, st *store.Store, opts Options) error {
	applyThemePreference()
	applyGlyphPreference()
	applyColorProfilePreference(opts.ColorProfile)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(ctx, st, st.Hub().Subscribe(ctx), opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
