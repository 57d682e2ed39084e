package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"extras-cli/internal/format"
	"extras-cli/internal/store"
	"extras-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string

	// Now overrides the clock (tests).
	Now func() time.Time
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "extras",
		Short:        "Todos, due dates and expenses (CLI + TUI + HTTP API)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  extras

  # Scriptable commands
  extras todos add --title "Pay rent" --due 2026-10-31T09:00 --priority high
  extras todos list --filter active

  # Direct todo lookup (shortcut for: extras todos show <todo-id>)
  extras todo-3f9a1c2e

  # Serve the HTTP API and reminders
  extras serve
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if _, err := format.Normalize(app.Format); err != nil {
			return err
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("EXTRAS_DIR", ""), "Path to the data dir (default: config dataDir, then ~/.extras/data)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("EXTRAS_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newTodosCmd(app))
	cmd.AddCommand(newExpensesCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newAuthCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(ctx context.Context, app *App) error {
	st, cfg, err := openStore(ctx, app)
	if err != nil {
		return err
	}
	defer st.Close()
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	return tui.Run(ctx, st, tui.Options{
		Location:     loc,
		QuickTimes:   cfg.QuickTimes,
		ColorProfile: cfg.ColorProfile(),
		Now:          app.Now,
	})
}

// openStore resolves the data dir (--dir, EXTRAS_DIR, config) and opens it.
func openStore(ctx context.Context, app *App) (*store.Store, *store.Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	dir := strings.TrimSpace(app.Dir)
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, nil, err
		}
		dir = d
	}
	st, err := store.Open(ctx, dir)
	if err != nil {
		return nil, nil, err
	}
	if c := strings.TrimSpace(cfg.Currency); c != "" {
		st.DefaultCurrency = c
	}
	if app.Now != nil {
		st.Now = app.Now
	}
	return st, cfg, nil
}

// location is the configured display zone used to read date-only input.
func location() (*time.Location, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.Location()
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
