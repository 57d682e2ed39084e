package cli

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"extras-cli/internal/auth"
	applog "extras-cli/internal/log"
	"extras-cli/internal/reminder"
	"extras-cli/internal/web"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var noReminders bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API (and due-date reminders) until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, src, err := auth.LoadToken()
			if err != nil {
				return writeErr(cmd, err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, cfg, err := openStore(ctx, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			loc, err := cfg.Location()
			if err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(addr) == "" {
				addr = cfg.ServerAddr()
			}

			srv, err := web.NewServer(web.ServerConfig{
				Addr:     addr,
				Store:    st,
				Token:    tok,
				Location: loc,
				Now:      app.Now,
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			if !noReminders {
				r, err := reminder.New(st, reminder.Options{
					Spec:   cfg.ReminderCron(),
					Window: cfg.ReminderWindow(),
					Now:    app.Now,
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				if err := r.Start(ctx); err != nil {
					return writeErr(cmd, err)
				}
				defer r.Stop()
			}

			applog.Info("serving", "addr", srv.Addr(), "token", auth.Mask(tok), "tokenSource", string(src), "reminders", !noReminders)
			if err := srv.Run(ctx); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8787)")
	cmd.Flags().BoolVar(&noReminders, "no-reminders", false, "Do not schedule due-date reminders")
	return cmd
}
