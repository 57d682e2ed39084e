package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"

	"extras-cli/internal/ical"
	"extras-cli/internal/model"
	"extras-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTodosExportCmd(app *App) *cobra.Command {
	var out string
	var completed bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export todos with a due date as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			list, err := st.ListTodos(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			var buf bytes.Buffer
			if err := ical.Export(&buf, list, ical.ExportOptions{IncludeCompleted: completed, Now: app.Now}); err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(out) == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out, "bytes": buf.Len()}})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().BoolVar(&completed, "completed", false, "Include completed todos")
	return cmd
}

type importResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	IDs     []string `json:"ids"`
}

// newTodosImportCmd reads VEVENTs. Events previously exported from an existing
// todo update it in place; everything else becomes a new todo.
func newTodosImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.ics|->",
		Short: "Import todos from an iCalendar file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return writeErr(cmd, err)
				}
				defer f.Close()
				r = f
			}
			events, skipped, err := ical.Import(r)
			if err != nil {
				return writeErr(cmd, err)
			}

			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			res := importResult{Skipped: skipped, IDs: []string{}}
			for _, ev := range events {
				t := ev.Todo
				if ev.SourceID != "" {
					updated, err := st.UpdateTodo(cmd.Context(), ev.SourceID, model.TodoPatch{
						Title:       &t.Title,
						Description: &t.Description,
						Completed:   &t.Completed,
						Priority:    &t.Priority,
						DueDate:     &t.DueDate,
						Repeat:      &t.Repeat,
					})
					if err == nil {
						res.Updated++
						res.IDs = append(res.IDs, updated.ID)
						continue
					}
					if !errors.Is(err, store.ErrNotFound) {
						return writeErr(cmd, err)
					}
				}
				created, err := st.CreateTodo(cmd.Context(), t)
				if err != nil {
					res.Skipped++
					continue
				}
				if t.Completed {
					done := true
					if created, err = st.UpdateTodo(cmd.Context(), created.ID, model.TodoPatch{Completed: &done}); err != nil {
						return writeErr(cmd, err)
					}
				}
				res.Created++
				res.IDs = append(res.IDs, created.ID)
			}
			return writeOut(cmd, app, map[string]any{"data": res})
		},
	}
}
