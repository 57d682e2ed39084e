package cli

import (
	"fmt"
	"strings"
	"time"

	"extras-cli/internal/datepicker"
	"extras-cli/internal/model"
	"extras-cli/internal/todos"

	"github.com/spf13/cobra"
)

func newTodosCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "todos",
		Aliases: []string{"todo"},
		Short:   "Todo commands",
	}
	cmd.AddCommand(newTodosListCmd(app))
	cmd.AddCommand(newTodosAddCmd(app))
	cmd.AddCommand(newTodosShowCmd(app))
	cmd.AddCommand(newTodosDoneCmd(app))
	cmd.AddCommand(newTodosReopenCmd(app))
	cmd.AddCommand(newTodosEditCmd(app))
	cmd.AddCommand(newTodosRmCmd(app))
	cmd.AddCommand(newTodosStatsCmd(app))
	cmd.AddCommand(newTodosExportCmd(app))
	cmd.AddCommand(newTodosImportCmd(app))
	return cmd
}

func newTodosListCmd(app *App) *cobra.Command {
	var filter string
	var overdue bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := todos.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()

			all, err := st.ListTodos(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			out := todos.Apply(all, f)
			if overdue {
				out = todos.Overdue(out, app.now())
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{
					"total":    len(all),
					"returned": len(out),
					"filter":   f,
				},
				"_hints": []string{
					"extras todos show <todo-id>",
					"extras todos done <todo-id>",
				},
			})
		},
	}
	cmd.Flags().StringVar(&filter, "filter", "all", "all|active|completed")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only open todos past their due date")
	return cmd
}

// todoFlags are the editable fields shared by add and edit.
type todoFlags struct {
	title       string
	description string
	priority    string
	due         string
	repeat      string
}

func (f *todoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description (markdown)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "low|medium|high")
	cmd.Flags().StringVar(&f.due, "due", "", `Due date: RFC 3339, "2006-01-02T15:04" or "2006-01-02" (local time; "" clears)`)
	cmd.Flags().StringVar(&f.repeat, "repeat", "", `Recurrence rule, e.g. "FREQ=WEEKLY;BYDAY=MO" ("" clears)`)
}

// patch builds a TodoPatch from the flags the user actually set.
func (f *todoFlags) patch(cmd *cobra.Command) (model.TodoPatch, error) {
	var p model.TodoPatch
	changed := cmd.Flags().Changed
	if changed("title") {
		t := strings.TrimSpace(f.title)
		p.Title = &t
	}
	if changed("description") {
		p.Description = &f.description
	}
	if changed("priority") {
		pr, err := model.ParsePriority(f.priority)
		if err != nil {
			return p, err
		}
		p.Priority = &pr
	}
	if changed("due") {
		loc, err := location()
		if err != nil {
			return p, err
		}
		due, ok := datepicker.NormalizeValue(f.due, loc)
		if !ok {
			return p, &model.ValidationError{Field: "due", Msg: fmt.Sprintf("invalid due date %q", f.due)}
		}
		p.DueDate = &due
	}
	if changed("repeat") {
		rule, err := todos.NormalizeRepeat(f.repeat)
		if err != nil {
			return p, err
		}
		p.Repeat = &rule
	}
	return p, nil
}

func newTodosAddCmd(app *App) *cobra.Command {
	var f todoFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a todo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.patch(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			var t model.Todo
			p.Apply(&t)

			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			created, err := st.CreateTodo(cmd.Context(), t)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data":   created,
				"_hints": []string{"extras todos show " + created.ID},
			})
		},
	}
	f.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTodosShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <todo-id>",
		Short: "Show a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			t, err := st.GetTodo(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, lookupErr(err, "todo", args[0]))
			}
			out := map[string]any{"data": t}
			if next, ok := todos.NextDue(t, app.now()); ok {
				out["meta"] = map[string]any{"nextDue": next.Format(time.RFC3339)}
			}
			return writeOut(cmd, app, out)
		},
	}
}

// newTodosDoneCmd completes a todo. A repeating todo is moved to its next
// occurrence instead.
func newTodosDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <todo-id>",
		Short: "Mark a todo done (repeating todos advance to the next occurrence)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			t, err := st.GetTodo(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, lookupErr(err, "todo", args[0]))
			}
			t, err = st.UpdateTodo(cmd.Context(), t.ID, todos.CompletionPatch(t, app.now()))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTodosReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen <todo-id>",
		Short: "Mark a todo not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			open := false
			t, err := st.UpdateTodo(cmd.Context(), args[0], model.TodoPatch{Completed: &open})
			if err != nil {
				return writeErr(cmd, lookupErr(err, "todo", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTodosEditCmd(app *App) *cobra.Command {
	var f todoFlags

	cmd := &cobra.Command{
		Use:   "edit <todo-id>",
		Short: "Update fields of a todo (only flags given are changed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.patch(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			t, err := st.UpdateTodo(cmd.Context(), args[0], p)
			if err != nil {
				return writeErr(cmd, lookupErr(err, "todo", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	f.register(cmd)
	return cmd
}

func newTodosRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <todo-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			if err := st.DeleteTodo(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, lookupErr(err, "todo", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "deleted": true}})
		},
	}
}

func newTodosStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Todo counts (total, completed, pending, high priority, overdue)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			all, err := st.ListTodos(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": todos.ComputeStats(all, app.now())})
		},
	}
}
