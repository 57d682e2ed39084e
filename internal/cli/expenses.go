package cli

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"extras-cli/internal/calendar"
	"extras-cli/internal/expense"
	"extras-cli/internal/model"

	"github.com/spf13/cobra"
)

func newExpensesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"expense", "exp"},
		Short:   "Expense and budget commands",
	}
	cmd.AddCommand(newExpensesListCmd(app))
	cmd.AddCommand(newExpensesAddCmd(app))
	cmd.AddCommand(newExpensesRmCmd(app))
	cmd.AddCommand(newExpensesExportCmd(app))
	cmd.AddCommand(newExpensesSummaryCmd(app))
	cmd.AddCommand(newBudgetCmd(app))
	return cmd
}

// parseMonth reads a --month value ("2006-01"); empty means the current month.
func parseMonth(app *App, v string) (calendar.Month, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		loc, err := location()
		if err != nil {
			return calendar.Month{}, err
		}
		return calendar.MonthOf(app.now().In(loc)), nil
	}
	t, err := time.Parse("2006-01", v)
	if err != nil {
		return calendar.Month{}, &model.ValidationError{Field: "month", Msg: fmt.Sprintf("invalid month %q (want YYYY-MM)", v)}
	}
	return calendar.MonthOf(t), nil
}

func newExpensesListCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			list, err := st.ListExpenses(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			meta := map[string]any{"total": len(list)}
			if cmd.Flags().Changed("month") {
				m, err := parseMonth(app, month)
				if err != nil {
					return writeErr(cmd, err)
				}
				list = expense.InMonth(list, m)
				meta["month"] = m.String()
			}
			meta["returned"] = len(list)
			return writeOut(cmd, app, map[string]any{
				"data":   list,
				"meta":   meta,
				"_hints": []string{"extras expenses summary", "extras expenses budget"},
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Only expenses in this month (YYYY-MM)")
	return cmd
}

func newExpensesAddCmd(app *App) *cobra.Command {
	var (
		merchant    string
		amount      string
		date        string
		category    string
		currency    string
		description string
		status      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := expense.ParseAmount(amount)
			if err != nil {
				return writeErr(cmd, err)
			}
			cat, err := model.ParseCategory(category)
			if err != nil {
				return writeErr(cmd, err)
			}
			e := model.Expense{
				Date:        strings.TrimSpace(date),
				Merchant:    strings.TrimSpace(merchant),
				AmountCents: cents,
				Currency:    strings.ToUpper(strings.TrimSpace(currency)),
				Category:    cat,
				Description: description,
			}
			if strings.TrimSpace(status) != "" {
				s, err := model.ParseExpenseStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				e.Status = s
			}

			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			created, err := st.CreateExpense(cmd.Context(), e)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": created,
				"meta": map[string]any{"amount": expense.FormatAmount(created.AmountCents, created.Currency)},
			})
		},
	}
	cmd.Flags().StringVar(&merchant, "merchant", "", "Merchant")
	cmd.Flags().StringVar(&amount, "amount", "", `Amount, e.g. "12.50" or "1,250"`)
	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&category, "category", string(model.CategoryOther), "Travel|Food|Office|Software|Marketing|Equipment|Other")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (default from config)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&status, "status", "", "Pending|Approved|Rejected|Paid (default Pending)")
	_ = cmd.MarkFlagRequired("merchant")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func newExpensesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <expense-id>",
		Aliases: []string{"delete"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			if err := st.DeleteExpense(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, lookupErr(err, "expense", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "deleted": true}})
		},
	}
}

func newExpensesExportCmd(app *App) *cobra.Command {
	var out, month string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			list, err := st.ListExpenses(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("month") {
				m, err := parseMonth(app, month)
				if err != nil {
					return writeErr(cmd, err)
				}
				list = expense.InMonth(list, m)
			}

			var buf bytes.Buffer
			if err := expense.WriteCSV(&buf, list); err != nil {
				return writeErr(cmd, err)
			}
			if strings.TrimSpace(out) == "" || out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": out, "rows": len(list)}})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to file instead of stdout")
	cmd.Flags().StringVar(&month, "month", "", "Only expenses in this month (YYYY-MM)")
	return cmd
}

type categorySummary struct {
	expense.CategoryTotal
	Amount string `json:"amount"`
}

func newExpensesSummaryCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals for a month, per category (rejected expenses excluded)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMonth(app, month)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			all, err := st.ListExpenses(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			list := expense.InMonth(all, m)
			total := expense.Total(list)

			cats := []categorySummary{}
			for _, ct := range expense.ByCategory(list) {
				cats = append(cats, categorySummary{CategoryTotal: ct, Amount: expense.FormatAmount(ct.AmountCents, st.DefaultCurrency)})
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"month":      m.String(),
					"count":      len(list),
					"totalCents": total,
					"total":      expense.FormatAmount(total, st.DefaultCurrency),
					"byCategory": cats,
				},
			})
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, default current)")
	return cmd
}

type budgetRow struct {
	model.Budget
	Percent float64 `json:"percent"`
	Over    bool    `json:"over"`
}

func newBudgetCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "budget",
		Aliases: []string{"budgets"},
		Short:   "Show monthly budgets with spending progress",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMonth(app, month)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			list, err := st.ListBudgets(cmd.Context(), m)
			if err != nil {
				return writeErr(cmd, err)
			}
			rows := make([]budgetRow, 0, len(list))
			for _, b := range list {
				p := expense.BudgetProgress(b)
				rows = append(rows, budgetRow{Budget: b, Percent: p.Percent, Over: p.Over})
			}
			return writeOut(cmd, app, map[string]any{
				"data":   rows,
				"meta":   map[string]any{"month": m.String()},
				"_hints": []string{"extras expenses budget set <category> <amount>"},
			})
		},
	}
	cmd.PersistentFlags().StringVar(&month, "month", "", "Month (YYYY-MM, default current)")
	cmd.AddCommand(newBudgetSetCmd(app, &month))
	return cmd
}

func newBudgetSetCmd(app *App, month *string) *cobra.Command {
	return &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set the monthly limit for a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := model.ParseCategory(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cents, err := expense.ParseAmount(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			m, err := parseMonth(app, *month)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, _, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer st.Close()
			b, err := st.SetBudget(cmd.Context(), m, cat, cents)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := expense.BudgetProgress(b)
			return writeOut(cmd, app, map[string]any{"data": budgetRow{Budget: b, Percent: p.Percent, Over: p.Over}})
		},
	}
}
