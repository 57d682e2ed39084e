package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"extras-cli/internal/calendar"
	"extras-cli/internal/model"
)

const (
	expensesTable   = "expenses"
	budgetsTable    = "budgets"
	expenseIDPrefix = "exp"
)

const expenseColumns = `id, date, merchant, amount_cents, currency, category, description, status, created_at_unixms, updated_at_unixms`

func scanExpense(r rowScanner) (model.Expense, error) {
	var (
		e       model.Expense
		created int64
		updated int64
	)
	if err := r.Scan(&e.ID, &e.Date, &e.Merchant, &e.AmountCents, &e.Currency, &e.Category, &e.Description, &e.Status, &created, &updated); err != nil {
		return model.Expense{}, err
	}
	e.CreatedAt = fromUnixMS(created)
	e.UpdatedAt = fromUnixMS(updated)
	return e, nil
}

// ListExpenses returns every expense, most recent date first.
func (s *Store) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses ORDER BY date DESC, created_at_unixms DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetExpense(ctx context.Context, id string) (model.Expense, error) {
	e, err := scanExpense(s.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Expense{}, fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	return e, err
}

// CreateExpense fills defaults (today, the store currency, Pending), validates
// and inserts e.
func (s *Store) CreateExpense(ctx context.Context, e model.Expense) (model.Expense, error) {
	now := s.now()
	if strings.TrimSpace(e.Date) == "" {
		e.Date = now.Format(model.DateLayout)
	}
	if strings.TrimSpace(e.Currency) == "" {
		e.Currency = s.currency()
	}
	if e.Status == "" {
		e.Status = model.StatusPending
	}
	if c, err := model.ParseCategory(string(e.Category)); err == nil {
		e.Category = c
	}
	if err := e.Validate(); err != nil {
		return model.Expense{}, err
	}
	id, err := s.newID(ctx, expensesTable, expenseIDPrefix)
	if err != nil {
		return model.Expense{}, err
	}
	e.ID = id
	e.CreatedAt = now.UTC()
	e.UpdatedAt = e.CreatedAt

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, e.Merchant, e.AmountCents, e.Currency, string(e.Category),
		e.Description, string(e.Status), unixMS(e.CreatedAt), unixMS(e.UpdatedAt),
	)
	if err != nil {
		return model.Expense{}, err
	}
	s.hub.Publish(model.Change{Table: expensesTable, Op: model.OpInsert, ID: e.ID})
	return e, nil
}

func (s *Store) UpdateExpense(ctx context.Context, id string, patch model.ExpensePatch) (model.Expense, error) {
	e, err := s.GetExpense(ctx, id)
	if err != nil {
		return model.Expense{}, err
	}
	patch.Apply(&e)
	if err := e.Validate(); err != nil {
		return model.Expense{}, err
	}
	e.UpdatedAt = s.now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE expenses SET date = ?, merchant = ?, amount_cents = ?, currency = ?, category = ?, description = ?, status = ?, updated_at_unixms = ? WHERE id = ?`,
		e.Date, e.Merchant, e.AmountCents, e.Currency, string(e.Category),
		e.Description, string(e.Status), unixMS(e.UpdatedAt), e.ID,
	)
	if err != nil {
		return model.Expense{}, err
	}
	s.hub.Publish(model.Change{Table: expensesTable, Op: model.OpUpdate, ID: e.ID})
	return e, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("expense %s: %w", id, ErrNotFound)
	}
	s.hub.Publish(model.Change{Table: expensesTable, Op: model.OpDelete, ID: id})
	return nil
}

// datePrefix is the "YYYY-MM-" prefix shared by every expense date in m.
func datePrefix(m calendar.Month) string {
	m = m.Normalize()
	return fmt.Sprintf("%04d-%02d-", m.Year, int(m.Month))
}

// ListBudgets returns one budget per category for month m, creating zero
// limits for the period when none exist yet. SpentCents sums the period's
// expenses, excluding rejected ones.
func (s *Store) ListBudgets(ctx context.Context, m calendar.Month) ([]model.Budget, error) {
	period := m.String()
	if err := s.initBudgets(ctx, period); err != nil {
		return nil, err
	}

	limits := map[model.Category]int64{}
	rows, err := s.db.QueryContext(ctx, `SELECT category, limit_cents FROM budgets WHERE period = ?`, period)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var (
			c     string
			limit int64
		)
		if err := rows.Scan(&c, &limit); err != nil {
			rows.Close()
			return nil, err
		}
		limits[model.Category(c)] = limit
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	spent, err := s.spentByCategory(ctx, m)
	if err != nil {
		return nil, err
	}

	out := make([]model.Budget, 0, len(model.Categories))
	for _, c := range model.Categories {
		out = append(out, model.Budget{
			Category:   c,
			LimitCents: limits[c],
			SpentCents: spent[c],
			Period:     period,
		})
	}
	return out, nil
}

func (s *Store) initBudgets(ctx context.Context, period string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM budgets WHERE period = ?`, period).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, c := range model.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO budgets (category, period, limit_cents) VALUES (?, ?, 0)`,
			string(c), period,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) spentByCategory(ctx context.Context, m calendar.Month) (map[model.Category]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, COALESCE(SUM(amount_cents), 0) FROM expenses WHERE date LIKE ? AND status != ? GROUP BY category`,
		datePrefix(m)+"%", string(model.StatusRejected),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[model.Category]int64{}
	for rows.Next() {
		var (
			c   string
			sum int64
		)
		if err := rows.Scan(&c, &sum); err != nil {
			return nil, err
		}
		out[model.Category(c)] = sum
	}
	return out, rows.Err()
}

// SetBudget upserts the limit for category in month m.
func (s *Store) SetBudget(ctx context.Context, m calendar.Month, category model.Category, limitCents int64) (model.Budget, error) {
	c, err := model.ParseCategory(string(category))
	if err != nil {
		return model.Budget{}, err
	}
	if limitCents < 0 {
		return model.Budget{}, &model.ValidationError{Field: "limit", Msg: "limit must not be negative"}
	}
	period := m.String()
	if err := s.initBudgets(ctx, period); err != nil {
		return model.Budget{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO budgets (category, period, limit_cents) VALUES (?, ?, ?)
		ON CONFLICT(category, period) DO UPDATE SET limit_cents = excluded.limit_cents`,
		string(c), period, limitCents,
	)
	if err != nil {
		return model.Budget{}, err
	}
	spent, err := s.spentByCategory(ctx, m)
	if err != nil {
		return model.Budget{}, err
	}
	s.hub.Publish(model.Change{Table: budgetsTable, Op: model.OpUpdate, ID: string(c) + "/" + period})
	return model.Budget{Category: c, LimitCents: limitCents, SpentCents: spent[c], Period: period}, nil
}
