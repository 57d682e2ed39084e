package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"extras-cli/internal/model"
)

const (
	todosTable   = "todos"
	todoIDPrefix = "todo"
)

const todoColumns = `id, title, description, completed, priority, due_date, repeat_rule, created_at_unixms, updated_at_unixms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(r rowScanner) (model.Todo, error) {
	var (
		t         model.Todo
		completed int
		due       sql.NullString
		created   int64
		updated   int64
	)
	if err := r.Scan(&t.ID, &t.Title, &t.Description, &completed, &t.Priority, &due, &t.Repeat, &created, &updated); err != nil {
		return model.Todo{}, err
	}
	t.Completed = completed != 0
	t.DueDate = due.String
	t.CreatedAt = fromUnixMS(created)
	t.UpdatedAt = fromUnixMS(updated)
	return t, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ListTodos returns every todo, newest first.
func (s *Store) ListTodos(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY created_at_unixms DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return t, err
}

// CreateTodo assigns an id and timestamps, validates and inserts t.
// New todos always start open.
func (s *Store) CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error) {
	p, err := model.ParsePriority(string(t.Priority))
	if err != nil {
		return model.Todo{}, err
	}
	t.Priority = p
	t.Completed = false
	if err := t.Validate(); err != nil {
		return model.Todo{}, err
	}
	id, err := s.newID(ctx, todosTable, todoIDPrefix)
	if err != nil {
		return model.Todo{}, err
	}
	now := s.now().UTC()
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO todos (`+todoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, boolInt(t.Completed), string(t.Priority),
		nullString(t.DueDate), t.Repeat, unixMS(t.CreatedAt), unixMS(t.UpdatedAt),
	)
	if err != nil {
		return model.Todo{}, err
	}
	s.hub.Publish(model.Change{Table: todosTable, Op: model.OpInsert, ID: t.ID})
	return t, nil
}

// UpdateTodo applies patch to the todo with the given id.
func (s *Store) UpdateTodo(ctx context.Context, id string, patch model.TodoPatch) (model.Todo, error) {
	t, err := s.GetTodo(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	patch.Apply(&t)
	if err := t.Validate(); err != nil {
		return model.Todo{}, err
	}
	t.UpdatedAt = s.now().UTC()

	_, err = s.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, completed = ?, priority = ?, due_date = ?, repeat_rule = ?, updated_at_unixms = ? WHERE id = ?`,
		t.Title, t.Description, boolInt(t.Completed), string(t.Priority),
		nullString(t.DueDate), t.Repeat, unixMS(t.UpdatedAt), t.ID,
	)
	if err != nil {
		return model.Todo{}, err
	}
	s.hub.Publish(model.Change{Table: todosTable, Op: model.OpUpdate, ID: t.ID})
	return t, nil
}

func (s *Store) DeleteTodo(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	s.hub.Publish(model.Change{Table: todosTable, Op: model.OpDelete, ID: id})
	return nil
}
