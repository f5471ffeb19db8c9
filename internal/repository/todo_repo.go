package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Kyoronginus/Grasshaeru/internal/models"
)

type TodoSQLite struct {
	db *sql.DB
}

func NewTodoSQLite(db *sql.DB) *TodoSQLite { return &TodoSQLite{db: db} }

var _ TodoRepo = (*TodoSQLite)(nil)

// SQLite TIMESTAMP format "YYYY-MM-DD HH:MM:SS"
const sqliteTimeLayout = "2006-01-02 15:04:05"

const (
	insertTodoSQL = `
		INSERT INTO todos (id, user_id, content, is_completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectTodoByIDSQL = `
		SELECT id, user_id, content, is_completed, created_at, updated_at
		FROM todos WHERE id = ?
	`
	selectTodosByOwnerSQL = `
		SELECT id, user_id, content, is_completed, created_at, updated_at
		FROM todos WHERE user_id = ? ORDER BY created_at DESC
	`
	updateTodoSQL = `
		UPDATE todos SET content = ?, is_completed = ?, updated_at = ? WHERE id = ?
	`
	deleteTodoSQL = `DELETE FROM todos WHERE id = ?`
)

// Create inserts a new todo row. ID and timestamps are expected to be
// set by the caller.
func (r *TodoSQLite) Create(ctx context.Context, t models.Todo) error {
	_, err := r.db.ExecContext(ctx, insertTodoSQL,
		t.ID,
		t.UserID,
		t.Content,
		t.IsCompleted,
		t.CreatedAt.UTC().Format(sqliteTimeLayout),
		t.UpdatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert todo %q: %w", t.ID, err)
	}
	return nil
}

// GetByID fetches a todo by id. Returns a zero-ID todo if not found.
func (r *TodoSQLite) GetByID(ctx context.Context, id string) (models.Todo, error) {
	row := r.db.QueryRowContext(ctx, selectTodoByIDSQL, id)

	t, err := scanTodo(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Todo{}, nil
		}
		return models.Todo{}, fmt.Errorf("select todo %q: %w", id, err)
	}
	return t, nil
}

// ListByOwner returns the owner's todos, newest-created first.
func (r *TodoSQLite) ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	rows, err := r.db.QueryContext(ctx, selectTodosByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("select todos for user %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Todo, 0, 16)
	for rows.Next() {
		t, err := scanTodo(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update persists content, completion flag and the refreshed update
// timestamp. A row deleted since it was read yields ErrNotFound.
func (r *TodoSQLite) Update(ctx context.Context, t models.Todo) error {
	res, err := r.db.ExecContext(ctx, updateTodoSQL,
		t.Content,
		t.IsCompleted,
		t.UpdatedAt.UTC().Format(sqliteTimeLayout),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("update todo %q: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update todo %q: %w", t.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("update todo %q: %w", t.ID, ErrNotFound)
	}
	return nil
}

// Delete removes the row. Deleting an absent id is not an error here;
// existence is checked by the service before calling.
func (r *TodoSQLite) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, deleteTodoSQL, id)
	if err != nil {
		return fmt.Errorf("delete todo %q: %w", id, err)
	}
	return nil
}

func scanTodo(scan func(dest ...any) error) (models.Todo, error) {
	var t models.Todo
	if err := scan(&t.ID, &t.UserID, &t.Content, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Todo{}, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}
