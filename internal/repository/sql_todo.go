package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/brieflist/internal/db"
	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/google/uuid"
)

// createdAtLayout is fixed width so SQLite's text timestamps sort in time
// order.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLTodoRepo implements TodoRepo on a database/sql connection, either
// SQLite or PostgreSQL.
type SQLTodoRepo struct {
	db      db.Querier
	dialect db.Dialect
}

// NewSQLiteTodoRepo creates a TodoRepo backed by a SQLite database opened
// with db.OpenSQLite.
func NewSQLiteTodoRepo(conn db.Querier) *SQLTodoRepo {
	return &SQLTodoRepo{db: conn, dialect: db.SQLite}
}

// NewPostgresTodoRepo creates a TodoRepo backed by a PostgreSQL database
// opened with db.OpenPostgres. Ids are assigned by the database.
func NewPostgresTodoRepo(conn db.Querier) *SQLTodoRepo {
	return &SQLTodoRepo{db: conn, dialect: db.Postgres}
}

func (r *SQLTodoRepo) List(ctx context.Context) ([]*domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, completed, created_at FROM todos ORDER BY created_at, id`)
	if err != nil {
		return nil, storeErr("listing", err)
	}
	defer rows.Close()

	todos := []*domain.Todo{}
	for rows.Next() {
		t, err := r.scanTodo(rows)
		if err != nil {
			return nil, storeErr("listing", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("listing", fmt.Errorf("iterating todos: %w", err))
	}
	return todos, nil
}

func (r *SQLTodoRepo) Insert(ctx context.Context, title string) (*domain.Todo, error) {
	if r.dialect == db.Postgres {
		row := r.db.QueryRowContext(ctx,
			`INSERT INTO todos (title) VALUES ($1) RETURNING id, title, completed, created_at`, title)
		t, err := r.scanTodo(row)
		if err != nil {
			return nil, storeErr("inserting", err)
		}
		return t, nil
	}

	t := &domain.Todo{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (id, title, completed, created_at) VALUES (?, ?, 0, ?)`,
		t.ID, t.Title, t.CreatedAt.Format(createdAtLayout))
	if err != nil {
		return nil, storeErr("inserting", err)
	}
	return t, nil
}

func (r *SQLTodoRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	var arg any = completed
	if r.dialect == db.SQLite {
		arg = 0
		if completed {
			arg = 1
		}
	}
	query := fmt.Sprintf(`UPDATE todos SET completed = %s WHERE id = %s`,
		r.dialect.Placeholder(1), r.dialect.Placeholder(2))
	res, err := r.db.ExecContext(ctx, query, arg, id)
	if err != nil {
		return storeErr("updating", err)
	}
	return storeErr("updating", requireAffected(res, id))
}

func (r *SQLTodoRepo) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM todos WHERE id = %s`, r.dialect.Placeholder(1))
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return storeErr("deleting", err)
	}
	return storeErr("deleting", requireAffected(res, id))
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *SQLTodoRepo) scanTodo(s scanner) (*domain.Todo, error) {
	var t domain.Todo
	if r.dialect == db.Postgres {
		if err := s.Scan(&t.ID, &t.Title, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		return &t, nil
	}

	var completed int
	var createdAt string
	if err := s.Scan(&t.ID, &t.Title, &completed, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning todo: %w", err)
	}
	t.Completed = completed != 0
	ts, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	t.CreatedAt = ts
	return &t, nil
}

// requireAffected maps a zero-row update or delete to ErrNotFound.
func requireAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", id, ErrNotFound)
	}
	return nil
}

// IsNotFound reports whether err identifies a missing todo.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
