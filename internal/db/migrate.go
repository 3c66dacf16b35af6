package db

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Dialect selects SQL syntax differences between the supported stores.
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// Migrate runs all schema migrations for the dialect. Statements are
// idempotent so it is safe to call on every start.
func Migrate(db *sql.DB, d Dialect) error {
	var stmts []string
	switch d {
	case SQLite:
		stmts = sqliteMigrations
	case Postgres:
		stmts = postgresMigrations
	default:
		return fmt.Errorf("unknown dialect %q", d)
	}
	for i, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var sqliteMigrations = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		completed  INTEGER NOT NULL DEFAULT 0 CHECK(completed IN (0, 1)),
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_created ON todos(created_at)`,
}

var postgresMigrations = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
		title      TEXT NOT NULL,
		completed  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_created ON todos(created_at)`,
}
