package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/alexanderramin/brieflist/internal/db"
)

// PostgresDSNEnv names the variable that enables tests against a real
// PostgreSQL server.
const PostgresDSNEnv = "BRIEFLIST_TEST_POSTGRES_DSN"

// NewTestDB returns a migrated in-memory SQLite database that is closed when
// the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.OpenSQLite(db.MemoryDSN)
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// NewTestPostgresDB returns a migrated PostgreSQL database with an empty
// todos table. The test is skipped unless PostgresDSNEnv is set.
func NewTestPostgresDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skip(PostgresDSNEnv + " not set")
	}
	conn, err := db.OpenPostgres(context.Background(), dsn)
	if err != nil {
		t.Fatalf("opening postgres: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if _, err := conn.Exec(`TRUNCATE todos`); err != nil {
		t.Fatalf("truncating todos: %v", err)
	}
	return conn
}
