package repository

import (
	"context"
	"os"
	"testing"

	"github.com/alexanderramin/brieflist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteTodoRepo_Contract(t *testing.T) {
	runTodoRepoContract(t, func(t *testing.T) TodoRepo {
		return NewSQLiteTodoRepo(testutil.NewTestDB(t))
	})
}

func TestPostgresTodoRepo_Contract(t *testing.T) {
	if os.Getenv(testutil.PostgresDSNEnv) == "" {
		t.Skip(testutil.PostgresDSNEnv + " not set")
	}
	runTodoRepoContract(t, func(t *testing.T) TodoRepo {
		return NewPostgresTodoRepo(testutil.NewTestPostgresDB(t))
	})
}

func TestSQLiteTodoRepo_CreatedAtPersisted(t *testing.T) {
	repo := NewSQLiteTodoRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	created, err := repo.Insert(ctx, "Read")
	require.NoError(t, err)
	require.False(t, created.CreatedAt.IsZero())

	todos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, created.CreatedAt.Equal(todos[0].CreatedAt))
}

func TestSQLiteTodoRepo_ClosedDatabase(t *testing.T) {
	conn := testutil.NewTestDB(t)
	repo := NewSQLiteTodoRepo(conn)
	require.NoError(t, conn.Close())

	_, err := repo.List(context.Background())
	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "listing", serr.Op)
	assert.False(t, IsNotFound(err))

	_, err = repo.Insert(context.Background(), "x")
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "inserting", serr.Op)
}
