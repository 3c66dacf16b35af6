package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runTodoRepoContract exercises the behaviour every TodoRepo backend shares.
func runTodoRepoContract(t *testing.T, newRepo func(t *testing.T) TodoRepo) {
	t.Run("lifecycle", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Insert(ctx, "Buy milk")
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, "Buy milk", created.Title)
		assert.False(t, created.Completed)

		todos, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, created.ID, todos[0].ID)
		assert.Equal(t, "Buy milk", todos[0].Title)
		assert.False(t, todos[0].Completed)

		require.NoError(t, repo.SetCompleted(ctx, created.ID, true))
		todos, err = repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.True(t, todos[0].Completed)

		require.NoError(t, repo.Delete(ctx, created.ID))
		todos, err = repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, todos)
	})

	t.Run("duplicate titles get distinct ids", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a, err := repo.Insert(ctx, "Call bank")
		require.NoError(t, err)
		b, err := repo.Insert(ctx, "Call bank")
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)

		todos, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 2)
		assert.Equal(t, a.ID, todos[0].ID)
		assert.Equal(t, b.ID, todos[1].ID)
	})

	t.Run("list empty store", func(t *testing.T) {
		todos, err := newRepo(t).List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	t.Run("missing id", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.SetCompleted(ctx, "00000000-0000-0000-0000-000000000000", true)
		var serr *StoreError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "updating", serr.Op)
		assert.True(t, errors.Is(err, ErrNotFound))

		err = repo.Delete(ctx, "00000000-0000-0000-0000-000000000000")
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "deleting", serr.Op)
		assert.True(t, IsNotFound(err))
	})

	t.Run("toggle back", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Insert(ctx, "Water plants")
		require.NoError(t, err)
		require.NoError(t, repo.SetCompleted(ctx, created.ID, true))
		require.NoError(t, repo.SetCompleted(ctx, created.ID, false))

		todos, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.False(t, todos[0].Completed)
	})
}
