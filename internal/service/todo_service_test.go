package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alexanderramin/brieflist/internal/repository"
	"github.com/alexanderramin/brieflist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingUseCaseObserver) last() UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events[len(r.events)-1]
}

func setupTodoService(t *testing.T) (TodoService, *recordingUseCaseObserver) {
	t.Helper()
	obs := &recordingUseCaseObserver{}
	repo := repository.NewSQLiteTodoRepo(testutil.NewTestDB(t))
	return NewTodoService(repo, obs), obs
}

func TestTodoService_Lifecycle(t *testing.T) {
	svc, _ := setupTodoService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Buy milk")
	require.NoError(t, err)

	todos, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.False(t, todos[0].Completed)

	require.NoError(t, svc.SetCompleted(ctx, created.ID, true))
	todos, err = svc.List(ctx)
	require.NoError(t, err)
	assert.True(t, todos[0].Completed)

	require.NoError(t, svc.Delete(ctx, created.ID))
	todos, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoService_Create_TrimsTitle(t *testing.T) {
	svc, _ := setupTodoService(t)

	created, err := svc.Create(context.Background(), "  Call mom \n")
	require.NoError(t, err)
	assert.Equal(t, "Call mom", created.Title)
}

func TestTodoService_Create_BlankTitleSkipsStore(t *testing.T) {
	store := testutil.NewMemoryTodoStore()
	svc := NewTodoService(store)

	for _, title := range []string{"", "   ", "\t"} {
		_, err := svc.Create(context.Background(), title)
		assert.ErrorIs(t, err, ErrBlankTitle)
	}
	assert.Equal(t, 0, store.CallCount("insert"))
}

func TestTodoService_ObservesUseCases(t *testing.T) {
	svc, obs := setupTodoService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Write report")
	require.NoError(t, err)
	assert.Equal(t, "create-todo", obs.last().Name)
	assert.True(t, obs.last().Success)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "list-todos", obs.last().Name)
	assert.Equal(t, 1, obs.last().Fields["count"])

	err = svc.SetCompleted(ctx, "missing", true)
	require.Error(t, err)
	ev := obs.last()
	assert.Equal(t, "set-todo-completed", ev.Name)
	assert.False(t, ev.Success)
	assert.True(t, errors.Is(ev.Err, repository.ErrNotFound))
	assert.Equal(t, "missing", ev.Fields["todo_id"])

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, "delete-todo", obs.last().Name)
}

func TestTodoService_StoreErrorPropagates(t *testing.T) {
	store := testutil.NewMemoryTodoStore()
	boom := &repository.StoreError{Op: "listing", Err: errors.New("connection reset")}
	store.Fail("list", boom)
	svc := NewTodoService(store)

	_, err := svc.List(context.Background())
	var serr *repository.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "listing", serr.Op)
}

func TestLogUseCaseObserver_WritesZapEntries(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewTodoService(testutil.NewMemoryTodoStore(), NewLogUseCaseObserver(zap.New(core)))

	_, err := svc.Create(context.Background(), "Ship it")
	require.NoError(t, err)
	err = svc.Delete(context.Background(), "nope")
	require.Error(t, err)

	entries := logs.FilterMessage("service_use_case").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "create-todo", entries[0].ContextMap()["use_case"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, "delete-todo", entries[1].ContextMap()["use_case"])
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
