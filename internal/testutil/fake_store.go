package testutil

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/google/uuid"
)

// ErrFakeNotFound is returned by MemoryTodoStore for unknown ids unless
// NotFound is set.
var ErrFakeNotFound = errors.New("fake: todo not found")

// MemoryTodoStore is an in-memory todo store with failure injection. It
// satisfies repository.TodoRepo without importing it.
//
// FailOn maps an operation name ("list", "insert", "set_completed",
// "delete") to the error that operation returns. Calls counts every
// invocation, failed or not.
type MemoryTodoStore struct {
	mu       sync.Mutex
	todos    []*domain.Todo
	seq      int
	FailOn   map[string]error
	NotFound error
	Calls    map[string]int
	// Block, when non-nil, is received from before every operation.
	Block chan struct{}
}

// NewMemoryTodoStore creates a store preloaded with todos.
func NewMemoryTodoStore(todos ...*domain.Todo) *MemoryTodoStore {
	s := &MemoryTodoStore{FailOn: map[string]error{}, Calls: map[string]int{}}
	for _, t := range todos {
		c := *t
		s.todos = append(s.todos, &c)
	}
	return s
}

// Fail makes op return err until cleared with Fail(op, nil).
func (s *MemoryTodoStore) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.FailOn, op)
		return
	}
	s.FailOn[op] = err
}

// CallCount returns how often op was invoked.
func (s *MemoryTodoStore) CallCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Calls[op]
}

func (s *MemoryTodoStore) wait(ctx context.Context) error {
	s.mu.Lock()
	block := s.Block
	s.mu.Unlock()
	if block == nil {
		return nil
	}
	select {
	case <-block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MemoryTodoStore) enter(op string) error {
	s.Calls[op]++
	return s.FailOn[op]
}

func (s *MemoryTodoStore) List(ctx context.Context) ([]*domain.Todo, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("list"); err != nil {
		return nil, err
	}
	out := make([]*domain.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		c := *t
		out = append(out, &c)
	}
	return out, nil
}

func (s *MemoryTodoStore) Insert(ctx context.Context, title string) (*domain.Todo, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("insert"); err != nil {
		return nil, err
	}
	s.seq++
	t := &domain.Todo{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: time.Date(2025, 3, 1, 9, 0, s.seq, 0, time.UTC),
	}
	s.todos = append(s.todos, t)
	c := *t
	return &c, nil
}

func (s *MemoryTodoStore) SetCompleted(ctx context.Context, id string, completed bool) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("set_completed"); err != nil {
		return err
	}
	for _, t := range s.todos {
		if t.ID == id {
			t.Completed = completed
			return nil
		}
	}
	return s.notFound(id)
}

func (s *MemoryTodoStore) Delete(ctx context.Context, id string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enter("delete"); err != nil {
		return err
	}
	for i, t := range s.todos {
		if t.ID == id {
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return nil
		}
	}
	return s.notFound(id)
}

func (s *MemoryTodoStore) notFound(id string) error {
	if s.NotFound != nil {
		return s.NotFound
	}
	return fmt.Errorf("todo %s: %w", id, ErrFakeNotFound)
}
