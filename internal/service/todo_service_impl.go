package service

import (
	"context"
	"time"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/repository"
)

type todoService struct {
	todos    repository.TodoRepo
	observer UseCaseObserver
}

func NewTodoService(todos repository.TodoRepo, observers ...UseCaseObserver) TodoService {
	return &todoService{
		todos:    todos,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) List(ctx context.Context) (todos []*domain.Todo, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "list-todos", time.Now(), fields, &err)

	todos, err = s.todos.List(ctx)
	fields["count"] = len(todos)
	return todos, err
}

func (s *todoService) Create(ctx context.Context, title string) (todo *domain.Todo, err error) {
	defer observe(ctx, s.observer, "create-todo", time.Now(), nil, &err)

	title = domain.NormalizeTitle(title)
	if title == "" {
		return nil, ErrBlankTitle
	}
	return s.todos.Insert(ctx, title)
}

func (s *todoService) SetCompleted(ctx context.Context, id string, completed bool) (err error) {
	defer observe(ctx, s.observer, "set-todo-completed", time.Now(),
		map[string]any{"todo_id": id, "completed": completed}, &err)

	return s.todos.SetCompleted(ctx, id, completed)
}

func (s *todoService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-todo", time.Now(), map[string]any{"todo_id": id}, &err)

	return s.todos.Delete(ctx, id)
}
