package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/brieflist/internal/domain"
)

// ErrBlankTitle is returned when a todo title is empty after trimming.
var ErrBlankTitle = errors.New("todo title is required")

// TodoService exposes the todo use cases on top of a record store.
type TodoService interface {
	List(ctx context.Context) ([]*domain.Todo, error)
	Create(ctx context.Context, title string) (*domain.Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}
