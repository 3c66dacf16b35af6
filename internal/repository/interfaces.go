package repository

import (
	"context"

	"github.com/alexanderramin/brieflist/internal/domain"
)

// TodoRepo is the record store adapter for the todos collection. Every
// failure is a *StoreError; a missing id additionally matches ErrNotFound.
// Implementations never retry.
type TodoRepo interface {
	List(ctx context.Context) ([]*domain.Todo, error)
	Insert(ctx context.Context, title string) (*domain.Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

var (
	_ TodoRepo = (*SQLTodoRepo)(nil)
	_ TodoRepo = (*RESTTodoRepo)(nil)
)
