// Package viewmodel holds the client-side state of the todo list and the
// company research panel. View-models are not safe for concurrent use;
// drive each from a single goroutine.
package viewmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/repository"
	"github.com/alexanderramin/brieflist/internal/service"
)

var (
	// ErrBlankTitle is returned by Create for a title that is empty after trimming.
	ErrBlankTitle = service.ErrBlankTitle
	// ErrUnknownTodo is returned for an id the list does not hold.
	ErrUnknownTodo = errors.New("todo is not in the list")
)

// TodoList mirrors the record store. Items only change after the store
// confirms an operation; a failure leaves them untouched and is kept for
// display until the next successful operation.
type TodoList struct {
	store repository.TodoRepo
	items []domain.Todo
	err   error
}

// NewTodoList creates an empty list backed by store. Call Refresh to load it.
func NewTodoList(store repository.TodoRepo) *TodoList {
	return &TodoList{store: store}
}

// Items returns a copy of the current items in store order.
func (l *TodoList) Items() []domain.Todo {
	out := make([]domain.Todo, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the number of items.
func (l *TodoList) Len() int { return len(l.items) }

// Err returns the last failure, or nil if the last operation succeeded.
func (l *TodoList) Err() error { return l.err }

// Remaining returns how many items are not completed.
func (l *TodoList) Remaining() int {
	n := 0
	for _, t := range l.items {
		if !t.Completed {
			n++
		}
	}
	return n
}

// Op is one store round trip started by the list. It touches only the
// store, so it may run off the goroutine that owns the list; hand its
// Outcome back to Apply on that goroutine.
type Op func(ctx context.Context) Outcome

// OpKind names the list operation an Outcome answers.
type OpKind int

const (
	OpRefresh OpKind = iota
	OpCreate
	OpToggle
	OpDelete
)

// Outcome is the store's answer to an Op.
type Outcome struct {
	Kind      OpKind
	ID        string
	Completed bool
	Todo      domain.Todo
	Todos     []domain.Todo
	Err       error
}

// Refresh replaces the items with the store's current list.
func (l *TodoList) Refresh(ctx context.Context) error {
	return l.Apply(l.RefreshOp()(ctx))
}

// Create inserts a todo and appends the stored record. Blank titles are
// rejected without contacting the store.
func (l *TodoList) Create(ctx context.Context, title string) (domain.Todo, error) {
	op, err := l.CreateOp(title)
	if err != nil {
		return domain.Todo{}, err
	}
	out := op(ctx)
	if err := l.Apply(out); err != nil {
		return domain.Todo{}, err
	}
	return out.Todo, nil
}

// Toggle flips the completion flag of the todo with id.
func (l *TodoList) Toggle(ctx context.Context, id string) error {
	op, err := l.ToggleOp(id)
	if err != nil {
		return err
	}
	return l.Apply(op(ctx))
}

// Delete removes the todo with id.
func (l *TodoList) Delete(ctx context.Context, id string) error {
	op, err := l.DeleteOp(id)
	if err != nil {
		return err
	}
	return l.Apply(op(ctx))
}

// RefreshOp starts a reload of the whole list.
func (l *TodoList) RefreshOp() Op {
	store := l.store
	return func(ctx context.Context) Outcome {
		todos, err := store.List(ctx)
		if err != nil {
			return Outcome{Kind: OpRefresh, Err: err}
		}
		items := make([]domain.Todo, 0, len(todos))
		for _, t := range todos {
			items = append(items, *t)
		}
		return Outcome{Kind: OpRefresh, Todos: items}
	}
}

// CreateOp starts an insert. A blank title is recorded as the list error
// and no Op is returned.
func (l *TodoList) CreateOp(title string) (Op, error) {
	title = domain.NormalizeTitle(title)
	if title == "" {
		return nil, l.fail(ErrBlankTitle)
	}
	store := l.store
	return func(ctx context.Context) Outcome {
		todo, err := store.Insert(ctx, title)
		if err != nil {
			return Outcome{Kind: OpCreate, Err: err}
		}
		return Outcome{Kind: OpCreate, ID: todo.ID, Todo: *todo}
	}, nil
}

// ToggleOp starts flipping the completion flag the list currently shows
// for id.
func (l *TodoList) ToggleOp(id string) (Op, error) {
	i := l.index(id)
	if i < 0 {
		return nil, l.fail(fmt.Errorf("%w: %s", ErrUnknownTodo, id))
	}
	completed := !l.items[i].Completed
	store := l.store
	return func(ctx context.Context) Outcome {
		err := store.SetCompleted(ctx, id, completed)
		return Outcome{Kind: OpToggle, ID: id, Completed: completed, Err: err}
	}, nil
}

// DeleteOp starts removing the todo with id.
func (l *TodoList) DeleteOp(id string) (Op, error) {
	if l.index(id) < 0 {
		return nil, l.fail(fmt.Errorf("%w: %s", ErrUnknownTodo, id))
	}
	store := l.store
	return func(ctx context.Context) Outcome {
		return Outcome{Kind: OpDelete, ID: id, Err: store.Delete(ctx, id)}
	}, nil
}

// Apply folds a finished Op into the list. A failed outcome leaves the
// items untouched and is returned wrapped. Outcomes for items removed in
// the meantime change nothing.
func (l *TodoList) Apply(o Outcome) error {
	if o.Err != nil {
		return l.fail(fmt.Errorf("%s: %w", o.Kind.action(), o.Err))
	}
	switch o.Kind {
	case OpRefresh:
		l.items = o.Todos
	case OpCreate:
		l.items = append(l.items, o.Todo)
	case OpToggle:
		if i := l.index(o.ID); i >= 0 {
			l.items[i].Completed = o.Completed
		}
	case OpDelete:
		if i := l.index(o.ID); i >= 0 {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
		}
	}
	l.err = nil
	return nil
}

func (k OpKind) action() string {
	switch k {
	case OpRefresh:
		return "loading todos"
	case OpCreate:
		return "adding todo"
	case OpToggle:
		return "updating todo"
	case OpDelete:
		return "deleting todo"
	}
	return "todo operation"
}

func (l *TodoList) index(id string) int {
	for i := range l.items {
		if l.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *TodoList) fail(err error) error {
	l.err = err
	return err
}
