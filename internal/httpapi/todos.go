package httpapi

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/repository"
	"github.com/alexanderramin/brieflist/internal/service"
	"go.uber.org/zap"
)

// CreateTodoRequest is the body of POST /api/todos.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// UpdateTodoRequest is the body of PATCH /api/todos/{id}.
type UpdateTodoRequest struct {
	Completed *bool `json:"completed"`
}

// TodoListResponse is the body of GET /api/todos.
type TodoListResponse struct {
	Todos []*domain.Todo `json:"todos"`
}

// TodoResponse is the body of POST /api/todos.
type TodoResponse struct {
	Todo *domain.Todo `json:"todo"`
}

func (s *Server) requireTodos(w http.ResponseWriter) bool {
	if s.todos == nil {
		writeError(w, http.StatusServiceUnavailable, "todo store is not enabled")
		return false
	}
	return true
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	if !s.requireTodos(w) {
		return
	}
	todos, err := s.todos.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if todos == nil {
		todos = []*domain.Todo{}
	}
	writeJSON(w, http.StatusOK, TodoListResponse{Todos: todos})
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	if !s.requireTodos(w) {
		return
	}
	var req CreateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	todo, err := s.todos.Create(r.Context(), req.Title)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, TodoResponse{Todo: todo})
}

func (s *Server) handleSetCompleted(w http.ResponseWriter, r *http.Request) {
	if !s.requireTodos(w) {
		return
	}
	var req UpdateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if req.Completed == nil {
		writeError(w, http.StatusBadRequest, "completed is required")
		return
	}
	if err := s.todos.SetCompleted(r.Context(), r.PathValue("id"), *req.Completed); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if !s.requireTodos(w) {
		return
	}
	if err := s.todos.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrBlankTitle):
		writeError(w, http.StatusBadRequest, "Title is required")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Todo not found")
	default:
		s.logger.Warn("record store failure",
			zap.Error(err),
			zap.String("request_id", RequestID(r.Context())),
		)
		writeJSON(w, http.StatusBadGateway, errorBody{Error: "Record store request failed", Details: err.Error()})
	}
}
