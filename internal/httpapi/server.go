// Package httpapi serves the company research proxy and the todo API.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/metrics"
	"github.com/alexanderramin/brieflist/internal/service"
	"go.uber.org/zap"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 64 << 10

// Options are the collaborators of a Server. Company and Todos may be nil,
// in which case their routes answer 503.
type Options struct {
	Todos   service.TodoService
	Company intelligence.CompanyService
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Server routes HTTP requests to the services.
type Server struct {
	todos   service.TodoService
	company intelligence.CompanyService
	metrics *metrics.Metrics
	logger  *zap.Logger
	handler http.Handler
}

// NewServer builds the route table and wraps it in the middleware chain.
func NewServer(opts Options) *Server {
	s := &Server{
		todos:   opts.Todos,
		company: opts.Company,
		metrics: opts.Metrics,
		logger:  opts.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/company-info", s.handleCompanyInfo)
	mux.HandleFunc("GET /api/todos", s.handleListTodos)
	mux.HandleFunc("POST /api/todos", s.handleCreateTodo)
	mux.HandleFunc("PATCH /api/todos/{id}", s.handleSetCompleted)
	mux.HandleFunc("DELETE /api/todos/{id}", s.handleDeleteTodo)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}

	s.handler = chain(mux,
		withRequestID,
		s.withAccessLog,
		s.withRecover,
	)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Type    string `json:"type,omitempty"`
	Code    string `json:"code,omitempty"`
}

// decodeJSON reads a single JSON value from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}
