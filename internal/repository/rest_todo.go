package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/brieflist/internal/domain"
)

// RESTTodoRepo implements TodoRepo against a PostgREST endpoint such as
// the Supabase REST API. The table needs only id, title and completed
// columns; a created_at column is picked up when present. Ids are assigned
// by the server and rows are listed in id order.
type RESTTodoRepo struct {
	baseURL string
	key     string
	table   string
	http    *http.Client
}

// NewRESTTodoRepo creates a RESTTodoRepo. A project URL without a path
// (https://<ref>.supabase.co) is expanded to its /rest/v1 root. A nil
// client selects a client with a 15s timeout.
func NewRESTTodoRepo(baseURL, key, table string, client *http.Client) (*RESTTodoRepo, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid store url %q", baseURL)
	}
	if u.Path == "" {
		u.Path = "/rest/v1"
	}
	if table == "" {
		table = "todos"
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &RESTTodoRepo{baseURL: u.String(), key: key, table: table, http: client}, nil
}

// restTodo mirrors a row. Hosted tables often use bigint ids, so the id is
// kept raw and rendered as a string.
type restTodo struct {
	ID        json.RawMessage `json:"id"`
	Title     string          `json:"title"`
	Completed bool            `json:"completed"`
	CreatedAt *time.Time      `json:"created_at"`
}

func (rt restTodo) toDomain() *domain.Todo {
	t := &domain.Todo{Title: rt.Title, Completed: rt.Completed}
	var s string
	if err := json.Unmarshal(rt.ID, &s); err == nil {
		t.ID = s
	} else {
		t.ID = string(rt.ID)
	}
	if rt.CreatedAt != nil {
		t.CreatedAt = rt.CreatedAt.UTC()
	}
	return t
}

// restError is the PostgREST error body.
type restError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (r *RESTTodoRepo) List(ctx context.Context) ([]*domain.Todo, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "id.asc")

	var rows []restTodo
	if err := r.do(ctx, http.MethodGet, q, nil, &rows); err != nil {
		return nil, storeErr("listing", err)
	}
	todos := make([]*domain.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toDomain())
	}
	return todos, nil
}

func (r *RESTTodoRepo) Insert(ctx context.Context, title string) (*domain.Todo, error) {
	body := map[string]any{"title": title, "completed": false}
	var rows []restTodo
	if err := r.do(ctx, http.MethodPost, nil, body, &rows); err != nil {
		return nil, storeErr("inserting", err)
	}
	if len(rows) == 0 {
		return nil, storeErr("inserting", fmt.Errorf("store returned no row"))
	}
	return rows[0].toDomain(), nil
}

func (r *RESTTodoRepo) SetCompleted(ctx context.Context, id string, completed bool) error {
	var rows []restTodo
	if err := r.do(ctx, http.MethodPatch, idFilter(id), map[string]any{"completed": completed}, &rows); err != nil {
		return storeErr("updating", err)
	}
	if len(rows) == 0 {
		return storeErr("updating", fmt.Errorf("todo %s: %w", id, ErrNotFound))
	}
	return nil
}

func (r *RESTTodoRepo) Delete(ctx context.Context, id string) error {
	var rows []restTodo
	if err := r.do(ctx, http.MethodDelete, idFilter(id), nil, &rows); err != nil {
		return storeErr("deleting", err)
	}
	if len(rows) == 0 {
		return storeErr("deleting", fmt.Errorf("todo %s: %w", id, ErrNotFound))
	}
	return nil
}

func idFilter(id string) url.Values {
	q := url.Values{}
	q.Set("id", "eq."+id)
	return q
}

func (r *RESTTodoRepo) do(ctx context.Context, method string, query url.Values, body any, out any) error {
	endpoint := r.baseURL + "/" + url.PathEscape(r.table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}
	if r.key != "" {
		req.Header.Set("apikey", r.key)
		req.Header.Set("Authorization", "Bearer "+r.key)
	}

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 300 {
		var re restError
		if json.Unmarshal(data, &re) == nil && re.Message != "" {
			if re.Code != "" {
				return fmt.Errorf("status %d (%s): %s", resp.StatusCode, re.Code, re.Message)
			}
			return fmt.Errorf("status %d: %s", resp.StatusCode, re.Message)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
