// Package apiclient talks to a running brieflist server. Client satisfies
// both repository.TodoRepo and intelligence.CompanyService, so terminal
// front ends can use a remote server in place of local collaborators.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/repository"
)

// Client is an HTTP client for the brieflist API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for baseURL (scheme and host, optional path prefix).
// A nil httpClient selects one with a 60s timeout, long enough for a
// completion round trip.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid api base url %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{baseURL: u.String(), http: httpClient}, nil
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string `json:"error"`
	Details string `json:"details"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("server returned %d: %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *Client) List(ctx context.Context) ([]*domain.Todo, error) {
	var out struct {
		Todos []*domain.Todo `json:"todos"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &out); err != nil {
		return nil, todoErr("listing", err)
	}
	if out.Todos == nil {
		out.Todos = []*domain.Todo{}
	}
	return out.Todos, nil
}

func (c *Client) Insert(ctx context.Context, title string) (*domain.Todo, error) {
	var out struct {
		Todo *domain.Todo `json:"todo"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/todos", map[string]string{"title": title}, &out); err != nil {
		return nil, todoErr("inserting", err)
	}
	if out.Todo == nil {
		return nil, todoErr("inserting", errors.New("server returned no todo"))
	}
	return out.Todo, nil
}

func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) error {
	err := c.do(ctx, http.MethodPatch, "/api/todos/"+url.PathEscape(id), map[string]bool{"completed": completed}, nil)
	return todoErr("updating", err)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return todoErr("deleting", c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil))
}

// Ready always succeeds; the server performs the credential check.
func (c *Client) Ready() error { return nil }

// Lookup calls POST /api/company-info and maps error responses back onto
// the intelligence error values.
func (c *Client) Lookup(ctx context.Context, companyName string) (*intelligence.CompanyResult, error) {
	var out struct {
		Financials *domain.FinancialPayload `json:"financials"`
		Summary    *string                  `json:"summary"`
	}
	err := c.do(ctx, http.MethodPost, "/api/company-info", map[string]string{"companyName": companyName}, &out)
	if err != nil {
		return nil, companyErr(err)
	}
	if out.Financials != nil {
		return &intelligence.CompanyResult{Variant: intelligence.VariantStructured, Financials: out.Financials}, nil
	}
	if out.Summary != nil {
		return &intelligence.CompanyResult{Variant: intelligence.VariantFreeText, Summary: *out.Summary}, nil
	}
	return nil, fmt.Errorf("%w: server response has neither financials nor summary", intelligence.ErrFormat)
}

// Health calls GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(data, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(data))
		}
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func todoErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusNotFound:
			return &repository.StoreError{Op: op, Err: fmt.Errorf("%s: %w", apiErr.Message, repository.ErrNotFound)}
		case http.StatusBadRequest:
			return fmt.Errorf("%s: %w", apiErr.Message, errBadRequest)
		}
	}
	return &repository.StoreError{Op: op, Err: err}
}

// errBadRequest marks a request the server rejected as invalid.
var errBadRequest = errors.New("rejected by server")

func companyErr(err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return &intelligence.UpstreamError{Message: err.Error(), Code: "UNREACHABLE", Err: err}
	}
	switch {
	case apiErr.Status == http.StatusBadRequest && apiErr.Message == "Company name is required":
		return intelligence.ErrValidation
	case apiErr.Status == http.StatusBadRequest:
		return fmt.Errorf("%s: %w", apiErr.Message, errBadRequest)
	case apiErr.Message == "OpenAI API key not configured":
		return intelligence.ErrConfiguration
	case apiErr.Message == "No response from completion provider":
		return intelligence.ErrEmptyResponse
	case apiErr.Message == "Invalid response format from completion provider":
		return intelligence.ErrFormat
	case apiErr.Message == "Failed to fetch company information":
		return &intelligence.UpstreamError{Message: apiErr.Details, Type: apiErr.Type, Code: apiErr.Code, Err: apiErr}
	default:
		return &intelligence.UpstreamError{Message: apiErr.Error(), Code: fmt.Sprintf("HTTP_%d", apiErr.Status), Err: apiErr}
	}
}

var (
	_ repository.TodoRepo         = (*Client)(nil)
	_ intelligence.CompanyService = (*Client)(nil)
)
