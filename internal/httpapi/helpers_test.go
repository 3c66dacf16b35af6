package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/llm"
	"github.com/alexanderramin/brieflist/internal/metrics"
	"github.com/alexanderramin/brieflist/internal/repository"
	"github.com/alexanderramin/brieflist/internal/service"
	"github.com/alexanderramin/brieflist/internal/testutil"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server  *Server
	llm     *testutil.FakeLLMClient
	store   *testutil.MemoryTodoStore
	metrics *metrics.Metrics
}

type envOption func(*llm.Config)

func withoutKey() envOption { return func(c *llm.Config) { c.APIKey = "" } }

func withVariant(v string) envOption { return func(c *llm.Config) { c.Variant = v } }

func newTestEnv(t *testing.T, completion string, opts ...envOption) *testEnv {
	t.Helper()
	cfg := llm.DefaultConfig()
	cfg.APIKey = "sk-test"
	for _, o := range opts {
		o(&cfg)
	}

	client := testutil.NewFakeLLMClient(completion)
	company, err := intelligence.NewCompanyService(client, cfg, nil)
	require.NoError(t, err)

	store := testutil.NewMemoryTodoStore()
	store.NotFound = &repository.StoreError{Op: "updating", Err: repository.ErrNotFound}
	m := metrics.New()

	return &testEnv{
		server: NewServer(Options{
			Todos:   service.NewTodoService(store),
			Company: company,
			Metrics: m,
		}),
		llm:     client,
		store:   store,
		metrics: m,
	}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rec.Body.Bytes())).Decode(&out), rec.Body.String())
	return out
}

func assertJSON(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

var _ http.Handler = (*Server)(nil)
