package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/brieflist/internal/config"
	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/llm"
	"github.com/alexanderramin/brieflist/internal/repository"
	"github.com/alexanderramin/brieflist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// testApp wires an App backed by an in-memory store and a scripted
// completion client.
func testApp(t *testing.T, todos repository.TodoRepo, fake *testutil.FakeLLMClient) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.LLM.APIKey = "sk-test"
	cfg.Export.Dir = t.TempDir()

	company, err := intelligence.NewCompanyService(fake, cfg.LLM, nil)
	require.NoError(t, err)

	return &App{
		Config:  cfg,
		Logger:  zap.NewNop(),
		Todos:   todos,
		Company: company,
		Now:     func() time.Time { return testNow },
	}
}

var ansiRe = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// executeCmd runs a cobra command and captures stdout/stderr with styling
// removed.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return ansiRe.ReplaceAllString(buf.String(), ""), err
}

func financialsText() string {
	return testutil.MustJSON(testutil.NewTestFinancials())
}

// --- todo ---

func TestTodoCmd_Lifecycle(t *testing.T) {
	store := testutil.NewMemoryTodoStore()
	app := testApp(t, store, testutil.NewFakeLLMClient(""))

	out, err := executeCmd(t, app, "todo", "add", "Buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "Added [ ] Buy milk")

	_, err = executeCmd(t, app, "todo", "add", "Call bank")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "todo", "done", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Buy milk")

	out, err = executeCmd(t, app, "todo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Call bank")
	assert.Contains(t, out, "1 remaining, 1 done")

	out, err = executeCmd(t, app, "todo", "undo", "#1")
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] Buy milk")

	out, err = executeCmd(t, app, "todo", "rm", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted Call bank")

	todos, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.False(t, todos[0].Completed)
}

func TestTodoCmd_DoneIsIdempotent(t *testing.T) {
	store := testutil.NewMemoryTodoStore(testutil.NewTestTodo("Ship it", testutil.WithCompleted()))
	app := testApp(t, store, testutil.NewFakeLLMClient(""))

	out, err := executeCmd(t, app, "todo", "done", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] Ship it")
	assert.Equal(t, 0, store.CallCount("set_completed"))
}

func TestTodoCmd_RejectsBlankTitle(t *testing.T) {
	store := testutil.NewMemoryTodoStore()
	app := testApp(t, store, testutil.NewFakeLLMClient(""))

	_, err := executeCmd(t, app, "todo", "add", "   ")
	require.Error(t, err)
	assert.Equal(t, 0, store.CallCount("insert"))
}

func TestTodoCmd_EmptyList(t *testing.T) {
	app := testApp(t, testutil.NewMemoryTodoStore(), testutil.NewFakeLLMClient(""))

	out, err := executeCmd(t, app, "todo", "ls")
	require.NoError(t, err)
	assert.Contains(t, out, "No todos yet")
}

func TestTodoCmd_UnknownRef(t *testing.T) {
	app := testApp(t, testutil.NewMemoryTodoStore(testutil.NewTestTodo("Only")), testutil.NewFakeLLMClient(""))

	_, err := executeCmd(t, app, "todo", "done", "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todo not found")
}

func TestTodoCmd_StoreFailure(t *testing.T) {
	store := testutil.NewMemoryTodoStore()
	store.Fail("list", errors.New("connection refused"))
	app := testApp(t, store, testutil.NewFakeLLMClient(""))

	_, err := executeCmd(t, app, "todo", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestTodoCmd_NoStore(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(""))

	_, err := executeCmd(t, app, "todo", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todo store is not configured")
}

// --- resolveTodoID ---

func TestResolveTodoID(t *testing.T) {
	list := []domain.Todo{
		{ID: "aaaa1111-0000", Title: "First"},
		{ID: "aaaa2222-0000", Title: "Second"},
		{ID: "bbbb3333-0000", Title: "Third"},
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"position", "2", "aaaa2222-0000", ""},
		{"hash position", "#3", "bbbb3333-0000", ""},
		{"full id", "aaaa1111-0000", "aaaa1111-0000", ""},
		{"unique prefix", "bbbb", "bbbb3333-0000", ""},
		{"ambiguous prefix", "aaaa", "", "ambiguous"},
		{"out of range", "9", "", "not found"},
		{"blank", "  ", "", "required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTodoID(list, tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// --- research ---

func TestResearchCmd_Structured(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(financialsText()))

	out, err := executeCmd(t, app, "research", "Apple")
	require.NoError(t, err)
	assert.Contains(t, out, "Apple")
	assert.Contains(t, out, "Revenue Trend")
	assert.Contains(t, out, "Net Profit")
}

func TestResearchCmd_JSON(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(financialsText()))

	out, err := executeCmd(t, app, "research", "Apple", "--json")
	require.NoError(t, err)

	var got struct {
		Financials map[string]any `json:"financials"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Public", got.Financials["dataAvailability"])
	assert.Contains(t, got.Financials, "revenue")
}

func TestResearchCmd_FreeText(t *testing.T) {
	fake := testutil.NewFakeLLMClient("Apple designs phones.")
	app := testApp(t, nil, fake)
	app.Config.LLM.Variant = string(intelligence.VariantFreeText)
	company, err := intelligence.NewCompanyService(fake, app.Config.LLM, nil)
	require.NoError(t, err)
	app.Company = company

	out, err := executeCmd(t, app, "research", "Apple", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"Apple designs phones."}`, out)
}

func TestResearchCmd_RequiresNameWhenNotInteractive(t *testing.T) {
	fake := testutil.NewFakeLLMClient(financialsText())
	app := testApp(t, nil, fake)

	_, err := executeCmd(t, app, "research")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company name is required")
	assert.Equal(t, 0, fake.CallCount())
}

func TestResearchCmd_MissingKey(t *testing.T) {
	fake := testutil.NewFakeLLMClient(financialsText())
	app := testApp(t, nil, fake)
	company, err := intelligence.NewCompanyService(fake, llm.DefaultConfig(), nil)
	require.NoError(t, err)
	app.Company = company

	_, err = executeCmd(t, app, "research", "Apple")
	require.ErrorIs(t, err, intelligence.ErrConfiguration)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Equal(t, 0, fake.CallCount())
}

func TestResearchCmd_UpstreamFailure(t *testing.T) {
	fake := testutil.NewFakeLLMClient("")
	fake.Err = errors.New("rate limited")
	app := testApp(t, nil, fake)

	_, err := executeCmd(t, app, "research", "Apple")
	require.Error(t, err)
	var uerr *intelligence.UpstreamError
	require.ErrorAs(t, err, &uerr)
	assert.Contains(t, err.Error(), "failed to fetch company information")
}

// --- export ---

func TestExportCmd_WritesMarkdown(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(financialsText()))

	out, err := executeCmd(t, app, "export", "Apple")
	require.NoError(t, err)

	path := filepath.Join(app.Config.Export.Dir, "Apple-financials.md")
	assert.Contains(t, out, "Wrote "+path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# APPLE"))
	assert.Contains(t, string(data), "## Revenue (Millions USD)")
}

func TestExportCmd_HTMLToFlagDir(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(financialsText()))
	dir := t.TempDir()

	_, err := executeCmd(t, app, "export", "Apple", "--to", dir, "--format", "html")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "Apple-financials.html"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<table>")
}

func TestExportCmd_BadFormat(t *testing.T) {
	fake := testutil.NewFakeLLMClient(financialsText())
	app := testApp(t, nil, fake)

	_, err := executeCmd(t, app, "export", "Apple", "--format", "pdf")
	require.Error(t, err)
	assert.Equal(t, 0, fake.CallCount())
}

// --- config ---

func TestConfigCmd_ShowRedactsKey(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(""))

	out, err := executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "SETTING")
	assert.NotContains(t, out, "sk-test")
}

func TestConfigCmd_Init(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(""))
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := executeCmd(t, app, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, app.Config.Server.Addr, loaded.Server.Addr)

	_, err = executeCmd(t, app, "--config", path, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCmd(t, app, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}

// --- connect ---

func TestSetup_ConnectModes(t *testing.T) {
	var modes []ConnectMode
	app := testApp(t, testutil.NewMemoryTodoStore(), testutil.NewFakeLLMClient(""))
	app.Connect = func(ctx context.Context, a *App, mode ConnectMode) (func(), error) {
		modes = append(modes, mode)
		return func() {}, nil
	}

	_, err := executeCmd(t, app, "todo", "list")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "--remote", "http://localhost:9", "todo", "list")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "config", "show")
	require.NoError(t, err)

	assert.Equal(t, []ConnectMode{ConnectLocal, ConnectRemote}, modes)
}

func TestSetup_ConnectError(t *testing.T) {
	app := testApp(t, nil, testutil.NewFakeLLMClient(""))
	app.Connect = func(context.Context, *App, ConnectMode) (func(), error) {
		return nil, errors.New("no such database")
	}

	_, err := executeCmd(t, app, "todo", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting: no such database")
}

// --- serve ---

func TestRunServer_ServesUntilCancelled(t *testing.T) {
	app := testApp(t, testutil.NewMemoryTodoStore(testutil.NewTestTodo("Served")), testutil.NewFakeLLMClient(""))
	app.Config.Server.ShutdownTimeout = time.Second

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServer(ctx, app, ln) }()

	base := "http://" + ln.Addr().String()
	resp, err := http.Get(base + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/api/todos")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "Served")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
