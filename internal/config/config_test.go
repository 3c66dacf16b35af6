package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/brieflist/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment
// cannot leak into assertions.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"BRIEFLIST_ADDR", "BRIEFLIST_SHUTDOWN_TIMEOUT",
		"BRIEFLIST_STORE_DRIVER", "BRIEFLIST_STORE_DSN", "BRIEFLIST_STORE_URL",
		"BRIEFLIST_STORE_KEY", "BRIEFLIST_STORE_TABLE", "SUPABASE_URL", "SUPABASE_KEY",
		"BRIEFLIST_LLM_PROVIDER", "BRIEFLIST_LLM_API_KEY", "BRIEFLIST_LLM_ENDPOINT",
		"BRIEFLIST_LLM_MODEL", "BRIEFLIST_LLM_TIMEOUT_MS", "BRIEFLIST_LLM_LOG_CALLS",
		"BRIEFLIST_LLM_VARIANT", "BRIEFLIST_LLM_STRICT_PAYLOAD",
		"BRIEFLIST_LLM_FINANCIALS_TIMEOUT_MS", "BRIEFLIST_LLM_SUMMARY_TIMEOUT_MS",
		"OPENAI_API_KEY", "GEMINI_API_KEY",
		"BRIEFLIST_LOG_LEVEL", "BRIEFLIST_LOG_FORMAT", "BRIEFLIST_API_URL", "BRIEFLIST_CONFIG",
		"BRIEFLIST_EXPORT_DIR", "BRIEFLIST_EXPORT_FORMAT", "BRIEFLIST_EXPORT_S3_REGION", "AWS_REGION",
		"BRIEFLIST_EXPORT_S3_ENDPOINT", "BRIEFLIST_EXPORT_S3_PATH_STYLE",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.NotEmpty(t, cfg.Store.DSN)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "structured", cfg.LLM.Variant)
	assert.False(t, cfg.LLM.StrictPayload)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  addr: 127.0.0.1:9000
  shutdown_timeout: 3s
store:
  driver: rest
  url: https://example.supabase.co
  key: anon
  table: tasks
llm:
  provider: ollama
  model: llama3.2
  variant: text
  strict_payload: true
logging:
  level: debug
  format: console
api:
  base_url: http://localhost:8080
export:
  dir: s3://reports/brieflist
  format: html
  s3:
    endpoint: http://localhost:9000
    path_style: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, StoreConfig{Driver: DriverREST, DSN: cfg.Store.DSN, URL: "https://example.supabase.co", Key: "anon", Table: "tasks"}, cfg.Store)
	assert.Equal(t, llm.ProviderOllama, cfg.LLM.Provider)
	assert.Equal(t, "llama3.2", cfg.LLM.Model)
	assert.Equal(t, "text", cfg.LLM.Variant)
	assert.True(t, cfg.LLM.StrictPayload)
	assert.NotEmpty(t, cfg.LLM.Tasks, "task defaults survive the file")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "s3://reports/brieflist", cfg.Export.Dir)
	assert.Equal(t, "html", cfg.Export.Format)
	assert.Equal(t, "http://localhost:9000", cfg.Export.S3.Endpoint)
	assert.True(t, cfg.Export.S3.PathStyle)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "server:\n  addr: :7000\nllm:\n  variant: text\n")
	t.Setenv("BRIEFLIST_ADDR", ":9999")
	t.Setenv("BRIEFLIST_LLM_VARIANT", "structured")
	t.Setenv("BRIEFLIST_LOG_LEVEL", "WARN")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "structured", cfg.LLM.Variant)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_SupabaseFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIEFLIST_STORE_DRIVER", "rest")
	t.Setenv("SUPABASE_URL", "https://abc.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://abc.supabase.co", cfg.Store.URL)
	assert.Equal(t, "anon-key", cfg.Store.Key)

	t.Setenv("BRIEFLIST_STORE_URL", "https://primary.example")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://primary.example", cfg.Store.URL)
}

func TestLoad_OpenAIKeyFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
	assert.True(t, cfg.LLM.CredentialConfigured())
}

func TestLoad_InvalidEnvValuesIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("BRIEFLIST_SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("BRIEFLIST_LLM_STRICT_PAYLOAD", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.LLM.StrictPayload)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "server: [unclosed")

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Store.Driver = "mongo" }, "unknown driver"},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = DriverPostgres; c.Store.DSN = "" }, "postgres connection string"},
		{"rest without url", func(c *Config) { c.Store.Driver = DriverREST; c.Store.Key = "k" }, "store.url"},
		{"rest without key", func(c *Config) { c.Store.Driver = DriverREST; c.Store.URL = "https://x" }, "store.key"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "claude" }, "llm.provider"},
		{"unknown variant", func(c *Config) { c.LLM.Variant = "pdf" }, "llm.variant"},
		{"unknown export format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "shutdown_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSave_OmitsSecrets(t *testing.T) {
	clearEnv(t)
	cfg := DefaultConfig()
	cfg.LLM.APIKey = "sk-secret"
	cfg.Store.Key = "store-secret"
	cfg.Server.Addr = ":9100"
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, cfg.Save(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-secret")
	assert.NotContains(t, string(data), "store-secret")
	assert.Equal(t, "sk-secret", cfg.LLM.APIKey, "receiver is not modified")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", loaded.Server.Addr)
}

func TestRedacted(t *testing.T) {
	assert.Equal(t, "", Redacted(""))
	assert.Equal(t, "***", Redacted("abc"))
	assert.Equal(t, "*****6789", Redacted("sk-a56789"))
}

func TestSummary_MasksKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LLM.APIKey = "sk-secret-value"

	for _, kv := range cfg.Summary() {
		assert.NotContains(t, kv[1], "sk-secret")
	}
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv("BRIEFLIST_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", PathFromEnv())
}
