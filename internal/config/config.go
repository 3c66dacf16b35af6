// Package config loads brieflist settings: defaults, then an optional YAML
// file, then environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/brieflist/internal/export"
	"github.com/alexanderramin/brieflist/internal/llm"
	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverREST     = "rest"
)

// Config is the full application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	LLM     llm.Config    `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`
	API     APIConfig     `yaml:"api"`
	Export  ExportConfig  `yaml:"export"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StoreConfig selects the record store. DSN is a file path for sqlite and
// a connection string for postgres; URL, Key and Table apply to rest.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	URL    string `yaml:"url"`
	Key    string `yaml:"key"`
	Table  string `yaml:"table"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// APIConfig points terminal commands at a running server. Empty means
// in-process.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// ExportConfig sets where reports go by default. Dir may be a local path or
// an s3://bucket/prefix URL.
type ExportConfig struct {
	Dir    string          `yaml:"dir"`
	Format string          `yaml:"format"`
	S3     export.S3Config `yaml:"s3"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverSQLite,
			DSN:    defaultSQLitePath(),
			Table:  "todos",
		},
		LLM: llm.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: string(export.FormatMarkdown),
		},
	}
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "brieflist.db"
	}
	return filepath.Join(home, ".brieflist", "brieflist.db")
}

// Load builds the configuration. A missing file at path is not an error;
// an empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies BRIEFLIST_* variables. Values that fail to
// parse are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BRIEFLIST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("BRIEFLIST_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Server.ShutdownTimeout = d
		}
	}

	if v := os.Getenv("BRIEFLIST_STORE_DRIVER"); v != "" {
		c.Store.Driver = strings.ToLower(v)
	}
	if v := os.Getenv("BRIEFLIST_STORE_DSN"); v != "" {
		c.Store.DSN = v
	}
	c.Store.URL = firstEnv(c.Store.URL, "BRIEFLIST_STORE_URL", "SUPABASE_URL")
	c.Store.Key = firstEnv(c.Store.Key, "BRIEFLIST_STORE_KEY", "SUPABASE_KEY")
	if v := os.Getenv("BRIEFLIST_STORE_TABLE"); v != "" {
		c.Store.Table = v
	}

	llm.ApplyEnv(&c.LLM)

	if v := os.Getenv("BRIEFLIST_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("BRIEFLIST_LOG_FORMAT"); v != "" {
		c.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv("BRIEFLIST_API_URL"); v != "" {
		c.API.BaseURL = v
	}

	if v := os.Getenv("BRIEFLIST_EXPORT_DIR"); v != "" {
		c.Export.Dir = v
	}
	if v := os.Getenv("BRIEFLIST_EXPORT_FORMAT"); v != "" {
		c.Export.Format = v
	}
	c.Export.S3.Region = firstEnv(c.Export.S3.Region, "BRIEFLIST_EXPORT_S3_REGION", "AWS_REGION")
	if v := os.Getenv("BRIEFLIST_EXPORT_S3_ENDPOINT"); v != "" {
		c.Export.S3.Endpoint = v
	}
	if v := os.Getenv("BRIEFLIST_EXPORT_S3_PATH_STYLE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Export.S3.PathStyle = b
		}
	}
}

// firstEnv returns the first non-empty variable among names, or current
// when none is set.
func firstEnv(current string, names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return current
}

// Validate checks that the selected store has what it needs.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn: sqlite path is required"))
		}
	case DriverPostgres:
		if c.Store.DSN == "" {
			errs = append(errs, errors.New("store.dsn: postgres connection string is required"))
		}
	case DriverREST:
		if c.Store.URL == "" {
			errs = append(errs, errors.New("store.url: required for the rest driver"))
		}
		if c.Store.Key == "" {
			errs = append(errs, errors.New("store.key: required for the rest driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}
	switch c.LLM.Provider {
	case llm.ProviderOpenAI, llm.ProviderOllama, llm.ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("llm.provider: %w %q", llm.ErrUnknownProvider, c.LLM.Provider))
	}
	switch c.LLM.Variant {
	case "structured", "text":
	default:
		errs = append(errs, fmt.Errorf("llm.variant: must be structured or text, got %q", c.LLM.Variant))
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown_timeout: must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Save writes the configuration as YAML, creating parent directories.
// The completion API key and store key are omitted.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	redacted := *c
	redacted.LLM.APIKey = ""
	redacted.Store.Key = ""
	data, err := yaml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// PathFromEnv returns BRIEFLIST_CONFIG, or ~/.brieflist/config.yaml.
func PathFromEnv() string {
	if v := os.Getenv("BRIEFLIST_CONFIG"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".brieflist", "config.yaml")
}

// Redacted returns s with all but the last four characters masked.
func Redacted(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

// Summary lists the effective settings for display. Secrets are masked.
func (c *Config) Summary() [][2]string {
	return [][2]string{
		{"server.addr", c.Server.Addr},
		{"server.shutdown_timeout", c.Server.ShutdownTimeout.String()},
		{"store.driver", c.Store.Driver},
		{"store.dsn", c.storeTarget()},
		{"llm.provider", string(c.LLM.Provider)},
		{"llm.model", c.LLM.EffectiveModel()},
		{"llm.api_key", Redacted(c.LLM.APIKey)},
		{"llm.variant", c.LLM.Variant},
		{"llm.strict_payload", strconv.FormatBool(c.LLM.StrictPayload)},
		{"logging.level", c.Logging.Level},
		{"api.base_url", c.API.BaseURL},
		{"export.dir", c.Export.Dir},
	}
}

func (c *Config) storeTarget() string {
	switch c.Store.Driver {
	case DriverREST:
		return c.Store.URL
	case DriverPostgres:
		return "(connection string set)"
	default:
		return c.Store.DSN
	}
}
