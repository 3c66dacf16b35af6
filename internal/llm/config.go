package llm

import (
	"os"
	"strconv"
	"strings"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// TaskType identifies the kind of completion being requested.
type TaskType string

const (
	TaskFinancials TaskType = "financials"
	TaskSummary    TaskType = "summary"
)

// TaskConfig holds per-task completion parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// Config holds all configuration for the completion subsystem.
type Config struct {
	Provider      Provider `yaml:"provider"`
	APIKey        string   `yaml:"api_key"`
	Endpoint      string   `yaml:"endpoint"`
	Model         string   `yaml:"model"`
	TimeoutMs     int      `yaml:"timeout_ms"`
	LogCalls      bool     `yaml:"log_calls"`
	Variant       string   `yaml:"variant"`
	StrictPayload bool     `yaml:"strict_payload"`

	Tasks map[TaskType]TaskConfig `yaml:"-"`
}

// DefaultConfig returns a Config with the defaults used by the company
// research endpoint. No API key is set.
func DefaultConfig() Config {
	return Config{
		Provider:  ProviderOpenAI,
		TimeoutMs: 30000,
		Variant:   "structured",
		Tasks: map[TaskType]TaskConfig{
			TaskFinancials: {Temperature: 0.3, MaxTokens: 1000},
			TaskSummary:    {Temperature: 0.7, MaxTokens: 500},
		},
	}
}

// LoadConfig reads configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() Config {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays BRIEFLIST_LLM_* environment variables onto cfg. Values
// that fail to parse are ignored. When no key is configured the provider's
// conventional variable (OPENAI_API_KEY, GEMINI_API_KEY) is used.
func ApplyEnv(cfg *Config) {
	if cfg.Tasks == nil {
		cfg.Tasks = DefaultConfig().Tasks
	}
	if v := os.Getenv("BRIEFLIST_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	if v := os.Getenv("BRIEFLIST_LLM_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("BRIEFLIST_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("BRIEFLIST_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("BRIEFLIST_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("BRIEFLIST_LLM_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("BRIEFLIST_LLM_VARIANT"); v != "" {
		cfg.Variant = strings.ToLower(v)
	}
	if v := os.Getenv("BRIEFLIST_LLM_STRICT_PAYLOAD"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.StrictPayload = b
		}
	}
	applyTaskTimeoutEnv(cfg, TaskFinancials, "BRIEFLIST_LLM_FINANCIALS_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskSummary, "BRIEFLIST_LLM_SUMMARY_TIMEOUT_MS")

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case ProviderGemini:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}
}

// CredentialConfigured reports whether the provider has what it needs to
// authenticate. Ollama runs locally without a key.
func (c Config) CredentialConfigured() bool {
	if c.Provider == ProviderOllama {
		return true
	}
	return c.APIKey != ""
}

// EffectiveEndpoint returns the configured endpoint or the provider default.
func (c Config) EffectiveEndpoint() string {
	if c.Endpoint != "" {
		return strings.TrimSuffix(c.Endpoint, "/")
	}
	switch c.Provider {
	case ProviderOllama:
		return "http://localhost:11434"
	case ProviderGemini:
		return ""
	default:
		return "https://api.openai.com/v1"
	}
}

// EffectiveModel returns the configured model or the provider default.
func (c Config) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderOllama:
		return "llama3.2"
	case ProviderGemini:
		return "gemini-2.0-flash"
	default:
		return "gpt-3.5-turbo"
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c Config) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *Config, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
