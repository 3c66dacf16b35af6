package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"
)

// Role tags a message in a completion request.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged entry of the prompt.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest holds the parameters for a completion call.
type CompletionRequest struct {
	Task        TaskType
	Messages    []Message
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// CompletionResponse holds the result of a completion call. Text may be empty
// when the provider answered without content; callers decide what that means.
type CompletionResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client provides access to a text-completion provider.
type Client interface {
	// Complete sends the messages and returns the generated text. It makes
	// exactly one attempt.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Available checks whether the provider is reachable.
	Available(ctx context.Context) bool
}

// New builds the Client for cfg.Provider.
func New(ctx context.Context, cfg Config, observer Observer) (Client, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return NewOpenAIClient(cfg, observer), nil
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// resolveParams returns the temperature and token limit for req, applying
// task defaults where the request leaves them unset.
func resolveParams(cfg Config, req CompletionRequest) (float64, int) {
	taskCfg := cfg.Tasks[req.Task]
	temp := taskCfg.Temperature
	if req.Temperature != nil {
		temp = *req.Temperature
	}
	maxTok := taskCfg.MaxTokens
	if req.MaxTokens != nil {
		maxTok = *req.MaxTokens
	}
	return temp, maxTok
}

// withTaskTimeout bounds ctx by the task's configured timeout.
func withTaskTimeout(ctx context.Context, cfg Config, task TaskType) (context.Context, context.CancelFunc) {
	timeoutMs := cfg.TaskTimeout(task)
	if timeoutMs <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
}

// classifyError maps a raw transport error onto the package sentinels.
func classifyError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// ErrorCode returns a short machine-readable code for err, used in call
// events and surfaced to callers when the provider gave none.
func ErrorCode(err error) string {
	var perr *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrInvalidOutput):
		return "INVALID_OUTPUT"
	case errors.As(err, &perr):
		if perr.Code != "" {
			return perr.Code
		}
		return fmt.Sprintf("HTTP_%d", perr.StatusCode)
	default:
		return "UNKNOWN"
	}
}

func callEvent(cfg Config, task TaskType, model string, start time.Time, err error) CallEvent {
	return CallEvent{
		Task:      task,
		Provider:  cfg.Provider,
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: ErrorCode(err),
	}
}
