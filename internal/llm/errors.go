package llm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the completion provider is unreachable.
	ErrUnavailable = errors.New("completion provider unavailable")
	// ErrTimeout indicates the completion request exceeded the configured timeout.
	ErrTimeout = errors.New("completion request timed out")
	// ErrInvalidOutput indicates the completion text could not be decoded
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid completion output format")
	// ErrUnknownProvider indicates the configured provider name is not supported.
	ErrUnknownProvider = errors.New("unknown completion provider")
)

// ProviderError carries the error reported by the provider itself
// (HTTP status plus its message, type and code when present).
type ProviderError struct {
	StatusCode int
	Message    string
	Type       string
	Code       string
}

func (e *ProviderError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("provider returned status %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.StatusCode, e.Message)
}
