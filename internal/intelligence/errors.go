package intelligence

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates the completion credential is missing.
	ErrConfiguration = errors.New("completion provider credential not configured")
	// ErrValidation indicates the caller supplied an unusable request.
	ErrValidation = errors.New("company name is required")
	// ErrUpstream indicates the completion call itself failed.
	ErrUpstream = errors.New("completion call failed")
	// ErrEmptyResponse indicates the provider answered without content.
	ErrEmptyResponse = errors.New("no response from completion provider")
	// ErrFormat indicates content was returned but is not a valid payload.
	ErrFormat = errors.New("invalid response format from completion provider")
)

// UpstreamError carries the provider's own description of a failed call.
// It matches both ErrUpstream and the underlying llm error with errors.Is.
type UpstreamError struct {
	Message string
	Type    string
	Code    string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%v: %s (%s)", ErrUpstream, e.Message, e.Code)
	}
	return fmt.Sprintf("%v: %s", ErrUpstream, e.Message)
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Err}
}
