package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/brieflist/internal/llm"
)

// FakeLLMClient is a scripted llm.Client that records every request.
type FakeLLMClient struct {
	mu       sync.Mutex
	Text     string
	Err      error
	Requests []llm.CompletionRequest
	// Block, when non-nil, is received from before answering.
	Block chan struct{}
}

// NewFakeLLMClient returns a client that answers every call with text.
func NewFakeLLMClient(text string) *FakeLLMClient {
	return &FakeLLMClient{Text: text}
}

func (f *FakeLLMClient) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	f.Requests = append(f.Requests, req)
	block := f.Block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	return &llm.CompletionResponse{Text: f.Text, Model: "fake"}, nil
}

func (f *FakeLLMClient) Available(context.Context) bool { return true }

// CallCount returns the number of Complete calls made so far.
func (f *FakeLLMClient) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// LastRequest returns the most recent request. It panics if none was made.
func (f *FakeLLMClient) LastRequest() llm.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Requests[len(f.Requests)-1]
}
