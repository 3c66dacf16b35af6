package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiClient implements Client on top of the Google GenAI SDK.
type geminiClient struct {
	cfg      Config
	client   *genai.Client
	observer Observer
}

// NewGeminiClient creates a Client backed by the Gemini API. A non-empty
// cfg.Endpoint replaces the SDK's base URL.
func NewGeminiClient(ctx context.Context, cfg Config, observer Observer) (Client, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if ep := cfg.EffectiveEndpoint(); ep != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: ep + "/"}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	temp, maxTok := resolveParams(c.cfg, req)
	model := c.cfg.EffectiveModel()

	ctx, cancel := withTaskTimeout(ctx, c.cfg, req.Task)
	defer cancel()

	gcfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(temp)),
	}
	if maxTok > 0 {
		gcfg.MaxOutputTokens = int32(maxTok)
	}
	var contents []*genai.Content
	var system []*genai.Part
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, &genai.Part{Text: m.Content})
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		gcfg.SystemInstruction = &genai.Content{Parts: system}
	}

	resp, err := c.client.Models.GenerateContent(ctx, model, contents, gcfg)
	err = classifyError(ctx, geminiError(err))
	c.observer.OnCallComplete(callEvent(c.cfg, req.Task, model, start, err))
	if err != nil {
		return nil, err
	}

	out := &CompletionResponse{
		Model:     model,
		LatencyMs: time.Since(start).Milliseconds(),
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	out.Text = candidateText(resp)
	return out, nil
}

// Available reports whether a key is configured. The SDK offers no cheap
// unauthenticated probe.
func (c *geminiClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}

// candidateText joins the text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// geminiError converts SDK API errors into ProviderError.
func geminiError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{StatusCode: apiErr.Code, Message: apiErr.Message, Type: apiErr.Status}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &ProviderError{StatusCode: apiErrPtr.Code, Message: apiErrPtr.Message, Type: apiErrPtr.Status}
	}
	return err
}
