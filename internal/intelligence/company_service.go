package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/llm"
	"go.uber.org/zap"
)

// Variant selects the response shape of a company lookup.
type Variant string

const (
	VariantStructured Variant = "structured"
	VariantFreeText   Variant = "text"
)

// ParseVariant maps a configuration value onto a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "structured", "json":
		return VariantStructured, nil
	case "text", "free-text", "freetext", "prose":
		return VariantFreeText, nil
	default:
		return "", fmt.Errorf("unknown lookup variant %q", s)
	}
}

// CompanyResult is a successful lookup. Exactly one of Financials and
// Summary is set, according to Variant.
type CompanyResult struct {
	Variant    Variant                  `json:"variant"`
	Financials *domain.FinancialPayload `json:"financials,omitempty"`
	Summary    string                   `json:"summary,omitempty"`
}

// CompanyService researches a company through the completion provider.
type CompanyService interface {
	// Ready returns ErrConfiguration when the provider credential is
	// missing, so callers can fail before reading any input.
	Ready() error
	// Lookup issues a single completion call for companyName. It fails
	// with ErrConfiguration or ErrValidation before any call is made.
	Lookup(ctx context.Context, companyName string) (*CompanyResult, error)
}

type companyService struct {
	client  llm.Client
	cfg     llm.Config
	variant Variant
	logger  *zap.Logger
}

// NewCompanyService creates a CompanyService. The variant and strict
// payload setting come from cfg.
func NewCompanyService(client llm.Client, cfg llm.Config, logger *zap.Logger) (CompanyService, error) {
	variant, err := ParseVariant(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &companyService{
		client:  client,
		cfg:     cfg,
		variant: variant,
		logger:  logger.Named("company"),
	}, nil
}

func (s *companyService) Ready() error {
	if !s.cfg.CredentialConfigured() {
		return ErrConfiguration
	}
	return nil
}

func (s *companyService) Lookup(ctx context.Context, companyName string) (*CompanyResult, error) {
	if err := s.Ready(); err != nil {
		return nil, err
	}
	if companyName == "" {
		return nil, ErrValidation
	}

	req := s.buildRequest(companyName)
	s.logger.Info("company lookup request",
		zap.String("company", companyName),
		zap.String("variant", string(s.variant)),
		zap.Int("prompt_chars", len(req.Messages[0].Content)+len(req.Messages[1].Content)),
	)
	s.logger.Debug("company lookup prompt",
		zap.String("company", companyName),
		zap.String("system_prompt", req.Messages[0].Content),
		zap.String("user_prompt", req.Messages[1].Content),
	)

	resp, err := s.client.Complete(ctx, req)
	if err != nil {
		uerr := toUpstreamError(err)
		s.logger.Warn("company lookup failed",
			zap.String("company", companyName),
			zap.String("code", uerr.Code),
			zap.Error(err),
		)
		return nil, uerr
	}

	s.logger.Info("company lookup response",
		zap.String("company", companyName),
		zap.String("model", resp.Model),
		zap.Int64("latency_ms", resp.LatencyMs),
		zap.Int("response_chars", len(resp.Text)),
	)
	s.logger.Debug("company lookup raw response",
		zap.String("company", companyName),
		zap.String("raw", resp.Text),
	)

	if strings.TrimSpace(resp.Text) == "" {
		return nil, ErrEmptyResponse
	}

	if s.variant == VariantFreeText {
		return &CompanyResult{Variant: VariantFreeText, Summary: strings.TrimSpace(resp.Text)}, nil
	}

	payload, err := ParseFinancials(resp.Text, s.cfg.StrictPayload)
	if err != nil {
		s.logger.Warn("company lookup returned malformed payload",
			zap.String("company", companyName),
			zap.Error(err),
			zap.String("raw", resp.Text),
		)
		return nil, err
	}
	return &CompanyResult{Variant: VariantStructured, Financials: payload}, nil
}

func (s *companyService) buildRequest(companyName string) llm.CompletionRequest {
	if s.variant == VariantFreeText {
		return llm.CompletionRequest{
			Task: llm.TaskSummary,
			Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: summarySystemPrompt},
				{Role: llm.RoleUser, Content: buildSummaryUserPrompt(companyName)},
			},
		}
	}
	return llm.CompletionRequest{
		Task: llm.TaskFinancials,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: financialsSystemPrompt},
			{Role: llm.RoleUser, Content: buildFinancialsUserPrompt(companyName)},
		},
	}
}

// toUpstreamError attaches whatever detail the provider reported.
func toUpstreamError(err error) *UpstreamError {
	uerr := &UpstreamError{Message: err.Error(), Code: llm.ErrorCode(err), Err: err}
	var perr *llm.ProviderError
	switch {
	case errors.As(err, &perr):
		if perr.Message != "" {
			uerr.Message = perr.Message
		}
		uerr.Type = perr.Type
	case errors.Is(err, llm.ErrTimeout):
		uerr.Message = llm.ErrTimeout.Error()
	case errors.Is(err, context.Canceled):
		uerr.Message = "request canceled"
		uerr.Code = "CANCELED"
	}
	return uerr
}
