package intelligence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/llm"
)

// ParseFinancials decodes completion text as a FinancialPayload. The text
// must be exactly one JSON object; missing keys are passed through as
// absent. With strict set, ValidateFinancials also runs. Every failure
// wraps ErrFormat.
func ParseFinancials(text string, strict bool) (*domain.FinancialPayload, error) {
	var validator llm.SchemaValidator[domain.FinancialPayload]
	if strict {
		validator = ValidateFinancials
	}
	payload, err := llm.DecodeStrict(text, validator)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return &payload, nil
}

// ValidateFinancials enforces the payload invariants the model is asked to
// honour: series data paired with equally long periods, a known
// availability value and a non-empty summary.
func ValidateFinancials(p domain.FinancialPayload) error {
	var errs []error
	if err := p.Revenue.Check(); err != nil {
		errs = append(errs, fmt.Errorf("revenue: %w", err))
	}
	if err := p.Profit.Check(); err != nil {
		errs = append(errs, fmt.Errorf("profit: %w", err))
	}
	if !domain.ValidAvailability(p.DataAvailability) {
		errs = append(errs, fmt.Errorf("dataAvailability %q is not one of Public, Private, Limited", p.DataAvailability))
	}
	if strings.TrimSpace(p.Summary) == "" {
		errs = append(errs, fmt.Errorf("summary is required"))
	}
	return errors.Join(errs...)
}
