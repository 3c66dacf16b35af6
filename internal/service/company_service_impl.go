package service

import (
	"context"
	"time"

	"github.com/alexanderramin/brieflist/internal/intelligence"
)

type observedCompanyService struct {
	inner    intelligence.CompanyService
	observer UseCaseObserver
}

// NewObservedCompanyService reports every lookup made through inner as a
// use-case event.
func NewObservedCompanyService(inner intelligence.CompanyService, observers ...UseCaseObserver) intelligence.CompanyService {
	return &observedCompanyService{inner: inner, observer: useCaseObserverOrNoop(observers)}
}

func (s *observedCompanyService) Ready() error { return s.inner.Ready() }

func (s *observedCompanyService) Lookup(ctx context.Context, companyName string) (res *intelligence.CompanyResult, err error) {
	fields := map[string]any{"company": companyName}
	defer observe(ctx, s.observer, "company-lookup", time.Now(), fields, &err)

	res, err = s.inner.Lookup(ctx, companyName)
	if res != nil {
		fields["variant"] = string(res.Variant)
	}
	return res, err
}
