package viewmodel

import (
	"strings"

	"github.com/alexanderramin/brieflist/internal/intelligence"
)

// Ticket identifies one lookup started with ResearchPanel.Begin.
type Ticket struct {
	gen     uint64
	Company string
}

// ResearchPanel tracks the company lookup shown to the user. Only the
// outcome of the most recent Begin is applied; earlier lookups that finish
// late are dropped.
type ResearchPanel struct {
	gen     uint64
	company string
	loading bool
	result  *intelligence.CompanyResult
	// resultFor is the company the current result belongs to.
	resultFor string
	err       error
}

// Begin marks a lookup for name as in flight and returns its ticket.
// The previous result stays visible while loading.
func (p *ResearchPanel) Begin(name string) Ticket {
	p.gen++
	p.company = strings.TrimSpace(name)
	p.loading = true
	p.err = nil
	return Ticket{gen: p.gen, Company: p.company}
}

// Resolve applies the outcome of the lookup identified by t. It returns
// false, changing nothing, when a newer lookup has started since. On error
// the previous result is kept.
func (p *ResearchPanel) Resolve(t Ticket, result *intelligence.CompanyResult, err error) bool {
	if t.gen != p.gen || !p.loading {
		return false
	}
	p.loading = false
	if err != nil {
		p.err = err
		return true
	}
	p.result = result
	p.resultFor = t.Company
	p.err = nil
	return true
}

// Loading reports whether the latest lookup is still outstanding.
func (p *ResearchPanel) Loading() bool { return p.loading }

// Company returns the name of the latest lookup.
func (p *ResearchPanel) Company() string { return p.company }

// Result returns the last successful result, or nil.
func (p *ResearchPanel) Result() *intelligence.CompanyResult { return p.result }

// ResultCompany returns the company name of the result returned by Result.
func (p *ResearchPanel) ResultCompany() string { return p.resultFor }

// Err returns the failure of the latest lookup, if any.
func (p *ResearchPanel) Err() error { return p.err }
