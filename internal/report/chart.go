// Package report derives presentation data from a company lookup: chart
// bars with period-over-period change, money display, and a markdown or
// HTML report document.
package report

import (
	"math"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/shopspring/decimal"
)

// Bar is one period of a chart.
type Bar struct {
	Period string
	Value  float64
	// Ratio is |Value| scaled against the largest absolute value in the
	// chart, in [0, 1].
	Ratio float64
	// Change is the percentage change from the previous period, rounded to
	// one decimal. Nil for the first period or when the previous value is zero.
	Change *decimal.Decimal
}

// Chart is a renderable series.
type Chart struct {
	Title  string
	Source string
	Bars   []Bar
	// Note explains why Bars is empty.
	Note string
}

const (
	noteUnavailable = "Not publicly reported"
	noteMismatch    = "Figures and periods do not line up; chart omitted"
)

// DeriveChart builds a chart for s. An absent series or one whose data and
// period lengths disagree yields a chart with a Note and no bars.
func DeriveChart(title string, s *domain.Series) Chart {
	c := Chart{Title: title}
	if s != nil && s.Source != nil {
		c.Source = *s.Source
	}
	if !s.HasData() || len(s.Data) == 0 {
		c.Note = noteUnavailable
		return c
	}
	if s.Check() != nil {
		c.Note = noteMismatch
		return c
	}

	var maxAbs float64
	for _, v := range s.Data {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}

	c.Bars = make([]Bar, len(s.Data))
	for i, v := range s.Data {
		b := Bar{Period: s.Period[i], Value: v}
		if maxAbs > 0 {
			b.Ratio = math.Abs(v) / maxAbs
		}
		if i > 0 {
			b.Change = percentChange(s.Data[i-1], v)
		}
		c.Bars[i] = b
	}
	return c
}

// percentChange returns (cur-prev)/|prev| as a percentage.
func percentChange(prev, cur float64) *decimal.Decimal {
	if prev == 0 {
		return nil
	}
	p := decimal.NewFromFloat(prev)
	ch := decimal.NewFromFloat(cur).Sub(p).Div(p.Abs()).Mul(decimal.NewFromInt(100)).Round(1)
	return &ch
}

// HasCharts reports whether both series carry figures, which is when the
// financial section shows charts instead of the availability notice.
func HasCharts(p *domain.FinancialPayload) bool {
	return p != nil && p.Revenue.HasData() && p.Profit.HasData() && p.Revenue.Period != nil
}

// FormatChange renders a change such as "+12.5%" or "-3.0%".
func FormatChange(ch *decimal.Decimal) string {
	if ch == nil {
		return ""
	}
	s := ch.StringFixed(1) + "%"
	if ch.IsPositive() {
		return "+" + s
	}
	return s
}
