package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/report"
	"github.com/charmbracelet/lipgloss"
)

const chartBarWidth = 24

// FormatCompany renders a lookup result: the summary box followed by
// revenue and profit charts, or an availability notice when the figures
// are missing.
func FormatCompany(company string, res *intelligence.CompanyResult, width int) string {
	if res == nil {
		return ""
	}
	if res.Variant == intelligence.VariantFreeText || res.Financials == nil {
		return RenderBox(company, RenderMarkdown(res.Summary, width))
	}

	p := res.Financials
	var b strings.Builder
	b.WriteString(RenderBox(company, formatSummary(p)))
	b.WriteString("\n\n")

	if !report.HasCharts(p) {
		b.WriteString(formatUnavailable(p))
		return b.String()
	}
	b.WriteString(FormatChart(report.DeriveChart("Revenue Trend", p.Revenue), StyleGreen))
	b.WriteString("\n")
	b.WriteString(FormatChart(report.DeriveChart("Net Profit", p.Profit), lipgloss.NewStyle().Foreground(ColorNavy)))
	return b.String()
}

func formatSummary(p *domain.FinancialPayload) string {
	var b strings.Builder
	b.WriteString(StyleFg.Render(p.Summary))
	b.WriteString("\n\n")
	b.WriteString(AvailabilityBadge(p.DataAvailability))
	if p.LastUpdated != "" {
		b.WriteString(Dim("  Last updated: " + p.LastUpdated))
	}
	return b.String()
}

func formatUnavailable(p *domain.FinancialPayload) string {
	var b strings.Builder
	b.WriteString(Header("Financial Data Not Available"))
	b.WriteString("\n")
	b.WriteString("Financial data is not publicly available for this company.\n")
	b.WriteString(fmt.Sprintf("Data Availability: %s\n", availabilityText(p.DataAvailability)))
	if p.Revenue != nil && p.Revenue.Source != nil {
		b.WriteString(Dim("Source: "+*p.Revenue.Source) + "\n")
	}
	return b.String()
}

func availabilityText(a domain.DataAvailability) string {
	if a == "" {
		return "Unknown"
	}
	return string(a)
}

// FormatChart renders a chart as labelled horizontal bars with amounts and
// period-over-period change.
func FormatChart(c report.Chart, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(Header(c.Title + " (Millions USD)"))
	b.WriteString("\n")
	if len(c.Bars) == 0 {
		b.WriteString(Dim(c.Note) + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(c.Bars))
	for _, bar := range c.Bars {
		barStyle := style
		if bar.Value < 0 {
			barStyle = StyleRed
		}
		rows = append(rows, []string{
			bar.Period,
			RenderBar(bar.Ratio, chartBarWidth, barStyle),
			report.FormatMillions(bar.Value),
			changeText(bar),
		})
	}
	b.WriteString(RenderTable([]string{"PERIOD", "", "AMOUNT", "CHANGE"}, rows, 2, 3))
	if c.Source != "" {
		b.WriteString(Dim("Source: "+c.Source) + "\n")
	}
	return b.String()
}

func changeText(bar report.Bar) string {
	if bar.Change == nil {
		return Dim("--")
	}
	s := report.FormatChange(bar.Change)
	if bar.Change.IsNegative() {
		return StyleRed.Render(s)
	}
	return StyleGreen.Render(s)
}
