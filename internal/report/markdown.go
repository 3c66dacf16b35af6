package report

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/intelligence"
)

// FileName returns the report file name for company, e.g.
// "Acme Corp-financials.md".
func FileName(company, ext string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(company))
	return name + "-financials." + ext
}

// Markdown renders the lookup result as a markdown document titled with
// the upper-cased company name.
func Markdown(company string, res *intelligence.CompanyResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", strings.ToUpper(strings.TrimSpace(company)))

	if res == nil {
		return b.String()
	}
	if res.Variant == intelligence.VariantFreeText || res.Financials == nil {
		b.WriteString(strings.TrimSpace(res.Summary))
		b.WriteString("\n")
		return b.String()
	}

	p := res.Financials
	b.WriteString(strings.TrimSpace(p.Summary))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "- Data availability: %s\n", availabilityLabel(p.DataAvailability))
	if p.LastUpdated != "" {
		fmt.Fprintf(&b, "- Last updated: %s\n", p.LastUpdated)
	}

	if !HasCharts(p) {
		b.WriteString("\n## Financial Data Not Available\n\n")
		b.WriteString("Financial data is not publicly available for this company.\n")
		if p.Revenue != nil && p.Revenue.Source != nil {
			fmt.Fprintf(&b, "\nSource: %s\n", *p.Revenue.Source)
		}
		return b.String()
	}

	writeSeriesTable(&b, DeriveChart("Revenue", p.Revenue))
	writeSeriesTable(&b, DeriveChart("Net Profit", p.Profit))
	return b.String()
}

func writeSeriesTable(b *strings.Builder, c Chart) {
	fmt.Fprintf(b, "\n## %s (Millions USD)\n\n", c.Title)
	if len(c.Bars) == 0 {
		b.WriteString(c.Note + "\n")
		return
	}
	b.WriteString("| Period | Amount | Change |\n")
	b.WriteString("|---|---:|---:|\n")
	for _, bar := range c.Bars {
		change := FormatChange(bar.Change)
		if change == "" {
			change = "-"
		}
		fmt.Fprintf(b, "| %s | %s | %s |\n", escapeCell(bar.Period), FormatMillions(bar.Value), change)
	}
	if c.Source != "" {
		fmt.Fprintf(b, "\nSource: %s\n", c.Source)
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func availabilityLabel(a domain.DataAvailability) string {
	if a == "" {
		return "Unknown"
	}
	return string(a)
}
