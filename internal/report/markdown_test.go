package report

import (
	"strings"
	"testing"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/alexanderramin/brieflist/internal/intelligence"
	"github.com/alexanderramin/brieflist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdown_Structured(t *testing.T) {
	res := &intelligence.CompanyResult{
		Variant:    intelligence.VariantStructured,
		Financials: testutil.NewTestFinancials(),
	}

	out := Markdown("Apple", res)
	assert.True(t, strings.HasPrefix(out, "# APPLE\n"))
	assert.Contains(t, out, "Designs consumer electronics")
	assert.Contains(t, out, "- Data availability: Public")
	assert.Contains(t, out, "- Last updated: 2023-01-15")
	assert.Contains(t, out, "## Revenue (Millions USD)")
	assert.Contains(t, out, "## Net Profit (Millions USD)")
	assert.Contains(t, out, "| 2021 | $365,817.00M | +33.3% |")
	assert.Contains(t, out, "Source: Annual report")
}

func TestMarkdown_NotAvailable(t *testing.T) {
	p := testutil.NewTestFinancials(testutil.WithoutProfit(), testutil.WithAvailability(domain.AvailabilityPrivate))
	res := &intelligence.CompanyResult{Variant: intelligence.VariantStructured, Financials: p}

	out := Markdown("Acme", res)
	assert.Contains(t, out, "## Financial Data Not Available")
	assert.Contains(t, out, "- Data availability: Private")
	assert.Contains(t, out, "Source: Annual report")
	assert.NotContains(t, out, "| Period |")
}

func TestMarkdown_FreeText(t *testing.T) {
	res := &intelligence.CompanyResult{Variant: intelligence.VariantFreeText, Summary: "  A short summary.\n"}

	assert.Equal(t, "# ACME\n\nA short summary.\n", Markdown(" Acme ", res))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "Acme Corp-financials.md", FileName(" Acme Corp ", "md"))
	assert.Equal(t, "AT-T-financials.html", FileName("AT/T", "html"))
}

func TestHTML(t *testing.T) {
	res := &intelligence.CompanyResult{
		Variant:    intelligence.VariantStructured,
		Financials: testutil.NewTestFinancials(),
	}

	page, err := HTML("Apple <Inc>", Markdown("Apple", res))
	require.NoError(t, err)
	out := string(page)
	assert.Contains(t, out, "<title>Apple &lt;Inc&gt;</title>")
	assert.Contains(t, out, "<h1>APPLE</h1>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>2021</td>")
}
