package report

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency of all reported figures.
const Currency = money.USD

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// FormatMillions renders a figure given in millions, e.g. 1234.5 as
// "$1,234.50M".
func FormatMillions(v float64) string {
	cur := money.GetCurrency(Currency)
	amount := decimal.NewFromFloat(v).Shift(int32(cur.Fraction)).Round(0)
	if amount.Abs().GreaterThan(maxMinorUnits) {
		return formatMinorUnits(cur, amount) + "M"
	}
	return cur.Formatter().Format(amount.IntPart()) + "M"
}

// formatMinorUnits applies the currency template to amounts that do not
// fit the int64 the money formatter takes.
func formatMinorUnits(cur *money.Currency, amount decimal.Decimal) string {
	sa := amount.Abs().String()
	if len(sa) <= cur.Fraction {
		sa = strings.Repeat("0", cur.Fraction-len(sa)+1) + sa
	}
	if cur.Thousand != "" {
		for i := len(sa) - cur.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + cur.Thousand + sa[i:]
		}
	}
	if cur.Fraction > 0 {
		sa = sa[:len(sa)-cur.Fraction] + cur.Decimal + sa[len(sa)-cur.Fraction:]
	}
	sa = strings.Replace(cur.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", cur.Grapheme, 1)
	if amount.IsNegative() {
		sa = "-" + sa
	}
	return sa
}
