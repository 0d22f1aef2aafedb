package output

import (
	"github.com/shopspring/decimal"

	pkgdec "github.com/rpgo/corpus-calculator/pkg/decimal"
)

// FormatCurrency formats a decimal as rupees with Indian digit grouping.
func FormatCurrency(amount decimal.Decimal) string { return pkgdec.FormatINR(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// plainAmount is the CSV rendering: two decimals, no grouping or symbol.
func plainAmount(amount decimal.Decimal) string { return amount.StringFixed(2) }
