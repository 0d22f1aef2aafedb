package calculation

import (
	"errors"
	"fmt"

	"github.com/rpgo/corpus-calculator/internal/domain"
	pkgdec "github.com/rpgo/corpus-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Only gains are taxed. Principal is never taxed, and every policy clamps the tax
//    to 0 <= tax <= returns.
// 2. Slab-rate policies apply the investor's marginal slab to the whole gain.
// 3. Capital gains: holding >= the long-term threshold pays the long-term rate on gains
//    above the exemption; otherwise the short-term rate (or slab) applies to all gains.
// 4. Indexation uses the general inflation rate as a stand-in for the official
//    cost-inflation-index table. It is an approximation, not a CII lookup.
// 5. Partial exemption taxes the non-exempt fraction's share of returns at slab.
// 6. TDS notes are informational and never change the tax amount.

var (
	// ErrUnknownInstrument is returned for an instrument type missing from the rule table.
	ErrUnknownInstrument = errors.New("unknown instrument type")
	// ErrUnknownTaxRule is returned when a rule table entry names no known policy.
	ErrUnknownTaxRule = errors.New("unknown tax rule")
)

// TaxInput is everything a tax policy can look at.
type TaxInput struct {
	Instrument     domain.InstrumentType
	FutureValue    decimal.Decimal
	Principal      decimal.Decimal
	Returns        decimal.Decimal
	InterestIncome decimal.Decimal // coupon part of returns, hybrid bonds only
	HoldingYears   decimal.Decimal
	InflationRate  decimal.Decimal // fraction, used for indexation
	Context        domain.TaxContext
}

// TaxCalculator dispatches tax computation by instrument type.
type TaxCalculator struct {
	Rules map[domain.InstrumentType]domain.TaxRule
}

// NewTaxCalculator creates a calculator with the catalog rule table
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Rules: domain.DefaultTaxRules()}
}

// WithOverrides returns a new calculator with this calculator's rules replaced by overrides,
// e.g. budget changes to LTCG rates or exemption limits.
func (tc *TaxCalculator) WithOverrides(overrides map[domain.InstrumentType]domain.TaxRule) *TaxCalculator {
	rules := make(map[domain.InstrumentType]domain.TaxRule, len(tc.Rules)+len(overrides))
	for t, r := range tc.Rules {
		rules[t] = r
	}
	for t, r := range overrides {
		rules[t] = r
	}
	return &TaxCalculator{Rules: rules}
}

// Rule returns the tax rule for an instrument type.
func (tc *TaxCalculator) Rule(t domain.InstrumentType) (domain.TaxRule, error) {
	rule, ok := tc.Rules[t]
	if !ok {
		return domain.TaxRule{}, fmt.Errorf("%w: %q", ErrUnknownInstrument, t)
	}
	return rule, nil
}

// Calculate applies the instrument's tax rule and returns the post-tax outcome.
func (tc *TaxCalculator) Calculate(in TaxInput) (domain.TaxResult, error) {
	rule, err := tc.Rule(in.Instrument)
	if err != nil {
		return domain.TaxResult{}, err
	}

	gains := decimal.Max(decimal.Zero, in.Returns)
	slab := in.Context.IncomeTaxSlab
	var tax decimal.Decimal
	var treatment, tds string

	switch rule.Kind {
	case domain.TaxExempt:
		tax = decimal.Zero
	case domain.TaxSlabOnInterest:
		tax = SlabTax(gains, slab)
		tds = tdsNote(rule, gains, in.HoldingYears, in.Context.SeniorCitizen)
	case domain.TaxCapitalGains:
		tax, treatment = CapitalGainsTax(rule, gains, in.HoldingYears, slab)
	case domain.TaxIndexation:
		tax, treatment = IndexedGainsTax(rule, in.FutureValue, in.Principal, gains, in.HoldingYears, in.InflationRate, slab)
	case domain.TaxPartialExemption:
		tax = PartialExemptionTax(rule, gains, slab)
	case domain.TaxInterestOnlySlab:
		tax = SlabTax(decimal.Min(decimal.Max(decimal.Zero, in.InterestIncome), gains), slab)
	default:
		return domain.TaxResult{}, fmt.Errorf("%w: %q for %q", ErrUnknownTaxRule, rule.Kind, in.Instrument)
	}

	tax = pkgdec.Round2(clamp(tax, decimal.Zero, gains))
	result := domain.TaxResult{
		TaxAmount:     tax,
		PostTaxCorpus: in.FutureValue.Sub(tax),
		TaxRate:       decimal.Zero,
		TaxRule:       rule.Kind,
		Treatment:     treatment,
		TDSInfo:       tds,
	}
	if in.FutureValue.IsPositive() {
		result.TaxRate = pkgdec.Round2(pkgdec.FractionToPercent(tax.Div(in.FutureValue)))
	}
	return result, nil
}

// SlabTax taxes the whole gain at the investor's slab.
func SlabTax(gains, slab decimal.Decimal) decimal.Decimal {
	return gains.Mul(slab)
}

// CapitalGainsTax splits on the holding period. Long-term gains above the exemption pay
// the long-term rate; short-term gains pay the short-term rate, or slab when none is set.
func CapitalGainsTax(rule domain.TaxRule, gains, holdingYears, slab decimal.Decimal) (decimal.Decimal, string) {
	if holdingYears.GreaterThanOrEqual(rule.LongTermYears) {
		taxable := decimal.Max(decimal.Zero, gains.Sub(rule.ExemptionLimit))
		return taxable.Mul(rule.LongTermRate), "long_term"
	}
	return gains.Mul(shortTermRate(rule, slab)), "short_term"
}

// IndexedGainsTax inflates the cost base over the holding period before computing the
// long-term gain. Short-term holdings fall back to the short-term rate on all gains.
func IndexedGainsTax(rule domain.TaxRule, futureValue, principal, gains, holdingYears, inflation, slab decimal.Decimal) (decimal.Decimal, string) {
	if holdingYears.LessThan(rule.LongTermYears) {
		return gains.Mul(shortTermRate(rule, slab)), "short_term"
	}
	indexedCost := principal.Mul(growthFactor(inflation, holdingYears))
	taxable := decimal.Max(decimal.Zero, futureValue.Sub(indexedCost))
	return taxable.Mul(rule.LongTermRate), "long_term_indexed"
}

// PartialExemptionTax taxes only the non-exempt fraction's share of returns at slab.
func PartialExemptionTax(rule domain.TaxRule, gains, slab decimal.Decimal) decimal.Decimal {
	taxableShare := one.Sub(rule.ExemptFraction)
	return gains.Mul(taxableShare).Mul(slab)
}

func shortTermRate(rule domain.TaxRule, slab decimal.Decimal) decimal.Decimal {
	if rule.ShortTermRate != nil {
		return *rule.ShortTermRate
	}
	return slab
}

// tdsNote flags interest above the yearly TDS threshold. Informational only.
func tdsNote(rule domain.TaxRule, interest, years decimal.Decimal, senior bool) string {
	threshold := rule.TDSThreshold
	if senior && rule.TDSThresholdSenior.IsPositive() {
		threshold = rule.TDSThresholdSenior
	}
	if !threshold.IsPositive() || !years.IsPositive() {
		return ""
	}
	yearly := interest.Div(years)
	if yearly.LessThanOrEqual(threshold) {
		return ""
	}
	return fmt.Sprintf("TDS applies: average yearly interest %s exceeds the %s threshold",
		pkgdec.NewMoneyFromDecimal(yearly).Round().Format(), pkgdec.NewMoneyFromDecimal(threshold).Format())
}

func clamp(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
