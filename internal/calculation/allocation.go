package calculation

import (
	"errors"
	"fmt"

	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrAllocationNotComputable marks an asset mix the engine refuses to project.
// The mix is reported back to the caller instead of being normalized.
var ErrAllocationNotComputable = errors.New("allocation not computable")

var (
	hundred             = decimal.NewFromInt(100)
	allocationTolerance = decimal.NewFromFloat(0.01)
	alternativeCeiling  = decimal.NewFromInt(5)
	equityStepPerYear   = decimal.NewFromFloat(2.5)
)

// MaxEquityForAge returns the pension scheme's equity ceiling in percent:
//
//	age <= 35       100
//	35 < age <= 50  max(75, 100 - (age-35) x 2.5)
//	age > 50        max(50, 75 - (age-50) x 2.5)
//
// rounded up to a whole percent so the investor is never under-allowed.
func MaxEquityForAge(age int) decimal.Decimal {
	a := decimal.NewFromInt(int64(age))
	var ceiling decimal.Decimal
	switch {
	case age <= 35:
		ceiling = hundred
	case age <= 50:
		ceiling = decimal.Max(decimal.NewFromInt(75), hundred.Sub(a.Sub(decimal.NewFromInt(35)).Mul(equityStepPerYear)))
	default:
		ceiling = decimal.Max(decimal.NewFromInt(50), decimal.NewFromInt(75).Sub(a.Sub(decimal.NewFromInt(50)).Mul(equityStepPerYear)))
	}
	return ceiling.Ceil()
}

// ValidateAllocation checks that the mix is non-negative, sums to 100 within 0.01 and
// keeps alternative assets at or below 5%.
func ValidateAllocation(mix domain.AllocationMix) error {
	classes := []struct {
		name  string
		value decimal.Decimal
	}{
		{"equity", mix.Equity},
		{"corporate bonds", mix.CorporateBonds},
		{"government bonds", mix.GovernmentBonds},
		{"alternative", mix.Alternative},
	}
	for _, c := range classes {
		if c.value.IsNegative() {
			return fmt.Errorf("%w: %s allocation is negative", ErrAllocationNotComputable, c.name)
		}
	}
	if total := mix.Total(); total.Sub(hundred).Abs().GreaterThan(allocationTolerance) {
		return fmt.Errorf("%w: allocations sum to %s%%, expected 100%%", ErrAllocationNotComputable, total.String())
	}
	if mix.Alternative.GreaterThan(alternativeCeiling) {
		return fmt.Errorf("%w: alternative allocation %s%% exceeds %s%%", ErrAllocationNotComputable, mix.Alternative.String(), alternativeCeiling.String())
	}
	return nil
}

// EffectiveAllocation clamps equity to the age ceiling and spreads the excess over the
// other classes by their current weights. With no other weight it all goes to
// government bonds.
func EffectiveAllocation(mix domain.AllocationMix, age int) domain.AllocationMix {
	ceiling := MaxEquityForAge(age)
	if mix.Equity.LessThanOrEqual(ceiling) {
		return mix
	}
	excess := mix.Equity.Sub(ceiling)
	out := mix
	out.Equity = ceiling

	others := mix.CorporateBonds.Add(mix.GovernmentBonds).Add(mix.Alternative)
	if others.IsZero() {
		out.GovernmentBonds = mix.GovernmentBonds.Add(excess)
		return out
	}
	corporateShare := excess.Mul(mix.CorporateBonds).Div(others)
	alternativeShare := excess.Mul(mix.Alternative).Div(others)
	out.CorporateBonds = mix.CorporateBonds.Add(corporateShare)
	out.Alternative = mix.Alternative.Add(alternativeShare)
	// remainder keeps the total exact
	out.GovernmentBonds = mix.GovernmentBonds.Add(excess.Sub(corporateShare).Sub(alternativeShare))
	return out
}

// WeightedReturn returns Σ allocation% × expected return% as an annual percentage.
func WeightedReturn(mix domain.AllocationMix, returns domain.AssetReturns) decimal.Decimal {
	return mix.Equity.Mul(returns.Equity).
		Add(mix.CorporateBonds.Mul(returns.CorporateBonds)).
		Add(mix.GovernmentBonds.Mul(returns.GovernmentBonds)).
		Add(mix.Alternative.Mul(returns.Alternative)).
		Div(hundred)
}

// AverageWeightedReturn recomputes the ceiling for every year of the holding period
// (age + yearIndex) and returns the arithmetic mean of the yearly weighted returns.
//
// This is an approximation: one mean rate is applied to the whole tenure instead of
// compounding each year at its own rate, which overstates the result slightly when the
// ceiling declines over time.
func AverageWeightedReturn(mix domain.AllocationMix, returns domain.AssetReturns, age, years int) decimal.Decimal {
	if years <= 0 {
		return WeightedReturn(EffectiveAllocation(mix, age), returns)
	}
	total := decimal.Zero
	for y := 0; y < years; y++ {
		total = total.Add(WeightedReturn(EffectiveAllocation(mix, age+y), returns))
	}
	return total.Div(decimal.NewFromInt(int64(years)))
}

// ResolvePensionRate validates a pension allocation and returns the annual rate in
// percent plus the effective mix at the starting age.
func ResolvePensionRate(a domain.PensionAllocation, years decimal.Decimal) (decimal.Decimal, domain.AllocationMix, error) {
	if err := ValidateAllocation(a.Mix); err != nil {
		return decimal.Zero, domain.AllocationMix{}, err
	}
	effective := EffectiveAllocation(a.Mix, a.Age)
	if !a.AgeBasedCapOverTime {
		return WeightedReturn(effective, a.Returns), effective, nil
	}
	span := int(years.Ceil().IntPart())
	return AverageWeightedReturn(a.Mix, a.Returns, a.Age, span), effective, nil
}
