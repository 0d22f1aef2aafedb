package calculation

import (
	"math"

	"github.com/shopspring/decimal"

	pkgdec "github.com/rpgo/corpus-calculator/pkg/decimal"
)

// GROWTH CALCULATION CONVENTIONS:
//
// 1. Rates are decimal fractions (0.08), never percentages.
// 2. Results are unrounded; rounding to paise happens when a ProjectionResult is built.
// 3. Invalid input (non-positive principal, contribution or tenure) yields zero, which
//    callers treat as "no projection yet".

// internalPrecision bounds the digits carried between compounding steps.
const internalPrecision = 12

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// growthFactor returns (1+rate)^periods. Whole-number exponents stay in decimal
// arithmetic; fractional exponents go through float64.
func growthFactor(rate, periods decimal.Decimal) decimal.Decimal {
	base := one.Add(rate)
	if periods.Equal(periods.Truncate(0)) {
		if periods.IsZero() {
			return one
		}
		return base.Pow(periods).Round(internalPrecision)
	}
	return decimal.NewFromFloat(math.Pow(base.InexactFloat64(), periods.InexactFloat64()))
}

// periodEquivalentRate converts an annual rate compounded compoundingPerYear times
// into the rate for one of periodsPerYear contribution periods.
func periodEquivalentRate(annualRate decimal.Decimal, compoundingPerYear, periodsPerYear int) decimal.Decimal {
	n := decimal.NewFromInt(int64(compoundingPerYear))
	if compoundingPerYear == periodsPerYear {
		return annualRate.Div(n)
	}
	exponent := n.Div(decimal.NewFromInt(int64(periodsPerYear)))
	return growthFactor(annualRate.Div(n), exponent).Sub(one)
}

// CompoundLumpSum returns principal × (1 + r/n)^(n×years).
func CompoundLumpSum(principal, annualRate, years decimal.Decimal, periodsPerYear int) decimal.Decimal {
	if !principal.IsPositive() || !years.IsPositive() || periodsPerYear <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(periodsPerYear))
	return principal.Mul(growthFactor(annualRate.Div(n), n.Mul(years)))
}

// RecurringContributionFutureValue returns the future value of a monthly annuity-due:
// C × ((1+i)^n − 1)/i × (1+i) with i = annualRate/12.
func RecurringContributionFutureValue(contribution, annualRate decimal.Decimal, totalMonths int) decimal.Decimal {
	if !contribution.IsPositive() || totalMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(totalMonths))
	i := annualRate.Div(twelve)
	if i.IsZero() {
		return contribution.Mul(n)
	}
	factor := growthFactor(i, n)
	return contribution.Mul(factor.Sub(one)).Div(i).Mul(one.Add(i))
}

// RecurringTerms describes a recurring contribution schedule.
type RecurringTerms struct {
	BaseContribution   decimal.Decimal  // per contribution period, first year
	PeriodsPerYear     int              // 12 monthly, 1 yearly
	StepUpRate         decimal.Decimal  // yearly increase, fraction
	CapPerYear         *decimal.Decimal // ceiling on a year's total contribution
	ContributionYears  int              // deposits stop after this many years; 0 means whole tenure
	AnnualRate         decimal.Decimal
	CompoundingPerYear int
	Years              decimal.Decimal
}

// yearStep is one year of a recurring schedule.
type yearStep struct {
	Periods      int
	Contribution decimal.Decimal
	Closing      decimal.Decimal
}

// yearlyContribution is min(base × periods × (1+stepUp)^year, cap), re-capped every year.
func (t RecurringTerms) yearlyContribution(year int) decimal.Decimal {
	if t.ContributionYears > 0 && year >= t.ContributionYears {
		return decimal.Zero
	}
	yearly := t.BaseContribution.Mul(decimal.NewFromInt(int64(t.PeriodsPerYear)))
	if !t.StepUpRate.IsZero() {
		yearly = yearly.Mul(growthFactor(t.StepUpRate, decimal.NewFromInt(int64(year))))
	}
	if t.CapPerYear != nil {
		yearly = pkgdec.Min(pkgdec.NewMoneyFromDecimal(yearly), pkgdec.NewMoneyFromDecimal(*t.CapPerYear)).Decimal
	}
	return yearly
}

// walkRecurring runs the schedule period by period, depositing at the start of each
// period (annuity-due), and reports every year. Scalar and ledger results both come from here.
func walkRecurring(t RecurringTerms) []yearStep {
	if !t.BaseContribution.IsPositive() || !t.Years.IsPositive() || t.PeriodsPerYear <= 0 || t.CompoundingPerYear <= 0 {
		return nil
	}
	ppy := decimal.NewFromInt(int64(t.PeriodsPerYear))
	totalPeriods := int(t.Years.Mul(ppy).IntPart())
	if totalPeriods <= 0 {
		return nil
	}
	growth := one.Add(periodEquivalentRate(t.AnnualRate, t.CompoundingPerYear, t.PeriodsPerYear))

	balance := decimal.Zero
	steps := make([]yearStep, 0, totalPeriods/t.PeriodsPerYear+1)
	for year, done := 0, 0; done < totalPeriods; year++ {
		periods := t.PeriodsPerYear
		if remaining := totalPeriods - done; remaining < periods {
			periods = remaining
		}
		perPeriod := t.yearlyContribution(year).Div(ppy)

		contributed := decimal.Zero
		for p := 0; p < periods; p++ {
			balance = balance.Add(perPeriod).Mul(growth).Round(internalPrecision)
			contributed = contributed.Add(perPeriod)
		}
		done += periods
		steps = append(steps, yearStep{Periods: periods, Contribution: contributed, Closing: balance})
	}
	return steps
}

// RecurringPlanFutureValue returns the closing balance of a recurring schedule.
func RecurringPlanFutureValue(t RecurringTerms) decimal.Decimal {
	steps := walkRecurring(t)
	if len(steps) == 0 {
		return decimal.Zero
	}
	return steps[len(steps)-1].Closing
}

// StepUpRecurringFutureValue returns the value of a monthly contribution that grows by
// stepUpRate every year, with each year's total held at or below capPerYear.
func StepUpRecurringFutureValue(baseContribution, stepUpRate decimal.Decimal, years int, annualRate decimal.Decimal, capPerYear *decimal.Decimal) decimal.Decimal {
	return RecurringPlanFutureValue(RecurringTerms{
		BaseContribution:   baseContribution,
		PeriodsPerYear:     12,
		StepUpRate:         stepUpRate,
		CapPerYear:         capPerYear,
		AnnualRate:         annualRate,
		CompoundingPerYear: 12,
		Years:              decimal.NewFromInt(int64(years)),
	})
}

// PayoutSchedule is the outcome of a scheme that pays interest out instead of reinvesting it.
type PayoutSchedule struct {
	PeriodInterest decimal.Decimal
	TotalInterest  decimal.Decimal
	Maturity       decimal.Decimal
}

// PayoutSchemeValue pays principal × r / k every period. The interest-bearing balance
// never grows, so there is no compounding.
func PayoutSchemeValue(principal, annualRate, years decimal.Decimal, payoutsPerYear int) PayoutSchedule {
	if !principal.IsPositive() || !years.IsPositive() || payoutsPerYear <= 0 {
		return PayoutSchedule{PeriodInterest: decimal.Zero, TotalInterest: decimal.Zero, Maturity: decimal.Zero}
	}
	k := decimal.NewFromInt(int64(payoutsPerYear))
	periodInterest := principal.Mul(annualRate).Div(k)
	total := periodInterest.Mul(k).Mul(years)
	return PayoutSchedule{
		PeriodInterest: periodInterest,
		TotalInterest:  total,
		Maturity:       principal.Add(total),
	}
}

// QuarterlyPayoutSchemeValue is PayoutSchemeValue with four payouts a year.
func QuarterlyPayoutSchemeValue(principal, annualRate, years decimal.Decimal) PayoutSchedule {
	return PayoutSchemeValue(principal, annualRate, years, 4)
}

// ListingThenCompound values an allotment that realizes listingGain on listing day and
// then compounds annually at annualRate for years.
func ListingThenCompound(amount, listingGain, annualRate, years decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() || years.IsNegative() {
		return decimal.Zero
	}
	listed := amount.Mul(one.Add(listingGain))
	if years.IsZero() {
		return listed
	}
	return listed.Mul(growthFactor(annualRate, years))
}

// HybridBondOutcome splits a gold-linked bond into redemption value and coupon income.
type HybridBondOutcome struct {
	RedemptionValue decimal.Decimal
	CouponIncome    decimal.Decimal
	Maturity        decimal.Decimal
}

// HybridBondValue compounds the underlying price annually and pays a flat coupon on the
// issue amount every year.
func HybridBondValue(amount, appreciationRate, couponRate, years decimal.Decimal) HybridBondOutcome {
	if !amount.IsPositive() || !years.IsPositive() {
		return HybridBondOutcome{RedemptionValue: decimal.Zero, CouponIncome: decimal.Zero, Maturity: decimal.Zero}
	}
	redemption := CompoundLumpSum(amount, appreciationRate, years, 1)
	coupon := amount.Mul(couponRate).Mul(years)
	return HybridBondOutcome{
		RedemptionValue: redemption,
		CouponIncome:    coupon,
		Maturity:        redemption.Add(coupon),
	}
}
