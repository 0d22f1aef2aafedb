package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var cent = decimal.NewFromFloat(0.01)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertNear checks two values agree within tol
func assertNear(t *testing.T, expected, actual, tol decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	difference := actual.Sub(expected).Abs()
	if !difference.LessThanOrEqual(tol) {
		assert.Fail(t, "values differ: expected "+expected.StringFixed(4)+", got "+actual.StringFixed(4)+
			" (difference "+difference.StringFixed(4)+")", msgAndArgs...)
	}
}

func TestCompoundLumpSum(t *testing.T) {
	tests := []struct {
		name        string
		principal   decimal.Decimal
		rate        decimal.Decimal
		years       decimal.Decimal
		periods     int
		expected    decimal.Decimal
		description string
	}{
		{
			name:        "Annual compounding",
			principal:   dec("100000"),
			rate:        dec("0.08"),
			years:       dec("5"),
			periods:     1,
			expected:    dec("146932.81"),
			description: "100000 × 1.08^5",
		},
		{
			name:        "Quarterly compounding",
			principal:   dec("100000"),
			rate:        dec("0.07"),
			years:       dec("5"),
			periods:     4,
			expected:    dec("141477.82"),
			description: "100000 × 1.0175^20",
		},
		{
			name:        "Fractional tenure",
			principal:   dec("100000"),
			rate:        dec("0.10"),
			years:       dec("1.5"),
			periods:     1,
			expected:    dec("115368.97"),
			description: "100000 × 1.1^1.5",
		},
		{
			name:        "Zero rate keeps principal",
			principal:   dec("50000"),
			rate:        decimal.Zero,
			years:       dec("3"),
			periods:     1,
			expected:    dec("50000"),
			description: "No growth at 0%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fv := CompoundLumpSum(tt.principal, tt.rate, tt.years, tt.periods)
			assertNear(t, tt.expected, fv.Round(2), cent, tt.description)
		})
	}
}

func TestCompoundLumpSumInvalidInput(t *testing.T) {
	assert.True(t, CompoundLumpSum(decimal.Zero, dec("0.08"), dec("5"), 1).IsZero())
	assert.True(t, CompoundLumpSum(dec("-1000"), dec("0.08"), dec("5"), 1).IsZero())
	assert.True(t, CompoundLumpSum(dec("1000"), dec("0.08"), decimal.Zero, 1).IsZero())
	assert.True(t, CompoundLumpSum(dec("1000"), dec("0.08"), dec("5"), 0).IsZero())
}

func TestRecurringContributionFutureValue(t *testing.T) {
	t.Run("Monthly SIP annuity-due", func(t *testing.T) {
		fv := RecurringContributionFutureValue(dec("5000"), dec("0.12"), 60)
		assertNear(t, dec("412431.83"), fv.Round(2), cent)
	})

	t.Run("Zero rate is the sum of deposits", func(t *testing.T) {
		fv := RecurringContributionFutureValue(dec("5000"), decimal.Zero, 60)
		assert.True(t, fv.Equal(dec("300000")), "got %s", fv)
	})

	t.Run("Invalid input yields zero", func(t *testing.T) {
		assert.True(t, RecurringContributionFutureValue(decimal.Zero, dec("0.12"), 60).IsZero())
		assert.True(t, RecurringContributionFutureValue(dec("5000"), dec("0.12"), 0).IsZero())
	})
}

func TestRecurringPlanMatchesClosedForm(t *testing.T) {
	terms := RecurringTerms{
		BaseContribution:   dec("5000"),
		PeriodsPerYear:     12,
		AnnualRate:         dec("0.12"),
		CompoundingPerYear: 12,
		Years:              dec("5"),
	}
	walked := RecurringPlanFutureValue(terms)
	closed := RecurringContributionFutureValue(dec("5000"), dec("0.12"), 60)
	assertNear(t, closed, walked, cent)
}

func TestRecurringPlanYearlyDeposits(t *testing.T) {
	// 150000 a year at 7.1% for 15 years, deposited at the start of each year
	terms := RecurringTerms{
		BaseContribution:   dec("150000"),
		PeriodsPerYear:     1,
		AnnualRate:         dec("0.071"),
		CompoundingPerYear: 1,
		Years:              dec("15"),
	}
	assertNear(t, dec("4068209.22"), RecurringPlanFutureValue(terms).Round(2), cent)
}

func TestStepUpRecurringRespectsCap(t *testing.T) {
	limit := dec("150000")
	terms := RecurringTerms{
		BaseContribution:   dec("10000"),
		PeriodsPerYear:     12,
		StepUpRate:         dec("0.10"),
		CapPerYear:         &limit,
		AnnualRate:         dec("0.08"),
		CompoundingPerYear: 12,
		Years:              dec("5"),
	}

	expected := []string{"120000", "132000", "145200", "150000", "150000"}
	steps := walkRecurring(terms)
	assert.Len(t, steps, len(expected))
	for i, step := range steps {
		assertNear(t, dec(expected[i]), step.Contribution, cent, "year %d", i+1)
		assert.True(t, step.Contribution.LessThanOrEqual(limit.Add(cent)), "year %d exceeds cap", i+1)
	}

	fv := StepUpRecurringFutureValue(dec("10000"), dec("0.10"), 5, dec("0.08"), &limit)
	assert.True(t, fv.Equal(RecurringPlanFutureValue(terms)))
}

func TestStepUpGrowsContribution(t *testing.T) {
	flat := StepUpRecurringFutureValue(dec("5000"), decimal.Zero, 10, dec("0.12"), nil)
	stepped := StepUpRecurringFutureValue(dec("5000"), dec("0.10"), 10, dec("0.12"), nil)
	assert.True(t, stepped.GreaterThan(flat))
}

func TestRecurringContributionYearsStopDeposits(t *testing.T) {
	terms := RecurringTerms{
		BaseContribution:   dec("100000"),
		PeriodsPerYear:     1,
		ContributionYears:  15,
		AnnualRate:         dec("0.082"),
		CompoundingPerYear: 1,
		Years:              dec("21"),
	}
	steps := walkRecurring(terms)
	assert.Len(t, steps, 21)
	for i := 15; i < 21; i++ {
		assert.True(t, steps[i].Contribution.IsZero(), "year %d should have no deposit", i+1)
		assert.True(t, steps[i].Closing.GreaterThan(steps[i-1].Closing), "balance keeps compounding")
	}
}

func TestQuarterlyPayoutSchemeValue(t *testing.T) {
	s := QuarterlyPayoutSchemeValue(dec("1000000"), dec("0.082"), dec("5"))
	assert.True(t, s.PeriodInterest.Equal(dec("20500")), "quarterly interest %s", s.PeriodInterest)
	assert.True(t, s.TotalInterest.Equal(dec("410000")), "total interest %s", s.TotalInterest)
	assert.True(t, s.Maturity.Equal(dec("1410000")), "maturity %s", s.Maturity)
	assert.True(t, s.PeriodInterest.Mul(decimal.NewFromInt(4)).Mul(dec("5")).Equal(s.TotalInterest))

	doubled := QuarterlyPayoutSchemeValue(dec("1000000"), dec("0.082"), dec("10"))
	assert.True(t, doubled.TotalInterest.Equal(s.TotalInterest.Mul(decimal.NewFromInt(2))),
		"doubling the tenure doubles interest")
}

func TestPayoutSchemeZeroRate(t *testing.T) {
	s := PayoutSchemeValue(dec("500000"), decimal.Zero, dec("5"), 12)
	assert.True(t, s.TotalInterest.IsZero())
	assert.True(t, s.Maturity.Equal(dec("500000")))
}

func TestListingThenCompound(t *testing.T) {
	assert.True(t, ListingThenCompound(dec("100000"), dec("0.20"), dec("0.10"), decimal.Zero).Equal(dec("120000")))
	assertNear(t, dec("145200"), ListingThenCompound(dec("100000"), dec("0.20"), dec("0.10"), dec("2")), cent)
	assert.True(t, ListingThenCompound(decimal.Zero, dec("0.20"), dec("0.10"), dec("2")).IsZero())
}

func TestHybridBondValue(t *testing.T) {
	b := HybridBondValue(dec("100000"), dec("0.08"), dec("0.025"), dec("8"))
	assertNear(t, dec("185093.02"), b.RedemptionValue, cent)
	assert.True(t, b.CouponIncome.Equal(dec("20000")), "coupon %s", b.CouponIncome)
	assert.True(t, b.Maturity.Equal(b.RedemptionValue.Add(b.CouponIncome)))
}

func TestGrowthCalculatorsAreIdempotent(t *testing.T) {
	a := RecurringContributionFutureValue(dec("7500"), dec("0.11"), 84)
	b := RecurringContributionFutureValue(dec("7500"), dec("0.11"), 84)
	assert.True(t, a.Equal(b))

	terms := RecurringTerms{BaseContribution: dec("2500"), PeriodsPerYear: 12, StepUpRate: dec("0.05"),
		AnnualRate: dec("0.09"), CompoundingPerYear: 4, Years: dec("7")}
	assert.True(t, RecurringPlanFutureValue(terms).Equal(RecurringPlanFutureValue(terms)))
}
