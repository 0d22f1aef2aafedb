package calculation

import (
	"testing"

	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertLedgerBalances checks the row identity, opening continuity and the
// reconciliation of the last row with the scalar future value.
func assertLedgerBalances(t *testing.T, rows []domain.EvolutionRow, futureValue decimal.Decimal) {
	t.Helper()
	require.NotEmpty(t, rows)
	previous := decimal.Zero
	for i, r := range rows {
		assert.True(t, r.OpeningBalance.Equal(previous), "row %d opening %s, previous closing %s", i, r.OpeningBalance, previous)
		assert.True(t, r.ClosingBalance.Equal(r.OpeningBalance.Add(r.Contribution).Add(r.Growth)),
			"row %d does not balance", i)
		previous = r.ClosingBalance
	}
	assertNear(t, futureValue.Round(2), rows[len(rows)-1].ClosingBalance, cent, "last row reconciles with future value")
}

func sumGrowth(rows []domain.EvolutionRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Growth)
	}
	return total
}

func TestBuildLumpSumEvolution(t *testing.T) {
	rows := BuildLumpSumEvolution(dec("100000"), dec("0.08"), dec("5"), 1)
	require.Len(t, rows, 5)
	assertLedgerBalances(t, rows, CompoundLumpSum(dec("100000"), dec("0.08"), dec("5"), 1))

	assert.True(t, rows[0].Contribution.Equal(dec("100000")))
	assert.True(t, rows[0].Growth.Equal(dec("8000")), "first year growth %s", rows[0].Growth)
	assert.Equal(t, "Year 1", rows[0].Label)

	// growth column sums exactly to returns
	returns := rows[len(rows)-1].ClosingBalance.Sub(dec("100000"))
	assert.True(t, sumGrowth(rows).Equal(returns))
}

func TestBuildLumpSumEvolutionFractionalTenure(t *testing.T) {
	years := dec("2.5")
	rows := BuildLumpSumEvolution(dec("100000"), dec("0.09"), years, 4)
	require.Len(t, rows, 3)
	assert.Equal(t, "Year 2.5", rows[2].Label)
	assertLedgerBalances(t, rows, CompoundLumpSum(dec("100000"), dec("0.09"), years, 4))
}

func TestBuildRecurringEvolution(t *testing.T) {
	limit := dec("150000")
	tests := []struct {
		name  string
		terms RecurringTerms
		rows  int
	}{
		{
			name: "Monthly SIP",
			terms: RecurringTerms{BaseContribution: dec("5000"), PeriodsPerYear: 12,
				AnnualRate: dec("0.12"), CompoundingPerYear: 12, Years: dec("5")},
			rows: 5,
		},
		{
			name: "Step-up with cap",
			terms: RecurringTerms{BaseContribution: dec("10000"), PeriodsPerYear: 12, StepUpRate: dec("0.10"),
				CapPerYear: &limit, AnnualRate: dec("0.08"), CompoundingPerYear: 4, Years: dec("6")},
			rows: 6,
		},
		{
			name: "Monthly deposits with partial final year",
			terms: RecurringTerms{BaseContribution: dec("1000"), PeriodsPerYear: 12,
				AnnualRate: dec("0.065"), CompoundingPerYear: 4, Years: dec("2.5")},
			rows: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildRecurringEvolution(tt.terms)
			require.Len(t, rows, tt.rows)
			assertLedgerBalances(t, rows, RecurringPlanFutureValue(tt.terms))
		})
	}
}

func TestBuildRecurringEvolutionPartialYearLabel(t *testing.T) {
	terms := RecurringTerms{BaseContribution: dec("1000"), PeriodsPerYear: 12,
		AnnualRate: dec("0.065"), CompoundingPerYear: 4, Years: dec("2.5")}
	rows := BuildRecurringEvolution(terms)
	require.Len(t, rows, 3)
	assert.Equal(t, "Year 3 (6 of 12 periods)", rows[2].Label)
	assert.True(t, rows[2].Contribution.Equal(dec("6000")))
}

func TestBuildPayoutEvolution(t *testing.T) {
	principal := dec("1000000")
	rows := BuildPayoutEvolution(principal, dec("0.082"), dec("5"), 4)
	require.Len(t, rows, 5)
	assertLedgerBalances(t, rows, dec("1410000"))

	for i, r := range rows {
		assert.True(t, r.InterestBearingBalance.Equal(principal), "row %d interest-bearing balance grew", i)
		assert.True(t, r.Payout.Equal(dec("82000")), "row %d payout %s", i, r.Payout)
		assert.True(t, r.Growth.Equal(dec("82000")), "row %d growth %s", i, r.Growth)
	}
}

func TestBuildListingEvolution(t *testing.T) {
	rows := BuildListingEvolution(dec("100000"), dec("0.20"), dec("0.10"), dec("2"))
	require.Len(t, rows, 3)
	assert.Equal(t, 0, rows[0].Period)
	assert.Equal(t, "Listing", rows[0].Label)
	assert.True(t, rows[0].ClosingBalance.Equal(dec("120000")))
	assert.True(t, rows[0].Growth.Equal(dec("20000")))
	assertLedgerBalances(t, rows, ListingThenCompound(dec("100000"), dec("0.20"), dec("0.10"), dec("2")))
}

func TestBuildHybridBondEvolution(t *testing.T) {
	amount := dec("100000")
	rows := BuildHybridBondEvolution(amount, dec("0.08"), dec("0.025"), dec("8"))
	require.Len(t, rows, 8)
	assertLedgerBalances(t, rows, HybridBondValue(amount, dec("0.08"), dec("0.025"), dec("8")).Maturity)
	for _, r := range rows {
		assert.True(t, r.Payout.Equal(dec("2500")))
		assert.True(t, r.InterestBearingBalance.Equal(amount))
	}
}

func TestEvolutionInvalidInput(t *testing.T) {
	assert.Empty(t, BuildLumpSumEvolution(decimal.Zero, dec("0.08"), dec("5"), 1))
	assert.Empty(t, BuildLumpSumEvolution(dec("1000"), dec("0.08"), decimal.Zero, 1))
	assert.Empty(t, BuildRecurringEvolution(RecurringTerms{BaseContribution: dec("1000"), PeriodsPerYear: 12,
		AnnualRate: dec("0.08"), CompoundingPerYear: 12, Years: dec("0.05")}))
	assert.Empty(t, BuildPayoutEvolution(dec("1000"), dec("0.08"), decimal.Zero, 4))
}

func TestSumContributions(t *testing.T) {
	terms := RecurringTerms{BaseContribution: dec("5000"), PeriodsPerYear: 12,
		AnnualRate: dec("0.12"), CompoundingPerYear: 12, Years: dec("5")}
	assert.True(t, sumContributions(BuildRecurringEvolution(terms)).Equal(dec("300000")))
}
