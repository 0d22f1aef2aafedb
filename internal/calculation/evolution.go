package calculation

import (
	"fmt"

	"github.com/rpgo/corpus-calculator/internal/domain"
	pkgdec "github.com/rpgo/corpus-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ledger turns exact running values into rounded rows. Closing balances are rounded to
// paise and growth is derived as closing − opening − contribution, so each row balances
// exactly and the growth column sums to total returns.
type ledger struct {
	rows    []domain.EvolutionRow
	opening decimal.Decimal
}

type ledgerEntry struct {
	period          int
	label           string
	contribution    decimal.Decimal
	exactClosing    decimal.Decimal
	payout          decimal.Decimal
	interestBearing *decimal.Decimal // nil: the whole closing balance earns
}

func (l *ledger) add(e ledgerEntry) {
	closing := pkgdec.Round2(e.exactClosing)
	contribution := pkgdec.Round2(e.contribution)
	bearing := closing
	if e.interestBearing != nil {
		bearing = pkgdec.Round2(*e.interestBearing)
	}
	l.rows = append(l.rows, domain.EvolutionRow{
		Period:                 e.period,
		Label:                  e.label,
		OpeningBalance:         l.opening,
		Contribution:           contribution,
		Growth:                 closing.Sub(l.opening).Sub(contribution),
		Payout:                 pkgdec.Round2(e.payout),
		InterestBearingBalance: bearing,
		ClosingBalance:         closing,
	})
	l.opening = closing
}

// yearMarks returns the cumulative year ends for a tenure: 1, 2, ... and the
// fractional end when the tenure is not a whole number of years.
func yearMarks(years decimal.Decimal) []decimal.Decimal {
	if !years.IsPositive() {
		return nil
	}
	whole := years.Truncate(0)
	marks := make([]decimal.Decimal, 0, whole.IntPart()+1)
	for y := int64(1); y <= whole.IntPart(); y++ {
		marks = append(marks, decimal.NewFromInt(y))
	}
	if years.GreaterThan(whole) {
		marks = append(marks, years)
	}
	return marks
}

func yearLabel(mark decimal.Decimal) string {
	return fmt.Sprintf("Year %s", mark.String())
}

// BuildLumpSumEvolution mirrors CompoundLumpSum year by year.
func BuildLumpSumEvolution(principal, annualRate, years decimal.Decimal, periodsPerYear int) []domain.EvolutionRow {
	if !principal.IsPositive() || !years.IsPositive() || periodsPerYear <= 0 {
		return nil
	}
	l := &ledger{opening: decimal.Zero}
	for i, mark := range yearMarks(years) {
		contribution := decimal.Zero
		if i == 0 {
			contribution = principal
		}
		l.add(ledgerEntry{
			period:       i + 1,
			label:        yearLabel(mark),
			contribution: contribution,
			exactClosing: CompoundLumpSum(principal, annualRate, mark, periodsPerYear),
			payout:       decimal.Zero,
		})
	}
	return l.rows
}

// BuildRecurringEvolution emits one row per year of a recurring schedule.
func BuildRecurringEvolution(t RecurringTerms) []domain.EvolutionRow {
	steps := walkRecurring(t)
	if len(steps) == 0 {
		return nil
	}
	l := &ledger{opening: decimal.Zero}
	for i, step := range steps {
		label := fmt.Sprintf("Year %d", i+1)
		if step.Periods < t.PeriodsPerYear {
			label = fmt.Sprintf("Year %d (%d of %d periods)", i+1, step.Periods, t.PeriodsPerYear)
		}
		l.add(ledgerEntry{
			period:       i + 1,
			label:        label,
			contribution: step.Contribution,
			exactClosing: step.Closing,
			payout:       decimal.Zero,
		})
	}
	return l.rows
}

// BuildPayoutEvolution records a payout scheme. The interest-bearing balance stays at
// principal; the closing balance is principal plus interest paid out to date.
func BuildPayoutEvolution(principal, annualRate, years decimal.Decimal, payoutsPerYear int) []domain.EvolutionRow {
	schedule := PayoutSchemeValue(principal, annualRate, years, payoutsPerYear)
	if !schedule.Maturity.IsPositive() {
		return nil
	}
	yearlyInterest := schedule.PeriodInterest.Mul(decimal.NewFromInt(int64(payoutsPerYear)))
	l := &ledger{opening: decimal.Zero}
	previous := decimal.Zero
	for i, mark := range yearMarks(years) {
		contribution := decimal.Zero
		if i == 0 {
			contribution = principal
		}
		l.add(ledgerEntry{
			period:          i + 1,
			label:           yearLabel(mark),
			contribution:    contribution,
			exactClosing:    principal.Add(yearlyInterest.Mul(mark)),
			payout:          yearlyInterest.Mul(mark.Sub(previous)),
			interestBearing: &principal,
		})
		previous = mark
	}
	return l.rows
}

// BuildListingEvolution starts with a period-0 listing row, then compounds annually.
func BuildListingEvolution(amount, listingGain, annualRate, years decimal.Decimal) []domain.EvolutionRow {
	if !amount.IsPositive() || years.IsNegative() {
		return nil
	}
	l := &ledger{opening: decimal.Zero}
	l.add(ledgerEntry{
		period:       0,
		label:        "Listing",
		contribution: amount,
		exactClosing: ListingThenCompound(amount, listingGain, annualRate, decimal.Zero),
		payout:       decimal.Zero,
	})
	for i, mark := range yearMarks(years) {
		l.add(ledgerEntry{
			period:       i + 1,
			label:        yearLabel(mark),
			contribution: decimal.Zero,
			exactClosing: ListingThenCompound(amount, listingGain, annualRate, mark),
			payout:       decimal.Zero,
		})
	}
	return l.rows
}

// BuildHybridBondEvolution tracks price appreciation plus the coupon paid on the issue amount.
func BuildHybridBondEvolution(amount, appreciationRate, couponRate, years decimal.Decimal) []domain.EvolutionRow {
	if !amount.IsPositive() || !years.IsPositive() {
		return nil
	}
	l := &ledger{opening: decimal.Zero}
	previous := decimal.Zero
	for i, mark := range yearMarks(years) {
		contribution := decimal.Zero
		if i == 0 {
			contribution = amount
		}
		l.add(ledgerEntry{
			period:          i + 1,
			label:           yearLabel(mark),
			contribution:    contribution,
			exactClosing:    HybridBondValue(amount, appreciationRate, couponRate, mark).Maturity,
			payout:          amount.Mul(couponRate).Mul(mark.Sub(previous)),
			interestBearing: &amount,
		})
		previous = mark
	}
	return l.rows
}

// sumContributions totals the rounded contribution column.
func sumContributions(rows []domain.EvolutionRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Contribution)
	}
	return total
}
