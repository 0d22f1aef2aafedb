package calculation

import (
	"github.com/rpgo/corpus-calculator/internal/domain"
	pkgdec "github.com/rpgo/corpus-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AggregateCorpus sums every computable outcome into corpus totals. Outcomes that could
// not be projected are listed in NotComputable and never block the rest.
//
// Shares are rounded to two places; the rounding residue goes to the largest share so
// that the percentages always add up to exactly 100.
func AggregateCorpus(outcomes []domain.InstrumentOutcome) domain.CorpusTotals {
	totals := domain.CorpusTotals{
		TotalInvested: decimal.Zero,
		TotalReturns:  decimal.Zero,
		NominalCorpus: decimal.Zero,
		PostTaxCorpus: decimal.Zero,
		TotalTax:      decimal.Zero,
		Shares:        []domain.CorpusShare{},
	}

	realCorpus := decimal.Zero
	allReal := true
	for _, o := range outcomes {
		if !o.Computable() {
			totals.NotComputable = append(totals.NotComputable, domain.NotComputable{
				Name:   o.Name,
				Status: o.Status,
				Reason: o.Reason,
			})
			continue
		}
		totals.TotalInvested = totals.TotalInvested.Add(o.Projection.TotalInvested)
		totals.TotalReturns = totals.TotalReturns.Add(o.Projection.ReturnsEarned)
		totals.NominalCorpus = totals.NominalCorpus.Add(o.Projection.FutureValue)
		totals.PostTaxCorpus = totals.PostTaxCorpus.Add(o.Tax.PostTaxCorpus)
		totals.TotalTax = totals.TotalTax.Add(o.Tax.TaxAmount)
		if o.Real != nil {
			realCorpus = realCorpus.Add(o.Real.RealFutureValue)
		} else {
			allReal = false
		}
		totals.Shares = append(totals.Shares, domain.CorpusShare{
			Name:          o.Name,
			Type:          o.Type,
			MaturityValue: o.Projection.FutureValue,
			Percentage:    decimal.Zero,
		})
	}

	if len(totals.Shares) > 0 && allReal {
		totals.RealCorpus = &realCorpus
	}
	assignShares(totals.Shares, totals.NominalCorpus)
	return totals
}

func assignShares(shares []domain.CorpusShare, nominal decimal.Decimal) {
	if !nominal.IsPositive() {
		return
	}
	sum := decimal.Zero
	largest := 0
	for i := range shares {
		shares[i].Percentage = pkgdec.Round2(pkgdec.FractionToPercent(shares[i].MaturityValue.Div(nominal)))
		sum = sum.Add(shares[i].Percentage)
		if shares[i].MaturityValue.GreaterThan(shares[largest].MaturityValue) {
			largest = i
		}
	}
	shares[largest].Percentage = shares[largest].Percentage.Add(hundred.Sub(sum))
}
