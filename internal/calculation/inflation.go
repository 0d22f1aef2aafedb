package calculation

import (
	"github.com/rpgo/corpus-calculator/internal/domain"
	pkgdec "github.com/rpgo/corpus-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// RealValue discounts a nominal amount by inflation compounded over years.
func RealValue(nominal, inflationRate, years decimal.Decimal) decimal.Decimal {
	if !years.IsPositive() {
		return nominal
	}
	return nominal.Div(growthFactor(inflationRate, years))
}

// RealRate is the Fisher relation (1+nominal)/(1+inflation) − 1. Negative results are returned as is.
func RealRate(nominalRate, inflationRate decimal.Decimal) decimal.Decimal {
	return one.Add(nominalRate).Div(one.Add(inflationRate)).Sub(one)
}

// InflationAdjuster converts nominal outcomes to purchasing-power terms at a fixed rate.
type InflationAdjuster struct {
	Rate decimal.Decimal // fraction
}

// NewInflationAdjuster creates an adjuster for an inflation rate given in percent.
func NewInflationAdjuster(ratePercent decimal.Decimal) *InflationAdjuster {
	return &InflationAdjuster{Rate: pkgdec.PercentToFraction(ratePercent)}
}

// Adjust returns the real equivalents of a projection's future value and post-tax corpus.
// annualRate is the nominal rate as a fraction.
func (ia *InflationAdjuster) Adjust(futureValue, postTax, annualRate, years decimal.Decimal) domain.RealTerms {
	return domain.RealTerms{
		InflationRate:     pkgdec.FractionToPercent(ia.Rate),
		RealFutureValue:   pkgdec.Round2(RealValue(futureValue, ia.Rate, years)),
		RealPostTaxCorpus: pkgdec.Round2(RealValue(postTax, ia.Rate, years)),
		RealReturnRate:    pkgdec.Round2(pkgdec.FractionToPercent(RealRate(annualRate, ia.Rate))),
	}
}
