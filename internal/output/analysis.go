package output

import (
	"sort"

	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CorpusAnalysis summarises where the corpus comes from and what tax and inflation take.
type CorpusAnalysis struct {
	LargestHolding   string
	LargestShare     decimal.Decimal // percent of nominal corpus
	TaxDrag          decimal.Decimal // percent of nominal corpus lost to tax
	ReturnMultiple   decimal.Decimal // nominal corpus / invested
	PurchasingPower  decimal.Decimal // percent of nominal corpus left in real terms, zero when unknown
	ComputableCount  int
	ExcludedCount    int
	HighestTaxedName string
	HighestTaxRate   decimal.Decimal
}

// AnalyzeCorpus derives headline ratios from a plan result.
// Extracted from formatter logic for testability.
func AnalyzeCorpus(results *domain.PlanResult) CorpusAnalysis {
	corpus := results.Corpus
	analysis := CorpusAnalysis{
		ComputableCount: len(corpus.Shares),
		ExcludedCount:   len(corpus.NotComputable),
	}
	if len(corpus.Shares) == 0 {
		return analysis
	}

	shares := append([]domain.CorpusShare(nil), corpus.Shares...)
	sort.SliceStable(shares, func(i, j int) bool { return shares[i].MaturityValue.GreaterThan(shares[j].MaturityValue) })
	analysis.LargestHolding = shares[0].Name
	analysis.LargestShare = shares[0].Percentage

	hundred := decimal.NewFromInt(100)
	if corpus.NominalCorpus.IsPositive() {
		analysis.TaxDrag = corpus.TotalTax.Div(corpus.NominalCorpus).Mul(hundred).Round(2)
		if corpus.RealCorpus != nil {
			analysis.PurchasingPower = corpus.RealCorpus.Div(corpus.NominalCorpus).Mul(hundred).Round(2)
		}
	}
	if corpus.TotalInvested.IsPositive() {
		analysis.ReturnMultiple = corpus.NominalCorpus.Div(corpus.TotalInvested).Round(2)
	}

	for _, o := range results.Outcomes {
		if !o.Computable() {
			continue
		}
		if analysis.HighestTaxedName == "" || o.Tax.TaxRate.GreaterThan(analysis.HighestTaxRate) {
			analysis.HighestTaxedName = o.Name
			analysis.HighestTaxRate = o.Tax.TaxRate
		}
	}
	return analysis
}
