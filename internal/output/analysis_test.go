package output

import (
	"testing"

	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCorpus(t *testing.T) {
	analysis := AnalyzeCorpus(buildTestResult())

	assert.Equal(t, "SCSS", analysis.LargestHolding)
	assert.True(t, analysis.LargestShare.Equal(d("90.56")))
	assert.True(t, analysis.TaxDrag.Equal(d("8.80")), "tax drag %s", analysis.TaxDrag)
	assert.True(t, analysis.ReturnMultiple.Equal(d("1.42")), "multiple %s", analysis.ReturnMultiple)
	assert.True(t, analysis.PurchasingPower.IsZero(), "no real corpus")
	assert.Equal(t, 2, analysis.ComputableCount)
	assert.Equal(t, 1, analysis.ExcludedCount)
	assert.Equal(t, "Bank FD", analysis.HighestTaxedName)
}

func TestAnalyzeCorpusWithRealCorpus(t *testing.T) {
	result := buildTestResult()
	realCorpus := d("1167000")
	result.Corpus.RealCorpus = &realCorpus

	analysis := AnalyzeCorpus(result)
	assert.True(t, analysis.PurchasingPower.Equal(d("74.96")), "purchasing power %s", analysis.PurchasingPower)
}

func TestAnalyzeCorpusEmpty(t *testing.T) {
	analysis := AnalyzeCorpus(&domain.PlanResult{})
	assert.Equal(t, "", analysis.LargestHolding)
	assert.True(t, analysis.TaxDrag.IsZero())
}
