package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRealValue(t *testing.T) {
	// 146932.81 / 1.06^5
	assertNear(t, dec("109796.74"), RealValue(dec("146932.81"), dec("0.06"), dec("5")).Round(2), cent)
	assert.True(t, RealValue(dec("1000"), dec("0.06"), decimal.Zero).Equal(dec("1000")))
	assert.True(t, RealValue(dec("1000"), decimal.Zero, dec("10")).Equal(dec("1000")))
}

func TestRealRate(t *testing.T) {
	tests := []struct {
		name      string
		nominal   string
		inflation string
		expected  string
	}{
		{name: "Positive real return", nominal: "0.12", inflation: "0.06", expected: "0.056604"},
		{name: "Negative real return", nominal: "0.04", inflation: "0.06", expected: "-0.018868"},
		{name: "No inflation", nominal: "0.08", inflation: "0", expected: "0.08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RealRate(dec(tt.nominal), dec(tt.inflation))
			assertNear(t, dec(tt.expected), got, dec("0.000001"))
		})
	}
}

func TestInflationAdjuster(t *testing.T) {
	adjuster := NewInflationAdjuster(dec("6"))
	assert.True(t, adjuster.Rate.Equal(dec("0.06")))

	terms := adjuster.Adjust(dec("146932.81"), dec("140000"), dec("0.08"), dec("5"))
	assert.True(t, terms.InflationRate.Equal(dec("6")))
	assertNear(t, dec("109796.74"), terms.RealFutureValue, cent)
	assert.True(t, terms.RealPostTaxCorpus.LessThan(terms.RealFutureValue))
	// (1.08/1.06 − 1) × 100
	assert.True(t, terms.RealReturnRate.Equal(dec("1.89")), "real rate %s", terms.RealReturnRate)
}
