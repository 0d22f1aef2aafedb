package calculation

import (
	"testing"

	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mix(equity, corporate, government, alternative string) domain.AllocationMix {
	return domain.AllocationMix{
		Equity:          dec(equity),
		CorporateBonds:  dec(corporate),
		GovernmentBonds: dec(government),
		Alternative:     dec(alternative),
	}
}

var npsReturns = domain.AssetReturns{
	Equity:          dec("12"),
	CorporateBonds:  dec("9"),
	GovernmentBonds: dec("8"),
	Alternative:     dec("7"),
}

func TestMaxEquityForAge(t *testing.T) {
	tests := []struct {
		age      int
		expected int64
	}{
		{age: 25, expected: 100},
		{age: 35, expected: 100},
		{age: 36, expected: 98}, // 97.5 rounds up
		{age: 40, expected: 88}, // 87.5 rounds up
		{age: 45, expected: 75},
		{age: 50, expected: 75},
		{age: 51, expected: 73}, // 72.5 rounds up
		{age: 55, expected: 63},
		{age: 60, expected: 50},
		{age: 75, expected: 50},
	}

	for _, tt := range tests {
		got := MaxEquityForAge(tt.age)
		assert.True(t, got.Equal(decimal.NewFromInt(tt.expected)), "age %d: expected %d, got %s", tt.age, tt.expected, got)
	}
}

func TestMaxEquityForAgeMonotonic(t *testing.T) {
	previous := MaxEquityForAge(35)
	for age := 36; age <= 90; age++ {
		current := MaxEquityForAge(age)
		assert.True(t, current.LessThanOrEqual(previous), "ceiling rose at age %d", age)
		assert.True(t, current.GreaterThanOrEqual(decimal.NewFromInt(50)), "ceiling below 50 at age %d", age)
		previous = current
	}
}

func TestValidateAllocation(t *testing.T) {
	tests := []struct {
		name    string
		mix     domain.AllocationMix
		wantErr bool
	}{
		{name: "Valid mix", mix: mix("50", "20", "25", "5")},
		{name: "Within tolerance", mix: mix("50", "20", "25.005", "5")},
		{name: "Sums to 90", mix: mix("50", "20", "15", "5"), wantErr: true},
		{name: "Sums to 110", mix: mix("60", "20", "25", "5"), wantErr: true},
		{name: "Alternative above ceiling", mix: mix("50", "20", "24", "6"), wantErr: true},
		{name: "Negative class", mix: mix("110", "-10", "0", "0"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAllocation(tt.mix)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAllocationNotComputable)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEffectiveAllocation(t *testing.T) {
	t.Run("Below ceiling is unchanged", func(t *testing.T) {
		m := mix("60", "20", "20", "0")
		assert.Equal(t, m, EffectiveAllocation(m, 40))
	})

	t.Run("Excess spread by relative weight", func(t *testing.T) {
		// age 45 ceiling is 75; excess 15 over corporate 5 / government 5 / alternative 0
		got := EffectiveAllocation(mix("90", "5", "5", "0"), 45)
		assert.True(t, got.Equity.Equal(dec("75")))
		assert.True(t, got.CorporateBonds.Equal(dec("12.5")), "corporate %s", got.CorporateBonds)
		assert.True(t, got.GovernmentBonds.Equal(dec("12.5")), "government %s", got.GovernmentBonds)
		assert.True(t, got.Alternative.IsZero())
		assert.True(t, got.Total().Equal(dec("100")))
	})

	t.Run("All excess to government bonds when others are zero", func(t *testing.T) {
		got := EffectiveAllocation(mix("100", "0", "0", "0"), 60)
		assert.True(t, got.Equity.Equal(dec("50")))
		assert.True(t, got.GovernmentBonds.Equal(dec("50")))
		assert.True(t, got.CorporateBonds.IsZero())
	})

	t.Run("Total preserved with uneven weights", func(t *testing.T) {
		got := EffectiveAllocation(mix("95", "1", "3", "1"), 52)
		assert.True(t, got.Total().Equal(dec("100")), "total %s", got.Total())
	})
}

func TestWeightedReturn(t *testing.T) {
	// 0.5×12 + 0.2×9 + 0.25×8 + 0.05×7 = 10.15
	got := WeightedReturn(mix("50", "20", "25", "5"), npsReturns)
	assert.True(t, got.Equal(dec("10.15")), "got %s", got)
}

func TestAverageWeightedReturnDeclinesWithCap(t *testing.T) {
	m := mix("100", "0", "0", "0")
	atStart := WeightedReturn(EffectiveAllocation(m, 45), npsReturns)
	averaged := AverageWeightedReturn(m, npsReturns, 45, 10)
	assert.True(t, averaged.LessThan(atStart), "cap declining over time lowers the mean rate")

	// a young investor below the ceiling throughout sees no change
	young := mix("50", "20", "25", "5")
	assert.True(t, AverageWeightedReturn(young, npsReturns, 25, 10).Equal(WeightedReturn(young, npsReturns)))
}

func TestResolvePensionRate(t *testing.T) {
	t.Run("Static cap", func(t *testing.T) {
		rate, effective, err := ResolvePensionRate(domain.PensionAllocation{
			Mix: mix("100", "0", "0", "0"), Returns: npsReturns, Age: 40,
		}, dec("20"))
		require.NoError(t, err)
		assert.True(t, effective.Equity.Equal(dec("88")))
		// 0.88×12 + 0.12×8 = 11.52
		assert.True(t, rate.Equal(dec("11.52")), "rate %s", rate)
	})

	t.Run("Cap over time", func(t *testing.T) {
		static, _, err := ResolvePensionRate(domain.PensionAllocation{
			Mix: mix("100", "0", "0", "0"), Returns: npsReturns, Age: 40,
		}, dec("20"))
		require.NoError(t, err)
		overTime, _, err := ResolvePensionRate(domain.PensionAllocation{
			Mix: mix("100", "0", "0", "0"), Returns: npsReturns, Age: 40, AgeBasedCapOverTime: true,
		}, dec("20"))
		require.NoError(t, err)
		assert.True(t, overTime.LessThan(static))
	})

	t.Run("Invalid allocation is not computable", func(t *testing.T) {
		_, _, err := ResolvePensionRate(domain.PensionAllocation{
			Mix: mix("50", "20", "20", "0"), Returns: npsReturns, Age: 30,
		}, dec("20"))
		assert.ErrorIs(t, err, ErrAllocationNotComputable)
	})
}
