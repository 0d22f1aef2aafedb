package domain

import (
	"github.com/shopspring/decimal"
)

// ContributionPlan describes how money goes into an instrument. Amount is the
// per-period contribution (monthly or yearly) or the one-time principal.
type ContributionPlan struct {
	Amount            decimal.Decimal  `yaml:"amount" json:"amount"`
	Frequency         Frequency        `yaml:"frequency,omitempty" json:"frequency,omitempty"`
	StepUpEnabled     bool             `yaml:"step_up_enabled,omitempty" json:"step_up_enabled,omitempty"`
	StepUpRate        decimal.Decimal  `yaml:"step_up_rate,omitempty" json:"step_up_rate,omitempty"` // percent per year
	CapPerYear        *decimal.Decimal `yaml:"cap_per_year,omitempty" json:"cap_per_year,omitempty"`
	ContributionYears int              `yaml:"contribution_years,omitempty" json:"contribution_years,omitempty"`
}

// AllocationMix is a four-way asset split in percent.
type AllocationMix struct {
	Equity          decimal.Decimal `yaml:"equity" json:"equity"`
	CorporateBonds  decimal.Decimal `yaml:"corporate_bonds" json:"corporate_bonds"`
	GovernmentBonds decimal.Decimal `yaml:"government_bonds" json:"government_bonds"`
	Alternative     decimal.Decimal `yaml:"alternative" json:"alternative"`
}

// Total returns the sum of the four allocations.
func (m AllocationMix) Total() decimal.Decimal {
	return m.Equity.Add(m.CorporateBonds).Add(m.GovernmentBonds).Add(m.Alternative)
}

// AssetReturns holds the expected annual return (percent) for each asset class.
type AssetReturns struct {
	Equity          decimal.Decimal `yaml:"equity" json:"equity"`
	CorporateBonds  decimal.Decimal `yaml:"corporate_bonds" json:"corporate_bonds"`
	GovernmentBonds decimal.Decimal `yaml:"government_bonds" json:"government_bonds"`
	Alternative     decimal.Decimal `yaml:"alternative" json:"alternative"`
}

// PensionAllocation configures the pension scheme's asset mix.
type PensionAllocation struct {
	Mix                 AllocationMix `yaml:"mix" json:"mix"`
	Returns             AssetReturns  `yaml:"returns" json:"returns"`
	Age                 int           `yaml:"age" json:"age"`
	AgeBasedCapOverTime bool          `yaml:"age_based_cap_over_time,omitempty" json:"age_based_cap_over_time,omitempty"`
}

// InstrumentConfig is the per-instrument parameter bundle. Rates are percentages.
type InstrumentConfig struct {
	Name             string         `yaml:"name" json:"name"`
	Type             InstrumentType `yaml:"type" json:"type"`
	ContributionPlan `yaml:",inline"`

	// Rate is optional so that a legitimate zero can be told apart from "not supplied"
	Rate               *decimal.Decimal   `yaml:"rate,omitempty" json:"rate,omitempty"`
	Years              decimal.Decimal    `yaml:"years" json:"years"`
	CompoundingPerYear int                `yaml:"compounding_per_year,omitempty" json:"compounding_per_year,omitempty"`
	Allocation         *PensionAllocation `yaml:"allocation,omitempty" json:"allocation,omitempty"`
	ListingGain        decimal.Decimal    `yaml:"listing_gain,omitempty" json:"listing_gain,omitempty"`
	CouponRate         *decimal.Decimal   `yaml:"coupon_rate,omitempty" json:"coupon_rate,omitempty"`
}

// TaxContext carries the investor's tax situation for one calculation.
type TaxContext struct {
	IncomeTaxSlab decimal.Decimal `yaml:"income_tax_slab" json:"income_tax_slab"` // 0-1 fraction
	SeniorCitizen bool            `yaml:"senior_citizen,omitempty" json:"senior_citizen,omitempty"`
}

// Settings are shared projection settings.
type Settings struct {
	InflationRate  decimal.Decimal `yaml:"inflation_rate" json:"inflation_rate"` // percent
	ShowRealValues bool            `yaml:"show_real_values,omitempty" json:"show_real_values,omitempty"`
}

// Plan is a set of instruments projected together into one corpus.
type Plan struct {
	Name         string                     `yaml:"name" json:"name"`
	TaxContext   TaxContext                 `yaml:"tax_context" json:"tax_context"`
	Settings     Settings                   `yaml:"settings" json:"settings"`
	TaxOverrides map[InstrumentType]TaxRule `yaml:"tax_overrides,omitempty" json:"tax_overrides,omitempty"`
	Instruments  []InstrumentConfig         `yaml:"instruments" json:"instruments"`
}
