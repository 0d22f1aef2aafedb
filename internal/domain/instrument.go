package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// InstrumentType identifies a catalog instrument. It selects both the growth mode
// and the tax rule applied to a projection.
type InstrumentType string

const (
	InstrumentPPF               InstrumentType = "ppf"
	InstrumentSSY               InstrumentType = "ssy"
	InstrumentRD                InstrumentType = "rd"
	InstrumentFD                InstrumentType = "fd"
	InstrumentNSC               InstrumentType = "nsc"
	InstrumentSCSS              InstrumentType = "scss"
	InstrumentPOMIS             InstrumentType = "pomis"
	InstrumentMutualFundSIP     InstrumentType = "mf_sip"
	InstrumentMutualFundLumpSum InstrumentType = "mf_lumpsum"
	InstrumentDebtFund          InstrumentType = "debt_fund"
	InstrumentNPS               InstrumentType = "nps"
	InstrumentSGB               InstrumentType = "sgb"
	InstrumentIPO               InstrumentType = "ipo"
)

// Category is the broad product family an instrument belongs to.
type Category string

const (
	CategoryRecurringFixed   Category = "recurring-fixed-scheme"
	CategoryLumpSumFixed     Category = "lump-sum-fixed-scheme"
	CategoryMarketSIP        Category = "market-linked-sip"
	CategoryMarketLumpSum    Category = "market-linked-lumpsum"
	CategoryPension          Category = "pension-scheme"
	CategoryPayout           Category = "quarterly-payout-scheme"
	CategoryGovernmentHybrid Category = "government-bond-hybrid"
)

// GrowthMode selects the growth calculator and evolution builder.
type GrowthMode string

const (
	GrowthLumpSum    GrowthMode = "lump_sum"
	GrowthRecurring  GrowthMode = "recurring"
	GrowthPayout     GrowthMode = "payout"
	GrowthListing    GrowthMode = "listing"
	GrowthHybridBond GrowthMode = "hybrid_bond"
)

// Frequency is how often a contribution is made.
type Frequency string

const (
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
	FrequencyOnce    Frequency = "once"
)

// PeriodsPerYear returns the number of contributions per year (0 for one-time deposits)
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyYearly:
		return 1
	default:
		return 0
	}
}

// TaxRuleKind names a tax policy.
type TaxRuleKind string

const (
	TaxExempt           TaxRuleKind = "exempt"
	TaxSlabOnInterest   TaxRuleKind = "slab_on_interest"
	TaxCapitalGains     TaxRuleKind = "capital_gains"
	TaxIndexation       TaxRuleKind = "indexation"
	TaxPartialExemption TaxRuleKind = "partial_exemption"
	TaxInterestOnlySlab TaxRuleKind = "interest_only_slab"
)

// TaxRule holds the parameters of an instrument's tax policy. Rates are decimal fractions.
type TaxRule struct {
	Kind           TaxRuleKind      `yaml:"kind" json:"kind"`
	LongTermYears  decimal.Decimal  `yaml:"long_term_years,omitempty" json:"long_term_years,omitempty"`
	LongTermRate   decimal.Decimal  `yaml:"long_term_rate,omitempty" json:"long_term_rate,omitempty"`
	ShortTermRate  *decimal.Decimal `yaml:"short_term_rate,omitempty" json:"short_term_rate,omitempty"` // nil: income-tax slab
	ExemptionLimit decimal.Decimal  `yaml:"exemption_limit,omitempty" json:"exemption_limit,omitempty"`
	ExemptFraction decimal.Decimal  `yaml:"exempt_fraction,omitempty" json:"exempt_fraction,omitempty"`

	// TDS thresholds on yearly interest; zero disables the note
	TDSThreshold       decimal.Decimal `yaml:"tds_threshold,omitempty" json:"tds_threshold,omitempty"`
	TDSThresholdSenior decimal.Decimal `yaml:"tds_threshold_senior,omitempty" json:"tds_threshold_senior,omitempty"`
}

// InstrumentSpec is an immutable catalog entry.
type InstrumentSpec struct {
	Type               InstrumentType   `json:"type"`
	Name               string           `json:"name"`
	Category           Category         `json:"category"`
	Mode               GrowthMode       `json:"mode"`
	Frequency          Frequency        `json:"frequency"`
	CompoundingPerYear int              `json:"compounding_per_year"`
	PayoutsPerYear     int              `json:"payouts_per_year,omitempty"`
	AnnualCap          *decimal.Decimal `json:"annual_cap,omitempty"`
	ContributionYears  int              `json:"contribution_years,omitempty"`
	DefaultRate        decimal.Decimal  `json:"default_rate"` // percent
	DefaultYears       int              `json:"default_years"`
	CouponRate         decimal.Decimal  `json:"coupon_rate,omitempty"` // percent, hybrid bonds only
	AllowZeroRate      bool             `json:"allow_zero_rate"`
	Tax                TaxRule          `json:"tax"`
}

var (
	sectionLimit     = decimal.NewFromInt(150000)
	equityShortTerm  = decimal.NewFromFloat(0.20)
	equityLongTerm   = decimal.NewFromFloat(0.125)
	equityExemption  = decimal.NewFromInt(125000)
	tdsGeneral       = decimal.NewFromInt(40000)
	tdsSenior        = decimal.NewFromInt(50000)
	indexedLongTerm  = decimal.NewFromFloat(0.20)
	npsExemptPortion = decimal.NewFromFloat(0.60)
)

var catalog = map[InstrumentType]InstrumentSpec{
	InstrumentPPF: {
		Type: InstrumentPPF, Name: "Public Provident Fund", Category: CategoryRecurringFixed,
		Mode: GrowthRecurring, Frequency: FrequencyYearly, CompoundingPerYear: 1,
		AnnualCap: &sectionLimit, DefaultRate: decimal.NewFromFloat(7.1), DefaultYears: 15,
		Tax: TaxRule{Kind: TaxExempt},
	},
	InstrumentSSY: {
		Type: InstrumentSSY, Name: "Sukanya Samriddhi Yojana", Category: CategoryRecurringFixed,
		Mode: GrowthRecurring, Frequency: FrequencyYearly, CompoundingPerYear: 1,
		AnnualCap: &sectionLimit, ContributionYears: 15, DefaultRate: decimal.NewFromFloat(8.2), DefaultYears: 21,
		Tax: TaxRule{Kind: TaxExempt},
	},
	InstrumentRD: {
		Type: InstrumentRD, Name: "Recurring Deposit", Category: CategoryRecurringFixed,
		Mode: GrowthRecurring, Frequency: FrequencyMonthly, CompoundingPerYear: 4,
		DefaultRate: decimal.NewFromFloat(6.5), DefaultYears: 5,
		Tax: TaxRule{Kind: TaxSlabOnInterest, TDSThreshold: tdsGeneral, TDSThresholdSenior: tdsSenior},
	},
	InstrumentFD: {
		Type: InstrumentFD, Name: "Fixed Deposit", Category: CategoryLumpSumFixed,
		Mode: GrowthLumpSum, Frequency: FrequencyOnce, CompoundingPerYear: 4,
		DefaultRate: decimal.NewFromFloat(7.0), DefaultYears: 5,
		Tax: TaxRule{Kind: TaxSlabOnInterest, TDSThreshold: tdsGeneral, TDSThresholdSenior: tdsSenior},
	},
	InstrumentNSC: {
		Type: InstrumentNSC, Name: "National Savings Certificate", Category: CategoryLumpSumFixed,
		Mode: GrowthLumpSum, Frequency: FrequencyOnce, CompoundingPerYear: 1,
		DefaultRate: decimal.NewFromFloat(7.7), DefaultYears: 5,
		Tax: TaxRule{Kind: TaxSlabOnInterest},
	},
	InstrumentSCSS: {
		Type: InstrumentSCSS, Name: "Senior Citizens Savings Scheme", Category: CategoryPayout,
		Mode: GrowthPayout, Frequency: FrequencyOnce, PayoutsPerYear: 4,
		DefaultRate: decimal.NewFromFloat(8.2), DefaultYears: 5, AllowZeroRate: true,
		Tax: TaxRule{Kind: TaxSlabOnInterest, TDSThreshold: tdsSenior, TDSThresholdSenior: tdsSenior},
	},
	InstrumentPOMIS: {
		Type: InstrumentPOMIS, Name: "Post Office Monthly Income Scheme", Category: CategoryPayout,
		Mode: GrowthPayout, Frequency: FrequencyOnce, PayoutsPerYear: 12,
		DefaultRate: decimal.NewFromFloat(7.4), DefaultYears: 5, AllowZeroRate: true,
		Tax: TaxRule{Kind: TaxSlabOnInterest},
	},
	InstrumentMutualFundSIP: {
		Type: InstrumentMutualFundSIP, Name: "Mutual Fund SIP", Category: CategoryMarketSIP,
		Mode: GrowthRecurring, Frequency: FrequencyMonthly, CompoundingPerYear: 12,
		DefaultRate: decimal.NewFromInt(12), DefaultYears: 10,
		Tax: TaxRule{Kind: TaxCapitalGains, LongTermYears: decimal.NewFromInt(1), LongTermRate: equityLongTerm,
			ShortTermRate: &equityShortTerm, ExemptionLimit: equityExemption},
	},
	InstrumentMutualFundLumpSum: {
		Type: InstrumentMutualFundLumpSum, Name: "Mutual Fund Lumpsum", Category: CategoryMarketLumpSum,
		Mode: GrowthLumpSum, Frequency: FrequencyOnce, CompoundingPerYear: 1,
		DefaultRate: decimal.NewFromInt(12), DefaultYears: 10,
		Tax: TaxRule{Kind: TaxCapitalGains, LongTermYears: decimal.NewFromInt(1), LongTermRate: equityLongTerm,
			ShortTermRate: &equityShortTerm, ExemptionLimit: equityExemption},
	},
	InstrumentDebtFund: {
		Type: InstrumentDebtFund, Name: "Debt Fund", Category: CategoryMarketLumpSum,
		Mode: GrowthLumpSum, Frequency: FrequencyOnce, CompoundingPerYear: 1,
		DefaultRate: decimal.NewFromInt(7), DefaultYears: 5,
		Tax: TaxRule{Kind: TaxIndexation, LongTermYears: decimal.NewFromInt(3), LongTermRate: indexedLongTerm},
	},
	InstrumentNPS: {
		Type: InstrumentNPS, Name: "National Pension System", Category: CategoryPension,
		Mode: GrowthRecurring, Frequency: FrequencyMonthly, CompoundingPerYear: 12,
		DefaultYears: 25,
		Tax: TaxRule{Kind: TaxPartialExemption, ExemptFraction: npsExemptPortion},
	},
	InstrumentSGB: {
		Type: InstrumentSGB, Name: "Sovereign Gold Bond", Category: CategoryGovernmentHybrid,
		Mode: GrowthHybridBond, Frequency: FrequencyOnce, CompoundingPerYear: 1,
		DefaultRate: decimal.NewFromInt(8), DefaultYears: 8, CouponRate: decimal.NewFromFloat(2.5),
		Tax: TaxRule{Kind: TaxInterestOnlySlab},
	},
	InstrumentIPO: {
		Type: InstrumentIPO, Name: "IPO Allotment", Category: CategoryMarketLumpSum,
		Mode: GrowthListing, Frequency: FrequencyOnce, CompoundingPerYear: 1,
		DefaultRate: decimal.NewFromInt(12), DefaultYears: 1,
		Tax: TaxRule{Kind: TaxCapitalGains, LongTermYears: decimal.NewFromInt(1), LongTermRate: equityLongTerm,
			ShortTermRate: &equityShortTerm, ExemptionLimit: equityExemption},
	},
}

// LookupInstrument returns the catalog entry for t.
func LookupInstrument(t InstrumentType) (InstrumentSpec, bool) {
	spec, ok := catalog[t]
	return spec, ok
}

// Catalog returns every catalog entry ordered by type.
func Catalog() []InstrumentSpec {
	specs := make([]InstrumentSpec, 0, len(catalog))
	for _, s := range catalog {
		specs = append(specs, s)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Type < specs[j].Type })
	return specs
}

// DefaultTaxRules returns a fresh copy of the catalog tax rule table.
func DefaultTaxRules() map[InstrumentType]TaxRule {
	rules := make(map[InstrumentType]TaxRule, len(catalog))
	for t, s := range catalog {
		rules[t] = s.Tax
	}
	return rules
}
