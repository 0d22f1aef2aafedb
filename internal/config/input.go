package config

import (
	"fmt"
	"os"

	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PlanDefaults fill values a plan file leaves out.
type PlanDefaults struct {
	IncomeTaxSlab decimal.Decimal // 0-1 fraction
	InflationRate decimal.Decimal // percent
}

// DefaultPlanDefaults returns the built-in defaults: 30% slab, 6% inflation.
func DefaultPlanDefaults() PlanDefaults {
	return PlanDefaults{
		IncomeTaxSlab: decimal.NewFromFloat(0.3),
		InflationRate: decimal.NewFromInt(6),
	}
}

// InputParser handles parsing of plan files
type InputParser struct {
	Defaults PlanDefaults
}

// NewInputParser creates a new input parser with the built-in defaults
func NewInputParser() *InputParser {
	return &InputParser{Defaults: DefaultPlanDefaults()}
}

// NewInputParserWithDefaults creates a parser that fills omitted values from defaults
func NewInputParserWithDefaults(defaults PlanDefaults) *InputParser {
	return &InputParser{Defaults: defaults}
}

// presenceProbe records which defaultable keys a plan file actually sets, so that a
// written zero is kept rather than replaced.
type presenceProbe struct {
	TaxContext struct {
		IncomeTaxSlab *decimal.Decimal `yaml:"income_tax_slab"`
	} `yaml:"tax_context"`
	Settings struct {
		InflationRate *decimal.Decimal `yaml:"inflation_rate"`
	} `yaml:"settings"`
}

// LoadFromFile loads a plan from a YAML (or JSON) file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes, defaults and validates a plan document
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var probe presenceProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if probe.TaxContext.IncomeTaxSlab == nil {
		plan.TaxContext.IncomeTaxSlab = ip.Defaults.IncomeTaxSlab
	}
	if probe.Settings.InflationRate == nil {
		plan.Settings.InflationRate = ip.Defaults.InflationRate
	}
	if plan.Name == "" {
		plan.Name = "Corpus plan"
	}

	if err := ip.ValidatePlan(&plan); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}
	return &plan, nil
}

// ValidatePlan checks ranges and references in a plan. Asset allocation sums are
// left to the engine, which reports them as not computable.
func (ip *InputParser) ValidatePlan(plan *domain.Plan) error {
	if len(plan.Instruments) == 0 {
		return fmt.Errorf("no instruments provided")
	}

	if plan.TaxContext.IncomeTaxSlab.LessThan(decimal.Zero) || plan.TaxContext.IncomeTaxSlab.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("income tax slab must be between 0 and 1, got %s", plan.TaxContext.IncomeTaxSlab.String())
	}
	if plan.Settings.InflationRate.LessThan(decimal.NewFromInt(-10)) || plan.Settings.InflationRate.GreaterThan(decimal.NewFromInt(30)) {
		return fmt.Errorf("inflation rate must be between -10%% and 30%%, got %s%%", plan.Settings.InflationRate.String())
	}

	for t, rule := range plan.TaxOverrides {
		if err := ip.validateTaxRule(t, rule); err != nil {
			return fmt.Errorf("tax override %s validation failed: %w", t, err)
		}
	}

	for i := range plan.Instruments {
		if err := ip.validateInstrument(&plan.Instruments[i]); err != nil {
			return fmt.Errorf("instrument %d validation failed: %w", i+1, err)
		}
	}
	return nil
}

// validateInstrument validates a single instrument's parameters
func (ip *InputParser) validateInstrument(cfg *domain.InstrumentConfig) error {
	if _, ok := domain.LookupInstrument(cfg.Type); !ok {
		return fmt.Errorf("unknown instrument type %q", cfg.Type)
	}
	if cfg.Amount.LessThan(decimal.Zero) {
		return fmt.Errorf("amount cannot be negative")
	}
	if cfg.Years.LessThan(decimal.Zero) || cfg.Years.GreaterThan(decimal.NewFromInt(60)) {
		return fmt.Errorf("years must be between 0 and 60")
	}
	if cfg.Rate != nil && (cfg.Rate.LessThan(decimal.Zero) || cfg.Rate.GreaterThan(decimal.NewFromInt(100))) {
		return fmt.Errorf("rate must be between 0%% and 100%%")
	}
	switch cfg.Frequency {
	case "", domain.FrequencyMonthly, domain.FrequencyYearly, domain.FrequencyOnce:
	default:
		return fmt.Errorf("frequency must be 'monthly', 'yearly', or 'once'")
	}
	if cfg.StepUpEnabled && (cfg.StepUpRate.LessThan(decimal.Zero) || cfg.StepUpRate.GreaterThan(decimal.NewFromInt(100))) {
		return fmt.Errorf("step-up rate must be between 0%% and 100%%")
	}
	if cfg.CapPerYear != nil && cfg.CapPerYear.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("cap per year must be positive")
	}
	if cfg.ContributionYears < 0 {
		return fmt.Errorf("contribution years cannot be negative")
	}
	if cfg.CompoundingPerYear < 0 || cfg.CompoundingPerYear > 365 {
		return fmt.Errorf("compounding per year must be between 1 and 365")
	}
	if cfg.ListingGain.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return fmt.Errorf("listing gain must be above -100%%")
	}
	if cfg.CouponRate != nil && cfg.CouponRate.LessThan(decimal.Zero) {
		return fmt.Errorf("coupon rate cannot be negative")
	}
	if cfg.Allocation != nil && (cfg.Allocation.Age < 18 || cfg.Allocation.Age > 100) {
		return fmt.Errorf("allocation age must be between 18 and 100")
	}
	return nil
}

// validateTaxRule validates an override from the plan file
func (ip *InputParser) validateTaxRule(t domain.InstrumentType, rule domain.TaxRule) error {
	if _, ok := domain.LookupInstrument(t); !ok {
		return fmt.Errorf("unknown instrument type %q", t)
	}
	switch rule.Kind {
	case domain.TaxExempt, domain.TaxSlabOnInterest, domain.TaxCapitalGains,
		domain.TaxIndexation, domain.TaxPartialExemption, domain.TaxInterestOnlySlab:
	default:
		return fmt.Errorf("unknown tax rule kind %q", rule.Kind)
	}

	fractions := []struct {
		name  string
		value decimal.Decimal
	}{
		{"long_term_rate", rule.LongTermRate},
		{"exempt_fraction", rule.ExemptFraction},
	}
	if rule.ShortTermRate != nil {
		fractions = append(fractions, struct {
			name  string
			value decimal.Decimal
		}{"short_term_rate", *rule.ShortTermRate})
	}
	for _, f := range fractions {
		if f.value.LessThan(decimal.Zero) || f.value.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s must be between 0 and 1", f.name)
		}
	}
	if rule.LongTermYears.LessThan(decimal.Zero) || rule.ExemptionLimit.LessThan(decimal.Zero) {
		return fmt.Errorf("long-term years and exemption limit cannot be negative")
	}
	return nil
}

// CreateExamplePlan creates an example household plan
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	rate := func(v float64) *decimal.Decimal {
		d := decimal.NewFromFloat(v)
		return &d
	}

	return &domain.Plan{
		Name: "Example household corpus",
		TaxContext: domain.TaxContext{
			IncomeTaxSlab: decimal.NewFromFloat(0.3),
		},
		Settings: domain.Settings{
			InflationRate:  decimal.NewFromInt(6),
			ShowRealValues: true,
		},
		Instruments: []domain.InstrumentConfig{
			{
				Name:             "PPF",
				Type:             domain.InstrumentPPF,
				ContributionPlan: domain.ContributionPlan{Amount: decimal.NewFromInt(150000), Frequency: domain.FrequencyYearly},
				Rate:             rate(7.1),
				Years:            decimal.NewFromInt(15),
			},
			{
				Name: "Equity SIP",
				Type: domain.InstrumentMutualFundSIP,
				ContributionPlan: domain.ContributionPlan{
					Amount:        decimal.NewFromInt(10000),
					Frequency:     domain.FrequencyMonthly,
					StepUpEnabled: true,
					StepUpRate:    decimal.NewFromInt(10),
				},
				Rate:  rate(12),
				Years: decimal.NewFromInt(15),
			},
			{
				Name:             "Bank FD",
				Type:             domain.InstrumentFD,
				ContributionPlan: domain.ContributionPlan{Amount: decimal.NewFromInt(500000)},
				Rate:             rate(7),
				Years:            decimal.NewFromInt(5),
			},
			{
				Name:             "SCSS",
				Type:             domain.InstrumentSCSS,
				ContributionPlan: domain.ContributionPlan{Amount: decimal.NewFromInt(1000000)},
				Rate:             rate(8.2),
				Years:            decimal.NewFromInt(5),
			},
			{
				Name:             "NPS Tier I",
				Type:             domain.InstrumentNPS,
				ContributionPlan: domain.ContributionPlan{Amount: decimal.NewFromInt(5000), Frequency: domain.FrequencyMonthly},
				Years:            decimal.NewFromInt(20),
				Allocation: &domain.PensionAllocation{
					Mix: domain.AllocationMix{
						Equity:          decimal.NewFromInt(75),
						CorporateBonds:  decimal.NewFromInt(10),
						GovernmentBonds: decimal.NewFromInt(10),
						Alternative:     decimal.NewFromInt(5),
					},
					Returns: domain.AssetReturns{
						Equity:          decimal.NewFromInt(12),
						CorporateBonds:  decimal.NewFromInt(9),
						GovernmentBonds: decimal.NewFromInt(8),
						Alternative:     decimal.NewFromInt(7),
					},
					Age:                 40,
					AgeBasedCapOverTime: true,
				},
			},
			{
				Name:             "Gold bond",
				Type:             domain.InstrumentSGB,
				ContributionPlan: domain.ContributionPlan{Amount: decimal.NewFromInt(100000)},
				Rate:             rate(8),
				Years:            decimal.NewFromInt(8),
			},
		},
	}
}

// WritePlan writes a plan as YAML
func (ip *InputParser) WritePlan(plan *domain.Plan, filename string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
