package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// EvolutionRow is one period of an instrument's ledger.
// ClosingBalance = OpeningBalance + Contribution + Growth holds exactly.
type EvolutionRow struct {
	Period                 int             `json:"period"`
	Label                  string          `json:"label,omitempty"`
	OpeningBalance         decimal.Decimal `json:"opening_balance"`
	Contribution           decimal.Decimal `json:"contribution"`
	Growth                 decimal.Decimal `json:"growth"`
	Payout                 decimal.Decimal `json:"payout"`
	InterestBearingBalance decimal.Decimal `json:"interest_bearing_balance"`
	ClosingBalance         decimal.Decimal `json:"closing_balance"`
}

// ProjectionResult is the growth outcome of one instrument.
type ProjectionResult struct {
	TotalInvested decimal.Decimal `json:"total_invested"`
	ReturnsEarned decimal.Decimal `json:"returns_earned"`
	FutureValue   decimal.Decimal `json:"future_value"`
	Evolution     []EvolutionRow  `json:"evolution"`
}

// TaxResult is the post-tax outcome of one instrument.
type TaxResult struct {
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	PostTaxCorpus decimal.Decimal `json:"post_tax_corpus"`
	TaxRate       decimal.Decimal `json:"tax_rate"` // percent of future value
	TaxRule       TaxRuleKind     `json:"tax_rule"`
	Treatment     string          `json:"treatment,omitempty"` // long_term, short_term, long_term_indexed
	TDSInfo       string          `json:"tds_info,omitempty"`
}

// RealTerms expresses an outcome in today's purchasing power.
type RealTerms struct {
	InflationRate     decimal.Decimal `json:"inflation_rate"` // percent
	RealFutureValue   decimal.Decimal `json:"real_future_value"`
	RealPostTaxCorpus decimal.Decimal `json:"real_post_tax_corpus"`
	RealReturnRate    decimal.Decimal `json:"real_return_rate"` // percent
}

// OutcomeStatus tells whether an instrument produced a projection.
type OutcomeStatus string

const (
	StatusOK                OutcomeStatus = "ok"
	StatusIncomplete        OutcomeStatus = "incomplete"
	StatusAllocationInvalid OutcomeStatus = "allocation_invalid"
)

// InstrumentOutcome bundles everything computed for one instrument.
type InstrumentOutcome struct {
	Name       string            `json:"name"`
	Type       InstrumentType    `json:"type"`
	Category   Category          `json:"category"`
	Status     OutcomeStatus     `json:"status"`
	Reason     string            `json:"reason,omitempty"`
	Years      decimal.Decimal   `json:"years"`
	AnnualRate decimal.Decimal   `json:"annual_rate"` // percent actually applied
	Allocation *AllocationMix    `json:"effective_allocation,omitempty"`
	Projection *ProjectionResult `json:"projection,omitempty"`
	Tax        *TaxResult        `json:"tax,omitempty"`
	Real       *RealTerms        `json:"real,omitempty"`
}

// Computable reports whether the outcome carries a projection.
func (o InstrumentOutcome) Computable() bool {
	return o.Status == StatusOK && o.Projection != nil && o.Tax != nil
}

// CorpusShare is one instrument's contribution to the corpus.
type CorpusShare struct {
	Name          string          `json:"name"`
	Type          InstrumentType  `json:"type"`
	MaturityValue decimal.Decimal `json:"maturity_value"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// NotComputable records an instrument left out of the corpus.
type NotComputable struct {
	Name   string        `json:"name"`
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason"`
}

// CorpusTotals aggregates every computable instrument.
type CorpusTotals struct {
	TotalInvested decimal.Decimal  `json:"total_invested"`
	TotalReturns  decimal.Decimal  `json:"total_returns"`
	NominalCorpus decimal.Decimal  `json:"nominal_corpus"`
	PostTaxCorpus decimal.Decimal  `json:"post_tax_corpus"`
	TotalTax      decimal.Decimal  `json:"total_tax"`
	RealCorpus    *decimal.Decimal `json:"real_corpus,omitempty"`
	Shares        []CorpusShare    `json:"shares"`
	NotComputable []NotComputable  `json:"not_computable,omitempty"`
}

// PlanResult is the full output of a plan run.
type PlanResult struct {
	Name        string              `json:"name"`
	Outcomes    []InstrumentOutcome `json:"outcomes"`
	Corpus      CorpusTotals        `json:"corpus"`
	Assumptions []string            `json:"assumptions"`
}

// GenerateAssumptions lists the modelling assumptions behind a plan run
func (p *Plan) GenerateAssumptions() []string {
	return []string{
		fmt.Sprintf("Income-tax slab: %s%%", p.TaxContext.IncomeTaxSlab.Mul(decimal.NewFromInt(100)).StringFixed(1)),
		fmt.Sprintf("General inflation: %s%% annually", p.Settings.InflationRate.StringFixed(1)),
		"Indexation approximated with the general inflation rate (no cost-inflation-index table)",
		"Age-based pension equity cap over time uses the mean of yearly weighted returns",
		"TDS notes are informational and do not change the tax amount",
	}
}
