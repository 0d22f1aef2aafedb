package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rpgo/corpus-calculator/internal/domain"
	pkgdec "github.com/rpgo/corpus-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ErrIncompleteInput marks parameters that cannot be projected yet (missing rate,
// non-positive amount or tenure). It becomes an outcome status, not a failure.
var ErrIncompleteInput = errors.New("incomplete input")

// maxConcurrentInstruments bounds the goroutines RunPlan keeps in flight.
const maxConcurrentInstruments = 8

var reconcileTolerance = decimal.NewFromFloat(0.01)

// CalculationEngine projects instruments and aggregates them into a corpus.
// It holds no per-call state; every projection depends only on its arguments.
type CalculationEngine struct {
	Taxes  *TaxCalculator
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine with the catalog tax rules
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Taxes:  NewTaxCalculator(),
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// ComputeProjection projects a single instrument: growth, evolution ledger, tax and,
// when requested, real terms. Incomplete parameters and invalid allocations come back
// as an outcome status; only an unknown instrument type is an error.
func (ce *CalculationEngine) ComputeProjection(cfg domain.InstrumentConfig, taxCtx domain.TaxContext, settings domain.Settings) (*domain.InstrumentOutcome, error) {
	spec, ok := domain.LookupInstrument(cfg.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownInstrument, cfg.Type)
	}

	outcome := &domain.InstrumentOutcome{
		Name:     cfg.Name,
		Type:     spec.Type,
		Category: spec.Category,
		Status:   domain.StatusOK,
		Years:    cfg.Years,
	}
	if outcome.Name == "" {
		outcome.Name = spec.Name
	}
	log := forInstrument(ce.Logger, outcome.Name)

	if !cfg.Amount.IsPositive() {
		return markIncomplete(outcome, fmt.Errorf("%w: amount must be positive", ErrIncompleteInput)), nil
	}
	if !cfg.Years.IsPositive() {
		return markIncomplete(outcome, fmt.Errorf("%w: tenure must be positive", ErrIncompleteInput)), nil
	}

	ratePercent, mix, err := resolveRate(cfg, spec)
	switch {
	case errors.Is(err, ErrAllocationNotComputable):
		outcome.Status = domain.StatusAllocationInvalid
		outcome.Reason = err.Error()
		log.Warnf("%v", err)
		return outcome, nil
	case errors.Is(err, ErrIncompleteInput):
		return markIncomplete(outcome, err), nil
	case err != nil:
		return nil, err
	}
	outcome.AnnualRate = pkgdec.Round2(ratePercent)
	outcome.Allocation = mix

	rate := pkgdec.PercentToFraction(ratePercent)
	growth, err := project(cfg, spec, rate)
	if errors.Is(err, ErrIncompleteInput) {
		return markIncomplete(outcome, err), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", outcome.Name, err)
	}

	projection := assembleProjection(growth.futureValue, growth.rows)
	if last := projection.Evolution[len(projection.Evolution)-1]; !pkgdec.WithinTolerance(last.ClosingBalance, projection.FutureValue, reconcileTolerance) {
		log.Warnf("ledger closes at %s but future value is %s",
			last.ClosingBalance.StringFixed(2), projection.FutureValue.StringFixed(2))
	}
	outcome.Projection = projection

	tax, err := ce.Taxes.Calculate(TaxInput{
		Instrument:     spec.Type,
		FutureValue:    projection.FutureValue,
		Principal:      projection.TotalInvested,
		Returns:        projection.ReturnsEarned,
		InterestIncome: pkgdec.Round2(growth.interestIncome),
		HoldingYears:   cfg.Years,
		InflationRate:  pkgdec.PercentToFraction(settings.InflationRate),
		Context:        taxCtx,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", outcome.Name, err)
	}
	outcome.Tax = &tax

	if settings.ShowRealValues {
		realTerms := NewInflationAdjuster(settings.InflationRate).Adjust(projection.FutureValue, tax.PostTaxCorpus, rate, cfg.Years)
		outcome.Real = &realTerms
	}

	log.Debugf("invested=%s fv=%s tax=%s",
		projection.TotalInvested.StringFixed(2), projection.FutureValue.StringFixed(2), tax.TaxAmount.StringFixed(2))
	return outcome, nil
}

// RunPlan projects every instrument of a plan independently and aggregates the corpus.
// Instruments run concurrently; results keep the plan's order. When an instrument fails
// outright the joined error is returned together with the result for the rest.
func (ce *CalculationEngine) RunPlan(ctx context.Context, plan *domain.Plan) (*domain.PlanResult, error) {
	if plan == nil {
		return nil, fmt.Errorf("plan cannot be nil")
	}
	runner := *ce
	if len(plan.TaxOverrides) > 0 {
		runner.Taxes = ce.Taxes.WithOverrides(plan.TaxOverrides)
	}
	ce.Logger.Infof("Running plan %q with %d instruments", plan.Name, len(plan.Instruments))

	outcomes := make([]domain.InstrumentOutcome, len(plan.Instruments))
	errs := make([]error, len(plan.Instruments))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentInstruments)
	for i, cfg := range plan.Instruments {
		wg.Add(1)
		go func(idx int, cfg domain.InstrumentConfig) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire semaphore
			defer func() { <-semaphore }() // Release semaphore

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			outcome, err := runner.ComputeProjection(cfg, plan.TaxContext, plan.Settings)
			if err != nil {
				errs[idx] = fmt.Errorf("instrument %d (%s): %w", idx+1, cfg.Type, err)
				return
			}
			outcomes[idx] = *outcome
		}(i, cfg)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan run cancelled: %w", err)
	}

	computed := make([]domain.InstrumentOutcome, 0, len(outcomes))
	for i, o := range outcomes {
		if errs[i] == nil {
			computed = append(computed, o)
		}
	}
	corpus := AggregateCorpus(computed)
	for _, nc := range corpus.NotComputable {
		ce.Logger.Warnf("Excluded %s from corpus (%s): %s", nc.Name, nc.Status, nc.Reason)
	}
	result := &domain.PlanResult{
		Name:        plan.Name,
		Outcomes:    computed,
		Corpus:      corpus,
		Assumptions: plan.GenerateAssumptions(),
	}

	// Failed instruments are dropped from the result; the others still report.
	if err := errors.Join(errs...); err != nil {
		ce.Logger.Errorf("Plan %q: %d of %d instruments failed", plan.Name, len(outcomes)-len(computed), len(outcomes))
		return result, err
	}
	return result, nil
}

func markIncomplete(outcome *domain.InstrumentOutcome, err error) *domain.InstrumentOutcome {
	outcome.Status = domain.StatusIncomplete
	outcome.Reason = err.Error()
	return outcome
}

// resolveRate returns the annual rate in percent. The pension scheme derives it from
// its allocation; everything else needs an explicitly supplied rate.
func resolveRate(cfg domain.InstrumentConfig, spec domain.InstrumentSpec) (decimal.Decimal, *domain.AllocationMix, error) {
	if spec.Mode == domain.GrowthRecurring && spec.Category == domain.CategoryPension && cfg.Allocation != nil {
		rate, effective, err := ResolvePensionRate(*cfg.Allocation, cfg.Years)
		if err != nil {
			return decimal.Zero, nil, err
		}
		return rate, &effective, nil
	}

	switch {
	case cfg.Rate == nil:
		return decimal.Zero, nil, fmt.Errorf("%w: rate not supplied", ErrIncompleteInput)
	case cfg.Rate.IsNegative():
		return decimal.Zero, nil, fmt.Errorf("%w: rate cannot be negative", ErrIncompleteInput)
	case cfg.Rate.IsZero() && !spec.AllowZeroRate:
		return decimal.Zero, nil, fmt.Errorf("%w: zero rate not permitted for %s", ErrIncompleteInput, spec.Name)
	}
	return *cfg.Rate, nil, nil
}

type growthOutcome struct {
	futureValue    decimal.Decimal
	rows           []domain.EvolutionRow
	interestIncome decimal.Decimal
}

// project dispatches to the growth calculator and evolution builder for the instrument's mode.
func project(cfg domain.InstrumentConfig, spec domain.InstrumentSpec, rate decimal.Decimal) (growthOutcome, error) {
	out := growthOutcome{futureValue: decimal.Zero, interestIncome: decimal.Zero}
	compounding := spec.CompoundingPerYear
	if cfg.CompoundingPerYear > 0 {
		compounding = cfg.CompoundingPerYear
	}

	switch spec.Mode {
	case domain.GrowthLumpSum:
		out.futureValue = CompoundLumpSum(cfg.Amount, rate, cfg.Years, compounding)
		out.rows = BuildLumpSumEvolution(cfg.Amount, rate, cfg.Years, compounding)

	case domain.GrowthRecurring:
		terms, err := recurringTerms(cfg, spec, rate, compounding)
		if err != nil {
			return out, err
		}
		out.futureValue = RecurringPlanFutureValue(terms)
		out.rows = BuildRecurringEvolution(terms)

	case domain.GrowthPayout:
		schedule := PayoutSchemeValue(cfg.Amount, rate, cfg.Years, spec.PayoutsPerYear)
		out.futureValue = schedule.Maturity
		out.interestIncome = schedule.TotalInterest
		out.rows = BuildPayoutEvolution(cfg.Amount, rate, cfg.Years, spec.PayoutsPerYear)

	case domain.GrowthListing:
		gain := pkgdec.PercentToFraction(cfg.ListingGain)
		out.futureValue = ListingThenCompound(cfg.Amount, gain, rate, cfg.Years)
		out.rows = BuildListingEvolution(cfg.Amount, gain, rate, cfg.Years)

	case domain.GrowthHybridBond:
		coupon := spec.CouponRate
		if cfg.CouponRate != nil {
			coupon = *cfg.CouponRate
		}
		coupon = pkgdec.PercentToFraction(coupon)
		bond := HybridBondValue(cfg.Amount, rate, coupon, cfg.Years)
		out.futureValue = bond.Maturity
		out.interestIncome = bond.CouponIncome
		out.rows = BuildHybridBondEvolution(cfg.Amount, rate, coupon, cfg.Years)

	default:
		return out, fmt.Errorf("unsupported growth mode %q", spec.Mode)
	}

	if len(out.rows) == 0 || !out.futureValue.IsPositive() {
		return out, fmt.Errorf("%w: tenure shorter than one contribution period", ErrIncompleteInput)
	}
	return out, nil
}

// recurringTerms fills plan gaps from the catalog: frequency, annual cap and deposit years.
func recurringTerms(cfg domain.InstrumentConfig, spec domain.InstrumentSpec, rate decimal.Decimal, compounding int) (RecurringTerms, error) {
	frequency := cfg.Frequency
	if frequency == "" {
		frequency = spec.Frequency
	}
	periods := frequency.PeriodsPerYear()
	if periods == 0 {
		return RecurringTerms{}, fmt.Errorf("%w: %s needs a monthly or yearly contribution", ErrIncompleteInput, spec.Name)
	}

	stepUp := decimal.Zero
	if cfg.StepUpEnabled {
		if cfg.StepUpRate.IsNegative() {
			return RecurringTerms{}, fmt.Errorf("%w: step-up rate cannot be negative", ErrIncompleteInput)
		}
		stepUp = pkgdec.PercentToFraction(cfg.StepUpRate)
	}

	capPerYear := spec.AnnualCap
	if cfg.CapPerYear != nil {
		capPerYear = cfg.CapPerYear
	}
	contributionYears := spec.ContributionYears
	if cfg.ContributionYears > 0 {
		contributionYears = cfg.ContributionYears
	}

	return RecurringTerms{
		BaseContribution:   cfg.Amount,
		PeriodsPerYear:     periods,
		StepUpRate:         stepUp,
		CapPerYear:         capPerYear,
		ContributionYears:  contributionYears,
		AnnualRate:         rate,
		CompoundingPerYear: compounding,
		Years:              cfg.Years,
	}, nil
}

// assembleProjection rounds the scalar future value and derives invested and returns
// from the ledger, so FutureValue = TotalInvested + ReturnsEarned holds exactly.
func assembleProjection(futureValue decimal.Decimal, rows []domain.EvolutionRow) *domain.ProjectionResult {
	fv := pkgdec.Round2(futureValue)
	invested := sumContributions(rows)
	return &domain.ProjectionResult{
		TotalInvested: invested,
		ReturnsEarned: fv.Sub(invested),
		FutureValue:   fv,
		Evolution:     rows,
	}
}
