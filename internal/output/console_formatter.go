package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/corpus-calculator/internal/domain"
)

// ConsoleFormatter renders the detailed console report: assumptions, one block per
// instrument with its yearly ledger, then the corpus summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(results *domain.PlanResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintf(&buf, "CORPUS PROJECTION: %s\n", strings.ToUpper(results.Name))
	fmt.Fprintln(&buf, strings.Repeat("=", 81))
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results.Assumptions) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, o := range results.Outcomes {
		title := fmt.Sprintf("INSTRUMENT %d: %s", i+1, o.Name)
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
		if !o.Computable() {
			fmt.Fprintf(&buf, "  Not computable (%s): %s\n\n", o.Status, o.Reason)
			continue
		}
		writeOutcome(&buf, o)
	}

	writeCorpus(&buf, results)
	return buf.Bytes(), nil
}

func writeOutcome(buf *bytes.Buffer, o domain.InstrumentOutcome) {
	p := o.Projection
	fmt.Fprintf(buf, "  Category:               %s\n", o.Category)
	fmt.Fprintf(buf, "  Tenure:                 %s years at %s\n", o.Years.String(), FormatPercentage(o.AnnualRate))
	if o.Allocation != nil {
		fmt.Fprintf(buf, "  Effective allocation:   E %s / C %s / G %s / A %s\n",
			FormatPercentage(o.Allocation.Equity), FormatPercentage(o.Allocation.CorporateBonds),
			FormatPercentage(o.Allocation.GovernmentBonds), FormatPercentage(o.Allocation.Alternative))
	}
	fmt.Fprintf(buf, "  Total invested:         %s\n", FormatCurrency(p.TotalInvested))
	fmt.Fprintf(buf, "  Returns earned:         %s\n", FormatCurrency(p.ReturnsEarned))
	fmt.Fprintf(buf, "  Maturity value:         %s\n", FormatCurrency(p.FutureValue))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "TAX:")
	treatment := string(o.Tax.TaxRule)
	if o.Tax.Treatment != "" {
		treatment += " (" + o.Tax.Treatment + ")"
	}
	fmt.Fprintf(buf, "  Rule:                   %s\n", treatment)
	fmt.Fprintf(buf, "  Tax payable:            %s\n", FormatCurrency(o.Tax.TaxAmount))
	fmt.Fprintf(buf, "  Post-tax corpus:        %s\n", FormatCurrency(o.Tax.PostTaxCorpus))
	fmt.Fprintf(buf, "  Effective tax rate:     %s\n", FormatPercentage(o.Tax.TaxRate))
	if o.Tax.TDSInfo != "" {
		fmt.Fprintf(buf, "  Note:                   %s\n", o.Tax.TDSInfo)
	}
	if o.Real != nil {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "IN TODAY'S MONEY (inflation %s):\n", FormatPercentage(o.Real.InflationRate))
		fmt.Fprintf(buf, "  Real maturity value:    %s\n", FormatCurrency(o.Real.RealFutureValue))
		fmt.Fprintf(buf, "  Real post-tax corpus:   %s\n", FormatCurrency(o.Real.RealPostTaxCorpus))
		fmt.Fprintf(buf, "  Real return rate:       %s\n", FormatPercentage(o.Real.RealReturnRate))
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-10s %18s %18s %18s %18s\n", "PERIOD", "OPENING", "DEPOSITS", "GROWTH", "CLOSING")
	fmt.Fprintln(buf, strings.Repeat("-", 86))
	for _, row := range p.Evolution {
		label := row.Label
		if label == "" {
			label = fmt.Sprintf("Year %d", row.Period)
		}
		fmt.Fprintf(buf, "%-10s %18s %18s %18s %18s\n", label,
			FormatCurrency(row.OpeningBalance), FormatCurrency(row.Contribution),
			FormatCurrency(row.Growth), FormatCurrency(row.ClosingBalance))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf)
}

func writeCorpus(buf *bytes.Buffer, results *domain.PlanResult) {
	corpus := results.Corpus
	fmt.Fprintln(buf, "CORPUS SUMMARY")
	fmt.Fprintln(buf, "==============")
	fmt.Fprintf(buf, "Total invested:      %s\n", FormatCurrency(corpus.TotalInvested))
	fmt.Fprintf(buf, "Total returns:       %s\n", FormatCurrency(corpus.TotalReturns))
	fmt.Fprintf(buf, "Nominal corpus:      %s\n", FormatCurrency(corpus.NominalCorpus))
	fmt.Fprintf(buf, "Total tax:           %s\n", FormatCurrency(corpus.TotalTax))
	fmt.Fprintf(buf, "Post-tax corpus:     %s\n", FormatCurrency(corpus.PostTaxCorpus))
	if corpus.RealCorpus != nil {
		fmt.Fprintf(buf, "Real corpus:         %s\n", FormatCurrency(*corpus.RealCorpus))
	}
	fmt.Fprintln(buf)

	if len(corpus.Shares) > 0 {
		fmt.Fprintf(buf, "%-35s %20s %10s\n", "INSTRUMENT", "MATURITY VALUE", "SHARE")
		fmt.Fprintln(buf, strings.Repeat("-", 67))
		for _, s := range corpus.Shares {
			fmt.Fprintf(buf, "%-35s %20s %10s\n", s.Name, FormatCurrency(s.MaturityValue), FormatPercentage(s.Percentage))
		}
		fmt.Fprintln(buf)
	}

	if len(corpus.NotComputable) > 0 {
		fmt.Fprintln(buf, "EXCLUDED FROM CORPUS:")
		for _, nc := range corpus.NotComputable {
			fmt.Fprintf(buf, "• %s (%s): %s\n", nc.Name, nc.Status, nc.Reason)
		}
		fmt.Fprintln(buf)
	}

	analysis := AnalyzeCorpus(results)
	if analysis.LargestHolding != "" {
		fmt.Fprintln(buf, "SUMMARY")
		fmt.Fprintln(buf, "=======")
		fmt.Fprintf(buf, "Instruments: %d in corpus, %d excluded\n", analysis.ComputableCount, analysis.ExcludedCount)
		fmt.Fprintf(buf, "Largest holding: %s (%s)\n", analysis.LargestHolding, FormatPercentage(analysis.LargestShare))
		fmt.Fprintf(buf, "Heaviest tax: %s (%s of maturity value)\n", analysis.HighestTaxedName, FormatPercentage(analysis.HighestTaxRate))
		fmt.Fprintf(buf, "Tax drag: %s of the nominal corpus\n", FormatPercentage(analysis.TaxDrag))
		fmt.Fprintf(buf, "Money multiple: %sx\n", analysis.ReturnMultiple.StringFixed(2))
		if corpus.RealCorpus != nil {
			fmt.Fprintf(buf, "Purchasing power kept: %s\n", FormatPercentage(analysis.PurchasingPower))
		}
	}
}

// ConsoleSummaryFormatter provides a concise one-line-per-instrument summary.
type ConsoleSummaryFormatter struct{}

func (c ConsoleSummaryFormatter) Name() string { return "console-lite" }

func (c ConsoleSummaryFormatter) Format(results *domain.PlanResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "CORPUS SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, o := range results.Outcomes {
		if !o.Computable() {
			fmt.Fprintf(&buf, "%s: not computable (%s)\n", o.Name, o.Status)
			continue
		}
		fmt.Fprintf(&buf, "%s: Invested=%s Maturity=%s PostTax=%s\n",
			o.Name,
			FormatCurrency(o.Projection.TotalInvested),
			FormatCurrency(o.Projection.FutureValue),
			FormatCurrency(o.Tax.PostTaxCorpus),
		)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Corpus: Nominal=%s PostTax=%s\n", FormatCurrency(results.Corpus.NominalCorpus), FormatCurrency(results.Corpus.PostTaxCorpus))
	if results.Corpus.RealCorpus != nil {
		fmt.Fprintf(&buf, "Real (today's money): %s\n", FormatCurrency(*results.Corpus.RealCorpus))
	}
	return buf.Bytes(), nil
}
