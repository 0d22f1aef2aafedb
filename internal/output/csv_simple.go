package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/corpus-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per instrument,
// in plan order, not-computable instruments included with empty amounts).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.PlanResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Instrument", "Type", "Status", "Years", "AnnualRate", "TotalInvested", "ReturnsEarned", "FutureValue", "TaxRule", "TaxAmount", "PostTaxCorpus", "EffectiveTaxRate", "RealFutureValue", "RealPostTaxCorpus"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, o := range results.Outcomes {
		row := []string{o.Name, string(o.Type), string(o.Status), o.Years.String(), "", "", "", "", "", "", "", "", "", ""}
		if o.Computable() {
			row[4] = o.AnnualRate.StringFixed(2)
			row[5] = plainAmount(o.Projection.TotalInvested)
			row[6] = plainAmount(o.Projection.ReturnsEarned)
			row[7] = plainAmount(o.Projection.FutureValue)
			row[8] = string(o.Tax.TaxRule)
			row[9] = plainAmount(o.Tax.TaxAmount)
			row[10] = plainAmount(o.Tax.PostTaxCorpus)
			row[11] = o.Tax.TaxRate.StringFixed(2)
			if o.Real != nil {
				row[12] = plainAmount(o.Real.RealFutureValue)
				row[13] = plainAmount(o.Real.RealPostTaxCorpus)
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
