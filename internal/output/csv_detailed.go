package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/corpus-calculator/internal/domain"
)

// CSVDetailedExporter provides the raw evolution ledger per instrument and period.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.PlanResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Instrument", "Period", "Label", "OpeningBalance", "Contribution", "Growth", "Payout", "InterestBearingBalance", "ClosingBalance"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, o := range results.Outcomes {
		if !o.Computable() {
			continue
		}
		for _, row := range o.Projection.Evolution {
			record := []string{
				o.Name,
				strconv.Itoa(row.Period),
				row.Label,
				plainAmount(row.OpeningBalance),
				plainAmount(row.Contribution),
				plainAmount(row.Growth),
				plainAmount(row.Payout),
				plainAmount(row.InterestBearingBalance),
				plainAmount(row.ClosingBalance),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
