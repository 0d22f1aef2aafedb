package output

import (
	"github.com/goccy/go-json"

	"github.com/rpgo/corpus-calculator/internal/domain"
)

// JSONFormatter serializes the plan result as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.PlanResult) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
