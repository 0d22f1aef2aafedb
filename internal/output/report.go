package output

import (
	"strings"

	"github.com/rpgo/corpus-calculator/internal/domain"
)

// GenerateReport writes the results to a timestamped file in the named format and
// returns the file name. "all" writes the console report and the ledger CSV.
func GenerateReport(results *domain.PlanResult, format string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var files []string
		for _, f := range []Formatter{ConsoleFormatter{}, CSVDetailedExporter{}} {
			name, err := WriteFormatted(f, results, extensionFor(f.Name()))
			if err != nil {
				return files, err
			}
			files = append(files, name)
		}
		return files, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupported(format)
	}
	name, err := WriteFormatted(f, results, extensionFor(f.Name()))
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}

func extensionFor(name string) string {
	switch {
	case strings.Contains(name, "csv"):
		return "csv"
	case name == "json":
		return "json"
	default:
		return "txt"
	}
}
