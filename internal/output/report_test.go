package output_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/corpus-calculator/internal/calculation"
	"github.com/rpgo/corpus-calculator/internal/config"
	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/rpgo/corpus-calculator/internal/output"
)

func runExamplePlan(t *testing.T) *domain.PlanResult {
	t.Helper()
	parser := config.NewInputParser()
	plan, err := parser.LoadFromFile("../../testdata/example_plan.yaml")
	require.NoError(t, err)

	eng := calculation.NewCalculationEngine()
	res, err := eng.RunPlan(context.Background(), plan)
	require.NoError(t, err)
	return res
}

// chdirTemp runs the test inside a fresh directory so timestamped reports land there.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// TestEngineReport formats the example plan in every registered format.
func TestEngineReport(t *testing.T) {
	res := runExamplePlan(t)
	require.Len(t, res.Outcomes, 8)
	require.Len(t, res.Corpus.NotComputable, 1)
	assert.Equal(t, "Post office RD", res.Corpus.NotComputable[0].Name)

	for _, name := range output.AvailableFormatterNames() {
		out, err := output.Render(res, name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, out, name)
	}

	data, err := output.Render(res, "json")
	require.NoError(t, err)
	var decoded domain.PlanResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Corpus.NominalCorpus.Equal(res.Corpus.NominalCorpus))

	total := decimal.Zero
	for _, s := range decoded.Corpus.Shares {
		total = total.Add(s.Percentage)
	}
	assert.True(t, total.Equal(decimal.NewFromInt(100)), "shares sum to %s", total)
}

func TestGenerateReport(t *testing.T) {
	res := runExamplePlan(t)
	dir := chdirTemp(t)

	files, err := output.GenerateReport(res, "json")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".json", filepath.Ext(files[0]))
	_, err = os.Stat(filepath.Join(dir, files[0]))
	assert.NoError(t, err)

	files, err = output.GenerateReport(res, "csv-detailed")
	require.NoError(t, err)
	assert.Equal(t, ".csv", filepath.Ext(files[0]))
}

func TestGenerateReportAll(t *testing.T) {
	res := runExamplePlan(t)
	chdirTemp(t)

	files, err := output.GenerateReport(res, "all")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, ".txt", filepath.Ext(files[0]))
	assert.Equal(t, ".csv", filepath.Ext(files[1]))
}

func TestGenerateReportUnknownFormat(t *testing.T) {
	_, err := output.GenerateReport(&domain.PlanResult{}, "pdf")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)
}
