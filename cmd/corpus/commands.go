package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/corpus-calculator/internal/calculation"
	"github.com/rpgo/corpus-calculator/internal/config"
	"github.com/rpgo/corpus-calculator/internal/domain"
	"github.com/rpgo/corpus-calculator/internal/output"
)

type rootOptions struct {
	settingsPath string
	logLevel     string
	format       string
}

// setup loads settings and builds the logger shared by every subcommand.
func (o *rootOptions) setup() (*config.Settings, *zap.Logger, error) {
	settings, err := config.LoadSettings(o.settingsPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := initializeLogger(settings.Logging, o.logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return settings, logger, nil
}

func (o *rootOptions) outputFormat(settings *config.Settings) string {
	if o.format != "" {
		return o.format
	}
	return settings.OutputFormat
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "corpus",
		Short:         "Project Indian savings instruments into a post-tax, inflation-adjusted corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.settingsPath, "settings", "", "path to a settings file (YAML); CORPUS_* environment variables also apply")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))

	cmd.AddCommand(newProjectCmd(opts), newCatalogCmd(opts), newExampleCmd())
	return cmd
}

func newProjectCmd(opts *rootOptions) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "project <plan.yaml>",
		Short: "Project every instrument in a plan file and aggregate the corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := opts.setup()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			parser := config.NewInputParserWithDefaults(settings.PlanDefaults())
			plan, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			logger.Info("plan loaded",
				zap.String("plan", plan.Name),
				zap.Int("instruments", len(plan.Instruments)),
			)

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(logger.Sugar())
			result, err := engine.RunPlan(cmd.Context(), plan)
			if err != nil {
				return fmt.Errorf("plan run failed: %w", err)
			}

			format := opts.outputFormat(settings)
			if save {
				files, err := output.GenerateReport(result, format)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", f)
				}
				return nil
			}

			data, err := output.Render(result, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the report to a timestamped file instead of stdout (format \"all\" writes console and ledger CSV)")
	return cmd
}

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the supported instruments with their defaults and tax rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(opts.settingsPath)
			if err != nil {
				return err
			}
			if output.NormalizeFormatName(opts.outputFormat(settings)) == "json" {
				data, err := json.MarshalIndent(domain.Catalog(), "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return writeCatalog(cmd.OutOrStdout(), domain.Catalog())
		},
	}
}

func writeCatalog(w io.Writer, specs []domain.InstrumentSpec) error {
	if _, err := fmt.Fprintf(w, "%-12s %-36s %-12s %-10s %8s %7s  %s\n", "TYPE", "NAME", "MODE", "FREQUENCY", "RATE", "YEARS", "TAX"); err != nil {
		return err
	}
	for _, s := range specs {
		rate := output.FormatPercentage(s.DefaultRate)
		if s.DefaultRate.IsZero() {
			rate = "alloc"
		}
		if _, err := fmt.Fprintf(w, "%-12s %-36s %-12s %-10s %8s %7d  %s\n",
			s.Type, s.Name, s.Mode, s.Frequency, rate, s.DefaultYears, s.Tax.Kind); err != nil {
			return err
		}
	}
	return nil
}

func newExampleCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Write an example plan file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			if err := parser.WritePlan(parser.CreateExamplePlan(), out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example plan written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "example_plan.yaml", "path of the plan file to write")
	return cmd
}
