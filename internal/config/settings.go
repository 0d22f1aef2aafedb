package config

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CORPUS_LOG_LEVEL.
const EnvPrefix = "CORPUS"

// LoggingSettings holds logging configuration options
type LoggingSettings struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputFile string `mapstructure:"output_file"` // optional file output
}

// Settings are the CLI-level settings. Plan files override the defaults they carry.
type Settings struct {
	Logging       LoggingSettings `mapstructure:"logging"`
	OutputFormat  string          `mapstructure:"output_format"`
	IncomeTaxSlab float64         `mapstructure:"income_tax_slab"` // 0-1 fraction
	InflationRate float64         `mapstructure:"inflation_rate"`  // percent
}

// PlanDefaults converts the settings' default slab and inflation into plan defaults.
func (s *Settings) PlanDefaults() PlanDefaults {
	return PlanDefaults{
		IncomeTaxSlab: decimal.NewFromFloat(s.IncomeTaxSlab),
		InflationRate: decimal.NewFromFloat(s.InflationRate),
	}
}

// LoadSettings reads settings from an optional YAML file and CORPUS_* environment
// variables (CORPUS_LOGGING_LEVEL, CORPUS_OUTPUT_FORMAT, ...). An empty path uses
// defaults and the environment only.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_file", "")
	v.SetDefault("output_format", "console")
	v.SetDefault("income_tax_slab", 0.3)
	v.SetDefault("inflation_rate", 6.0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading settings file %s: %w", path, err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &settings, nil
}

// Validate checks the settings values
func (s *Settings) Validate() error {
	switch strings.ToLower(s.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", s.Logging.Level)
	}
	switch s.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %s", s.Logging.Format)
	}
	if s.IncomeTaxSlab < 0 || s.IncomeTaxSlab > 1 {
		return fmt.Errorf("income tax slab must be between 0 and 1, got %v", s.IncomeTaxSlab)
	}
	if s.InflationRate < -10 || s.InflationRate > 30 {
		return fmt.Errorf("inflation rate must be between -10%% and 30%%, got %v%%", s.InflationRate)
	}
	return nil
}
