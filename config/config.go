// Package config provides configuration loading for black-box checking experiments.
// It supports loading from YAML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"gobbc/learner"

	"gopkg.in/yaml.v3"
)

var (
	ExclusiveStrategiesError = errors.New("config: disprove-first and cex-first are mutually exclusive")
	NoCheckerError           = errors.New("config: at least one of buchi and monitor checking is required")
	UnknownLearnerError      = errors.New("config: Unknown learner")
)

// Config contains all settings of an experiment.
type Config struct {
	// Problem is the number of the problem. It selects the formula file and sizes random testing.
	Problem int `yaml:"problem"`

	// Learner is the name of the learning algorithm, e.g. "ExtensibleLStar".
	Learner string `yaml:"learner"`

	// FormulaDir is the directory holding the constraints-Problem<N>.txt files.
	FormulaDir string `yaml:"formula_dir"`

	Probe       ProbeConfig       `yaml:"probe"`
	Checking    CheckingConfig    `yaml:"checking"`
	BlackBox    BlackBoxConfig    `yaml:"blackbox"`
	Equivalence EquivalenceConfig `yaml:"equivalence"`
	Results     ResultsConfig     `yaml:"results"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ProbeConfig selects the system under test. Exactly one of the fields is used; Addr takes precedence.
type ProbeConfig struct {
	// Model is the path of a YAML Mealy machine simulated in process.
	Model string `yaml:"model,omitempty"`

	// Addr is the address of a remote probe served over gRPC.
	Addr string `yaml:"addr,omitempty"`

	// Inputs is the input alphabet of a remote probe. A model provides its own.
	Inputs []string `yaml:"inputs,omitempty"`
}

// CheckingConfig configures the model checkers.
type CheckingConfig struct {
	// Monitor enables checking on finite traces.
	Monitor bool `yaml:"monitor"`

	// Buchi enables checking on lasso traces.
	Buchi bool `yaml:"buchi"`

	// Cache caches model checking results for as long as the hypothesis does not grow.
	Cache bool `yaml:"cache"`

	// Multiplier and MinimumUnfolds determine how often a lasso is unrolled:
	// max(MinimumUnfolds, ceil(Multiplier * hypothesis size)).
	Multiplier     float64 `yaml:"multiplier"`
	MinimumUnfolds int     `yaml:"minimum_unfolds"`

	// Alternate uses alternating edge semantics, where inputs and outputs are separate positions of a trace.
	Alternate bool `yaml:"alternate"`
}

// BlackBoxConfig selects the black-box oracle strategy. At most one may be set.
type BlackBoxConfig struct {
	DisproveFirst bool `yaml:"disprove_first"`
	CExFirst      bool `yaml:"cex_first"`
}

// EquivalenceConfig configures conformance testing.
type EquivalenceConfig struct {
	// WpDepth is the number of extra states the Wp-method tests for.
	WpDepth int `yaml:"wp_depth"`

	// RandomWords adds random words testing after the Wp-method.
	RandomWords bool  `yaml:"random_words"`
	MaxTests    int   `yaml:"max_tests"`
	Seed        int64 `yaml:"seed"`

	// Timeout is the total number of seconds that may be spent on equivalence queries. -1 is unbounded.
	Timeout int `yaml:"timeout"`
}

// ResultsConfig configures where result records are written.
type ResultsConfig struct {
	// CSV writes records to standard output.
	CSV bool `yaml:"csv"`

	// SQLite is the path of a database the records are stored in. Empty disables it.
	SQLite string `yaml:"sqlite,omitempty"`
}

// MetricsConfig configures the prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address of the metrics endpoint, e.g. ":9090". Empty disables it.
	Addr string `yaml:"addr,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	Level string `yaml:"level"`
}

// Default returns a Config with the defaults of the command line tool.
func Default() *Config {
	return &Config{
		FormulaDir: ".",
		Checking: CheckingConfig{
			Multiplier:     1.0,
			MinimumUnfolds: 3,
			Alternate:      true,
		},
		Equivalence: EquivalenceConfig{
			WpDepth:     3,
			RandomWords: true,
			MaxTests:    100_000_000,
			Seed:        123456,
			Timeout:     -1,
		},
		Results: ResultsConfig{
			CSV: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns the defaults with the environment variable overrides applied.
func Load() *Config {
	config := Default()
	applyEnvOverrides(config)
	return config
}

// LoadFromFile loads configuration from a YAML file on top of the defaults and applies environment overrides.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	applyEnvOverrides(config)
	return config, nil
}

// Validate checks that the configuration describes an experiment that can be run.
func (c *Config) Validate() error {
	if c.BlackBox.DisproveFirst && c.BlackBox.CExFirst {
		return ExclusiveStrategiesError
	}
	if !c.Checking.Monitor && !c.Checking.Buchi {
		return NoCheckerError
	}
	v, ok := learner.ParseVariant(c.Learner)
	if !ok {
		return fmt.Errorf("%w: %q", UnknownLearnerError, c.Learner)
	}
	if !v.Supported() {
		return fmt.Errorf("%w: %v", learner.UnsupportedError, v)
	}
	if c.Problem < 0 {
		return fmt.Errorf("problem must be non-negative, got %d", c.Problem)
	}
	if c.Checking.Multiplier < 0 {
		return fmt.Errorf("multiplier must be non-negative, got %f", c.Checking.Multiplier)
	}
	if c.Checking.MinimumUnfolds < 1 {
		return fmt.Errorf("minimum_unfolds must be positive, got %d", c.Checking.MinimumUnfolds)
	}
	if c.Equivalence.WpDepth < 0 {
		return fmt.Errorf("wp_depth must be non-negative, got %d", c.Equivalence.WpDepth)
	}
	if c.Equivalence.Timeout < -1 {
		return fmt.Errorf("timeout must be -1 or non-negative, got %d", c.Equivalence.Timeout)
	}
	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// The size indicator of the problem used to scale random testing
func (c *Config) ProblemSize() int {
	return max(1, c.Problem)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("BBC_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("BBC_METRICS_ADDR"); v != "" {
		config.Metrics.Addr = v
	}
	if v := os.Getenv("BBC_PROBE_ADDR"); v != "" {
		config.Probe.Addr = v
	}
}
