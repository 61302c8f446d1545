package main

import (
	"fmt"
	"os/signal"
	"strconv"

	"gobbc"
	"gobbc/config"
	"gobbc/logging"
	"gobbc/metrics"
	"gobbc/record"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Load the configuration file if one is given and apply the persistent flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Load()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	return cfg, nil
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <problem> <learner>",
		Short: "Run a black-box checking experiment",
		Long: `Run a black-box checking experiment on a problem.

The properties are read from constraints-Problem<problem>.txt in the formula
directory. The learner is one of DHC, ExtensibleLStar, MalerPnueli and
RivestSchapire. Result records are written as CSV to standard output.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			problem, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid problem %q: %w", args[0], err)
			}
			cfg.Problem = problem
			cfg.Learner = args[1]
			applyRunFlags(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			runID := uuid.NewString()
			logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()).With("run", runID)

			ctx, stop := signal.NotifyContext(cmd.Context(), stopSignals...)
			defer stop()

			opts := []gobbc.ExperimentOption{gobbc.WithLogger(logger)}
			if cfg.Results.CSV {
				sink, err := record.NewCSVSink(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				opts = append(opts, gobbc.WithSink(sink))
			}
			if cfg.Results.SQLite != "" {
				sink, err := record.NewSQLiteSink(cfg.Results.SQLite, runID)
				if err != nil {
					return err
				}
				defer sink.Close()
				opts = append(opts, gobbc.WithSink(sink))
			}
			if cfg.Metrics.Addr != "" {
				m := metrics.New()
				go func() {
					if err := m.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
						logger.Warn("metrics endpoint stopped", "error", err)
					}
				}()
				opts = append(opts, gobbc.WithMetrics(m))
			}

			e, err := gobbc.NewExperiment(cfg, opts...)
			if err != nil {
				return err
			}
			defer e.Close()
			_, err = e.Run(ctx)
			return err
		},
	}

	flags := cmd.Flags()
	flags.IntP("timeout", "t", -1, "Seconds that may be spent on equivalence queries, -1 is unbounded")
	flags.Float64P("multiplier", "m", 1.0, "Lasso unroll multiplier of the hypothesis size")
	flags.IntP("minimum-unfolds", "u", 3, "Minimum number of lasso unrolls")
	flags.BoolP("disprove-first", "D", false, "Disprove all properties before searching a counterexample")
	flags.BoolP("cex-first", "C", false, "Search a counterexample with the properties first")
	flags.BoolP("random-words", "r", true, "Test random words after the Wp-method")
	flags.BoolP("alternate", "a", true, "Use alternating edge semantics for inputs and outputs")
	flags.BoolP("monitor", "M", false, "Check properties on finite traces")
	flags.BoolP("buchi", "B", false, "Check properties on lasso traces")
	flags.BoolP("cache", "c", false, "Cache model checking results while the hypothesis does not grow")
	flags.Int("wp-depth", 3, "Number of extra states the Wp-method tests for")
	flags.Int64("seed", 123456, "Seed of random words testing")
	flags.String("formula-dir", "", "Directory of the formula files")
	flags.String("model", "", "YAML Mealy machine simulated as the system under test")
	flags.String("probe-addr", "", "Address of a remote probe served over gRPC")
	flags.StringSlice("inputs", nil, "Input alphabet of the remote probe")
	flags.String("sqlite", "", "SQLite database the records are stored in")
	flags.String("metrics-addr", "", "Listen address of the metrics endpoint")
	flags.Bool("no-csv", false, "Do not write records to standard output")
	return cmd
}

// Flags that were set on the command line take precedence over the configuration file
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Equivalence.Timeout, _ = flags.GetInt("timeout")
	}
	if flags.Changed("multiplier") {
		cfg.Checking.Multiplier, _ = flags.GetFloat64("multiplier")
	}
	if flags.Changed("minimum-unfolds") {
		cfg.Checking.MinimumUnfolds, _ = flags.GetInt("minimum-unfolds")
	}
	if flags.Changed("disprove-first") {
		cfg.BlackBox.DisproveFirst, _ = flags.GetBool("disprove-first")
	}
	if flags.Changed("cex-first") {
		cfg.BlackBox.CExFirst, _ = flags.GetBool("cex-first")
	}
	if flags.Changed("random-words") {
		cfg.Equivalence.RandomWords, _ = flags.GetBool("random-words")
	}
	if flags.Changed("alternate") {
		cfg.Checking.Alternate, _ = flags.GetBool("alternate")
	}
	if flags.Changed("monitor") {
		cfg.Checking.Monitor, _ = flags.GetBool("monitor")
	}
	if flags.Changed("buchi") {
		cfg.Checking.Buchi, _ = flags.GetBool("buchi")
	}
	if flags.Changed("cache") {
		cfg.Checking.Cache, _ = flags.GetBool("cache")
	}
	if flags.Changed("wp-depth") {
		cfg.Equivalence.WpDepth, _ = flags.GetInt("wp-depth")
	}
	if flags.Changed("seed") {
		cfg.Equivalence.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Changed("formula-dir") {
		cfg.FormulaDir, _ = flags.GetString("formula-dir")
	}
	if flags.Changed("model") {
		cfg.Probe.Model, _ = flags.GetString("model")
	}
	if flags.Changed("probe-addr") {
		cfg.Probe.Addr, _ = flags.GetString("probe-addr")
	}
	if flags.Changed("inputs") {
		cfg.Probe.Inputs, _ = flags.GetStringSlice("inputs")
	}
	if flags.Changed("sqlite") {
		cfg.Results.SQLite, _ = flags.GetString("sqlite")
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr, _ = flags.GetString("metrics-addr")
	}
	if noCSV, _ := flags.GetBool("no-csv"); noCSV {
		cfg.Results.CSV = false
	}
}
