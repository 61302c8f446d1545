package gobbc

import (
	"log/slog"
	"time"

	"gobbc/equivalence"
	"gobbc/formula"
	"gobbc/metrics"
	"gobbc/record"
	"gobbc/sul"
)

// Configures an experiment beyond what the configuration file describes.
// See the With functions for the available options.
type ExperimentOption interface{}

type probeOption struct {
	probe  sul.Probe
	inputs []string
}

// Use the probe as the system under test instead of the probe in the configuration.
func WithProbe(probe sul.Probe, inputs []string) ExperimentOption {
	return probeOption{probe: probe, inputs: inputs}
}

type formulasOption struct {
	formulas []*formula.Formula
}

// Check the formulas instead of loading the formula file of the problem.
func WithFormulas(formulas []*formula.Formula) ExperimentOption {
	return formulasOption{formulas: formulas}
}

type loggerOption struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) ExperimentOption {
	return loggerOption{logger: logger}
}

type sinkOption struct {
	sink record.Sink
}

// Emit the result records to the sink. Several sinks can be provided.
func WithSink(sink record.Sink) ExperimentOption {
	return sinkOption{sink: sink}
}

type metricsOption struct {
	metrics *metrics.Metrics
}

// Mirror the channel counters and the progress of the experiment in the metrics.
func WithMetrics(m *metrics.Metrics) ExperimentOption {
	return metricsOption{metrics: m}
}

type clockOption struct {
	now func() time.Time
}

// Use the provided clock for the timeout and the round durations instead of time.Now
func WithClock(now func() time.Time) ExperimentOption {
	return clockOption{now: now}
}

type conformanceOption struct {
	oracles []equivalence.Oracle
}

// Replace the conformance testers that run after the black-box oracle.
// By default the Wp-method and random words testing are used.
func WithConformance(oracles ...equivalence.Oracle) ExperimentOption {
	return conformanceOption{oracles: oracles}
}
