package gobbc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gobbc/blackbox"
	"gobbc/channel"
	"gobbc/checking"
	"gobbc/config"
	"gobbc/equivalence"
	"gobbc/formula"
	"gobbc/learner"
	"gobbc/logging"
	"gobbc/mealy"
	"gobbc/metrics"
	"gobbc/property"
	"gobbc/record"
	"gobbc/sul"
	"gobbc/sulGrpc"

	"google.golang.org/grpc"
)

var (
	NoProbeError    = errors.New("gobbc: No system under test configured")
	NoInputsError   = errors.New("gobbc: The system under test has no inputs")
	NotRefinedError = errors.New("gobbc: Counterexample did not refine the hypothesis")
)

// The outcome of an experiment
type Result struct {
	// The final hypothesis
	Hypothesis *mealy.Machine
	// The number of counterexamples used to refine the hypothesis
	Refinements int
	// The indexes of the disproved properties
	Disproved []int
}

// A black-box checking experiment.
//
// The experiment learns a model of the system under test and checks the properties on every hypothesis.
// Each counterexample is used to refine the hypothesis until no oracle can find one.
// An experiment can only be run once.
type Experiment struct {
	config *config.Config

	inputs   []string
	channels *channel.Channels
	handles  []*property.Handle
	blackbox *blackbox.Oracle
	chain    equivalence.Chain
	oracle   *equivalence.TimeOut
	learner  learner.Learner

	metrics *metrics.Metrics
	now     func() time.Time
	logger  *slog.Logger
	closer  io.Closer
}

// Prepare an experiment.
//
// The configuration is validated and the formulas are loaded before the system under test is queried,
// so a setup error never costs a query.
func NewExperiment(cfg *config.Config, opts ...ExperimentOption) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var (
		probe       sul.Probe
		inputs      []string
		formulas    []*formula.Formula
		loaded      bool
		sinks       record.MultiSink
		logger      *slog.Logger
		m           *metrics.Metrics
		now         = time.Now
		conformance []equivalence.Oracle
		custom      bool
	)
	for _, opt := range opts {
		switch t := opt.(type) {
		case probeOption:
			probe = t.probe
			inputs = t.inputs
		case formulasOption:
			formulas = t.formulas
			loaded = true
		case loggerOption:
			logger = t.logger
		case sinkOption:
			sinks = append(sinks, t.sink)
		case metricsOption:
			m = t.metrics
		case clockOption:
			now = t.now
		case conformanceOption:
			conformance = t.oracles
			custom = true
		}
	}
	logger = logging.OrDiscard(logger)

	if !loaded {
		var err error
		formulas, err = formula.Load(cfg.FormulaDir, cfg.Problem)
		if err != nil {
			return nil, err
		}
	}

	e := &Experiment{
		config:  cfg,
		metrics: m,
		now:     now,
		logger:  logger,
	}
	if probe == nil {
		var err error
		probe, inputs, err = e.connect()
		if err != nil {
			return nil, err
		}
	}
	if len(inputs) == 0 {
		e.Close()
		return nil, NoInputsError
	}
	e.inputs = inputs

	var obs channel.ObserverFactory
	if m != nil {
		obs = m.Observers
	}
	e.channels = channel.NewChannels(probe, obs)

	strategy := blackbox.StrategyOf(cfg.BlackBox.DisproveFirst, cfg.BlackBox.CExFirst)
	info := property.Info{
		Problem:  cfg.Problem,
		Learner:  cfg.Learner,
		Mode:     property.Mode(cfg.Checking.Monitor, cfg.Checking.Buchi),
		Strategy: strategy.String(),
	}
	var sink record.Sink = sinks
	if len(sinks) == 0 {
		sink = record.Discard{}
	}
	oracles := make([]property.Oracle, 0, len(formulas))
	for _, f := range formulas {
		h := property.NewHandle(e.propertyOracle(f), f.Index, info, e.channels, sink, logger)
		e.handles = append(e.handles, h)
		oracles = append(oracles, h)
		logger.Debug("property", "index", f.Index, "ltsmin", f.LTSmin(cfg.Checking.Alternate))
	}

	if strategy != blackbox.None {
		e.blackbox = blackbox.New(strategy, oracles, logger)
		e.chain = append(e.chain, e.blackbox)
	}
	if !custom {
		conformance = e.conformance()
	}
	e.chain = append(e.chain, conformance...)

	timeout := equivalence.Unbounded
	if cfg.Equivalence.Timeout >= 0 {
		timeout = time.Duration(cfg.Equivalence.Timeout) * time.Second
	}
	e.oracle = equivalence.NewTimeOut(e.chain, timeout, e.channels, equivalence.WithClock(now), equivalence.WithLogger(logger))

	v, _ := learner.ParseVariant(cfg.Learner)
	l, err := learner.New(v, e.channels.Learning.Probe, inputs, logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.learner = l
	return e, nil
}

// Create the probe described by the configuration
func (e *Experiment) connect() (sul.Probe, []string, error) {
	switch {
	case e.config.Probe.Addr != "":
		client, err := sulGrpc.Dial(e.config.Probe.Addr, grpc.WithUnaryInterceptor(sulGrpc.LoggingInterceptor(e.logger)))
		if err != nil {
			return nil, nil, err
		}
		e.closer = client
		return client, e.config.Probe.Inputs, nil
	case e.config.Probe.Model != "":
		model, err := sul.LoadModel(e.config.Probe.Model)
		if err != nil {
			return nil, nil, err
		}
		machine, err := model.Machine()
		if err != nil {
			return nil, nil, fmt.Errorf("%v: %w", e.config.Probe.Model, err)
		}
		return sul.NewSimulated(machine), machine.Inputs(), nil
	}
	return nil, nil, NoProbeError
}

// The model checking oracles of a formula, finite traces first
func (e *Experiment) propertyOracle(f *formula.Formula) property.Oracle {
	c := e.config.Checking
	chain := property.Chain{}
	if c.Monitor {
		chain = append(chain, property.NewFinite(f, e.cached(checking.NewMonitor(c.Alternate, sul.Deadlock)), e.channels, e.logger))
	}
	if c.Buchi {
		lasso := checking.NewLasso(c.Alternate, c.MinimumUnfolds, c.Multiplier, sul.Deadlock)
		chain = append(chain, property.NewLasso(f, e.cached(lasso), e.channels, e.logger))
	}
	return chain
}

func (e *Experiment) cached(mc checking.ModelChecker) checking.ModelChecker {
	if e.config.Checking.Cache {
		return checking.NewSizeCache(mc)
	}
	return mc
}

// The conformance testers on the equivalence channel
func (e *Experiment) conformance() []equivalence.Oracle {
	eq := e.config.Equivalence
	oracles := []equivalence.Oracle{equivalence.NewWpMethod(e.channels.Equivalence, eq.WpDepth, e.logger)}
	if eq.RandomWords {
		size := e.config.ProblemSize()
		oracles = append(oracles, equivalence.NewRandomWords(e.channels.Equivalence, 5*size, 50*size, eq.MaxTests, eq.Seed))
	}
	return oracles
}

// Run the experiment until no counterexample is found, the context is cancelled or a query fails.
//
// Every property that is still outstanding at the end is checked on the final hypothesis.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	e.logger.Info("starting experiment",
		"problem", e.config.Problem,
		"learner", e.config.Learner,
		"properties", len(e.handles),
		"inputs", len(e.inputs),
	)
	if err := e.learner.Start(); err != nil {
		return nil, fmt.Errorf("gobbc: learning the first hypothesis failed: %w", err)
	}
	result := &Result{}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hyp := e.learner.Hypothesis()
		e.logger.Debug("hypothesis", "states", hyp.Size(), "round", result.Refinements)

		start := e.now()
		q, err := e.oracle.FindCounterExample(hyp, e.inputs)
		if err != nil {
			return nil, err
		}
		if e.metrics != nil {
			e.metrics.Round(hyp.Size(), e.now().Sub(start))
		}
		if q == nil {
			break
		}
		e.logger.Debug("counterexample", "query", q.String())
		refined, err := e.learner.Refine(*q)
		if err != nil {
			return nil, fmt.Errorf("gobbc: refinement failed: %w", err)
		}
		if !refined {
			return nil, fmt.Errorf("%w: %v", NotRefinedError, q)
		}
		result.Refinements++
	}

	result.Hypothesis = e.learner.Hypothesis()
	if err := e.disproveRemaining(result.Hypothesis); err != nil {
		return nil, err
	}
	for _, h := range e.handles {
		if h.IsDisproved() {
			result.Disproved = append(result.Disproved, h.Index())
		}
	}
	if e.metrics != nil {
		e.metrics.Disproved(len(result.Disproved))
	}

	e.logger.Info("final states", "states", result.Hypothesis.Size())
	e.logger.Info("final learning queries",
		"queries", e.channels.Learning.Queries.Count(),
		"symbols", e.channels.Learning.Symbols.Count(),
	)
	e.logger.Info("properties disproved", "disproved", len(result.Disproved), "properties", len(e.handles))
	e.logger.Info("refinements", "count", result.Refinements)
	return result, nil
}

// Try to disprove the outstanding properties on the hypothesis
func (e *Experiment) disproveRemaining(hyp *mealy.Machine) error {
	for _, h := range e.handles {
		if h.IsDisproved() {
			continue
		}
		if _, err := h.Disprove(hyp, e.inputs); err != nil {
			return err
		}
	}
	return nil
}

func (e *Experiment) Channels() *channel.Channels {
	return e.channels
}

// The property handles in index order
func (e *Experiment) Properties() []*property.Handle {
	return e.handles
}

func (e *Experiment) Inputs() []string {
	return e.inputs
}

// Release the connection to a remote system under test
func (e *Experiment) Close() error {
	if e.closer == nil {
		return nil
	}
	return e.closer.Close()
}
