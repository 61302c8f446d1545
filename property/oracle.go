package property

import (
	"fmt"
	"log/slog"

	"gobbc/channel"
	"gobbc/checking"
	"gobbc/formula"
	"gobbc/logging"
	"gobbc/mealy"
	"gobbc/sul"
)

// Model checker modes
const (
	ModeMonitor      = "monitor"
	ModeBuchi        = "buchi"
	ModeMonitorBuchi = "monitor-buchi"
)

// The mode tag of an experiment checking with a monitor, a Büchi (lasso) checker or both
func Mode(monitor, buchi bool) string {
	switch {
	case monitor && buchi:
		return ModeMonitorBuchi
	case monitor:
		return ModeMonitor
	case buchi:
		return ModeBuchi
	}
	return ""
}

// A property oracle tests one property against hypotheses.
type Oracle interface {
	// The formula text
	Property() string
	IsDisproved() bool
	// Search the hypothesis for a violation of the property and confirm it on the system under test.
	// Returns the query showing the system under test violates the property, or nil.
	Disprove(hyp *mealy.Machine, inputs []string) (*mealy.Query, error)
	// Search the hypothesis for a violation of the property that the system under test does not show.
	// Returns the query showing the hypothesis is wrong, or nil.
	FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error)
}

// An oracle model checking one formula and replaying the traces it finds on the system under test
type modelOracle struct {
	formula *formula.Formula
	mc      checking.ModelChecker

	// Channel confirming violations
	emptiness *channel.Channel
	// Channel refuting hypotheses
	inclusion *channel.Channel

	counterExample *mealy.Query
	logger         *slog.Logger
}

// Create an oracle for finite traces. Violations are confirmed on the emptiness channel.
func NewFinite(f *formula.Formula, mc checking.ModelChecker, c *channel.Channels, logger *slog.Logger) Oracle {
	return newModelOracle(f, mc, c.Emptiness, c.Inclusion, logger)
}

// Create an oracle for lasso traces. Violations are confirmed on the omega-emptiness channel.
func NewLasso(f *formula.Formula, mc checking.ModelChecker, c *channel.Channels, logger *slog.Logger) Oracle {
	return newModelOracle(f, mc, c.Omega, c.Inclusion, logger)
}

func newModelOracle(f *formula.Formula, mc checking.ModelChecker, emptiness, inclusion *channel.Channel, logger *slog.Logger) *modelOracle {
	return &modelOracle{
		formula:   f,
		mc:        mc,
		emptiness: emptiness,
		inclusion: inclusion,
		logger:    logging.OrDiscard(logger),
	}
}

func (o *modelOracle) Property() string {
	return o.formula.Text
}

func (o *modelOracle) IsDisproved() bool {
	return o.counterExample != nil
}

// Model check the hypothesis and replay the trace on the probe.
// Returns the query and whether the system under test produced the outputs of the hypothesis.
func (o *modelOracle) replay(hyp *mealy.Machine, inputs []string, probe sul.Probe) (*mealy.Query, bool, error) {
	trace, err := o.mc.FindCounterExample(hyp, inputs, o.formula)
	if err != nil {
		return nil, false, fmt.Errorf("property: model checking %q failed: %w", o.formula.Text, err)
	}
	if trace == nil {
		return nil, false, nil
	}
	input := trace.Input()
	expected, ok := hyp.Output(input)
	if !ok {
		return nil, false, nil
	}
	output, err := sul.Query(probe, input)
	if err != nil {
		return nil, false, err
	}
	q := &mealy.Query{Input: input, Output: output}
	o.logger.Debug("replayed trace", "property", o.formula.Index, "query", q.String(), "lasso", trace.IsLasso())
	return q, expected.Equal(output), nil
}

func (o *modelOracle) Disprove(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	if o.IsDisproved() {
		return o.counterExample, nil
	}
	q, same, err := o.replay(hyp, inputs, o.emptiness.Probe)
	if err != nil || q == nil || !same {
		return nil, err
	}
	o.counterExample = q
	return q, nil
}

func (o *modelOracle) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	if o.IsDisproved() {
		return nil, nil
	}
	q, same, err := o.replay(hyp, inputs, o.inclusion.Probe)
	if err != nil || q == nil || same {
		return nil, err
	}
	return q, nil
}
