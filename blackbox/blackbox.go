package blackbox

import (
	"log"
	"log/slog"

	"gobbc/logging"
	"gobbc/mealy"
	"gobbc/property"
)

// How the black-box oracle picks the counterexample of a round
type Strategy int

const (
	// No black-box oracle. Equivalence testing relies on conformance testing only.
	None Strategy = iota
	// Return the first counterexample to the hypothesis found by any outstanding property.
	CExFirst
	// Disprove every outstanding property first, then return the first counterexample to the hypothesis.
	DisproveFirst
)

// The strategy tag of result records
func (s Strategy) String() string {
	switch s {
	case CExFirst:
		return "cex-first"
	case DisproveFirst:
		return "disprove-first"
	}
	return "none"
}

// Returns the strategy selected by the flags. Setting both flags is a programming error.
func StrategyOf(disproveFirst, cexFirst bool) Strategy {
	switch {
	case disproveFirst && cexFirst:
		log.Panicf("blackbox: disprove-first and cex-first are mutually exclusive")
	case disproveFirst:
		return DisproveFirst
	case cexFirst:
		return CExFirst
	}
	return None
}

// A black-box oracle uses the properties to find counterexamples to hypotheses.
type Oracle struct {
	strategy   Strategy
	properties []property.Oracle
	logger     *slog.Logger
}

// Create an Oracle. The properties are tried in the order provided.
func New(strategy Strategy, properties []property.Oracle, logger *slog.Logger) *Oracle {
	if strategy == None {
		log.Panicf("blackbox: an oracle needs a strategy")
	}
	return &Oracle{
		strategy:   strategy,
		properties: properties,
		logger:     logging.OrDiscard(logger),
	}
}

func (o *Oracle) Strategy() Strategy {
	return o.strategy
}

func (o *Oracle) Properties() []property.Oracle {
	return o.properties
}

func (o *Oracle) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	if o.strategy == DisproveFirst {
		if err := o.disproveAll(hyp, inputs); err != nil {
			return nil, err
		}
	}
	for i, p := range o.properties {
		if p.IsDisproved() {
			continue
		}
		q, err := p.FindCounterExample(hyp, inputs)
		if err != nil {
			return nil, err
		}
		if q != nil {
			o.logger.Debug("property refuted hypothesis", "property", i, "size", hyp.Size(), "query", q.String())
			return q, nil
		}
	}
	return nil, nil
}

// Disprove every outstanding property on the hypothesis
func (o *Oracle) disproveAll(hyp *mealy.Machine, inputs []string) error {
	for _, p := range o.properties {
		if p.IsDisproved() {
			continue
		}
		if _, err := p.Disprove(hyp, inputs); err != nil {
			return err
		}
	}
	return nil
}
