package learner

import (
	"errors"
	"fmt"
	"log/slog"

	"gobbc/logging"
	"gobbc/mealy"
	"gobbc/sul"
)

var UnsupportedError = errors.New("learner: Learning algorithm is not supported")

// A learning algorithm family
type Variant string

const (
	ADT                Variant = "ADT"
	DHC                Variant = "DHC"
	DiscriminationTree Variant = "DiscriminationTree"
	KearnsVazirani     Variant = "KearnsVazirani"
	ExtensibleLStar    Variant = "ExtensibleLStar"
	MalerPnueli        Variant = "MalerPnueli"
	RivestSchapire     Variant = "RivestSchapire"
	TTT                Variant = "TTT"
)

// All variants that can be named in a configuration
var Variants = []Variant{ADT, DHC, DiscriminationTree, KearnsVazirani, ExtensibleLStar, MalerPnueli, RivestSchapire, TTT}

// Returns the variant with the provided name
func ParseVariant(name string) (Variant, bool) {
	for _, v := range Variants {
		if string(v) == name {
			return v, true
		}
	}
	return "", false
}

// Returns true if New can create a learner of the variant
func (v Variant) Supported() bool {
	switch v {
	case DHC, ExtensibleLStar, MalerPnueli, RivestSchapire:
		return true
	}
	return false
}

// An active learning algorithm for Mealy machines.
type Learner interface {
	// Build the first hypothesis
	Start() error
	// The current hypothesis. Only valid after Start.
	Hypothesis() *mealy.Machine
	// Refine the hypothesis with a counterexample.
	// Returns false if the query does not distinguish the hypothesis from the system under test.
	Refine(q mealy.Query) (bool, error)
}

// Create a learner of the variant asking membership queries on the probe
func New(v Variant, probe sul.Probe, inputs []string, logger *slog.Logger) (Learner, error) {
	mq := newMembership(probe)
	logger = logging.OrDiscard(logger).With("learner", string(v))
	switch v {
	case ExtensibleLStar:
		return newTableLearner(mq, inputs, addPrefixes, logger), nil
	case MalerPnueli:
		return newTableLearner(mq, inputs, addSuffixes, logger), nil
	case RivestSchapire:
		return newTableLearner(mq, inputs, addDistinguishingSuffix, logger), nil
	case DHC:
		return newDHC(mq, inputs, logger), nil
	}
	return nil, fmt.Errorf("%w: %v", UnsupportedError, v)
}
