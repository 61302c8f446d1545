package learner

import (
	"fmt"
	"log/slog"
	"strings"

	"gobbc/mealy"
)

// Direct hypothesis construction.
//
// The hypothesis is built breadth first from the initial state. A successor whose signature, the outputs for
// every splitter, equals the signature of a known state is merged into it. Counterexamples add all their suffixes to
// the splitters and the hypothesis is constructed again.
type dhcLearner struct {
	mq        *membership
	inputs    []string
	splitters []mealy.Word
	known     map[string]bool

	hyp    *mealy.Machine
	logger *slog.Logger
}

func newDHC(mq *membership, inputs []string, logger *slog.Logger) *dhcLearner {
	d := &dhcLearner{
		mq:     mq,
		inputs: inputs,
		known:  map[string]bool{},
		logger: logger,
	}
	for _, in := range inputs {
		d.addSplitter(mealy.WordOf(in))
	}
	return d
}

func (d *dhcLearner) addSplitter(w mealy.Word) bool {
	if len(w) == 0 || d.known[key(w)] {
		return false
	}
	d.known[key(w)] = true
	d.splitters = append(d.splitters, w)
	return true
}

func (d *dhcLearner) signature(access mealy.Word) (string, error) {
	parts := make([]string, len(d.splitters))
	for i, e := range d.splitters {
		out, err := d.mq.suffix(access, e)
		if err != nil {
			return "", err
		}
		parts[i] = key(out)
	}
	return strings.Join(parts, "\x1e"), nil
}

func (d *dhcLearner) construct() error {
	m := mealy.New(d.inputs)
	states := map[string]int{}
	access := []mealy.Word{{}}
	sig, err := d.signature(mealy.Word{})
	if err != nil {
		return err
	}
	states[sig] = m.AddState()
	for queue := []int{0}; len(queue) > 0; queue = queue[1:] {
		s := queue[0]
		for _, in := range d.inputs {
			u := access[s].Append(in)
			sig, err := d.signature(u)
			if err != nil {
				return err
			}
			to, ok := states[sig]
			if !ok {
				to = m.AddState()
				states[sig] = to
				access = append(access, u)
				queue = append(queue, to)
			}
			out, err := d.mq.suffix(access[s], mealy.WordOf(in))
			if err != nil {
				return err
			}
			if err := m.SetTransition(s, in, out[0], to); err != nil {
				return err
			}
		}
	}
	d.hyp = m
	d.logger.Debug("new hypothesis", "states", m.Size(), "splitters", len(d.splitters))
	return nil
}

func (d *dhcLearner) Start() error {
	return d.construct()
}

func (d *dhcLearner) Hypothesis() *mealy.Machine {
	return d.hyp
}

func (d *dhcLearner) Refine(q mealy.Query) (bool, error) {
	refined := false
	for {
		out, err := d.mq.query(q.Input)
		if err != nil {
			return refined, err
		}
		if !d.hyp.IsCounterExample(mealy.Query{Input: q.Input, Output: out}) {
			return refined, nil
		}
		added := false
		for i := 0; i < len(q.Input); i++ {
			added = d.addSplitter(q.Input.Suffix(i)) || added
		}
		if !added {
			if refined {
				return true, nil
			}
			return false, fmt.Errorf("learner: %v did not refine the hypothesis", q)
		}
		if err := d.construct(); err != nil {
			return refined, err
		}
		refined = true
	}
}
