package equivalence

import (
	"gobbc/mealy"
	"gobbc/sul"
)

// An equivalence oracle searches for a counterexample to a hypothesis.
//
// A nil query and a nil error means that no counterexample was found and the hypothesis is accepted.
type Oracle interface {
	FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error)
}

// Oracles tried in order. The first counterexample found is returned.
type Chain []Oracle

func (c Chain) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	for _, o := range c {
		q, err := o.FindCounterExample(hyp, inputs)
		if err != nil || q != nil {
			return q, err
		}
	}
	return nil, nil
}

// Query the word on the probe and compare the outputs with the hypothesis.
// Returns the shortest prefix of the word on which they differ, or nil.
func test(hyp *mealy.Machine, probe sul.Probe, word mealy.Word) (*mealy.Query, error) {
	output, err := sul.Query(probe, word)
	if err != nil {
		return nil, err
	}
	state := hyp.Initial()
	for i, in := range word {
		next, out, ok := hyp.Transition(state, in)
		if !ok || out != output[i] {
			return &mealy.Query{Input: word.Prefix(i + 1), Output: output.Prefix(i + 1)}, nil
		}
		state = next
	}
	return nil, nil
}
