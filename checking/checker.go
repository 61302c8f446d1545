package checking

import (
	"math"

	"gobbc/formula"
	"gobbc/mealy"
)

// A model checker searches a hypothesis for a trace violating a formula.
//
// A nil trace and a nil error means that no violating trace was found.
type ModelChecker interface {
	FindCounterExample(hyp *mealy.Machine, inputs []string, f *formula.Formula) (*Trace, error)
}

// A trace of a hypothesis violating a formula.
//
// A finite trace only has a Prefix. A lasso trace violates the formula on the infinite word Prefix Loop Loop ...
// and is unrolled Unfolds times when it is replayed on a system under test.
type Trace struct {
	Prefix  mealy.Word
	Loop    mealy.Word
	Unfolds int
}

func (t *Trace) IsLasso() bool {
	return len(t.Loop) > 0
}

// The finite input word that is replayed on the system under test
func (t *Trace) Input() mealy.Word {
	if !t.IsLasso() {
		return t.Prefix.Concat()
	}
	return t.Prefix.Concat(t.Loop.Repeat(t.Unfolds))
}

// One position of the word a formula is evaluated on.
//
// With alternating edge semantics a transition i/o of the hypothesis is two positions, one carrying the input
// and one the output. Otherwise it is one position carrying both.
type letter struct {
	input, output       string
	hasInput, hasOutput bool
}

func (l letter) holds(n *formula.Node) bool {
	switch n.Op {
	case formula.Input:
		return l.hasInput && l.input == n.Symbol
	case formula.Output:
		return l.hasOutput && l.output == n.Symbol
	}
	return false
}

// The positions produced by a transition
func letters(input, output string, alternate bool) []letter {
	if alternate {
		return []letter{
			{input: input, hasInput: true},
			{output: output, hasOutput: true},
		}
	}
	return []letter{{input: input, output: output, hasInput: true, hasOutput: true}}
}

type skipSet map[string]bool

func newSkipSet(outputs []string) skipSet {
	s := skipSet{}
	for _, o := range outputs {
		s[o] = true
	}
	return s
}

// Compute the number of times a loop is unrolled for a hypothesis of the provided size
func unfolds(size int, minimum int, multiplier float64) int {
	m := int(math.Ceil(float64(size) * multiplier))
	if m < minimum {
		return minimum
	}
	return m
}
