package checking

import (
	"gobbc/formula"
	"gobbc/mealy"
)

// Default bound on the number of lassos evaluated by a Lasso checker
const DefaultMaxLassos = 1 << 18

// Checks formulas on infinite traces.
//
// The checker enumerates the lassos of the hypothesis, i.e. a simple path from the initial state followed by a
// transition back to a state on the path, shortest first. The formula is evaluated exactly on the ultimately
// periodic word of each lasso. The first violating lasso is returned, unrolled
// max(MinimumUnfolds, ceil(Multiplier * size of the hypothesis)) times.
type Lasso struct {
	alternate bool
	skip      skipSet

	MinimumUnfolds int
	Multiplier     float64

	// Bound on the number of evaluated lassos. The search is inconclusive when it is reached.
	MaxLassos int
}

// Create a Lasso checker. Transitions producing one of the skip outputs are not part of any trace.
func NewLasso(alternate bool, minimumUnfolds int, multiplier float64, skipOutputs ...string) *Lasso {
	return &Lasso{
		alternate:      alternate,
		skip:           newSkipSet(skipOutputs),
		MinimumUnfolds: minimumUnfolds,
		Multiplier:     multiplier,
		MaxLassos:      DefaultMaxLassos,
	}
}

type lassoSearch struct {
	l      *Lasso
	hyp    *mealy.Machine
	inputs []string
	root   *formula.Node

	// The current path
	states  []int
	onPath  map[int]int
	word    mealy.Word
	outputs mealy.Word

	evaluated int
	found     *Trace
}

func (l *Lasso) FindCounterExample(hyp *mealy.Machine, inputs []string, f *formula.Formula) (*Trace, error) {
	if hyp.Size() == 0 {
		return nil, nil
	}
	s := &lassoSearch{
		l:      l,
		hyp:    hyp,
		inputs: inputs,
		root:   f.Root.NNF(),
	}
	// Iterative deepening on the length of the lasso, so that shorter lassos are found first
	for length := 1; length <= hyp.Size(); length++ {
		s.states = []int{hyp.Initial()}
		s.onPath = map[int]int{hyp.Initial(): 0}
		s.word = mealy.Word{}
		s.outputs = mealy.Word{}
		if s.search(length) {
			break
		}
		if s.evaluated >= l.MaxLassos {
			return nil, nil
		}
	}
	if s.found != nil {
		s.found.Unfolds = unfolds(hyp.Size(), l.MinimumUnfolds, l.Multiplier)
	}
	return s.found, nil
}

// Extend the current path. Only lassos with exactly length transitions are evaluated.
// Returns true when the search should stop.
func (s *lassoSearch) search(length int) bool {
	depth := len(s.word)
	current := s.states[depth]
	for _, in := range s.inputs {
		next, out, ok := s.hyp.Transition(current, in)
		if !ok || s.l.skip[out] {
			continue
		}
		if j, ok := s.onPath[next]; ok {
			if depth+1 != length {
				continue
			}
			s.evaluated++
			prefix, loop := s.word.Prefix(j), s.word.Suffix(j).Append(in)
			outPrefix, outLoop := s.outputs.Prefix(j), s.outputs.Suffix(j).Append(out)
			if !s.evaluate(prefix, outPrefix, loop, outLoop) {
				s.found = &Trace{Prefix: prefix, Loop: loop}
				return true
			}
			if s.evaluated >= s.l.MaxLassos {
				return true
			}
			continue
		}
		if depth+1 >= length {
			continue
		}
		s.states = append(s.states, next)
		s.onPath[next] = depth + 1
		s.word = append(s.word, in)
		s.outputs = append(s.outputs, out)
		stop := s.search(length)
		delete(s.onPath, next)
		s.states = s.states[:depth+1]
		s.word = s.word[:depth]
		s.outputs = s.outputs[:depth]
		if stop {
			return true
		}
	}
	return false
}

func (s *lassoSearch) evaluate(prefix, outPrefix, loop, outLoop mealy.Word) bool {
	word := []letter{}
	for i := range prefix {
		word = append(word, letters(prefix[i], outPrefix[i], s.l.alternate)...)
	}
	loopStart := len(word)
	for i := range loop {
		word = append(word, letters(loop[i], outLoop[i], s.l.alternate)...)
	}
	return evaluateLasso(s.root, word, loopStart)
}

// Evaluate a formula in negation normal form on the infinite word w[:loopStart] (w[loopStart:])^ω.
func evaluateLasso(root *formula.Node, w []letter, loopStart int) bool {
	return eval(root, w, loopStart)[0]
}

func eval(n *formula.Node, w []letter, loopStart int) []bool {
	size := len(w)
	next := func(i int) int {
		if i+1 < size {
			return i + 1
		}
		return loopStart
	}
	v := make([]bool, size)
	switch n.Op {
	case formula.True:
		for i := range v {
			v[i] = true
		}
	case formula.False:
	case formula.Input, formula.Output:
		for i := range v {
			v[i] = w[i].holds(n)
		}
	case formula.Not:
		a := eval(n.Args[0], w, loopStart)
		for i := range v {
			v[i] = !a[i]
		}
	case formula.Next:
		a := eval(n.Args[0], w, loopStart)
		for i := range v {
			v[i] = a[next(i)]
		}
	case formula.And, formula.Or:
		for i := range v {
			v[i] = n.Op == formula.And
		}
		for _, arg := range n.Args {
			a := eval(arg, w, loopStart)
			for i := range v {
				if n.Op == formula.And {
					v[i] = v[i] && a[i]
				} else {
					v[i] = v[i] || a[i]
				}
			}
		}
	case formula.Until, formula.WeakUntil, formula.Release:
		a := eval(n.Args[0], w, loopStart)
		b := eval(n.Args[1], w, loopStart)
		// Until is a least fixpoint, WeakUntil and Release are greatest fixpoints
		greatest := n.Op != formula.Until
		for i := range v {
			v[i] = greatest
		}
		for changed := true; changed; {
			changed = false
			for i := size - 1; i >= 0; i-- {
				var value bool
				if n.Op == formula.Release {
					value = b[i] && (a[i] || v[next(i)])
				} else {
					value = b[i] || (a[i] && v[next(i)])
				}
				if value != v[i] {
					v[i] = value
					changed = true
				}
			}
		}
	}
	return v
}
