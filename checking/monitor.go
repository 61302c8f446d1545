package checking

import (
	"gobbc/formula"
	"gobbc/mealy"
)

// Default bound on the number of product states explored by a Monitor
const DefaultMaxStates = 1 << 16

// Checks formulas on finite traces.
//
// The monitor explores the product of the hypothesis and the formula progressed over the trace so far,
// breadth first. A trace is a counterexample as soon as the progressed formula becomes false, i.e. when no
// continuation of the trace can satisfy the formula. The shortest such trace is returned.
type Monitor struct {
	alternate bool
	skip      skipSet

	// Bound on the number of explored product states. The search is inconclusive when it is reached.
	MaxStates int
}

// Create a Monitor. Transitions producing one of the skip outputs are not part of any trace.
func NewMonitor(alternate bool, skipOutputs ...string) *Monitor {
	return &Monitor{
		alternate: alternate,
		skip:      newSkipSet(skipOutputs),
		MaxStates: DefaultMaxStates,
	}
}

type productState struct {
	state   int
	formula string
}

type productNode struct {
	state   int
	formula *formula.Node
	trace   mealy.Word
}

func (m *Monitor) FindCounterExample(hyp *mealy.Machine, inputs []string, f *formula.Formula) (*Trace, error) {
	if hyp.Size() == 0 {
		return nil, nil
	}
	start := productNode{state: hyp.Initial(), formula: f.Root.NNF(), trace: mealy.Word{}}
	if start.formula.Op == formula.False {
		return &Trace{Prefix: mealy.Word{}}, nil
	}
	visited := map[productState]bool{{start.state, start.formula.String()}: true}
	queue := []productNode{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, in := range inputs {
			next, out, ok := hyp.Transition(node.state, in)
			if !ok || m.skip[out] {
				continue
			}
			g := node.formula
			for _, l := range letters(in, out, m.alternate) {
				g = progress(g, l)
				if g.Op == formula.False || g.Op == formula.True {
					break
				}
			}
			switch g.Op {
			case formula.False:
				return &Trace{Prefix: node.trace.Append(in)}, nil
			case formula.True:
				continue
			}
			key := productState{next, g.String()}
			if visited[key] {
				continue
			}
			if len(visited) >= m.MaxStates {
				return nil, nil
			}
			visited[key] = true
			queue = append(queue, productNode{state: next, formula: g, trace: node.trace.Append(in)})
		}
	}
	return nil, nil
}

// Rewrite a formula in negation normal form into the formula the rest of the word has to satisfy after reading l.
func progress(n *formula.Node, l letter) *formula.Node {
	switch n.Op {
	case formula.True, formula.False:
		return n
	case formula.Input, formula.Output:
		if l.holds(n) {
			return formula.TrueNode
		}
		return formula.FalseNode
	case formula.Not:
		// Only in front of atoms
		if l.holds(n.Args[0]) {
			return formula.FalseNode
		}
		return formula.TrueNode
	case formula.Next:
		return n.Args[0]
	case formula.And, formula.Or:
		args := make([]*formula.Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = progress(a, l)
		}
		return formula.Junction(n.Op, args...)
	case formula.Until, formula.WeakUntil:
		// a U b == b | (a & X(a U b))
		a, b := progress(n.Args[0], l), progress(n.Args[1], l)
		return formula.Junction(formula.Or, b, formula.Junction(formula.And, a, n))
	case formula.Release:
		// a R b == b & (a | X(a R b))
		a, b := progress(n.Args[0], l), progress(n.Args[1], l)
		return formula.Junction(formula.And, b, formula.Junction(formula.Or, a, n))
	}
	return n
}
