package mealy

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

var (
	UnknownInputError = errors.New("mealy: Unknown input symbol")
	UnknownStateError = errors.New("mealy: Unknown state")
)

const undefined = -1

// A deterministic Mealy machine over int states.
//
// Transitions may be left undefined, in which case runs through them are reported as not ok.
// Hypotheses produced by the learners are always complete.
type Machine struct {
	inputs []string
	index  map[string]int

	initial int
	next    [][]int
	out     [][]string
}

// Create a Machine without states over the provided input alphabet
func New(inputs []string) *Machine {
	index := make(map[string]int, len(inputs))
	for i, in := range inputs {
		index[in] = i
	}
	return &Machine{
		inputs:  slices.Clone(inputs),
		index:   index,
		initial: 0,
		next:    [][]int{},
		out:     [][]string{},
	}
}

// Add a new state without any transitions. Returns the id of the state.
func (m *Machine) AddState() int {
	row := make([]int, len(m.inputs))
	for i := range row {
		row[i] = undefined
	}
	m.next = append(m.next, row)
	m.out = append(m.out, make([]string, len(m.inputs)))
	return len(m.next) - 1
}

func (m *Machine) SetInitial(state int) error {
	if !m.hasState(state) {
		return fmt.Errorf("%w: %v", UnknownStateError, state)
	}
	m.initial = state
	return nil
}

func (m *Machine) Initial() int {
	return m.initial
}

// Define the transition from the state on the input, producing the output and moving to the state to.
func (m *Machine) SetTransition(from int, input string, output string, to int) error {
	i, ok := m.index[input]
	if !ok {
		return fmt.Errorf("%w: %v", UnknownInputError, input)
	}
	if !m.hasState(from) {
		return fmt.Errorf("%w: %v", UnknownStateError, from)
	}
	if !m.hasState(to) {
		return fmt.Errorf("%w: %v", UnknownStateError, to)
	}
	m.next[from][i] = to
	m.out[from][i] = output
	return nil
}

// The number of states in the machine
func (m *Machine) Size() int {
	return len(m.next)
}

func (m *Machine) Inputs() []string {
	return slices.Clone(m.inputs)
}

// Returns the successor state and the output of the transition from state on input.
// ok is false if the transition is undefined.
func (m *Machine) Transition(state int, input string) (int, string, bool) {
	i, ok := m.index[input]
	if !ok || !m.hasState(state) {
		return undefined, "", false
	}
	to := m.next[state][i]
	if to == undefined {
		return undefined, "", false
	}
	return to, m.out[state][i], true
}

// Returns the state reached from the initial state by the input word
func (m *Machine) Reach(w Word) (int, bool) {
	return m.ReachFrom(m.initial, w)
}

func (m *Machine) ReachFrom(state int, w Word) (int, bool) {
	for _, in := range w {
		next, _, ok := m.Transition(state, in)
		if !ok {
			return undefined, false
		}
		state = next
	}
	return state, true
}

// Returns the output word produced from the initial state by the input word
func (m *Machine) Output(w Word) (Word, bool) {
	return m.OutputFrom(m.initial, w)
}

func (m *Machine) OutputFrom(state int, w Word) (Word, bool) {
	out := make(Word, 0, len(w))
	for _, in := range w {
		next, o, ok := m.Transition(state, in)
		if !ok {
			return out, false
		}
		out = append(out, o)
		state = next
	}
	return out, true
}

// Returns true if the query distinguishes the machine from the system that answered the query
func (m *Machine) IsCounterExample(q Query) bool {
	out, ok := m.Output(q.Input)
	return !ok || !out.Equal(q.Output)
}

// Computes a shortest access sequence for every state using a breadth first search from the initial state.
// The slice is indexed by state. Unreachable states have a nil access sequence.
func (m *Machine) AccessSequences() []Word {
	access := make([]Word, m.Size())
	if m.Size() == 0 {
		return access
	}
	visited := make([]bool, m.Size())
	visited[m.initial] = true
	access[m.initial] = Word{}
	queue := []int{m.initial}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for i, in := range m.inputs {
			to := m.next[s][i]
			if to == undefined || visited[to] {
				continue
			}
			visited[to] = true
			access[to] = access[s].Append(in)
			queue = append(queue, to)
		}
	}
	return access
}

// Returns a shortest input word on which the two states produce different outputs.
// ok is false if the states are equivalent.
func (m *Machine) DistinguishingWord(a, b int) (Word, bool) {
	type pair struct{ a, b int }
	type entry struct {
		p pair
		w Word
	}
	start := pair{a, b}
	visited := map[pair]bool{start: true}
	queue := []entry{{start, Word{}}}
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if e.p.a == e.p.b {
			continue
		}
		for _, in := range m.inputs {
			na, oa, okA := m.Transition(e.p.a, in)
			nb, ob, okB := m.Transition(e.p.b, in)
			w := e.w.Append(in)
			if okA != okB || oa != ob {
				return w, true
			}
			if !okA {
				continue
			}
			p := pair{na, nb}
			if !visited[p] {
				visited[p] = true
				queue = append(queue, entry{p, w})
			}
		}
	}
	return nil, false
}

func (m *Machine) hasState(s int) bool {
	return s >= 0 && s < len(m.next)
}
