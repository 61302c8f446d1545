package learner

import (
	"fmt"
	"log/slog"
	"strings"

	"gobbc/mealy"
)

// Adds the information of a counterexample to an observation table
type counterExampleHandler func(t *tableLearner, input mealy.Word) error

// An observation table learner.
//
// The rows are indexed by the short prefixes and their one symbol extensions, the columns by the suffixes.
// A cell holds the output of the system under test for the suffix after the prefix.
// The suffixes always contain every single input, so the outputs of the hypothesis are read from the table.
type tableLearner struct {
	mq     *membership
	inputs []string
	handle counterExampleHandler

	short    []mealy.Word
	isShort  map[string]bool
	suffixes []mealy.Word
	isSuffix map[string]bool

	hyp  *mealy.Machine
	reps []mealy.Word

	logger *slog.Logger
}

func newTableLearner(mq *membership, inputs []string, handle counterExampleHandler, logger *slog.Logger) *tableLearner {
	t := &tableLearner{
		mq:       mq,
		inputs:   inputs,
		handle:   handle,
		isShort:  map[string]bool{},
		isSuffix: map[string]bool{},
		logger:   logger,
	}
	t.addShort(mealy.Word{})
	for _, in := range inputs {
		t.addSuffix(mealy.WordOf(in))
	}
	return t
}

func (t *tableLearner) addShort(w mealy.Word) bool {
	if t.isShort[key(w)] {
		return false
	}
	t.isShort[key(w)] = true
	t.short = append(t.short, w)
	return true
}

func (t *tableLearner) addSuffix(w mealy.Word) bool {
	if len(w) == 0 || t.isSuffix[key(w)] {
		return false
	}
	t.isSuffix[key(w)] = true
	t.suffixes = append(t.suffixes, w)
	return true
}

// The contents of the row of the prefix
func (t *tableLearner) row(prefix mealy.Word) (string, error) {
	cells := make([]string, len(t.suffixes))
	for i, e := range t.suffixes {
		out, err := t.mq.suffix(prefix, e)
		if err != nil {
			return "", err
		}
		cells[i] = key(out)
	}
	return strings.Join(cells, "\x1e"), nil
}

// Add short prefixes until every extension of a short prefix has the row of a short prefix
func (t *tableLearner) close() error {
	for {
		rows := map[string]bool{}
		for _, s := range t.short {
			r, err := t.row(s)
			if err != nil {
				return err
			}
			rows[r] = true
		}
		added := false
		for _, s := range t.short {
			for _, in := range t.inputs {
				u := s.Append(in)
				r, err := t.row(u)
				if err != nil {
					return err
				}
				if !rows[r] {
					rows[r] = true
					added = t.addShort(u) || added
				}
			}
		}
		if !added {
			return nil
		}
	}
}

// Search two short prefixes with the same row whose extensions by an input have different rows.
// Adds a suffix separating them and returns false if there are any.
func (t *tableLearner) consistent() (bool, error) {
	rows := make([]string, len(t.short))
	for i, s := range t.short {
		r, err := t.row(s)
		if err != nil {
			return false, err
		}
		rows[i] = r
	}
	for i := range t.short {
		for j := i + 1; j < len(t.short); j++ {
			if rows[i] != rows[j] {
				continue
			}
			for _, in := range t.inputs {
				for _, e := range t.suffixes {
					a, err := t.mq.suffix(t.short[i].Append(in), e)
					if err != nil {
						return false, err
					}
					b, err := t.mq.suffix(t.short[j].Append(in), e)
					if err != nil {
						return false, err
					}
					if !a.Equal(b) {
						t.addSuffix(mealy.WordOf(in).Concat(e))
						return false, nil
					}
				}
			}
		}
	}
	return true, nil
}

// Make the table closed and consistent and build the hypothesis from it
func (t *tableLearner) build() error {
	for {
		if err := t.close(); err != nil {
			return err
		}
		ok, err := t.consistent()
		if err != nil {
			return err
		}
		if ok {
			break
		}
	}

	m := mealy.New(t.inputs)
	states := map[string]int{}
	t.reps = []mealy.Word{}
	for _, s := range t.short {
		r, err := t.row(s)
		if err != nil {
			return err
		}
		if _, ok := states[r]; !ok {
			states[r] = m.AddState()
			t.reps = append(t.reps, s)
		}
	}
	for from, s := range t.reps {
		for _, in := range t.inputs {
			u := s.Append(in)
			r, err := t.row(u)
			if err != nil {
				return err
			}
			out, err := t.mq.suffix(s, mealy.WordOf(in))
			if err != nil {
				return err
			}
			if err := m.SetTransition(from, in, out[0], states[r]); err != nil {
				return err
			}
		}
	}
	t.hyp = m
	t.logger.Debug("new hypothesis", "states", m.Size(), "prefixes", len(t.short), "suffixes", len(t.suffixes))
	return nil
}

func (t *tableLearner) Start() error {
	return t.build()
}

func (t *tableLearner) Hypothesis() *mealy.Machine {
	return t.hyp
}

func (t *tableLearner) Refine(q mealy.Query) (bool, error) {
	refined := false
	for {
		out, err := t.mq.query(q.Input)
		if err != nil {
			return refined, err
		}
		if !t.hyp.IsCounterExample(mealy.Query{Input: q.Input, Output: out}) {
			return refined, nil
		}
		size := t.hyp.Size()
		// Handlers that fail to split a state fall back to the stronger ones
		for _, handle := range []counterExampleHandler{t.handle, addSuffixes, addPrefixes} {
			if err := handle(t, q.Input); err != nil {
				return refined, err
			}
			if err := t.build(); err != nil {
				return refined, err
			}
			if t.hyp.Size() > size {
				break
			}
		}
		if t.hyp.Size() == size {
			return refined, fmt.Errorf("learner: %v did not refine the hypothesis", q)
		}
		refined = true
	}
}

// Add every prefix of the counterexample to the short prefixes
func addPrefixes(t *tableLearner, input mealy.Word) error {
	for i := 1; i <= len(input); i++ {
		t.addShort(input.Prefix(i))
	}
	return nil
}

// Add every suffix of the counterexample to the suffixes
func addSuffixes(t *tableLearner, input mealy.Word) error {
	for i := 0; i < len(input); i++ {
		t.addSuffix(input.Suffix(i))
	}
	return nil
}

// Find a single distinguishing suffix of the counterexample with a binary search.
//
// Replacing the prefix of length i by the access sequence of the state it reaches keeps the system under test
// disagreeing with the hypothesis for i = 0 but not for i = len(input). The suffix after the point where the
// disagreement stops separates two prefixes the hypothesis identifies.
func addDistinguishingSuffix(t *tableLearner, input mealy.Word) error {
	disagrees := func(i int) (bool, error) {
		state, ok := t.hyp.Reach(input.Prefix(i))
		if !ok {
			return true, nil
		}
		suffix := input.Suffix(i)
		real, err := t.mq.suffix(t.reps[state], suffix)
		if err != nil {
			return false, err
		}
		expected, _ := t.hyp.OutputFrom(state, suffix)
		return !real.Equal(expected), nil
	}
	lo, hi := 0, len(input)
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		d, err := disagrees(mid)
		if err != nil {
			return err
		}
		if d {
			lo = mid
		} else {
			hi = mid
		}
	}
	if !t.addSuffix(input.Suffix(hi)) {
		return addSuffixes(t, input)
	}
	return nil
}
