package equivalence

import (
	"log/slog"

	"gobbc/channel"
	"gobbc/logging"
	"gobbc/mealy"
	"gobbc/tree"
)

// Default number of extra states the Wp-method tests for
const DefaultMaxDepth = 3

// Conformance testing with the Wp-method.
//
// The test suite finds every fault of a system with at most MaxDepth more states than the hypothesis.
// It consists of two phases:
//  1. state cover · Σ^≤MaxDepth · characterizing set
//  2. transition cover · Σ^≤MaxDepth · identifying set of the state reached
//
// The tests sharing a prefix from the cover are collected in a prefix tree, and only the maximal words are run.
type WpMethod struct {
	channel  *channel.Channel
	MaxDepth int
	logger   *slog.Logger
}

func NewWpMethod(c *channel.Channel, maxDepth int, logger *slog.Logger) *WpMethod {
	return &WpMethod{
		channel:  c,
		MaxDepth: maxDepth,
		logger:   logging.OrDiscard(logger),
	}
}

func (wp *WpMethod) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	if hyp.Size() == 0 {
		return nil, nil
	}
	access := hyp.AccessSequences()
	global, local := identifiers(hyp)
	middles := middleWords(inputs, wp.MaxDepth)

	run := func(t *tree.Tree[string]) (*mealy.Query, error) {
		for _, w := range t.Words() {
			q, err := test(hyp, wp.channel.Probe, w)
			if err != nil || q != nil {
				return q, err
			}
		}
		return nil, nil
	}

	// First phase
	for _, prefix := range access {
		if prefix == nil {
			continue
		}
		t := tree.New[string]()
		for _, mid := range middles {
			for _, w := range global {
				t.Insert(prefix.Concat(mid, w))
			}
		}
		if q, err := run(t); err != nil || q != nil {
			return q, err
		}
	}

	// Second phase
	for _, prefix := range access {
		if prefix == nil {
			continue
		}
		for _, in := range inputs {
			t := tree.New[string]()
			for _, mid := range middles {
				word := prefix.Append(in).Concat(mid)
				state, ok := hyp.Reach(word)
				if !ok {
					continue
				}
				for _, w := range local[state] {
					t.Insert(word.Concat(w))
				}
			}
			if q, err := run(t); err != nil || q != nil {
				return q, err
			}
		}
	}
	wp.logger.Debug("wp-method found no counterexample", "size", hyp.Size(), "depth", wp.MaxDepth)
	return nil, nil
}

// All words over the inputs of length at most depth, shortest first
func middleWords(inputs []string, depth int) []mealy.Word {
	words := []mealy.Word{{}}
	layer := []mealy.Word{{}}
	for d := 0; d < depth; d++ {
		next := make([]mealy.Word, 0, len(layer)*len(inputs))
		for _, w := range layer {
			for _, in := range inputs {
				next = append(next, w.Append(in))
			}
		}
		words = append(words, next...)
		layer = next
	}
	return words
}

// Computes a characterizing set of the hypothesis and an identifying set for every state.
// Sets that would be empty contain the empty word.
func identifiers(hyp *mealy.Machine) (global []mealy.Word, local [][]mealy.Word) {
	n := hyp.Size()
	seen := map[string]bool{}
	localSeen := make([]map[string]bool, n)
	local = make([][]mealy.Word, n)
	for s := range local {
		localSeen[s] = map[string]bool{}
	}
	add := func(set *[]mealy.Word, seen map[string]bool, w mealy.Word) {
		key := w.String()
		if !seen[key] {
			seen[key] = true
			*set = append(*set, w)
		}
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			w, ok := hyp.DistinguishingWord(a, b)
			if !ok {
				continue
			}
			add(&global, seen, w)
			add(&local[a], localSeen[a], w)
			add(&local[b], localSeen[b], w)
		}
	}
	if len(global) == 0 {
		global = []mealy.Word{{}}
	}
	for s := range local {
		if len(local[s]) == 0 {
			local[s] = []mealy.Word{{}}
		}
	}
	return global, local
}
