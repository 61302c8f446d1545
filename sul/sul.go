package sul

import (
	"fmt"

	"gobbc/mealy"
)

// The output of a probe that has no defined transition for the input in its current state.
//
// Model checkers skip transitions producing Deadlock instead of treating it as a regular output.
const Deadlock = "deadlock"

// A system under test.
//
// The probe is deterministic given its reset history.
// A probe has a single reset history, so it must not be driven from several goroutines at once.
type Probe interface {
	// Return the system to its initial state
	Reset() error
	// Apply one input and return the output produced by the system
	Step(input string) (string, error)
}

// Reset the probe and apply the word, returning the output word.
// This is the membership query used by every oracle that talks to a system under test.
func Query(p Probe, input mealy.Word) (mealy.Word, error) {
	if err := p.Reset(); err != nil {
		return nil, fmt.Errorf("sul: reset failed: %w", err)
	}
	out := make(mealy.Word, 0, len(input))
	for _, in := range input {
		o, err := p.Step(in)
		if err != nil {
			return nil, fmt.Errorf("sul: step %q failed: %w", in, err)
		}
		out = append(out, o)
	}
	return out, nil
}
