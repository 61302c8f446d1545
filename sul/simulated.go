package sul

import (
	"gobbc/mealy"
)

// A probe simulating a Mealy machine.
//
// Inputs without a defined transition produce Deadlock and move the probe into a sink
// where every following input also produces Deadlock.
type Simulated struct {
	m     *mealy.Machine
	state int
	sink  bool
}

func NewSimulated(m *mealy.Machine) *Simulated {
	return &Simulated{
		m:     m,
		state: m.Initial(),
	}
}

func (s *Simulated) Reset() error {
	s.state = s.m.Initial()
	s.sink = false
	return nil
}

func (s *Simulated) Step(input string) (string, error) {
	if s.sink {
		return Deadlock, nil
	}
	next, out, ok := s.m.Transition(s.state, input)
	if !ok {
		s.sink = true
		return Deadlock, nil
	}
	s.state = next
	return out, nil
}

// The input alphabet of the simulated machine
func (s *Simulated) Inputs() []string {
	return s.m.Inputs()
}
