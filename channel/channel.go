package channel

import (
	"gobbc/sul"
)

// The name of a channel
type Name string

const (
	Real           Name = "real"
	Learning       Name = "learning"
	Equivalence    Name = "equivalence"
	Emptiness      Name = "emptiness"
	Inclusion      Name = "inclusion"
	OmegaEmptiness Name = "omega-emptiness"
)

// An accounting lane. Pairs a query counter and a symbol counter with an instrumented view of a probe.
//
// Every Reset on Probe increments Queries and every Step increments Symbols.
type Channel struct {
	Name    Name
	Queries *Counter
	Symbols *Counter
	Probe   sul.Probe
}

// Wrap the probe in a query counter and a symbol counter.
func Wrap(probe sul.Probe, name Name) *Channel {
	return wrap(probe, name, nil)
}

func wrap(probe sul.Probe, name Name, obs ObserverFactory) *Channel {
	var qObs, sObs Observer
	if obs != nil {
		qObs, sObs = obs(name)
	}
	queries := NewCounter(string(name)+" queries", qObs)
	symbols := NewCounter(string(name)+" symbols", sObs)
	return &Channel{
		Name:    name,
		Queries: queries,
		Symbols: symbols,
		Probe: &symbolCounter{
			counter: symbols,
			probe: &resetCounter{
				counter: queries,
				probe:   probe,
			},
		},
	}
}

// Current query and symbol count of the channel
type Snapshot struct {
	Queries int64
	Symbols int64
}

func (c *Channel) Snapshot() Snapshot {
	return Snapshot{
		Queries: c.Queries.Count(),
		Symbols: c.Symbols.Count(),
	}
}

// Adjust the counters so that they hold the values of the snapshot again.
// Returns the discarded cost, i.e. the difference between the value before the rollback and the snapshot.
func (c *Channel) RollBack(to Snapshot) Snapshot {
	now := c.Snapshot()
	delta := Snapshot{
		Queries: now.Queries - to.Queries,
		Symbols: now.Symbols - to.Symbols,
	}
	c.Queries.Adjust(-delta.Queries)
	c.Symbols.Adjust(-delta.Symbols)
	return delta
}

// Counts resets
type resetCounter struct {
	counter *Counter
	probe   sul.Probe
}

func (rc *resetCounter) Reset() error {
	rc.counter.Increment()
	return rc.probe.Reset()
}

func (rc *resetCounter) Step(input string) (string, error) {
	return rc.probe.Step(input)
}

// Counts steps
type symbolCounter struct {
	counter *Counter
	probe   sul.Probe
}

func (sc *symbolCounter) Reset() error {
	return sc.probe.Reset()
}

func (sc *symbolCounter) Step(input string) (string, error) {
	sc.counter.Increment()
	return sc.probe.Step(input)
}
