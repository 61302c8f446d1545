package channel

import (
	"gobbc/sul"
)

// Creates the observers for the query and the symbol counter of a channel
type ObserverFactory func(Name) (queries Observer, symbols Observer)

// The channels of one experiment.
//
// Real counts every query and symbol that reaches the system under test.
// The logical channels are views on top of Real, so their totals sum up to the totals of Real.
type Channels struct {
	Real        *Channel
	Learning    *Channel
	Equivalence *Channel
	Emptiness   *Channel
	Inclusion   *Channel
	Omega       *Channel
}

// Create the channels observing the probe. obs may be nil.
func NewChannels(probe sul.Probe, obs ObserverFactory) *Channels {
	real := wrap(probe, Real, obs)
	return &Channels{
		Real:        real,
		Learning:    wrap(real.Probe, Learning, obs),
		Equivalence: wrap(real.Probe, Equivalence, obs),
		Emptiness:   wrap(real.Probe, Emptiness, obs),
		Inclusion:   wrap(real.Probe, Inclusion, obs),
		Omega:       wrap(real.Probe, OmegaEmptiness, obs),
	}
}

// All channels, starting with Real
func (c *Channels) All() []*Channel {
	return []*Channel{c.Real, c.Learning, c.Equivalence, c.Emptiness, c.Omega, c.Inclusion}
}

// Returns the channel with the provided name or nil if there is none
func (c *Channels) Get(name Name) *Channel {
	for _, ch := range c.All() {
		if ch.Name == name {
			return ch
		}
	}
	return nil
}
