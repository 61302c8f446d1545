package channel

import (
	"log"
	"sync/atomic"
)

// Receives every change applied to a Counter.
// Used to mirror counters into an external metrics system.
type Observer interface {
	Add(delta float64)
}

// A named counter of queries or symbols.
//
// The counter only grows during normal operation. Adjust with a negative delta is used to roll back
// cost that was accounted for discarded work. The value never becomes negative.
type Counter struct {
	name  string
	value atomic.Int64

	observer Observer
}

func NewCounter(name string, observer Observer) *Counter {
	return &Counter{
		name:     name,
		observer: observer,
	}
}

func (c *Counter) Name() string {
	return c.name
}

func (c *Counter) Count() int64 {
	return c.value.Load()
}

func (c *Counter) Increment() {
	c.Adjust(1)
}

// Add delta to the counter.
//
// Panics if the counter would become negative. A negative counter means that more cost was rolled
// back than was accounted for, which is a defect in the caller.
func (c *Counter) Adjust(delta int64) {
	if delta == 0 {
		return
	}
	if v := c.value.Add(delta); v < 0 {
		c.value.Add(-delta)
		log.Panicf("channel: counter %q would become negative (%d) after adjusting by %d", c.name, v, delta)
	}
	if c.observer != nil {
		c.observer.Add(float64(delta))
	}
}
