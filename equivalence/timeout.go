package equivalence

import (
	"log/slog"
	"time"

	"gobbc/channel"
	"gobbc/logging"
	"gobbc/mealy"
)

// Disables the timeout
const Unbounded time.Duration = -1

type TimeOutOption interface{}

type clockOption struct {
	now func() time.Time
}

// Use the provided clock instead of time.Now
func WithClock(now func() time.Time) TimeOutOption {
	return clockOption{now: now}
}

type loggerOption struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) TimeOutOption {
	return loggerOption{logger: logger}
}

// Limits the total time spent on equivalence queries.
//
// The budget is cumulative and starts with the first call. A counterexample returned after the budget is used up
// is discarded, and the queries and symbols spent on the call are removed from the equivalence and the real
// channel, so the counters only hold the cost of useful work. The wrapped oracle is never interrupted.
type TimeOut struct {
	oracle   Oracle
	timeout  time.Duration
	channels *channel.Channels

	now     func() time.Time
	start   time.Time
	started bool

	logger *slog.Logger
}

func NewTimeOut(oracle Oracle, timeout time.Duration, c *channel.Channels, opts ...TimeOutOption) *TimeOut {
	t := &TimeOut{
		oracle:   oracle,
		timeout:  timeout,
		channels: c,
		now:      time.Now,
	}
	for _, opt := range opts {
		switch o := opt.(type) {
		case clockOption:
			t.now = o.now
		case loggerOption:
			t.logger = o.logger
		}
	}
	t.logger = logging.OrDiscard(t.logger)
	return t
}

func (t *TimeOut) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	if !t.started {
		t.start = t.now()
		t.started = true
	}
	equivalence := t.channels.Equivalence.Snapshot()
	real := t.channels.Real.Snapshot()

	q, err := t.oracle.FindCounterExample(hyp, inputs)
	if err != nil {
		return nil, err
	}

	if t.timeout == Unbounded || t.now().Sub(t.start) <= t.timeout {
		return q, nil
	}
	t.logger.Info("timeout reached", "timeout", t.timeout)
	if q != nil {
		t.logger.Info("not using counterexample", "query", q.String())
	}
	uselessEquivalence := t.channels.Equivalence.RollBack(equivalence)
	uselessReal := t.channels.Real.RollBack(real)
	t.logger.Info("useless equivalence queries",
		"queries", uselessEquivalence.Queries, "symbols", uselessEquivalence.Symbols)
	t.logger.Info("real useless queries",
		"queries", uselessReal.Queries, "symbols", uselessReal.Symbols)
	return nil, nil
}

// Returns true once the budget is used up
func (t *TimeOut) Expired() bool {
	return t.timeout != Unbounded && t.started && t.now().Sub(t.start) > t.timeout
}
