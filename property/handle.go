package property

import (
	"fmt"
	"log/slog"

	"gobbc/channel"
	"gobbc/logging"
	"gobbc/mealy"
	"gobbc/record"
)

// Describes the experiment a property is checked in
type Info struct {
	Problem  int
	Learner  string
	Mode     string
	Strategy string
}

// A property handle emits a result record every time its property is disproved on the system under test.
type Handle struct {
	oracle   Oracle
	index    int
	info     Info
	channels *channel.Channels
	sink     record.Sink
	logger   *slog.Logger
}

func NewHandle(oracle Oracle, index int, info Info, channels *channel.Channels, sink record.Sink, logger *slog.Logger) *Handle {
	if sink == nil {
		sink = record.Discard{}
	}
	return &Handle{
		oracle:   oracle,
		index:    index,
		info:     info,
		channels: channels,
		sink:     sink,
		logger:   logging.OrDiscard(logger),
	}
}

func (h *Handle) Index() int {
	return h.index
}

func (h *Handle) Property() string {
	return h.oracle.Property()
}

func (h *Handle) IsDisproved() bool {
	return h.oracle.IsDisproved()
}

// Disprove the property. Every disproof emits a record, also for a property that was disproved before.
func (h *Handle) Disprove(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	q, err := h.oracle.Disprove(hyp, inputs)
	if err != nil || q == nil {
		return nil, err
	}
	h.logger.Info("property disproved", "property", h.index, "formula", h.oracle.Property(), "query", q.String())
	symbols, queries := record.CountsOf(h.channels)
	r := record.Record{
		Problem:  h.info.Problem,
		Learner:  h.info.Learner,
		Mode:     h.info.Mode,
		Strategy: h.info.Strategy,
		Property: h.index,
		Size:     hyp.Size(),
		Symbols:  symbols,
		Queries:  queries,
		Length:   len(q.Input),
	}
	if err := h.sink.Emit(r); err != nil {
		return q, fmt.Errorf("property: failed to emit record for property %d: %w", h.index, err)
	}
	return q, nil
}

// Search for a counterexample to the hypothesis. Never records anything.
func (h *Handle) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	return h.oracle.FindCounterExample(hyp, inputs)
}
