package record

import (
	"strconv"

	"gobbc/channel"
)

// The columns of a result record, in order
var Header = []string{
	"problem", "learner", "aut", "bbo", "property", "size",
	"realsymbols", "learnsymbols", "eqsymbols", "emsymbols", "emosymbols", "insymbols",
	"realqueries", "learnqueries", "eqqueries", "emqueries", "emoqueries", "inqueries",
	"length",
}

// Counter values of every channel at one point in time
type Counts struct {
	Real        int64
	Learning    int64
	Equivalence int64
	Emptiness   int64
	Omega       int64
	Inclusion   int64
}

func (c Counts) fields() []string {
	values := []int64{c.Real, c.Learning, c.Equivalence, c.Emptiness, c.Omega, c.Inclusion}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.FormatInt(v, 10)
	}
	return out
}

// Read the current symbol and query counts of every channel
func CountsOf(c *channel.Channels) (symbols Counts, queries Counts) {
	symbols = Counts{
		Real:        c.Real.Symbols.Count(),
		Learning:    c.Learning.Symbols.Count(),
		Equivalence: c.Equivalence.Symbols.Count(),
		Emptiness:   c.Emptiness.Symbols.Count(),
		Omega:       c.Omega.Symbols.Count(),
		Inclusion:   c.Inclusion.Symbols.Count(),
	}
	queries = Counts{
		Real:        c.Real.Queries.Count(),
		Learning:    c.Learning.Queries.Count(),
		Equivalence: c.Equivalence.Queries.Count(),
		Emptiness:   c.Emptiness.Queries.Count(),
		Omega:       c.Omega.Queries.Count(),
		Inclusion:   c.Inclusion.Queries.Count(),
	}
	return symbols, queries
}

// A result record, written every time a property is falsified on the system under test.
type Record struct {
	Problem int
	Learner string
	// Model checker mode: monitor, buchi or monitor-buchi
	Mode string
	// Black-box oracle strategy: cex-first, disprove-first or none
	Strategy string
	// Index of the property in its formula list
	Property int
	// Number of states of the hypothesis the property was falsified on
	Size int

	Symbols Counts
	Queries Counts

	// Length of the input word falsifying the property
	Length int
}

// The fields of the record in the order of Header
func (r Record) Fields() []string {
	out := []string{
		strconv.Itoa(r.Problem),
		r.Learner,
		r.Mode,
		r.Strategy,
		strconv.Itoa(r.Property),
		strconv.Itoa(r.Size),
	}
	out = append(out, r.Symbols.fields()...)
	out = append(out, r.Queries.fields()...)
	return append(out, strconv.Itoa(r.Length))
}
