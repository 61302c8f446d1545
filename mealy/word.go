package mealy

import (
	"strings"

	"golang.org/x/exp/slices"
)

// A finite sequence of input or output symbols.
type Word []string

// Creates a word from the provided symbols
func WordOf(symbols ...string) Word {
	return slices.Clone(Word(symbols))
}

func (w Word) Len() int {
	return len(w)
}

// Returns the first n symbols of the word as a new word
func (w Word) Prefix(n int) Word {
	return slices.Clone(w[:n])
}

// Returns the symbols from index i to the end of the word as a new word
func (w Word) Suffix(i int) Word {
	return slices.Clone(w[i:])
}

// Returns the concatenation of w and the provided words. w is not modified.
func (w Word) Concat(others ...Word) Word {
	n := len(w)
	for _, o := range others {
		n += len(o)
	}
	out := make(Word, 0, n)
	out = append(out, w...)
	for _, o := range others {
		out = append(out, o...)
	}
	return out
}

// Returns a new word with the symbol appended
func (w Word) Append(symbol string) Word {
	return w.Concat(Word{symbol})
}

// Returns the word repeated n times
func (w Word) Repeat(n int) Word {
	out := make(Word, 0, len(w)*n)
	for i := 0; i < n; i++ {
		out = append(out, w...)
	}
	return out
}

func (w Word) Equal(o Word) bool {
	return slices.Equal(w, o)
}

func (w Word) String() string {
	if len(w) == 0 {
		return "ε"
	}
	return strings.Join(w, " ")
}

// A query is an input word together with the output word the system under test produced for it.
//
// A query distinguishing a hypothesis from the system under test is a counterexample.
type Query struct {
	Input  Word
	Output Word
}

func (q Query) String() string {
	return "Query[" + q.Input.String() + " | " + q.Output.String() + "]"
}
