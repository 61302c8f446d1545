package record

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gobbc/channel"
	"gobbc/mealy"
	"gobbc/sul"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Record {
	return Record{
		Problem:  1,
		Learner:  "TTT",
		Mode:     "monitor",
		Strategy: "cex-first",
		Property: 4,
		Size:     2,
		Symbols:  Counts{Real: 10, Learning: 4, Equivalence: 3, Emptiness: 1, Omega: 0, Inclusion: 2},
		Queries:  Counts{Real: 5, Learning: 2, Equivalence: 1, Emptiness: 1, Omega: 0, Inclusion: 1},
		Length:   2,
	}
}

func TestFields(t *testing.T) {
	fields := sample().Fields()
	require.Len(t, fields, len(Header))
	assert.Equal(t, "1,TTT,monitor,cex-first,4,2,10,4,3,1,0,2,5,2,1,1,0,1,2", strings.Join(fields, ","))
}

func TestCSVSink(t *testing.T) {
	out := &bytes.Buffer{}
	s, err := NewCSVSink(out)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ",")+"\n", out.String())

	require.NoError(t, s.Emit(sample()))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "1,TTT,monitor,cex-first,4,2,10,4,3,1,0,2,5,2,1,1,0,1,2", lines[1])
}

func TestCountsOf(t *testing.T) {
	m := mealy.New([]string{"a"})
	s := m.AddState()
	require.NoError(t, m.SetTransition(s, "a", "x", s))
	c := channel.NewChannels(sul.NewSimulated(m), nil)

	_, err := sul.Query(c.Learning.Probe, mealy.WordOf("a", "a"))
	require.NoError(t, err)
	_, err = sul.Query(c.Omega.Probe, mealy.WordOf("a"))
	require.NoError(t, err)

	symbols, queries := CountsOf(c)
	assert.Equal(t, Counts{Real: 3, Learning: 2, Omega: 1}, symbols)
	assert.Equal(t, Counts{Real: 2, Learning: 1, Omega: 1}, queries)
}

type failingSink struct{}

func (failingSink) Emit(Record) error { return errors.New("full") }

func TestMultiSink(t *testing.T) {
	a, b := &Memory{}, &Memory{}
	ms := MultiSink{a, failingSink{}, b}
	err := ms.Emit(sample())
	assert.Error(t, err)
	assert.Len(t, a.Records(), 1)
	assert.Len(t, b.Records(), 1)
}

func TestSQLiteSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	s, err := NewSQLiteSink(path, "run-1")
	require.NoError(t, err)
	defer s.Close()

	first, second := sample(), sample()
	second.Property = 7
	second.Length = 12
	require.NoError(t, s.Emit(first))
	require.NoError(t, s.Emit(second))

	records, err := s.Records(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, []Record{first, second}, records)

	records, err = s.Records(context.Background(), "run-2")
	require.NoError(t, err)
	assert.Empty(t, records)
}
