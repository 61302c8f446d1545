package checking

import (
	"testing"

	"gobbc/formula"
	"gobbc/mealy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inputs = []string{"A", "B"}

// s0 -A/X-> s1, s0 -B/Y-> s0, s1 -A/X-> s1, s1 -B/Z-> s0
func machine(t *testing.T) *mealy.Machine {
	m := mealy.New(inputs)
	s0, s1 := m.AddState(), m.AddState()
	require.NoError(t, m.SetTransition(s0, "A", "X", s1))
	require.NoError(t, m.SetTransition(s0, "B", "Y", s0))
	require.NoError(t, m.SetTransition(s1, "A", "X", s1))
	require.NoError(t, m.SetTransition(s1, "B", "Z", s0))
	return m
}

func parse(t *testing.T, text string) *formula.Formula {
	f, err := formula.Parse(text)
	require.NoError(t, err)
	return f
}

func TestMonitorFindsShortestBadPrefix(t *testing.T) {
	m := machine(t)
	for _, alternate := range []bool{true, false} {
		mc := NewMonitor(alternate)
		trace, err := mc.FindCounterExample(m, inputs, parse(t, "(false R ! oZ)"))
		require.NoError(t, err)
		require.NotNil(t, trace)
		assert.False(t, trace.IsLasso())
		assert.Equal(t, mealy.WordOf("A", "B"), trace.Input())
	}
}

func TestMonitorNoCounterExample(t *testing.T) {
	m := machine(t)
	mc := NewMonitor(false)
	for _, text := range []string{"true", "(true U oW)", "(false R ! oW)"} {
		trace, err := mc.FindCounterExample(m, inputs, parse(t, text))
		require.NoError(t, err)
		assert.Nil(t, trace, text)
	}
}

func TestMonitorFirstPosition(t *testing.T) {
	m := machine(t)
	mc := NewMonitor(false)
	// The first input must be A
	trace, err := mc.FindCounterExample(m, inputs, parse(t, "iA"))
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.Equal(t, mealy.WordOf("B"), trace.Input())

	trace, err = mc.FindCounterExample(m, inputs, parse(t, "false"))
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.Equal(t, mealy.Word{}, trace.Input())
}

func TestMonitorSkipsOutputs(t *testing.T) {
	m := machine(t)
	mc := NewMonitor(false, "Z")
	trace, err := mc.FindCounterExample(m, inputs, parse(t, "(false R ! oZ)"))
	require.NoError(t, err)
	assert.Nil(t, trace)
}

func TestMonitorAlternatingNext(t *testing.T) {
	m := machine(t)
	// With alternating semantics the position after an input is its output
	trace, err := NewMonitor(true).FindCounterExample(m, inputs, parse(t, "(false R (! iA | X oY))"))
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.Equal(t, mealy.WordOf("A"), trace.Input())

	// With separate semantics the position after an input is the next transition
	trace, err = NewMonitor(false).FindCounterExample(m, inputs, parse(t, "(false R (! iA | X oX))"))
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.Equal(t, mealy.WordOf("A", "B"), trace.Input())
}

func TestLassoFindsLiveness(t *testing.T) {
	m := machine(t)
	mc := NewLasso(false, 3, 1.0)
	trace, err := mc.FindCounterExample(m, inputs, parse(t, "(true U oZ)"))
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.True(t, trace.IsLasso())
	assert.Equal(t, mealy.Word{}, trace.Prefix)
	assert.Equal(t, mealy.WordOf("B"), trace.Loop)
	assert.Equal(t, 3, trace.Unfolds)
	assert.Equal(t, mealy.WordOf("B", "B", "B"), trace.Input())
}

func TestLassoFindsSafety(t *testing.T) {
	m := machine(t)
	mc := NewLasso(true, 1, 2.0)
	trace, err := mc.FindCounterExample(m, inputs, parse(t, "(false R ! oZ)"))
	require.NoError(t, err)
	require.NotNil(t, trace)
	assert.Equal(t, mealy.WordOf("A", "B"), trace.Loop)
	// ceil(2 states * 2.0) is larger than the minimum
	assert.Equal(t, 4, trace.Unfolds)
}

func TestLassoNoCounterExample(t *testing.T) {
	m := machine(t)
	mc := NewLasso(false, 3, 1.0)
	for _, text := range []string{"true", "(false R ! oW)", "(false R (! oZ | X oY | X oX))"} {
		trace, err := mc.FindCounterExample(m, inputs, parse(t, text))
		require.NoError(t, err)
		assert.Nil(t, trace, text)
	}
}

func TestEvaluateLasso(t *testing.T) {
	// a b (c)^ω with separate semantics
	w := []letter{
		{input: "A", output: "X", hasInput: true, hasOutput: true},
		{input: "B", output: "Y", hasInput: true, hasOutput: true},
		{input: "C", output: "Z", hasInput: true, hasOutput: true},
	}
	tests := []struct {
		text     string
		expected bool
	}{
		{"iA", true},
		{"X oY", true},
		{"X X X X iC", true},
		{"(true U iC)", true},
		{"(false R iC)", false},
		{"(true U (false R iC))", true},
		{"(iA U iB)", true},
		{"(iA U iC)", false},
		{"(! iC WU oZ)", true},
		{"(iA WU iC)", false},
		{"(false R (true U oZ))", true},
	}
	for _, test := range tests {
		f := parse(t, test.text)
		assert.Equal(t, test.expected, evaluateLasso(f.Root.NNF(), w, 2), test.text)
	}
}

type countingChecker struct {
	calls int
}

func (c *countingChecker) FindCounterExample(*mealy.Machine, []string, *formula.Formula) (*Trace, error) {
	c.calls++
	return &Trace{Prefix: mealy.WordOf("A")}, nil
}

func TestSizeCache(t *testing.T) {
	inner := &countingChecker{}
	cache := NewSizeCache(inner)
	m := machine(t)
	f := parse(t, "true")
	for i := 0; i < 3; i++ {
		trace, err := cache.FindCounterExample(m, inputs, f)
		require.NoError(t, err)
		assert.NotNil(t, trace)
	}
	assert.Equal(t, 1, inner.calls)

	// A different formula is not cached
	_, err := cache.FindCounterExample(m, inputs, parse(t, "false"))
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)

	// A larger hypothesis invalidates the cache
	m.AddState()
	_, err = cache.FindCounterExample(m, inputs, f)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
}
