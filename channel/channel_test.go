package channel

import (
	"math/rand"
	"testing"

	"gobbc/mealy"
	"gobbc/sul"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoProbe() sul.Probe {
	m := mealy.New([]string{"a", "b"})
	s := m.AddState()
	m.SetTransition(s, "a", "a", s)
	m.SetTransition(s, "b", "b", s)
	return sul.NewSimulated(m)
}

func TestCounterCountsResetsAndSteps(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		ch := Wrap(echoProbe(), Learning)
		resets, steps := 0, 0
		for j := 0; j < r.Intn(100); j++ {
			if r.Intn(3) == 0 {
				require.NoError(t, ch.Probe.Reset())
				resets++
			} else {
				out, err := ch.Probe.Step("a")
				require.NoError(t, err)
				assert.Equal(t, "a", out)
				steps++
			}
		}
		if ch.Queries.Count() != int64(resets) {
			t.Errorf("Expected %v queries. Got %v", resets, ch.Queries.Count())
		}
		if ch.Symbols.Count() != int64(steps) {
			t.Errorf("Expected %v symbols. Got %v", steps, ch.Symbols.Count())
		}
	}
}

func TestChannelsSumToReal(t *testing.T) {
	chs := NewChannels(echoProbe(), nil)
	w := mealy.WordOf("a", "b", "a")
	for i, ch := range chs.All()[1:] {
		for j := 0; j <= i; j++ {
			_, err := sul.Query(ch.Probe, w)
			require.NoError(t, err)
		}
	}
	var queries, symbols int64
	for _, ch := range chs.All()[1:] {
		queries += ch.Queries.Count()
		symbols += ch.Symbols.Count()
	}
	assert.Equal(t, chs.Real.Queries.Count(), queries)
	assert.Equal(t, chs.Real.Symbols.Count(), symbols)
	assert.Equal(t, int64(15), queries)
	assert.Equal(t, int64(45), symbols)
}

func TestRollBack(t *testing.T) {
	ch := Wrap(echoProbe(), Equivalence)
	_, err := sul.Query(ch.Probe, mealy.WordOf("a"))
	require.NoError(t, err)
	snap := ch.Snapshot()
	_, err = sul.Query(ch.Probe, mealy.WordOf("a", "b"))
	require.NoError(t, err)

	discarded := ch.RollBack(snap)
	assert.Equal(t, Snapshot{Queries: 1, Symbols: 2}, discarded)
	assert.Equal(t, snap, ch.Snapshot())
}

func TestNegativeCounterPanics(t *testing.T) {
	c := NewCounter("test", nil)
	c.Increment()
	assert.Panics(t, func() { c.Adjust(-2) })
	// The failed adjustment is not applied
	assert.Equal(t, int64(1), c.Count())
}

type recordingObserver struct{ total float64 }

func (r *recordingObserver) Add(d float64) { r.total += d }

func TestObserverSeesRollBack(t *testing.T) {
	q, s := &recordingObserver{}, &recordingObserver{}
	chs := NewChannels(echoProbe(), func(n Name) (Observer, Observer) {
		if n == Equivalence {
			return q, s
		}
		return nil, nil
	})
	snap := chs.Equivalence.Snapshot()
	_, err := sul.Query(chs.Equivalence.Probe, mealy.WordOf("a", "a"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.total)
	assert.Equal(t, 2.0, s.total)
	chs.Equivalence.RollBack(snap)
	assert.Equal(t, 0.0, q.total)
	assert.Equal(t, 0.0, s.total)
}

func TestGetChannel(t *testing.T) {
	chs := NewChannels(echoProbe(), nil)
	assert.Same(t, chs.Omega, chs.Get(OmegaEmptiness))
	assert.Nil(t, chs.Get("unknown"))
}
