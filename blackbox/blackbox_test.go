package blackbox

import (
	"testing"

	"gobbc/mealy"
	"gobbc/property"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A scripted property oracle recording the calls made to it
type stub struct {
	name      string
	disproof  *mealy.Query
	cex       *mealy.Query
	disproved bool
	calls     *[]string
}

func (s *stub) Property() string  { return s.name }
func (s *stub) IsDisproved() bool { return s.disproved }

func (s *stub) Disprove(*mealy.Machine, []string) (*mealy.Query, error) {
	*s.calls = append(*s.calls, "disprove "+s.name)
	if s.disproof != nil {
		s.disproved = true
	}
	return s.disproof, nil
}

func (s *stub) FindCounterExample(*mealy.Machine, []string) (*mealy.Query, error) {
	*s.calls = append(*s.calls, "find "+s.name)
	return s.cex, nil
}

func query(in ...string) *mealy.Query {
	return &mealy.Query{Input: mealy.WordOf(in...), Output: mealy.WordOf(in...)}
}

func TestCExFirst(t *testing.T) {
	calls := []string{}
	properties := []property.Oracle{
		&stub{name: "p0", disproved: true, cex: query("a"), calls: &calls},
		&stub{name: "p1", calls: &calls},
		&stub{name: "p2", cex: query("b"), calls: &calls},
		&stub{name: "p3", cex: query("c"), calls: &calls},
	}
	o := New(CExFirst, properties, nil)
	q, err := o.FindCounterExample(mealy.New(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, query("b"), q)
	assert.Equal(t, []string{"find p1", "find p2"}, calls)
}

func TestDisproveFirst(t *testing.T) {
	calls := []string{}
	properties := []property.Oracle{
		&stub{name: "p0", disproof: query("a"), cex: query("x"), calls: &calls},
		&stub{name: "p1", calls: &calls},
		&stub{name: "p2", cex: query("b"), calls: &calls},
	}
	o := New(DisproveFirst, properties, nil)
	q, err := o.FindCounterExample(mealy.New(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, query("b"), q)
	assert.Equal(t, []string{"disprove p0", "disprove p1", "disprove p2", "find p1", "find p2"}, calls)
	assert.True(t, properties[0].IsDisproved())
}

func TestNoCounterExample(t *testing.T) {
	calls := []string{}
	o := New(CExFirst, []property.Oracle{&stub{name: "p0", calls: &calls}}, nil)
	q, err := o.FindCounterExample(mealy.New(nil), nil)
	require.NoError(t, err)
	assert.Nil(t, q)
}

func TestStrategyOf(t *testing.T) {
	assert.Equal(t, None, StrategyOf(false, false))
	assert.Equal(t, CExFirst, StrategyOf(false, true))
	assert.Equal(t, DisproveFirst, StrategyOf(true, false))
	assert.Panics(t, func() { StrategyOf(true, true) })
	assert.Panics(t, func() { New(None, nil, nil) })

	assert.Equal(t, "cex-first", CExFirst.String())
	assert.Equal(t, "disprove-first", DisproveFirst.String())
	assert.Equal(t, "none", None.String())
}
