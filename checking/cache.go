package checking

import (
	"gobbc/formula"
	"gobbc/mealy"
)

// Caches the results of a model checker for as long as the size of the hypothesis does not change.
//
// Refining a hypothesis always adds states, so a hypothesis of the same size is the same hypothesis.
type SizeCache struct {
	mc ModelChecker

	size    int
	results map[string]*Trace
}

func NewSizeCache(mc ModelChecker) *SizeCache {
	return &SizeCache{
		mc:      mc,
		size:    -1,
		results: map[string]*Trace{},
	}
}

func (c *SizeCache) FindCounterExample(hyp *mealy.Machine, inputs []string, f *formula.Formula) (*Trace, error) {
	if hyp.Size() != c.size {
		c.size = hyp.Size()
		c.results = map[string]*Trace{}
	}
	if trace, ok := c.results[f.Text]; ok {
		return trace, nil
	}
	trace, err := c.mc.FindCounterExample(hyp, inputs, f)
	if err != nil {
		return nil, err
	}
	c.results[f.Text] = trace
	return trace, nil
}
