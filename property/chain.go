package property

import "gobbc/mealy"

// Oracles for the same property, tried in order. The first non nil result is returned.
type Chain []Oracle

func (c Chain) Property() string {
	return c[0].Property()
}

func (c Chain) IsDisproved() bool {
	for _, o := range c {
		if o.IsDisproved() {
			return true
		}
	}
	return false
}

func (c Chain) Disprove(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	for _, o := range c {
		q, err := o.Disprove(hyp, inputs)
		if err != nil || q != nil {
			return q, err
		}
	}
	return nil, nil
}

func (c Chain) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	for _, o := range c {
		q, err := o.FindCounterExample(hyp, inputs)
		if err != nil || q != nil {
			return q, err
		}
	}
	return nil, nil
}
