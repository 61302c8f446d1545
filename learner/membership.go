package learner

import (
	"strings"

	"gobbc/mealy"
	"gobbc/sul"
)

// Answers membership queries on a probe.
// Every word is only queried once, and words that are a prefix of a queried word are answered from the cache.
type membership struct {
	probe sul.Probe
	cache map[string]mealy.Word
}

func newMembership(probe sul.Probe) *membership {
	return &membership{
		probe: probe,
		cache: map[string]mealy.Word{},
	}
}

func key(w mealy.Word) string {
	return strings.Join(w, "\x1f")
}

// The output of the system under test for the word
func (m *membership) query(w mealy.Word) (mealy.Word, error) {
	if out, ok := m.cache[key(w)]; ok {
		return out, nil
	}
	out, err := sul.Query(m.probe, w)
	if err != nil {
		return nil, err
	}
	for i := 0; i <= len(w); i++ {
		m.cache[key(w[:i])] = out.Prefix(i)
	}
	return out, nil
}

// The output of the system under test for the suffix after reading the prefix
func (m *membership) suffix(prefix, suffix mealy.Word) (mealy.Word, error) {
	out, err := m.query(prefix.Concat(suffix))
	if err != nil {
		return nil, err
	}
	return out.Suffix(len(prefix)), nil
}
