package equivalence

import (
	"math/rand"

	"gobbc/channel"
	"gobbc/mealy"
)

// Default seed of the random words oracle
const DefaultSeed = 123456

// Conformance testing with random words.
//
// Every call tests up to MaxTests words with a length drawn uniformly from [MinLength, MaxLength].
// The random source is kept between calls, so a run is reproducible from the seed.
type RandomWords struct {
	channel   *channel.Channel
	MinLength int
	MaxLength int
	MaxTests  int

	rand *rand.Rand
}

func NewRandomWords(c *channel.Channel, minLength, maxLength, maxTests int, seed int64) *RandomWords {
	return &RandomWords{
		channel:   c,
		MinLength: minLength,
		MaxLength: maxLength,
		MaxTests:  maxTests,
		rand:      rand.New(rand.NewSource(seed)),
	}
}

func (rw *RandomWords) FindCounterExample(hyp *mealy.Machine, inputs []string) (*mealy.Query, error) {
	if hyp.Size() == 0 || len(inputs) == 0 {
		return nil, nil
	}
	for i := 0; i < rw.MaxTests; i++ {
		length := rw.MinLength
		if rw.MaxLength > rw.MinLength {
			length += rw.rand.Intn(rw.MaxLength - rw.MinLength + 1)
		}
		word := make(mealy.Word, length)
		for j := range word {
			word[j] = inputs[rw.rand.Intn(len(inputs))]
		}
		q, err := test(hyp, rw.channel.Probe, word)
		if err != nil || q != nil {
			return q, err
		}
	}
	return nil, nil
}
