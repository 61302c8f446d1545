package sul

import (
	"errors"
	"fmt"
	"os"

	"gobbc/mealy"

	"gopkg.in/yaml.v3"
)

var EmptyModelError = errors.New("sul: The model has no states")

// The YAML representation of a Mealy machine used as a simulated system under test.
//
//	inputs: [a, b]
//	initial: s0
//	transitions:
//	  - {from: s0, input: a, output: x, to: s1}
type Model struct {
	Inputs      []string          `yaml:"inputs"`
	Initial     string            `yaml:"initial"`
	Transitions []ModelTransition `yaml:"transitions"`
}

type ModelTransition struct {
	From   string `yaml:"from"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	To     string `yaml:"to"`
}

// Read a Model from a YAML file
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model file: %w", err)
	}
	return ParseModel(data)
}

func ParseModel(data []byte) (*Model, error) {
	model := &Model{}
	if err := yaml.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("parsing model file: %w", err)
	}
	return model, nil
}

// Build the Mealy machine described by the model.
// States are numbered in order of first appearance, starting with the initial state.
func (md *Model) Machine() (*mealy.Machine, error) {
	m := mealy.New(md.Inputs)
	ids := map[string]int{}
	state := func(name string) int {
		if id, ok := ids[name]; ok {
			return id
		}
		id := m.AddState()
		ids[name] = id
		return id
	}
	if md.Initial != "" {
		state(md.Initial)
	}
	for _, t := range md.Transitions {
		from, to := state(t.From), state(t.To)
		if err := m.SetTransition(from, t.Input, t.Output, to); err != nil {
			return nil, fmt.Errorf("transition %v -%v/%v-> %v: %w", t.From, t.Input, t.Output, t.To, err)
		}
	}
	if m.Size() == 0 {
		return nil, EmptyModelError
	}
	return m, nil
}
