package formula

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"true", "true"},
		{"(iA)", "iA"},
		{"! oX", "! oX"},
		{"(false R ! oX)", "(false R ! oX)"},
		{"(! iA WU (oY & ! iA))", "(! iA WU (oY & ! iA))"},
		{"iA & iB | oC", "((iA & iB) | oC)"},
		{"iA U iB U iC", "(iA U (iB U iC))"},
		{"X X iA", "X X iA"},
		{"! iA U oB & oC", "((! iA U oB) & oC)"},
	}
	for _, test := range tests {
		f, err := Parse(test.text)
		require.NoError(t, err, test.text)
		assert.Equal(t, test.expected, f.Root.String(), test.text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		text string
		err  error
	}{
		{"(iA -> oB)", UnknownTokenError},
		{"G iA", UnknownTokenError},
		{"ia", UnknownTokenError},
		{"(iA & oB", SyntaxError},
		{"iA &", SyntaxError},
		{"iA oB", SyntaxError},
		{"", SyntaxError},
	}
	for _, test := range tests {
		_, err := Parse(test.text)
		if !errors.Is(err, test.err) {
			t.Errorf("Parsing %q: expected %v. Got: %v", test.text, test.err, err)
		}
	}
}

func TestLTSmin(t *testing.T) {
	f, err := Parse("(! iA WU (oY & ! iA))")
	require.NoError(t, err)
	assert.Equal(t, `(!(letter == "A") W ((letter == "Y") && !(letter == "A")))`, f.LTSmin(true))
	assert.Equal(t, `(!(input == "A") W ((output == "Y") && !(input == "A")))`, f.LTSmin(false))

	f, err = Parse("(false R X iB | oC)")
	require.NoError(t, err)
	assert.Equal(t, `(false R X (input == "B") || (output == "C"))`, f.LTSmin(false))
}

func TestNNF(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"! (iA U oB)", "(! iA R ! oB)"},
		{"! (iA R oB)", "(! iA U ! oB)"},
		{"! (iA WU oB)", "(! oB U (! iA & ! oB))"},
		{"! ! iA", "iA"},
		{"! X iA", "X ! iA"},
		{"! (iA & true)", "! iA"},
		{"! (iA | oB)", "(! iA & ! oB)"},
		{"! true", "false"},
	}
	for _, test := range tests {
		f, err := Parse(test.text)
		require.NoError(t, err, test.text)
		assert.Equal(t, test.expected, f.Root.NNF().String(), test.text)
	}
}

func TestJunction(t *testing.T) {
	a, b := Atom(Input, "A"), Atom(Output, "B")
	assert.Equal(t, "(iA & oB)", Junction(And, b, a, a).String())
	assert.Equal(t, "false", Junction(And, a, FalseNode).String())
	assert.Equal(t, "true", Junction(Or, a, TrueNode).String())
	assert.Equal(t, "iA", Junction(Or, a, FalseNode).String())
	assert.Equal(t, "true", Junction(And).String())
	// Nested junctions of the same kind are flattened
	assert.Equal(t, Junction(And, a, b).String(), Junction(And, Junction(And, b), a).String())
}

func TestParseList(t *testing.T) {
	formulas, err := ParseList(strings.NewReader("# comment\n\ntrue\n(iA U oB)\n"))
	require.NoError(t, err)
	require.Len(t, formulas, 2)
	assert.Equal(t, 0, formulas[0].Index)
	assert.Equal(t, 1, formulas[1].Index)
	assert.Equal(t, "(iA U oB)", formulas[1].Text)

	_, err = ParseList(strings.NewReader("true\n(iA => oB)\n"))
	if !errors.Is(err, UnknownTokenError) {
		t.Errorf("Expected an UnknownTokenError. Got: %v", err)
	}
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoad(t *testing.T) {
	formulas, err := Load("testdata", 1)
	require.NoError(t, err)
	require.Len(t, formulas, 2)
	assert.Equal(t, "(false R ! oX)", formulas[0].Text)

	_, err = Load("testdata", 2)
	if !errors.Is(err, NoFormulaFileError) {
		t.Errorf("Expected a NoFormulaFileError. Got: %v", err)
	}
}
