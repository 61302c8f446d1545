package formula

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	UnknownTokenError  = errors.New("formula: Unknown token")
	SyntaxError        = errors.New("formula: Syntax error")
	NoFormulaFileError = errors.New("formula: No formula file for problem")
)

var (
	inputToken  = regexp.MustCompile(`^i[A-Z]$`)
	outputToken = regexp.MustCompile(`^o[A-Z]$`)
)

// A temporal property over input and output predicates.
type Formula struct {
	// The position of the formula in its formula list
	Index int
	// The formula as it was written
	Text string
	// The parsed formula
	Root *Node

	tokens []string
}

func (f *Formula) String() string {
	return f.Text
}

// Render the formula in LTSmin syntax.
//
// With alternating edge semantics inputs and outputs are both compared with the single "letter" edge label,
// otherwise with the separate "input" and "output" labels.
func (f *Formula) LTSmin(alternate bool) string {
	input, output := "input", "output"
	if alternate {
		input, output = "letter", "letter"
	}
	sb := strings.Builder{}
	for _, token := range f.tokens {
		switch {
		case token == "R", token == "U":
			sb.WriteString(" " + token + " ")
		case token == "WU":
			sb.WriteString(" W ")
		case token == "X":
			sb.WriteString("X ")
		case token == "&":
			sb.WriteString(" && ")
		case token == "|":
			sb.WriteString(" || ")
		case inputToken.MatchString(token):
			fmt.Fprintf(&sb, "(%s == \"%c\")", input, token[1])
		case outputToken.MatchString(token):
			fmt.Fprintf(&sb, "(%s == \"%c\")", output, token[1])
		default:
			sb.WriteString(token)
		}
	}
	return sb.String()
}

// Split the text into tokens. Parentheses are tokens on their own, everything else is separated by white space.
func tokenize(text string) ([]string, error) {
	text = strings.ReplaceAll(text, "(", " ( ")
	text = strings.ReplaceAll(text, ")", " ) ")
	tokens := strings.Fields(text)
	for _, token := range tokens {
		switch token {
		case "true", "false", "(", ")", "!", "R", "U", "X", "WU", "&", "|":
		default:
			if !inputToken.MatchString(token) && !outputToken.MatchString(token) {
				return nil, fmt.Errorf("%w: %q", UnknownTokenError, token)
			}
		}
	}
	return tokens, nil
}

// Parse a formula.
//
// Precedence from loosest to tightest: |, &, the binary temporal operators U, R and WU (right associative),
// and the unary operators ! and X.
func Parse(text string) (*Formula, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	root, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.pos != len(tokens) {
		return nil, fmt.Errorf("%w: unexpected %q in %q", SyntaxError, tokens[p.pos], text)
	}
	return &Formula{
		Text:   strings.TrimSpace(text),
		Root:   root,
		tokens: tokens,
	}, nil
}

type parser struct {
	tokens []string
	pos    int
}

func (p *parser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *parser) or() (*Node, error) {
	args := []*Node{}
	for {
		n, err := p.and()
		if err != nil {
			return nil, err
		}
		args = append(args, n)
		if p.peek() != "|" {
			break
		}
		p.pos++
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return &Node{Op: Or, Args: args}, nil
}

func (p *parser) and() (*Node, error) {
	args := []*Node{}
	for {
		n, err := p.temporal()
		if err != nil {
			return nil, err
		}
		args = append(args, n)
		if p.peek() != "&" {
			break
		}
		p.pos++
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return &Node{Op: And, Args: args}, nil
}

func (p *parser) temporal() (*Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	var op Op
	switch p.peek() {
	case "U":
		op = Until
	case "R":
		op = Release
	case "WU":
		op = WeakUntil
	default:
		return left, nil
	}
	p.pos++
	right, err := p.temporal()
	if err != nil {
		return nil, err
	}
	return Binary(op, left, right), nil
}

func (p *parser) unary() (*Node, error) {
	token := p.peek()
	switch {
	case token == "":
		return nil, fmt.Errorf("%w: unexpected end of formula", SyntaxError)
	case token == "!" || token == "X":
		p.pos++
		arg, err := p.unary()
		if err != nil {
			return nil, err
		}
		if token == "!" {
			return Unary(Not, arg), nil
		}
		return Unary(Next, arg), nil
	case token == "(":
		p.pos++
		n, err := p.or()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("%w: missing )", SyntaxError)
		}
		p.pos++
		return n, nil
	case token == "true":
		p.pos++
		return TrueNode, nil
	case token == "false":
		p.pos++
		return FalseNode, nil
	case inputToken.MatchString(token):
		p.pos++
		return Atom(Input, token[1:]), nil
	case outputToken.MatchString(token):
		p.pos++
		return Atom(Output, token[1:]), nil
	}
	return nil, fmt.Errorf("%w: unexpected %q", SyntaxError, token)
}

// Parse a formula list. Blank lines and lines starting with # are skipped.
// Formulas are indexed by their position in the list.
func ParseList(r io.Reader) ([]*Formula, error) {
	formulas := []*Formula{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		f, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		f.Index = len(formulas)
		formulas = append(formulas, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading formulas: %w", err)
	}
	return formulas, nil
}

// The path of the formula list of the problem inside dir
func Path(dir string, problem int) string {
	return filepath.Join(dir, fmt.Sprintf("constraints-Problem%d.txt", problem))
}

// Load the formula list of the problem from dir
func Load(dir string, problem int) ([]*Formula, error) {
	path := Path(dir, problem)
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w %d: %v", NoFormulaFileError, problem, path)
	} else if err != nil {
		return nil, fmt.Errorf("opening formula file: %w", err)
	}
	defer file.Close()
	return ParseList(file)
}
