package formula

import (
	"sort"
	"strings"
)

type Op int

const (
	True Op = iota
	False
	// An input atom, true if the input of the current position equals Symbol
	Input
	// An output atom, true if the output of the current position equals Symbol
	Output
	Not
	Next
	And
	Or
	Until
	Release
	// Weak until
	WeakUntil
)

var opNames = map[Op]string{
	True:      "true",
	False:     "false",
	Not:       "!",
	Next:      "X",
	And:       "&",
	Or:        "|",
	Until:     "U",
	Release:   "R",
	WeakUntil: "WU",
}

// A node of a formula tree.
//
// Not and Next have one argument, Until, Release and WeakUntil two, And and Or any number.
// Input and Output carry the symbol they compare with.
type Node struct {
	Op     Op
	Symbol string
	Args   []*Node
}

var (
	TrueNode  = &Node{Op: True}
	FalseNode = &Node{Op: False}
)

func Atom(op Op, symbol string) *Node {
	return &Node{Op: op, Symbol: symbol}
}

func Unary(op Op, a *Node) *Node {
	return &Node{Op: op, Args: []*Node{a}}
}

func Binary(op Op, a, b *Node) *Node {
	return &Node{Op: op, Args: []*Node{a, b}}
}

// A canonical representation of the node. Two nodes with the same string are syntactically equal.
func (n *Node) String() string {
	sb := strings.Builder{}
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Op {
	case True, False:
		sb.WriteString(opNames[n.Op])
	case Input:
		sb.WriteString("i" + n.Symbol)
	case Output:
		sb.WriteString("o" + n.Symbol)
	case Not, Next:
		sb.WriteString(opNames[n.Op])
		sb.WriteString(" ")
		n.Args[0].write(sb)
	default:
		sb.WriteString("(")
		for i, arg := range n.Args {
			if i > 0 {
				sb.WriteString(" " + opNames[n.Op] + " ")
			}
			arg.write(sb)
		}
		sb.WriteString(")")
	}
}

// Rewrite the node into negation normal form, where Not only occurs directly in front of atoms.
func (n *Node) NNF() *Node {
	return nnf(n, false)
}

func nnf(n *Node, neg bool) *Node {
	switch n.Op {
	case True:
		if neg {
			return FalseNode
		}
		return TrueNode
	case False:
		if neg {
			return TrueNode
		}
		return FalseNode
	case Input, Output:
		if neg {
			return Unary(Not, n)
		}
		return n
	case Not:
		return nnf(n.Args[0], !neg)
	case Next:
		return Unary(Next, nnf(n.Args[0], neg))
	case And, Or:
		op := n.Op
		if neg {
			op = dual(op)
		}
		args := make([]*Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = nnf(a, neg)
		}
		return Junction(op, args...)
	case Until:
		if neg {
			// !(a U b) == !a R !b
			return Binary(Release, nnf(n.Args[0], true), nnf(n.Args[1], true))
		}
		return Binary(Until, nnf(n.Args[0], false), nnf(n.Args[1], false))
	case Release:
		if neg {
			return Binary(Until, nnf(n.Args[0], true), nnf(n.Args[1], true))
		}
		return Binary(Release, nnf(n.Args[0], false), nnf(n.Args[1], false))
	case WeakUntil:
		if neg {
			// !(a W b) == !b U (!a & !b)
			na, nb := nnf(n.Args[0], true), nnf(n.Args[1], true)
			return Binary(Until, nb, Junction(And, na, nb))
		}
		return Binary(WeakUntil, nnf(n.Args[0], false), nnf(n.Args[1], false))
	}
	return n
}

func dual(op Op) Op {
	if op == And {
		return Or
	}
	return And
}

// Build a conjunction or disjunction of the arguments.
//
// Nested junctions of the same kind are flattened, duplicates removed and the arguments sorted,
// so that equal junctions have equal strings. Constants are simplified away.
func Junction(op Op, args ...*Node) *Node {
	unit, zero := TrueNode, FalseNode
	if op == Or {
		unit, zero = FalseNode, TrueNode
	}
	seen := map[string]*Node{}
	for _, a := range args {
		parts := []*Node{a}
		if a.Op == op {
			parts = a.Args
		}
		for _, p := range parts {
			if p.Op == zero.Op {
				return zero
			}
			if p.Op == unit.Op {
				continue
			}
			seen[p.String()] = p
		}
	}
	switch len(seen) {
	case 0:
		return unit
	case 1:
		for _, p := range seen {
			return p
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*Node, len(keys))
	for i, k := range keys {
		out[i] = seen[k]
	}
	return &Node{Op: op, Args: out}
}
