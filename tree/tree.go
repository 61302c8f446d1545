package tree

import (
	"fmt"
	"strings"
)

// A prefix tree over words of symbols.
//
// Every node is the word spelled by the path from the root to it. A word that is a prefix of another word in the
// tree does not add a leaf, so the leaves are exactly the maximal words inserted.
type Tree[T comparable] struct {
	symbol   T
	parent   *Tree[T]
	children []*Tree[T]
	depth    int
}

// Create an empty tree. The root is the empty word.
func New[T comparable]() *Tree[T] {
	return &Tree[T]{
		children: []*Tree[T]{},
	}
}

// Returns the total number of nodes in the tree
func (t *Tree[T]) Len() int {
	len := 1
	for _, child := range t.children {
		len += child.Len()
	}
	return len
}

// Adds a new child with the provided symbol as a child of the current Tree
// Returns the child when done
func (t *Tree[T]) AddChild(symbol T) *Tree[T] {
	node := &Tree[T]{
		symbol:   symbol,
		parent:   t,
		children: []*Tree[T]{},
		depth:    t.depth + 1,
	}
	t.children = append(t.children, node)
	return node
}

// Returns the child node with the provided symbol.
// If no such child node exists returns nil
func (t *Tree[T]) GetChild(symbol T) *Tree[T] {
	for _, node := range t.children {
		if node.symbol == symbol {
			return node
		}
	}
	return nil
}

// Insert the word below the current node.
// Returns true if the word was not already a prefix of a word in the tree.
func (t *Tree[T]) Insert(word []T) bool {
	node := t
	added := false
	for _, s := range word {
		child := node.GetChild(s)
		if child == nil {
			child = node.AddChild(s)
			added = true
		}
		node = child
	}
	return added
}

// Returns true if the word is a prefix of some word in the tree
func (t *Tree[T]) Contains(word []T) bool {
	node := t
	for _, s := range word {
		node = node.GetChild(s)
		if node == nil {
			return false
		}
	}
	return true
}

// The word spelled by the path from the root to this node
func (t *Tree[T]) Word() []T {
	word := make([]T, t.depth)
	for node := t; !node.IsRoot(); node = node.parent {
		word[node.depth-1] = node.symbol
	}
	return word
}

// Returns all leaf nodes that are descendants of this node, in insertion order
func (t *Tree[T]) GetAllLeafNodes() []*Tree[T] {
	if t.IsLeafNode() {
		return []*Tree[T]{t}
	}
	leafNodes := []*Tree[T]{}
	for _, child := range t.children {
		leafNodes = append(leafNodes, child.GetAllLeafNodes()...)
	}
	return leafNodes
}

// The maximal words of the tree. An empty tree has no words.
func (t *Tree[T]) Words() [][]T {
	if t.IsRoot() && t.IsLeafNode() {
		return [][]T{}
	}
	words := [][]T{}
	for _, leaf := range t.GetAllLeafNodes() {
		words = append(words, leaf.Word())
	}
	return words
}

func (t *Tree[T]) IsRoot() bool {
	return t.parent == nil
}

func (t *Tree[T]) IsLeafNode() bool {
	return len(t.children) == 0
}

func (t *Tree[T]) Symbol() T {
	return t.symbol
}

func (t *Tree[T]) Parent() *Tree[T] {
	return t.parent
}

func (t *Tree[T]) Depth() int {
	return t.depth
}

func (t *Tree[T]) Children() []*Tree[T] {
	return t.children
}

func (t *Tree[T]) String() string {
	out := strings.Builder{}
	for i := 0; i < t.depth; i++ {
		out.WriteString("-")
	}
	out.WriteString(fmt.Sprintf("%v\n", t.symbol))
	for _, child := range t.children {
		out.WriteString(child.String())
	}
	return out.String()
}

func (t *Tree[T]) Newick() string {
	out := strings.Builder{}
	if len(t.children) > 0 {
		out.WriteString("(")
		for i, child := range t.children {
			if i > 0 {
				out.WriteString(",")
			}
			out.WriteString(child.Newick())
		}
		out.WriteString(")")
	}
	if !t.IsRoot() {
		out.WriteString(fmt.Sprintf("\"%v\"", t.symbol))
	}
	if t.IsRoot() {
		out.WriteString(";")
	}
	return out.String()
}
