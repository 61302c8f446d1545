package tree

import (
	"testing"

	"golang.org/x/exp/slices"
)

func TestTreeInsert(t *testing.T) {
	tree := New[string]()
	if !tree.Insert([]string{"a", "b"}) {
		t.Fatalf("Inserting into an empty tree should add the word")
	}
	if tree.Insert([]string{"a"}) {
		t.Fatalf("A prefix of an inserted word should not be added")
	}
	if tree.Insert([]string{"a", "b"}) {
		t.Fatalf("Inserting the same word twice should not add it")
	}
	if !tree.Insert([]string{"a", "b", "c"}) {
		t.Fatalf("An extension of an inserted word should be added")
	}
	if !tree.Insert([]string{"b"}) {
		t.Fatalf("A new word should be added")
	}
	if tree.Len() != 5 {
		t.Fatalf("Expected 5 nodes including the root. Got: %v", tree.Len())
	}
	if !tree.Contains([]string{"a", "b"}) {
		t.Errorf("The tree should contain the prefix a b")
	}
	if tree.Contains([]string{"b", "a"}) {
		t.Errorf("The tree should not contain b a")
	}
}

func TestTreeWords(t *testing.T) {
	tree := New[string]()
	if len(tree.Words()) != 0 {
		t.Fatalf("An empty tree should have no words. Got: %v", tree.Words())
	}
	tree.Insert([]string{"a"})
	tree.Insert([]string{"a", "b"})
	tree.Insert([]string{"b", "a"})
	tree.Insert([]string{"a", "c"})

	expected := [][]string{{"a", "b"}, {"a", "c"}, {"b", "a"}}
	words := tree.Words()
	if len(words) != len(expected) {
		t.Fatalf("Expected %v words. Got: %v", len(expected), words)
	}
	for i := range expected {
		if !slices.Equal(words[i], expected[i]) {
			t.Errorf("Expected word %v to be %v. Got: %v", i, expected[i], words[i])
		}
	}
}

func TestTreeNodes(t *testing.T) {
	tree := New[string]()
	child := tree.AddChild("x")
	grandChild := child.AddChild("y")

	if !tree.IsRoot() || child.IsRoot() {
		t.Fatalf("Only the root should be a root node")
	}
	if grandChild.Depth() != 2 || grandChild.Parent() != child {
		t.Fatalf("Unexpected position of the grand child. Depth: %v", grandChild.Depth())
	}
	if tree.GetChild("x") != child || tree.GetChild("y") != nil {
		t.Fatalf("GetChild should only return direct children")
	}
	if !slices.Equal(grandChild.Word(), []string{"x", "y"}) {
		t.Errorf("Expected the word x y. Got: %v", grandChild.Word())
	}
	if tree.Newick() != "((\"y\")\"x\");" {
		t.Errorf("Unexpected newick representation: %v", tree.Newick())
	}
}
