package domain

import (
	"fmt"
	"strings"
)

// NodeKind tags the variant held by a tree Node.
type NodeKind string

const (
	// NodeSplit tests a trait against a threshold and has two children.
	NodeSplit NodeKind = "split"
	// NodeLeaf ends a branch. Leaves carry no question.
	NodeLeaf NodeKind = "leaf"
)

// NoChild is the child index stored on leaves.
const NoChild = -1

// Node is a single entry of the decision tree.
// Split nodes send characters with Value <= Threshold to Left and the rest to Right.
type Node struct {
	Kind      NodeKind `json:"kind"`
	Trait     int      `json:"trait"`
	Threshold float64  `json:"threshold"`
	Left      int      `json:"left"`
	Right     int      `json:"right"`

	// Label is the majority character at the node. The engine never relies on it.
	Label   string `json:"label,omitempty"`
	Samples int    `json:"samples"`
	Depth   int    `json:"depth"`
}

// IsLeaf reports whether the node ends a branch.
func (n Node) IsLeaf() bool {
	return n.Kind == NodeLeaf
}

// Tree is the trained decision structure. Node 0 is the root.
// It is read-only once built.
type Tree struct {
	Nodes    []Node   `json:"nodes"`
	Features []string `json:"features"`
	MaxDepth int      `json:"max_depth"`
}

// RootID is the index of the root node.
const RootID = 0

// Node returns the node at id.
func (t *Tree) Node(id int) (Node, error) {
	if t == nil || id < 0 || id >= len(t.Nodes) {
		return Node{}, fmt.Errorf("node %d out of range", id)
	}
	return t.Nodes[id], nil
}

// Root returns the root node.
func (t *Tree) Root() (Node, error) {
	return t.Node(RootID)
}

// Question returns the trait name asked at a split node, with separators rendered as spaces.
func (t *Tree) Question(id int) (string, error) {
	n, err := t.Node(id)
	if err != nil {
		return "", err
	}
	if n.IsLeaf() {
		return "", fmt.Errorf("node %d is a leaf", id)
	}
	if n.Trait < 0 || n.Trait >= len(t.Features) {
		return "", fmt.Errorf("%w: node %d references trait %d", ErrMalformedTree, id, n.Trait)
	}
	return HumanizeTrait(t.Features[n.Trait]), nil
}

// Validate ensures the tree can ask at least one question and that every link resolves.
func (t *Tree) Validate() error {
	root, err := t.Root()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}
	if root.IsLeaf() {
		return fmt.Errorf("%w: root is a leaf", ErrMalformedTree)
	}
	for id, n := range t.Nodes {
		if n.IsLeaf() {
			continue
		}
		if n.Trait < 0 || n.Trait >= len(t.Features) {
			return fmt.Errorf("%w: node %d references trait %d", ErrMalformedTree, id, n.Trait)
		}
		if n.Left < 0 || n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
			return fmt.Errorf("%w: node %d has dangling children", ErrMalformedTree, id)
		}
	}
	return nil
}

// Depth returns the deepest node depth in the tree.
func (t *Tree) Depth() int {
	depth := 0
	for _, n := range t.Nodes {
		if n.Depth > depth {
			depth = n.Depth
		}
	}
	return depth
}

// HumanizeTrait renders a trait column name for a question.
func HumanizeTrait(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
