package devicetree

import (
	"maps"
	"slices"
)

// Tree is the read-only reference dataset rooted at a single node.
// It is built once and shared by all lookups.
type Tree struct {
	root *Node
}

// NewTree wraps root. A nil root yields a tree with an empty root node,
// which resolves every query to an empty result.
func NewTree(root *Node) *Tree {
	if root == nil {
		root = NewNode(nil, nil, nil)
	}
	return &Tree{root: root}
}

// Root returns the top-level node.
func (t *Tree) Root() *Node { return t.root }

// WalkFunc is called for every node visited by Walk. path is the
// concatenation of the child keys leading to the node; depth is 0 for the root.
// Returning a non-nil error stops the walk and the error is returned by Walk.
type WalkFunc func(path string, depth int, n *Node) error

// Walk visits every node depth-first in lexical key order.
// It uses an explicit stack, so arbitrarily deep trees are fine.
func (t *Tree) Walk(fn WalkFunc) error {
	type frame struct {
		path  string
		depth int
		node  *Node
	}

	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if err := fn(f.path, f.depth, f.node); err != nil {
			return err
		}

		// Push in reverse so children pop in ascending key order.
		keys := slices.Sorted(maps.Keys(f.node.children))
		for i := len(keys) - 1; i >= 0; i-- {
			stack = append(stack, frame{
				path:  f.path + keys[i],
				depth: f.depth + 1,
				node:  f.node.children[keys[i]],
			})
		}
	}
	return nil
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes          int // total number of nodes, root included
	PropertyNodes  int // nodes carrying a property block
	Assignments    int // property assignments across all nodes
	MaskedNodes    int // nodes defining a mask
	MaxDepth       int
	LongestKeyPath int // length in bytes of the longest root-to-leaf key path
}

// Stats walks the whole tree and returns its summary.
func (t *Tree) Stats() Stats {
	var s Stats
	_ = t.Walk(func(path string, depth int, n *Node) error {
		s.Nodes++
		if n.properties != nil {
			s.PropertyNodes++
			s.Assignments += len(n.properties)
		}
		if n.mask != nil {
			s.MaskedNodes++
		}
		s.MaxDepth = max(s.MaxDepth, depth)
		s.LongestKeyPath = max(s.LongestKeyPath, len(path))
		return nil
	})
	return s
}
