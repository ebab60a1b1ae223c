package devicetree

import (
	"maps"
	"slices"
)

// Node is a single trie node of the reference dataset.
// Nodes are immutable once constructed and safe for concurrent reads.
type Node struct {
	properties map[int]string
	mask       map[int]struct{}
	children   map[string]*Node

	// Bounds of the child key lengths, used to limit the descent scan.
	minKeyLen int
	maxKeyLen int
}

// NewNode creates a node with the given direct properties, mask and children.
//
// A nil properties map means the node carries no properties at all, while an
// empty non-nil map marks a property node without assignments. A nil mask
// means no property of this node is exempt from settling.
//
// All inputs are copied. NewNode panics on an empty child key or a nil child,
// since both indicate a broken dataset builder.
func NewNode(properties map[int]string, mask []int, children map[string]*Node) *Node {
	n := &Node{}

	if properties != nil {
		n.properties = maps.Clone(properties)
	}

	if mask != nil {
		n.mask = make(map[int]struct{}, len(mask))
		for _, id := range mask {
			n.mask[id] = struct{}{}
		}
	}

	if len(children) > 0 {
		n.children = make(map[string]*Node, len(children))
		for key, child := range children {
			if key == "" {
				panic("devicetree: empty child key")
			}
			if child == nil {
				panic("devicetree: nil child for key " + key)
			}
			n.children[key] = child
			if n.minKeyLen == 0 || len(key) < n.minKeyLen {
				n.minKeyLen = len(key)
			}
			if len(key) > n.maxKeyLen {
				n.maxKeyLen = len(key)
			}
		}
	}

	return n
}

// HasProperties reports whether the node carries a property block.
func (n *Node) HasProperties() bool { return n.properties != nil }

// Properties returns a copy of the direct properties, or nil if the node has none.
func (n *Node) Properties() map[int]string {
	if n.properties == nil {
		return nil
	}
	return maps.Clone(n.properties)
}

// RangeProperties calls fn for each direct property without copying the
// node's map. Iteration stops when fn returns false.
func (n *Node) RangeProperties(fn func(id int, value string) bool) {
	for id, v := range n.properties {
		if !fn(id, v) {
			return
		}
	}
}

// Property returns the raw value the node assigns to id.
func (n *Node) Property(id int) (string, bool) {
	v, ok := n.properties[id]
	return v, ok
}

// HasMask reports whether the node defines a mask.
func (n *Node) HasMask() bool { return n.mask != nil }

// Mask returns the masked property ids in ascending order.
func (n *Node) Mask() []int {
	if n.mask == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(n.mask))
}

// Masked reports whether id stays open for override below this node.
func (n *Node) Masked(id int) bool {
	_, ok := n.mask[id]
	return ok
}

// Children returns a copy of the child mapping.
func (n *Node) Children() map[string]*Node {
	if n.children == nil {
		return nil
	}
	return maps.Clone(n.children)
}

// Child returns the child reached by the literal key.
func (n *Node) Child(key string) (*Node, bool) {
	c, ok := n.children[key]
	return c, ok
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// settles reports whether id becomes final once this node is visited.
func (n *Node) settles(id int) bool {
	if n.mask == nil {
		return true
	}
	_, masked := n.mask[id]
	return !masked
}

// descend returns the child selected for the remaining input and the
// number of bytes it consumes. The shortest literal key prefixing
// unmatched wins.
func (n *Node) descend(unmatched string) (*Node, int) {
	if len(n.children) == 0 {
		return nil, 0
	}
	limit := min(len(unmatched), n.maxKeyLen)
	for c := n.minKeyLen; c <= limit; c++ {
		if child, ok := n.children[unmatched[:c]]; ok {
			return child, c
		}
	}
	return nil, 0
}
