// Package devicetree holds the in-memory device reference trie and the
// matcher that walks it with a User-Agent string.
//
// Each edge of the trie consumes a literal substring of the User-Agent. Nodes
// attach raw property values (keyed by small integer ids) that apply to every
// User-Agent sharing the path so far. A node may mask some of its properties,
// which marks its value as a coarse default that deeper, more specific nodes
// are expected to refine.
//
// # Matching
//
// Resolve starts at the root and repeatedly:
//
//  1. accepts the node's properties,
//  2. selects the child whose key is the shortest literal prefix of the
//     remaining input and continues there.
//
// The walk stops when no child key matches. ResolveSought restricts the walk
// to a set of property ids and stops early once all of them are settled:
//
//	m := devicetree.ResolveSought(tree.Root(), ua, []int{modelID, vendorID})
//	model, ok := m.Properties[modelID]
//
// # Concurrency
//
// Nodes and trees are immutable after construction. Any number of goroutines
// may resolve against the same tree; every call allocates its own state.
//
// # Dataset assumptions
//
// Sibling keys are expected to be prefix-disjoint. When they are not, the
// shortest matching key is chosen and longer ones sharing its prefix are
// unreachable through that node.
package devicetree
