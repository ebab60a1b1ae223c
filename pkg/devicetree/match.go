package devicetree

// Match is the outcome of walking a tree with a query string.
type Match struct {
	// Properties holds every accepted property id and its raw value.
	// Ids never reached are absent rather than mapped to an empty value.
	Properties map[int]string

	// Length is the number of leading bytes of the query consumed by child
	// transitions. For ASCII User-Agents it equals the character count.
	Length int
}

// Matched returns the consumed prefix of query.
func (m Match) Matched(query string) string { return query[:m.Length] }

// Unmatched returns the remainder of query that no child key consumed.
func (m Match) Unmatched(query string) string { return query[m.Length:] }

// Resolve walks the tree from root, collecting every property assigned along
// the matched path. Deeper nodes overwrite values set by their ancestors.
//
// query is expected to be trimmed by the caller. Resolve never fails: an
// empty query, or one no child key prefixes, yields the root's properties
// and a zero Length.
func Resolve(root *Node, query string) Match {
	return walk(root, query, nil)
}

// ResolveSought walks the tree looking only for the given property ids.
//
// A property is settled by the first node on the path that defines it,
// unless that node masks it, in which case a deeper node may still replace
// the value. Once every sought id is settled the walk stops before visiting
// the next property node, so nothing below it is added.
//
// A nil sought slice behaves like Resolve. An empty non-nil slice seeks
// nothing and stops at the first property node.
func ResolveSought(root *Node, query string, sought []int) Match {
	if sought == nil {
		return walk(root, query, nil)
	}
	pending := make(map[int]struct{}, len(sought))
	for _, id := range sought {
		pending[id] = struct{}{}
	}
	return walk(root, query, pending)
}

// walk is the iterative form of the descent. pending is nil when every
// visited property is collected.
func walk(root *Node, query string, pending map[int]struct{}) Match {
	m := Match{Properties: make(map[int]string)}
	if root == nil {
		return m
	}

	node := root
	for {
		if node.properties != nil {
			if pending != nil && len(pending) == 0 {
				return m
			}
			for id, value := range node.properties {
				if pending == nil {
					m.Properties[id] = value
					continue
				}
				if _, ok := pending[id]; !ok {
					continue
				}
				m.Properties[id] = value
				if node.settles(id) {
					delete(pending, id)
				}
			}
		}

		child, n := node.descend(query[m.Length:])
		if child == nil {
			return m
		}
		m.Length += n
		node = child
	}
}
