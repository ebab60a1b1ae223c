package devicetree_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deviceatlas/pkg/devicetree"
)

const n95UA = "Mozilla/5.0 (SymbianOS/9.2; U; Series60/3.1 NokiaN95/11.0.026; Profile MIDP-2.0 Configuration/CLDC-1.1) AppleWebKit/413 (KHTML, like Gecko) Safari/413"

func symbianTree() *devicetree.Node {
	nodeB := devicetree.NewNode(map[int]string{1: "N95"}, nil, nil)
	nodeA := devicetree.NewNode(
		map[int]string{0: "GenericBrowser"},
		nil,
		map[string]*devicetree.Node{"SymbianOS": nodeB},
	)
	return devicetree.NewNode(nil, nil, map[string]*devicetree.Node{"Mozilla/5.0 (": nodeA})
}

func TestResolve_EndToEnd(t *testing.T) {
	m := devicetree.Resolve(symbianTree(), n95UA)

	assert.Equal(t, map[int]string{0: "GenericBrowser", 1: "N95"}, m.Properties)
	assert.Equal(t, len("Mozilla/5.0 (SymbianOS"), m.Length)
	assert.Equal(t, "Mozilla/5.0 (SymbianOS", m.Matched(n95UA))
	assert.Equal(t, n95UA[len("Mozilla/5.0 (SymbianOS"):], m.Unmatched(n95UA))
}

func TestResolve_EmptyQuery(t *testing.T) {
	m := devicetree.Resolve(symbianTree(), "")

	assert.Empty(t, m.Properties)
	assert.NotNil(t, m.Properties)
	assert.Equal(t, 0, m.Length)
}

func TestResolve_NoMatch(t *testing.T) {
	root := devicetree.NewNode(
		map[int]string{0: "unknown"},
		nil,
		map[string]*devicetree.Node{"Opera": devicetree.NewNode(map[int]string{0: "opera"}, nil, nil)},
	)

	m := devicetree.Resolve(root, "curl/8.4.0")

	assert.Equal(t, map[int]string{0: "unknown"}, m.Properties)
	assert.Equal(t, 0, m.Length)
}

func TestResolve_NilRoot(t *testing.T) {
	m := devicetree.Resolve(nil, "anything")
	assert.Empty(t, m.Properties)
	assert.Equal(t, 0, m.Length)
}

func TestResolve_DeeperOverwritesWhenCollectingAll(t *testing.T) {
	leaf := devicetree.NewNode(map[int]string{0: "deep"}, nil, nil)
	root := devicetree.NewNode(map[int]string{0: "shallow", 1: "kept"}, nil, map[string]*devicetree.Node{"a": leaf})

	m := devicetree.Resolve(root, "abc")

	assert.Equal(t, map[int]string{0: "deep", 1: "kept"}, m.Properties)
	assert.Equal(t, 1, m.Length)
}

func TestResolve_AbsentPropertyHasNoEntry(t *testing.T) {
	m := devicetree.Resolve(symbianTree(), "Mozilla/5.0 (Windows NT 10.0)")

	assert.Equal(t, map[int]string{0: "GenericBrowser"}, m.Properties)
	_, ok := m.Properties[1]
	assert.False(t, ok)
}

func TestResolve_EmptyValueIsPresent(t *testing.T) {
	root := devicetree.NewNode(map[int]string{3: ""}, nil, nil)

	m := devicetree.Resolve(root, "x")

	v, ok := m.Properties[3]
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestResolve_ShortestKeyWins(t *testing.T) {
	short := devicetree.NewNode(map[int]string{0: "short"}, nil, nil)
	long := devicetree.NewNode(map[int]string{0: "long"}, nil, nil)
	root := devicetree.NewNode(nil, nil, map[string]*devicetree.Node{
		"Mozilla":     short,
		"Mozilla/5.0": long,
	})

	m := devicetree.Resolve(root, "Mozilla/5.0 (X11)")

	assert.Equal(t, "short", m.Properties[0])
	assert.Equal(t, len("Mozilla"), m.Length)
}

func TestResolve_PrefixDisjointSiblings(t *testing.T) {
	children := map[string]*devicetree.Node{
		"Opera":   devicetree.NewNode(map[int]string{0: "opera"}, nil, nil),
		"Mozilla": devicetree.NewNode(map[int]string{0: "mozilla"}, nil, nil),
		"Dalvik":  devicetree.NewNode(map[int]string{0: "dalvik"}, nil, nil),
		"curl":    devicetree.NewNode(map[int]string{0: "curl"}, nil, nil),
	}
	root := devicetree.NewNode(nil, nil, children)

	tests := []struct {
		ua       string
		expected string
		length   int
	}{
		{"Opera/9.80 (J2ME/MIDP)", "opera", 5},
		{"Mozilla/5.0", "mozilla", 7},
		{"Dalvik/2.1.0", "dalvik", 6},
		{"curl/7.0", "curl", 4},
	}

	for _, tc := range tests {
		t.Run(tc.ua, func(t *testing.T) {
			m := devicetree.Resolve(root, tc.ua)
			assert.Equal(t, tc.expected, m.Properties[0])
			assert.Equal(t, tc.length, m.Length)
		})
	}
}

func TestResolve_QueryShorterThanKey(t *testing.T) {
	m := devicetree.Resolve(symbianTree(), "Mozilla/5.0 (Symb")

	assert.Equal(t, map[int]string{0: "GenericBrowser"}, m.Properties)
	assert.Equal(t, len("Mozilla/5.0 ("), m.Length)
}

func TestResolve_MultiByteKeys(t *testing.T) {
	leaf := devicetree.NewNode(map[int]string{0: "ü"}, nil, nil)
	root := devicetree.NewNode(nil, nil, map[string]*devicetree.Node{"Brüwser": leaf})

	q := "Brüwser/1.0"
	m := devicetree.Resolve(root, q)

	assert.Equal(t, "ü", m.Properties[0])
	assert.Equal(t, "Brüwser", m.Matched(q))
	assert.Equal(t, "/1.0", m.Unmatched(q))

	// Length counts bytes: "ü" is two bytes, so 8 for a 7-character key.
	assert.Equal(t, 8, m.Length)
	assert.Equal(t, len("Brüwser"), m.Length)
	assert.Equal(t, 7, utf8.RuneCountInString(m.Matched(q)))
}

func TestResolve_LengthNeverExceedsQuery(t *testing.T) {
	// Each level consumes one character, so the walk follows the whole query.
	var node *devicetree.Node = devicetree.NewNode(map[int]string{0: "end"}, nil, nil)
	for i := 0; i < 500; i++ {
		node = devicetree.NewNode(nil, nil, map[string]*devicetree.Node{"a": node})
	}

	for _, q := range []string{"", "a", strings.Repeat("a", 10), strings.Repeat("a", 500), strings.Repeat("a", 2000), "b"} {
		m := devicetree.Resolve(node, q)
		assert.LessOrEqual(t, m.Length, len(q))
	}

	m := devicetree.Resolve(node, strings.Repeat("a", 2000))
	assert.Equal(t, 500, m.Length)
	assert.Equal(t, "end", m.Properties[0])
}

func TestResolve_MaskOverride(t *testing.T) {
	child := devicetree.NewNode(map[int]string{0: "known"}, nil, nil)
	root := devicetree.NewNode(map[int]string{0: "unknown"}, []int{0}, map[string]*devicetree.Node{"X": child})

	t.Run("collect all", func(t *testing.T) {
		m := devicetree.Resolve(root, "X-Device/1.0")
		assert.Equal(t, "known", m.Properties[0])
		assert.Equal(t, 1, m.Length)
	})

	t.Run("sought", func(t *testing.T) {
		m := devicetree.ResolveSought(root, "X-Device/1.0", []int{0})
		assert.Equal(t, "known", m.Properties[0])
		assert.Equal(t, 1, m.Length)
	})
}

func TestResolveSought_UnmaskedSettlesAtShallowestNode(t *testing.T) {
	child := devicetree.NewNode(map[int]string{0: "deep", 1: "model"}, nil, nil)
	root := devicetree.NewNode(map[int]string{0: "shallow"}, nil, map[string]*devicetree.Node{"X": child})

	m := devicetree.ResolveSought(root, "X", []int{0, 1})

	assert.Equal(t, map[int]string{0: "shallow", 1: "model"}, m.Properties)
}

func TestResolveSought_MaskKeepsOnlyListedIdsOpen(t *testing.T) {
	child := devicetree.NewNode(map[int]string{0: "deep0", 1: "deep1"}, nil, nil)
	root := devicetree.NewNode(
		map[int]string{0: "root0", 1: "root1"},
		[]int{1},
		map[string]*devicetree.Node{"X": child},
	)

	m := devicetree.ResolveSought(root, "X", []int{0, 1})

	assert.Equal(t, "root0", m.Properties[0])
	assert.Equal(t, "deep1", m.Properties[1])
}

func TestResolveSought_EarlyExitIsExact(t *testing.T) {
	grandchild := devicetree.NewNode(map[int]string{0: "never", 2: "never"}, nil, nil)
	child := devicetree.NewNode(map[int]string{2: "never"}, nil, map[string]*devicetree.Node{"b": grandchild})
	root := devicetree.NewNode(map[int]string{0: "found"}, nil, map[string]*devicetree.Node{"a": child})

	m := devicetree.ResolveSought(root, "abc", []int{0})

	assert.Equal(t, map[int]string{0: "found"}, m.Properties)
	// The walk descended into "a" but stopped at its property block.
	assert.Equal(t, 1, m.Length)
}

func TestResolveSought_SkipsNodesWithoutProperties(t *testing.T) {
	// Nodes without a property block do not trigger the early exit,
	// so the walk keeps consuming input through them.
	leaf := devicetree.NewNode(nil, nil, nil)
	mid := devicetree.NewNode(nil, nil, map[string]*devicetree.Node{"c": leaf})
	root := devicetree.NewNode(map[int]string{0: "v"}, nil, map[string]*devicetree.Node{"ab": mid})

	m := devicetree.ResolveSought(root, "abcd", []int{0})

	assert.Equal(t, map[int]string{0: "v"}, m.Properties)
	assert.Equal(t, 3, m.Length)
}

func TestResolveSought_OnlySoughtIdsAccepted(t *testing.T) {
	m := devicetree.ResolveSought(symbianTree(), n95UA, []int{1})

	assert.Equal(t, map[int]string{1: "N95"}, m.Properties)
	assert.Equal(t, len("Mozilla/5.0 (SymbianOS"), m.Length)
}

func TestResolveSought_NilBehavesLikeResolve(t *testing.T) {
	assert.Equal(t,
		devicetree.Resolve(symbianTree(), n95UA),
		devicetree.ResolveSought(symbianTree(), n95UA, nil),
	)
}

func TestResolveSought_EmptySetStopsAtFirstPropertyNode(t *testing.T) {
	m := devicetree.ResolveSought(symbianTree(), n95UA, []int{})

	assert.Empty(t, m.Properties)
	assert.Equal(t, len("Mozilla/5.0 ("), m.Length)
}

func TestResolveSought_DoesNotMutateInput(t *testing.T) {
	sought := []int{0, 1}
	_ = devicetree.ResolveSought(symbianTree(), n95UA, sought)
	assert.Equal(t, []int{0, 1}, sought)
}

func TestResolve_ConcurrentLookups(t *testing.T) {
	root := symbianTree()
	done := make(chan devicetree.Match, 16)
	for i := 0; i < cap(done); i++ {
		go func() { done <- devicetree.Resolve(root, n95UA) }()
	}
	for i := 0; i < cap(done); i++ {
		m := <-done
		assert.Equal(t, "N95", m.Properties[1])
	}
}
