package devicetree_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deviceatlas/pkg/devicetree"
)

func TestNewNode(t *testing.T) {
	t.Run("copies inputs", func(t *testing.T) {
		props := map[int]string{0: "a"}
		mask := []int{2, 0}
		leaf := devicetree.NewNode(nil, nil, nil)
		children := map[string]*devicetree.Node{"k": leaf}

		n := devicetree.NewNode(props, mask, children)
		props[0] = "changed"
		mask[0] = 9
		delete(children, "k")

		v, ok := n.Property(0)
		require.True(t, ok)
		assert.Equal(t, "a", v)
		assert.Equal(t, []int{0, 2}, n.Mask())
		child, ok := n.Child("k")
		require.True(t, ok)
		assert.Same(t, leaf, child)
	})

	t.Run("accessors return copies", func(t *testing.T) {
		n := devicetree.NewNode(map[int]string{0: "a"}, nil, map[string]*devicetree.Node{"k": devicetree.NewNode(nil, nil, nil)})

		n.Properties()[0] = "changed"
		delete(n.Children(), "k")

		v, _ := n.Property(0)
		assert.Equal(t, "a", v)
		_, ok := n.Child("k")
		assert.True(t, ok)
	})

	t.Run("nil versus empty properties", func(t *testing.T) {
		assert.False(t, devicetree.NewNode(nil, nil, nil).HasProperties())
		assert.Nil(t, devicetree.NewNode(nil, nil, nil).Properties())
		assert.True(t, devicetree.NewNode(map[int]string{}, nil, nil).HasProperties())
	})

	t.Run("mask", func(t *testing.T) {
		n := devicetree.NewNode(map[int]string{0: "a"}, []int{0}, nil)
		assert.True(t, n.HasMask())
		assert.True(t, n.Masked(0))
		assert.False(t, n.Masked(1))

		plain := devicetree.NewNode(map[int]string{0: "a"}, nil, nil)
		assert.False(t, plain.HasMask())
		assert.Nil(t, plain.Mask())
		assert.False(t, plain.Masked(0))
	})

	t.Run("leaf", func(t *testing.T) {
		assert.True(t, devicetree.NewNode(nil, nil, nil).IsLeaf())
		assert.Nil(t, devicetree.NewNode(nil, nil, nil).Children())
	})

	t.Run("panics on empty key", func(t *testing.T) {
		assert.Panics(t, func() {
			devicetree.NewNode(nil, nil, map[string]*devicetree.Node{"": devicetree.NewNode(nil, nil, nil)})
		})
	})

	t.Run("panics on nil child", func(t *testing.T) {
		assert.Panics(t, func() {
			devicetree.NewNode(nil, nil, map[string]*devicetree.Node{"a": nil})
		})
	})
}

func TestNode_RangeProperties(t *testing.T) {
	n := devicetree.NewNode(map[int]string{0: "N95", 1: "Nokia", 2: "1"}, nil, nil)

	got := map[int]string{}
	n.RangeProperties(func(id int, v string) bool {
		got[id] = v
		return true
	})
	assert.Equal(t, map[int]string{0: "N95", 1: "Nokia", 2: "1"}, got)

	calls := 0
	n.RangeProperties(func(int, string) bool {
		calls++
		return false
	})
	assert.Equal(t, 1, calls)

	devicetree.NewNode(nil, nil, nil).RangeProperties(func(int, string) bool {
		t.Fatal("node without properties has nothing to visit")
		return true
	})
}

func TestTree_Walk(t *testing.T) {
	tree := devicetree.NewTree(symbianTree())

	var paths []string
	var depths []int
	err := tree.Walk(func(path string, depth int, _ *devicetree.Node) error {
		paths = append(paths, path)
		depths = append(depths, depth)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"", "Mozilla/5.0 (", "Mozilla/5.0 (SymbianOS"}, paths)
	assert.Equal(t, []int{0, 1, 2}, depths)
}

func TestTree_WalkOrderAndStop(t *testing.T) {
	root := devicetree.NewNode(nil, nil, map[string]*devicetree.Node{
		"b": devicetree.NewNode(nil, nil, nil),
		"a": devicetree.NewNode(nil, nil, map[string]*devicetree.Node{"x": devicetree.NewNode(nil, nil, nil)}),
		"c": devicetree.NewNode(nil, nil, nil),
	})
	tree := devicetree.NewTree(root)

	var paths []string
	stop := errors.New("stop")
	err := tree.Walk(func(path string, _ int, _ *devicetree.Node) error {
		paths = append(paths, path)
		if path == "b" {
			return stop
		}
		return nil
	})

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"", "a", "ax", "b"}, paths)
}

func TestTree_Stats(t *testing.T) {
	child := devicetree.NewNode(map[int]string{0: "known"}, nil, nil)
	root := devicetree.NewNode(map[int]string{0: "unknown", 1: "x"}, []int{0}, map[string]*devicetree.Node{"Xyz": child})

	s := devicetree.NewTree(root).Stats()

	assert.Equal(t, devicetree.Stats{
		Nodes:          2,
		PropertyNodes:  2,
		Assignments:    3,
		MaskedNodes:    1,
		MaxDepth:       1,
		LongestKeyPath: 3,
	}, s)
}

func TestNewTree_NilRoot(t *testing.T) {
	tree := devicetree.NewTree(nil)
	require.NotNil(t, tree.Root())

	m := devicetree.Resolve(tree.Root(), "Mozilla/5.0")
	assert.Empty(t, m.Properties)
	assert.Equal(t, 0, m.Length)
}
