package lazybtree

import (
	"fmt"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deleteAll(t *testing.T, tree *Tree[int, struct{}], keys ...int) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, tree.Delete(k), "delete %d", k)
		require.NoError(t, tree.Verify(), "after delete %d", k)

		_, err := tree.Search(k)
		require.ErrorIs(t, err, ErrKeyNotFound, "search %d after delete", k)
		require.NotContains(t, collectKeys(tree), k)
	}
}

func TestDeleteEveryKeyInInsertionOrder(t *testing.T) {
	t.Parallel()

	keys := []int{4, 7, 10, 9, 5, 3, 20, 33, 56, 79, 2, 84, 80, 76, 65}
	tree := build(t, 3, keys...)

	deleteAll(t, tree, keys...)

	_, ok := tree.Root()
	assert.False(t, ok, "root must be empty")
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 0, tree.Height())
	assert.Equal(t, 0, tree.nodes.live(), "every node is released")
}

func TestDeleteAbsentKeyLeavesTreeUnchanged(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, 4, 7, 10, 9, 5, 3, 20, 33, 56, 79, 2, 84, 80, 76, 65)
	require.NoError(t, tree.Delete(33))
	before := tree.Fingerprint()

	for _, k := range []int{0, 1, 6, 8, 33, 100, -5} {
		assert.ErrorIs(t, tree.Delete(k), ErrKeyNotFound, "delete %d", k)
	}
	assert.Equal(t, before, tree.Fingerprint())
	assert.Equal(t, 14, tree.Len())
}

func TestDeleteRootLeaf(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, 1, 2, 3)

	require.NoError(t, tree.Delete(2))
	assert.Equal(t, []int{1, 3}, keysOf(t, tree))
	require.NoError(t, tree.Verify())

	deleteAll(t, tree, 1, 3)
	_, ok := tree.Root()
	assert.False(t, ok)

	require.NoError(t, tree.Insert(9))
	assert.Equal(t, []int{9}, keysOf(t, tree))
}

// Underfull nodes stay where they are: no merge, no borrowing.
func TestLazyDeleteKeepsSparseNodes(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, seq(1, 10)...)
	before := tree.nodes.live()

	deleteAll(t, tree, 1, 3, 5, 7, 9)

	assert.Equal(t, 3, tree.Height())
	assert.Equal(t, before, tree.nodes.live(), "no node emptied, none removed")
	for _, k := range []int{2, 4, 6, 8, 10} {
		leaf, err := tree.Search(k)
		require.NoError(t, err)
		assert.Equal(t, []int{k}, leaf.Keys())
	}
}

func TestDeleteRefreshesStaleSeparators(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, seq(1, 10)...)

	// 6 is the largest key under the root's left child and its separator.
	deleteAll(t, tree, 6)
	assert.Equal(t, []int{5}, keysOf(t, tree))
	assert.Equal(t, []int{2, 4}, keysOf(t, tree, 0))

	deleteAll(t, tree, 4)
	assert.Equal(t, []int{2, 3}, keysOf(t, tree, 0))

	deleteAll(t, tree, 5)
	assert.Equal(t, []int{3}, keysOf(t, tree))
	assert.Equal(t, []int{2}, keysOf(t, tree, 0), "emptied trailing leaf takes the last separator with it")
}

// A non-root node left with one populated child keeps one key, the maximum
// under that child, and a single child.
func TestDegenerateCollapse(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, seq(1, 10)...)

	deleteAll(t, tree, 7, 8)

	root := tree.mustRoot(t)
	assert.Equal(t, []int{6}, root.Keys())

	right := root.Child(1)
	assert.True(t, right.IsDegenerate())
	assert.Equal(t, []int{10}, right.Keys())
	assert.Equal(t, 1, right.NumChildren())
	assert.Equal(t, []int{9, 10}, right.Child(0).Keys())
	assert.Equal(t, 3, tree.Height())

	_, err := tree.Search(11)
	assert.ErrorIs(t, err, ErrKeyNotFound, "search past a degenerate node")

	// The separator follows the live maximum of the single subtree.
	deleteAll(t, tree, 10)
	assert.Equal(t, []int{9}, tree.mustRoot(t).Child(1).Keys())
}

// A root left with one populated child hands its place to that child.
func TestRootPromotion(t *testing.T) {
	t.Parallel()

	t.Run("right_subtree_emptied", func(t *testing.T) {
		tree := build(t, 3, seq(1, 10)...)
		deleteAll(t, tree, 7, 8, 10, 9)

		root := tree.mustRoot(t)
		assert.Equal(t, []int{2, 4}, root.Keys())
		assert.Equal(t, 2, tree.Height())
		_, ok := root.Parent()
		assert.False(t, ok)
		_, ok = root.Next()
		assert.False(t, ok)
		assert.Equal(t, seq(1, 6), collectKeys(tree))
	})

	t.Run("left_subtree_emptied", func(t *testing.T) {
		tree := build(t, 3, seq(1, 10)...)
		deleteAll(t, tree, seq(1, 6)...)

		root := tree.mustRoot(t)
		assert.Equal(t, []int{8}, root.Keys())
		assert.Equal(t, 2, tree.Height())
		_, ok := root.Prev()
		assert.False(t, ok)
		assert.Equal(t, seq(7, 10), collectKeys(tree))
	})

	t.Run("leaf_becomes_root", func(t *testing.T) {
		tree := build(t, 3, 1, 2, 3, 4)
		deleteAll(t, tree, 1, 2)

		root := tree.mustRoot(t)
		assert.True(t, root.IsLeaf())
		assert.Equal(t, []int{3, 4}, root.Keys())
		assert.Equal(t, 1, tree.Height())
	})
}

// Keys past a degenerate node's last separator go to its only child and raise
// the separator; later splits grow the node back out.
func TestInsertThroughDegenerateNode(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, seq(1, 10)...)
	deleteAll(t, tree, 7, 8)

	require.NoError(t, tree.Insert(11))
	require.NoError(t, tree.Verify())
	assert.Equal(t, []int{11}, keysOf(t, tree, 1))
	assert.Equal(t, []int{9, 10, 11}, keysOf(t, tree, 1, 0))

	require.NoError(t, tree.Insert(12))
	require.NoError(t, tree.Verify())
	assert.Equal(t, []int{10, 12}, keysOf(t, tree, 1))

	for _, k := range []int{13, 14, 15, 16} {
		require.NoError(t, tree.Insert(k))
		require.NoError(t, tree.Verify(), "after insert %d", k)
	}

	assert.Equal(t, []int{6, 14}, keysOf(t, tree))
	assert.Equal(t, []int{10, 12}, keysOf(t, tree, 1))
	assert.Equal(t, []int{16}, keysOf(t, tree, 2))
	assert.True(t, tree.mustRoot(t).Child(2).IsDegenerate())
	assert.Equal(t, append(seq(1, 6), seq(9, 16)...), collectKeys(tree))
}

// A degenerate root that loses its only child leaves an empty tree.
func TestDegenerateRootEmpties(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, seq(1, 10)...)
	deleteAll(t, tree, 7, 8) // right child collapses to a single child
	deleteAll(t, tree, seq(1, 6)...)

	root := tree.mustRoot(t)
	assert.True(t, root.IsDegenerate(), "collapsed node promoted to root")
	assert.Equal(t, []int{10}, root.Keys())

	deleteAll(t, tree, 9, 10)
	_, ok := tree.Root()
	assert.False(t, ok)
	assert.Equal(t, 0, tree.nodes.live())
}

func TestDeleteAllOrders(t *testing.T) {
	t.Parallel()

	for _, order := range []int{3, 4, 5, 9} {
		for _, mode := range []string{"sequential", "reverse", "random"} {
			t.Run(fmt.Sprintf("order_%d_%s", order, mode), func(t *testing.T) {
				keys := seq(1, 120)
				tree := build(t, order, keys...)

				victims := slices.Clone(keys)
				switch mode {
				case "reverse":
					slices.Reverse(victims)
				case "random":
					rng := rand.New(rand.NewSource(int64(order)))
					rng.Shuffle(len(victims), func(i, j int) { victims[i], victims[j] = victims[j], victims[i] })
				}

				deleteAll(t, tree, victims...)
				_, ok := tree.Root()
				assert.False(t, ok)
				assert.Equal(t, 0, tree.nodes.live())
			})
		}
	}
}

func TestReinsertAfterDeletes(t *testing.T) {
	t.Parallel()

	keys := []int{4, 7, 10, 9, 5, 3, 20, 33, 56, 79, 2, 84, 80, 76, 65}
	tree := build(t, 3, keys...)
	deleteAll(t, tree, keys[:10]...)

	for _, k := range keys[:10] {
		require.NoError(t, tree.Insert(k))
		require.NoError(t, tree.Verify())
	}

	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	assert.Equal(t, sorted, collectKeys(tree))
}

func TestDeleteReleasesSlotsForReuse(t *testing.T) {
	t.Parallel()

	tree := build(t, 3, seq(1, 10)...)
	slots := len(tree.nodes.slots)

	deleteAll(t, tree, 7, 8, 9, 10)
	for _, k := range seq(7, 10) {
		require.NoError(t, tree.Insert(k))
	}
	require.NoError(t, tree.Verify())
	assert.Equal(t, slots, len(tree.nodes.slots), "released slots are reused before the arena grows")
}
