// Package lazybtree implements an in-memory B-tree with unique keys, point
// search and lazy deletion.
//
// Separators in internal nodes are the largest key of the subtree on their
// left. Insert splits full nodes and propagates separators upward. Delete
// removes keys and emptied nodes and repairs stale separators, but never merges
// or redistributes underfull nodes, so a tree may grow sparse under heavy
// deletion. That is a valid state, not something to repair.
//
// A Tree is not safe for concurrent use; callers serialize access.
package lazybtree

import (
	"cmp"

	"lazybtree/internal/algo"
)

// Tree is an order-configurable B-tree mapping unique keys to values.
type Tree[K cmp.Ordered, V any] struct {
	order  int // Maximum keys per node
	root   nodeID
	count  int
	nodes  arena[K, V]
	logger Logger
}

// New creates an empty tree whose nodes hold at most order keys. Orders below
// MinOrder are raised to MinOrder.
func New[K cmp.Ordered, V any](order int, opts ...Option) *Tree[K, V] {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Tree[K, V]{
		order:  max(order, MinOrder),
		nodes:  newArena[K, V](),
		logger: options.logger,
	}
}

func (t *Tree[K, V]) node(id nodeID) *node[K, V] {
	return t.nodes.get(id)
}

// findLeaf descends from the root to the leaf whose range covers key, or
// returns nil for an empty tree.
func (t *Tree[K, V]) findLeaf(key K) *node[K, V] {
	if t.root == noNode {
		return nil
	}

	n := t.node(t.root)
	for !n.leaf {
		n = t.node(n.childFor(key))
	}
	return n
}

// Search returns the leaf holding key, or ErrKeyNotFound.
func (t *Tree[K, V]) Search(key K) (Node[K, V], error) {
	leaf := t.findLeaf(key)
	if leaf == nil || algo.FindKey(leaf.keys, key) < 0 {
		return Node[K, V]{}, ErrKeyNotFound
	}
	return Node[K, V]{tree: t, id: leaf.id}, nil
}

// Get returns the value stored with key, or ErrKeyNotFound.
func (t *Tree[K, V]) Get(key K) (V, error) {
	var zero V

	leaf := t.findLeaf(key)
	if leaf == nil {
		return zero, ErrKeyNotFound
	}
	i := algo.FindKey(leaf.keys, key)
	if i < 0 {
		return zero, ErrKeyNotFound
	}
	return leaf.values[i], nil
}

// Root returns the root node, or false if the tree is empty.
func (t *Tree[K, V]) Root() (Node[K, V], bool) {
	if t.root == noNode {
		return Node[K, V]{}, false
	}
	return Node[K, V]{tree: t, id: t.root}, true
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.count
}

// Order returns the maximum number of keys per node.
func (t *Tree[K, V]) Order() int {
	return t.order
}

// Height returns the number of levels, 0 for an empty tree. All leaves sit at
// the same depth, so following first children is enough.
func (t *Tree[K, V]) Height() int {
	if t.root == noNode {
		return 0
	}

	height := 1
	for n := t.node(t.root); !n.leaf; n = t.node(n.children[0]) {
		height++
	}
	return height
}
