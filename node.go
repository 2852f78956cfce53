package lazybtree

import (
	"cmp"
	"slices"

	"lazybtree/internal/algo"
)

// node is a b-tree node stored in the arena.
//
// Leaf nodes hold values parallel to keys. Internal nodes hold one more child
// than keys, except in the degenerate form left behind by lazy deletion, where
// the trailing child slot is empty and len(children) == len(keys). In both forms
// keys[i] is the largest key under children[i].
type node[K cmp.Ordered, V any] struct {
	id   nodeID
	leaf bool

	keys     []K
	values   []V      // Empty and unused in internal nodes
	children []nodeID // Empty and unused in leaf nodes

	parent nodeID
	prev   nodeID
	next   nodeID
}

// isFull checks if a node is full
func (n *node[K, V]) isFull(order int) bool {
	return len(n.keys) >= order
}

func (n *node[K, V]) isDegenerate() bool {
	return !n.leaf && len(n.children) == len(n.keys)
}

func (n *node[K, V]) lastKey() K {
	return n.keys[len(n.keys)-1]
}

func (n *node[K, V]) lastChild() nodeID {
	return n.children[len(n.children)-1]
}

// childFor returns the child to descend into for key. Past the last separator
// a degenerate node has no child, so the last present one is used.
func (n *node[K, V]) childFor(key K) nodeID {
	i := algo.FindChildIndex(n.keys, key)
	if i >= len(n.children) {
		i = len(n.children) - 1
	}
	return n.children[i]
}

// Node is a read-only handle on a tree node, enough to walk and print the
// tree's shape. It is only valid until the next Insert, Put or Delete on the
// tree that produced it.
type Node[K cmp.Ordered, V any] struct {
	tree *Tree[K, V]
	id   nodeID
}

func (h Node[K, V]) node() *node[K, V] {
	return h.tree.nodes.get(h.id)
}

func (h Node[K, V]) handle(id nodeID) (Node[K, V], bool) {
	if id == noNode {
		return Node[K, V]{}, false
	}
	return Node[K, V]{tree: h.tree, id: id}, true
}

// ID returns the node's arena slot. IDs are reused after nodes are released.
func (h Node[K, V]) ID() uint32 {
	return uint32(h.id)
}

func (h Node[K, V]) IsLeaf() bool {
	return h.node().leaf
}

// IsDegenerate reports an internal node whose trailing child slot is empty.
func (h Node[K, V]) IsDegenerate() bool {
	return h.node().isDegenerate()
}

func (h Node[K, V]) NumKeys() int {
	return len(h.node().keys)
}

func (h Node[K, V]) Key(i int) K {
	return h.node().keys[i]
}

// Keys returns a copy of the node's keys.
func (h Node[K, V]) Keys() []K {
	return slices.Clone(h.node().keys)
}

// Value returns the payload stored next to Key(i). Only leaves carry values.
func (h Node[K, V]) Value(i int) V {
	return h.node().values[i]
}

func (h Node[K, V]) NumChildren() int {
	return len(h.node().children)
}

func (h Node[K, V]) Child(i int) Node[K, V] {
	return Node[K, V]{tree: h.tree, id: h.node().children[i]}
}

func (h Node[K, V]) Parent() (Node[K, V], bool) {
	return h.handle(h.node().parent)
}

func (h Node[K, V]) Prev() (Node[K, V], bool) {
	return h.handle(h.node().prev)
}

func (h Node[K, V]) Next() (Node[K, V], bool) {
	return h.handle(h.node().next)
}
