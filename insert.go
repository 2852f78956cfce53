package lazybtree

import (
	"cmp"
	"slices"

	"github.com/cockroachdb/errors"

	"lazybtree/internal/algo"
)

// Insert adds key with a zero value. It returns ErrKeyExists, leaving the tree
// untouched, if key is already present.
func (t *Tree[K, V]) Insert(key K) error {
	var zero V
	return t.Put(key, zero)
}

// Put adds key with value. It returns ErrKeyExists, leaving the tree untouched,
// if key is already present.
func (t *Tree[K, V]) Put(key K, value V) error {
	if t.root == noNode {
		root := t.nodes.allocate(true, t.order)
		root.keys = append(root.keys, key)
		root.values = append(root.values, value)
		t.root = root.id
		t.count++
		return nil
	}

	leaf := t.findLeaf(key)
	pos, found := algo.FindInsertPosition(leaf.keys, key)
	if found {
		return ErrKeyExists
	}

	t.raiseDegenerateSeparators(leaf, key)

	if !leaf.isFull(t.order) {
		leaf.keys = slices.Insert(leaf.keys, pos, key)
		leaf.values = slices.Insert(leaf.values, pos, value)
		t.checkCapacity(leaf)
	} else {
		t.splitLeaf(leaf, pos, key, value)
	}
	t.count++
	return nil
}

// raiseDegenerateSeparators walks from leaf to the root. A key reaches leaf
// through a degenerate ancestor's empty trailing slot only when it is larger
// than that ancestor's last separator, which must then become key.
func (t *Tree[K, V]) raiseDegenerateSeparators(leaf *node[K, V], key K) {
	for id := leaf.parent; id != noNode; {
		n := t.node(id)
		if n.isDegenerate() && cmp.Less(n.lastKey(), key) {
			n.keys[len(n.keys)-1] = key
		}
		id = n.parent
	}
}

// splitLeaf inserts key/value into a full leaf by splitting it. The original
// leaf keeps the lower half and a new leaf to its right takes the rest.
func (t *Tree[K, V]) splitLeaf(leaf *node[K, V], pos int, key K, value V) {
	keys := slices.Insert(slices.Clone(leaf.keys), pos, key)
	values := slices.Insert(slices.Clone(leaf.values), pos, value)
	mid := algo.SplitPoint(len(keys))

	right := t.nodes.allocate(true, t.order)
	right.keys = append(right.keys, keys[mid:]...)
	right.values = append(right.values, values[mid:]...)
	right.parent = leaf.parent

	leaf.keys = append(leaf.keys[:0], keys[:mid]...)
	clear(leaf.values)
	leaf.values = append(leaf.values[:0], values[:mid]...)

	t.checkCapacity(leaf)
	t.checkCapacity(right)
	t.linkAfter(leaf, right)

	if leaf.parent == noNode {
		t.growRoot(leaf.lastKey(), leaf, right)
		return
	}
	t.insertIntoParent(leaf.lastKey(), t.node(leaf.parent), right)
}

// insertIntoParent adds separator sep to parent with child as the subtree
// right after it, splitting parent and recursing upward when it is full.
func (t *Tree[K, V]) insertIntoParent(sep K, parent *node[K, V], child *node[K, V]) {
	i := algo.FindUpperBound(parent.keys, sep)
	child.parent = parent.id

	if !parent.isFull(t.order) {
		parent.keys = slices.Insert(parent.keys, i, sep)
		parent.children = slices.Insert(parent.children, i+1, child.id)
		t.checkCapacity(parent)
		return
	}

	keys := slices.Insert(slices.Clone(parent.keys), i, sep)
	children := slices.Insert(slices.Clone(parent.children), i+1, child.id)
	mid := algo.SplitPoint(len(keys)) + 1

	right := t.nodes.allocate(false, t.order)
	right.keys = append(right.keys, keys[mid:]...)
	right.children = append(right.children, children[mid:]...)
	right.parent = parent.parent
	for _, id := range right.children {
		t.node(id).parent = right.id
	}

	parent.keys = append(parent.keys[:0], keys[:mid]...)
	parent.children = append(parent.children[:0], children[:mid]...)

	// Sever sibling connection since parents changed.
	t.node(parent.lastChild()).next = noNode
	t.node(right.children[0]).prev = noNode
	t.linkAfter(parent, right)

	// The last retained key moves up; it no longer separates anything here.
	promoted := parent.lastKey()
	parent.keys = parent.keys[:len(parent.keys)-1]

	t.checkCapacity(parent)
	t.checkCapacity(right)

	if parent.parent == noNode {
		t.growRoot(promoted, parent, right)
		return
	}
	t.insertIntoParent(promoted, t.node(parent.parent), right)
}

// growRoot puts a new root with separator sep above left and right, the two
// halves of the old root.
func (t *Tree[K, V]) growRoot(sep K, left, right *node[K, V]) {
	root := t.nodes.allocate(false, t.order)
	root.keys = append(root.keys, sep)
	root.children = append(root.children, left.id, right.id)
	left.parent = root.id
	right.parent = root.id
	t.root = root.id

	t.logger.Info("root split", "root", root.id, "separator", sep, "keys", t.count+1)
}

// linkAfter splices n into the sibling chain right after left.
func (t *Tree[K, V]) linkAfter(left, n *node[K, V]) {
	n.prev = left.id
	n.next = left.next
	if left.next != noNode {
		t.node(left.next).prev = n.id
	}
	left.next = n.id
}

// checkCapacity enforces the order bound after every mutation of n.
func (t *Tree[K, V]) checkCapacity(n *node[K, V]) {
	if len(n.keys) > t.order {
		panic(errors.AssertionFailedf("lazybtree: node %d holds %d keys, order is %d", n.id, len(n.keys), t.order))
	}
}
