package lazybtree

import (
	"slices"

	"github.com/cockroachdb/errors"

	"lazybtree/internal/algo"
)

// Delete removes key, returning ErrKeyNotFound if it is absent. Emptied nodes
// are removed and stale separators repaired, but underfull nodes are never
// merged with or refilled from their siblings.
func (t *Tree[K, V]) Delete(key K) error {
	leaf := t.findLeaf(key)
	if leaf == nil {
		return ErrKeyNotFound
	}
	i := algo.FindKey(leaf.keys, key)
	if i < 0 {
		return ErrKeyNotFound
	}

	leaf.keys = slices.Delete(leaf.keys, i, i+1)
	leaf.values = slices.Delete(leaf.values, i, i+1)
	t.count--

	if leaf.parent == noNode {
		if len(leaf.keys) == 0 {
			t.nodes.release(leaf.id)
			t.root = noNode
			t.logger.Info("tree emptied")
		}
		return nil
	}

	t.propagateDelete(key, leaf.parent, leaf)

	if len(leaf.keys) == 0 {
		t.unlink(leaf)
		t.nodes.release(leaf.id)
	}
	return nil
}

// propagateDelete repairs ancestorID after key was removed somewhere under
// child, then continues with ancestorID's own parent.
//
// An emptied child is dropped from ancestorID together with its separator. If
// that leaves ancestorID with no keys but one populated child, a root hands its
// place to the child, while any other node becomes a degenerate node with a
// single key, the child's maximum, and a single child. A child that still has
// keys may have lost its maximum, so a separator equal to key is refreshed.
// Either way separators higher up can still mention key, so the walk always
// goes on to the root.
func (t *Tree[K, V]) propagateDelete(key K, ancestorID nodeID, child *node[K, V]) {
	if ancestorID == noNode {
		return
	}
	ancestor := t.node(ancestorID)

	if len(child.keys) > 0 {
		if i := algo.FindKey(ancestor.keys, key); i >= 0 {
			ancestor.keys[i] = t.maxKey(child)
		}
		t.propagateDelete(key, ancestor.parent, ancestor)
		return
	}

	t.removeChild(ancestor, child.id)

	if len(ancestor.keys) == 0 && len(ancestor.children) == 1 {
		only := t.node(ancestor.children[0])
		if len(only.keys) > 0 {
			if ancestor.id == t.root {
				t.promoteRoot(ancestor, only)
				return
			}
			ancestor.keys = append(ancestor.keys, t.maxKey(only))
			t.logger.Info("node collapsed to single child", "node", ancestor.id, "child", only.id, "separator", ancestor.keys[0])
		}
	}

	t.propagateDelete(key, ancestor.parent, ancestor)

	if len(ancestor.keys) == 0 {
		t.unlink(ancestor)
		if ancestor.id == t.root {
			t.root = noNode
			t.logger.Info("tree emptied")
		}
		t.nodes.release(ancestor.id)
	}
}

// removeChild drops child id and its separator from n. The trailing child has
// no separator of its own, so the last key goes with it instead.
func (t *Tree[K, V]) removeChild(n *node[K, V], id nodeID) {
	i := slices.Index(n.children, id)
	if i < 0 {
		panic(errors.AssertionFailedf("lazybtree: node %d is not a child of node %d", id, n.id))
	}

	n.children = slices.Delete(n.children, i, i+1)
	if len(n.keys) > 0 {
		k := min(i, len(n.keys)-1)
		n.keys = slices.Delete(n.keys, k, k+1)
	}
}

// promoteRoot replaces root by its only child.
func (t *Tree[K, V]) promoteRoot(root, child *node[K, V]) {
	child.parent = noNode
	t.root = child.id
	t.nodes.release(root.id)

	t.logger.Info("root collapsed", "root", child.id, "height", t.Height())
}

// unlink removes n from its sibling chain.
func (t *Tree[K, V]) unlink(n *node[K, V]) {
	if n.next != noNode {
		t.node(n.next).prev = n.prev
	}
	if n.prev != noNode {
		t.node(n.prev).next = n.next
	}
	n.prev = noNode
	n.next = noNode
}

// maxKey returns the largest key under n by following the last present child,
// which also covers the degenerate form, down to a leaf.
func (t *Tree[K, V]) maxKey(n *node[K, V]) K {
	for !n.leaf {
		n = t.node(n.lastChild())
	}
	return n.lastKey()
}
