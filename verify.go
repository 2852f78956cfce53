package lazybtree

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// Verify walks the whole tree and reports the first broken structural
// invariant, or nil. It checks key order and uniqueness, node capacity, child
// counts (including the degenerate form), separators equal to the maximum of
// their left subtree, parent links, per-parent sibling chains, uniform leaf
// depth, the key count and that no allocated node is unreachable.
//
// Verify is a debugging aid; it costs a full traversal.
func (t *Tree[K, V]) Verify() error {
	if t.root == noNode {
		if t.count != 0 {
			return errors.AssertionFailedf("empty tree reports %d keys", t.count)
		}
		if live := t.nodes.live(); live != 0 {
			return errors.AssertionFailedf("empty tree still holds %d nodes", live)
		}
		return nil
	}

	root, ok := t.nodes.lookup(t.root)
	if !ok {
		return errors.AssertionFailedf("root %d is not allocated", t.root)
	}
	if root.parent != noNode {
		return errors.AssertionFailedf("root %d has parent %d", root.id, root.parent)
	}
	if root.prev != noNode || root.next != noNode {
		return errors.AssertionFailedf("root %d has siblings prev=%d next=%d", root.id, root.prev, root.next)
	}

	v := &verifier[K, V]{tree: t, leafDepth: -1}
	if _, err := v.walk(root, 0); err != nil {
		return err
	}
	if v.keys != t.count {
		return errors.AssertionFailedf("tree reports %d keys, leaves hold %d", t.count, v.keys)
	}
	if live := t.nodes.live(); live != v.nodes {
		return errors.AssertionFailedf("%d nodes allocated, %d reachable", live, v.nodes)
	}
	return nil
}

type verifier[K cmp.Ordered, V any] struct {
	tree      *Tree[K, V]
	leafDepth int
	keys      int
	nodes     int
	lastKey   K // Largest leaf key seen so far, in traversal order
	seenKey   bool
}

// walk checks n and its subtree and returns the subtree's largest key.
func (v *verifier[K, V]) walk(n *node[K, V], depth int) (K, error) {
	var zero K
	v.nodes++

	if len(n.keys) == 0 {
		return zero, errors.AssertionFailedf("node %d has no keys", n.id)
	}
	if len(n.keys) > v.tree.order {
		return zero, errors.AssertionFailedf("node %d holds %d keys, order is %d", n.id, len(n.keys), v.tree.order)
	}
	for i := 1; i < len(n.keys); i++ {
		if cmp.Compare(n.keys[i-1], n.keys[i]) >= 0 {
			return zero, errors.AssertionFailedf("node %d keys out of order at index %d", n.id, i)
		}
	}

	if n.leaf {
		return v.walkLeaf(n, depth)
	}

	if len(n.values) != 0 {
		return zero, errors.AssertionFailedf("internal node %d carries %d values", n.id, len(n.values))
	}
	if len(n.children) != len(n.keys)+1 && len(n.children) != len(n.keys) {
		return zero, errors.AssertionFailedf("node %d has %d keys and %d children", n.id, len(n.keys), len(n.children))
	}

	var last K
	for i, id := range n.children {
		child, ok := v.tree.nodes.lookup(id)
		if !ok {
			return zero, errors.AssertionFailedf("node %d child %d (id %d) is not allocated", n.id, i, id)
		}
		if err := v.checkLinks(n, i, child); err != nil {
			return zero, err
		}

		childMax, err := v.walk(child, depth+1)
		if err != nil {
			return zero, errors.Wrapf(err, "under node %d", n.id)
		}
		if i < len(n.keys) && cmp.Compare(n.keys[i], childMax) != 0 {
			return zero, errors.AssertionFailedf("node %d separator %d is %v, subtree maximum is %v", n.id, i, n.keys[i], childMax)
		}
		last = childMax
	}
	return last, nil
}

func (v *verifier[K, V]) walkLeaf(n *node[K, V], depth int) (K, error) {
	var zero K

	if len(n.children) != 0 {
		return zero, errors.AssertionFailedf("leaf %d has %d children", n.id, len(n.children))
	}
	if len(n.values) != len(n.keys) {
		return zero, errors.AssertionFailedf("leaf %d has %d keys and %d values", n.id, len(n.keys), len(n.values))
	}
	if v.leafDepth == -1 {
		v.leafDepth = depth
	} else if depth != v.leafDepth {
		return zero, errors.AssertionFailedf("leaf %d at depth %d, expected %d", n.id, depth, v.leafDepth)
	}

	if v.seenKey && cmp.Compare(v.lastKey, n.keys[0]) >= 0 {
		return zero, errors.AssertionFailedf("leaf %d starts with %v, not after %v", n.id, n.keys[0], v.lastKey)
	}
	v.lastKey = n.lastKey()
	v.seenKey = true
	v.keys += len(n.keys)
	return n.lastKey(), nil
}

// checkLinks checks that the i-th child of n points back at n and that its
// sibling links follow n's children. Chains do not cross parents.
func (v *verifier[K, V]) checkLinks(n *node[K, V], i int, child *node[K, V]) error {
	if child.parent != n.id {
		return errors.AssertionFailedf("node %d is child %d of node %d but names parent %d", child.id, i, n.id, child.parent)
	}

	wantPrev := noNode
	if i > 0 {
		wantPrev = n.children[i-1]
	}
	wantNext := noNode
	if i < len(n.children)-1 {
		wantNext = n.children[i+1]
	}
	if child.prev != wantPrev || child.next != wantNext {
		return errors.AssertionFailedf("node %d siblings prev=%d next=%d, expected prev=%d next=%d",
			child.id, child.prev, child.next, wantPrev, wantNext)
	}
	return nil
}
